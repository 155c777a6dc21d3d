package repository

import (
	"context"

	"clubmedia/internal/model"
)

// HighlightRepository defines data access for highlight records using SQL queries
// only. No business logic here — strictly persistence operations.
type HighlightRepository interface {
	// Create inserts a new highlight record and returns the stored row.
	Create(ctx context.Context, h *model.Highlight) (*model.Highlight, error)

	// FindByID returns a highlight by its ID.
	FindByID(ctx context.Context, id string) (*model.Highlight, error)

	// List returns a paginated list of highlights, newest first, with a total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Highlight], error)

	// Delete removes a highlight by ID. Returns nil if the row did not exist.
	Delete(ctx context.Context, id string) error
}
