package postgres

import (
	"context"
	"database/sql"

	"clubmedia/internal/model"
	"clubmedia/internal/repository"
)

// HighlightPostgres is a PostgreSQL implementation of repository.HighlightRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type HighlightPostgres struct {
	db *sql.DB
}

// NewHighlightPostgres creates a new HighlightPostgres repository.
func NewHighlightPostgres(db *sql.DB) *HighlightPostgres {
	return &HighlightPostgres{db: db}
}

var _ repository.HighlightRepository = (*HighlightPostgres)(nil)

// Create inserts a new highlight row and returns the stored record.
func (r *HighlightPostgres) Create(ctx context.Context, h *model.Highlight) (*model.Highlight, error) {
	const q = `
		INSERT INTO highlights (id, title, video_url, thumbnail_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, video_url, thumbnail_url, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		h.ID,
		h.Title,
		h.VideoURL,
		h.ThumbnailURL,
		h.CreatedAt,
	)
	var out model.Highlight
	if err := row.Scan(
		&out.ID,
		&out.Title,
		&out.VideoURL,
		&out.ThumbnailURL,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single highlight by its ID.
func (r *HighlightPostgres) FindByID(ctx context.Context, id string) (*model.Highlight, error) {
	const q = `
		SELECT id, title, video_url, thumbnail_url, created_at
		FROM highlights
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var h model.Highlight
	if err := row.Scan(
		&h.ID,
		&h.Title,
		&h.VideoURL,
		&h.ThumbnailURL,
		&h.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &h, nil
}

// List returns highlights using LIMIT/OFFSET pagination and a total count.
func (r *HighlightPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Highlight], error) {
	const qCount = `SELECT COUNT(*) FROM highlights`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, title, video_url, thumbnail_url, created_at
		FROM highlights
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Highlight, 0)
	for rows.Next() {
		var h model.Highlight
		if err := rows.Scan(
			&h.ID,
			&h.Title,
			&h.VideoURL,
			&h.ThumbnailURL,
			&h.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Highlight]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a highlight by ID. It does not return an error if the row does not exist.
func (r *HighlightPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM highlights WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
