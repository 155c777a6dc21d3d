package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"clubmedia/internal/model"
	"clubmedia/internal/repository"
)

var (
	ErrIDRequired       = errors.New("id is required")
	ErrNotFound         = errors.New("highlight not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrVideoURLRequired = errors.New("video url is required")
)

// HighlightListResult is the service-level DTO for paginated highlights.
type HighlightListResult struct {
	Items []model.Highlight `json:"data"`
	Total int               `json:"total"`
}

// DeleteOutcome reports a completed record deletion. MediaWarnings carries
// non-fatal media-cleanup failures; the record itself is gone either way and the
// caller decides whether to surface the warnings.
type DeleteOutcome struct {
	MediaWarnings []string `json:"media_warnings,omitempty"`
}

// HighlightService defines the use cases for highlight records. The video and
// thumbnail URLs it persists come out of the upload pipeline.
type HighlightService interface {
	// Create persists a highlight referencing already-uploaded media.
	Create(ctx context.Context, title, videoURL, thumbnailURL string) (*model.Highlight, error)

	// List returns highlights using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*HighlightListResult, error)

	// Get returns a single highlight by its ID.
	Get(ctx context.Context, id string) (*model.Highlight, error)

	// Delete removes the record, then best-effort deletes its media objects.
	// Media-deletion failures never block the record delete.
	Delete(ctx context.Context, id string) (*DeleteOutcome, error)
}

type highlightService struct {
	repo    repository.HighlightRepository
	uploads UploadService
}

// NewHighlightService constructs a new HighlightService.
func NewHighlightService(repo repository.HighlightRepository, uploads UploadService) HighlightService {
	return &highlightService{repo: repo, uploads: uploads}
}

func (s *highlightService) Create(ctx context.Context, title, videoURL, thumbnailURL string) (*model.Highlight, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	if videoURL == "" {
		return nil, ErrVideoURLRequired
	}

	h := &model.Highlight{
		ID:           uuid.New().String(),
		Title:        title,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		CreatedAt:    time.Now().UTC(),
	}
	return s.repo.Create(ctx, h)
}

// List returns paginated highlights without exposing repository types.
func (s *highlightService) List(ctx context.Context, limit, offset int) (*HighlightListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &HighlightListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *highlightService) Get(ctx context.Context, id string) (*model.Highlight, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

// Delete removes the record first, then cleans up the referenced media. Media
// failures are collected as warnings so an unreachable store cannot leave the
// admin unable to remove a highlight.
func (s *highlightService) Delete(ctx context.Context, id string) (*DeleteOutcome, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	out := &DeleteOutcome{}
	for _, mediaURL := range []string{h.VideoURL, h.ThumbnailURL} {
		if mediaURL == "" {
			continue
		}
		if err := s.uploads.DeleteByURL(ctx, mediaURL); err != nil {
			out.MediaWarnings = append(out.MediaWarnings, err.Error())
		}
	}
	return out, nil
}
