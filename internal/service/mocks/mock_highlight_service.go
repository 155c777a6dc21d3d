package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clubmedia/internal/model"
	"clubmedia/internal/service"
)

type MockHighlightService struct {
	mock.Mock
}

func (m *MockHighlightService) Create(ctx context.Context, title, videoURL, thumbnailURL string) (*model.Highlight, error) {
	args := m.Called(ctx, title, videoURL, thumbnailURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Highlight), args.Error(1)
}

func (m *MockHighlightService) List(ctx context.Context, limit, offset int) (*service.HighlightListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HighlightListResult), args.Error(1)
}

func (m *MockHighlightService) Get(ctx context.Context, id string) (*model.Highlight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Highlight), args.Error(1)
}

func (m *MockHighlightService) Delete(ctx context.Context, id string) (*service.DeleteOutcome, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DeleteOutcome), args.Error(1)
}
