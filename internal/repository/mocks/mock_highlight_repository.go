package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clubmedia/internal/model"
	"clubmedia/internal/repository"
)

type MockHighlightRepository struct {
	mock.Mock
}

func (m *MockHighlightRepository) Create(ctx context.Context, h *model.Highlight) (*model.Highlight, error) {
	args := m.Called(ctx, h)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Highlight), args.Error(1)
}

func (m *MockHighlightRepository) FindByID(ctx context.Context, id string) (*model.Highlight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Highlight), args.Error(1)
}

func (m *MockHighlightRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Highlight], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Highlight]), args.Error(1)
}

func (m *MockHighlightRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
