package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"clubmedia/internal/model"
)

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) IssueUpload(ctx context.Context, req model.UploadRequest) (*model.UploadGrant, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadGrant), args.Error(1)
}

func (m *MockUploadService) ProxyUpload(ctx context.Context, r io.Reader, req model.UploadRequest) (string, error) {
	args := m.Called(ctx, r, req)
	return args.String(0), args.Error(1)
}

func (m *MockUploadService) DeleteByURL(ctx context.Context, publicURL string) error {
	args := m.Called(ctx, publicURL)
	return args.Error(0)
}
