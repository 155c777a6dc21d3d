package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"clubmedia/internal/storage"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, r, opt)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader, storage.PutObjectOptions) storage.ObjectInfo); ok {
		return f(ctx, key, r, opt), args.Error(1)
	}
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, map[string]string, error) {
	args := m.Called(ctx, key, contentType, expiry)
	var hdrs map[string]string
	if h, ok := args.Get(1).(map[string]string); ok {
		hdrs = h
	}
	return args.String(0), hdrs, args.Error(2)
}

func (m *MockStorage) PublicURL(key string) string {
	args := m.Called(key)
	if f, ok := args.Get(0).(func(string) string); ok {
		return f(key)
	}
	return args.String(0)
}
