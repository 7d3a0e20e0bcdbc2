package storage

import (
	"context"
	"io"
	"share-safely/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) Put(ctx context.Context, key string, content io.Reader, sizeBytes int64, contentType string) error {
	args := m.Called(ctx, key, content, sizeBytes, contentType)
	return args.Error(0)
}

func (m *MockStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) DownloadTarget(ctx context.Context, key string) (*domain.DownloadTarget, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(*domain.DownloadTarget), args.Error(1)
}
