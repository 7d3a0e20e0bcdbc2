package upload

import (
	"context"
	"io"
	"share-safely/internal/core/domain"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockFileService struct {
	mock.Mock
}

func NewMockFileService() *MockFileService {
	return &MockFileService{}
}

func (m *MockFileService) Upload(ctx context.Context, fileName string, contentType string, sizeBytes int64, content io.Reader, ttl *time.Duration, ip string) (*domain.FileMetadata, error) {
	args := m.Called(ctx, fileName, contentType, sizeBytes, content, ttl, ip)
	return args.Get(0).(*domain.FileMetadata), args.Error(1)
}

func (m *MockFileService) GetFile(ctx context.Context, id uuid.UUID) (*domain.FileMetadata, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.FileMetadata), args.Error(1)
}

func (m *MockFileService) DeleteFile(ctx context.Context, id uuid.UUID, ip string) (bool, error) {
	args := m.Called(ctx, id, ip)
	return args.Bool(0), args.Error(1)
}
