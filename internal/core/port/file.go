package port

import (
	"context"
	"io"
	"share-safely/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// FileRepository is an interface to define file metadata repository interactions
type FileRepository interface {
	Create(ctx context.Context, file domain.FileMetadata) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FileMetadata, error)
	// UpdateStatusIf performs a compare-and-set on the status column.
	// It reports false without error when the row no longer holds the expected status.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to domain.FileStatus) (bool, error)
	FindExpired(ctx context.Context, now time.Time) ([]domain.FileMetadata, error)
}

// FileService is an interface to define the upload-side file operations
type FileService interface {
	Upload(ctx context.Context, fileName string, contentType string, sizeBytes int64, content io.Reader, ttl *time.Duration, ip string) (*domain.FileMetadata, error)
	GetFile(ctx context.Context, id uuid.UUID) (*domain.FileMetadata, error)
	DeleteFile(ctx context.Context, id uuid.UUID, ip string) (bool, error)
}
