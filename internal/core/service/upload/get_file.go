package upload

import (
	"context"
	"share-safely/internal/core/domain"

	"github.com/google/uuid"
)

// GetFile returns the metadata row for a file, whatever its status.
func (f *fileService) GetFile(ctx context.Context, id uuid.UUID) (*domain.FileMetadata, error) {
	return f.uow.FileRepo().FindByID(ctx, id)
}
