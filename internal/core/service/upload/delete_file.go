package upload

import (
	"context"
	"errors"
	"fmt"
	"share-safely/internal/core/domain"
	"share-safely/internal/core/port"

	"github.com/google/uuid"
)

// DeleteFile removes the blob, soft-deletes the metadata row and expires the
// file's still-active links. Reports false when the file is unknown or
// already deleted.
func (f *fileService) DeleteFile(ctx context.Context, id uuid.UUID, ip string) (bool, error) {

	file, err := f.uow.FileRepo().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return false, nil
		}
		return false, err
	}
	if file.Status == domain.FileStatusDeleted {
		return false, nil
	}

	// Delete-if-exists: an already absent blob is success.
	if _, err := f.storage.Delete(ctx, file.StorageKey); err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	txErr := f.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		if _, err := uow.FileRepo().UpdateStatusIf(ctx, id, file.Status, domain.FileStatusDeleted); err != nil {
			return err
		}
		if _, err := uow.LinkRepo().ExpireActiveByFileID(ctx, id); err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		return false, txErr
	}

	f.recorder.Record(ctx, domain.AccessLog{
		FileID: id,
		Action: domain.ActionFileDeleted,
		IP:     ip,
	})

	f.logger.Info("file deleted", "fileID", id)
	return true, nil
}
