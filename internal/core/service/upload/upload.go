package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"share-safely/internal/config"
	"share-safely/internal/core/domain"
	"share-safely/internal/core/port"
	"strings"
	"time"

	"github.com/google/uuid"
)

type fileService struct {
	uow      port.UnitOfWork
	storage  port.BlobStorage
	recorder port.AccessRecorder
	cfg      config.UploadConfig
	logger   *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(uow port.UnitOfWork, storage port.BlobStorage, recorder port.AccessRecorder, cfg config.UploadConfig, logger *slog.Logger) port.FileService {
	return &fileService{
		uow:      uow,
		storage:  storage,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger,
	}
}

// Upload stores the blob and creates the metadata row. The blob is written
// first: a crash in between leaves an orphan object for the sweeper to
// reclaim rather than a metadata row pointing at nothing.
func (f *fileService) Upload(ctx context.Context, fileName string, contentType string, sizeBytes int64, content io.Reader, ttl *time.Duration, ip string) (*domain.FileMetadata, error) {

	ext, err := f.validateUpload(fileName, sizeBytes)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fileID := uuid.New()
	storageKey := fileID.String() + ext

	var expiresAt *time.Time
	if ttl != nil {
		t := now.Add(*ttl)
		expiresAt = &t
	}

	if err := f.storage.Put(ctx, storageKey, content, sizeBytes, contentType); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	metadata := domain.FileMetadata{
		ID:           fileID,
		OriginalName: fileName,
		ContentType:  contentType,
		SizeBytes:    sizeBytes,
		UploadedAt:   now,
		ExpiresAt:    expiresAt,
		Status:       domain.FileStatusActive,
		StorageKey:   storageKey,
	}

	if err := f.uow.FileRepo().Create(ctx, metadata); err != nil {
		return nil, err
	}

	f.recorder.Record(ctx, domain.AccessLog{
		FileID: fileID,
		Action: domain.ActionUploaded,
		IP:     ip,
	})

	f.logger.Info("file uploaded", "fileID", fileID, "name", fileName, "size", sizeBytes)
	return &metadata, nil
}

func (f *fileService) validateUpload(fileName string, sizeBytes int64) (string, error) {
	if sizeBytes > f.cfg.MaxSizeBytes {
		return "", domain.ErrFileSizeTooBig
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		return "", fmt.Errorf("%w: no file extension found", domain.ErrInvalidFileType)
	}

	for _, allowed := range f.cfg.AllowedExtensions {
		if ext == strings.ToLower(strings.TrimSpace(allowed)) {
			return ext, nil
		}
	}

	return "", fmt.Errorf("%w: extension %s is not allowed", domain.ErrInvalidFileType, ext)
}
