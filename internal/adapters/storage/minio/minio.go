package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"share-safely/internal/config"
	"share-safely/internal/core/domain"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is the object-store variant of the blob storage capability
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// Put stores an object
func (a *Adapter) Put(ctx context.Context, key string, content io.Reader, sizeBytes int64, contentType string) error {
	_, err := a.client.PutObject(ctx, a.config.BucketName, key, content, sizeBytes, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

// Get returns a stream over an object, or domain.ErrObjectMissing when absent
func (a *Adapter) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if _, err := a.client.StatObject(ctx, a.config.BucketName, key, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return nil, domain.ErrObjectMissing
		}
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	object, err := a.client.GetObject(ctx, a.config.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return object, nil
}

// Delete removes an object if it exists. An already absent object reports
// false without error.
func (a *Adapter) Delete(ctx context.Context, key string) (bool, error) {
	if _, err := a.client.StatObject(ctx, a.config.BucketName, key, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}

	if err := a.client.RemoveObject(ctx, a.config.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return false, fmt.Errorf("failed to delete object: %w", err)
	}

	a.logger.Info("object deleted",
		slog.String("key", key),
		slog.String("bucket", a.config.BucketName))

	return true, nil
}

// Exists reports whether an object is present
func (a *Adapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.client.StatObject(ctx, a.config.BucketName, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

// DownloadTarget produces a time-boxed presigned GET URL granting direct read
// access without routing through this service
func (a *Adapter) DownloadTarget(ctx context.Context, key string) (*domain.DownloadTarget, error) {
	presignedURL, err := a.client.PresignedGetObject(ctx, a.config.BucketName, key, a.config.DownloadSignedURLDuration, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	expiresAt := time.Now().Add(a.config.DownloadSignedURLDuration)

	return &domain.DownloadTarget{
		Kind:       domain.DownloadTargetDelegated,
		URL:        presignedURL.String(),
		StorageKey: key,
		ExpiresAt:  &expiresAt,
	}, nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey"
}
