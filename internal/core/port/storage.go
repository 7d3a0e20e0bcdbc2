package port

import (
	"context"
	"io"
	"share-safely/internal/core/domain"
)

// BlobStorage is the capability set over a blob object store. Two variants
// implement it (object store, local filesystem); the variant is chosen once
// at process start and callers never branch on the concrete type.
type BlobStorage interface {
	Put(ctx context.Context, key string, content io.Reader, sizeBytes int64, contentType string) error
	// Get returns a stream over the object, or domain.ErrObjectMissing when absent.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object if it exists. It reports false when the object
	// was already absent; absence is success, not an error.
	Delete(ctx context.Context, key string) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	// DownloadTarget produces what a caller needs to read the object: a
	// time-boxed delegated URL for the object-store variant, an internal
	// object reference for the local variant.
	DownloadTarget(ctx context.Context, key string) (*domain.DownloadTarget, error)
}
