package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"share-safely/internal/core/domain"

	"github.com/spf13/afero"
)

// Adapter is the filesystem variant of the blob storage capability. Callers
// stream objects through Get instead of receiving a delegated URL.
type Adapter struct {
	fs     afero.Fs
	root   string
	logger *slog.Logger
}

// NewAdapter creates the adapter rooted at path, creating the directory when missing
func NewAdapter(fs afero.Fs, root string, logger *slog.Logger) (*Adapter, error) {
	if err := fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}
	return &Adapter{fs: fs, root: root, logger: logger}, nil
}

func (a *Adapter) path(key string) string {
	return filepath.Join(a.root, filepath.Base(key))
}

// Put stores an object
func (a *Adapter) Put(ctx context.Context, key string, content io.Reader, sizeBytes int64, contentType string) error {
	f, err := a.fs.Create(a.path(key))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// Get returns a stream over an object, or domain.ErrObjectMissing when absent
func (a *Adapter) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := a.fs.Open(a.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrObjectMissing
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete removes an object if it exists. An already absent object reports
// false without error.
func (a *Adapter) Delete(ctx context.Context, key string) (bool, error) {
	p := a.path(key)

	if _, err := a.fs.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}

	if err := a.fs.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to remove file: %w", err)
	}

	a.logger.Info("object deleted", slog.String("key", key))
	return true, nil
}

// Exists reports whether an object is present
func (a *Adapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.fs.Stat(a.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}

// DownloadTarget returns an internal object reference; the HTTP layer streams
// the bytes through Get.
func (a *Adapter) DownloadTarget(ctx context.Context, key string) (*domain.DownloadTarget, error) {
	return &domain.DownloadTarget{
		Kind:       domain.DownloadTargetLocal,
		StorageKey: key,
	}, nil
}
