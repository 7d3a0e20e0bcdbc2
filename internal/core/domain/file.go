package domain

import (
	"time"

	"github.com/google/uuid"
)

// FileStatus represents the status of a stored file
type FileStatus string

const (
	FileStatusActive  FileStatus = "active"
	FileStatusExpired FileStatus = "expired"
	FileStatusDeleted FileStatus = "deleted"
)

// Terminal reports whether no further transition is allowed from the status.
// Status only ever moves forward: active -> expired -> deleted, or active -> deleted.
func (s FileStatus) Terminal() bool {
	return s == FileStatusDeleted
}

// FileMetadata represents an uploaded file
type FileMetadata struct {
	ID           uuid.UUID
	OriginalName string
	ContentType  string
	SizeBytes    int64
	UploadedAt   time.Time
	ExpiresAt    *time.Time
	Status       FileStatus
	StorageKey   string
}

// Expired reports whether the file has its own expiry and it has passed.
func (f *FileMetadata) Expired(now time.Time) bool {
	return f.ExpiresAt != nil && !now.Before(*f.ExpiresAt)
}
