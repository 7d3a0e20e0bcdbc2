package domain

import (
	"time"

	"github.com/google/uuid"
)

// LinkStatus represents the status of a share link
type LinkStatus string

const (
	LinkStatusActive  LinkStatus = "active"
	LinkStatusExpired LinkStatus = "expired"
	LinkStatusRevoked LinkStatus = "revoked"
)

// Terminal reports whether the status admits no further transition.
func (s LinkStatus) Terminal() bool {
	return s == LinkStatusExpired || s == LinkStatusRevoked
}

// Link represents a revocable, expiring download link bound to a file
type Link struct {
	ID          uuid.UUID
	FileID      uuid.UUID
	Token       string
	URL         string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Status      LinkStatus
	AccessCount int
}

// Expired reports whether the link expiry has passed.
func (l *Link) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

// DownloadTargetKind distinguishes how the caller reaches the bytes
type DownloadTargetKind string

const (
	// DownloadTargetDelegated is a time-boxed URL granting direct read access on the object store
	DownloadTargetDelegated DownloadTargetKind = "delegated"
	// DownloadTargetLocal is an internal object key the caller streams through the storage adapter
	DownloadTargetLocal DownloadTargetKind = "local"
)

// DownloadTarget is the result of resolving a valid token
type DownloadTarget struct {
	Kind       DownloadTargetKind
	URL        string
	StorageKey string
	FileName   string
	ExpiresAt  *time.Time
}
