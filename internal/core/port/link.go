package port

import (
	"context"
	"share-safely/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// LinkRepository is an interface to define link repository interactions
type LinkRepository interface {
	Create(ctx context.Context, link domain.Link) error
	FindByToken(ctx context.Context, token string) (*domain.Link, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Link, error)
	// UpdateStatusIf performs a compare-and-set on the status column.
	// It reports false without error when the row no longer holds the expected status.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to domain.LinkStatus) (bool, error)
	// IncrementAccessCount adds one to the counter, conditioned on the link still
	// being active and unexpired at commit time. Reports false when the condition failed.
	IncrementAccessCount(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	// ExpireActiveByFileID marks every active link of a file expired, returning how many flipped.
	ExpireActiveByFileID(ctx context.Context, fileID uuid.UUID) (int, error)
}

// LinkService is an interface to define the link lifecycle operations
type LinkService interface {
	Issue(ctx context.Context, fileID uuid.UUID, ttlMinutes int, ip string) (*domain.Link, error)
	Validate(ctx context.Context, token string) (bool, error)
	Resolve(ctx context.Context, token string, ip string) (*domain.DownloadTarget, error)
	Revoke(ctx context.Context, linkID uuid.UUID) (bool, error)
}
