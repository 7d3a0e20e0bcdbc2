package port

import (
	"context"
	"share-safely/internal/core/domain"
	"time"
)

// Sweeper is the periodic job that reclaims blobs of expired files
type Sweeper interface {
	// Run executes one sweep over all files expired at now. Per-item failures
	// are tallied in the summary; only run-level failures (enumeration,
	// systemic store loss) return an error.
	Run(ctx context.Context, now time.Time) (*domain.SweepSummary, error)
}
