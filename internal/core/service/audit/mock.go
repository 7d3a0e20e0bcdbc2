package audit

import (
	"context"
	"share-safely/internal/core/domain"
	"sync"
)

// RecorderSpy captures every recorded entry for assertions. Safe for
// concurrent use.
type RecorderSpy struct {
	mu      sync.Mutex
	entries []domain.AccessLog
}

// NewRecorderSpy creates a RecorderSpy
func NewRecorderSpy() *RecorderSpy {
	return &RecorderSpy{}
}

func (r *RecorderSpy) Record(_ context.Context, entry domain.AccessLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

// Recorded returns a copy of the entries captured so far.
func (r *RecorderSpy) Recorded() []domain.AccessLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AccessLog, len(r.entries))
	copy(out, r.entries)
	return out
}
