package sweep

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"syscall"
	"time"

	"github.com/lib/pq"
	"github.com/minio/minio-go/v7"
)

// backoff is the wait ladder between attempts; its length bounds the retries.
var backoff = []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}

// withRetry runs fn up to len(backoff) times, retrying only failures
// classified as transient. A non-transient failure is returned immediately.
func withRetry(ctx context.Context, logger *slog.Logger, op string, fn func() error) error {
	var err error
	for attempt := 0; attempt < len(backoff); attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return err
		}
		logger.Warn("transient failure, retrying", "op", op, "attempt", attempt+1, "error", err)

		select {
		case <-time.After(backoff[attempt]):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// isTransient classifies connection resets, timeouts, deadlocks and
// backend throttling as retryable.
func isTransient(err error) bool {
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return true
		}
		if pqErr.Code.Class() == "08" { // connection exceptions
			return true
		}
	}

	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) {
		if minioErr.StatusCode >= 500 || minioErr.Code == "SlowDown" {
			return true
		}
	}

	return false
}
