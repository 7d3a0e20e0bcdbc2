package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"share-safely/internal/core/domain"
	"share-safely/internal/core/port"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sweepRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sharesafely_sweep_runs_total",
		Help: "Total number of sweep runs",
	})

	sweepBlobsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sharesafely_sweep_blobs_deleted_total",
		Help: "Total number of blobs deleted by the sweeper",
	})

	sweepBlobsAbsentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sharesafely_sweep_blobs_already_absent_total",
		Help: "Total number of swept files whose blob was already absent",
	})

	sweepItemErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sharesafely_sweep_item_errors_total",
		Help: "Total number of per-file sweep failures",
	})

	sweepDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sharesafely_sweep_duration_seconds",
		Help:    "Duration of sweep runs in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	})
)

type sweeper struct {
	uow      port.UnitOfWork
	storage  port.BlobStorage
	recorder port.AccessRecorder
	logger   *slog.Logger
}

// NewSweeper creates the expiration sweeper
func NewSweeper(uow port.UnitOfWork, storage port.BlobStorage, recorder port.AccessRecorder, logger *slog.Logger) port.Sweeper {
	return &sweeper{
		uow:      uow,
		storage:  storage,
		recorder: recorder,
		logger:   logger.With(slog.String("component", "sweep")),
	}
}

// Run executes one sweep over all files expired at now. Each file is handled
// independently; a per-file failure is tallied, logged and never aborts the
// run. Only a failed enumeration, or a retry-exhausted transient failure of
// the metadata store itself, fails the whole run so the scheduler can alert.
func (s *sweeper) Run(ctx context.Context, now time.Time) (*domain.SweepSummary, error) {
	start := time.Now()
	sweepRunsTotal.Inc()

	var files []domain.FileMetadata
	err := withRetry(ctx, s.logger, "enumerate expired files", func() error {
		var qErr error
		files, qErr = s.uow.FileRepo().FindExpired(ctx, now)
		return qErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate expired files: %w", err)
	}

	summary := &domain.SweepSummary{Found: len(files)}

	for _, file := range files {
		outcome, itemErr := s.sweepFile(ctx, file)
		switch outcome {
		case domain.SweepOutcomeDeleted:
			summary.Deleted++
			sweepBlobsDeletedTotal.Inc()
		case domain.SweepOutcomeAlreadyAbsent:
			summary.AlreadyAbsent++
			sweepBlobsAbsentTotal.Inc()
		case domain.SweepOutcomeError:
			summary.Errors++
			sweepItemErrorsTotal.Inc()
			if itemErr != nil && isTransient(itemErr) {
				// The store is unreachable even after the bounded retries;
				// continuing would fail every remaining item the same way.
				summary.Duration = time.Since(start)
				return summary, fmt.Errorf("systemic failure during sweep: %w", itemErr)
			}
		}
	}

	summary.Duration = time.Since(start)
	sweepDurationSeconds.Observe(summary.Duration.Seconds())

	s.logger.Info("sweep completed",
		"found", summary.Found,
		"deleted", summary.Deleted,
		"alreadyAbsent", summary.AlreadyAbsent,
		"errors", summary.Errors,
		"duration", summary.Duration)

	return summary, nil
}

// sweepFile reclaims one expired file: delete-if-exists on the blob, then mark
// the metadata deleted and expire the file's links. The metadata is only
// marked once the blob is gone or confirmed absent, so a crashed or failed run
// re-finds the file on the next pass.
func (s *sweeper) sweepFile(ctx context.Context, file domain.FileMetadata) (domain.SweepItemOutcome, error) {

	var blobDeleted bool
	err := withRetry(ctx, s.logger, "delete blob", func() error {
		var dErr error
		blobDeleted, dErr = s.storage.Delete(ctx, file.StorageKey)
		return dErr
	})
	if err != nil {
		// Storage trouble stays a per-item outcome; the run moves on.
		s.logger.Error("failed to delete blob for expired file",
			"fileID", file.ID, "storageKey", file.StorageKey, "error", err)
		return domain.SweepOutcomeError, nil
	}

	err = withRetry(ctx, s.logger, "mark file deleted", func() error {
		return s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
			if _, txErr := uow.FileRepo().UpdateStatusIf(ctx, file.ID, domain.FileStatusActive, domain.FileStatusDeleted); txErr != nil {
				return txErr
			}
			if _, txErr := uow.LinkRepo().ExpireActiveByFileID(ctx, file.ID); txErr != nil {
				return txErr
			}
			return nil
		})
	})
	if err != nil {
		s.logger.Error("failed to mark expired file deleted",
			"fileID", file.ID, "error", err)
		return domain.SweepOutcomeError, err
	}

	s.recorder.Record(ctx, domain.AccessLog{
		FileID: file.ID,
		Action: domain.ActionFileDeleted,
	})

	if blobDeleted {
		return domain.SweepOutcomeDeleted, nil
	}
	return domain.SweepOutcomeAlreadyAbsent, nil
}
