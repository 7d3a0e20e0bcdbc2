package audit

import (
	"context"
	"log/slog"
	"share-safely/internal/core/domain"
	"share-safely/internal/core/port"
	"time"

	"github.com/google/uuid"
)

type recorder struct {
	uow       port.UnitOfWork
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewRecorder creates an access-trail recorder. The publisher may be nil when
// no event broker is configured.
func NewRecorder(uow port.UnitOfWork, publisher port.EventPublisher, logger *slog.Logger) port.AccessRecorder {
	return &recorder{
		uow:       uow,
		publisher: publisher,
		logger:    logger,
	}
}

// Record appends an access-trail entry and publishes it to the broker.
// Trail failures never fail the operation being recorded.
func (r *recorder) Record(ctx context.Context, entry domain.AccessLog) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	if err := r.uow.AccessLogRepo().Append(ctx, entry); err != nil {
		r.logger.Error("failed to append access log", "error", err, "action", entry.Action, "fileID", entry.FileID)
	}

	if r.publisher != nil {
		if err := r.publisher.PublishAccessEvent(ctx, entry.ToEvent()); err != nil {
			r.logger.Warn("failed to publish access event", "error", err, "action", entry.Action)
		}
	}
}
