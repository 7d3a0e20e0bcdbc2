package port

import (
	"context"
	"share-safely/internal/core/domain"
)

// AccessLogRepository is an interface to append entries to the access trail.
// The trail is append-only; there are no update or delete operations.
type AccessLogRepository interface {
	Append(ctx context.Context, entry domain.AccessLog) error
}

// AccessRecorder records an access-trail entry. Implementations must never
// fail the calling operation: persistence or publish errors are logged and dropped.
type AccessRecorder interface {
	Record(ctx context.Context, entry domain.AccessLog)
}

// EventPublisher is an interface to define an access-event publisher (nats, kafka, ...)
type EventPublisher interface {
	PublishAccessEvent(ctx context.Context, event domain.AccessEvent) error
	Close() error
}
