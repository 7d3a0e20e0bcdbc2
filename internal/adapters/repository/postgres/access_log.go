package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"share-safely/internal/core/domain"
	"share-safely/internal/core/port"
)

type sqlAccessLogRepository struct {
	db SQLQuerier
}

// NewSqlAccessLogRepository creates sqlAccessLogRepository that implements port.AccessLogRepository
func NewSqlAccessLogRepository(db SQLQuerier) port.AccessLogRepository {
	return &sqlAccessLogRepository{
		db: db,
	}
}

// Append inserts an access-trail entry. There are no update or delete paths.
func (s *sqlAccessLogRepository) Append(ctx context.Context, entry domain.AccessLog) error {
	query := `INSERT INTO access_logs (id, file_id, link_id, action, at, ip)
              VALUES ($1, $2, $3, $4, $5, $6)`

	var ip sql.NullString
	if entry.IP != "" {
		ip = sql.NullString{String: entry.IP, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.FileID, entry.LinkID, entry.Action, entry.Timestamp, ip)
	if err != nil {
		return fmt.Errorf("error inserting access log: %w", err)
	}
	return nil
}
