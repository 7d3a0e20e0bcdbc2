package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"share-safely/internal/core/domain"
	"share-safely/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlLinkRepository struct {
	db SQLQuerier
}

// NewSqlLinkRepository creates sqlLinkRepository that implements port.LinkRepository
func NewSqlLinkRepository(db SQLQuerier) port.LinkRepository {
	return &sqlLinkRepository{
		db: db,
	}
}

// Create creates a new link row. The unique index on token surfaces as
// domain.ErrAlreadyExists so the issuer can retry with a fresh token.
func (s *sqlLinkRepository) Create(ctx context.Context, link domain.Link) error {
	query := `INSERT INTO links (id, file_id, token, url, created_at, expires_at, status, access_count)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		link.ID, link.FileID, link.Token, link.URL,
		link.CreatedAt, link.ExpiresAt, link.Status, link.AccessCount)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("link token: %w", domain.ErrAlreadyExists)
		}
		return fmt.Errorf("error inserting link: %w", err)
	}
	return nil
}

// FindByToken finds a link by its token
func (s *sqlLinkRepository) FindByToken(ctx context.Context, token string) (*domain.Link, error) {
	l, err := s.findOne(ctx, `token = $1`, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}
	return l, nil
}

// FindByID finds a link by id
func (s *sqlLinkRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	l, err := s.findOne(ctx, `id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *sqlLinkRepository) findOne(ctx context.Context, where string, arg any) (*domain.Link, error) {
	query := `SELECT id, file_id, token, url, created_at, expires_at, status, access_count
              FROM links
              WHERE ` + where

	var dbLink dbLink
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&dbLink.ID,
		&dbLink.FileID,
		&dbLink.Token,
		&dbLink.URL,
		&dbLink.CreatedAt,
		&dbLink.ExpiresAt,
		&dbLink.Status,
		&dbLink.AccessCount,
	)
	if err != nil {
		return nil, err
	}
	return dbLink.ToDomain(), nil
}

// UpdateStatusIf performs a compare-and-set on the status column
func (s *sqlLinkRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to domain.LinkStatus) (bool, error) {
	query := `UPDATE links
              SET status = $1
              WHERE id = $2 AND status = $3`

	result, err := s.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("error updating link status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error checking rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// IncrementAccessCount adds one to the counter in a single row-level atomic
// write, conditioned on the link still being active and unexpired. Concurrent
// callers serialize on the row; none of the increments can be lost.
func (s *sqlLinkRepository) IncrementAccessCount(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	query := `UPDATE links
              SET access_count = access_count + 1
              WHERE id = $1 AND status = 'active' AND expires_at > $2`

	result, err := s.db.ExecContext(ctx, query, id, now)
	if err != nil {
		return false, fmt.Errorf("error incrementing access count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error checking rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// ExpireActiveByFileID marks every active link of a file expired
func (s *sqlLinkRepository) ExpireActiveByFileID(ctx context.Context, fileID uuid.UUID) (int, error) {
	query := `UPDATE links
              SET status = 'expired'
              WHERE file_id = $1 AND status = 'active'`

	result, err := s.db.ExecContext(ctx, query, fileID)
	if err != nil {
		return 0, fmt.Errorf("error expiring links for file: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error checking rows affected: %w", err)
	}

	return int(rowsAffected), nil
}

// dbLink represents a link row in DB
type dbLink struct {
	ID          uuid.UUID `db:"id"`
	FileID      uuid.UUID `db:"file_id"`
	Token       string    `db:"token"`
	URL         string    `db:"url"`
	CreatedAt   time.Time `db:"created_at"`
	ExpiresAt   time.Time `db:"expires_at"`
	Status      string    `db:"status"`
	AccessCount int       `db:"access_count"`
}

// ToDomain converts to domain.Link
func (l *dbLink) ToDomain() *domain.Link {
	return &domain.Link{
		ID:          l.ID,
		FileID:      l.FileID,
		Token:       l.Token,
		URL:         l.URL,
		CreatedAt:   l.CreatedAt,
		ExpiresAt:   l.ExpiresAt,
		Status:      domain.LinkStatus(l.Status),
		AccessCount: l.AccessCount,
	}
}
