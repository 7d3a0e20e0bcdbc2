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
)

type sqlFileRepository struct {
	db SQLQuerier
}

// NewSqlFileRepository creates sqlFileRepository that implements port.FileRepository
func NewSqlFileRepository(db SQLQuerier) port.FileRepository {
	return &sqlFileRepository{
		db: db,
	}
}

// Create creates a new file metadata row
func (s *sqlFileRepository) Create(ctx context.Context, file domain.FileMetadata) error {
	query := `INSERT INTO files (id, original_name, content_type, size_bytes, uploaded_at, expires_at, status, storage_key)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		file.ID, file.OriginalName, file.ContentType, file.SizeBytes,
		file.UploadedAt, file.ExpiresAt, file.Status, file.StorageKey)
	if err != nil {
		return fmt.Errorf("error inserting file metadata: %w", err)
	}
	return nil
}

// FindByID finds a file by id
func (s *sqlFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FileMetadata, error) {
	query := `SELECT id, original_name, content_type, size_bytes, uploaded_at, expires_at, status, storage_key
              FROM files
              WHERE id = $1`

	var dbFile dbFileMetadata
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&dbFile.ID,
		&dbFile.OriginalName,
		&dbFile.ContentType,
		&dbFile.SizeBytes,
		&dbFile.UploadedAt,
		&dbFile.ExpiresAt,
		&dbFile.Status,
		&dbFile.StorageKey,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileNotFound
		}
		return nil, err
	}

	return dbFile.ToDomain(), nil
}

// UpdateStatusIf performs a compare-and-set on the status column. Zero rows
// affected means the row was gone or its status had already moved on.
func (s *sqlFileRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to domain.FileStatus) (bool, error) {
	query := `UPDATE files
              SET status = $1
              WHERE id = $2 AND status = $3`

	result, err := s.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("error updating file status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error checking rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// FindExpired finds active files whose own expiry has passed
func (s *sqlFileRepository) FindExpired(ctx context.Context, now time.Time) ([]domain.FileMetadata, error) {
	query := `SELECT id, original_name, content_type, size_bytes, uploaded_at, expires_at, status, storage_key
              FROM files
              WHERE status = 'active'
                AND expires_at IS NOT NULL
                AND expires_at < $1`

	rows, err := s.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("error querying expired files: %w", err)
	}
	defer rows.Close()

	var files []domain.FileMetadata
	for rows.Next() {
		var dbFile dbFileMetadata
		err := rows.Scan(
			&dbFile.ID,
			&dbFile.OriginalName,
			&dbFile.ContentType,
			&dbFile.SizeBytes,
			&dbFile.UploadedAt,
			&dbFile.ExpiresAt,
			&dbFile.Status,
			&dbFile.StorageKey,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning file metadata: %w", err)
		}
		files = append(files, *dbFile.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating files: %w", err)
	}

	return files, nil
}

// dbFileMetadata represents a file row in DB
type dbFileMetadata struct {
	ID           uuid.UUID    `db:"id"`
	OriginalName string       `db:"original_name"`
	ContentType  string       `db:"content_type"`
	SizeBytes    int64        `db:"size_bytes"`
	UploadedAt   time.Time    `db:"uploaded_at"`
	ExpiresAt    sql.NullTime `db:"expires_at"`
	Status       string       `db:"status"`
	StorageKey   string       `db:"storage_key"`
}

// ToDomain converts to domain.FileMetadata
func (f *dbFileMetadata) ToDomain() *domain.FileMetadata {
	m := &domain.FileMetadata{
		ID:           f.ID,
		OriginalName: f.OriginalName,
		ContentType:  f.ContentType,
		SizeBytes:    f.SizeBytes,
		UploadedAt:   f.UploadedAt,
		Status:       domain.FileStatus(f.Status),
		StorageKey:   f.StorageKey,
	}
	if f.ExpiresAt.Valid {
		t := f.ExpiresAt.Time
		m.ExpiresAt = &t
	}
	return m
}
