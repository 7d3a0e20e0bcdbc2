package postgres_test

import (
	"context"
	"share-safely/internal/adapters/repository/postgres"
	"share-safely/internal/core/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSqlAccessLogRepository_Append(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := postgres.NewSqlAccessLogRepository(dbConnection)

	t.Run("Append - With Link And IP", func(t *testing.T) {
		// Arrange
		truncate()
		linkID := uuid.New()
		entry := domain.AccessLog{
			ID:        uuid.New(),
			FileID:    uuid.New(),
			LinkID:    &linkID,
			Action:    domain.ActionDownloaded,
			Timestamp: time.Now().UTC(),
			IP:        "10.0.0.1",
		}

		// Act
		err := repo.Append(ctx, entry)

		// Assert
		require.NoError(t, err)
		var action, ip string
		err = dbConnection.QueryRowContext(ctx,
			`SELECT action, ip FROM access_logs WHERE id = $1`, entry.ID).Scan(&action, &ip)
		require.NoError(t, err)
		require.Equal(t, string(domain.ActionDownloaded), action)
		require.Equal(t, "10.0.0.1", ip)
	})

	t.Run("Append - Without Link Or IP", func(t *testing.T) {
		// Arrange
		truncate()
		entry := domain.AccessLog{
			ID:        uuid.New(),
			FileID:    uuid.New(),
			Action:    domain.ActionUploaded,
			Timestamp: time.Now().UTC(),
		}

		// Act
		err := repo.Append(ctx, entry)

		// Assert: link and ip land as NULL, not empty strings.
		require.NoError(t, err)
		var count int
		err = dbConnection.QueryRowContext(ctx,
			`SELECT count(*) FROM access_logs WHERE id = $1 AND link_id IS NULL AND ip IS NULL`, entry.ID).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})
}
