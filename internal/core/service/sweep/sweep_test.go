package sweep_test

import (
	"context"
	"share-safely/internal/adapters/repository"
	"share-safely/internal/adapters/storage"
	"share-safely/internal/core/domain"
	"share-safely/internal/core/port"
	"share-safely/internal/core/service/audit"
	"share-safely/internal/core/service/sweep"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSweepFixture() (*repository.MockUnitOfWork, *storage.MockStorage, *audit.RecorderSpy, port.Sweeper) {
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	recorder := audit.NewRecorderSpy()
	sweeper := sweep.NewSweeper(mockUow, mockStorage, recorder, slog.Default())
	return mockUow, mockStorage, recorder, sweeper
}

func expiredFile(key string) domain.FileMetadata {
	expiry := time.Now().UTC().Add(-time.Hour)
	return domain.FileMetadata{
		ID:           uuid.New(),
		OriginalName: "old.pdf",
		ContentType:  "application/pdf",
		SizeBytes:    512,
		UploadedAt:   time.Now().UTC().Add(-2 * time.Hour),
		ExpiresAt:    &expiry,
		Status:       domain.FileStatusActive,
		StorageKey:   key,
	}
}

func TestSweeper_Run_NothingExpired(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, _, _, sweeper := newSweepFixture()

	now := time.Now().UTC()
	mockUow.GetFileRepoMock().On("FindExpired", ctx, now).Return([]domain.FileMetadata{}, nil)

	// Act
	summary, err := sweeper.Run(ctx, now)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Found)
	assert.Equal(t, 0, summary.Deleted)
	assert.Equal(t, 0, summary.AlreadyAbsent)
	assert.Equal(t, 0, summary.Errors)
}

func TestSweeper_Run_DeletedAndAlreadyAbsent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, mockStorage, recorder, sweeper := newSweepFixture()

	now := time.Now().UTC()
	f1 := expiredFile("key-1.pdf")
	f2 := expiredFile("key-2.pdf")

	mockFileRepo := mockUow.GetFileRepoMock()
	mockLinkRepo := mockUow.GetLinkRepoMock()

	mockFileRepo.On("FindExpired", ctx, now).Return([]domain.FileMetadata{f1, f2}, nil)
	mockStorage.On("Delete", ctx, f1.StorageKey).Return(true, nil)
	// f2's blob was already removed out of band; delete-if-exists treats that as done.
	mockStorage.On("Delete", ctx, f2.StorageKey).Return(false, nil)

	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockFileRepo.On("UpdateStatusIf", ctx, f1.ID, domain.FileStatusActive, domain.FileStatusDeleted).Return(true, nil)
	mockFileRepo.On("UpdateStatusIf", ctx, f2.ID, domain.FileStatusActive, domain.FileStatusDeleted).Return(true, nil)
	mockLinkRepo.On("ExpireActiveByFileID", ctx, f1.ID).Return(1, nil)
	mockLinkRepo.On("ExpireActiveByFileID", ctx, f2.ID).Return(0, nil)

	// Act
	summary, err := sweeper.Run(ctx, now)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Found)
	assert.Equal(t, 1, summary.Deleted)
	assert.Equal(t, 1, summary.AlreadyAbsent)
	assert.Equal(t, 0, summary.Errors)

	entries := recorder.Recorded()
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActionFileDeleted, entries[0].Action)
	assert.Equal(t, domain.ActionFileDeleted, entries[1].Action)
	mockFileRepo.AssertExpectations(t)
	mockLinkRepo.AssertExpectations(t)
	mockStorage.AssertExpectations(t)
}

func TestSweeper_Run_EnumerationFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, _, _, sweeper := newSweepFixture()

	now := time.Now().UTC()
	mockUow.GetFileRepoMock().On("FindExpired", ctx, now).Return([]domain.FileMetadata{}, assert.AnError)

	// Act
	summary, err := sweeper.Run(ctx, now)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, summary)
}

func TestSweeper_Run_PerItemStorageFailureDoesNotAbort(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, mockStorage, recorder, sweeper := newSweepFixture()

	now := time.Now().UTC()
	f1 := expiredFile("broken.pdf")
	f2 := expiredFile("fine.pdf")

	mockFileRepo := mockUow.GetFileRepoMock()
	mockLinkRepo := mockUow.GetLinkRepoMock()

	mockFileRepo.On("FindExpired", ctx, now).Return([]domain.FileMetadata{f1, f2}, nil)
	mockStorage.On("Delete", ctx, f1.StorageKey).Return(false, assert.AnError)
	mockStorage.On("Delete", ctx, f2.StorageKey).Return(true, nil)

	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockFileRepo.On("UpdateStatusIf", ctx, f2.ID, domain.FileStatusActive, domain.FileStatusDeleted).Return(true, nil)
	mockLinkRepo.On("ExpireActiveByFileID", ctx, f2.ID).Return(0, nil)

	// Act
	summary, err := sweeper.Run(ctx, now)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Found)
	assert.Equal(t, 1, summary.Deleted)
	assert.Equal(t, 1, summary.Errors)

	// f1 was never marked deleted, so the next run re-finds it.
	mockFileRepo.AssertNotCalled(t, "UpdateStatusIf", ctx, f1.ID, mock.Anything, mock.Anything)
	entries := recorder.Recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, f2.ID, entries[0].FileID)
}

func TestSweeper_Run_AlreadySweptFileIsIdempotent(t *testing.T) {
	// Arrange: the CAS on the file status lost to a concurrent delete, which
	// changes nothing about the outcome.
	ctx := context.Background()
	mockUow, mockStorage, _, sweeper := newSweepFixture()

	now := time.Now().UTC()
	f := expiredFile("key.pdf")

	mockFileRepo := mockUow.GetFileRepoMock()
	mockFileRepo.On("FindExpired", ctx, now).Return([]domain.FileMetadata{f}, nil)
	mockStorage.On("Delete", ctx, f.StorageKey).Return(false, nil)
	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockFileRepo.On("UpdateStatusIf", ctx, f.ID, domain.FileStatusActive, domain.FileStatusDeleted).Return(false, nil)
	mockUow.GetLinkRepoMock().On("ExpireActiveByFileID", ctx, f.ID).Return(0, nil)

	// Act
	summary, err := sweeper.Run(ctx, now)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, summary.AlreadyAbsent)
	assert.Equal(t, 0, summary.Errors)
}

func TestSweeper_Run_RetriesTransientBlobDelete(t *testing.T) {
	// Arrange: the object store throttles once, then serves the delete.
	ctx := context.Background()
	mockUow, mockStorage, _, sweeper := newSweepFixture()

	now := time.Now().UTC()
	f := expiredFile("flaky.pdf")

	mockFileRepo := mockUow.GetFileRepoMock()
	mockFileRepo.On("FindExpired", ctx, now).Return([]domain.FileMetadata{f}, nil)
	mockStorage.On("Delete", ctx, f.StorageKey).Return(false, minio.ErrorResponse{StatusCode: 503, Code: "SlowDown"}).Once()
	mockStorage.On("Delete", ctx, f.StorageKey).Return(true, nil).Once()

	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockFileRepo.On("UpdateStatusIf", ctx, f.ID, domain.FileStatusActive, domain.FileStatusDeleted).Return(true, nil)
	mockUow.GetLinkRepoMock().On("ExpireActiveByFileID", ctx, f.ID).Return(0, nil)

	// Act
	summary, err := sweeper.Run(ctx, now)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Deleted)
	assert.Equal(t, 0, summary.Errors)
	mockStorage.AssertExpectations(t)
}

func TestSweeper_Run_SecondRunFindsNothing(t *testing.T) {
	// Arrange: once a file is marked deleted the next enumeration skips it.
	ctx := context.Background()
	mockUow, mockStorage, _, sweeper := newSweepFixture()

	now := time.Now().UTC()
	f := expiredFile("once.pdf")

	mockFileRepo := mockUow.GetFileRepoMock()
	mockFileRepo.On("FindExpired", ctx, now).Return([]domain.FileMetadata{f}, nil).Once()
	mockFileRepo.On("FindExpired", ctx, now).Return([]domain.FileMetadata{}, nil).Once()
	mockStorage.On("Delete", ctx, f.StorageKey).Return(true, nil).Once()
	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockFileRepo.On("UpdateStatusIf", ctx, f.ID, domain.FileStatusActive, domain.FileStatusDeleted).Return(true, nil)
	mockUow.GetLinkRepoMock().On("ExpireActiveByFileID", ctx, f.ID).Return(0, nil)

	// Act
	first, err := sweeper.Run(ctx, now)
	require.NoError(t, err)
	second, err := sweeper.Run(ctx, now)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, first.Deleted)
	assert.Equal(t, 0, second.Found)
	assert.Equal(t, 0, second.Deleted)
	mockStorage.AssertNumberOfCalls(t, "Delete", 1)
}

func TestSweeper_Run_TransientMetadataFailureAbortsAfterRetries(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, mockStorage, _, sweeper := newSweepFixture()

	now := time.Now().UTC()
	f := expiredFile("key.pdf")
	connErr := &pq.Error{Code: "08006"} // connection_failure

	mockFileRepo := mockUow.GetFileRepoMock()
	mockFileRepo.On("FindExpired", ctx, now).Return([]domain.FileMetadata{f}, nil)
	mockStorage.On("Delete", ctx, f.StorageKey).Return(true, nil)
	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockFileRepo.On("UpdateStatusIf", ctx, f.ID, domain.FileStatusActive, domain.FileStatusDeleted).Return(false, connErr)

	// Act
	summary, err := sweeper.Run(ctx, now)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, connErr)
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.Errors)
	// Exhausted the whole backoff ladder before giving up.
	mockFileRepo.AssertNumberOfCalls(t, "UpdateStatusIf", 3)
}
