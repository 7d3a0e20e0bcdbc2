package upload_test

import (
	"bytes"
	"context"
	"log/slog"
	"share-safely/internal/adapters/repository"
	"share-safely/internal/adapters/storage"
	"share-safely/internal/config"
	"share-safely/internal/core/domain"
	"share-safely/internal/core/port"
	"share-safely/internal/core/service/audit"
	"share-safely/internal/core/service/upload"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUploadFixture() (*repository.MockUnitOfWork, *storage.MockStorage, *audit.RecorderSpy, port.FileService) {
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	recorder := audit.NewRecorderSpy()
	cfg := config.UploadConfig{
		MaxSizeBytes:      1024 * 1024,
		AllowedExtensions: []string{".pdf", ".txt", ".png"},
	}
	service := upload.NewFileService(mockUow, mockStorage, recorder, cfg, slog.Default())
	return mockUow, mockStorage, recorder, service
}

func TestFileService_Upload_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, mockStorage, recorder, service := newUploadFixture()

	content := bytes.NewReader([]byte("hello"))
	mockStorage.On("Put", ctx, mock.AnythingOfType("string"), content, int64(5), "application/pdf").Return(nil)
	mockUow.GetFileRepoMock().On("Create", ctx, mock.AnythingOfType("domain.FileMetadata")).Return(nil)

	// Act
	metadata, err := service.Upload(ctx, "report.pdf", "application/pdf", 5, content, nil, "10.0.0.1")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, metadata)
	assert.Equal(t, "report.pdf", metadata.OriginalName)
	assert.Equal(t, domain.FileStatusActive, metadata.Status)
	assert.Equal(t, metadata.ID.String()+".pdf", metadata.StorageKey)
	assert.Nil(t, metadata.ExpiresAt)

	entries := recorder.Recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionUploaded, entries[0].Action)
	mockStorage.AssertExpectations(t)
	mockUow.GetFileRepoMock().AssertExpectations(t)
}

func TestFileService_Upload_WithTTL(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, mockStorage, _, service := newUploadFixture()

	content := bytes.NewReader([]byte("hello"))
	ttl := 2 * time.Hour
	mockStorage.On("Put", ctx, mock.AnythingOfType("string"), content, int64(5), "text/plain").Return(nil)
	mockUow.GetFileRepoMock().On("Create", ctx, mock.AnythingOfType("domain.FileMetadata")).Return(nil)

	// Act
	metadata, err := service.Upload(ctx, "notes.txt", "text/plain", 5, content, &ttl, "")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, metadata.ExpiresAt)
	assert.WithinDuration(t, time.Now().UTC().Add(ttl), *metadata.ExpiresAt, 5*time.Second)
}

func TestFileService_Upload_DisallowedExtension(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, mockStorage, _, service := newUploadFixture()

	// Act
	metadata, err := service.Upload(ctx, "payload.exe", "application/octet-stream", 5, bytes.NewReader(nil), nil, "")

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidFileType)
	assert.Nil(t, metadata)
	mockStorage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockUow.GetFileRepoMock().AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFileService_Upload_NoExtension(t *testing.T) {
	// Arrange
	ctx := context.Background()
	_, mockStorage, _, service := newUploadFixture()

	// Act
	metadata, err := service.Upload(ctx, "README", "text/plain", 5, bytes.NewReader(nil), nil, "")

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidFileType)
	assert.Nil(t, metadata)
	mockStorage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFileService_Upload_TooBig(t *testing.T) {
	// Arrange
	ctx := context.Background()
	_, mockStorage, _, service := newUploadFixture()

	// Act
	metadata, err := service.Upload(ctx, "huge.pdf", "application/pdf", 2*1024*1024, bytes.NewReader(nil), nil, "")

	// Assert
	assert.ErrorIs(t, err, domain.ErrFileSizeTooBig)
	assert.Nil(t, metadata)
	mockStorage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFileService_Upload_ExtensionCaseInsensitive(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, mockStorage, _, service := newUploadFixture()

	content := bytes.NewReader([]byte("img"))
	mockStorage.On("Put", ctx, mock.AnythingOfType("string"), content, int64(3), "image/png").Return(nil)
	mockUow.GetFileRepoMock().On("Create", ctx, mock.AnythingOfType("domain.FileMetadata")).Return(nil)

	// Act
	metadata, err := service.Upload(ctx, "photo.PNG", "image/png", 3, content, nil, "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, metadata.ID.String()+".png", metadata.StorageKey)
}

func TestFileService_Upload_StorageFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, mockStorage, _, service := newUploadFixture()

	content := bytes.NewReader([]byte("hello"))
	mockStorage.On("Put", ctx, mock.AnythingOfType("string"), content, int64(5), "application/pdf").Return(assert.AnError)

	// Act
	metadata, err := service.Upload(ctx, "report.pdf", "application/pdf", 5, content, nil, "")

	// Assert
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Nil(t, metadata)
	mockUow.GetFileRepoMock().AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
