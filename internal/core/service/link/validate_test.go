package link_test

import (
	"context"
	"share-safely/internal/core/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeLink(expiresAt time.Time) domain.Link {
	return domain.Link{
		ID:        uuid.New(),
		FileID:    uuid.New(),
		Token:     "sGQIo1wVyU4D8cfOYl3Kp5nB2ZtRmx7a",
		URL:       "http://localhost:8080/api/v1/links/download/sGQIo1wVyU4D8cfOYl3Kp5nB2ZtRmx7a",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
		ExpiresAt: expiresAt,
		Status:    domain.LinkStatusActive,
	}
}

func TestLinkService_Validate_EmptyToken(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, _, _, service := newIssueFixture()

	// Act
	valid, err := service.Validate(ctx, "")

	// Assert
	require.NoError(t, err)
	assert.False(t, valid)
	mockUow.GetLinkRepoMock().AssertNotCalled(t, "FindByToken", mock.Anything, mock.Anything)
}

func TestLinkService_Validate_UnknownTokenDoesNotMutate(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, _, recorder, service := newIssueFixture()

	mockLinkRepo := mockUow.GetLinkRepoMock()
	mockLinkRepo.On("FindByToken", ctx, "no-such-token").Return((*domain.Link)(nil), domain.ErrTokenNotFound)

	// Act
	valid, err := service.Validate(ctx, "no-such-token")

	// Assert
	require.NoError(t, err)
	assert.False(t, valid)
	mockLinkRepo.AssertNotCalled(t, "UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, recorder.Recorded())
}

func TestLinkService_Validate_ActiveUnexpired(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, _, _, service := newIssueFixture()

	l := activeLink(time.Now().UTC().Add(time.Hour))
	mockUow.GetLinkRepoMock().On("FindByToken", ctx, l.Token).Return(&l, nil)

	// Act
	valid, err := service.Validate(ctx, l.Token)

	// Assert
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestLinkService_Validate_Revoked(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, _, _, service := newIssueFixture()

	l := activeLink(time.Now().UTC().Add(time.Hour))
	l.Status = domain.LinkStatusRevoked
	mockUow.GetLinkRepoMock().On("FindByToken", ctx, l.Token).Return(&l, nil)

	// Act
	valid, err := service.Validate(ctx, l.Token)

	// Assert
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestLinkService_Validate_ExpiryFlipsStatus(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, _, recorder, service := newIssueFixture()

	l := activeLink(time.Now().UTC().Add(-time.Minute))
	mockLinkRepo := mockUow.GetLinkRepoMock()
	mockLinkRepo.On("FindByToken", ctx, l.Token).Return(&l, nil)
	mockLinkRepo.On("UpdateStatusIf", ctx, l.ID, domain.LinkStatusActive, domain.LinkStatusExpired).Return(true, nil)

	// Act
	valid, err := service.Validate(ctx, l.Token)

	// Assert
	require.NoError(t, err)
	assert.False(t, valid)
	entries := recorder.Recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionLinkExpired, entries[0].Action)
	mockLinkRepo.AssertExpectations(t)
}

func TestLinkService_Validate_ExpiryFlipLostRace(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow, _, recorder, service := newIssueFixture()

	l := activeLink(time.Now().UTC().Add(-time.Minute))
	mockLinkRepo := mockUow.GetLinkRepoMock()
	mockLinkRepo.On("FindByToken", ctx, l.Token).Return(&l, nil)
	mockLinkRepo.On("UpdateStatusIf", ctx, l.ID, domain.LinkStatusActive, domain.LinkStatusExpired).Return(false, nil)

	// Act
	valid, err := service.Validate(ctx, l.Token)

	// Assert
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Empty(t, recorder.Recorded())
}
