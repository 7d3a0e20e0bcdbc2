package link

import (
	"context"
	"share-safely/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockLinkService struct {
	mock.Mock
}

func NewMockLinkService() *MockLinkService {
	return &MockLinkService{}
}

func (m *MockLinkService) Issue(ctx context.Context, fileID uuid.UUID, ttlMinutes int, ip string) (*domain.Link, error) {
	args := m.Called(ctx, fileID, ttlMinutes, ip)
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkService) Validate(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockLinkService) Resolve(ctx context.Context, token string, ip string) (*domain.DownloadTarget, error) {
	args := m.Called(ctx, token, ip)
	return args.Get(0).(*domain.DownloadTarget), args.Error(1)
}

func (m *MockLinkService) Revoke(ctx context.Context, linkID uuid.UUID) (bool, error) {
	args := m.Called(ctx, linkID)
	return args.Bool(0), args.Error(1)
}
