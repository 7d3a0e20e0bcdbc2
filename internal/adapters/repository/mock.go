package repository

import (
	"context"
	"share-safely/internal/core/domain"
	"share-safely/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockFileRepository struct {
	mock.Mock
}

func NewMockFileRepository() *MockFileRepository {
	return &MockFileRepository{}
}

func (m *MockFileRepository) Create(ctx context.Context, file domain.FileMetadata) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FileMetadata, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.FileMetadata), args.Error(1)
}

func (m *MockFileRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to domain.FileStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockFileRepository) FindExpired(ctx context.Context, now time.Time) ([]domain.FileMetadata, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.FileMetadata), args.Error(1)
}

type MockLinkRepository struct {
	mock.Mock
}

func NewMockLinkRepository() *MockLinkRepository {
	return &MockLinkRepository{}
}

func (m *MockLinkRepository) Create(ctx context.Context, link domain.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkRepository) FindByToken(ctx context.Context, token string) (*domain.Link, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to domain.LinkStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockLinkRepository) IncrementAccessCount(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, id, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockLinkRepository) ExpireActiveByFileID(ctx context.Context, fileID uuid.UUID) (int, error) {
	args := m.Called(ctx, fileID)
	return args.Int(0), args.Error(1)
}

type MockAccessLogRepository struct {
	mock.Mock
}

func NewMockAccessLogRepository() *MockAccessLogRepository {
	return &MockAccessLogRepository{}
}

func (m *MockAccessLogRepository) Append(ctx context.Context, entry domain.AccessLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockUnitOfWork struct {
	mock.Mock
	fileRepo      *MockFileRepository
	linkRepo      *MockLinkRepository
	accessLogRepo *MockAccessLogRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		fileRepo:      &MockFileRepository{},
		linkRepo:      &MockLinkRepository{},
		accessLogRepo: &MockAccessLogRepository{},
	}
}

func (m *MockUnitOfWork) FileRepo() port.FileRepository {
	return m.fileRepo
}

func (m *MockUnitOfWork) LinkRepo() port.LinkRepository {
	return m.linkRepo
}

func (m *MockUnitOfWork) AccessLogRepo() port.AccessLogRepository {
	return m.accessLogRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetFileRepoMock() *MockFileRepository {
	return m.fileRepo
}

func (m *MockUnitOfWork) GetLinkRepoMock() *MockLinkRepository {
	return m.linkRepo
}

func (m *MockUnitOfWork) GetAccessLogRepoMock() *MockAccessLogRepository {
	return m.accessLogRepo
}
