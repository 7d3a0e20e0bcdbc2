package link

import (
	"context"
	"errors"
	"fmt"
	"share-safely/internal/core/domain"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Issue creates an active link for a file and mints its opaque token.
// The token is independent of any storage URL; delegated URLs are only
// produced at resolve time.
func (s *linkService) Issue(ctx context.Context, fileID uuid.UUID, ttlMinutes int, ip string) (*domain.Link, error) {

	if ttlMinutes < 1 || ttlMinutes > s.cfg.MaxTTLMinutes {
		return nil, fmt.Errorf("%w: ttl must be between 1 and %d minutes", domain.ErrInvalidTTL, s.cfg.MaxTTLMinutes)
	}

	file, err := s.uow.FileRepo().FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.Status != domain.FileStatusActive {
		return nil, domain.ErrFileNotFound
	}

	now := time.Now().UTC()
	if file.Expired(now) {
		return nil, domain.ErrFileExpired
	}

	exists, err := s.storage.Exists(ctx, file.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	if !exists {
		s.logger.Error("consistency fault: active file has no blob",
			"fileID", file.ID, "storageKey", file.StorageKey)
		return nil, domain.ErrObjectMissing
	}

	created, err := s.mintLink(ctx, file.ID, ttlMinutes, now)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, domain.AccessLog{
		FileID: file.ID,
		LinkID: &created.ID,
		Action: domain.ActionLinkGenerated,
		IP:     ip,
	})

	return created, nil
}

// mintLink persists a new link row. A token unique-index collision is retried
// once with a fresh token before giving up.
func (s *linkService) mintLink(ctx context.Context, fileID uuid.UUID, ttlMinutes int, now time.Time) (*domain.Link, error) {
	for attempt := 0; attempt < 2; attempt++ {
		token, err := newToken()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInternal, err)
		}

		l := domain.Link{
			ID:          uuid.New(),
			FileID:      fileID,
			Token:       token,
			URL:         s.downloadURL(token),
			CreatedAt:   now,
			ExpiresAt:   now.Add(time.Duration(ttlMinutes) * time.Minute),
			Status:      domain.LinkStatusActive,
			AccessCount: 0,
		}

		createErr := s.uow.LinkRepo().Create(ctx, l)
		if createErr == nil {
			return &l, nil
		}
		if !errors.Is(createErr, domain.ErrAlreadyExists) {
			return nil, createErr
		}
		s.logger.Warn("token collision on link create, retrying", "fileID", fileID)
	}
	return nil, fmt.Errorf("%w: token collision persisted after retry", domain.ErrInternal)
}

func (s *linkService) downloadURL(token string) string {
	return fmt.Sprintf("%s/api/v1/links/download/%s", strings.TrimRight(s.cfg.BaseURL, "/"), token)
}
