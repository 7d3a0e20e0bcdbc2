package link

import (
	"context"
	"errors"
	"fmt"
	"share-safely/internal/core/domain"
	"time"
)

// Resolve re-validates the token and, on success, returns the download target
// and increments the access count. It never trusts a prior Validate call.
func (s *linkService) Resolve(ctx context.Context, token string, ip string) (*domain.DownloadTarget, error) {

	l, err := s.uow.LinkRepo().FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	switch l.Status {
	case domain.LinkStatusRevoked:
		return nil, domain.ErrLinkRevoked
	case domain.LinkStatusExpired:
		return nil, domain.ErrLinkExpired
	}

	now := time.Now().UTC()
	if l.Expired(now) {
		flipped, flipErr := s.uow.LinkRepo().UpdateStatusIf(ctx, l.ID, domain.LinkStatusActive, domain.LinkStatusExpired)
		if flipErr != nil {
			return nil, flipErr
		}
		if flipped {
			s.recorder.Record(ctx, domain.AccessLog{
				FileID: l.FileID,
				LinkID: &l.ID,
				Action: domain.ActionLinkExpired,
				IP:     ip,
			})
		}
		return nil, domain.ErrLinkExpired
	}

	file, err := s.uow.FileRepo().FindByID(ctx, l.FileID)
	if err != nil {
		return nil, err
	}
	if file.Status != domain.FileStatusActive {
		// The owning file was expired or deleted; the link dies with it.
		return nil, domain.ErrLinkExpired
	}

	exists, err := s.storage.Exists(ctx, file.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	if !exists {
		s.logger.Error("consistency fault: active file has no blob",
			"fileID", file.ID, "storageKey", file.StorageKey, "linkID", l.ID)
		return nil, domain.ErrObjectMissing
	}

	target, err := s.storage.DownloadTarget(ctx, file.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	target.FileName = file.OriginalName

	// The increment is conditioned on the row still being active and unexpired,
	// so concurrent resolves never lose updates and a revoked link never counts.
	counted, err := s.uow.LinkRepo().IncrementAccessCount(ctx, l.ID, now)
	if err != nil {
		return nil, err
	}
	if !counted {
		return nil, s.lostRaceError(ctx, l)
	}

	s.recorder.Record(ctx, domain.AccessLog{
		FileID: file.ID,
		LinkID: &l.ID,
		Action: domain.ActionDownloaded,
		IP:     ip,
	})

	return target, nil
}

// lostRaceError re-reads a link whose conditional increment failed and maps
// the observed terminal state to the right error.
func (s *linkService) lostRaceError(ctx context.Context, l *domain.Link) error {
	fresh, err := s.uow.LinkRepo().FindByID(ctx, l.ID)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return domain.ErrTokenNotFound
		}
		return err
	}
	if fresh.Status == domain.LinkStatusRevoked {
		return domain.ErrLinkRevoked
	}
	return domain.ErrLinkExpired
}
