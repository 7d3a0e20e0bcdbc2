package link

import (
	"context"
	"errors"
	"share-safely/internal/core/domain"

	"github.com/google/uuid"
)

// Revoke moves a link to revoked. It returns false without error when there
// is nothing to do: unknown id, or already revoked.
func (s *linkService) Revoke(ctx context.Context, linkID uuid.UUID) (bool, error) {

	l, err := s.uow.LinkRepo().FindByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return false, nil
		}
		return false, err
	}

	if l.Status == domain.LinkStatusRevoked {
		return false, nil
	}

	ok, err := s.uow.LinkRepo().UpdateStatusIf(ctx, linkID, l.Status, domain.LinkStatusRevoked)
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Info("link revoked", "linkID", linkID)
		return true, nil
	}

	// Lost the race: re-read and re-evaluate from the fresh state.
	fresh, err := s.uow.LinkRepo().FindByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return false, nil
		}
		return false, err
	}
	if fresh.Status == domain.LinkStatusRevoked {
		return false, nil
	}

	ok, err = s.uow.LinkRepo().UpdateStatusIf(ctx, linkID, fresh.Status, domain.LinkStatusRevoked)
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Info("link revoked", "linkID", linkID)
	}
	return ok, nil
}
