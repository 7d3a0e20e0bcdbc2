package link

import (
	"context"
	"errors"
	"share-safely/internal/core/domain"
	"time"
)

// Validate decides whether a token is currently usable. A link found active
// but past its expiry is flipped to expired before reporting invalid, so the
// expiry becomes durable for future readers instead of being recomputed.
func (s *linkService) Validate(ctx context.Context, token string) (bool, error) {

	if token == "" {
		return false, nil
	}

	l, err := s.uow.LinkRepo().FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return false, nil
		}
		return false, err
	}

	if l.Status != domain.LinkStatusActive {
		return false, nil
	}

	now := time.Now().UTC()
	if !l.Expired(now) {
		return true, nil
	}

	// Conditioned on the row still being active: losing this race means a
	// concurrent revoke or validation already moved it to a terminal state,
	// which changes nothing about the answer.
	flipped, err := s.uow.LinkRepo().UpdateStatusIf(ctx, l.ID, domain.LinkStatusActive, domain.LinkStatusExpired)
	if err != nil {
		return false, err
	}
	if flipped {
		s.recorder.Record(ctx, domain.AccessLog{
			FileID: l.FileID,
			LinkID: &l.ID,
			Action: domain.ActionLinkExpired,
		})
	}

	return false, nil
}
