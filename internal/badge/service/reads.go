package service

import (
	"context"

	"credipet/internal/badge/models"
	"credipet/internal/ledger"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
)

// Reads go through the ledger's read side so they never observe a mint,
// evolution or health change that is still running.

// GetBadge returns the badge with the given id.
func (s *Service) GetBadge(ctx context.Context, badgeID id.BadgeID) (*models.Badge, error) {
	return ledger.Query(ctx, s.ledger, func(ctx context.Context) (*models.Badge, error) {
		return s.badgeByID(ctx, badgeID)
	})
}

// TokenURI returns the metadata location for a badge's current stage and health.
func (s *Service) TokenURI(ctx context.Context, badgeID id.BadgeID) (string, error) {
	return ledger.Query(ctx, s.ledger, func(ctx context.Context) (string, error) {
		badge, err := s.badgeByID(ctx, badgeID)
		if err != nil {
			return "", err
		}
		settings, err := s.settings(ctx)
		if err != nil {
			return "", err
		}
		return badge.TokenURI(settings.BaseURI), nil
	})
}

// HasBadge never fails for an unknown principal; it reports false.
func (s *Service) HasBadge(ctx context.Context, owner id.Principal) (bool, error) {
	badge, err := s.committedBadgeOf(ctx, owner)
	if err != nil {
		return false, err
	}
	return badge != nil, nil
}

// BadgeOf returns owner's badge id, or 0 when owner holds none.
func (s *Service) BadgeOf(ctx context.Context, owner id.Principal) (id.BadgeID, error) {
	badge, err := s.committedBadgeOf(ctx, owner)
	if err != nil || badge == nil {
		return 0, err
	}
	return badge.ID, nil
}

// IsWeakened reports the health flag of owner's badge; false when owner holds none.
func (s *Service) IsWeakened(ctx context.Context, owner id.Principal) (bool, error) {
	badge, err := s.committedBadgeOf(ctx, owner)
	if err != nil || badge == nil {
		return false, err
	}
	return badge.IsWeakened, nil
}

// BalanceOf is 0 or 1. The zero address is not a valid owner.
func (s *Service) BalanceOf(ctx context.Context, owner id.Principal) (uint64, error) {
	if owner.IsZero() {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "zero address is not a valid owner")
	}
	has, err := s.HasBadge(ctx, owner)
	if err != nil || !has {
		return 0, err
	}
	return 1, nil
}

func (s *Service) OwnerOf(ctx context.Context, badgeID id.BadgeID) (id.Principal, error) {
	badge, err := s.GetBadge(ctx, badgeID)
	if err != nil {
		return id.ZeroPrincipal, err
	}
	return badge.Owner, nil
}

// Settings returns the registry configuration (owner, evolution authority, base URI).
func (s *Service) Settings(ctx context.Context) (*models.Settings, error) {
	return ledger.Query(ctx, s.ledger, s.settings)
}

// committedBadgeOf is badgeOf behind the read side. Inside an operation it
// sees that operation's own writes.
func (s *Service) committedBadgeOf(ctx context.Context, owner id.Principal) (*models.Badge, error) {
	return ledger.Query(ctx, s.ledger, func(ctx context.Context) (*models.Badge, error) {
		return s.badgeOf(ctx, owner)
	})
}
