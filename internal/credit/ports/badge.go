package ports

import (
	"context"

	"credipet/internal/credit/models"
	id "credipet/pkg/domain"
)

// BadgePort is the credit registry's view of the badge registry. Calls
// made through it act as the credit registry, which must be the badge
// registry's evolution authority.
type BadgePort interface {
	// HasBadge and IsWeakened never fail for an unknown principal.
	HasBadge(ctx context.Context, owner id.Principal) (bool, error)
	IsWeakened(ctx context.Context, owner id.Principal) (bool, error)

	// Evolve moves the owner's badge to the stage matching tier.
	Evolve(ctx context.Context, owner id.Principal, tier models.Tier) error
	SetWeakened(ctx context.Context, owner id.Principal, weakened bool) error
}
