package adapters

import (
	"context"

	badgemodels "credipet/internal/badge/models"
	"credipet/internal/credit/models"
	"credipet/internal/credit/ports"
	id "credipet/pkg/domain"
	"credipet/pkg/requestcontext"
)

// BadgeRegistry is the subset of the badge service the adapter calls.
type BadgeRegistry interface {
	HasBadge(ctx context.Context, owner id.Principal) (bool, error)
	IsWeakened(ctx context.Context, owner id.Principal) (bool, error)
	Evolve(ctx context.Context, owner id.Principal, stage badgemodels.Stage) (*badgemodels.Badge, error)
	SetWeakened(ctx context.Context, owner id.Principal, weakened bool) (*badgemodels.Badge, error)
}

// BadgeAdapter implements ports.BadgePort in process. Mutating calls run
// with the credit registry's own principal as caller, replacing the
// lending authority that invoked the credit operation.
type BadgeAdapter struct {
	badges BadgeRegistry
	self   id.Principal
}

// NewBadgeAdapter creates an adapter that calls badges as self.
func NewBadgeAdapter(badges BadgeRegistry, self id.Principal) ports.BadgePort {
	return &BadgeAdapter{badges: badges, self: self}
}

func (a *BadgeAdapter) HasBadge(ctx context.Context, owner id.Principal) (bool, error) {
	return a.badges.HasBadge(ctx, owner)
}

func (a *BadgeAdapter) IsWeakened(ctx context.Context, owner id.Principal) (bool, error) {
	return a.badges.IsWeakened(ctx, owner)
}

// Evolve maps the tier onto the badge stage of the same level.
func (a *BadgeAdapter) Evolve(ctx context.Context, owner id.Principal, tier models.Tier) error {
	_, err := a.badges.Evolve(a.asSelf(ctx), owner, badgemodels.Stage(tier))
	return err
}

func (a *BadgeAdapter) SetWeakened(ctx context.Context, owner id.Principal, weakened bool) error {
	_, err := a.badges.SetWeakened(a.asSelf(ctx), owner, weakened)
	return err
}

func (a *BadgeAdapter) asSelf(ctx context.Context) context.Context {
	return requestcontext.WithCaller(ctx, a.self)
}
