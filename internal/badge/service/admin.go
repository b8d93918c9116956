package service

import (
	"context"

	"credipet/internal/access"
	"credipet/internal/badge/models"
	eventmodels "credipet/internal/events/models"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/requestcontext"
)

// SetBaseURI changes the metadata prefix used by TokenURI.
func (s *Service) SetBaseURI(ctx context.Context, baseURI string) error {
	return s.updateSettings(ctx, "set_base_uri", nil, func(settings *models.Settings) *eventmodels.Event {
		settings.BaseURI = baseURI
		return eventmodels.BaseURIUpdated(settings.Owner, baseURI)
	})
}

// SetEvolutionAuthority designates the only principal allowed to evolve or
// weaken badges. In production this is the credit registry.
func (s *Service) SetEvolutionAuthority(ctx context.Context, authority id.Principal) error {
	return s.updateSettings(ctx, "set_evolution_authority", &authority, func(settings *models.Settings) *eventmodels.Event {
		settings.EvolutionAuthority = authority
		return eventmodels.EvolutionAuthorityUpdated(settings.Owner, authority)
	})
}

// TransferOwnership hands the owner role to next.
func (s *Service) TransferOwnership(ctx context.Context, next id.Principal) error {
	return s.updateSettings(ctx, "transfer_ownership", &next, func(settings *models.Settings) *eventmodels.Event {
		previous := settings.Owner
		settings.Owner = next
		return eventmodels.OwnershipTransferred("badge", previous, next)
	})
}

// updateSettings runs an owner-only settings change. nonZero, when set,
// must not be the null address.
func (s *Service) updateSettings(ctx context.Context, operation string, nonZero *id.Principal, apply func(*models.Settings) *eventmodels.Event) (err error) {
	defer func() { s.metrics.IncError(operation, err) }()

	err = s.ledger.Execute(ctx, func(ctx context.Context) error {
		settings, err := s.settings(ctx)
		if err != nil {
			return err
		}
		if err := access.RequireOwner(requestcontext.Caller(ctx), settings.Owner); err != nil {
			return err
		}
		if nonZero != nil {
			if err := access.RequireNonZero(*nonZero); err != nil {
				return err
			}
		}
		event := apply(settings)
		if err := s.store.SaveSettings(ctx, settings); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save badge settings")
		}
		return s.events.Emit(ctx, event)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "badge registry settings updated",
		"operation", operation,
		"caller", requestcontext.Caller(ctx).Hex(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}
