package service

import (
	"context"
	"errors"

	"credipet/internal/access"
	"credipet/internal/badge/models"
	eventmodels "credipet/internal/events/models"
	"credipet/internal/sentinel"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/platform/tracer"
	"credipet/pkg/requestcontext"
)

// Mint issues a new egg-stage badge to the caller. A principal holds at most one.
func (s *Service) Mint(ctx context.Context) (badge *models.Badge, err error) {
	caller := requestcontext.Caller(ctx)
	ctx, span := s.tracer.Start(ctx, tracer.SpanBadgeMint, tracer.String(tracer.AttrPrincipal, caller.Hex()))
	defer func() {
		span.End(err)
		s.metrics.IncError("mint", err)
	}()

	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is required")
	}

	err = s.ledger.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.badgeOf(ctx, caller)
		if err != nil {
			return err
		}
		if existing != nil {
			return dErrors.New(dErrors.CodeInvariantViolation, "already owns a badge")
		}

		next, err := s.store.NextID(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate badge id")
		}
		badge, err = models.NewBadge(next, caller, requestcontext.Now(ctx).UTC())
		if err != nil {
			return err
		}
		if err := s.store.Create(ctx, badge); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.Wrap(err, dErrors.CodeConflict, "badge already minted")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create badge")
		}
		return s.events.Emit(ctx, eventmodels.BadgeMinted(caller, badge.ID))
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(tracer.Int64(tracer.AttrBadgeID, int64(badge.ID))) //nolint:gosec // ids are dense from 1
	s.metrics.IncMinted()
	s.logger.InfoContext(ctx, "badge minted",
		"principal", caller.Hex(),
		"badge_id", badge.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return badge, nil
}

// Evolve advances owner's badge to stage. Only the evolution authority may call it.
func (s *Service) Evolve(ctx context.Context, owner id.Principal, stage models.Stage) (badge *models.Badge, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanBadgeEvolve,
		tracer.String(tracer.AttrPrincipal, owner.Hex()),
		tracer.Int64(tracer.AttrStage, int64(stage)),
	)
	defer func() {
		span.End(err)
		s.metrics.IncError("evolve", err)
	}()

	var oldStage models.Stage
	err = s.ledger.Execute(ctx, func(ctx context.Context) error {
		if err := s.requireEvolutionAuthority(ctx); err != nil {
			return err
		}
		badge, err = s.requireBadgeOf(ctx, owner)
		if err != nil {
			return err
		}
		oldStage = badge.Stage
		if err := badge.Evolve(stage); err != nil {
			return err
		}
		if err := s.store.Update(ctx, badge); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update badge")
		}
		return s.events.Emit(ctx, eventmodels.BadgeEvolved(owner, badge.ID, uint8(oldStage), uint8(stage)))
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncEvolution(stage.Name())
	s.logger.InfoContext(ctx, "badge evolved",
		"principal", owner.Hex(),
		"badge_id", badge.ID,
		"old_stage", oldStage.Name(),
		"new_stage", stage.Name(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return badge, nil
}

// SetWeakened sets the health flag of owner's badge. It records an event
// even when the flag already has the requested value.
func (s *Service) SetWeakened(ctx context.Context, owner id.Principal, weakened bool) (badge *models.Badge, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanBadgeHealth,
		tracer.String(tracer.AttrPrincipal, owner.Hex()),
		tracer.Bool("badge.weakened", weakened),
	)
	defer func() {
		span.End(err)
		s.metrics.IncError("set_weakened", err)
	}()

	err = s.ledger.Execute(ctx, func(ctx context.Context) error {
		if err := s.requireEvolutionAuthority(ctx); err != nil {
			return err
		}
		badge, err = s.requireBadgeOf(ctx, owner)
		if err != nil {
			return err
		}
		badge.IsWeakened = weakened
		if err := s.store.Update(ctx, badge); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update badge")
		}
		return s.events.Emit(ctx, eventmodels.BadgeHealthChanged(owner, badge.ID, weakened))
	})
	if err != nil {
		return nil, err
	}

	if weakened {
		span.AddEvent(tracer.EventBadgeWeakened)
	}
	s.metrics.IncHealthChange(weakened)
	s.logger.InfoContext(ctx, "badge health changed",
		"principal", owner.Hex(),
		"badge_id", badge.ID,
		"weakened", weakened,
		"request_id", requestcontext.RequestID(ctx),
	)
	return badge, nil
}

func (s *Service) requireEvolutionAuthority(ctx context.Context) error {
	settings, err := s.settings(ctx)
	if err != nil {
		return err
	}
	return access.RequireDesignated(requestcontext.Caller(ctx), settings.EvolutionAuthority, "evolution authority")
}
