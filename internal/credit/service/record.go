package service

import (
	"context"

	"credipet/internal/access"
	"credipet/internal/credit/models"
	eventmodels "credipet/internal/events/models"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/platform/tracer"
	"credipet/pkg/requestcontext"
)

// RecordLoanTaken counts a new loan for p. It has no tier effect.
func (s *Service) RecordLoanTaken(ctx context.Context, p id.Principal) (*models.Profile, error) {
	return s.record(ctx, tracer.SpanCreditLoan, "loan", p, func(ctx context.Context, _ *models.Settings, profile *models.Profile) error {
		profile.RecordLoan(requestcontext.Now(ctx).UTC())
		if err := s.saveProfile(ctx, profile); err != nil {
			return err
		}
		return s.events.Emit(ctx, eventmodels.LoanRecorded(p, profile.TotalLoans))
	})
}

// RecordRepayment counts an on-time repayment and runs the tier-upgrade
// check. When p holds a badge, an upgrade evolves it to the new tier and a
// weakened badge is healed. Without a badge both calls are skipped.
func (s *Service) RecordRepayment(ctx context.Context, p id.Principal) (*models.Profile, error) {
	return s.record(ctx, tracer.SpanCreditRepayment, "repayment", p, func(ctx context.Context, settings *models.Settings, profile *models.Profile) error {
		oldTier := profile.CurrentTier
		upgraded := profile.RecordRepayment(settings.Parameters.Thresholds, requestcontext.Now(ctx).UTC())
		if err := s.saveProfile(ctx, profile); err != nil {
			return err
		}
		if err := s.events.Emit(ctx, eventmodels.RepaymentRecorded(p, profile.TotalRepaidOnTime)); err != nil {
			return err
		}
		if upgraded {
			if err := s.events.Emit(ctx, eventmodels.CreditTierUpgraded(p, uint8(oldTier), uint8(profile.CurrentTier))); err != nil {
				return err
			}
			s.metrics.IncTierUpgrade(profile.CurrentTier.String())
			s.logger.InfoContext(ctx, "credit tier upgraded",
				"principal", p.Hex(),
				"old_tier", uint8(oldTier),
				"new_tier", uint8(profile.CurrentTier),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return s.syncBadgeAfterRepayment(ctx, p, profile.CurrentTier, upgraded)
	})
}

// RecordDefault counts a default, resets the streak and weakens p's badge
// if p holds one. The tier is never lowered.
func (s *Service) RecordDefault(ctx context.Context, p id.Principal) (*models.Profile, error) {
	return s.record(ctx, tracer.SpanCreditDefault, "default", p, func(ctx context.Context, _ *models.Settings, profile *models.Profile) error {
		profile.RecordDefault(requestcontext.Now(ctx).UTC())
		if err := s.saveProfile(ctx, profile); err != nil {
			return err
		}
		if err := s.events.Emit(ctx, eventmodels.DefaultRecorded(p, profile.TotalDefaulted)); err != nil {
			return err
		}

		has, err := s.badges.HasBadge(ctx, p)
		if err != nil {
			return err
		}
		if !has {
			s.metrics.IncBadgeSync("skipped")
			return nil
		}
		if err := s.badges.SetWeakened(ctx, p, true); err != nil {
			return err
		}
		s.metrics.IncBadgeSync("weaken")
		return nil
	})
}

func (s *Service) syncBadgeAfterRepayment(ctx context.Context, p id.Principal, tier models.Tier, upgraded bool) error {
	has, err := s.badges.HasBadge(ctx, p)
	if err != nil {
		return err
	}
	if !has {
		s.metrics.IncBadgeSync("skipped")
		return nil
	}

	if upgraded {
		if err := s.badges.Evolve(ctx, p, tier); err != nil {
			return err
		}
		s.metrics.IncBadgeSync("evolve")
	}

	weakened, err := s.badges.IsWeakened(ctx, p)
	if err != nil {
		return err
	}
	if weakened {
		if err := s.badges.SetWeakened(ctx, p, false); err != nil {
			return err
		}
		s.metrics.IncBadgeSync("heal")
	}
	return nil
}

type recordFunc func(ctx context.Context, settings *models.Settings, profile *models.Profile) error

// record runs one lending-authority operation on p's profile inside the
// ledger, then drops p's cached profile once the operation has committed.
func (s *Service) record(ctx context.Context, spanName, kind string, p id.Principal, fn recordFunc) (profile *models.Profile, err error) {
	ctx, span := s.tracer.Start(ctx, spanName, tracer.String(tracer.AttrPrincipal, p.Hex()))
	defer func() {
		span.End(err)
		s.metrics.IncError("record_"+kind, err)
	}()

	var before models.Tier
	err = s.ledger.Execute(ctx, func(ctx context.Context) error {
		settings, err := s.settings(ctx)
		if err != nil {
			return err
		}
		if err := access.RequireDesignated(requestcontext.Caller(ctx), settings.LendingAuthority, "lending authority"); err != nil {
			return err
		}
		profile, err = s.profileOf(ctx, p)
		if err != nil {
			return err
		}
		before = profile.CurrentTier
		return fn(ctx, settings, profile)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "credit record failed",
			"kind", kind,
			"principal", p.Hex(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, err
	}

	if s.invalidateCached(ctx, p) {
		span.AddEvent(tracer.EventCacheEvicted)
	}
	upgraded := profile.CurrentTier > before
	span.SetAttributes(
		tracer.Int64(tracer.AttrTier, int64(profile.CurrentTier)),
		tracer.Bool(tracer.AttrUpgraded, upgraded),
	)
	if upgraded {
		span.AddEvent(tracer.EventTierUpgraded, tracer.Int64("credit.previous_tier", int64(before)))
	}
	s.metrics.IncRecorded(kind)
	s.logger.InfoContext(ctx, "credit event recorded",
		"kind", kind,
		"principal", p.Hex(),
		"tier", uint8(profile.CurrentTier),
		"total_loans", profile.TotalLoans,
		"total_repaid_on_time", profile.TotalRepaidOnTime,
		"total_defaulted", profile.TotalDefaulted,
		"request_id", requestcontext.RequestID(ctx),
	)
	return profile, nil
}

func (s *Service) saveProfile(ctx context.Context, profile *models.Profile) error {
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save credit profile")
	}
	return nil
}
