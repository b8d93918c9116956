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

// Parameter names recorded on tier_parameter_updated events.
const (
	ParamThreshold       = "threshold"
	ParamCollateralRatio = "collateral_ratio"
	ParamInterestRate    = "interest_rate"
)

// SetTierThreshold sets the on-time repayments needed to reach tier.
// Profiles already above a raised threshold keep their tier.
func (s *Service) SetTierThreshold(ctx context.Context, tier models.Tier, repayments uint64) error {
	return s.setParameter(ctx, ParamThreshold, tier, repayments, (*models.Parameters).SetThreshold)
}

// SetCollateralRatio sets the ratio for tier; valid values are 1000 <= bps < 20000.
func (s *Service) SetCollateralRatio(ctx context.Context, tier models.Tier, bps uint64) error {
	return s.setParameter(ctx, ParamCollateralRatio, tier, bps, (*models.Parameters).SetCollateralRatio)
}

// SetInterestRate sets the rate for tier; valid values are below 1000 bps.
func (s *Service) SetInterestRate(ctx context.Context, tier models.Tier, bps uint64) error {
	return s.setParameter(ctx, ParamInterestRate, tier, bps, (*models.Parameters).SetInterestRate)
}

func (s *Service) SetLendingAuthority(ctx context.Context, authority id.Principal) error {
	return s.updateSettings(ctx, "set_lending_authority", &authority, func(settings *models.Settings) (*eventmodels.Event, error) {
		settings.LendingAuthority = authority
		return eventmodels.LendingAuthorityUpdated(settings.Owner, authority), nil
	})
}

func (s *Service) TransferOwnership(ctx context.Context, next id.Principal) error {
	return s.updateSettings(ctx, "transfer_ownership", &next, func(settings *models.Settings) (*eventmodels.Event, error) {
		previous := settings.Owner
		settings.Owner = next
		return eventmodels.OwnershipTransferred("credit", previous, next), nil
	})
}

type parameterSetter func(p *models.Parameters, tier models.Tier, value uint64) (uint64, error)

func (s *Service) setParameter(ctx context.Context, param string, tier models.Tier, value uint64, set parameterSetter) (err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanCreditParameters,
		tracer.String("credit.parameter", param),
		tracer.Int64(tracer.AttrTier, int64(tier)),
	)
	defer func() { span.End(err) }()

	return s.updateSettings(ctx, "set_"+param, nil, func(settings *models.Settings) (*eventmodels.Event, error) {
		old, err := set(&settings.Parameters, tier, value)
		if err != nil {
			return nil, err
		}
		return eventmodels.TierParameterUpdated(settings.Owner, param, uint8(tier), old, value), nil
	})
}

// updateSettings runs an owner-only settings change. nonZero, when set,
// must not be the null address.
func (s *Service) updateSettings(ctx context.Context, operation string, nonZero *id.Principal, apply func(*models.Settings) (*eventmodels.Event, error)) (err error) {
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
		event, err := apply(settings)
		if err != nil {
			return err
		}
		if err := s.store.SaveSettings(ctx, settings); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save credit settings")
		}
		return s.events.Emit(ctx, event)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "credit registry settings updated",
		"operation", operation,
		"caller", requestcontext.Caller(ctx).Hex(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}
