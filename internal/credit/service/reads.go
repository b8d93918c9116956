package service

import (
	"context"

	"credipet/internal/credit/models"
	"credipet/internal/ledger"
	id "credipet/pkg/domain"
	"credipet/pkg/platform/tracer"
	"credipet/pkg/platform/tx"
)

// GetProfile returns p's credit history, the zero profile when p has none.
// With a cache configured, hits skip the store; misses populate it.
func (s *Service) GetProfile(ctx context.Context, p id.Principal) (profile *models.Profile, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanCreditProfile, tracer.String(tracer.AttrPrincipal, p.Hex()))
	defer func() { span.End(err) }()

	useCache := s.cache != nil && !tx.Active(ctx)
	if useCache {
		cached, ok, err := s.cache.Get(ctx, p)
		switch {
		case err != nil:
			s.metrics.IncCacheLookup("error")
			s.logger.WarnContext(ctx, "profile cache read failed", "principal", p.Hex(), "error", err)
		case ok:
			s.metrics.IncCacheLookup("hit")
			span.SetAttributes(tracer.Bool(tracer.AttrCacheHit, true))
			return cached, nil
		default:
			s.metrics.IncCacheLookup("miss")
		}
		span.SetAttributes(tracer.Bool(tracer.AttrCacheHit, false))
	}

	return ledger.Query(ctx, s.ledger, func(ctx context.Context) (*models.Profile, error) {
		profile, err := s.profileOf(ctx, p)
		if err != nil {
			return nil, err
		}
		// Filled while the read holds writers off, so a record committing
		// next invalidates after this entry lands, never before.
		if useCache {
			if err := s.cache.Set(ctx, profile); err != nil {
				s.logger.WarnContext(ctx, "profile cache write failed", "principal", p.Hex(), "error", err)
			}
		}
		return profile, nil
	})
}

func (s *Service) GetCreditTier(ctx context.Context, p id.Principal) (models.Tier, error) {
	profile, err := s.GetProfile(ctx, p)
	if err != nil {
		return 0, err
	}
	return profile.CurrentTier, nil
}

// GetCollateralRatio returns the collateral ratio, in basis points, for p's current tier.
func (s *Service) GetCollateralRatio(ctx context.Context, p id.Principal) (uint64, error) {
	tier, params, err := s.tierAndParameters(ctx, p)
	if err != nil {
		return 0, err
	}
	return params.CollateralRatios[tier], nil
}

// GetInterestRate returns the interest rate, in basis points, for p's current tier.
func (s *Service) GetInterestRate(ctx context.Context, p id.Principal) (uint64, error) {
	tier, params, err := s.tierAndParameters(ctx, p)
	if err != nil {
		return 0, err
	}
	return params.InterestRates[tier], nil
}

func (s *Service) Parameters(ctx context.Context) (*models.Parameters, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return &settings.Parameters, nil
}

func (s *Service) GetTierThresholds(ctx context.Context) ([models.TierCount]uint64, error) {
	params, err := s.Parameters(ctx)
	if err != nil {
		return [models.TierCount]uint64{}, err
	}
	return params.Thresholds, nil
}

// CollateralRatio returns the table entry for tier.
func (s *Service) CollateralRatio(ctx context.Context, tier models.Tier) (uint64, error) {
	if _, err := models.ParseTier(uint64(tier)); err != nil {
		return 0, err
	}
	params, err := s.Parameters(ctx)
	if err != nil {
		return 0, err
	}
	return params.CollateralRatios[tier], nil
}

// InterestRate returns the table entry for tier.
func (s *Service) InterestRate(ctx context.Context, tier models.Tier) (uint64, error) {
	if _, err := models.ParseTier(uint64(tier)); err != nil {
		return 0, err
	}
	params, err := s.Parameters(ctx)
	if err != nil {
		return 0, err
	}
	return params.InterestRates[tier], nil
}

// Settings returns the owner, lending authority and parameter tables.
func (s *Service) Settings(ctx context.Context) (*models.Settings, error) {
	return ledger.Query(ctx, s.ledger, s.settings)
}

func (s *Service) LendingAuthority(ctx context.Context) (id.Principal, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return id.ZeroPrincipal, err
	}
	return settings.LendingAuthority, nil
}

func (s *Service) Owner(ctx context.Context) (id.Principal, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return id.ZeroPrincipal, err
	}
	return settings.Owner, nil
}

func (s *Service) tierAndParameters(ctx context.Context, p id.Principal) (models.Tier, *models.Parameters, error) {
	tier, err := s.GetCreditTier(ctx, p)
	if err != nil {
		return 0, nil, err
	}
	params, err := s.Parameters(ctx)
	if err != nil {
		return 0, nil, err
	}
	return tier, params, nil
}

// invalidateCached drops p's cached profile and reports whether it did.
func (s *Service) invalidateCached(ctx context.Context, p id.Principal) bool {
	if s.cache == nil {
		return false
	}
	if err := s.cache.Invalidate(ctx, p); err != nil {
		s.logger.WarnContext(ctx, "profile cache invalidation failed", "principal", p.Hex(), "error", err)
		return false
	}
	return true
}
