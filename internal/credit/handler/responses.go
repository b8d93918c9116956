package handler

import (
	"time"

	"credipet/internal/credit/models"
)

type ProfileResponse struct {
	Principal         string     `json:"principal"`
	TotalLoans        uint64     `json:"total_loans"`
	TotalRepaidOnTime uint64     `json:"total_repaid_on_time"`
	TotalDefaulted    uint64     `json:"total_defaulted"`
	CurrentStreak     uint64     `json:"current_streak"`
	CurrentTier       uint8      `json:"current_tier"`
	TierName          string     `json:"tier_name"`
	CollateralRatio   uint64     `json:"collateral_ratio_bps"`
	InterestRate      uint64     `json:"interest_rate_bps"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

type ParametersResponse struct {
	Owner            string   `json:"owner"`
	LendingAuthority string   `json:"lending_authority"`
	Thresholds       []uint64 `json:"tier_thresholds"`
	CollateralRatios []uint64 `json:"collateral_ratios_bps"`
	InterestRates    []uint64 `json:"interest_rates_bps"`
}

// toProfileResponse renders p with the ratio and rate of its current tier.
func toProfileResponse(p *models.Profile, params *models.Parameters) *ProfileResponse {
	resp := &ProfileResponse{
		Principal:         p.Principal.Hex(),
		TotalLoans:        p.TotalLoans,
		TotalRepaidOnTime: p.TotalRepaidOnTime,
		TotalDefaulted:    p.TotalDefaulted,
		CurrentStreak:     p.CurrentStreak,
		CurrentTier:       uint8(p.CurrentTier),
		TierName:          p.CurrentTier.String(),
		CollateralRatio:   params.CollateralRatios[p.CurrentTier],
		InterestRate:      params.InterestRates[p.CurrentTier],
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

func toParametersResponse(settings *models.Settings) *ParametersResponse {
	p := settings.Parameters
	return &ParametersResponse{
		Owner:            settings.Owner.Hex(),
		LendingAuthority: settings.LendingAuthority.Hex(),
		Thresholds:       p.Thresholds[:],
		CollateralRatios: p.CollateralRatios[:],
		InterestRates:    p.InterestRates[:],
	}
}
