// Package models defines credit profiles, tiers and the per-tier parameter tables.
package models

import (
	"time"

	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
)

// Tier is a principal's credit standing, 0 (new) through 4 (top).
type Tier uint8

const (
	TierNew Tier = iota
	TierBronze
	TierSilver
	TierGold
	TierPlatinum

	MaxTier = TierPlatinum

	// TierCount sizes the parameter tables.
	TierCount = int(MaxTier) + 1
)

var tierNames = [...]string{"new", "bronze", "silver", "gold", "platinum"}

func (t Tier) IsValid() bool { return t <= MaxTier }

func (t Tier) String() string {
	if !t.IsValid() {
		return "unknown"
	}
	return tierNames[t]
}

// ParseTier converts a route or request value into a Tier.
func ParseTier(v uint64) (Tier, error) {
	if v > uint64(MaxTier) {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid tier")
	}
	return Tier(v), nil
}

// Profile is a principal's credit history. A principal with no history has
// the zero profile; it is never deleted once written.
type Profile struct {
	Principal         id.Principal `json:"principal"`
	TotalLoans        uint64       `json:"total_loans"`
	TotalRepaidOnTime uint64       `json:"total_repaid_on_time"`
	TotalDefaulted    uint64       `json:"total_defaulted"`
	CurrentStreak     uint64       `json:"current_streak"`
	CurrentTier       Tier         `json:"current_tier"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// NewProfile returns the zero profile for p.
func NewProfile(p id.Principal) *Profile {
	return &Profile{Principal: p}
}

// RecordLoan counts one more loan taken.
func (p *Profile) RecordLoan(now time.Time) {
	p.TotalLoans++
	p.UpdatedAt = now
}

// RecordRepayment counts an on-time repayment, extends the streak, and
// raises the tier by at most one step. It reports whether the tier changed.
func (p *Profile) RecordRepayment(thresholds [TierCount]uint64, now time.Time) (upgraded bool) {
	p.TotalRepaidOnTime++
	p.CurrentStreak++
	p.UpdatedAt = now

	if p.CurrentTier >= MaxTier {
		return false
	}
	next := p.CurrentTier + 1
	if p.TotalRepaidOnTime < thresholds[next] {
		return false
	}
	if next == MaxTier && p.TotalDefaulted > 0 {
		return false
	}
	p.CurrentTier = next
	return true
}

// RecordDefault counts a default and resets the streak. The tier is never lowered.
func (p *Profile) RecordDefault(now time.Time) {
	p.TotalDefaulted++
	p.CurrentStreak = 0
	p.UpdatedAt = now
}

// Collateral ratio and interest rate bounds, in basis points.
const (
	MinCollateralRatio = 1000
	MaxCollateralRatio = 20000 // exclusive
	MaxInterestRate    = 1000  // exclusive
)

// Parameters are the owner-tunable per-tier tables.
type Parameters struct {
	Thresholds       [TierCount]uint64 `json:"thresholds"`
	CollateralRatios [TierCount]uint64 `json:"collateral_ratios"`
	InterestRates    [TierCount]uint64 `json:"interest_rates"`
}

// DefaultParameters returns the tables a fresh registry starts with.
func DefaultParameters() Parameters {
	return Parameters{
		Thresholds:       [TierCount]uint64{0, 1, 3, 7, 15},
		CollateralRatios: [TierCount]uint64{15000, 13000, 11000, 8500, 6000},
		InterestRates:    [TierCount]uint64{500, 400, 300, 200, 100},
	}
}

// SetThreshold sets the repayments required to reach tier. The tier 0
// entry is fixed at zero since every principal starts there.
func (p *Parameters) SetThreshold(tier Tier, repayments uint64) (old uint64, err error) {
	if !tier.IsValid() {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid tier")
	}
	if tier == TierNew && repayments != 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "tier 0 threshold must be 0")
	}
	old = p.Thresholds[tier]
	p.Thresholds[tier] = repayments
	return old, nil
}

func (p *Parameters) SetCollateralRatio(tier Tier, bps uint64) (old uint64, err error) {
	if !tier.IsValid() {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid tier")
	}
	if bps < MinCollateralRatio || bps >= MaxCollateralRatio {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "ratio out of bounds")
	}
	old = p.CollateralRatios[tier]
	p.CollateralRatios[tier] = bps
	return old, nil
}

func (p *Parameters) SetInterestRate(tier Tier, bps uint64) (old uint64, err error) {
	if !tier.IsValid() {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid tier")
	}
	if bps >= MaxInterestRate {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "rate too high")
	}
	old = p.InterestRates[tier]
	p.InterestRates[tier] = bps
	return old, nil
}

// Settings is the registry's singleton configuration.
type Settings struct {
	Owner id.Principal `json:"owner"`
	// LendingAuthority is the only principal allowed to record credit
	// events. The zero address authorizes nobody.
	LendingAuthority id.Principal `json:"lending_authority"`
	Parameters       Parameters   `json:"parameters"`
}
