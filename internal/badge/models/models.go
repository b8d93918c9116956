// Package models defines the soulbound badge aggregate and registry settings.
package models

import (
	"time"

	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
)

const (
	TokenName      = "CrediPet"
	TokenSymbol    = "CPET"
	DefaultBaseURI = "https://credipet.xyz/metadata/"
)

// Stage is a badge's evolution level. It mirrors the owner's credit tier.
type Stage uint8

const (
	StageEgg Stage = iota
	StageHatchling
	StageJuvenile
	StageAdult
	StageLegendary

	MaxStage = StageLegendary
)

var stageNames = [...]string{"egg", "hatchling", "juvenile", "adult", "legendary"}

// IsValid reports whether s is within egg..legendary.
func (s Stage) IsValid() bool { return s <= MaxStage }

// ParseStage narrows a wire value to a Stage without wrapping.
func ParseStage(v uint64) (Stage, error) {
	if v > uint64(MaxStage) {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid stage")
	}
	return Stage(v), nil
}

// Name returns the metadata name of the stage, or "" when out of range.
func (s Stage) Name() string {
	if !s.IsValid() {
		return ""
	}
	return stageNames[s]
}

func (s Stage) String() string { return s.Name() }

// Badge is a non-transferable token bound to its owner at mint.
type Badge struct {
	ID         id.BadgeID   `json:"id"`
	Owner      id.Principal `json:"owner"`
	Stage      Stage        `json:"stage"`
	IsWeakened bool         `json:"is_weakened"`
	MintedAt   time.Time    `json:"minted_at"`
}

// NewBadge creates a healthy egg. Ownership is fixed from here on.
func NewBadge(badgeID id.BadgeID, owner id.Principal, now time.Time) (*Badge, error) {
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "cannot mint to the zero address")
	}
	return &Badge{
		ID:       badgeID,
		Owner:    owner,
		Stage:    StageEgg,
		MintedAt: now,
	}, nil
}

// Evolve moves the badge to a strictly later stage. Skipping stages is allowed.
func (b *Badge) Evolve(next Stage) error {
	if !next.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid stage")
	}
	if next <= b.Stage {
		return dErrors.New(dErrors.CodeInvariantViolation, "can only evolve forward")
	}
	b.Stage = next
	return nil
}

// TokenURI builds the metadata location: base + stage name + optional "-weak" + ".json".
func (b *Badge) TokenURI(baseURI string) string {
	suffix := ".json"
	if b.IsWeakened {
		suffix = "-weak.json"
	}
	return baseURI + b.Stage.Name() + suffix
}

// Settings is the registry's singleton configuration.
type Settings struct {
	Owner              id.Principal `json:"owner"`
	EvolutionAuthority id.Principal `json:"evolution_authority"`
	BaseURI            string       `json:"base_uri"`
}
