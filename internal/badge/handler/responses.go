package handler

import (
	"time"

	"credipet/internal/badge/models"
	id "credipet/pkg/domain"
)

type BadgeResponse struct {
	ID         uint64    `json:"id"`
	Owner      string    `json:"owner"`
	Stage      uint8     `json:"stage"`
	StageName  string    `json:"stage_name"`
	IsWeakened bool      `json:"is_weakened"`
	MintedAt   time.Time `json:"minted_at"`
	TokenURI   string    `json:"token_uri,omitempty"`
}

type TokenURIResponse struct {
	BadgeID  uint64 `json:"badge_id"`
	TokenURI string `json:"token_uri"`
}

// OwnerResponse answers hasBadge, badgeOf and balanceOf in one read.
// BadgeID is 0 when the principal holds no badge.
type OwnerResponse struct {
	Owner      string `json:"owner"`
	HasBadge   bool   `json:"has_badge"`
	BadgeID    uint64 `json:"badge_id"`
	Balance    uint64 `json:"balance"`
	IsWeakened bool   `json:"is_weakened"`
}

type ApprovalResponse struct {
	BadgeID  uint64 `json:"badge_id"`
	Approved string `json:"approved"`
}

type OperatorResponse struct {
	Owner    string `json:"owner"`
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

type SettingsResponse struct {
	Name               string `json:"name"`
	Symbol             string `json:"symbol"`
	Owner              string `json:"owner"`
	EvolutionAuthority string `json:"evolution_authority"`
	BaseURI            string `json:"base_uri"`
}

func toBadgeResponse(b *models.Badge) *BadgeResponse {
	return &BadgeResponse{
		ID:         uint64(b.ID),
		Owner:      b.Owner.Hex(),
		Stage:      uint8(b.Stage),
		StageName:  b.Stage.Name(),
		IsWeakened: b.IsWeakened,
		MintedAt:   b.MintedAt,
	}
}

func toOwnerResponse(owner id.Principal, badgeID id.BadgeID, weakened bool) *OwnerResponse {
	resp := &OwnerResponse{Owner: owner.Hex(), BadgeID: uint64(badgeID), IsWeakened: weakened}
	if !badgeID.IsNil() {
		resp.HasBadge = true
		resp.Balance = 1
	}
	return resp
}

func toSettingsResponse(s *models.Settings) *SettingsResponse {
	return &SettingsResponse{
		Name:               models.TokenName,
		Symbol:             models.TokenSymbol,
		Owner:              s.Owner.Hex(),
		EvolutionAuthority: s.EvolutionAuthority.Hex(),
		BaseURI:            s.BaseURI,
	}
}
