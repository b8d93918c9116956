// Package models defines the registry event log entries observed by indexers.
package models

import (
	"time"

	"github.com/google/uuid"

	id "credipet/pkg/domain"
)

// Type names an event kind. Values are stable; they are persisted and relayed.
type Type string

const (
	TypeLoanRecorded       Type = "loan_recorded"
	TypeRepaymentRecorded  Type = "repayment_recorded"
	TypeDefaultRecorded    Type = "default_recorded"
	TypeCreditTierUpgraded Type = "credit_tier_upgraded"

	TypeBadgeMinted        Type = "badge_minted"
	TypeBadgeEvolved       Type = "badge_evolved"
	TypeBadgeHealthChanged Type = "badge_health_changed"
	TypeBadgeApproval      Type = "badge_approval"
	TypeApprovalForAll     Type = "badge_approval_for_all"

	TypeBaseURIUpdated            Type = "base_uri_updated"
	TypeEvolutionAuthorityUpdated Type = "evolution_authority_updated"
	TypeLendingAuthorityUpdated   Type = "lending_authority_updated"
	TypeTierParameterUpdated      Type = "tier_parameter_updated"
	TypeOwnershipTransferred      Type = "ownership_transferred"
)

var knownTypes = map[Type]struct{}{
	TypeLoanRecorded: {}, TypeRepaymentRecorded: {}, TypeDefaultRecorded: {}, TypeCreditTierUpgraded: {},
	TypeBadgeMinted: {}, TypeBadgeEvolved: {}, TypeBadgeHealthChanged: {}, TypeBadgeApproval: {}, TypeApprovalForAll: {},
	TypeBaseURIUpdated: {}, TypeEvolutionAuthorityUpdated: {}, TypeLendingAuthorityUpdated: {},
	TypeTierParameterUpdated: {}, TypeOwnershipTransferred: {},
}

// IsValid reports whether t is a known event type.
func (t Type) IsValid() bool {
	_, ok := knownTypes[t]
	return ok
}

func (t Type) String() string { return string(t) }

// Event is one entry of the append-only registry log. Which value fields are
// meaningful depends on Type; see the constructors below.
type Event struct {
	Seq        uint64       `json:"seq"`
	ID         uuid.UUID    `json:"id"`
	Type       Type         `json:"type"`
	Principal  id.Principal `json:"principal"`
	BadgeID    id.BadgeID   `json:"badge_id,omitempty"`
	Index      uint8        `json:"index"`
	OldValue   uint64       `json:"old_value"`
	NewValue   uint64       `json:"new_value"`
	Flag       bool         `json:"flag"`
	Target     id.Principal `json:"target"`
	Detail     string       `json:"detail,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
	RelayedAt  *time.Time   `json:"-"`
}

// Filter narrows an event log query. Zero values mean "any".
type Filter struct {
	Principal *id.Principal
	Type      Type
	AfterSeq  uint64
	Limit     int
}

// Matches reports whether e passes f, ignoring Limit.
func (f Filter) Matches(e *Event) bool {
	if e.Seq <= f.AfterSeq {
		return false
	}
	if f.Principal != nil && e.Principal != *f.Principal {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	return true
}

func LoanRecorded(p id.Principal, total uint64) *Event {
	return &Event{Type: TypeLoanRecorded, Principal: p, NewValue: total}
}

func RepaymentRecorded(p id.Principal, total uint64) *Event {
	return &Event{Type: TypeRepaymentRecorded, Principal: p, NewValue: total}
}

func DefaultRecorded(p id.Principal, total uint64) *Event {
	return &Event{Type: TypeDefaultRecorded, Principal: p, NewValue: total}
}

func CreditTierUpgraded(p id.Principal, oldTier, newTier uint8) *Event {
	return &Event{Type: TypeCreditTierUpgraded, Principal: p, OldValue: uint64(oldTier), NewValue: uint64(newTier)}
}

func BadgeMinted(owner id.Principal, badgeID id.BadgeID) *Event {
	return &Event{Type: TypeBadgeMinted, Principal: owner, BadgeID: badgeID}
}

func BadgeEvolved(owner id.Principal, badgeID id.BadgeID, oldStage, newStage uint8) *Event {
	return &Event{Type: TypeBadgeEvolved, Principal: owner, BadgeID: badgeID, OldValue: uint64(oldStage), NewValue: uint64(newStage)}
}

func BadgeHealthChanged(owner id.Principal, badgeID id.BadgeID, weakened bool) *Event {
	return &Event{Type: TypeBadgeHealthChanged, Principal: owner, BadgeID: badgeID, Flag: weakened}
}

func BadgeApproval(owner, approved id.Principal, badgeID id.BadgeID) *Event {
	return &Event{Type: TypeBadgeApproval, Principal: owner, Target: approved, BadgeID: badgeID}
}

func ApprovalForAll(owner, operator id.Principal, approved bool) *Event {
	return &Event{Type: TypeApprovalForAll, Principal: owner, Target: operator, Flag: approved}
}

func BaseURIUpdated(owner id.Principal, uri string) *Event {
	return &Event{Type: TypeBaseURIUpdated, Principal: owner, Detail: uri}
}

func EvolutionAuthorityUpdated(owner, authority id.Principal) *Event {
	return &Event{Type: TypeEvolutionAuthorityUpdated, Principal: owner, Target: authority}
}

func LendingAuthorityUpdated(owner, authority id.Principal) *Event {
	return &Event{Type: TypeLendingAuthorityUpdated, Principal: owner, Target: authority}
}

// TierParameterUpdated records a table write; param is "threshold",
// "collateral_ratio" or "interest_rate".
func TierParameterUpdated(owner id.Principal, param string, tier uint8, oldValue, newValue uint64) *Event {
	return &Event{Type: TypeTierParameterUpdated, Principal: owner, Detail: param, Index: tier, OldValue: oldValue, NewValue: newValue}
}

// OwnershipTransferred records an owner change; registry is "badge" or "credit".
func OwnershipTransferred(registry string, previous, next id.Principal) *Event {
	return &Event{Type: TypeOwnershipTransferred, Principal: previous, Target: next, Detail: registry}
}
