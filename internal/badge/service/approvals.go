package service

import (
	"context"

	eventmodels "credipet/internal/events/models"
	"credipet/internal/ledger"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/requestcontext"
)

const errSoulbound = "soulbound token: transfers disabled"

// Approve records an approved principal for a badge. Approvals follow the
// token standard but grant nothing: transfers are always rejected.
func (s *Service) Approve(ctx context.Context, to id.Principal, badgeID id.BadgeID) (err error) {
	defer func() { s.metrics.IncError("approve", err) }()
	caller := requestcontext.Caller(ctx)

	return s.ledger.Execute(ctx, func(ctx context.Context) error {
		badge, err := s.badgeByID(ctx, badgeID)
		if err != nil {
			return err
		}
		if to == badge.Owner {
			return dErrors.New(dErrors.CodeInvalidInput, "approval to current owner")
		}
		if caller != badge.Owner {
			operator, err := s.store.IsOperator(ctx, badge.Owner, caller)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check operator")
			}
			if caller.IsZero() || !operator {
				return dErrors.New(dErrors.CodeForbidden, "caller is not token owner or approved for all")
			}
		}
		if err := s.store.SaveApproval(ctx, badgeID, to); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save approval")
		}
		return s.events.Emit(ctx, eventmodels.BadgeApproval(badge.Owner, to, badgeID))
	})
}

// GetApproved returns the approved principal for an existing badge, or zero.
func (s *Service) GetApproved(ctx context.Context, badgeID id.BadgeID) (id.Principal, error) {
	return ledger.Query(ctx, s.ledger, func(ctx context.Context) (id.Principal, error) {
		if _, err := s.badgeByID(ctx, badgeID); err != nil {
			return id.ZeroPrincipal, err
		}
		approved, err := s.store.FindApproval(ctx, badgeID)
		if err != nil {
			return id.ZeroPrincipal, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load approval")
		}
		return approved, nil
	})
}

// SetApprovalForAll grants or revokes operator rights over the caller's badges.
func (s *Service) SetApprovalForAll(ctx context.Context, operator id.Principal, approved bool) (err error) {
	defer func() { s.metrics.IncError("set_approval_for_all", err) }()
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is required")
	}
	if operator.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid operator")
	}
	if operator == caller {
		return dErrors.New(dErrors.CodeInvalidInput, "approve to caller")
	}

	return s.ledger.Execute(ctx, func(ctx context.Context) error {
		if err := s.store.SetOperator(ctx, caller, operator, approved); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save operator")
		}
		return s.events.Emit(ctx, eventmodels.ApprovalForAll(caller, operator, approved))
	})
}

func (s *Service) IsApprovedForAll(ctx context.Context, owner, operator id.Principal) (bool, error) {
	return ledger.Query(ctx, s.ledger, func(ctx context.Context) (bool, error) {
		ok, err := s.store.IsOperator(ctx, owner, operator)
		if err != nil {
			return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check operator")
		}
		return ok, nil
	})
}

// TransferFrom always fails: badges are bound to their owner at mint.
func (s *Service) TransferFrom(ctx context.Context, from, to id.Principal, badgeID id.BadgeID) error {
	return s.rejectTransfer(ctx, from, to, badgeID)
}

// SafeTransferFrom always fails, with or without data.
func (s *Service) SafeTransferFrom(ctx context.Context, from, to id.Principal, badgeID id.BadgeID, _ []byte) error {
	return s.rejectTransfer(ctx, from, to, badgeID)
}

func (s *Service) rejectTransfer(ctx context.Context, from, to id.Principal, badgeID id.BadgeID) error {
	s.metrics.IncTransferRejected()
	s.logger.WarnContext(ctx, "transfer rejected",
		"caller", requestcontext.Caller(ctx).Hex(),
		"from", from.Hex(),
		"to", to.Hex(),
		"badge_id", badgeID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.New(dErrors.CodeInvariantViolation, errSoulbound)
}
