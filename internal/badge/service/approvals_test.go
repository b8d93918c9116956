package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus/testutil"

	eventmodels "credipet/internal/events/models"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
)

func (s *ServiceSuite) TestTransfersAlwaysFail() {
	s.mint(alice)

	s.Require().NoError(s.service.Approve(as(alice), bob, 1))
	approved, err := s.service.GetApproved(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal(bob, approved)

	attempts := []func() error{
		func() error { return s.service.TransferFrom(as(alice), alice, bob, 1) },
		func() error { return s.service.TransferFrom(as(bob), alice, bob, 1) },
		func() error { return s.service.SafeTransferFrom(as(alice), alice, bob, 1, nil) },
		func() error { return s.service.SafeTransferFrom(as(bob), alice, bob, 1, []byte("data")) },
	}
	for _, attempt := range attempts {
		err := attempt()
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Equal("soulbound token: transfers disabled", err.Error())
	}

	ownerOf, err := s.service.OwnerOf(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal(alice, ownerOf)
	s.Equal(float64(4), testutil.ToFloat64(s.metrics.TransfersRejected))
}

func (s *ServiceSuite) TestApproveRules() {
	s.mint(alice)

	s.Run("unknown token", func() {
		err := s.service.Approve(as(alice), bob, 42)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("approval to current owner", func() {
		err := s.service.Approve(as(alice), alice, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("stranger cannot approve", func() {
		err := s.service.Approve(as(carol), bob, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("operator can approve on the owner's behalf", func() {
		s.Require().NoError(s.service.SetApprovalForAll(as(alice), carol, true))
		ok, err := s.service.IsApprovedForAll(context.Background(), alice, carol)
		s.Require().NoError(err)
		s.True(ok)

		s.Require().NoError(s.service.Approve(as(carol), bob, 1))
		approvals := s.eventsOf(eventmodels.TypeBadgeApproval)
		s.Require().Len(approvals, 1)
		s.Equal(alice, approvals[0].Principal)
		s.Equal(bob, approvals[0].Target)
	})

	s.Run("clearing approval with the zero address", func() {
		s.Require().NoError(s.service.Approve(as(alice), id.ZeroPrincipal, 1))
		approved, err := s.service.GetApproved(context.Background(), 1)
		s.Require().NoError(err)
		s.True(approved.IsZero())
	})
}

func (s *ServiceSuite) TestSetApprovalForAllRules() {
	err := s.service.SetApprovalForAll(as(alice), alice, true)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	err = s.service.SetApprovalForAll(as(alice), id.ZeroPrincipal, true)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	err = s.service.SetApprovalForAll(context.Background(), bob, true)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	s.Require().NoError(s.service.SetApprovalForAll(as(alice), bob, true))
	s.Require().NoError(s.service.SetApprovalForAll(as(alice), bob, false))
	ok, err := s.service.IsApprovedForAll(context.Background(), alice, bob)
	s.Require().NoError(err)
	s.False(ok)
	s.Len(s.eventsOf(eventmodels.TypeApprovalForAll), 2)
}

func (s *ServiceSuite) TestReads() {
	ctx := context.Background()
	s.mint(alice)

	balance, err := s.service.BalanceOf(ctx, alice)
	s.Require().NoError(err)
	s.Equal(uint64(1), balance)

	balance, err = s.service.BalanceOf(ctx, bob)
	s.Require().NoError(err)
	s.Zero(balance)

	_, err = s.service.BalanceOf(ctx, id.ZeroPrincipal)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = s.service.OwnerOf(ctx, 2)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.GetBadge(ctx, 999)
	s.Equal("invalid token id", err.Error())

	weak, err := s.service.IsWeakened(ctx, bob)
	s.Require().NoError(err)
	s.False(weak)

	s.Equal("CrediPet", s.service.Name())
	s.Equal("CPET", s.service.Symbol())
}
