package service

import (
	"context"

	"credipet/internal/credit/models"
	eventmodels "credipet/internal/events/models"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
)

func (s *ServiceSuite) TestParameterSettersAreOwnerOnly() {
	err := s.service.SetCollateralRatio(as(stranger), models.TierNew, 14000)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	s.Equal("caller is not the owner", err.Error())

	err = s.service.SetInterestRate(as(lender), models.TierNew, 600)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	err = s.service.SetTierThreshold(as(alice), models.TierBronze, 2)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	s.Empty(s.allEvents())
}

func (s *ServiceSuite) TestSetCollateralRatio() {
	ctx := context.Background()
	for _, bad := range []uint64{500, 25000} {
		err := s.service.SetCollateralRatio(as(owner), models.TierNew, bad)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		s.Equal("ratio out of bounds", err.Error())
	}

	s.Require().NoError(s.service.SetCollateralRatio(as(owner), models.TierNew, 14000))
	ratio, err := s.service.CollateralRatio(ctx, models.TierNew)
	s.Require().NoError(err)
	s.Equal(uint64(14000), ratio)

	updates := s.eventsOf(eventmodels.TypeTierParameterUpdated)
	s.Require().Len(updates, 1)
	s.Equal(ParamCollateralRatio, updates[0].Detail)
	s.Equal(uint8(0), updates[0].Index)
	s.Equal(uint64(15000), updates[0].OldValue)
	s.Equal(uint64(14000), updates[0].NewValue)
}

func (s *ServiceSuite) TestSetInterestRate() {
	err := s.service.SetInterestRate(as(owner), models.TierNew, 1500)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.Equal("rate too high", err.Error())

	s.Require().NoError(s.service.SetInterestRate(as(owner), models.TierNew, 600))
	rate, err := s.service.GetInterestRate(context.Background(), stranger)
	s.Require().NoError(err)
	s.Equal(uint64(600), rate)
}

func (s *ServiceSuite) TestSetTierThresholdChangesProgression() {
	s.Require().NoError(s.service.SetTierThreshold(as(owner), models.TierBronze, 2))
	thresholds, err := s.service.GetTierThresholds(context.Background())
	s.Require().NoError(err)
	s.Equal(uint64(2), thresholds[models.TierBronze])

	s.withoutBadge(alice)
	profile := s.repay(alice, 1)
	s.Equal(models.TierNew, profile.CurrentTier)
	profile = s.repay(alice, 1)
	s.Equal(models.TierBronze, profile.CurrentTier)

	err = s.service.SetTierThreshold(as(owner), models.Tier(5), 1)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestSetLendingAuthority() {
	err := s.service.SetLendingAuthority(as(owner), id.ZeroPrincipal)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.Equal("zero address", err.Error())

	err = s.service.SetLendingAuthority(as(lender), bob)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	s.Require().NoError(s.service.SetLendingAuthority(as(owner), bob))
	authority, err := s.service.LendingAuthority(context.Background())
	s.Require().NoError(err)
	s.Equal(bob, authority)

	_, err = s.service.RecordLoanTaken(as(lender), alice)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden), "previous authority lost its rights")
	_, err = s.service.RecordLoanTaken(as(bob), alice)
	s.Require().NoError(err)

	updates := s.eventsOf(eventmodels.TypeLendingAuthorityUpdated)
	s.Require().Len(updates, 1)
	s.Equal(bob, updates[0].Target)
}

func (s *ServiceSuite) TestTransferOwnership() {
	err := s.service.TransferOwnership(as(owner), id.ZeroPrincipal)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	s.Require().NoError(s.service.TransferOwnership(as(owner), alice))
	err = s.service.SetInterestRate(as(owner), models.TierNew, 100)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	s.Require().NoError(s.service.SetInterestRate(as(alice), models.TierNew, 100))

	transfers := s.eventsOf(eventmodels.TypeOwnershipTransferred)
	s.Require().Len(transfers, 1)
	s.Equal("credit", transfers[0].Detail)
	s.Equal(owner, transfers[0].Principal)
}
