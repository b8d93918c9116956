package service

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"credipet/internal/credit/models"
	"credipet/internal/credit/store"
	eventmodels "credipet/internal/events/models"
	eventservice "credipet/internal/events/service"
	eventstore "credipet/internal/events/store"
	"credipet/internal/ledger"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/platform/tracer"
)

func (s *ServiceSuite) TestRecordLoanTaken() {
	profile, err := s.service.RecordLoanTaken(as(lender), alice)
	s.Require().NoError(err)
	s.Equal(uint64(1), profile.TotalLoans)
	s.Equal(models.TierNew, profile.CurrentTier)
	s.Equal(ledgerAt, profile.UpdatedAt)

	profile, err = s.service.RecordLoanTaken(as(lender), alice)
	s.Require().NoError(err)
	s.Equal(uint64(2), profile.TotalLoans)

	loans := s.eventsOf(eventmodels.TypeLoanRecorded)
	s.Require().Len(loans, 2)
	s.Equal(alice, loans[0].Principal)
	s.Equal(uint64(1), loans[0].NewValue)
	s.Equal(uint64(2), loans[1].NewValue)
}

func (s *ServiceSuite) TestRecordRequiresLendingAuthority() {
	for _, caller := range []id.Principal{stranger, owner, alice, id.ZeroPrincipal} {
		_, err := s.service.RecordLoanTaken(as(caller), alice)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Equal("caller is not the lending authority", err.Error())

		_, err = s.service.RecordRepayment(as(caller), alice)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		_, err = s.service.RecordDefault(as(caller), alice)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	}

	profile, err := s.service.GetProfile(context.Background(), alice)
	s.Require().NoError(err)
	s.Equal(*models.NewProfile(alice), *profile)
	s.Empty(s.allEvents())
}

func (s *ServiceSuite) TestRepaymentsWithoutBadge() {
	s.withoutBadge(alice)

	profile := s.repay(alice, 1)
	s.Equal(models.TierBronze, profile.CurrentTier)
	s.Equal(uint64(1), profile.TotalRepaidOnTime)

	upgrades := s.eventsOf(eventmodels.TypeCreditTierUpgraded)
	s.Require().Len(upgrades, 1)
	s.Equal(uint64(0), upgrades[0].OldValue)
	s.Equal(uint64(1), upgrades[0].NewValue)

	profile = s.repay(alice, 19)
	s.Equal(models.TierPlatinum, profile.CurrentTier)
	s.Equal(uint64(20), profile.TotalRepaidOnTime)
	s.Equal(uint64(20), profile.CurrentStreak)
	s.Len(s.eventsOf(eventmodels.TypeCreditTierUpgraded), 4)
	s.Len(s.eventsOf(eventmodels.TypeRepaymentRecorded), 20)
	s.Equal(float64(20), testutil.ToFloat64(s.metrics.BadgeSyncs.WithLabelValues("skipped")))
}

func (s *ServiceSuite) TestRepaymentEventOrder() {
	s.withoutBadge(alice)
	s.repay(alice, 1)

	events := s.allEvents()
	s.Require().Len(events, 2)
	s.Equal(eventmodels.TypeRepaymentRecorded, events[0].Type)
	s.Equal(eventmodels.TypeCreditTierUpgraded, events[1].Type)
}

func (s *ServiceSuite) TestTopTierRequiresNoDefaults() {
	s.withoutBadge(alice)

	s.repay(alice, 14)
	_, err := s.service.RecordDefault(as(lender), alice)
	s.Require().NoError(err)
	profile := s.repay(alice, 5)

	s.Equal(models.TierGold, profile.CurrentTier)
	s.Equal(uint64(5), profile.CurrentStreak)
	s.Equal(uint64(1), profile.TotalDefaulted)
}

func (s *ServiceSuite) TestUpgradeEvolvesBadge() {
	s.badges.EXPECT().HasBadge(gomock.Any(), alice).Return(true, nil).Times(15)
	s.badges.EXPECT().IsWeakened(gomock.Any(), alice).Return(false, nil).Times(15)
	gomock.InOrder(
		s.badges.EXPECT().Evolve(gomock.Any(), alice, models.TierBronze).Return(nil),
		s.badges.EXPECT().Evolve(gomock.Any(), alice, models.TierSilver).Return(nil),
		s.badges.EXPECT().Evolve(gomock.Any(), alice, models.TierGold).Return(nil),
		s.badges.EXPECT().Evolve(gomock.Any(), alice, models.TierPlatinum).Return(nil),
	)

	profile := s.repay(alice, 15)
	s.Equal(models.TierPlatinum, profile.CurrentTier)
	s.Equal(float64(4), testutil.ToFloat64(s.metrics.BadgeSyncs.WithLabelValues("evolve")))
}

func (s *ServiceSuite) TestRepaymentSpansMarkUpgrades() {
	spans := &spanLog{}
	svc := s.newService(WithTracer(spans))
	s.withoutBadge(alice)

	for range 2 {
		_, err := svc.RecordRepayment(as(lender), alice)
		s.Require().NoError(err)
	}
	_, err := svc.RecordRepayment(as(stranger), alice)
	s.Require().Error(err)

	repayments := spans.named(tracer.SpanCreditRepayment)
	s.Require().Len(repayments, 3)

	upgrade := repayments[0]
	s.Equal(alice.Hex(), upgrade.attrs[tracer.AttrPrincipal])
	s.Equal(true, upgrade.attrs[tracer.AttrUpgraded])
	s.Equal(int64(models.TierBronze), upgrade.attrs[tracer.AttrTier])
	s.Equal([]string{tracer.EventTierUpgraded}, upgrade.events)

	plain := repayments[1]
	s.Equal(false, plain.attrs[tracer.AttrUpgraded])
	s.Empty(plain.events)

	rejected := repayments[2]
	s.Error(rejected.err)
	s.NotContains(rejected.attrs, tracer.AttrUpgraded)
}

func (s *ServiceSuite) TestRepaymentHealsWeakenedBadge() {
	s.badges.EXPECT().HasBadge(gomock.Any(), alice).Return(true, nil).Times(2)
	s.badges.EXPECT().IsWeakened(gomock.Any(), alice).Return(true, nil)
	s.badges.EXPECT().Evolve(gomock.Any(), alice, models.TierBronze).Return(nil)
	s.badges.EXPECT().SetWeakened(gomock.Any(), alice, false).Return(nil)
	s.repay(alice, 1)

	// Second repayment: no upgrade (threshold 3), badge already healthy.
	s.badges.EXPECT().IsWeakened(gomock.Any(), alice).Return(false, nil)
	profile := s.repay(alice, 1)
	s.Equal(models.TierBronze, profile.CurrentTier)
}

func (s *ServiceSuite) TestRecordDefault() {
	s.Run("weakens the badge and resets the streak", func() {
		s.badges.EXPECT().HasBadge(gomock.Any(), alice).Return(true, nil).Times(4)
		s.badges.EXPECT().IsWeakened(gomock.Any(), alice).Return(false, nil).Times(3)
		s.badges.EXPECT().Evolve(gomock.Any(), alice, gomock.Any()).Return(nil).Times(2)
		s.repay(alice, 3)

		s.badges.EXPECT().SetWeakened(gomock.Any(), alice, true).Return(nil)
		profile, err := s.service.RecordDefault(as(lender), alice)
		s.Require().NoError(err)
		s.Equal(uint64(1), profile.TotalDefaulted)
		s.Zero(profile.CurrentStreak)
		s.Equal(models.TierSilver, profile.CurrentTier, "tier is never lowered")

		defaults := s.eventsOf(eventmodels.TypeDefaultRecorded)
		s.Require().Len(defaults, 1)
		s.Equal(uint64(1), defaults[0].NewValue)
	})

	s.Run("skips the badge when there is none", func() {
		s.withoutBadge(bob)
		profile, err := s.service.RecordDefault(as(lender), bob)
		s.Require().NoError(err)
		s.Equal(uint64(1), profile.TotalDefaulted)
	})
}

func (s *ServiceSuite) TestBadgeFailureRollsBackRecord() {
	s.badges.EXPECT().HasBadge(gomock.Any(), alice).Return(true, nil)
	s.badges.EXPECT().Evolve(gomock.Any(), alice, models.TierBronze).
		Return(dErrors.New(dErrors.CodeForbidden, "caller is not the evolution authority"))

	_, err := s.service.RecordRepayment(as(lender), alice)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	profile, err := s.service.GetProfile(context.Background(), alice)
	s.Require().NoError(err)
	s.Zero(profile.TotalRepaidOnTime)
	s.Equal(models.TierNew, profile.CurrentTier)
	s.Empty(s.allEvents())
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.OperationErrors.WithLabelValues("record_repayment", "forbidden")))
}

func (s *ServiceSuite) TestBadgeLookupFailureIsReturned() {
	s.badges.EXPECT().HasBadge(gomock.Any(), alice).Return(false, errors.New("badge store offline"))

	_, err := s.service.RecordDefault(as(lender), alice)
	s.Require().Error(err)
	s.Empty(s.allEvents())
}

func (s *ServiceSuite) TestZeroLendingAuthorityAuthorizesNobody() {
	svc, err := New(store.NewInMemory(), ledger.NewMemory(), eventservice.New(eventstore.NewInMemory()), s.badges)
	s.Require().NoError(err)
	s.Require().NoError(svc.Bootstrap(context.Background(), models.Settings{
		Owner:      owner,
		Parameters: models.DefaultParameters(),
	}))

	_, err = svc.RecordLoanTaken(as(id.ZeroPrincipal), alice)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	_, err = svc.RecordLoanTaken(as(lender), alice)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}
