package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"credipet/internal/credit/models"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/platform/tracer"
)

func (s *ServiceSuite) TestUnknownPrincipalReadsZero() {
	ctx := context.Background()

	profile, err := s.service.GetProfile(ctx, stranger)
	s.Require().NoError(err)
	s.Equal(stranger, profile.Principal)
	s.Zero(profile.TotalLoans)
	s.Zero(profile.CurrentStreak)

	tier, err := s.service.GetCreditTier(ctx, stranger)
	s.Require().NoError(err)
	s.Equal(models.TierNew, tier)

	ratio, err := s.service.GetCollateralRatio(ctx, stranger)
	s.Require().NoError(err)
	s.Equal(uint64(15000), ratio)

	rate, err := s.service.GetInterestRate(ctx, stranger)
	s.Require().NoError(err)
	s.Equal(uint64(500), rate)
}

func (s *ServiceSuite) TestDerivedReadsFollowTier() {
	ctx := context.Background()
	s.withoutBadge(alice)

	s.repay(alice, 1)
	ratio, err := s.service.GetCollateralRatio(ctx, alice)
	s.Require().NoError(err)
	s.Equal(uint64(13000), ratio)
	rate, err := s.service.GetInterestRate(ctx, alice)
	s.Require().NoError(err)
	s.Equal(uint64(400), rate)

	s.repay(alice, 2)
	ratio, err = s.service.GetCollateralRatio(ctx, alice)
	s.Require().NoError(err)
	s.Equal(uint64(11000), ratio)
}

func (s *ServiceSuite) TestParameterReads() {
	ctx := context.Background()

	thresholds, err := s.service.GetTierThresholds(ctx)
	s.Require().NoError(err)
	s.Equal([models.TierCount]uint64{0, 1, 3, 7, 15}, thresholds)

	ratio, err := s.service.CollateralRatio(ctx, models.TierPlatinum)
	s.Require().NoError(err)
	s.Equal(uint64(6000), ratio)

	rate, err := s.service.InterestRate(ctx, models.TierGold)
	s.Require().NoError(err)
	s.Equal(uint64(200), rate)

	_, err = s.service.InterestRate(ctx, models.Tier(7))
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	authority, err := s.service.LendingAuthority(ctx)
	s.Require().NoError(err)
	s.Equal(lender, authority)

	o, err := s.service.Owner(ctx)
	s.Require().NoError(err)
	s.Equal(owner, o)
}

// memoryCache is a ProfileCache backed by a map.
type memoryCache struct {
	mu          sync.Mutex
	entries     map[id.Principal]models.Profile
	invalidated []id.Principal
	failGet     bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[id.Principal]models.Profile)}
}

func (c *memoryCache) Get(_ context.Context, p id.Principal) (*models.Profile, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, false, errors.New("cache offline")
	}
	profile, ok := c.entries[p]
	if !ok {
		return nil, false, nil
	}
	return &profile, true, nil
}

func (c *memoryCache) Set(_ context.Context, profile *models.Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[profile.Principal] = *profile
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, p id.Principal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, p)
	c.invalidated = append(c.invalidated, p)
	return nil
}

func (s *ServiceSuite) TestProfileCache() {
	cache := newMemoryCache()
	spans := &spanLog{}
	svc := s.newService(WithProfileCache(cache), WithTracer(spans))
	ctx := context.Background()
	s.withoutBadge(alice)

	s.Run("miss populates, hit serves", func() {
		_, err := svc.GetProfile(ctx, alice)
		s.Require().NoError(err)
		_, err = svc.GetProfile(ctx, alice)
		s.Require().NoError(err)

		s.Equal(float64(1), testutil.ToFloat64(s.metrics.CacheLookups.WithLabelValues("miss")))
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.CacheLookups.WithLabelValues("hit")))

		reads := spans.named(tracer.SpanCreditProfile)
		s.Require().Len(reads, 2)
		s.Equal(false, reads[0].attrs[tracer.AttrCacheHit])
		s.Equal(true, reads[1].attrs[tracer.AttrCacheHit])
	})

	s.Run("committed record invalidates", func() {
		_, err := svc.RecordRepayment(as(lender), alice)
		s.Require().NoError(err)
		s.Equal([]id.Principal{alice}, cache.invalidated)
		record := spans.named(tracer.SpanCreditRepayment)
		s.Require().Len(record, 1)
		s.Contains(record[0].events, tracer.EventCacheEvicted)

		profile, err := svc.GetProfile(ctx, alice)
		s.Require().NoError(err)
		s.Equal(uint64(1), profile.TotalRepaidOnTime)
	})

	s.Run("failed record leaves the cache alone", func() {
		_, err := svc.RecordRepayment(as(stranger), alice)
		s.Require().Error(err)
		s.Len(cache.invalidated, 1)
	})

	s.Run("cache errors fall back to the store", func() {
		cache.failGet = true
		profile, err := svc.GetProfile(ctx, alice)
		s.Require().NoError(err)
		s.Equal(uint64(1), profile.TotalRepaidOnTime)
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.CacheLookups.WithLabelValues("error")))
	})
}

func (s *ServiceSuite) TestReadDuringFailingRecordSeesCommittedState() {
	cache := newMemoryCache()
	svc := s.newService(WithProfileCache(cache))
	inFlight := make(chan struct{})
	release := make(chan struct{})
	s.badges.EXPECT().HasBadge(gomock.Any(), alice).DoAndReturn(func(context.Context, id.Principal) (bool, error) {
		close(inFlight)
		<-release
		return false, errors.New("badge lookup failed")
	})

	recordErr := make(chan error, 1)
	go func() {
		_, err := svc.RecordRepayment(as(lender), alice)
		recordErr <- err
	}()
	<-inFlight

	type result struct {
		profile *models.Profile
		err     error
	}
	read := make(chan result, 1)
	go func() {
		profile, err := svc.GetProfile(context.Background(), alice)
		read <- result{profile: profile, err: err}
	}()

	select {
	case <-read:
		s.Fail("profile read completed while the repayment was still running")
		close(release)
		<-recordErr
		return
	case <-time.After(50 * time.Millisecond):
	}
	close(release)

	s.Require().Error(<-recordErr)
	got := <-read
	s.Require().NoError(got.err)
	s.Zero(got.profile.TotalRepaidOnTime)
	s.Equal(models.TierNew, got.profile.CurrentTier)

	cached, ok, err := cache.Get(context.Background(), alice)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Zero(cached.TotalRepaidOnTime, "only committed profiles reach the cache")
	s.Empty(cache.invalidated)
}
