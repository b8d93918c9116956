//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"credipet/internal/credit/cache"
	"credipet/internal/credit/models"
	id "credipet/pkg/domain"
	"credipet/pkg/testutil/containers"
)

type RedisProfileCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.RedisProfileCache
}

func TestRedisProfileCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisProfileCacheSuite))
}

func (s *RedisProfileCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = cache.NewRedisProfileCache(s.redis.Client, time.Minute)
}

func (s *RedisProfileCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisProfileCacheSuite) TestRoundTrip() {
	ctx := context.Background()
	alice := id.DerivePrincipal("alice")

	_, ok, err := s.cache.Get(ctx, alice)
	s.Require().NoError(err)
	s.False(ok)

	profile := models.NewProfile(alice)
	profile.RecordLoan(time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC))
	profile.CurrentTier = models.TierSilver
	s.Require().NoError(s.cache.Set(ctx, profile))

	cached, ok, err := s.cache.Get(ctx, alice)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(alice, cached.Principal)
	s.Equal(uint64(1), cached.TotalLoans)
	s.Equal(models.TierSilver, cached.CurrentTier)
	s.True(profile.UpdatedAt.Equal(cached.UpdatedAt))
}

func (s *RedisProfileCacheSuite) TestInvalidate() {
	ctx := context.Background()
	bob := id.DerivePrincipal("bob")
	s.Require().NoError(s.cache.Set(ctx, models.NewProfile(bob)))

	s.Require().NoError(s.cache.Invalidate(ctx, bob))
	_, ok, err := s.cache.Get(ctx, bob)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.cache.Invalidate(ctx, bob), "missing keys are not an error")
}

func (s *RedisProfileCacheSuite) TestEntriesExpire() {
	ctx := context.Background()
	carol := id.DerivePrincipal("carol")
	short := cache.NewRedisProfileCache(s.redis.Client, time.Second)
	s.Require().NoError(short.Set(ctx, models.NewProfile(carol)))

	ttl, err := s.redis.Client.TTL(ctx, "credit:profile:"+carol.Hex()).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Second)
}
