// Package cache keeps credit profiles in Redis so profile reads skip the
// ledger store. Entries expire after a TTL and are dropped after every
// committed record operation.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"credipet/internal/credit/models"
	id "credipet/pkg/domain"
)

const profileKeyPrefix = "credit:profile:"

// DefaultTTL bounds how stale a cached profile can be if an invalidation is lost.
const DefaultTTL = 5 * time.Minute

// RedisProfileCache stores JSON-encoded profiles under credit:profile:<address>.
type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProfileCache constructs a cache over a configured client.
// A non-positive ttl falls back to DefaultTTL.
func NewRedisProfileCache(client *redis.Client, ttl time.Duration) *RedisProfileCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisProfileCache{client: client, ttl: ttl}
}

// Get reports ok=false on a miss.
func (c *RedisProfileCache) Get(ctx context.Context, p id.Principal) (*models.Profile, bool, error) {
	data, err := c.client.Get(ctx, profileKey(p)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("find cached profile: %w", err)
	}

	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, false, fmt.Errorf("decode cached profile: %w", err)
	}
	return &profile, true, nil
}

func (c *RedisProfileCache) Set(ctx context.Context, profile *models.Profile) error {
	if profile == nil {
		return fmt.Errorf("profile is required")
	}
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode cached profile: %w", err)
	}
	if err := c.client.Set(ctx, profileKey(profile.Principal), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("save cached profile: %w", err)
	}
	return nil
}

func (c *RedisProfileCache) Invalidate(ctx context.Context, p id.Principal) error {
	if err := c.client.Del(ctx, profileKey(p)).Err(); err != nil {
		return fmt.Errorf("invalidate cached profile: %w", err)
	}
	return nil
}

func profileKey(p id.Principal) string {
	return profileKeyPrefix + p.Hex()
}
