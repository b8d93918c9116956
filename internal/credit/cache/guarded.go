package cache

import (
	"context"
	"log/slog"

	"credipet/internal/credit/models"
	id "credipet/pkg/domain"
	"credipet/pkg/platform/circuit"
)

// ProfileCache is the cache contract shared by the Redis cache and its guard.
type ProfileCache interface {
	Get(ctx context.Context, p id.Principal) (*models.Profile, bool, error)
	Set(ctx context.Context, profile *models.Profile) error
	Invalidate(ctx context.Context, p id.Principal) error
}

// Guarded stops reading and filling a failing cache until it recovers.
// Invalidations always go through: skipping one could serve a stale
// profile once the cache is back.
type Guarded struct {
	next    ProfileCache
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuarded(next ProfileCache, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

// Get reports a miss without calling the cache while the circuit is open.
func (g *Guarded) Get(ctx context.Context, p id.Principal) (*models.Profile, bool, error) {
	if g.breaker.IsOpen() {
		return nil, false, nil
	}
	profile, ok, err := g.next.Get(ctx, p)
	g.record(ctx, err)
	return profile, ok, err
}

func (g *Guarded) Set(ctx context.Context, profile *models.Profile) error {
	if g.breaker.IsOpen() {
		return nil
	}
	err := g.next.Set(ctx, profile)
	g.record(ctx, err)
	return err
}

func (g *Guarded) Invalidate(ctx context.Context, p id.Principal) error {
	err := g.next.Invalidate(ctx, p)
	g.record(ctx, err)
	return err
}

func (g *Guarded) record(ctx context.Context, err error) {
	switch g.breaker.Record(err) {
	case circuit.Opened:
		g.logger.WarnContext(ctx, "profile cache circuit opened; reading from the store", "breaker", g.breaker.Name(), "error", err)
	case circuit.Closed:
		g.logger.InfoContext(ctx, "profile cache circuit closed", "breaker", g.breaker.Name())
	case circuit.NoChange:
	}
}
