package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	badgeservice "credipet/internal/badge/service"
	badgestore "credipet/internal/badge/store"
	creditservice "credipet/internal/credit/service"
	creditstore "credipet/internal/credit/store"
	"credipet/internal/events/relay"
	eventservice "credipet/internal/events/service"
	eventstore "credipet/internal/events/store"
	"credipet/internal/ledger"
	"credipet/internal/platform/config"
	"credipet/internal/platform/database"
	"credipet/internal/platform/health"
	"credipet/migrations"
)

// eventLog is what the event service and the relay need from the log.
type eventLog interface {
	eventservice.Store
	relay.Store
}

// backend is one consistent set of stores behind a shared ledger.
type backend struct {
	ledger ledger.Ledger
	badges badgeservice.Store
	credit creditservice.Store
	events eventLog
	health health.CheckFunc
	close  func() error
}

// openBackend uses Postgres when a database URL is configured and falls
// back to process memory otherwise.
func openBackend(ctx context.Context, cfg config.DatabaseConfig, reg prometheus.Registerer, log *slog.Logger) (*backend, error) {
	metrics := ledger.NewMetrics(reg)
	if cfg.URL == "" {
		log.Warn("DATABASE_URL not set; registry state lives in memory and is lost on restart")
		return &backend{
			ledger: ledger.NewMemory(ledger.WithMetrics(metrics)),
			badges: badgestore.NewInMemory(),
			credit: creditstore.NewInMemory(),
			events: eventstore.NewInMemory(),
			close:  func() error { return nil },
		}, nil
	}

	pool, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := pool.RegisterMetrics(reg); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("register pool metrics: %w", err)
	}
	applied, err := pool.Migrate(ctx, migrations.FS)
	if err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Info("connected to postgres",
		"migrations_applied", applied,
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	db := pool.DB()
	return &backend{
		ledger: ledger.NewPostgres(db, ledger.WithMetrics(metrics)),
		badges: badgestore.NewPostgres(db),
		credit: creditstore.NewPostgres(db),
		events: eventstore.NewPostgres(db),
		health: pool.Health,
		close:  pool.Close,
	}, nil
}
