package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	badgehandler "credipet/internal/badge/handler"
	badgemetrics "credipet/internal/badge/metrics"
	badgemodels "credipet/internal/badge/models"
	badgeservice "credipet/internal/badge/service"
	"credipet/internal/credit/adapters"
	"credipet/internal/credit/cache"
	credithandler "credipet/internal/credit/handler"
	creditmetrics "credipet/internal/credit/metrics"
	creditmodels "credipet/internal/credit/models"
	creditservice "credipet/internal/credit/service"
	eventhandler "credipet/internal/events/handler"
	eventmetrics "credipet/internal/events/metrics"
	"credipet/internal/events/relay"
	eventservice "credipet/internal/events/service"
	jwttoken "credipet/internal/jwt_token"
	"credipet/internal/platform/config"
	"credipet/internal/platform/health"
	"credipet/internal/platform/kafka"
	"credipet/internal/platform/kafka/producer"
	"credipet/internal/platform/logger"
	"credipet/internal/platform/metrics"
	"credipet/internal/platform/redis"
	httptransport "credipet/internal/transport/http"
	"credipet/pkg/platform/circuit"
	"credipet/pkg/platform/middleware/request"
	"credipet/pkg/platform/tracer"
)

const (
	shutdownTimeout     = 15 * time.Second
	housekeepingEvery   = 15 * time.Second
	eventTopicPartitions = 3
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	if !cfg.IsDevelopment() && cfg.JWTSigningKey == config.DevSigningKey {
		return errors.New("JWT_SIGNING_KEY must be set outside development")
	}

	log.Info("initializing credipet",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"owner", cfg.Registry.Owner.Hex(),
		"credit_registry", cfg.Registry.CreditRegistry.Hex(),
		"lending_authority", cfg.Registry.LendingAuthority.Hex(),
	)

	reg := metrics.NewRegistry(cfg.Environment)
	healthHandler := health.New(cfg.Environment)

	be, err := openBackend(ctx, cfg.Database, reg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := be.close(); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}()
	healthHandler.RegisterCheck("postgres", be.health)

	trc := tracer.NewOTel()
	events := eventservice.New(be.events, eventservice.WithLogger(log))

	badges, err := badgeservice.New(be.badges, be.ledger, events,
		badgeservice.WithLogger(log),
		badgeservice.WithMetrics(badgemetrics.New(reg)),
		badgeservice.WithTracer(trc),
	)
	if err != nil {
		return err
	}
	// The credit registry drives evolution, so it is the evolution authority.
	if err := badges.Bootstrap(ctx, badgemodels.Settings{
		Owner:              cfg.Registry.Owner,
		EvolutionAuthority: cfg.Registry.CreditRegistry,
		BaseURI:            cfg.Registry.BadgeBaseURI,
	}); err != nil {
		return fmt.Errorf("bootstrap badge registry: %w", err)
	}

	creditOpts := []creditservice.Option{
		creditservice.WithLogger(log),
		creditservice.WithMetrics(creditmetrics.New(reg)),
		creditservice.WithTracer(trc),
	}
	redisClient, err := redis.New(ctx, cfg.Redis, redis.NewPoolMetrics(reg))
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck // shutdown
		healthHandler.RegisterCheck("redis", redisClient.Health)
		profiles := cache.NewRedisProfileCache(redisClient.Client, cfg.Redis.ProfileCacheTTL)
		creditOpts = append(creditOpts, creditservice.WithProfileCache(
			cache.NewGuarded(profiles, circuit.New("profile-cache"), log),
		))
		log.Info("credit profile cache enabled", "ttl", cfg.Redis.ProfileCacheTTL)
	}

	credit, err := creditservice.New(be.credit, be.ledger, events,
		adapters.NewBadgeAdapter(badges, cfg.Registry.CreditRegistry),
		creditOpts...,
	)
	if err != nil {
		return err
	}
	if err := credit.Bootstrap(ctx, creditmodels.Settings{
		Owner:            cfg.Registry.Owner,
		LendingAuthority: cfg.Registry.LendingAuthority,
		Parameters:       creditmodels.DefaultParameters(),
	}); err != nil {
		return fmt.Errorf("bootstrap credit registry: %w", err)
	}

	var worker *relay.Worker
	if cfg.Kafka.Brokers != "" {
		prod, err := producer.New(producer.DefaultConfig(cfg.Kafka.Brokers), log)
		if err != nil {
			return err
		}
		defer prod.Close() //nolint:errcheck // shutdown
		admin := kafka.NewAdmin(prod.Client())
		if err := admin.EnsureTopic(ctx, cfg.Kafka.EventsTopic, eventTopicPartitions, -1); err != nil {
			return err
		}
		healthHandler.RegisterCheck("kafka", admin.Check)

		worker = relay.New(be.events, prod,
			relay.WithTopic(cfg.Kafka.EventsTopic),
			relay.WithBatchSize(cfg.Kafka.RelayBatch),
			relay.WithPollInterval(cfg.Kafka.RelayInterval),
			relay.WithMetrics(eventmetrics.New(reg)),
			relay.WithTracer(trc),
			relay.WithLogger(log),
		)
		worker.Start()
		log.Info("event relay started", "topic", cfg.Kafka.EventsTopic, "brokers", cfg.Kafka.Brokers)
	}

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
	tokens.SetEnv(cfg.Environment)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Badges:         badgehandler.New(badges, log),
		Credit:         credithandler.New(credit, log),
		Events:         eventhandler.New(events, log),
		Health:         healthHandler,
		Tokens:         jwttoken.NewVerifier(tokens),
		Metrics:        request.NewMetrics(reg),
		MetricsHandler: metrics.Handler(reg),
	}, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		healthHandler.Drain()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		if worker != nil {
			err = errors.Join(err, worker.Stop(shutdownCtx))
		}
		return err
	})
	g.Go(func() error {
		ticker := time.NewTicker(housekeepingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if redisClient != nil {
					redisClient.RecordPoolStats()
				}
				if worker != nil {
					if err := worker.UpdateMetrics(gctx); err != nil {
						log.Warn("failed to refresh relay metrics", "error", err)
					}
				}
			}
		}
	})
	return g.Wait()
}
