// Package service implements the credit registry: the lending authority
// records loans, repayments and defaults; tiers rise with on-time
// repayments and drive the borrower's badge through the badge port.
package service

import (
	"context"
	"errors"
	"log/slog"

	creditmetrics "credipet/internal/credit/metrics"
	"credipet/internal/credit/models"
	"credipet/internal/credit/ports"
	eventmodels "credipet/internal/events/models"
	"credipet/internal/sentinel"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/platform/tracer"
)

type Store interface {
	FindProfile(ctx context.Context, p id.Principal) (*models.Profile, error)
	SaveProfile(ctx context.Context, profile *models.Profile) error
	LoadSettings(ctx context.Context) (*models.Settings, error)
	SaveSettings(ctx context.Context, settings *models.Settings) error
}

// Ledger runs a mutating operation atomically and reads against committed
// state; see internal/ledger.
type Ledger interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	Read(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventEmitter appends to the registry event log inside the current operation.
type EventEmitter interface {
	Emit(ctx context.Context, event *eventmodels.Event) error
}

// ProfileCache is an optional read-through cache for GetProfile. It is
// never consulted inside a ledger operation and only ever holds committed
// profiles.
type ProfileCache interface {
	Get(ctx context.Context, p id.Principal) (*models.Profile, bool, error)
	Set(ctx context.Context, profile *models.Profile) error
	Invalidate(ctx context.Context, p id.Principal) error
}

type Service struct {
	store   Store
	ledger  Ledger
	events  EventEmitter
	badges  ports.BadgePort
	cache   ProfileCache
	logger  *slog.Logger
	metrics *creditmetrics.Metrics
	tracer  tracer.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *creditmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithProfileCache(c ProfileCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func New(store Store, ledger Ledger, events EventEmitter, badges ports.BadgePort, opts ...Option) (*Service, error) {
	if store == nil || ledger == nil || events == nil || badges == nil {
		return nil, errors.New("credit service requires a store, a ledger, an event emitter and a badge port")
	}
	s := &Service{store: store, ledger: ledger, events: events, badges: badges}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.tracer == nil {
		s.tracer = tracer.NewNoop()
	}
	return s, nil
}

// Bootstrap writes the initial settings on first start. Settings already
// persisted by an earlier run are kept as they are.
func (s *Service) Bootstrap(ctx context.Context, initial models.Settings) error {
	if initial.Owner.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "credit registry owner must not be the zero address")
	}
	return s.ledger.Execute(ctx, func(ctx context.Context) error {
		_, err := s.store.LoadSettings(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credit settings")
		}
		if err := s.store.SaveSettings(ctx, &initial); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save credit settings")
		}
		s.logger.InfoContext(ctx, "credit registry initialized",
			"owner", initial.Owner.Hex(),
			"lending_authority", initial.LendingAuthority.Hex(),
		)
		return nil
	})
}

func (s *Service) settings(ctx context.Context) (*models.Settings, error) {
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeInternal, "credit registry is not initialized")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credit settings")
	}
	return settings, nil
}

// profileOf returns the stored profile, or the zero profile for a
// principal with no history.
func (s *Service) profileOf(ctx context.Context, p id.Principal) (*models.Profile, error) {
	profile, err := s.store.FindProfile(ctx, p)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.NewProfile(p), nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credit profile")
	}
	return profile, nil
}
