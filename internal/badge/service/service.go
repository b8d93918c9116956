// Package service implements the soulbound badge registry: minting,
// evolution and health driven by the evolution authority, inert approvals,
// and owner-only configuration.
package service

import (
	"context"
	"errors"
	"log/slog"

	badgemetrics "credipet/internal/badge/metrics"
	"credipet/internal/badge/models"
	eventmodels "credipet/internal/events/models"
	"credipet/internal/sentinel"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/platform/tracer"
)

type Store interface {
	NextID(ctx context.Context) (id.BadgeID, error)
	Create(ctx context.Context, badge *models.Badge) error
	FindByID(ctx context.Context, badgeID id.BadgeID) (*models.Badge, error)
	FindByOwner(ctx context.Context, owner id.Principal) (*models.Badge, error)
	Update(ctx context.Context, badge *models.Badge) error
	SaveApproval(ctx context.Context, badgeID id.BadgeID, approved id.Principal) error
	FindApproval(ctx context.Context, badgeID id.BadgeID) (id.Principal, error)
	SetOperator(ctx context.Context, owner, operator id.Principal, approved bool) error
	IsOperator(ctx context.Context, owner, operator id.Principal) (bool, error)
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

type Service struct {
	store   Store
	ledger  Ledger
	events  EventEmitter
	logger  *slog.Logger
	metrics *badgemetrics.Metrics
	tracer  tracer.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *badgemetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(store Store, ledger Ledger, events EventEmitter, opts ...Option) (*Service, error) {
	if store == nil || ledger == nil || events == nil {
		return nil, errors.New("badge service requires a store, a ledger and an event emitter")
	}
	s := &Service{store: store, ledger: ledger, events: events}
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
		return dErrors.New(dErrors.CodeInvalidInput, "badge registry owner must not be the zero address")
	}
	return s.ledger.Execute(ctx, func(ctx context.Context) error {
		_, err := s.store.LoadSettings(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load badge settings")
		}
		if err := s.store.SaveSettings(ctx, &initial); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save badge settings")
		}
		s.logger.InfoContext(ctx, "badge registry initialized",
			"owner", initial.Owner.Hex(),
			"evolution_authority", initial.EvolutionAuthority.Hex(),
			"base_uri", initial.BaseURI,
		)
		return nil
	})
}

// Name and Symbol are the token-standard collection metadata.
func (s *Service) Name() string { return models.TokenName }

func (s *Service) Symbol() string { return models.TokenSymbol }

func (s *Service) settings(ctx context.Context) (*models.Settings, error) {
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeInternal, "badge registry is not initialized")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load badge settings")
	}
	return settings, nil
}

// badgeByID maps a missing id onto the registry's "invalid token id" error.
func (s *Service) badgeByID(ctx context.Context, badgeID id.BadgeID) (*models.Badge, error) {
	badge, err := s.store.FindByID(ctx, badgeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "invalid token id")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load badge")
	}
	return badge, nil
}

// badgeOf returns nil, nil when owner holds no badge.
func (s *Service) badgeOf(ctx context.Context, owner id.Principal) (*models.Badge, error) {
	badge, err := s.store.FindByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load badge")
	}
	return badge, nil
}

func (s *Service) requireBadgeOf(ctx context.Context, owner id.Principal) (*models.Badge, error) {
	badge, err := s.badgeOf(ctx, owner)
	if err != nil {
		return nil, err
	}
	if badge == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "owner has no badge")
	}
	return badge, nil
}
