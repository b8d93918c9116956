// Package service appends registry events inside the caller's ledger
// operation and serves event log queries.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"credipet/internal/events/models"
	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/requestcontext"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Store is the append-only event log.
type Store interface {
	Append(ctx context.Context, event *models.Event) error
	List(ctx context.Context, filter models.Filter) ([]*models.Event, error)
}

type Option func(*Service)

// Service is the event publisher shared by both registries.
type Service struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Emit appends event to the log. It must run inside a ledger operation so
// the entry commits or rolls back with the state change it describes.
func (s *Service) Emit(ctx context.Context, event *models.Event) error {
	if event == nil {
		return dErrors.New(dErrors.CodeInternal, "event is required")
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = requestcontext.Now(ctx).UTC()
	}
	if err := s.store.Append(ctx, event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record event")
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "event appended",
			"type", event.Type,
			"seq", event.Seq,
			"principal", event.Principal.Hex(),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return nil
}

// List returns events matching filter in log order.
func (s *Service) List(ctx context.Context, filter models.Filter) ([]*models.Event, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown event type: "+filter.Type.String())
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultListLimit
	case filter.Limit > MaxListLimit:
		filter.Limit = MaxListLimit
	}
	events, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list events")
	}
	return events, nil
}
