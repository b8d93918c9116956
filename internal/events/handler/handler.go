package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"credipet/internal/events/models"
	id "credipet/pkg/domain"
	"credipet/pkg/platform/httputil"
	"credipet/pkg/requestcontext"
)

// The service clamps further; this only keeps the int conversion safe.
const maxQueryLimit = 10_000

// Service lists registry events for indexers.
type Service interface {
	List(ctx context.Context, filter models.Filter) ([]*models.Event, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/events", h.HandleList)
}

// HandleList returns events after a cursor, optionally filtered by principal and type.
//
//	GET /events?after=<seq>&principal=<0x..>&type=<type>&limit=<n>
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	filter, err := parseFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.service.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "list events failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toListResponse(events, filter.AfterSeq))
}

func parseFilter(r *http.Request) (models.Filter, error) {
	var filter models.Filter

	after, err := httputil.QueryUint(r, "after", 0)
	if err != nil {
		return filter, err
	}
	limit, err := httputil.QueryUint(r, "limit", 0)
	if err != nil {
		return filter, err
	}
	filter.AfterSeq = after
	filter.Limit = int(min(limit, maxQueryLimit)) //nolint:gosec // bounded by maxQueryLimit
	filter.Type = models.Type(r.URL.Query().Get("type"))

	if raw := r.URL.Query().Get("principal"); raw != "" {
		p, err := id.ParsePrincipal(raw)
		if err != nil {
			return filter, err
		}
		filter.Principal = &p
	}
	return filter, nil
}
