// Package httptransport assembles the registry handlers into one chi router.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	badgehandler "credipet/internal/badge/handler"
	credithandler "credipet/internal/credit/handler"
	eventhandler "credipet/internal/events/handler"
	"credipet/internal/platform/health"
	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/platform/httputil"
	"credipet/pkg/platform/middleware/auth"
	"credipet/pkg/platform/middleware/request"
	"credipet/pkg/platform/middleware/requesttime"
)

const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBodyBytes = 1 << 20
)

// Dependencies are the handlers and middleware inputs the router mounts.
// Metrics and MetricsHandler are optional.
type Dependencies struct {
	Badges         *badgehandler.Handler
	Credit         *credithandler.Handler
	Events         *eventhandler.Handler
	Health         *health.Handler
	Tokens         auth.CallerVerifier
	Metrics        *request.Metrics
	MetricsHandler http.Handler
	Timeout        time.Duration
	MaxBodyBytes   int64
}

// NewRouter wires every endpoint with the shared middleware stack. Reads
// are public; anything that acts as a caller needs a bearer token.
func NewRouter(deps Dependencies, logger *slog.Logger) http.Handler {
	if deps.Timeout <= 0 {
		deps.Timeout = DefaultTimeout
	}
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(logger))
	r.Use(requesttime.Middleware)
	r.Use(request.LatencyMiddleware(deps.Metrics))
	r.Use(request.Timeout(deps.Timeout))
	r.Use(request.ContentTypeJSON)
	r.Use(request.BodyLimit(deps.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})

	deps.Health.Register(r)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	deps.Badges.RegisterPublic(r)
	deps.Credit.RegisterPublic(r)
	deps.Events.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(deps.Tokens, logger))
		deps.Badges.Register(r)
		deps.Credit.Register(r)
	})

	return r
}
