package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"credipet/internal/credit/models"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/platform/httputil"
	"credipet/pkg/requestcontext"
)

// Service defines the credit registry operations exposed over HTTP.
// The caller is carried in the request context.
type Service interface {
	RecordLoanTaken(ctx context.Context, p id.Principal) (*models.Profile, error)
	RecordRepayment(ctx context.Context, p id.Principal) (*models.Profile, error)
	RecordDefault(ctx context.Context, p id.Principal) (*models.Profile, error)
	GetProfile(ctx context.Context, p id.Principal) (*models.Profile, error)
	Settings(ctx context.Context) (*models.Settings, error)
	SetTierThreshold(ctx context.Context, tier models.Tier, repayments uint64) error
	SetCollateralRatio(ctx context.Context, tier models.Tier, bps uint64) error
	SetInterestRate(ctx context.Context, tier models.Tier, bps uint64) error
	SetLendingAuthority(ctx context.Context, authority id.Principal) error
	TransferOwnership(ctx context.Context, next id.Principal) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic registers the read-only routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/credit/profiles/{principal}", h.HandleGetProfile)
	r.Get("/credit/parameters", h.HandleGetParameters)
}

// Register registers the routes that act on behalf of the authenticated caller.
func (h *Handler) Register(r chi.Router) {
	r.Post("/credit/loans", h.recordHandler("loan", h.service.RecordLoanTaken))
	r.Post("/credit/repayments", h.recordHandler("repayment", h.service.RecordRepayment))
	r.Post("/credit/defaults", h.recordHandler("default", h.service.RecordDefault))
	r.Put("/credit/parameters/thresholds/{tier}", h.parameterHandler(h.service.SetTierThreshold))
	r.Put("/credit/parameters/collateral-ratios/{tier}", h.parameterHandler(h.service.SetCollateralRatio))
	r.Put("/credit/parameters/interest-rates/{tier}", h.parameterHandler(h.service.SetInterestRate))
	r.Put("/credit/config/lending-authority", h.HandleSetLendingAuthority)
	r.Put("/credit/config/owner", h.HandleTransferOwnership)
}

type recordFunc func(ctx context.Context, p id.Principal) (*models.Profile, error)

// recordHandler adapts one of the lending-authority operations. The
// response is the updated profile.
func (h *Handler) recordHandler(kind string, record recordFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := requestcontext.RequestID(ctx)
		if _, err := httputil.RequireCaller(ctx, h.logger, requestID); err != nil {
			httputil.WriteError(w, err)
			return
		}

		req, ok := httputil.DecodeAndPrepare[PrincipalRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}

		profile, err := record(ctx, req.principal)
		if err != nil {
			h.logger.WarnContext(ctx, "credit record failed",
				"kind", kind,
				"principal", req.principal.Hex(),
				"error", err,
				"request_id", requestID,
			)
			httputil.WriteError(w, err)
			return
		}
		h.writeProfile(w, r, profile)
	}
}

// HandleGetProfile returns a principal's history with the ratio and rate
// of its tier. Principals with no history get the zero profile.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := httputil.PathPrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	profile, err := h.service.GetProfile(ctx, p)
	if err != nil {
		h.logger.ErrorContext(ctx, "load credit profile failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	h.writeProfile(w, r, profile)
}

func (h *Handler) HandleGetParameters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	settings, err := h.service.Settings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "load credit settings failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toParametersResponse(settings))
}

type parameterFunc func(ctx context.Context, tier models.Tier, value uint64) error

func (h *Handler) parameterHandler(set parameterFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := requestcontext.RequestID(ctx)
		tier, err := parseTier(chi.URLParam(r, "tier"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		req, ok := httputil.DecodeAndPrepare[ParameterRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}

		h.writeParametersAfter(w, r, set(ctx, tier, *req.Value))
	}
}

func (h *Handler) HandleSetLendingAuthority(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[PrincipalRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	h.writeParametersAfter(w, r, h.service.SetLendingAuthority(ctx, req.principal))
}

func (h *Handler) HandleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[PrincipalRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	h.writeParametersAfter(w, r, h.service.TransferOwnership(ctx, req.principal))
}

func (h *Handler) writeProfile(w http.ResponseWriter, r *http.Request, profile *models.Profile) {
	settings, err := h.service.Settings(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProfileResponse(profile, &settings.Parameters))
}

// writeParametersAfter answers an admin update with the resulting settings.
func (h *Handler) writeParametersAfter(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		h.logger.WarnContext(r.Context(), "credit settings update failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, err)
		return
	}
	h.HandleGetParameters(w, r)
}

func parseTier(raw string) (models.Tier, error) {
	v, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid tier")
	}
	return models.ParseTier(v)
}
