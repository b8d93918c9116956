package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"credipet/internal/badge/models"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/platform/httputil"
	"credipet/pkg/requestcontext"
)

// Service defines the badge registry operations exposed over HTTP.
// The caller is carried in the request context.
type Service interface {
	Mint(ctx context.Context) (*models.Badge, error)
	Evolve(ctx context.Context, owner id.Principal, stage models.Stage) (*models.Badge, error)
	SetWeakened(ctx context.Context, owner id.Principal, weakened bool) (*models.Badge, error)
	GetBadge(ctx context.Context, badgeID id.BadgeID) (*models.Badge, error)
	TokenURI(ctx context.Context, badgeID id.BadgeID) (string, error)
	BadgeOf(ctx context.Context, owner id.Principal) (id.BadgeID, error)
	IsWeakened(ctx context.Context, owner id.Principal) (bool, error)
	Approve(ctx context.Context, to id.Principal, badgeID id.BadgeID) error
	GetApproved(ctx context.Context, badgeID id.BadgeID) (id.Principal, error)
	SetApprovalForAll(ctx context.Context, operator id.Principal, approved bool) error
	IsApprovedForAll(ctx context.Context, owner, operator id.Principal) (bool, error)
	TransferFrom(ctx context.Context, from, to id.Principal, badgeID id.BadgeID) error
	SafeTransferFrom(ctx context.Context, from, to id.Principal, badgeID id.BadgeID, data []byte) error
	SetBaseURI(ctx context.Context, baseURI string) error
	SetEvolutionAuthority(ctx context.Context, authority id.Principal) error
	TransferOwnership(ctx context.Context, next id.Principal) error
	Settings(ctx context.Context) (*models.Settings, error)
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
	r.Get("/badges/config", h.HandleGetSettings)
	r.Get("/badges/owners/{principal}", h.HandleGetOwner)
	r.Get("/badges/owners/{principal}/operators/{operator}", h.HandleIsApprovedForAll)
	r.Get("/badges/{id}", h.HandleGetBadge)
	r.Get("/badges/{id}/uri", h.HandleTokenURI)
	r.Get("/badges/{id}/approval", h.HandleGetApproved)
}

// Register registers the routes that act on behalf of the authenticated caller.
func (h *Handler) Register(r chi.Router) {
	r.Post("/badges", h.HandleMint)
	r.Post("/badges/evolve", h.HandleEvolve)
	r.Post("/badges/health", h.HandleSetWeakened)
	r.Post("/badges/operators", h.HandleSetApprovalForAll)
	r.Post("/badges/{id}/approval", h.HandleApprove)
	r.Post("/badges/{id}/transfer", h.HandleTransfer)
	r.Put("/badges/config/base-uri", h.HandleSetBaseURI)
	r.Put("/badges/config/evolution-authority", h.HandleSetEvolutionAuthority)
	r.Put("/badges/config/owner", h.HandleTransferOwnership)
}

// HandleMint mints a badge for the caller.
func (h *Handler) HandleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	if _, err := httputil.RequireCaller(ctx, h.logger, requestID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	badge, err := h.service.Mint(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "mint failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toBadgeResponse(badge))
}

func (h *Handler) HandleEvolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EvolveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	badge, err := h.service.Evolve(ctx, req.owner, req.stage)
	if err != nil {
		h.logger.WarnContext(ctx, "evolve failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toBadgeResponse(badge))
}

func (h *Handler) HandleSetWeakened(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[HealthRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	badge, err := h.service.SetWeakened(ctx, req.owner, *req.Weakened)
	if err != nil {
		h.logger.WarnContext(ctx, "set weakened failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toBadgeResponse(badge))
}

// HandleGetBadge returns a badge with its metadata URI.
func (h *Handler) HandleGetBadge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	badgeID, err := id.ParseBadgeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	badge, err := h.service.GetBadge(ctx, badgeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	uri, err := h.service.TokenURI(ctx, badgeID)
	if err != nil {
		h.logger.ErrorContext(ctx, "token uri failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}

	resp := toBadgeResponse(badge)
	resp.TokenURI = uri
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleTokenURI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	badgeID, err := id.ParseBadgeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	uri, err := h.service.TokenURI(ctx, badgeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &TokenURIResponse{BadgeID: uint64(badgeID), TokenURI: uri})
}

// HandleGetOwner reports whether a principal holds a badge. Unknown
// principals are not an error.
func (h *Handler) HandleGetOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, err := httputil.PathPrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	badgeID, err := h.service.BadgeOf(ctx, owner)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	weakened, err := h.service.IsWeakened(ctx, owner)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toOwnerResponse(owner, badgeID, weakened))
}

func (h *Handler) HandleIsApprovedForAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, err := httputil.PathPrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	operator, err := httputil.PathPrincipal(chi.URLParam(r, "operator"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	approved, err := h.service.IsApprovedForAll(ctx, owner, operator)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &OperatorResponse{
		Owner:    owner.Hex(),
		Operator: operator.Hex(),
		Approved: approved,
	})
}

func (h *Handler) HandleGetApproved(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	badgeID, err := id.ParseBadgeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	approved, err := h.service.GetApproved(ctx, badgeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &ApprovalResponse{BadgeID: uint64(badgeID), Approved: approved.Hex()})
}

func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	badgeID, err := id.ParseBadgeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[ApproveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.Approve(ctx, req.to, badgeID); err != nil {
		h.logger.WarnContext(ctx, "approve failed", "error", err, "request_id", requestID, "badge_id", badgeID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &ApprovalResponse{BadgeID: uint64(badgeID), Approved: req.to.Hex()})
}

func (h *Handler) HandleSetApprovalForAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequireCaller(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[OperatorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SetApprovalForAll(ctx, req.operator, *req.Approved); err != nil {
		h.logger.WarnContext(ctx, "set approval for all failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &OperatorResponse{
		Owner:    caller.Hex(),
		Operator: req.operator.Hex(),
		Approved: *req.Approved,
	})
}

// HandleTransfer exists for token-standard parity. Badges are soulbound, so
// the service rejects every call; a body with data takes the safe variant.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	badgeID, err := id.ParseBadgeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if req.Data != nil {
		err = h.service.SafeTransferFrom(ctx, req.from, req.to, badgeID, []byte(*req.Data))
	} else {
		err = h.service.TransferFrom(ctx, req.from, req.to, badgeID)
	}
	if err == nil {
		// Unreachable while badges are soulbound.
		err = dErrors.New(dErrors.CodeInternal, "transfer unexpectedly succeeded")
	}
	httputil.WriteError(w, err)
}

func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	settings, err := h.service.Settings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "load badge settings failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toSettingsResponse(settings))
}

func (h *Handler) HandleSetBaseURI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BaseURIRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	h.writeSettingsAfter(w, r, h.service.SetBaseURI(ctx, req.BaseURI))
}

func (h *Handler) HandleSetEvolutionAuthority(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[PrincipalRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	h.writeSettingsAfter(w, r, h.service.SetEvolutionAuthority(ctx, req.principal))
}

func (h *Handler) HandleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[PrincipalRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	h.writeSettingsAfter(w, r, h.service.TransferOwnership(ctx, req.principal))
}

// writeSettingsAfter answers an admin update with the resulting settings.
func (h *Handler) writeSettingsAfter(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		h.logger.WarnContext(r.Context(), "badge settings update failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, err)
		return
	}
	h.HandleGetSettings(w, r)
}
