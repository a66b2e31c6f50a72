package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/statisticsnorway/dataset-access-sub000/internal/access"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/httputil"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/requestcontext"
)

// Service defines the decision operations the handler exposes.
type Service interface {
	HasAccess(ctx context.Context, req access.EvaluateRequest) (*access.Result, error)
	FindGrants(ctx context.Context, path string, valuation domain.Valuation, state domain.DatasetState) ([]access.Grant, error)
}

// Handler wires the access check and inverse-query endpoints to the decision
// engine.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an access handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the access endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/access/{userId}", h.HandleCheck)
	r.Get("/access", h.HandleGrants)
}

// CheckResponse is the body returned for both outcomes of an access check.
type CheckResponse struct {
	Allowed     bool   `json:"allowed"`
	MatchedRole string `json:"matchedRole,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// HandleCheck handles GET /access/{userId}. Allowed checks answer 200,
// denials answer 403; engine failures map through the error envelope so a
// timeout or store outage is never mistaken for a denial.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	req, err := parseCheckQuery(chi.URLParam(r, "userId"), r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.HasAccess(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "access check failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", req.UserID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "access check evaluated",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", req.UserID,
		"privilege", req.Privilege,
		"path", req.Path,
		"allowed", result.Allowed,
		"matched_role", result.MatchedRole,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	status := http.StatusOK
	if !result.Allowed {
		status = http.StatusForbidden
	}
	httputil.WriteJSON(w, status, CheckResponse{
		Allowed:     result.Allowed,
		MatchedRole: result.MatchedRole,
		Reason:      string(result.Reason),
	})
}

// GrantsResponse is the compliance report for a resource descriptor.
type GrantsResponse struct {
	Grants []access.Grant `json:"grants"`
}

// HandleGrants handles GET /access: the audit/inverse query enumerating every
// user/group/role binding whose criteria match the resource.
func (h *Handler) HandleGrants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := parseGrantsQuery(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	grants, err := h.service.FindGrants(ctx, q.Path, q.Valuation, q.State)
	if err != nil {
		h.logger.ErrorContext(ctx, "grants query failed",
			"request_id", requestcontext.RequestID(ctx),
			"path", q.Path,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if grants == nil {
		grants = []access.Grant{}
	}
	httputil.WriteJSON(w, http.StatusOK, GrantsResponse{Grants: grants})
}
