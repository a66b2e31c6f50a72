package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/httputil"
)

// RoleRequest is a role document arriving over the management API.
type RoleRequest domain.Role

// Validate implements httputil.Validatable.
func (r *RoleRequest) Validate() error {
	return (*domain.Role)(r).Validate()
}

func (h *Handler) HandleGetRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.roles.Get(r.Context(), chi.URLParam(r, "roleId"))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) HandlePutRole(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[RoleRequest](w, r, h.logger)
	if !ok {
		return
	}
	if req.RoleID != chi.URLParam(r, "roleId") {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "roleId in path and body must match"))
		return
	}
	role := domain.Role(*req)
	if err := h.roles.Upsert(r.Context(), &role); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) HandleDeleteRole(w http.ResponseWriter, r *http.Request) {
	if err := h.roles.Delete(r.Context(), chi.URLParam(r, "roleId")); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleDeleteAllRoles(w http.ResponseWriter, r *http.Request) {
	count, err := h.roles.DeleteAll(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DeleteAllResponse{Deleted: count})
}

func (h *Handler) HandleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	if roles == nil {
		roles = []*domain.Role{}
	}
	httputil.WriteJSON(w, http.StatusOK, roles)
}
