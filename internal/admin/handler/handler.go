// Package handler exposes the store CRUD surface used to manage users,
// roles, and groups. These endpoints are thin wrappers over the store
// contracts; all document validation lives on the domain types.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/statisticsnorway/dataset-access-sub000/internal/store"
	dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/httputil"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/sentinel"
)

// Handler wires the management endpoints to the stores.
type Handler struct {
	users  store.UserStore
	roles  store.RoleStore
	groups store.GroupStore
	logger *slog.Logger
}

// New constructs an admin handler.
func New(users store.UserStore, roles store.RoleStore, groups store.GroupStore, logger *slog.Logger) *Handler {
	return &Handler{users: users, roles: roles, groups: groups, logger: logger}
}

// Register mounts the management endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/role", func(r chi.Router) {
		r.Get("/", h.HandleListRoles)
		r.Delete("/", h.HandleDeleteAllRoles)
		r.Get("/{roleId}", h.HandleGetRole)
		r.Put("/{roleId}", h.HandlePutRole)
		r.Delete("/{roleId}", h.HandleDeleteRole)
	})
	r.Route("/user", func(r chi.Router) {
		r.Get("/", h.HandleListUsers)
		r.Delete("/", h.HandleDeleteAllUsers)
		r.Get("/{userId}", h.HandleGetUser)
		r.Put("/{userId}", h.HandlePutUser)
		r.Delete("/{userId}", h.HandleDeleteUser)
	})
	r.Route("/group", func(r chi.Router) {
		r.Get("/", h.HandleListGroups)
		r.Delete("/", h.HandleDeleteAllGroups)
		r.Get("/{groupId}", h.HandleGetGroup)
		r.Put("/{groupId}", h.HandlePutGroup)
		r.Delete("/{groupId}", h.HandleDeleteGroup)
	})
}

// writeStoreError maps store failures onto the error envelope.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "document not found"))
	case dErrors.Has(err, dErrors.CodeValidation):
		httputil.WriteError(w, err)
	default:
		h.logger.ErrorContext(r.Context(), "store operation failed", "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "store operation failed"))
	}
}

// DeleteAllResponse reports how many documents a collection-wide delete
// removed.
type DeleteAllResponse struct {
	Deleted int64 `json:"deleted"`
}
