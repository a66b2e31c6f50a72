package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/httputil"
	pstrings "github.com/statisticsnorway/dataset-access-sub000/pkg/platform/strings"
)

// UserRequest is a user document arriving over the management API.
type UserRequest domain.User

// Validate implements httputil.Validatable. Role and group bindings are
// deduplicated on the way in so stored documents stay canonical.
func (u *UserRequest) Validate() error {
	u.Roles = pstrings.DedupeAndTrim(u.Roles)
	u.Groups = pstrings.DedupeAndTrim(u.Groups)
	return (*domain.User)(u).Validate()
}

func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) HandlePutUser(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[UserRequest](w, r, h.logger)
	if !ok {
		return
	}
	if req.UserID != chi.URLParam(r, "userId") {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "userId in path and body must match"))
		return
	}
	user := domain.User(*req)
	if err := h.users.Upsert(r.Context(), &user); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "userId")); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleDeleteAllUsers(w http.ResponseWriter, r *http.Request) {
	count, err := h.users.DeleteAll(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DeleteAllResponse{Deleted: count})
}

func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	httputil.WriteJSON(w, http.StatusOK, users)
}
