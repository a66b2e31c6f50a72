package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/httputil"
	pstrings "github.com/statisticsnorway/dataset-access-sub000/pkg/platform/strings"
)

// GroupRequest is a group document arriving over the management API.
type GroupRequest domain.Group

// Validate implements httputil.Validatable.
func (g *GroupRequest) Validate() error {
	g.Roles = pstrings.DedupeAndTrim(g.Roles)
	return (*domain.Group)(g).Validate()
}

func (h *Handler) HandleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.Get(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, group)
}

func (h *Handler) HandlePutGroup(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[GroupRequest](w, r, h.logger)
	if !ok {
		return
	}
	if req.GroupID != chi.URLParam(r, "groupId") {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "groupId in path and body must match"))
		return
	}
	group := domain.Group(*req)
	if err := h.groups.Upsert(r.Context(), &group); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.groups.Delete(r.Context(), chi.URLParam(r, "groupId")); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleDeleteAllGroups(w http.ResponseWriter, r *http.Request) {
	count, err := h.groups.DeleteAll(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DeleteAllResponse{Deleted: count})
}

func (h *Handler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.ListAll(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	if groups == nil {
		groups = []*domain.Group{}
	}
	httputil.WriteJSON(w, http.StatusOK, groups)
}
