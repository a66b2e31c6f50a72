package handler

import (
	"net/url"
	"strings"

	"github.com/statisticsnorway/dataset-access-sub000/internal/access"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"
)

// parseCheckQuery validates the query parameters of an access check and
// builds the engine request. All four parameters are required.
func parseCheckQuery(userID string, query url.Values) (access.EvaluateRequest, error) {
	var req access.EvaluateRequest

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return req, dErrors.New(dErrors.CodeValidation, "userId is required")
	}

	privilege, err := domain.ParsePrivilege(query.Get("privilege"))
	if err != nil {
		return req, err
	}
	valuation, err := domain.ParseValuation(query.Get("valuation"))
	if err != nil {
		return req, err
	}
	state, err := domain.ParseDatasetState(query.Get("state"))
	if err != nil {
		return req, err
	}
	path := strings.TrimSpace(query.Get("path"))
	if path == "" {
		return req, dErrors.New(dErrors.CodeValidation, "path is required")
	}

	return access.EvaluateRequest{
		UserID:    userID,
		Privilege: privilege,
		Path:      domain.NormalizePath(path),
		Valuation: valuation,
		State:     state,
	}, nil
}

// parseGrantsQuery validates the query parameters of the inverse query.
type grantsQuery struct {
	Path      string
	Valuation domain.Valuation
	State     domain.DatasetState
}

func parseGrantsQuery(query url.Values) (grantsQuery, error) {
	var q grantsQuery

	valuation, err := domain.ParseValuation(query.Get("valuation"))
	if err != nil {
		return q, err
	}
	state, err := domain.ParseDatasetState(query.Get("state"))
	if err != nil {
		return q, err
	}
	path := strings.TrimSpace(query.Get("path"))
	if path == "" {
		return q, dErrors.New(dErrors.CodeValidation, "path is required")
	}

	return grantsQuery{
		Path:      domain.NormalizePath(path),
		Valuation: valuation,
		State:     state,
	}, nil
}
