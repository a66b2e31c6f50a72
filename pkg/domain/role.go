package domain

import dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"

// Role is a named bundle of criteria defining what is permitted: which
// privileges, on which path subtrees, up to which sensitivity ceiling, and in
// which lifecycle states. Roles are immutable values once fetched for a
// decision; they change only through store writes.
type Role struct {
	RoleID       string                     `json:"roleId"`
	Description  string                     `json:"description,omitempty"`
	Privileges   CriterionSet[Privilege]    `json:"privileges"`
	Paths        PathSet                    `json:"paths"`
	MaxValuation Valuation                  `json:"maxValuation"`
	States       CriterionSet[DatasetState] `json:"states"`
}

// Validate checks the invariants a role must hold before it is persisted.
// Criterion lists may be empty (all-permitting), but every listed entry and
// the valuation ceiling must parse.
func (r *Role) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeValidation, "role is required")
	}
	if r.RoleID == "" {
		return dErrors.New(dErrors.CodeValidation, "roleId is required")
	}
	if !r.MaxValuation.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "maxValuation is not a valid valuation")
	}
	for _, p := range r.Privileges.Includes {
		if !p.IsValid() {
			return dErrors.New(dErrors.CodeValidation, "privileges.includes contains an invalid privilege")
		}
	}
	for _, p := range r.Privileges.Excludes {
		if !p.IsValid() {
			return dErrors.New(dErrors.CodeValidation, "privileges.excludes contains an invalid privilege")
		}
	}
	for _, s := range r.States.Includes {
		if !s.IsValid() {
			return dErrors.New(dErrors.CodeValidation, "states.includes contains an invalid dataset state")
		}
	}
	for _, s := range r.States.Excludes {
		if !s.IsValid() {
			return dErrors.New(dErrors.CodeValidation, "states.excludes contains an invalid dataset state")
		}
	}
	return nil
}
