package domain

import dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"

// Group is a role-aggregation alias: membership expands to the group's role
// set. A group carries no criteria of its own.
type Group struct {
	GroupID     string   `json:"groupId"`
	Description string   `json:"description,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// Validate checks the invariants a group must hold before it is persisted.
func (g *Group) Validate() error {
	if g == nil {
		return dErrors.New(dErrors.CodeValidation, "group is required")
	}
	if g.GroupID == "" {
		return dErrors.New(dErrors.CodeValidation, "groupId is required")
	}
	return nil
}
