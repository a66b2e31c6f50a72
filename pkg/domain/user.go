package domain

import dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"

// User is the identity being authorized. It carries direct role bindings and
// group memberships; the effective role set is the union of both.
type User struct {
	UserID string   `json:"userId"`
	Roles  []string `json:"roles,omitempty"`
	Groups []string `json:"groups,omitempty"`
}

// Validate checks the invariants a user must hold before it is persisted.
func (u *User) Validate() error {
	if u == nil {
		return dErrors.New(dErrors.CodeValidation, "user is required")
	}
	if u.UserID == "" {
		return dErrors.New(dErrors.CodeValidation, "userId is required")
	}
	return nil
}
