package domain

import dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"

// Privilege is the kind of operation a caller wants to perform on a dataset
// path. The set is closed and carries no hierarchy: DELETE does not imply
// UPDATE.
//
// Usage: construct via ParsePrivilege at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type Privilege string

const (
	PrivilegeRead   Privilege = "READ"
	PrivilegeCreate Privilege = "CREATE"
	PrivilegeUpdate Privilege = "UPDATE"
	PrivilegeDelete Privilege = "DELETE"
)

// validPrivileges is the single source of truth for valid privileges.
var validPrivileges = map[Privilege]bool{
	PrivilegeRead:   true,
	PrivilegeCreate: true,
	PrivilegeUpdate: true,
	PrivilegeDelete: true,
}

// ParsePrivilege constructs a Privilege from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported; no
// other errors are expected.
func ParsePrivilege(s string) (Privilege, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "privilege cannot be empty")
	}
	p := Privilege(s)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid privilege")
	}
	return p, nil
}

// IsValid checks if the privilege is one of the supported enum values.
func (p Privilege) IsValid() bool {
	return validPrivileges[p]
}

// String returns the string representation of the privilege.
func (p Privilege) String() string {
	return string(p)
}
