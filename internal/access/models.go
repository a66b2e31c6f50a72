package access

import "github.com/statisticsnorway/dataset-access-sub000/pkg/domain"

// EvaluateRequest describes one access check: may the user perform the
// privilege on the path, given the dataset's valuation and lifecycle state.
type EvaluateRequest struct {
	UserID    string
	Privilege domain.Privilege
	Path      string
	Valuation domain.Valuation
	State     domain.DatasetState
}

// Result is the decision plus enough trace detail for auditing. MatchedRole
// is the first role (in roleId sort order) that granted access, empty on
// denial. Reason explains denials.
type Result struct {
	Allowed     bool
	MatchedRole string
	Reason      DenyReason
}

// DenyReason classifies why a request was denied.
type DenyReason string

const (
	// ReasonNone is set on allowed results.
	ReasonNone DenyReason = ""
	// ReasonUnknownUser means the identity is absent and not eligible for
	// auto-provisioning.
	ReasonUnknownUser DenyReason = "unknown_user"
	// ReasonNoMatchingRole means the identity exists but no bound role
	// matched all four criteria.
	ReasonNoMatchingRole DenyReason = "no_matching_role"
)

// Grant is one row of the compliance report produced by the inverse query: a
// role whose criteria match a resource, together with a binding to it. Direct
// user bindings set only UserID, group bindings set only GroupID, and group
// membership rows set both.
type Grant struct {
	RoleID  string `json:"roleId"`
	UserID  string `json:"userId,omitempty"`
	GroupID string `json:"groupId,omitempty"`
}
