package access

import "github.com/statisticsnorway/dataset-access-sub000/pkg/domain"

// RoleMatches reports whether a role grants the requested operation. All four
// checks must hold: privilege membership, path prefix, valuation ceiling, and
// lifecycle-state membership. This is pure domain logic with no I/O.
func RoleMatches(role *domain.Role, req EvaluateRequest) bool {
	return role.Privileges.Matches(req.Privilege) &&
		role.MaxValuation.Grants(req.Valuation) &&
		role.States.Matches(req.State) &&
		role.Paths.Matches(req.Path)
}

// RoleMatchesResource is RoleMatches with the privilege treated as a
// wildcard. The inverse/compliance query uses it to enumerate every role that
// could touch a resource regardless of operation kind.
func RoleMatchesResource(role *domain.Role, path string, valuation domain.Valuation, state domain.DatasetState) bool {
	return role.MaxValuation.Grants(valuation) &&
		role.States.Matches(state) &&
		role.Paths.Matches(path)
}
