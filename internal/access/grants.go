package access

import (
	"context"
	"slices"

	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
)

// FindGrants is the audit/inverse query: given a resource descriptor (no
// privilege filter), enumerate every role whose path, valuation, and state
// criteria match, then every group and direct user binding to that role. The
// output is a flattened compliance report grouped by role; ordering within a
// role is not guaranteed.
func (s *Service) FindGrants(ctx context.Context, path string, valuation domain.Valuation, state domain.DatasetState) ([]Grant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	roles, err := s.roles.List(ctx, "")
	if err != nil {
		return nil, s.classify(ctx, err)
	}

	var matched []string
	for _, role := range roles {
		if RoleMatchesResource(role, path, valuation, state) {
			matched = append(matched, role.RoleID)
		}
	}
	if len(matched) == 0 {
		return nil, nil
	}

	groups, err := s.groups.ListAll(ctx)
	if err != nil {
		return nil, s.classify(ctx, err)
	}
	users, err := s.users.List(ctx, "")
	if err != nil {
		return nil, s.classify(ctx, err)
	}

	var report []Grant
	for _, roleID := range matched {
		for _, user := range users {
			if slices.Contains(user.Roles, roleID) {
				report = append(report, Grant{RoleID: roleID, UserID: user.UserID})
			}
		}
		for _, group := range groups {
			if !slices.Contains(group.Roles, roleID) {
				continue
			}
			report = append(report, Grant{RoleID: roleID, GroupID: group.GroupID})
			for _, user := range users {
				if slices.Contains(user.Groups, group.GroupID) {
					report = append(report, Grant{RoleID: roleID, GroupID: group.GroupID, UserID: user.UserID})
				}
			}
		}
	}
	return report, nil
}
