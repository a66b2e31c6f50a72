package access_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statisticsnorway/dataset-access-sub000/internal/access"
	"github.com/statisticsnorway/dataset-access-sub000/internal/audit"
	"github.com/statisticsnorway/dataset-access-sub000/internal/platform/logger"
	"github.com/statisticsnorway/dataset-access-sub000/internal/store"
	groupstore "github.com/statisticsnorway/dataset-access-sub000/internal/store/group"
	rolestore "github.com/statisticsnorway/dataset-access-sub000/internal/store/role"
	userstore "github.com/statisticsnorway/dataset-access-sub000/internal/store/user"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"
)

type fixture struct {
	users  *userstore.MemoryStore
	roles  *rolestore.MemoryStore
	groups *groupstore.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:  userstore.NewMemory(),
		roles:  rolestore.NewMemory(),
		groups: groupstore.NewMemory(),
	}
	ctx := context.Background()

	readerRole := &domain.Role{
		RoleID:       "reader",
		Description:  "read access to /a for internal data",
		Privileges:   domain.CriterionSet[domain.Privilege]{Includes: []domain.Privilege{domain.PrivilegeRead}},
		Paths:        domain.PathSet{Includes: []string{"/a"}},
		MaxValuation: domain.ValuationInternal,
		States:       domain.CriterionSet[domain.DatasetState]{Includes: []domain.DatasetState{domain.StateRaw, domain.StateInput}},
	}
	require.NoError(t, f.roles.Upsert(ctx, readerRole))
	require.NoError(t, f.users.Upsert(ctx, &domain.User{UserID: "john", Roles: []string{"reader"}}))
	require.NoError(t, f.groups.Upsert(ctx, &domain.Group{GroupID: "readers", Roles: []string{"reader"}}))
	require.NoError(t, f.users.Upsert(ctx, &domain.User{UserID: "jane", Groups: []string{"readers"}}))
	return f
}

func (f *fixture) service(t *testing.T, opts ...access.Option) *access.Service {
	t.Helper()
	return access.NewService(f.users, f.roles, f.groups, logger.New(), opts...)
}

func check(userID string, priv domain.Privilege, path string, v domain.Valuation, st domain.DatasetState) access.EvaluateRequest {
	return access.EvaluateRequest{UserID: userID, Privilege: priv, Path: path, Valuation: v, State: st}
}

func TestHasAccess_Scenarios(t *testing.T) {
	f := newFixture(t)
	svc := f.service(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  access.EvaluateRequest
		want bool
	}{
		{"reader reads under granted subtree", check("john", domain.PrivilegeRead, "/a/b/c", domain.ValuationOpen, domain.StateInput), true},
		{"valuation exceeds role ceiling", check("john", domain.PrivilegeRead, "/a/b/c", domain.ValuationSensitive, domain.StateInput), false},
		{"privilege not included", check("john", domain.PrivilegeDelete, "/a/b/c", domain.ValuationOpen, domain.StateInput), false},
		{"state not included", check("john", domain.PrivilegeRead, "/a/b/c", domain.ValuationOpen, domain.StateOutput), false},
		{"path outside granted subtree", check("john", domain.PrivilegeRead, "/b", domain.ValuationOpen, domain.StateInput), false},
		{"unknown user denied", check("unknown_user", domain.PrivilegeRead, "/a", domain.ValuationOpen, domain.StateInput), false},
		{"group member inherits role", check("jane", domain.PrivilegeRead, "/a/x", domain.ValuationOpen, domain.StateRaw), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.HasAccess(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Allowed)
		})
	}
}

// TestHasAccess_GroupTransitivity compares a direct-role user with a
// group-only user: both must get exactly the same outcomes.
func TestHasAccess_GroupTransitivity(t *testing.T) {
	f := newFixture(t)
	svc := f.service(t)
	ctx := context.Background()

	requests := []access.EvaluateRequest{
		check("", domain.PrivilegeRead, "/a/b", domain.ValuationOpen, domain.StateRaw),
		check("", domain.PrivilegeRead, "/a/b", domain.ValuationSensitive, domain.StateRaw),
		check("", domain.PrivilegeCreate, "/a/b", domain.ValuationOpen, domain.StateRaw),
		check("", domain.PrivilegeRead, "/elsewhere", domain.ValuationOpen, domain.StateRaw),
	}
	for _, req := range requests {
		direct := req
		direct.UserID = "john"
		viaGroup := req
		viaGroup.UserID = "jane"

		directResult, err := svc.HasAccess(ctx, direct)
		require.NoError(t, err)
		groupResult, err := svc.HasAccess(ctx, viaGroup)
		require.NoError(t, err)
		assert.Equal(t, directResult.Allowed, groupResult.Allowed)
	}
}

// TestHasAccess_FirstMatchWins binds two matching roles and asserts the one
// first in roleId sort order is cited, proving evaluation stopped there.
func TestHasAccess_FirstMatchWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	broad := &domain.Role{RoleID: "a-broad", MaxValuation: domain.ValuationSensitive}
	require.NoError(t, f.roles.Upsert(ctx, broad))
	require.NoError(t, f.users.Upsert(ctx, &domain.User{UserID: "john", Roles: []string{"reader", "a-broad"}}))

	svc := f.service(t)
	result, err := svc.HasAccess(ctx, check("john", domain.PrivilegeRead, "/a", domain.ValuationOpen, domain.StateInput))
	require.NoError(t, err)
	require.True(t, result.Allowed)
	assert.Equal(t, "a-broad", result.MatchedRole, "the role earliest in id sort order is cited")
}

func TestHasAccess_DanglingRoleReferenceIsDropped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Upsert(ctx, &domain.User{UserID: "john", Roles: []string{"reader", "deleted-role"}}))

	svc := f.service(t)
	result, err := svc.HasAccess(ctx, check("john", domain.PrivilegeRead, "/a", domain.ValuationOpen, domain.StateInput))
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestHasAccess_DanglingGroupReferenceIsDropped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Upsert(ctx, &domain.User{UserID: "jane", Groups: []string{"readers", "defunct"}}))

	svc := f.service(t)
	result, err := svc.HasAccess(ctx, check("jane", domain.PrivilegeRead, "/a", domain.ValuationOpen, domain.StateRaw))
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestHasAccess_NoRolesMeansDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Upsert(ctx, &domain.User{UserID: "empty"}))

	svc := f.service(t)
	result, err := svc.HasAccess(ctx, check("empty", domain.PrivilegeRead, "/a", domain.ValuationOpen, domain.StateInput))
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, access.ReasonNoMatchingRole, result.Reason)
}

// stubProvisioner satisfies access.Provisioner for engine tests.
type stubProvisioner struct {
	user *domain.User
	err  error
	hits int
}

func (s *stubProvisioner) TryProvision(_ context.Context, _ string) (*domain.User, error) {
	s.hits++
	return s.user, s.err
}

func TestHasAccess_ProvisionedIdentityIsUsedImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	prov := &stubProvisioner{user: &domain.User{UserID: "new.user@example.org", Roles: []string{"reader"}}}
	svc := f.service(t, access.WithProvisioner(prov))

	result, err := svc.HasAccess(ctx, check("new.user@example.org", domain.PrivilegeRead, "/a", domain.ValuationOpen, domain.StateInput))
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, prov.hits)
}

func TestHasAccess_IneligibleProvisioningDeniesFailClosed(t *testing.T) {
	f := newFixture(t)
	svc := f.service(t, access.WithProvisioner(&stubProvisioner{}))

	result, err := svc.HasAccess(context.Background(), check("stranger", domain.PrivilegeRead, "/a", domain.ValuationOpen, domain.StateInput))
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, access.ReasonUnknownUser, result.Reason)
}

func TestHasAccess_ProvisioningFailureIsAnErrorNotADenial(t *testing.T) {
	f := newFixture(t)
	provErr := dErrors.New(dErrors.CodeInternal, "failed to persist provisioned user")
	svc := f.service(t, access.WithProvisioner(&stubProvisioner{err: provErr}))

	_, err := svc.HasAccess(context.Background(), check("someone@example.org", domain.PrivilegeRead, "/a", domain.ValuationOpen, domain.StateInput))
	require.Error(t, err)
	assert.True(t, dErrors.Has(err, dErrors.CodeInternal))
}

// blockingUserStore stalls until its context is cancelled, forcing the
// decision deadline to fire.
type blockingUserStore struct {
	*userstore.MemoryStore
}

func (s *blockingUserStore) Get(ctx context.Context, _ string) (*domain.User, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestHasAccess_TimeoutFailsClosedAsError(t *testing.T) {
	f := newFixture(t)
	users := &blockingUserStore{MemoryStore: f.users}
	svc := access.NewService(users, f.roles, f.groups, logger.New(), access.WithTimeout(20*time.Millisecond))

	result, err := svc.HasAccess(context.Background(), check("john", domain.PrivilegeRead, "/a", domain.ValuationOpen, domain.StateInput))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, dErrors.Has(err, dErrors.CodeTimeout))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

// unavailableUserStore fails every lookup the way a postgres store reports a
// lost connection.
type unavailableUserStore struct {
	*userstore.MemoryStore
}

func (s *unavailableUserStore) Get(_ context.Context, _ string) (*domain.User, error) {
	return nil, store.Unavailable(errors.New("connection refused"))
}

func TestHasAccess_StoreOutageSurfacesAsUnavailable(t *testing.T) {
	f := newFixture(t)
	users := &unavailableUserStore{MemoryStore: f.users}
	svc := access.NewService(users, f.roles, f.groups, logger.New())

	result, err := svc.HasAccess(context.Background(), check("john", domain.PrivilegeRead, "/a", domain.ValuationOpen, domain.StateInput))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, dErrors.Has(err, dErrors.CodeUnavailable))
}

func TestHasAccess_PublishesAuditEvent(t *testing.T) {
	f := newFixture(t)
	sink := audit.NewMemoryPublisher()
	svc := f.service(t, access.WithPublisher(sink))

	_, err := svc.HasAccess(context.Background(), check("john", domain.PrivilegeRead, "/a/b", domain.ValuationOpen, domain.StateInput))
	require.NoError(t, err)

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "john", events[0].UserID)
	assert.True(t, events[0].Allowed)
	assert.Equal(t, "reader", events[0].MatchedRole)
	assert.NotEmpty(t, events[0].EventID)
}
