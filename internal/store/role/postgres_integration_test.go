//go:build integration

package role_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	rolestore "github.com/statisticsnorway/dataset-access-sub000/internal/store/role"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/sentinel"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *rolestore.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = rolestore.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "roles"))
}

func newTestRole(id string) *domain.Role {
	return &domain.Role{
		RoleID:       id,
		Privileges:   domain.CriterionSet[domain.Privilege]{Includes: []domain.Privilege{domain.PrivilegeRead}},
		Paths:        domain.PathSet{Includes: []string{"/a"}},
		MaxValuation: domain.ValuationInternal,
	}
}

func (s *PostgresStoreSuite) TestRoundtrip() {
	ctx := context.Background()

	role := newTestRole("reader")
	s.Require().NoError(s.store.Upsert(ctx, role))

	got, err := s.store.Get(ctx, "reader")
	s.Require().NoError(err)
	s.Equal(role.RoleID, got.RoleID)
	s.Equal(role.Paths.Includes, got.Paths.Includes)
	s.Equal(role.MaxValuation, got.MaxValuation)

	s.Require().NoError(s.store.Delete(ctx, "reader"))
	_, err = s.store.Get(ctx, "reader")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpsertOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.store.Upsert(ctx, newTestRole("reader")))

	updated := newTestRole("reader")
	updated.MaxValuation = domain.ValuationSensitive
	s.Require().NoError(s.store.Upsert(ctx, updated))

	got, err := s.store.Get(ctx, "reader")
	s.Require().NoError(err)
	s.Equal(domain.ValuationSensitive, got.MaxValuation)
}

func (s *PostgresStoreSuite) TestGetManyOrderAndOmission() {
	ctx := context.Background()
	for _, id := range []string{"c-role", "a-role", "b-role"} {
		s.Require().NoError(s.store.Upsert(ctx, newTestRole(id)))
	}

	roles, err := s.store.GetMany(ctx, []string{"c-role", "deleted", "a-role"})
	s.Require().NoError(err)
	s.Require().Len(roles, 2)
	s.Equal("a-role", roles[0].RoleID)
	s.Equal("c-role", roles[1].RoleID)
}

func (s *PostgresStoreSuite) TestNotFound() {
	ctx := context.Background()

	_, err := s.store.Get(ctx, "ghost")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(ctx, "ghost"), sentinel.ErrNotFound)
}

// TestConcurrentUpsertSameRole verifies the race first accesses of the same
// provisioned identity can produce: all writers upsert the same document.
func (s *PostgresStoreSuite) TestConcurrentUpsertSameRole() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var failures atomic.Int32

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.store.Upsert(ctx, newTestRole("shared")); err != nil {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(0), failures.Load(), "concurrent upserts of the same document must all succeed")

	roles, err := s.store.List(ctx, "")
	s.Require().NoError(err)
	s.Len(roles, 1)
}

func (s *PostgresStoreSuite) TestListAndDeleteAll() {
	ctx := context.Background()
	for _, id := range []string{"reader", "read-only", "writer"} {
		s.Require().NoError(s.store.Upsert(ctx, newTestRole(id)))
	}

	filtered, err := s.store.List(ctx, "read")
	s.Require().NoError(err)
	s.Len(filtered, 2)

	count, err := s.store.DeleteAll(ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), count)
}
