package role_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	rolestore "github.com/statisticsnorway/dataset-access-sub000/internal/store/role"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *rolestore.MemoryStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = rolestore.NewMemory()
}

func (s *MemoryStoreSuite) seed(ids ...string) {
	for _, id := range ids {
		role := domain.Role{RoleID: id, MaxValuation: domain.ValuationInternal}
		s.Require().NoError(s.store.Upsert(s.ctx, &role))
	}
}

func (s *MemoryStoreSuite) TestGet() {
	s.Run("returns stored role", func() {
		s.seed("reader")
		role, err := s.store.Get(s.ctx, "reader")
		s.Require().NoError(err)
		s.Equal("reader", role.RoleID)
	})

	s.Run("missing role", func() {
		_, err := s.store.Get(s.ctx, "absent")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestGetMany() {
	s.seed("b", "a", "c")

	s.Run("returns roles in id sort order", func() {
		roles, err := s.store.GetMany(s.ctx, []string{"c", "a", "b"})
		s.Require().NoError(err)
		s.Require().Len(roles, 3)
		s.Equal("a", roles[0].RoleID)
		s.Equal("b", roles[1].RoleID)
		s.Equal("c", roles[2].RoleID)
	})

	s.Run("missing ids are silently omitted", func() {
		roles, err := s.store.GetMany(s.ctx, []string{"a", "deleted", "c"})
		s.Require().NoError(err)
		s.Require().Len(roles, 2)
		s.Equal("a", roles[0].RoleID)
		s.Equal("c", roles[1].RoleID)
	})

	s.Run("empty input", func() {
		roles, err := s.store.GetMany(s.ctx, nil)
		s.Require().NoError(err)
		s.Empty(roles)
	})
}

func (s *MemoryStoreSuite) TestUpsert() {
	s.Run("rejects invalid role", func() {
		err := s.store.Upsert(s.ctx, &domain.Role{RoleID: "bad", MaxValuation: "SECRET"})
		s.True(dErrors.Has(err, dErrors.CodeValidation))
	})

	s.Run("overwrites existing role", func() {
		s.seed("reader")
		updated := domain.Role{RoleID: "reader", Description: "updated", MaxValuation: domain.ValuationOpen}
		s.Require().NoError(s.store.Upsert(s.ctx, &updated))

		role, err := s.store.Get(s.ctx, "reader")
		s.Require().NoError(err)
		s.Equal("updated", role.Description)
		s.Equal(domain.ValuationOpen, role.MaxValuation)
	})

	s.Run("stored role is a copy", func() {
		role := domain.Role{RoleID: "reader", MaxValuation: domain.ValuationOpen}
		s.Require().NoError(s.store.Upsert(s.ctx, &role))
		role.Description = "mutated after store"

		stored, err := s.store.Get(s.ctx, "reader")
		s.Require().NoError(err)
		s.Empty(stored.Description)
	})
}

func (s *MemoryStoreSuite) TestDelete() {
	s.Run("removes role", func() {
		s.seed("reader")
		s.Require().NoError(s.store.Delete(s.ctx, "reader"))
		_, err := s.store.Get(s.ctx, "reader")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("missing role", func() {
		s.ErrorIs(s.store.Delete(s.ctx, "absent"), sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestDeleteAll() {
	s.seed("a", "b")
	count, err := s.store.DeleteAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), count)

	roles, err := s.store.List(s.ctx, "")
	s.Require().NoError(err)
	s.Empty(roles)
}

func (s *MemoryStoreSuite) TestList() {
	s.seed("reader", "writer", "read-only")

	s.Run("no filter returns everything sorted", func() {
		roles, err := s.store.List(s.ctx, "")
		s.Require().NoError(err)
		s.Require().Len(roles, 3)
		s.Equal("read-only", roles[0].RoleID)
	})

	s.Run("filter is a substring match", func() {
		roles, err := s.store.List(s.ctx, "read")
		s.Require().NoError(err)
		s.Len(roles, 2)
	})
}
