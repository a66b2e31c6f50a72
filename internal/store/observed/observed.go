// Package observed wraps the store contracts so that every store operation,
// successful or not, reports to a health observer. The readiness monitor
// piggy-backs its health sample on real traffic this way, at no extra cost.
package observed

import (
	"context"
	"errors"

	"github.com/statisticsnorway/dataset-access-sub000/internal/store"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/sentinel"
)

// Observer receives the outcome of every store operation. A nil error means
// the backing store answered, even if the answer was "not found".
type Observer interface {
	Observe(err error)
}

// report strips sentinel.ErrNotFound before observing: an absent document is
// a healthy round trip.
func report(obs Observer, err error) {
	if errors.Is(err, sentinel.ErrNotFound) {
		err = nil
	}
	obs.Observe(err)
}

// UserStore decorates a store.UserStore with health observation.
type UserStore struct {
	inner store.UserStore
	obs   Observer
}

// NewUserStore wraps inner so every operation reports to obs.
func NewUserStore(inner store.UserStore, obs Observer) *UserStore {
	return &UserStore{inner: inner, obs: obs}
}

func (s *UserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.inner.Get(ctx, userID)
	report(s.obs, err)
	return u, err
}

func (s *UserStore) Upsert(ctx context.Context, user *domain.User) error {
	err := s.inner.Upsert(ctx, user)
	report(s.obs, err)
	return err
}

func (s *UserStore) Delete(ctx context.Context, userID string) error {
	err := s.inner.Delete(ctx, userID)
	report(s.obs, err)
	return err
}

func (s *UserStore) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.inner.DeleteAll(ctx)
	report(s.obs, err)
	return n, err
}

func (s *UserStore) List(ctx context.Context, filter string) ([]*domain.User, error) {
	users, err := s.inner.List(ctx, filter)
	report(s.obs, err)
	return users, err
}

// RoleStore decorates a store.RoleStore with health observation.
type RoleStore struct {
	inner store.RoleStore
	obs   Observer
}

// NewRoleStore wraps inner so every operation reports to obs.
func NewRoleStore(inner store.RoleStore, obs Observer) *RoleStore {
	return &RoleStore{inner: inner, obs: obs}
}

func (s *RoleStore) Get(ctx context.Context, roleID string) (*domain.Role, error) {
	r, err := s.inner.Get(ctx, roleID)
	report(s.obs, err)
	return r, err
}

func (s *RoleStore) GetMany(ctx context.Context, roleIDs []string) ([]*domain.Role, error) {
	roles, err := s.inner.GetMany(ctx, roleIDs)
	report(s.obs, err)
	return roles, err
}

func (s *RoleStore) Upsert(ctx context.Context, role *domain.Role) error {
	err := s.inner.Upsert(ctx, role)
	report(s.obs, err)
	return err
}

func (s *RoleStore) Delete(ctx context.Context, roleID string) error {
	err := s.inner.Delete(ctx, roleID)
	report(s.obs, err)
	return err
}

func (s *RoleStore) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.inner.DeleteAll(ctx)
	report(s.obs, err)
	return n, err
}

func (s *RoleStore) List(ctx context.Context, filter string) ([]*domain.Role, error) {
	roles, err := s.inner.List(ctx, filter)
	report(s.obs, err)
	return roles, err
}

// GroupStore decorates a store.GroupStore with health observation.
type GroupStore struct {
	inner store.GroupStore
	obs   Observer
}

// NewGroupStore wraps inner so every operation reports to obs.
func NewGroupStore(inner store.GroupStore, obs Observer) *GroupStore {
	return &GroupStore{inner: inner, obs: obs}
}

func (s *GroupStore) Get(ctx context.Context, groupID string) (*domain.Group, error) {
	g, err := s.inner.Get(ctx, groupID)
	report(s.obs, err)
	return g, err
}

func (s *GroupStore) ListAll(ctx context.Context) ([]*domain.Group, error) {
	groups, err := s.inner.ListAll(ctx)
	report(s.obs, err)
	return groups, err
}

func (s *GroupStore) Upsert(ctx context.Context, group *domain.Group) error {
	err := s.inner.Upsert(ctx, group)
	report(s.obs, err)
	return err
}

func (s *GroupStore) Delete(ctx context.Context, groupID string) error {
	err := s.inner.Delete(ctx, groupID)
	report(s.obs, err)
	return err
}

func (s *GroupStore) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.inner.DeleteAll(ctx)
	report(s.obs, err)
	return n, err
}
