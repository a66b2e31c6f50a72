// Package store defines the persistence contracts the decision engine,
// provisioner, and admin API depend on. Implementations are interface-driven
// so in-memory, PostgreSQL, and cached variants swap without rewiring
// business code.
//
// All implementations return sentinel.ErrNotFound for absent documents and
// wrap connectivity failures in sentinel.ErrUnavailable.
package store

import (
	"context"
	"fmt"

	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/sentinel"
)

// Unavailable tags a driver error as a connectivity failure so callers can
// branch on errors.Is(err, sentinel.ErrUnavailable). Document absence is
// turned into ErrNotFound before this point; anything else the driver reports
// means the round trip did not complete.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
}

// UserStore persists identity documents keyed by userId.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID string) error
	DeleteAll(ctx context.Context) (int64, error)
	// List returns users whose id contains the filter substring; an empty
	// filter returns everything.
	List(ctx context.Context, filter string) ([]*domain.User, error)
}

// RoleStore persists role documents keyed by roleId.
type RoleStore interface {
	Get(ctx context.Context, roleID string) (*domain.Role, error)
	// GetMany returns the roles for the given ids ordered by roleId. Ids that
	// no longer exist are silently omitted: a dangling role reference is not
	// an error.
	GetMany(ctx context.Context, roleIDs []string) ([]*domain.Role, error)
	Upsert(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, roleID string) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context, filter string) ([]*domain.Role, error)
}

// GroupStore persists group documents keyed by groupId.
type GroupStore interface {
	Get(ctx context.Context, groupID string) (*domain.Group, error)
	ListAll(ctx context.Context) ([]*domain.Group, error)
	Upsert(ctx context.Context, group *domain.Group) error
	Delete(ctx context.Context, groupID string) error
	DeleteAll(ctx context.Context) (int64, error)
}
