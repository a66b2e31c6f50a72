package role

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/statisticsnorway/dataset-access-sub000/internal/store"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
)

const cacheKeyPrefix = "role:"

// CachedStore is a read-through Redis cache in front of another role store.
// Roles are read on every decision, so the hot path is GetMany; cache misses
// fall through to the inner store and backfill with a TTL. Cache failures are
// never fatal: the inner store is always the source of truth.
type CachedStore struct {
	inner  store.RoleStore
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps inner with a Redis read-through cache.
func NewCached(inner store.RoleStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (s *CachedStore) Get(ctx context.Context, roleID string) (*domain.Role, error) {
	if cached := s.lookup(ctx, roleID); cached != nil {
		return cached, nil
	}
	r, err := s.inner.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	s.backfill(ctx, r)
	return r, nil
}

func (s *CachedStore) GetMany(ctx context.Context, roleIDs []string) ([]*domain.Role, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}

	keys := make([]string, len(roleIDs))
	for i, id := range roleIDs {
		keys[i] = cacheKeyPrefix + id
	}

	hits := make(map[string]*domain.Role, len(roleIDs))
	var misses []string
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		// Treat the whole batch as a miss; the store still answers.
		s.logger.WarnContext(ctx, "role cache read failed", "error", err)
		misses = roleIDs
	} else {
		for i, v := range values {
			raw, ok := v.(string)
			if !ok {
				misses = append(misses, roleIDs[i])
				continue
			}
			var r domain.Role
			if err := json.Unmarshal([]byte(raw), &r); err != nil {
				misses = append(misses, roleIDs[i])
				continue
			}
			hits[r.RoleID] = &r
		}
	}

	if len(misses) > 0 {
		fetched, err := s.inner.GetMany(ctx, misses)
		if err != nil {
			return nil, err
		}
		for _, r := range fetched {
			hits[r.RoleID] = r
			s.backfill(ctx, r)
		}
	}

	result := make([]*domain.Role, 0, len(hits))
	for _, r := range hits {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RoleID < result[j].RoleID })
	return result, nil
}

func (s *CachedStore) Upsert(ctx context.Context, role *domain.Role) error {
	if err := s.inner.Upsert(ctx, role); err != nil {
		return err
	}
	s.invalidate(ctx, role.RoleID)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, roleID string) error {
	if err := s.inner.Delete(ctx, roleID); err != nil {
		return err
	}
	s.invalidate(ctx, roleID)
	return nil
}

func (s *CachedStore) DeleteAll(ctx context.Context) (int64, error) {
	count, err := s.inner.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	iter := s.client.Scan(ctx, 0, cacheKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		s.invalidate(ctx, iter.Val()[len(cacheKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		s.logger.WarnContext(ctx, "role cache scan failed during delete all", "error", err)
	}
	return count, nil
}

func (s *CachedStore) List(ctx context.Context, filter string) ([]*domain.Role, error) {
	return s.inner.List(ctx, filter)
}

func (s *CachedStore) lookup(ctx context.Context, roleID string) *domain.Role {
	raw, err := s.client.Get(ctx, cacheKeyPrefix+roleID).Bytes()
	if err != nil {
		return nil
	}
	var r domain.Role
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil
	}
	return &r
}

func (s *CachedStore) backfill(ctx context.Context, role *domain.Role) {
	doc, err := json.Marshal(role)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, cacheKeyPrefix+role.RoleID, doc, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "role cache backfill failed", "role_id", role.RoleID, "error", err)
	}
}

func (s *CachedStore) invalidate(ctx context.Context, roleID string) {
	if err := s.client.Del(ctx, cacheKeyPrefix+roleID).Err(); err != nil {
		s.logger.WarnContext(ctx, "role cache invalidation failed", "role_id", roleID, "error", err)
	}
}
