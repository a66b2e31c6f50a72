package role

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/sentinel"
)

// MemoryStore is an in-memory role store for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	roles map[string]domain.Role
}

// NewMemory constructs an empty in-memory role store.
func NewMemory() *MemoryStore {
	return &MemoryStore{roles: make(map[string]domain.Role)}
}

func (s *MemoryStore) Get(_ context.Context, roleID string) (*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.roles[roleID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := r
	return &copied, nil
}

func (s *MemoryStore) GetMany(_ context.Context, roleIDs []string) ([]*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := append([]string(nil), roleIDs...)
	sort.Strings(ids)
	result := make([]*domain.Role, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.roles[id]; ok {
			copied := r
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *MemoryStore) Upsert(_ context.Context, role *domain.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[role.RoleID] = *role
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[roleID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.roles, roleID)
	return nil
}

func (s *MemoryStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := int64(len(s.roles))
	s.roles = make(map[string]domain.Role)
	return count, nil
}

func (s *MemoryStore) List(_ context.Context, filter string) ([]*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*domain.Role, 0, len(s.roles))
	for id, r := range s.roles {
		if filter != "" && !strings.Contains(id, filter) {
			continue
		}
		copied := r
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RoleID < result[j].RoleID })
	return result, nil
}
