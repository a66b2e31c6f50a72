package group

import (
	"context"
	"sort"
	"sync"

	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/sentinel"
)

// MemoryStore is an in-memory group store for tests and local development.
type MemoryStore struct {
	mu     sync.RWMutex
	groups map[string]domain.Group
}

// NewMemory constructs an empty in-memory group store.
func NewMemory() *MemoryStore {
	return &MemoryStore{groups: make(map[string]domain.Group)}
}

func (s *MemoryStore) Get(_ context.Context, groupID string) (*domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[groupID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := g
	return &copied, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]*domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*domain.Group, 0, len(s.groups))
	for _, g := range s.groups {
		copied := g
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GroupID < result[j].GroupID })
	return result, nil
}

func (s *MemoryStore) Upsert(_ context.Context, group *domain.Group) error {
	if err := group.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[group.GroupID] = *group
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[groupID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.groups, groupID)
	return nil
}

func (s *MemoryStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := int64(len(s.groups))
	s.groups = make(map[string]domain.Group)
	return count, nil
}
