package user

import (
	"context"
	"strings"
	"sync"

	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/sentinel"
)

// MemoryStore is an in-memory user store for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemory constructs an empty in-memory user store.
func NewMemory() *MemoryStore {
	return &MemoryStore{users: make(map[string]domain.User)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (s *MemoryStore) Upsert(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = *user
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.users, userID)
	return nil
}

func (s *MemoryStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := int64(len(s.users))
	s.users = make(map[string]domain.User)
	return count, nil
}

func (s *MemoryStore) List(_ context.Context, filter string) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*domain.User, 0, len(s.users))
	for id, u := range s.users {
		if filter != "" && !strings.Contains(id, filter) {
			continue
		}
		copied := u
		result = append(result, &copied)
	}
	return result, nil
}
