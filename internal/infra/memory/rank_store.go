package memory

import (
	"context"
	"sync"

	"exam-scoring-service/internal/domain"
)

// RankStore keeps one rank entry per (test, user); Upsert replaces the previous entry.
type RankStore struct {
	mu    sync.RWMutex
	tests map[string]map[string]domain.RankEntry
}

func NewRankStore() *RankStore {
	return &RankStore{tests: make(map[string]map[string]domain.RankEntry)}
}

func (s *RankStore) Upsert(_ context.Context, entry domain.RankEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, ok := s.tests[entry.TestID]
	if !ok {
		users = make(map[string]domain.RankEntry)
		s.tests[entry.TestID] = users
	}
	users[entry.UserID] = entry
	return nil
}

func (s *RankStore) FindByTestAndUser(_ context.Context, testID, userID string) (domain.RankEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.tests[testID][userID]
	return entry, ok, nil
}

func (s *RankStore) FindAllByTest(_ context.Context, testID string) ([]domain.RankEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := s.tests[testID]
	out := make([]domain.RankEntry, 0, len(users))
	for _, e := range users {
		out = append(out, e)
	}
	return out, nil
}
