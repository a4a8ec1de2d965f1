package memory

import (
	"context"
	"sort"
	"sync"

	"exam-scoring-service/internal/domain"
)

// ResultStore is an in-memory implementation of app.ResultRepository.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]domain.Result
}

func NewResultStore() *ResultStore {
	return &ResultStore{results: make(map[string]domain.Result)}
}

func (s *ResultStore) Create(_ context.Context, result domain.Result) (domain.Result, error) {
	result.Answers = append([]int(nil), result.Answers...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.ID] = result
	return cloneResult(result), nil
}

func (s *ResultStore) FindByID(_ context.Context, resultID string) (domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[resultID]
	if !ok {
		return domain.Result{}, domain.ErrResultNotFound
	}
	return cloneResult(result), nil
}

func (s *ResultStore) FindByTestAndUser(_ context.Context, testID, userID string) ([]domain.Result, error) {
	s.mu.RLock()
	out := make([]domain.Result, 0)
	for _, r := range s.results {
		if r.TestID == testID && r.UserID == userID {
			out = append(out, cloneResult(r))
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func cloneResult(r domain.Result) domain.Result {
	r.Answers = append([]int(nil), r.Answers...)
	return r
}
