package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"exam-scoring-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RankStore keeps rank entries in one hash per test: HSET rank:{testID} {userID} {entry JSON}.
// The hash field gives the (test, user) uniqueness for free; Upsert overwrites.
type RankStore struct {
	client *redis.Client
}

func NewRankStore(client *redis.Client) *RankStore {
	return &RankStore{client: client}
}

func (s *RankStore) Upsert(ctx context.Context, entry domain.RankEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal rank entry: %w", err)
	}
	if err := s.client.HSet(ctx, s.key(entry.TestID), entry.UserID, data).Err(); err != nil {
		return fmt.Errorf("store rank entry: %w", err)
	}
	return nil
}

func (s *RankStore) FindByTestAndUser(ctx context.Context, testID, userID string) (domain.RankEntry, bool, error) {
	raw, err := s.client.HGet(ctx, s.key(testID), userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RankEntry{}, false, nil
	}
	if err != nil {
		return domain.RankEntry{}, false, fmt.Errorf("load rank entry: %w", err)
	}
	var entry domain.RankEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.RankEntry{}, false, fmt.Errorf("unmarshal rank entry: %w", err)
	}
	return entry, true, nil
}

func (s *RankStore) FindAllByTest(ctx context.Context, testID string) ([]domain.RankEntry, error) {
	vals, err := s.client.HVals(ctx, s.key(testID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load rank entries: %w", err)
	}
	out := make([]domain.RankEntry, 0, len(vals))
	for _, v := range vals {
		var entry domain.RankEntry
		if err := json.Unmarshal([]byte(v), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal rank entry: %w", err)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *RankStore) key(testID string) string {
	return "rank:" + testID
}
