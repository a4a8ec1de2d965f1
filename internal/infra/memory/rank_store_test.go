package memory

import (
	"context"
	"testing"

	"exam-scoring-service/internal/domain"
)

func TestRankStoreUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewRankStore()

	_ = store.Upsert(ctx, domain.RankEntry{TestID: "test-1", UserID: "u1", Percentage: 40, TimeTaken: 100})
	_ = store.Upsert(ctx, domain.RankEntry{TestID: "test-1", UserID: "u1", Percentage: 80, TimeTaken: 90})
	_ = store.Upsert(ctx, domain.RankEntry{TestID: "test-1", UserID: "u2", Percentage: 70, TimeTaken: 50})

	entry, ok, err := store.FindByTestAndUser(ctx, "test-1", "u1")
	if err != nil || !ok {
		t.Fatalf("expected entry, ok=%v err=%v", ok, err)
	}
	if entry.Percentage != 80 || entry.TimeTaken != 90 {
		t.Fatalf("expected latest attempt, got %+v", entry)
	}

	all, _ := store.FindAllByTest(ctx, "test-1")
	if len(all) != 2 {
		t.Fatalf("expected one entry per user, got %d", len(all))
	}

	if _, ok, _ := store.FindByTestAndUser(ctx, "test-2", "u1"); ok {
		t.Fatalf("expected no entry for unknown test")
	}
}
