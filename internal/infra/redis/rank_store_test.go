package redis

import (
	"context"
	"testing"
	"time"

	"exam-scoring-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
)

func TestRankStoreUpsertAndScan(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewRankStore(newClient(mr))
	at := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)

	entries := []domain.RankEntry{
		{TestID: "test-1", UserID: "u1", Name: "Alice", Percentage: 40, TimeTaken: 100, ResultID: "r1", UpdatedAt: at},
		{TestID: "test-1", UserID: "u1", Name: "Alice", Percentage: 80, TimeTaken: 90, ResultID: "r2", UpdatedAt: at},
		{TestID: "test-1", UserID: "u2", Name: "Bob", Percentage: 70, TimeTaken: 50, ResultID: "r3", UpdatedAt: at},
	}
	for _, e := range entries {
		if err := store.Upsert(ctx, e); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	if !mr.Exists("rank:test-1") {
		t.Fatalf("expected rank hash to be written")
	}

	mine, ok, err := store.FindByTestAndUser(ctx, "test-1", "u1")
	if err != nil || !ok {
		t.Fatalf("expected entry, ok=%v err=%v", ok, err)
	}
	if mine.ResultID != "r2" || mine.Percentage != 80 || !mine.UpdatedAt.Equal(at) {
		t.Fatalf("expected latest entry, got %+v", mine)
	}

	all, err := store.FindAllByTest(ctx, "test-1")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}

	if _, ok, err := store.FindByTestAndUser(ctx, "test-1", "u9"); ok || err != nil {
		t.Fatalf("expected missing entry without error, ok=%v err=%v", ok, err)
	}
	if none, err := store.FindAllByTest(ctx, "test-2"); err != nil || len(none) != 0 {
		t.Fatalf("expected empty scan, got %v err=%v", none, err)
	}
}
