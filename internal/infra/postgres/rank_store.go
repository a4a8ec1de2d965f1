package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"exam-scoring-service/internal/domain"
	"github.com/uptrace/bun"
)

type rankRow struct {
	bun.BaseModel `bun:"table:ranks"`

	TestID     string    `bun:"test_id,pk"`
	UserID     string    `bun:"user_id,pk"`
	Name       string    `bun:"name,notnull"`
	Percentage float64   `bun:"percentage,notnull"`
	TimeTaken  int       `bun:"time_taken,notnull"`
	ResultID   string    `bun:"result_id,notnull"`
	UpdatedAt  time.Time `bun:"updated_at,notnull"`
}

// RankStore keeps one row per (test_id, user_id); the primary key enforces uniqueness.
type RankStore struct {
	db *bun.DB
}

func NewRankStore(db *bun.DB) *RankStore {
	return &RankStore{db: db}
}

func (s *RankStore) Upsert(ctx context.Context, entry domain.RankEntry) error {
	row := toRankRow(entry)
	_, err := s.db.NewInsert().
		Model(&row).
		On("CONFLICT (test_id, user_id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("percentage = EXCLUDED.percentage").
		Set("time_taken = EXCLUDED.time_taken").
		Set("result_id = EXCLUDED.result_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert rank: %w", err)
	}
	return nil
}

func (s *RankStore) FindByTestAndUser(ctx context.Context, testID, userID string) (domain.RankEntry, bool, error) {
	var row rankRow
	err := s.db.NewSelect().
		Model(&row).
		Where("test_id = ?", testID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RankEntry{}, false, nil
	}
	if err != nil {
		return domain.RankEntry{}, false, fmt.Errorf("select rank: %w", err)
	}
	return row.toDomain(), true, nil
}

func (s *RankStore) FindAllByTest(ctx context.Context, testID string) ([]domain.RankEntry, error) {
	var rows []rankRow
	if err := s.db.NewSelect().Model(&rows).Where("test_id = ?", testID).Scan(ctx); err != nil {
		return nil, fmt.Errorf("select ranks: %w", err)
	}
	out := make([]domain.RankEntry, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

func toRankRow(e domain.RankEntry) rankRow {
	return rankRow{
		TestID:     e.TestID,
		UserID:     e.UserID,
		Name:       e.Name,
		Percentage: e.Percentage,
		TimeTaken:  e.TimeTaken,
		ResultID:   e.ResultID,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (r rankRow) toDomain() domain.RankEntry {
	return domain.RankEntry{
		TestID:     r.TestID,
		UserID:     r.UserID,
		Name:       r.Name,
		Percentage: r.Percentage,
		TimeTaken:  r.TimeTaken,
		ResultID:   r.ResultID,
		UpdatedAt:  r.UpdatedAt,
	}
}
