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

type resultRow struct {
	bun.BaseModel `bun:"table:results"`

	ID         string    `bun:"id,pk"`
	TestID     string    `bun:"test_id,notnull"`
	UserID     string    `bun:"user_id,notnull"`
	Answers    []int     `bun:"answers,array"`
	Correct    int       `bun:"correct,notnull"`
	Wrong      int       `bun:"wrong,notnull"`
	Unanswered int       `bun:"unanswered,notnull"`
	Total      int       `bun:"total,notnull"`
	Score      float64   `bun:"score,notnull"`
	MaxScore   float64   `bun:"max_score,notnull"`
	Percentage float64   `bun:"percentage,notnull"`
	TimeTaken  int       `bun:"time_taken,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

// ResultStore persists results with bun. Rows are only ever inserted.
type ResultStore struct {
	db *bun.DB
}

func NewResultStore(db *bun.DB) *ResultStore {
	return &ResultStore{db: db}
}

func (s *ResultStore) Create(ctx context.Context, result domain.Result) (domain.Result, error) {
	row := toResultRow(result)
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return domain.Result{}, fmt.Errorf("insert result: %w", err)
	}
	return row.toDomain(), nil
}

func (s *ResultStore) FindByID(ctx context.Context, resultID string) (domain.Result, error) {
	var row resultRow
	err := s.db.NewSelect().Model(&row).Where("id = ?", resultID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Result{}, domain.ErrResultNotFound
	}
	if err != nil {
		return domain.Result{}, fmt.Errorf("select result: %w", err)
	}
	return row.toDomain(), nil
}

func (s *ResultStore) FindByTestAndUser(ctx context.Context, testID, userID string) ([]domain.Result, error) {
	var rows []resultRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("test_id = ?", testID).
		Where("user_id = ?", userID).
		OrderExpr("created_at DESC, id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select results: %w", err)
	}
	out := make([]domain.Result, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

func toResultRow(r domain.Result) resultRow {
	return resultRow{
		ID:         r.ID,
		TestID:     r.TestID,
		UserID:     r.UserID,
		Answers:    r.Answers,
		Correct:    r.Correct,
		Wrong:      r.Wrong,
		Unanswered: r.Unanswered,
		Total:      r.Total,
		Score:      r.Score,
		MaxScore:   r.MaxScore,
		Percentage: r.Percentage,
		TimeTaken:  r.TimeTaken,
		CreatedAt:  r.CreatedAt,
	}
}

func (r resultRow) toDomain() domain.Result {
	answers := r.Answers
	if answers == nil {
		answers = []int{}
	}
	return domain.Result{
		ID:         r.ID,
		TestID:     r.TestID,
		UserID:     r.UserID,
		Answers:    answers,
		Correct:    r.Correct,
		Wrong:      r.Wrong,
		Unanswered: r.Unanswered,
		Total:      r.Total,
		Score:      r.Score,
		MaxScore:   r.MaxScore,
		Percentage: r.Percentage,
		TimeTaken:  r.TimeTaken,
		CreatedAt:  r.CreatedAt,
	}
}
