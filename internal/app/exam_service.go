package app

import (
	"context"
	"fmt"
	"time"

	"exam-scoring-service/internal/domain"
	"exam-scoring-service/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TestRepository loads test definitions (from cache/backing store).
type TestRepository interface {
	GetTest(ctx context.Context, testID string) (domain.Test, error)
}

// ResultRepository persists append-only results.
type ResultRepository interface {
	Create(ctx context.Context, result domain.Result) (domain.Result, error)
	FindByID(ctx context.Context, resultID string) (domain.Result, error)
	// FindByTestAndUser returns every result of the user for the test, newest first.
	FindByTestAndUser(ctx context.Context, testID, userID string) ([]domain.Result, error)
}

// RankRepository stores one rank-eligible entry per (test, user).
type RankRepository interface {
	Upsert(ctx context.Context, entry domain.RankEntry) error
	FindByTestAndUser(ctx context.Context, testID, userID string) (domain.RankEntry, bool, error)
	FindAllByTest(ctx context.Context, testID string) ([]domain.RankEntry, error)
}

const defaultLeaderboardSize = 10

// ExamService contains the submission and ranking use cases.
type ExamService struct {
	tests   TestRepository
	results ResultRepository
	ranks   RankRepository

	log             *zap.Logger
	now             func() time.Time
	newID           func() string
	leaderboardSize int
	privileged      map[domain.Role]bool
}

// Option configures an ExamService.
type Option func(*ExamService)

func WithLogger(l *zap.Logger) Option { return func(s *ExamService) { s.log = l } }

// WithClock is meant for deterministic timestamps in tests.
func WithClock(now func() time.Time) Option { return func(s *ExamService) { s.now = now } }

func WithIDGenerator(gen func() string) Option { return func(s *ExamService) { s.newID = gen } }

func WithLeaderboardSize(n int) Option {
	return func(s *ExamService) {
		if n > 0 {
			s.leaderboardSize = n
		}
	}
}

// WithPrivilegedRoles lists roles that may read other users' results and ranks.
func WithPrivilegedRoles(roles ...domain.Role) Option {
	return func(s *ExamService) {
		s.privileged = make(map[domain.Role]bool, len(roles))
		for _, r := range roles {
			s.privileged[r] = true
		}
	}
}

func NewExamService(tests TestRepository, results ResultRepository, ranks RankRepository, opts ...Option) *ExamService {
	s := &ExamService{
		tests:           tests,
		results:         results,
		ranks:           ranks,
		log:             zap.NewNop(),
		now:             time.Now,
		newID:           uuid.NewString,
		leaderboardSize: defaultLeaderboardSize,
		privileged:      map[domain.Role]bool{domain.RoleAdmin: true},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Submit scores a submission, persists the result and refreshes the caller's rank entry.
func (s *ExamService) Submit(ctx context.Context, who domain.Identity, sub domain.Submission) (summary domain.ResultSummary, err error) {
	defer func() { metrics.Submissions.WithLabelValues(metrics.Outcome(err)).Inc() }()

	if who.UserID == "" {
		return domain.ResultSummary{}, domain.ErrUnauthorized
	}
	if sub.TestID == "" {
		return domain.ResultSummary{}, domain.ErrMissingTestID
	}
	if err := domain.ValidateID(sub.TestID); err != nil {
		return domain.ResultSummary{}, err
	}
	if sub.Answers == nil {
		return domain.ResultSummary{}, domain.ErrMissingAnswers
	}
	if sub.TimeTaken < 1 {
		return domain.ResultSummary{}, domain.ErrInvalidTimeTaken
	}

	test, err := s.tests.GetTest(ctx, sub.TestID)
	if err != nil {
		return domain.ResultSummary{}, err
	}

	result := scoreSubmission(test, sub.Answers)
	result.ID = s.newID()
	result.TestID = sub.TestID
	result.UserID = who.UserID
	result.TimeTaken = sub.TimeTaken
	result.CreatedAt = s.now().UTC()

	created, err := s.results.Create(ctx, result)
	if err != nil {
		return domain.ResultSummary{}, fmt.Errorf("create result: %w", err)
	}

	entry := domain.RankEntry{
		TestID:     created.TestID,
		UserID:     created.UserID,
		Name:       who.Name,
		Percentage: created.Percentage,
		TimeTaken:  created.TimeTaken,
		ResultID:   created.ID,
		UpdatedAt:  created.CreatedAt,
	}
	if err := s.ranks.Upsert(ctx, entry); err != nil {
		return domain.ResultSummary{}, fmt.Errorf("upsert rank entry: %w", err)
	}

	s.log.Info("submission scored",
		zap.String("test_id", created.TestID),
		zap.String("user_id", created.UserID),
		zap.String("result_id", created.ID),
		zap.Float64("percentage", created.Percentage),
	)

	return domain.ResultSummary{
		ResultID:   created.ID,
		Correct:    created.Correct,
		Wrong:      created.Wrong,
		Unanswered: created.Unanswered,
		Total:      created.Total,
		Score:      created.Score,
		MaxScore:   created.MaxScore,
		Percentage: created.Percentage,
	}, nil
}

// RankFor returns the caller's rank for a test.
func (s *ExamService) RankFor(ctx context.Context, who domain.Identity, testID string) (domain.RankSummary, error) {
	if who.UserID == "" {
		return domain.RankSummary{}, domain.ErrUnauthorized
	}
	if err := domain.ValidateID(testID); err != nil {
		return domain.RankSummary{}, err
	}
	return s.rankForUser(ctx, testID, who.UserID)
}

// RankForResult returns the rank of a result's owner within the result's test.
// Only the owner or a privileged role may ask.
func (s *ExamService) RankForResult(ctx context.Context, who domain.Identity, resultID string) (domain.RankSummary, error) {
	result, err := s.GetResult(ctx, who, resultID)
	if err != nil {
		return domain.RankSummary{}, err
	}
	return s.rankForUser(ctx, result.TestID, result.UserID)
}

// GetResult returns a stored result visible to the caller.
func (s *ExamService) GetResult(ctx context.Context, who domain.Identity, resultID string) (domain.Result, error) {
	if who.UserID == "" {
		return domain.Result{}, domain.ErrUnauthorized
	}
	if err := domain.ValidateID(resultID); err != nil {
		return domain.Result{}, err
	}
	result, err := s.results.FindByID(ctx, resultID)
	if err != nil {
		return domain.Result{}, err
	}
	if result.UserID != who.UserID && !s.privileged[who.Role] {
		return domain.Result{}, domain.ErrForbidden
	}
	return result, nil
}

// ListResults returns the caller's own results for a test, newest first.
func (s *ExamService) ListResults(ctx context.Context, who domain.Identity, testID string) ([]domain.Result, error) {
	if who.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := domain.ValidateID(testID); err != nil {
		return nil, err
	}
	return s.results.FindByTestAndUser(ctx, testID, who.UserID)
}

func (s *ExamService) rankForUser(ctx context.Context, testID, userID string) (summary domain.RankSummary, err error) {
	defer func() { metrics.RankRequests.WithLabelValues(metrics.Outcome(err)).Inc() }()

	mine, ok, err := s.ranks.FindByTestAndUser(ctx, testID, userID)
	if err != nil {
		return domain.RankSummary{}, fmt.Errorf("load rank entry: %w", err)
	}
	if !ok {
		return domain.RankSummary{}, domain.ErrNotAttempted
	}

	start := s.now()
	all, err := s.ranks.FindAllByTest(ctx, testID)
	if err != nil {
		return domain.RankSummary{}, fmt.Errorf("load rank entries: %w", err)
	}
	if !containsUser(all, userID) {
		all = append(all, mine)
	}

	summary, _ = summarize(rankEntries(all), userID, s.leaderboardSize)
	metrics.RankDuration.Observe(s.now().Sub(start).Seconds())
	return summary, nil
}

func containsUser(entries []domain.RankEntry, userID string) bool {
	for _, e := range entries {
		if e.UserID == userID {
			return true
		}
	}
	return false
}
