package app

import (
	"testing"

	"exam-scoring-service/internal/domain"
)

func TestScoreSubmission(t *testing.T) {
	tests := []struct {
		name       string
		marks      domain.MarkingScheme
		keys       []int
		answers    []*int
		saved      []int
		correct    int
		wrong      int
		unanswered int
		score      float64
		maxScore   float64
		percentage float64
	}{
		{
			name:    "short submission with invalid values",
			marks:   marks(1, 1, 0),
			keys:    []int{0, 1, 2, 3, 0},
			answers: ints(0, 1, 9, -1),
			saved:   []int{0, 1, 9, -1, -1},
			correct: 2, wrong: 1, unanswered: 2,
			score: 1, maxScore: 5, percentage: 20,
		},
		{
			name:    "unmatched choices are wrong even against a matching key",
			marks:   marks(1, 1, 0),
			keys:    []int{0, domain.UnmatchedChoice},
			answers: ints(domain.UnmatchedChoice, domain.UnmatchedChoice),
			saved:   []int{domain.UnmatchedChoice, domain.UnmatchedChoice},
			wrong:   2,
			score:   -2, maxScore: 2, percentage: -100,
		},
		{
			name:       "empty answers leave everything unanswered",
			marks:      marks(4, 1, 0.5),
			keys:       []int{0, 1, 2},
			answers:    []*int{},
			saved:      []int{-1, -1, -1},
			unanswered: 3,
			score:      1.5, maxScore: 12, percentage: 12.5,
		},
		{
			name:    "positive wrong mark is a penalty",
			marks:   marks(1, 2, 0),
			keys:    []int{0, 0},
			answers: ints(1, 1),
			saved:   []int{1, 1},
			wrong:   2,
			score:   -4, maxScore: 2, percentage: -200,
		},
		{
			name:    "negative wrong mark keeps its magnitude",
			marks:   marks(1, -3, 0),
			keys:    []int{0, 0},
			answers: ints(0, 2),
			saved:   []int{0, 2},
			correct: 1, wrong: 1,
			score: -2, maxScore: 2, percentage: -100,
		},
		{
			name:    "zero correct mark forces zero percentage",
			marks:   marks(0, 0, 0),
			keys:    []int{0, 1},
			answers: ints(0, 1),
			saved:   []int{0, 1},
			correct: 2,
			score:   0, maxScore: 0, percentage: 0,
		},
		{
			name:    "defaults apply when marks are absent",
			keys:    []int{2, 2, 2},
			answers: ints(2, 0, 2, 3, 1),
			saved:   []int{2, 0, 2},
			correct: 2, wrong: 1,
			score: 2, maxScore: 3, percentage: 66.67,
		},
		{
			name:    "nil entries are unanswered",
			marks:   marks(1, 0, 0),
			keys:    []int{0, 1},
			answers: []*int{nil, intPtr(1)},
			saved:   []int{-1, 1},
			correct: 1, unanswered: 1,
			score: 1, maxScore: 2, percentage: 50,
		},
		{
			name:  "zero questions",
			marks: marks(1, 1, 0),
			saved: []int{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := scoreSubmission(testWithKeys(tc.keys, tc.marks), tc.answers)

			if got.Correct != tc.correct || got.Wrong != tc.wrong || got.Unanswered != tc.unanswered {
				t.Fatalf("counts: got %d/%d/%d want %d/%d/%d", got.Correct, got.Wrong, got.Unanswered, tc.correct, tc.wrong, tc.unanswered)
			}
			if got.Correct+got.Wrong+got.Unanswered != got.Total || got.Total != len(tc.keys) {
				t.Fatalf("counts do not sum to total %d: %+v", len(tc.keys), got)
			}
			if len(got.Answers) != len(tc.saved) {
				t.Fatalf("answers: got %v want %v", got.Answers, tc.saved)
			}
			for i := range tc.saved {
				if got.Answers[i] != tc.saved[i] {
					t.Fatalf("answers: got %v want %v", got.Answers, tc.saved)
				}
			}
			if got.Score != tc.score || got.MaxScore != tc.maxScore || got.Percentage != tc.percentage {
				t.Fatalf("score: got %v/%v/%v want %v/%v/%v", got.Score, got.MaxScore, got.Percentage, tc.score, tc.maxScore, tc.percentage)
			}
		})
	}
}

func TestNormalizeMarks(t *testing.T) {
	got := normalizeMarks(domain.MarkingScheme{})
	if got.correct != 1 || got.wrongPenalty != 0 || got.unanswered != 0 {
		t.Fatalf("unexpected defaults %+v", got)
	}

	zero := 0.0
	got = normalizeMarks(domain.MarkingScheme{Correct: &zero})
	if got.correct != 0 {
		t.Fatalf("explicit zero correct mark must not fall back to default, got %v", got.correct)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 66.666666, want: 66.67},
		{in: 33.333333, want: 33.33},
		{in: 12.5, want: 12.5},
		{in: 0.125, want: 0.13},
		{in: 100, want: 100},
	}
	for _, tc := range tests {
		if got := round2(tc.in); got != tc.want {
			t.Fatalf("round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func testWithKeys(keys []int, m domain.MarkingScheme) domain.Test {
	questions := make([]domain.Question, len(keys))
	for i, k := range keys {
		questions[i] = domain.Question{
			QuestionText:  "question",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: k,
		}
	}
	return domain.Test{ID: "test-1", Questions: questions, Marks: m}
}

func marks(correct, wrong, unanswered float64) domain.MarkingScheme {
	return domain.MarkingScheme{Correct: &correct, Wrong: &wrong, Unanswered: &unanswered}
}

func ints(vals ...int) []*int {
	out := make([]*int, len(vals))
	for i, v := range vals {
		out[i] = intPtr(v)
	}
	return out
}

func intPtr(v int) *int { return &v }
