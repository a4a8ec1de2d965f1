package domain

import (
	"math"
	"time"
)

// Unanswered is stored in a result's answer vector for questions without a valid selection.
const Unanswered = -1

// UnmatchedChoice is stored for a non-negative numeric selection that cannot name
// an option, such as 1.5 or 1e12. It is graded wrong and never matches a correct answer.
const UnmatchedChoice = math.MaxInt32

// Role is the caller's role as supplied by the identity provider.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID string
	Name   string
	Role   Role
}

// Question models an MCQ question with exactly four options.
type Question struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// MarkingScheme holds per-question marks as authored. Nil fields fall back to defaults.
type MarkingScheme struct {
	Correct    *float64 `json:"correct,omitempty"`
	Wrong      *float64 `json:"wrong,omitempty"`
	Unanswered *float64 `json:"unanswered,omitempty"`
}

// Test is the definition a submission is scored against.
type Test struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Questions []Question    `json:"questions"`
	Marks     MarkingScheme `json:"marks"`
}

// Result is the persisted outcome of one submission. It is never mutated after creation.
type Result struct {
	ID         string    `json:"id"`
	TestID     string    `json:"testId"`
	UserID     string    `json:"userId"`
	Answers    []int     `json:"answers"`
	Correct    int       `json:"correct"`
	Wrong      int       `json:"wrong"`
	Unanswered int       `json:"unanswered"`
	Total      int       `json:"total"`
	Score      float64   `json:"score"`
	MaxScore   float64   `json:"maxScore"`
	Percentage float64   `json:"percentage"`
	TimeTaken  int       `json:"timeTaken"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RankEntry is the single ranking-eligible attempt of a user for a test.
type RankEntry struct {
	TestID     string    `json:"testId"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Percentage float64   `json:"percentage"`
	TimeTaken  int       `json:"timeTaken"`
	ResultID   string    `json:"resultId"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Submission is a validated submit request.
type Submission struct {
	TestID string
	// Answers holds one element per submitted position; nil means the position carried no number.
	Answers   []*int
	TimeTaken int
}

// ResultSummary is returned to the caller after a submission.
type ResultSummary struct {
	ResultID   string  `json:"resultId"`
	Correct    int     `json:"correct"`
	Wrong      int     `json:"wrong"`
	Unanswered int     `json:"unanswered"`
	Total      int     `json:"total"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Percentage float64 `json:"percentage"`
}

// Topper is the rank-1 entry of a test.
type Topper struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	TimeTaken  int     `json:"timeTaken"`
}

// LeaderboardEntry is a ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	UserID     string  `json:"userId"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	TimeTaken  int     `json:"timeTaken"`
}

// RankSummary is the caller's standing within a test.
type RankSummary struct {
	UserRank          int                `json:"userRank"`
	TotalParticipants int                `json:"totalParticipants"`
	UserPercentage    float64            `json:"userPercentage"`
	Topper            *Topper            `json:"topper"`
	Leaderboard       []LeaderboardEntry `json:"leaderboard"`
}
