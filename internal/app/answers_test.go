package app

import (
	"encoding/json"
	"testing"

	"exam-scoring-service/internal/domain"
)

func TestParseAnswers(t *testing.T) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(`[0, 3, 9, -1, null, "2", true, 1.5, 2.0, {}, [1], 1e12]`), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := ParseAnswers(raw)
	wrong := domain.UnmatchedChoice
	want := []*int{intPtr(0), intPtr(3), intPtr(9), intPtr(-1), nil, nil, nil, &wrong, intPtr(2), nil, nil, &wrong}
	if len(got) != len(want) {
		t.Fatalf("expected %d answers, got %d", len(want), len(got))
	}
	for i := range want {
		switch {
		case want[i] == nil && got[i] != nil:
			t.Fatalf("answer %d: expected unanswered, got %d", i, *got[i])
		case want[i] != nil && (got[i] == nil || *got[i] != *want[i]):
			t.Fatalf("answer %d: expected %d, got %v", i, *want[i], got[i])
		}
	}
}

func TestParseAnswersKeepsPresence(t *testing.T) {
	if ParseAnswers(nil) != nil {
		t.Fatalf("expected nil for absent answers")
	}
	if got := ParseAnswers([]json.RawMessage{}); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestParseAnswersNumericEdges(t *testing.T) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(`[-1.5, -1e12, 2147483647, 2147483646, 1e400, 0.0, 3e0]`), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := ParseAnswers(raw)
	wrong := domain.UnmatchedChoice
	want := []*int{nil, nil, &wrong, intPtr(2147483646), &wrong, intPtr(0), intPtr(3)}
	for i := range want {
		switch {
		case want[i] == nil && got[i] != nil:
			t.Fatalf("answer %d: expected unanswered, got %d", i, *got[i])
		case want[i] != nil && (got[i] == nil || *got[i] != *want[i]):
			t.Fatalf("answer %d: expected %d, got %v", i, *want[i], got[i])
		}
	}
}

func TestFractionalAndHugeAnswersScoreWrong(t *testing.T) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(`[1.5, 1e12]`), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	res := scoreSubmission(testWithKeys([]int{0, 0}, marks(1, 1, 0)), ParseAnswers(raw))
	if res.Correct != 0 || res.Wrong != 2 || res.Unanswered != 0 {
		t.Fatalf("expected two wrong answers, got %+v", res)
	}
	if res.Score != -2 || res.MaxScore != 2 || res.Percentage != -100 {
		t.Fatalf("unexpected score %v/%v (%v%%)", res.Score, res.MaxScore, res.Percentage)
	}
	for i, a := range res.Answers {
		if a != domain.UnmatchedChoice {
			t.Fatalf("answer %d: expected unmatched choice stored, got %d", i, a)
		}
	}
}
