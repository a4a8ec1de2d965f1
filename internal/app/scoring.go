package app

import (
	"math"

	"exam-scoring-service/internal/domain"
)

// markSchedule is a marking scheme with defaults applied and the wrong-answer penalty sign fixed.
type markSchedule struct {
	correct      float64
	wrongPenalty float64
	unanswered   float64
}

// normalizeMarks applies correct=1 and unanswered=0 when absent and always
// turns the wrong mark into -abs(wrong), whatever sign the author used.
func normalizeMarks(m domain.MarkingScheme) markSchedule {
	s := markSchedule{correct: 1}
	if m.Correct != nil {
		s.correct = *m.Correct
	}
	if m.Wrong != nil {
		s.wrongPenalty = -math.Abs(*m.Wrong)
	}
	if m.Unanswered != nil {
		s.unanswered = *m.Unanswered
	}
	return s
}

// scoreSubmission grades answers against the test and returns a Result carrying
// counts, the normalized answer vector, score, maxScore and percentage.
// Identity, timing and ids are left for the caller to fill in.
func scoreSubmission(test domain.Test, answers []*int) domain.Result {
	marks := normalizeMarks(test.Marks)
	total := len(test.Questions)

	res := domain.Result{
		Answers: make([]int, total),
		Total:   total,
	}
	for i := range res.Answers {
		res.Answers[i] = domain.Unanswered
	}

	for i := 0; i < total; i++ {
		var given *int
		if i < len(answers) {
			given = answers[i]
		}
		if given == nil || *given < 0 {
			res.Unanswered++
			res.Score += marks.unanswered
			continue
		}

		res.Answers[i] = *given
		if *given != domain.UnmatchedChoice && *given == test.Questions[i].CorrectAnswer {
			res.Correct++
			res.Score += marks.correct
		} else {
			res.Wrong++
			res.Score += marks.wrongPenalty
		}
	}

	res.MaxScore = marks.correct * float64(total)
	if res.MaxScore > 0 {
		res.Percentage = round2(res.Score / res.MaxScore * 100)
	}
	return res
}

// round2 rounds to two decimals, halves going up.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
