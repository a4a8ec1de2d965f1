package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"exam-scoring-service/internal/domain"
)

// ParseAnswers turns a raw JSON answer array into option indexes.
// Strings, booleans, null, objects and negative fractions become nil (unanswered).
// Negative integers are kept so the scorer counts them as unanswered.
// Non-negative numbers that are not int32 integers become domain.UnmatchedChoice
// and are graded wrong.
func ParseAnswers(raw []json.RawMessage) []*int {
	if raw == nil {
		return nil
	}
	out := make([]*int, len(raw))
	for i, msg := range raw {
		out[i] = parseAnswer(msg)
	}
	return out
}

func parseAnswer(msg json.RawMessage) *int {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 {
		return nil
	}
	if c := msg[0]; c != '-' && (c < '0' || c > '9') {
		return nil
	}
	f, err := strconv.ParseFloat(string(msg), 64)
	if err != nil && !(errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0)) {
		return nil
	}
	v := domain.UnmatchedChoice
	switch {
	case f < 0 && (f != math.Trunc(f) || f < math.MinInt32):
		return nil
	case f == math.Trunc(f) && f < domain.UnmatchedChoice:
		v = int(f)
	}
	return &v
}
