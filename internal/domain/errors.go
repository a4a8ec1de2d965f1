package domain

import "errors"

var (
	// ErrUnauthorized is returned when a request carries no valid identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller may not access another user's result.
	ErrForbidden = errors.New("you are not allowed to access this result")
	// ErrTestNotFound indicates the test definition could not be loaded.
	ErrTestNotFound = errors.New("test not found")
	// ErrResultNotFound indicates a result id does not exist.
	ErrResultNotFound = errors.New("result not found")
	// ErrNotAttempted is returned when ranking is requested by a user without an eligible record.
	ErrNotAttempted = errors.New("you haven't taken this test yet")
	// ErrInvalidID indicates a malformed test or result identifier.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrMissingTestID indicates the submission did not name a test.
	ErrMissingTestID = errors.New("testId is required")
	// ErrMissingAnswers indicates the submission body had no answers field.
	ErrMissingAnswers = errors.New("answers are required")
	// ErrInvalidTimeTaken indicates timeTaken was absent or below one second.
	ErrInvalidTimeTaken = errors.New("timeTaken must be at least 1")
)
