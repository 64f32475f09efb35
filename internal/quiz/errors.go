package quiz

import "errors"

// Contract violations raised by Session operations. These indicate caller
// bugs (or an undersized bank) and are surfaced immediately, never retried.
var (
	// ErrInsufficientBank is returned by New when the bank holds fewer
	// questions than the requested draw size.
	ErrInsufficientBank = errors.New("question bank smaller than requested quiz size")

	// ErrInvalidIndex is returned by RecordAnswer for an out-of-range
	// question index.
	ErrInvalidIndex = errors.New("question index out of range")

	// ErrInvalidOption is returned by RecordAnswer when the option is not
	// one of the question's choices.
	ErrInvalidOption = errors.New("option is not one of the question's choices")

	// ErrAlreadyGraded is returned when a session is mutated or graded
	// after grading. A graded session is frozen; start a new one instead.
	ErrAlreadyGraded = errors.New("session already graded")
)
