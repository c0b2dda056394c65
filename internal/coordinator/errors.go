package coordinator

import (
	"errors"
	"fmt"
)

// Errors describing why a run did not succeed.
var (
	ErrPartFailed    = errors.New("coordinator: part failed")
	ErrTimeout       = errors.New("coordinator: deadline exceeded")
	ErrCancelled     = errors.New("coordinator: run cancelled")
	ErrCombineFailed = errors.New("coordinator: combine failed")
)

// RunError is returned by Decision.Err for every outcome except success.
//
// Use errors.Is with the sentinel errors above to branch on the outcome and
// errors.As to inspect the counters.
type RunError struct {
	Outcome   Outcome
	Completed int   // Parts that succeeded
	Failures  int   // Parts that failed
	Parts     int   // Parts in the run
	Cause     error // Underlying error, e.g. a storage error from the combine step
}

func (e *RunError) Error() string {
	msg := fmt.Sprintf("%s: %d/%d parts completed, %d failed", e.Outcome, e.Completed, e.Parts, e.Failures)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *RunError) Unwrap() []error {
	errs := []error{e.Outcome.sentinel()}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}
