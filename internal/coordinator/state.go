package coordinator

import "github.com/ligustah/segfetch/internal/task"

// Outcome is the terminal outcome of a run.
type Outcome int

const (
	// Succeeded means every part completed in time and the combine step ran.
	Succeeded Outcome = iota
	// PartFailed means at least one part reported failure.
	PartFailed
	// TimedOut means the deadline passed before every part completed.
	TimedOut
	// Cancelled means the caller's context was cancelled.
	Cancelled
	// CombineFailed means every part completed but the combine step failed.
	CombineFailed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case PartFailed:
		return "part failed"
	case TimedOut:
		return "timed out"
	case Cancelled:
		return "cancelled"
	case CombineFailed:
		return "combine failed"
	default:
		return "unknown"
	}
}

func (o Outcome) sentinel() error {
	switch o {
	case PartFailed:
		return ErrPartFailed
	case TimedOut:
		return ErrTimeout
	case Cancelled:
		return ErrCancelled
	case CombineFailed:
		return ErrCombineFailed
	default:
		return nil
	}
}

// Decision is the single terminal decision of a run.
type Decision struct {
	Outcome   Outcome
	Completed int
	Failures  int
	Parts     int

	// CombineErr is the error returned by the completion action, if any.
	CombineErr error
}

// Succeeded reports whether the run completed and combined successfully.
func (d Decision) Succeeded() bool {
	return d.Outcome == Succeeded
}

// Err returns nil on success and a *RunError otherwise.
func (d Decision) Err() error {
	if d.Outcome == Succeeded {
		return nil
	}
	return &RunError{
		Outcome:   d.Outcome,
		Completed: d.Completed,
		Failures:  d.Failures,
		Parts:     d.Parts,
		Cause:     d.CombineErr,
	}
}

// Snapshot is a point-in-time copy of a RunState.
type Snapshot struct {
	Completed   int
	Failed      bool
	Failures    int
	Interrupted int
	Decided     bool
}

// RunState is the mutable state of one run. It is not safe for concurrent
// use; the owning coordinator guards it.
type RunState struct {
	completed   int
	failed      bool
	failures    int
	interrupted int
	decided     bool
}

// record applies one task result.
func (s *RunState) record(r task.Result) {
	switch {
	case r.Success:
		s.completed++
	case r.Interrupted:
		s.interrupted++
	default:
		s.failures++
		s.failed = true
	}
}

func (s *RunState) snapshot() Snapshot {
	return Snapshot{
		Completed:   s.completed,
		Failed:      s.failed,
		Failures:    s.failures,
		Interrupted: s.interrupted,
		Decided:     s.decided,
	}
}

func (s *RunState) decision(o Outcome, parts int) Decision {
	return Decision{
		Outcome:   o,
		Completed: s.completed,
		Failures:  s.failures,
		Parts:     parts,
	}
}
