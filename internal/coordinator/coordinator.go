package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/ligustah/segfetch/internal/task"
)

// Kind selects a coordinator design.
type Kind string

const (
	KindPoll    Kind = "poll"
	KindBarrier Kind = "barrier"
)

// ParseKind parses a coordinator design name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPoll, "":
		return KindPoll, nil
	case KindBarrier:
		return KindBarrier, nil
	default:
		return "", fmt.Errorf("coordinator: unknown kind %q (want poll or barrier)", s)
	}
}

// Coordinator learns task results and decides the run's outcome exactly once.
type Coordinator interface {
	// Report records a task result. Safe for concurrent use.
	Report(r task.Result)

	// Wait blocks until the run reaches a terminal state and returns the
	// decision. Subsequent calls return the same decision.
	Wait(ctx context.Context) Decision

	// Snapshot returns the current run state.
	Snapshot() Snapshot
}

// Options configures a coordinator.
type Options struct {
	// Parts is the number of part tasks in the run.
	Parts int

	// Deadline is the absolute time after which the run is aborted.
	Deadline time.Time

	// OnComplete is the completion action, run once on the success path
	// before the decision is published.
	OnComplete func(ctx context.Context) error
}

// New returns a coordinator of the given kind.
func New(kind Kind, opts Options) (Coordinator, error) {
	if opts.Parts <= 0 {
		return nil, fmt.Errorf("coordinator: parts must be positive, got %d", opts.Parts)
	}
	if opts.OnComplete == nil {
		opts.OnComplete = func(context.Context) error { return nil }
	}

	switch kind {
	case KindPoll, "":
		return NewPoll(opts), nil
	case KindBarrier:
		return NewBarrierCoordinator(opts), nil
	default:
		return nil, fmt.Errorf("coordinator: unknown kind %q", kind)
	}
}
