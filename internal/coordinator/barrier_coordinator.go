package coordinator

import (
	"context"
	"errors"
	"sync"

	"github.com/ligustah/segfetch/internal/task"
)

// BarrierCoordinator coordinates a run with a barrier sized for every part
// plus the orchestrator. Every task arrives after reporting, whatever its
// result. The release action checks the failure flag before running the
// completion action.
type BarrierCoordinator struct {
	opts     Options
	barrier  *Barrier
	failed   chan struct{}
	failOnce sync.Once

	mu       sync.Mutex
	state    RunState
	ctx      context.Context
	decision *Decision
}

// NewBarrierCoordinator returns a barrier-based coordinator.
func NewBarrierCoordinator(opts Options) *BarrierCoordinator {
	if opts.OnComplete == nil {
		opts.OnComplete = func(context.Context) error { return nil }
	}
	c := &BarrierCoordinator{
		opts:   opts,
		failed: make(chan struct{}),
		ctx:    context.Background(),
	}
	c.barrier = NewBarrier(opts.Parts+1, c.release)
	return c
}

// Report records r and arrives at the barrier. A failure also aborts the
// orchestrator's wait.
func (c *BarrierCoordinator) Report(r task.Result) {
	c.mu.Lock()
	c.state.record(r)
	c.mu.Unlock()

	if r.Failed() {
		c.failOnce.Do(func() { close(c.failed) })
	}

	// A broken barrier rejects the arrival; the result is still recorded.
	_ = c.barrier.Arrive()
}

// Snapshot returns the current run state.
func (c *BarrierCoordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.snapshot()
}

// Wait arrives as the orchestrator and blocks until the barrier opens or is
// broken by the deadline, a failure or ctx. Wait must not be called
// concurrently with itself.
func (c *BarrierCoordinator) Wait(ctx context.Context) Decision {
	c.mu.Lock()
	if c.decision != nil {
		d := *c.decision
		c.mu.Unlock()
		return d
	}
	c.ctx = ctx
	c.mu.Unlock()

	err := c.barrier.Await(ctx, c.opts.Deadline, c.failed)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.decision == nil {
		switch {
		case c.state.failed, errors.Is(err, ErrBarrierAborted):
			c.decide(c.state.decision(PartFailed, c.opts.Parts))
		case errors.Is(err, ErrBarrierTimeout):
			c.decide(c.state.decision(TimedOut, c.opts.Parts))
		default:
			c.decide(c.state.decision(Cancelled, c.opts.Parts))
		}
	}
	return *c.decision
}

// release is the barrier action, run by the final arriving party.
func (c *BarrierCoordinator) release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.decision != nil {
		return
	}

	switch {
	case c.state.failed:
		c.decide(c.state.decision(PartFailed, c.opts.Parts))
	case c.state.completed < c.opts.Parts:
		// Every party arrived, but some were interrupted.
		c.decide(c.state.decision(Cancelled, c.opts.Parts))
	default:
		if err := c.opts.OnComplete(c.ctx); err != nil {
			d := c.state.decision(CombineFailed, c.opts.Parts)
			d.CombineErr = err
			c.decide(d)
			return
		}
		c.decide(c.state.decision(Succeeded, c.opts.Parts))
	}
}

// decide must be called with c.mu held.
func (c *BarrierCoordinator) decide(d Decision) {
	c.state.decided = true
	c.decision = &d
}
