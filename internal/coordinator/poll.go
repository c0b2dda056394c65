package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/ligustah/segfetch/internal/task"
)

// Poll coordinates a run with a mutex-guarded RunState and a condition
// variable. Tasks signal on every report; Wait re-evaluates its predicate on
// each wake, so spurious wakeups are harmless.
type Poll struct {
	opts Options

	mu       sync.Mutex
	cond     *sync.Cond
	state    RunState
	decision *Decision
}

// NewPoll returns a polling coordinator.
func NewPoll(opts Options) *Poll {
	if opts.OnComplete == nil {
		opts.OnComplete = func(context.Context) error { return nil }
	}
	p := &Poll{opts: opts}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Report records r and wakes the waiting orchestrator.
func (p *Poll) Report(r task.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.record(r)
	p.cond.Broadcast()
}

// Snapshot returns the current run state.
func (p *Poll) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.snapshot()
}

// Wait blocks until every part succeeded, any part failed, the deadline
// passed or ctx is done. The decision, and the completion action on the
// success path, are evaluated once while holding the lock.
func (p *Poll) Wait(ctx context.Context) Decision {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.decision != nil {
		return *p.decision
	}

	stop := context.AfterFunc(ctx, p.wake)
	defer stop()

	for !p.terminal(ctx) {
		// Re-armed with the remaining budget on every wake.
		timer := time.AfterFunc(time.Until(p.opts.Deadline), p.wake)
		p.cond.Wait()
		timer.Stop()
	}

	d := p.decide(ctx)
	p.state.decided = true
	p.decision = &d
	return d
}

// wake broadcasts under the lock so a wakeup can never be lost between the
// predicate check and cond.Wait.
func (p *Poll) wake() {
	p.mu.Lock()
	p.cond.Broadcast()
	p.mu.Unlock()
}

// terminal must be called with p.mu held.
func (p *Poll) terminal(ctx context.Context) bool {
	return p.state.failed ||
		p.state.completed >= p.opts.Parts ||
		ctx.Err() != nil ||
		!time.Now().Before(p.opts.Deadline)
}

// decide must be called with p.mu held.
func (p *Poll) decide(ctx context.Context) Decision {
	switch {
	case p.state.failed:
		return p.state.decision(PartFailed, p.opts.Parts)
	case ctx.Err() != nil:
		return p.state.decision(Cancelled, p.opts.Parts)
	case p.state.completed >= p.opts.Parts:
		if err := p.opts.OnComplete(ctx); err != nil {
			d := p.state.decision(CombineFailed, p.opts.Parts)
			d.CombineErr = err
			return d
		}
		return p.state.decision(Succeeded, p.opts.Parts)
	default:
		return p.state.decision(TimedOut, p.opts.Parts)
	}
}
