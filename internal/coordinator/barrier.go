package coordinator

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Barrier errors.
var (
	ErrBrokenBarrier   = errors.New("coordinator: barrier is broken")
	ErrBarrierReleased = errors.New("coordinator: barrier already released")
	ErrBarrierTimeout  = errors.New("coordinator: barrier wait timed out")
	ErrBarrierAborted  = errors.New("coordinator: barrier wait aborted")
)

// Barrier is a one-shot rendezvous for a fixed number of parties. The party
// whose arrival completes the count runs the release action, then the barrier
// opens. A barrier broken before that point never runs its action.
type Barrier struct {
	parties int
	action  func()

	mu       sync.Mutex
	arrived  int
	tripped  bool
	broken   bool
	released chan struct{}
}

// NewBarrier returns a barrier for parties arrivals. action may be nil.
func NewBarrier(parties int, action func()) *Barrier {
	return &Barrier{
		parties:  parties,
		action:   action,
		released: make(chan struct{}),
	}
}

// Arrive registers one arrival without waiting. The final arrival runs the
// action on the calling goroutine before opening the barrier.
func (b *Barrier) Arrive() error {
	b.mu.Lock()
	if b.broken {
		b.mu.Unlock()
		return ErrBrokenBarrier
	}
	if b.tripped {
		b.mu.Unlock()
		return ErrBarrierReleased
	}
	b.arrived++
	last := b.arrived == b.parties
	if last {
		b.tripped = true
	}
	b.mu.Unlock()

	if last {
		if b.action != nil {
			b.action()
		}
		close(b.released)
	}
	return nil
}

// Await arrives and blocks until the barrier opens, the deadline passes,
// abort is closed or ctx is done. In the latter three cases the barrier is
// broken, unless the final arrival already happened, in which case Await
// waits for the action to finish and returns nil.
func (b *Barrier) Await(ctx context.Context, deadline time.Time, abort <-chan struct{}) error {
	if err := b.Arrive(); err != nil {
		return err
	}

	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	var cause error
	select {
	case <-b.released:
		return nil
	case <-timer.C:
		cause = ErrBarrierTimeout
	case <-abort:
		cause = ErrBarrierAborted
	case <-ctx.Done():
		cause = ctx.Err()
	}

	if !b.Break() {
		<-b.released
		return nil
	}
	return cause
}

// Break marks the barrier broken. It returns false if the barrier had already
// tripped, in which case the action runs or has run.
func (b *Barrier) Break() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tripped {
		return false
	}
	b.broken = true
	return true
}

// Broken reports whether the barrier was broken.
func (b *Barrier) Broken() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.broken
}

// Released is closed once the barrier opens.
func (b *Barrier) Released() <-chan struct{} {
	return b.released
}
