package feed

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultMaxDelay bounds the delay of synthesized outcomes.
const DefaultMaxDelay = 5 * time.Second

// Outcome is the simulated result a part task observes.
type Outcome struct {
	Delay     time.Duration
	Succeeded bool
}

func (o Outcome) String() string {
	return fmt.Sprintf("delay=%s, success=%t", o.Delay, o.Succeeded)
}

// Options configures outcome synthesis.
type Options struct {
	// MaxDelay bounds synthesized delays to [0, MaxDelay).
	// Default: 5s
	MaxDelay time.Duration

	// SuccessRate is the probability that a synthesized outcome succeeds.
	// Default: 1.0
	SuccessRate float64

	// Seed makes synthesis deterministic. Zero picks a random seed.
	Seed uint64
}

// Option is a functional option for configuring a Feed.
type Option func(*Options)

// WithMaxDelay sets the upper bound for synthesized delays.
func WithMaxDelay(d time.Duration) Option {
	return func(o *Options) {
		o.MaxDelay = d
	}
}

// WithSuccessRate sets the success probability of synthesized outcomes.
func WithSuccessRate(rate float64) Option {
	return func(o *Options) {
		o.SuccessRate = rate
	}
}

// WithSeed seeds the generator used for synthesized outcomes.
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// Feed is an ordered source of simulated outcomes.
type Feed struct {
	opts Options

	mu    sync.Mutex
	queue []Outcome
	rng   *rand.Rand
}

// New creates a feed that returns outcomes in the given order.
func New(outcomes []Outcome, options ...Option) *Feed {
	opts := Options{
		MaxDelay:    DefaultMaxDelay,
		SuccessRate: 1.0,
	}
	for _, opt := range options {
		opt(&opts)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	queue := make([]Outcome, len(outcomes))
	copy(queue, outcomes)

	return &Feed{
		opts:  opts,
		queue: queue,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next removes and returns the next outcome. An exhausted feed synthesizes one.
func (f *Feed) Next() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) > 0 {
		o := f.queue[0]
		f.queue = f.queue[1:]
		return o
	}

	var delay time.Duration
	if f.opts.MaxDelay > 0 {
		delay = time.Duration(f.rng.Int64N(int64(f.opts.MaxDelay)))
	}
	return Outcome{
		Delay:     delay,
		Succeeded: f.rng.Float64() < f.opts.SuccessRate,
	}
}

// Remaining returns the number of configured outcomes not yet drawn.
func (f *Feed) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
