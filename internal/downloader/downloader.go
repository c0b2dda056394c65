package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/ligustah/segfetch/internal/coordinator"
	"github.com/ligustah/segfetch/internal/feed"
	"github.com/ligustah/segfetch/internal/progress"
	"github.com/ligustah/segfetch/internal/task"
	"github.com/ligustah/segfetch/pkg/parts"
)

// Options configures a run.
type Options struct {
	// Parts is the number of parts to fetch.
	// Default: 4
	Parts int

	// Timeout bounds the whole run.
	// Default: 4s
	Timeout time.Duration

	// Coordinator selects the coordinator design.
	// Default: poll
	Coordinator coordinator.Kind

	// Feed supplies simulated outcomes to the default fetcher.
	// Default: an empty feed, so every outcome is synthesized.
	Feed *feed.Feed

	// Fetcher performs each part. Default: a task.Task over the store and Feed.
	Fetcher task.Fetcher

	// DrainTimeout bounds how long an aborted run waits for cancelled parts
	// to return before cleaning up.
	// Default: 1s
	DrainTimeout time.Duration

	// Progress is an optional progress reporter.
	Progress *progress.Reporter

	// Logger receives human-readable status lines. Nil discards them.
	Logger *log.Logger
}

// Result describes a finished run.
type Result struct {
	Decision      coordinator.Decision
	CombinedBytes int64
	Elapsed       time.Duration
}

// Succeeded reports whether the combined artifact was produced.
func (r Result) Succeeded() bool {
	return r.Decision.Succeeded()
}

// Err returns nil on success and a *coordinator.RunError otherwise.
func (r Result) Err() error {
	return r.Decision.Err()
}

// Run performs one complete run against store.
//
// The returned error is non-nil only if the run could not be carried out;
// a failed, timed-out or cancelled run is reported through Result.
func Run(ctx context.Context, store *parts.Store, opts Options) (Result, error) {
	// Apply defaults
	if opts.Parts <= 0 {
		opts.Parts = 4
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 4 * time.Second
	}
	if opts.Coordinator == "" {
		opts.Coordinator = coordinator.KindPoll
	}
	if opts.DrainTimeout <= 0 {
		opts.DrainTimeout = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Fetcher == nil {
		if opts.Feed == nil {
			opts.Feed = feed.New(nil)
		}
		opts.Fetcher = task.New(store, opts.Feed, opts.Logger)
	}
	logger := opts.Logger

	// Remove leftovers of a previous run
	if err := parts.Reset(ctx, store, opts.Parts, logger); err != nil {
		logger.Printf("Cleanup incomplete: %v", err)
	}
	logger.Printf("---Cleanup finished---------------")

	start := time.Now()
	deadline := start.Add(opts.Timeout)

	var combined int64
	coord, err := coordinator.New(opts.Coordinator, coordinator.Options{
		Parts:    opts.Parts,
		Deadline: deadline,
		OnComplete: func(ctx context.Context) error {
			n, err := parts.Combine(ctx, store, opts.Parts, logger)
			combined = n
			return err
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("create coordinator: %w", err)
	}

	if opts.Progress != nil {
		opts.Progress.SetDeadline(deadline)
		opts.Progress.Start()
		defer opts.Progress.Stop()
	}

	// Parts are cancelled once the decision is made, whatever it is.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for id := 1; id <= opts.Parts; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if opts.Progress != nil {
				opts.Progress.PartStarted()
			}
			r := opts.Fetcher.Fetch(runCtx, id)
			reportProgress(opts.Progress, r)
			coord.Report(r)
		}(id)
	}

	decision := coord.Wait(ctx)

	if decision.Succeeded() {
		logger.Printf("File download complete.")
	} else {
		logger.Printf("Timeout reached or error occurred. Not all parts were downloaded. (%s)", decision.Outcome)
	}
	cancel()

	if !drain(&wg, opts.DrainTimeout) {
		logger.Printf("Parts still running after %s; cleaning up anyway", opts.DrainTimeout)
	}

	// Cleanup must run even if the caller's context is gone.
	cleanupCtx := context.WithoutCancel(ctx)
	var cleanupErr error
	if decision.Succeeded() {
		cleanupErr = parts.DeleteParts(cleanupCtx, store, opts.Parts, logger)
	} else {
		cleanupErr = parts.Reset(cleanupCtx, store, opts.Parts, logger)
	}
	if cleanupErr != nil {
		logger.Printf("Cleanup incomplete: %v", cleanupErr)
	}

	if opts.Progress != nil {
		opts.Progress.SetCombined(combined)
	}

	res := Result{
		Decision: decision,
		Elapsed:  time.Since(start),
	}
	if decision.Succeeded() {
		res.CombinedBytes = combined
	}
	return res, nil
}

// Clean removes every artifact a run with n parts may leave behind.
func Clean(ctx context.Context, store *parts.Store, n int, logger *log.Logger) error {
	if n <= 0 {
		return errors.New("downloader: parts must be positive")
	}
	return parts.Reset(ctx, store, n, logger)
}

// drain waits for wg, giving up after timeout. It reports whether every
// goroutine returned.
func drain(wg *sync.WaitGroup, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

func reportProgress(reporter *progress.Reporter, r task.Result) {
	if reporter == nil {
		return
	}
	switch {
	case r.Success:
		reporter.PartCompleted()
	case r.Interrupted:
		reporter.PartInterrupted()
	default:
		reporter.PartFailed()
	}
}
