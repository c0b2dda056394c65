package task

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/ligustah/segfetch/internal/feed"
	"github.com/ligustah/segfetch/pkg/parts"
)

// Result is the outcome a part task reports to the coordinator.
type Result struct {
	PartID int

	// Success is true only when the part was written and its drawn outcome
	// succeeded before cancellation.
	Success bool

	// Interrupted is true when the wait was cancelled. Success is then false.
	Interrupted bool

	// Outcome is the outcome drawn from the feed, if any.
	Outcome feed.Outcome

	// Err holds the storage error that failed the part, if any.
	Err error
}

// Failed reports whether the part ended in a genuine failure rather than an
// interruption.
func (r Result) Failed() bool {
	return !r.Success && !r.Interrupted
}

// Fetcher performs the work of one part.
type Fetcher interface {
	Fetch(ctx context.Context, partID int) Result
}

// Task fetches parts by writing placeholder content and simulating latency.
type Task struct {
	store  *parts.Store
	feed   *feed.Feed
	logger *log.Logger
}

// New creates a task that writes to store and draws outcomes from f.
func New(store *parts.Store, f *feed.Feed, logger *log.Logger) *Task {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Task{store: store, feed: f, logger: logger}
}

// Content returns the placeholder payload written for part id.
func Content(id int) string {
	return "Content of part " + strconv.Itoa(id)
}

// Fetch runs part partID to completion, failure or cancellation.
func (t *Task) Fetch(ctx context.Context, partID int) Result {
	r := Result{PartID: partID}

	if ctx.Err() != nil {
		t.logger.Printf("Download of part %d was interrupted.", partID)
		r.Interrupted = true
		return r
	}

	if err := t.writePart(ctx, partID); err != nil {
		if ctx.Err() != nil {
			t.logger.Printf("Download of part %d was interrupted.", partID)
			r.Interrupted = true
			return r
		}
		t.logger.Printf("Part %d could not be written: %v", partID, err)
		r.Err = err
		return r
	}

	r.Outcome = t.feed.Next()
	t.logger.Printf("Part %d download started (%s).", partID, r.Outcome)

	if err := sleep(ctx, r.Outcome.Delay); err != nil {
		t.logger.Printf("Download of part %d was interrupted.", partID)
		r.Interrupted = true
		return r
	}

	if !r.Outcome.Succeeded {
		t.logger.Printf("Part %d failed.", partID)
		return r
	}

	t.logger.Printf("Part %d downloaded.", partID)
	r.Success = true
	return r
}

// writePart writes the placeholder artifact. The writer is closed on every path.
func (t *Task) writePart(ctx context.Context, partID int) error {
	w, err := t.store.Create(ctx, t.store.PartName(partID))
	if err != nil {
		return err
	}
	_, writeErr := io.WriteString(w, Content(partID))
	closeErr := w.Close()
	return errors.Join(writeErr, closeErr)
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
