package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Options configures the progress reporter.
type Options struct {
	// TotalParts is the number of parts in the run.
	TotalParts int

	// Timeout is the run's timeout (for display).
	Timeout time.Duration

	// Deadline is the absolute deadline used to show remaining time.
	Deadline time.Time

	// Coordinator names the coordinator design (for display).
	Coordinator string

	// Output is where to write progress output.
	// Default: os.Stdout
	Output io.Writer

	// UpdateInterval is how often to update the progress display.
	// Default: 500ms
	UpdateInterval time.Duration
}

// Reporter outputs human-readable progress information.
type Reporter struct {
	opts Options

	mu               sync.Mutex
	completedParts   atomic.Int32
	failedParts      atomic.Int32
	interruptedParts atomic.Int32
	inProgress       atomic.Int32
	combinedBytes    atomic.Int64
	startTime        time.Time
	stopCh           chan struct{}
	doneCh           chan struct{}
	started          bool
	stopped          bool
}

// NewReporter creates a new progress reporter.
func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.UpdateInterval == 0 {
		opts.UpdateInterval = 500 * time.Millisecond
	}

	return &Reporter{
		opts:   opts,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// SetDeadline sets the deadline shown as remaining time. Call before Start.
func (r *Reporter) SetDeadline(deadline time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.Deadline = deadline
}

// Start begins outputting progress information.
func (r *Reporter) Start() {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.startTime = time.Now()
	r.mu.Unlock()

	fmt.Fprintf(r.opts.Output, "[segfetch] Fetching %d parts | Timeout: %s | Coordinator: %s\n",
		r.opts.TotalParts,
		formatDuration(r.opts.Timeout),
		r.opts.Coordinator,
	)

	go r.updateLoop()
}

// Stop stops the progress reporter and prints the final status.
// Safe to call multiple times.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if r.stopped || !r.started {
		r.stopped = true
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

// PartStarted marks a part as in progress.
func (r *Reporter) PartStarted() {
	r.inProgress.Add(1)
}

// PartCompleted marks a part as completed.
func (r *Reporter) PartCompleted() {
	r.completedParts.Add(1)
	r.inProgress.Add(-1)
}

// PartFailed marks a part as failed (removes from in-progress).
func (r *Reporter) PartFailed() {
	r.failedParts.Add(1)
	r.inProgress.Add(-1)
}

// PartInterrupted marks a part as interrupted (removes from in-progress).
func (r *Reporter) PartInterrupted() {
	r.interruptedParts.Add(1)
	r.inProgress.Add(-1)
}

// SetCombined records the size of the combined artifact.
func (r *Reporter) SetCombined(n int64) {
	r.combinedBytes.Store(n)
}

// updateLoop periodically updates the progress display.
func (r *Reporter) updateLoop() {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.opts.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			r.printFinalStatus()
			return
		case <-ticker.C:
			r.printProgress()
		}
	}
}

// printProgress outputs the current progress.
func (r *Reporter) printProgress() {
	r.mu.Lock()
	deadline := r.opts.Deadline
	r.mu.Unlock()

	remaining := "n/a"
	if !deadline.IsZero() {
		left := time.Until(deadline)
		if left < 0 {
			left = 0
		}
		remaining = formatDuration(left)
	}

	fmt.Fprintf(r.opts.Output, "[segfetch] Parts: %d completed | %d in-progress | %d failed | Remaining: %s\n",
		r.completedParts.Load(),
		r.inProgress.Load(),
		r.failedParts.Load(),
		remaining,
	)
}

// printFinalStatus outputs the final status.
func (r *Reporter) printFinalStatus() {
	fmt.Fprintf(r.opts.Output, "[segfetch] Parts: %d completed | %d failed | %d interrupted | Combined: %s\n",
		r.completedParts.Load(),
		r.failedParts.Load(),
		r.interruptedParts.Load(),
		formatBytes(r.combinedBytes.Load()),
	)
	fmt.Fprintf(r.opts.Output, "[segfetch] Total time: %s\n", formatDuration(time.Since(r.startTime)))
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatDuration formats a duration as a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}

// FormatBytes is exported for use by other packages.
func FormatBytes(b int64) string {
	return formatBytes(b)
}

// FormatDuration is exported for use by other packages.
func FormatDuration(d time.Duration) string {
	return formatDuration(d)
}
