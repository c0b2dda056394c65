package progress

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer is a bytes.Buffer safe for the reporter's update goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{72, "72 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatBytes(tt.input), "FormatBytes(%d)", tt.input)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "0ms"},
		{250 * time.Millisecond, "250ms"},
		{4 * time.Second, "4s"},
		{90 * time.Second, "1m 30s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDuration(tt.input), "FormatDuration(%v)", tt.input)
	}
}

func TestReporterPartTracking(t *testing.T) {
	reporter := NewReporter(Options{
		TotalParts:     4,
		UpdateInterval: 100 * time.Millisecond,
	})

	// Test part tracking without starting the reporter
	reporter.PartStarted()
	assert.Equal(t, int32(1), reporter.inProgress.Load())

	reporter.PartCompleted()
	assert.Equal(t, int32(0), reporter.inProgress.Load())
	assert.Equal(t, int32(1), reporter.completedParts.Load())

	reporter.PartStarted()
	reporter.PartFailed()
	assert.Equal(t, int32(0), reporter.inProgress.Load())
	assert.Equal(t, int32(1), reporter.failedParts.Load())

	reporter.PartStarted()
	reporter.PartInterrupted()
	assert.Equal(t, int32(0), reporter.inProgress.Load())
	assert.Equal(t, int32(1), reporter.interruptedParts.Load())

	// Stop without Start is a no-op.
	reporter.Stop()
}

func TestReporterStartStop(t *testing.T) {
	var out syncBuffer
	reporter := NewReporter(Options{
		TotalParts:     2,
		Timeout:        4 * time.Second,
		Deadline:       time.Now().Add(4 * time.Second),
		Coordinator:    "poll",
		Output:         &out,
		UpdateInterval: 10 * time.Millisecond,
	})

	reporter.Start()

	reporter.PartStarted()
	reporter.PartStarted()
	reporter.PartCompleted()
	reporter.PartCompleted()
	reporter.SetCombined(36)

	time.Sleep(50 * time.Millisecond) // Let updates run

	reporter.Stop()
	reporter.Stop()

	got := out.String()
	assert.Contains(t, got, "[segfetch] Fetching 2 parts | Timeout: 4s | Coordinator: poll")
	assert.Contains(t, got, "Remaining:")
	assert.Contains(t, got, "[segfetch] Parts: 2 completed | 0 failed | 0 interrupted | Combined: 36 B")
	assert.Contains(t, got, "[segfetch] Total time:")
}
