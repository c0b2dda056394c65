package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ligustah/segfetch/internal/feed"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 4, cfg.Parts)
	assert.Equal(t, 4*time.Second, cfg.Timeout)
	assert.Equal(t, "poll", cfg.Coordinator)
	assert.Equal(t, "steady", cfg.Fixture)
	assert.Equal(t, 5*time.Second, cfg.MaxDelay)
	assert.Equal(t, 1.0, cfg.SuccessRate)
	assert.Equal(t, time.Second, cfg.DrainTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
bucket: mem://
prefix: run/
parts: 3
timeout: 2s
coordinator: barrier
max_delay: 250ms
success_rate: 0.5
seed: 42
progress: true
drain_timeout: 500ms
outcomes:
  - delay: 100ms
    success: true
  - delay: 1s
    success: false
  - delay: 20ms
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "mem://", cfg.Bucket)
	assert.Equal(t, "run/", cfg.Prefix)
	assert.Equal(t, 3, cfg.Parts)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, "barrier", cfg.Coordinator)
	assert.Equal(t, 250*time.Millisecond, cfg.MaxDelay)
	assert.Equal(t, 0.5, cfg.SuccessRate)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.Progress)
	assert.Equal(t, 500*time.Millisecond, cfg.DrainTimeout)
	assert.Equal(t, []OutcomeConfig{
		{Delay: 100 * time.Millisecond, Success: true},
		{Delay: time.Second, Success: false},
		{Delay: 20 * time.Millisecond, Success: true},
	}, cfg.Outcomes)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAMLZeroSuccessRate(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("success_rate: 0\n"), 0644))

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.SuccessRate)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SEGFETCH_BUCKET", "file:///tmp/segfetch")
	t.Setenv("SEGFETCH_PARTS", "8")
	t.Setenv("SEGFETCH_TIMEOUT", "1500ms")
	t.Setenv("SEGFETCH_COORDINATOR", "barrier")
	t.Setenv("SEGFETCH_FIXTURE", "mixed")
	t.Setenv("SEGFETCH_SUCCESS_RATE", "0.75")
	t.Setenv("SEGFETCH_SEED", "9")
	t.Setenv("SEGFETCH_PROGRESS", "1")

	cfg := Default()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "file:///tmp/segfetch", cfg.Bucket)
	assert.Equal(t, 8, cfg.Parts)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, "barrier", cfg.Coordinator)
	assert.Equal(t, "mixed", cfg.Fixture)
	assert.Equal(t, 0.75, cfg.SuccessRate)
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.True(t, cfg.Progress)
}

func TestLoadFromEnvInvalid(t *testing.T) {
	t.Setenv("SEGFETCH_TIMEOUT", "soon")

	cfg := Default()
	assert.Error(t, cfg.LoadFromEnv())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "zero parts", mutate: func(c *Config) { c.Parts = 0 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: true},
		{name: "unknown coordinator", mutate: func(c *Config) { c.Coordinator = "latch" }, wantErr: true},
		{name: "unknown fixture", mutate: func(c *Config) { c.Fixture = "flaky" }, wantErr: true},
		{
			name: "unknown fixture with explicit outcomes",
			mutate: func(c *Config) {
				c.Fixture = "flaky"
				c.Outcomes = []OutcomeConfig{{Delay: time.Millisecond, Success: true}}
			},
		},
		{
			name:    "negative outcome delay",
			mutate:  func(c *Config) { c.Outcomes = []OutcomeConfig{{Delay: -time.Second}} },
			wantErr: true,
		},
		{name: "success rate above one", mutate: func(c *Config) { c.SuccessRate = 1.5 }, wantErr: true},
		{name: "negative max delay", mutate: func(c *Config) { c.MaxDelay = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	base.Bucket = "mem://"
	base.Outcomes = []OutcomeConfig{{Delay: time.Second, Success: true}}

	merged := base.Merge(Config{Parts: 6, Coordinator: "barrier"})

	assert.Equal(t, "mem://", merged.Bucket)
	assert.Equal(t, 4*time.Second, merged.Timeout)
	assert.Equal(t, 6, merged.Parts)
	assert.Equal(t, "barrier", merged.Coordinator)
	assert.Len(t, merged.Outcomes, 1)

	// Selecting a fixture replaces explicit outcomes.
	merged = merged.Merge(Config{Fixture: "mixed"})
	assert.Empty(t, merged.Outcomes)
	assert.Equal(t, feed.Mixed(), merged.FeedOutcomes())
}

func TestFeedOutcomes(t *testing.T) {
	cfg := Default()
	cfg.Parts = 3
	assert.Equal(t, feed.Steady(3, 100*time.Millisecond), cfg.FeedOutcomes())

	cfg.Outcomes = []OutcomeConfig{{Delay: time.Millisecond, Success: false}}
	assert.Equal(t, []feed.Outcome{{Delay: time.Millisecond, Succeeded: false}}, cfg.FeedOutcomes())

	f := cfg.NewFeed()
	assert.Equal(t, 1, f.Remaining())
}

func TestLoadYAMLFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoadYAMLInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0644))

	_, err := LoadFromFile(configPath)
	assert.Error(t, err)
}

func TestLoadYAMLBadDuration(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("outcomes:\n  - delay: later\n"), 0644))

	_, err := LoadFromFile(configPath)
	assert.Error(t, err)
}
