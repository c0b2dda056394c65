package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ligustah/segfetch/internal/coordinator"
	"github.com/ligustah/segfetch/internal/feed"
)

// Config defines configuration for the segfetch CLI.
type Config struct {
	Bucket       string          `yaml:"bucket"`
	Prefix       string          `yaml:"prefix"`
	Parts        int             `yaml:"parts"`
	Timeout      time.Duration   `yaml:"timeout"`
	Coordinator  string          `yaml:"coordinator"`
	Fixture      string          `yaml:"fixture"`
	Outcomes     []OutcomeConfig `yaml:"outcomes"`
	MaxDelay     time.Duration   `yaml:"max_delay"`
	SuccessRate  float64         `yaml:"success_rate"`
	Seed         uint64          `yaml:"seed"`
	Progress     bool            `yaml:"progress"`
	DrainTimeout time.Duration   `yaml:"drain_timeout"`
}

// OutcomeConfig is one configured (delay, success) pair.
type OutcomeConfig struct {
	Delay   time.Duration `yaml:"delay"`
	Success bool          `yaml:"success"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Parts:        4,
		Timeout:      4 * time.Second,
		Coordinator:  string(coordinator.KindPoll),
		Fixture:      feed.FixtureSteady,
		MaxDelay:     feed.DefaultMaxDelay,
		SuccessRate:  1.0,
		DrainTimeout: time.Second,
	}
}

// yamlConfig is used for YAML unmarshaling with string durations.
type yamlConfig struct {
	Bucket       string              `yaml:"bucket"`
	Prefix       string              `yaml:"prefix"`
	Parts        int                 `yaml:"parts"`
	Timeout      string              `yaml:"timeout"`
	Coordinator  string              `yaml:"coordinator"`
	Fixture      string              `yaml:"fixture"`
	Outcomes     []yamlOutcomeConfig `yaml:"outcomes"`
	MaxDelay     string              `yaml:"max_delay"`
	SuccessRate  *float64            `yaml:"success_rate"`
	Seed         uint64              `yaml:"seed"`
	Progress     bool                `yaml:"progress"`
	DrainTimeout string              `yaml:"drain_timeout"`
}

type yamlOutcomeConfig struct {
	Delay   string `yaml:"delay"`
	Success *bool  `yaml:"success"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.Bucket != "" {
		cfg.Bucket = yc.Bucket
	}
	if yc.Prefix != "" {
		cfg.Prefix = yc.Prefix
	}
	if yc.Parts != 0 {
		cfg.Parts = yc.Parts
	}
	if yc.Timeout != "" {
		d, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if yc.Coordinator != "" {
		cfg.Coordinator = yc.Coordinator
	}
	if yc.Fixture != "" {
		cfg.Fixture = yc.Fixture
	}
	for i, o := range yc.Outcomes {
		d, err := time.ParseDuration(o.Delay)
		if err != nil {
			return Config{}, fmt.Errorf("parse outcomes[%d].delay: %w", i, err)
		}
		success := true
		if o.Success != nil {
			success = *o.Success
		}
		cfg.Outcomes = append(cfg.Outcomes, OutcomeConfig{Delay: d, Success: success})
	}
	if yc.MaxDelay != "" {
		d, err := time.ParseDuration(yc.MaxDelay)
		if err != nil {
			return Config{}, fmt.Errorf("parse max_delay: %w", err)
		}
		cfg.MaxDelay = d
	}
	if yc.SuccessRate != nil {
		cfg.SuccessRate = *yc.SuccessRate
	}
	if yc.Seed != 0 {
		cfg.Seed = yc.Seed
	}
	cfg.Progress = yc.Progress
	if yc.DrainTimeout != "" {
		d, err := time.ParseDuration(yc.DrainTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse drain_timeout: %w", err)
		}
		cfg.DrainTimeout = d
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the SEGFETCH_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("SEGFETCH_BUCKET"); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv("SEGFETCH_PREFIX"); v != "" {
		c.Prefix = v
	}
	if v := os.Getenv("SEGFETCH_PARTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse SEGFETCH_PARTS: %w", err)
		}
		c.Parts = n
	}
	if v := os.Getenv("SEGFETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse SEGFETCH_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("SEGFETCH_COORDINATOR"); v != "" {
		c.Coordinator = v
	}
	if v := os.Getenv("SEGFETCH_FIXTURE"); v != "" {
		c.Fixture = v
	}
	if v := os.Getenv("SEGFETCH_MAX_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse SEGFETCH_MAX_DELAY: %w", err)
		}
		c.MaxDelay = d
	}
	if v := os.Getenv("SEGFETCH_SUCCESS_RATE"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse SEGFETCH_SUCCESS_RATE: %w", err)
		}
		c.SuccessRate = r
	}
	if v := os.Getenv("SEGFETCH_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse SEGFETCH_SEED: %w", err)
		}
		c.Seed = n
	}
	if v := os.Getenv("SEGFETCH_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("SEGFETCH_DRAIN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse SEGFETCH_DRAIN_TIMEOUT: %w", err)
		}
		c.DrainTimeout = d
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Parts <= 0 {
		return errors.New("config: parts must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	if _, err := coordinator.ParseKind(c.Coordinator); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(c.Outcomes) == 0 {
		if _, ok := feed.Fixture(c.Fixture, c.Parts); !ok {
			return fmt.Errorf("config: unknown fixture %q", c.Fixture)
		}
	}
	for i, o := range c.Outcomes {
		if o.Delay < 0 {
			return fmt.Errorf("config: outcomes[%d].delay must not be negative", i)
		}
	}
	if c.MaxDelay < 0 {
		return errors.New("config: max_delay must not be negative")
	}
	if c.SuccessRate < 0 || c.SuccessRate > 1 {
		return errors.New("config: success_rate must be within [0, 1]")
	}
	if c.DrainTimeout < 0 {
		return errors.New("config: drain_timeout must not be negative")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Bucket != "" {
		c.Bucket = override.Bucket
	}
	if override.Prefix != "" {
		c.Prefix = override.Prefix
	}
	if override.Parts != 0 {
		c.Parts = override.Parts
	}
	if override.Timeout != 0 {
		c.Timeout = override.Timeout
	}
	if override.Coordinator != "" {
		c.Coordinator = override.Coordinator
	}
	if override.Fixture != "" {
		c.Fixture = override.Fixture
		c.Outcomes = nil
	}
	if len(override.Outcomes) > 0 {
		c.Outcomes = override.Outcomes
	}
	if override.MaxDelay != 0 {
		c.MaxDelay = override.MaxDelay
	}
	if override.SuccessRate != 0 {
		c.SuccessRate = override.SuccessRate
	}
	if override.Seed != 0 {
		c.Seed = override.Seed
	}
	if override.Progress {
		c.Progress = override.Progress
	}
	if override.DrainTimeout != 0 {
		c.DrainTimeout = override.DrainTimeout
	}
	return c
}

// FeedOutcomes returns the feed's initial sequence: the explicit outcomes if
// any are configured, otherwise the named fixture.
func (c *Config) FeedOutcomes() []feed.Outcome {
	if len(c.Outcomes) > 0 {
		out := make([]feed.Outcome, len(c.Outcomes))
		for i, o := range c.Outcomes {
			out[i] = feed.Outcome{Delay: o.Delay, Succeeded: o.Success}
		}
		return out
	}
	out, _ := feed.Fixture(c.Fixture, c.Parts)
	return out
}

// NewFeed builds the outcome feed described by the configuration.
func (c *Config) NewFeed() *feed.Feed {
	return feed.New(c.FeedOutcomes(),
		feed.WithMaxDelay(c.MaxDelay),
		feed.WithSuccessRate(c.SuccessRate),
		feed.WithSeed(c.Seed),
	)
}
