package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/ligustah/segfetch/internal/config"
)

// flags holds raw flag values; only flags set on the command line override
// file and environment configuration.
type flags struct {
	configPath   string
	bucket       string
	prefix       string
	parts        int
	timeout      time.Duration
	coordinator  string
	fixture      string
	maxDelay     time.Duration
	successRate  float64
	seed         uint64
	progress     bool
	drainTimeout time.Duration
}

func addStorageFlags(cmd *cobra.Command, f *flags) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "YAML configuration file")
	cmd.Flags().StringVar(&f.bucket, "bucket", "", "Bucket URL (default: current directory)")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Object prefix for artifacts")
	cmd.Flags().IntVar(&f.parts, "parts", 0, "Number of parts (default 4)")
}

func addRunFlags(cmd *cobra.Command, f *flags) {
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Deadline for the whole run (default 4s)")
	cmd.Flags().StringVar(&f.coordinator, "coordinator", "", "Coordinator design: poll or barrier (default poll)")
	cmd.Flags().StringVar(&f.fixture, "fixture", "", "Outcome fixture: steady or mixed (default steady)")
	cmd.Flags().DurationVar(&f.maxDelay, "max-delay", 0, "Upper bound for synthesized part delays (default 5s)")
	cmd.Flags().Float64Var(&f.successRate, "success-rate", 1.0, "Success probability of synthesized parts")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Seed for synthesized outcomes (0 = random)")
	cmd.Flags().BoolVar(&f.progress, "progress", false, "Show live progress on stderr")
	cmd.Flags().DurationVar(&f.drainTimeout, "drain-timeout", 0, "How long to wait for cancelled parts (default 1s)")
}

// loadConfig layers defaults, the config file, the environment and the
// flags that were set, then validates the result.
func loadConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.LoadFromFile(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return config.Config{}, err
	}

	var override config.Config
	set := cmd.Flags().Changed
	if set("bucket") {
		override.Bucket = f.bucket
	}
	if set("prefix") {
		override.Prefix = f.prefix
	}
	if set("parts") {
		override.Parts = f.parts
	}
	if set("timeout") {
		override.Timeout = f.timeout
	}
	if set("coordinator") {
		override.Coordinator = f.coordinator
	}
	if set("fixture") {
		override.Fixture = f.fixture
	}
	if set("max-delay") {
		override.MaxDelay = f.maxDelay
	}
	if set("seed") {
		override.Seed = f.seed
	}
	if set("progress") {
		override.Progress = f.progress
	}
	if set("drain-timeout") {
		override.DrainTimeout = f.drainTimeout
	}
	cfg = cfg.Merge(override)

	// Merge ignores zero values; an explicit --success-rate 0 must still apply.
	if set("success-rate") {
		cfg.SuccessRate = f.successRate
	}
	if set("parts") && f.parts <= 0 {
		cfg.Parts = f.parts
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openBucket opens cfg's bucket, defaulting to the working directory.
func openBucket(cmd *cobra.Command, bucketURL string) (*blob.Bucket, error) {
	if bucketURL == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		abs, err := filepath.Abs(wd)
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		bucketURL = "file://" + filepath.ToSlash(abs)
	}

	bkt, err := blob.OpenBucket(cmd.Context(), bucketURL)
	if err != nil {
		return nil, fmt.Errorf("open bucket: %w", err)
	}
	return bkt, nil
}
