// Package config defines configuration structures for the segfetch CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (SEGFETCH_ prefix)
//   - YAML configuration file
//
// # Structure
//
//	type Config struct {
//	    Bucket       string
//	    Prefix       string
//	    Parts        int
//	    Timeout      time.Duration
//	    Coordinator  string
//	    Fixture      string
//	    Outcomes     []OutcomeConfig
//	    MaxDelay     time.Duration
//	    SuccessRate  float64
//	    Seed         uint64
//	    Progress     bool
//	    DrainTimeout time.Duration
//	}
//
// # YAML
//
//	parts: 4
//	timeout: 4s
//	coordinator: barrier
//	outcomes:
//	  - delay: 1s
//	    success: true
//	  - delay: 100ms
//	    success: false
package config
