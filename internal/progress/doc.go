// Package progress provides progress reporting for part fetches.
//
// This package outputs human-readable progress information, including how
// many parts completed, failed or were interrupted and how much time remains
// before the run's deadline.
//
// # Usage
//
//	reporter := progress.NewReporter(Options{
//	    TotalParts:  4,
//	    Deadline:    deadline,
//	    Output:      os.Stdout,
//	})
//
//	reporter.Start()
//	defer reporter.Stop()
//
//	// Update as parts finish
//	reporter.PartStarted()
//	reporter.PartCompleted()
//
// # Output Format
//
//	[segfetch] Fetching 4 parts | Timeout: 4s | Coordinator: poll
//	[segfetch] Parts: 2 completed | 2 in-progress | 0 failed | Remaining: 3s
//	[segfetch] Parts: 4 completed | 0 failed | 0 interrupted | Combined: 72 B
//	[segfetch] Total time: 1s
package progress
