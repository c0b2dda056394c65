// Package downloader orchestrates one segmented download run.
//
// A run removes stale artifacts, starts one goroutine per part, and hands
// every part's result to a coordinator that decides the run's outcome once.
// On success the parts are combined into a single artifact; on failure,
// timeout or cancellation the remaining parts are cancelled. Cleanup runs
// afterwards whatever the outcome.
//
// # Usage
//
//	res, err := downloader.Run(ctx, store, Options{
//	    Parts:       4,
//	    Timeout:     4 * time.Second,
//	    Coordinator: coordinator.KindPoll,
//	    Feed:        feed.New(feed.Steady(4, 100*time.Millisecond)),
//	    Logger:      logger,
//	})
//
// # Lifecycle
//
//   - Reset: delete part artifacts and the combined artifact
//   - Fetch: run every part concurrently under a shared deadline
//   - Decide: combine on success, cancel stragglers otherwise
//   - Drain: wait (bounded) for cancelled parts to return
//   - Cleanup: delete part artifacts (and the combined artifact on failure)
package downloader
