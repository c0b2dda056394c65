// Package feed supplies simulated per-part outcomes.
//
// A Feed hands out (delay, success) pairs in the order they were supplied.
// Once the configured sequence is exhausted it synthesizes outcomes: a
// pseudo-random delay bounded by the maximum delay and a success drawn with
// the configured success rate (1.0 by default, so synthesized parts succeed).
//
// # Usage
//
//	f := feed.New(feed.Mixed(), feed.WithSeed(42))
//	o := f.Next() // {1s true}
//
// Next is safe for concurrent use; calls are serialized internally.
package feed
