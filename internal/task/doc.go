// Package task simulates fetching a single part.
//
// A Task writes a placeholder artifact for its part, draws one outcome from
// the shared feed, then waits for the outcome's delay. The wait stands in for
// network latency and aborts as soon as the context is cancelled.
//
// Storage errors are converted into a failed Result at the task boundary;
// they are logged, never retried, and never returned as errors.
package task
