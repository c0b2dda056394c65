// Package coordinator decides, exactly once, how a group of part tasks ends.
//
// Tasks Report their results; the orchestrator calls Wait, which blocks until
// every part succeeded, any part failed, the deadline passed, or the context
// was cancelled. Wait returns a single Decision. On the success path the
// coordinator runs the completion action (the combine step) before the
// decision is published, so the action runs at most once per run.
//
// Two designs are provided:
//
//   - Poll: a mutex-guarded RunState and a condition variable. Wait re-checks
//     its predicate on every wake and re-arms a timer for the remaining time.
//   - Barrier: a rendezvous sized for every part plus the orchestrator. The
//     last arrival runs the completion action. A deadline, a failure or
//     cancellation breaks the barrier so the action never fires.
//
// Both consult the failure flag before committing to success. Reports that
// arrive after the decision still update counters but never change the
// decision.
package coordinator
