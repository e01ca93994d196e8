// Package engine implements the riposte reaction engine.
//
// The engine is the orchestrator: it receives emote signals, gathers fact
// snapshots for nearby targets, drives the combo state machine, matches
// rules, and hands matched actions to the executor.
//
// ARCHITECTURE:
//
// Signal Processing Flow:
//  1. A signal (initiator emote + nearby target list) arrives, either via
//     Dispatch (synchronous) or Enqueue + Run (FIFO loop).
//  2. For each target: the fact provider builds a snapshot; missing facts
//     skip the target silently.
//  3. The combo table observes the signal: same signal within the timeout
//     extends the streak, anything else resets it to 1.
//  4. The combo rule list is searched first-match; if a rule matches and
//     the streak has reached its threshold, the combo action executes and
//     the immediate path is SKIPPED for that pair this step.
//  5. Otherwise the immediate rule list is searched first-match and a
//     match executes.
//
// Execution is asynchronous per target: each matched action runs in its
// own goroutine, through timed suspension points (reaction latency,
// emote-to-text pause, inter-fragment pauses). The per-target busy flag
// is a must-hold invariant: a second action for a busy target is dropped
// at entry, never queued. Tasks run to completion once started; there is
// no mid-flight cancellation beyond context cancellation at the next
// suspension point.
//
// ERROR HANDLING: No error escapes a tick. Port failures are caught at
// the smallest enclosing step and logged; malformed rule data is treated
// as non-matching; invariant violations (busy flag set, missing facts)
// are silent no-ops. The engine degrades a single reaction, never the
// whole update loop.
package engine
