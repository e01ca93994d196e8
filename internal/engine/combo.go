package engine

import (
	"sync"
	"time"
)

// comboKey identifies one (initiator, target) streak.
type comboKey struct {
	initiator string
	target    string
}

// comboState is the streak state for one pair.
type comboState struct {
	lastSignal string
	count      int
	lastSeen   time.Time
}

// ComboTable maintains per-(initiator, target) streak state.
//
// States are created lazily on first interaction and never explicitly
// destroyed; the table is bounded by the distinct pairs actually seen.
// Timeouts are lazy: a stale streak is reset when the NEXT signal for its
// pair arrives, not by a background timer.
//
// Thread-safety: safe for concurrent use; the engine may observe pairs
// from parallel ticks.
type ComboTable struct {
	mu      sync.Mutex
	timeout time.Duration
	streaks map[comboKey]*comboState
}

// NewComboTable creates an empty table with the given idle timeout.
func NewComboTable(timeout time.Duration) *ComboTable {
	return &ComboTable{
		timeout: timeout,
		streaks: make(map[comboKey]*comboState),
	}
}

// Observe applies a signal to the pair's streak and returns the count
// after the update.
//
// A new pair starts at 1. A signal change or an idle gap beyond the
// timeout resets to 1. The same signal within the timeout increments.
func (t *ComboTable) Observe(initiator, target, signal string, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := comboKey{initiator: initiator, target: target}
	st := t.streaks[key]
	if st == nil {
		st = &comboState{lastSignal: signal, count: 1, lastSeen: now}
		t.streaks[key] = st
		return st.count
	}

	if st.lastSignal != signal || now.Sub(st.lastSeen) > t.timeout {
		st.lastSignal = signal
		st.count = 1
	} else {
		st.count++
	}
	st.lastSeen = now
	return st.count
}

// ResetAfterTrigger zeroes the pair's streak after a combo fires, so the
// next occurrence starts a fresh streak at 1. Zero, not one: the signal
// that triggered does not carry over.
func (t *ComboTable) ResetAfterTrigger(initiator, target string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if st := t.streaks[comboKey{initiator: initiator, target: target}]; st != nil {
		st.count = 0
	}
}

// Count returns the current streak count for a pair.
// Used for testing and introspection.
func (t *ComboTable) Count(initiator, target string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if st := t.streaks[comboKey{initiator: initiator, target: target}]; st != nil {
		return st.count
	}
	return 0
}

// Size returns the number of tracked pairs.
// Used for testing and introspection.
func (t *ComboTable) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.streaks)
}
