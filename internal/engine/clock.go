package engine

import (
	"context"
	"sync/atomic"
	"time"
)

// Clock abstracts wall time and timed suspension.
//
// Streak timeouts are evaluated against Now() at the moment a signal
// arrives, never via background timers: stale streaks are lazily reset.
// Sleep is the cooperative yield point of the execution pipeline; it must
// return early with the context's error on cancellation.
//
// Production uses WallClock; tests use a deterministic clock that
// advances instantly (see testutil).
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// WallClock is the production Clock.
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

// Sleep waits for d or until the context is cancelled.
func (WallClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Seq is a monotonic logical counter stamping journal records.
//
// Journal row ordering follows this counter, not wall-clock timestamps,
// so concurrent executor goroutines never produce ambiguous order.
//
// Thread-safety: safe for concurrent use (atomic operations).
type Seq struct {
	n atomic.Int64
}

// NewSeq creates a counter starting at 0; the first Next returns 1.
func NewSeq() *Seq {
	return &Seq{}
}

// Next returns the next sequence number and increments the counter.
func (s *Seq) Next() int64 {
	return s.n.Add(1)
}

// Current returns the current sequence number without incrementing.
func (s *Seq) Current() int64 {
	return s.n.Load()
}
