package engine

import "sync"

// Signal is one observed emote from an initiating actor, together with
// the already-filtered list of nearby eligible targets.
type Signal struct {
	ID          string
	InitiatorID string
	Targets     []string
}

// signalQueue is a thread-safe FIFO queue of pending signals.
//
// Unbounded so a burst of detected emotes never blocks the detection
// side. A channel signals availability so Run can wait with context
// awareness instead of polling.
type signalQueue struct {
	mu      sync.Mutex
	signals []Signal
	closed  bool
	signal  chan struct{} // availability signal (buffered, size 1)
}

func newSignalQueue() *signalQueue {
	return &signalQueue{
		signals: make([]Signal, 0, 16),
		signal:  make(chan struct{}, 1),
	}
}

// Enqueue adds a signal to the back of the queue.
// Thread-safe. Returns false if the queue is closed.
func (q *signalQueue) Enqueue(s Signal) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.signals = append(q.signals, s)

	// Non-blocking: the buffer of 1 coalesces multiple signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue attempts to dequeue without blocking.
func (q *signalQueue) TryDequeue() (Signal, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.signals) == 0 {
		return Signal{}, false
	}
	s := q.signals[0]

	// Nil the slot so the backing array does not retain the target slice.
	q.signals[0] = Signal{}
	if len(q.signals) == 1 {
		q.signals = q.signals[:0]
	} else {
		q.signals = q.signals[1:]
	}
	return s, true
}

// Wait returns a channel that fires when signals may be available.
// Closed when the queue closes, which wakes all waiters. A fire is a
// hint, not a guarantee: the waker may find the queue empty and must
// check Closed to distinguish shutdown from a stale token.
func (q *signalQueue) Wait() <-chan struct{} {
	return q.signal
}

// Closed reports whether the queue has stopped accepting signals.
func (q *signalQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the current queue length.
func (q *signalQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.signals)
}

// Close stops accepting signals and wakes blocked waiters.
func (q *signalQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}
