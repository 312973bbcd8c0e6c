package harness

import "sync/atomic"

// Clock stamps runs and queries with a strictly increasing seq number.
//
// The run log orders records by seq, never by wall time, so a replayed
// scenario orders its queries exactly as the original run did.
type Clock interface {
	Next() int64
}

// AtomicClock is the default Clock. Safe for concurrent use.
type AtomicClock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first Next() returns 1.
func NewClock() *AtomicClock {
	return &AtomicClock{}
}

// NewClockAt creates a clock resuming after start, typically the highest
// seq already in the run log.
func NewClockAt(start int64) *AtomicClock {
	c := &AtomicClock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number.
func (c *AtomicClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *AtomicClock) Current() int64 {
	return c.seq.Load()
}
