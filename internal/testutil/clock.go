package testutil

import (
	"sync"
	"time"
)

// Clock is a deterministic time source for tests.
//
// Each call to Now advances the clock by a fixed step, so code that measures
// elapsed time between two Now calls observes exactly one step. This makes
// elapsed-nanosecond assertions exact instead of "greater than zero".
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock creates a clock that returns start on the first Now call and
// advances by step on every call.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{now: start, step: step}
}

// Now returns the current time and advances the clock by one step.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Advance moves the clock forward by d without consuming a step.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
