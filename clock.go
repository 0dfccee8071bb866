package sprout

import "time"

// Clock reports monotonic time elapsed since an arbitrary origin. It plays the
// role of the timestamp a browser hands to display-refresh callbacks.
type Clock interface {
	Now() time.Duration
}

// SystemClock reads the wall clock relative to the moment it was created.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock returns a SystemClock whose origin is now.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock only moves when told to. Tests and scripted runs use it to step
// the scheduler through exact instants.
type ManualClock struct {
	now time.Duration
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by d. Negative values are ignored so the
// clock never runs backwards.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// Set jumps the clock to t if t is not earlier than the current time.
func (c *ManualClock) Set(t time.Duration) {
	if t > c.now {
		c.now = t
	}
}
