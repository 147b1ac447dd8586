package timer

import "time"

// Clock provides the current time. Tests inject a ManualClock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	now time.Time
}

func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{now: t}
}

func (c *ManualClock) Now() time.Time { return c.now }

func (c *ManualClock) Set(t time.Time) { c.now = t }

func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// ElapsedSeconds returns the whole seconds between start and now at millisecond
// resolution, truncated toward zero. The result is negative if now is before start.
func ElapsedSeconds(start, now time.Time) int {
	return int(now.Sub(start).Milliseconds() / 1000)
}
