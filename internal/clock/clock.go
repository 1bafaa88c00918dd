// Package clock abstracts the time source used for backup timestamps.
package clock

import "time"

// StampLayout is the layout of timestamps embedded in backup file names.
const StampLayout = "2006-01-02_15-04-05"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Stamp formats t with second resolution for use in file names.
func Stamp(t time.Time) string {
	return t.Format(StampLayout)
}

// FakeClock returns a fixed time until told otherwise.
type FakeClock struct {
	current time.Time
}

// NewFakeClock creates a FakeClock stopped at t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t}
}

// Now returns the fixed time.
func (c *FakeClock) Now() time.Time {
	return c.current
}

// Advance moves the fixed time forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
