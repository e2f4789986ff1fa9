package clock

import "time"

// Clock provides the current time; swapped for a mock in tests
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time in UTC so persisted timestamps compare cleanly
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}
