package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/scorepad/internal/dependencies/clock"
)

// MockClock only moves when told to
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

var _ clock.Clock = (*MockClock)(nil)

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set jumps the clock to t
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
