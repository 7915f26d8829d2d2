package testutil

import (
	"fmt"
	"sync"
	"time"
)

// FixedRunIDs hands out predictable run ids: prefix-1, prefix-2, ...
//
// Thread-safety: safe for concurrent use.
type FixedRunIDs struct {
	mu     sync.Mutex
	prefix string
	seq    int
}

// NewFixedRunIDs returns a generator with the given prefix. An empty prefix
// becomes "test-run".
func NewFixedRunIDs(prefix string) *FixedRunIDs {
	if prefix == "" {
		prefix = "test-run"
	}
	return &FixedRunIDs{prefix: prefix}
}

// NewRunID returns the next id.
func (g *FixedRunIDs) NewRunID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%d", g.prefix, g.seq)
}

// StepClock is a clock for tests that starts at a fixed instant and moves
// one second forward on every call.
//
// Thread-safety: safe for concurrent use.
type StepClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewStepClock returns a clock whose first reading is start.
func NewStepClock(start time.Time) *StepClock {
	return &StepClock{now: start}
}

// Now returns the current reading and advances the clock.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(time.Second)
	return t
}
