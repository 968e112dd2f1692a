package core

import (
	"sync"
	"time"
)

// Clock is a monotonic time source measured from the clock's own origin.
// Games never read wall-clock time directly; the platform injects a Clock
// so that tests can drive the simulation with synthetic time.
type Clock interface {
	Now() time.Duration
}

// SystemClock is a Clock backed by the runtime's monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock whose origin is the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock is a Clock advanced explicitly. Used by tests and replays.
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

// NewManualClock creates a manual clock starting at the given time.
func NewManualClock(start time.Duration) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current synthetic time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

// Set moves the clock to an absolute time, which may be earlier than now.
func (c *ManualClock) Set(t time.Duration) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Frame is the timing of one simulation tick.
type Frame struct {
	Now   time.Duration // Clock reading at the start of the tick
	Delta time.Duration // Time since the previous tick, never negative
}

// FrameClock converts clock readings into per-frame deltas.
type FrameClock struct {
	clock   Clock
	last    time.Duration
	started bool
}

// NewFrameClock creates a frame clock over the given time source.
func NewFrameClock(clock Clock) *FrameClock {
	return &FrameClock{clock: clock}
}

// Next samples the clock and returns the frame timing.
// The first frame has zero delta; a clock that steps backwards yields zero.
func (fc *FrameClock) Next() Frame {
	now := fc.clock.Now()
	if !fc.started {
		fc.started = true
		fc.last = now
		return Frame{Now: now}
	}

	delta := now - fc.last
	if delta < 0 {
		delta = 0
	}
	fc.last = now
	return Frame{Now: now, Delta: delta}
}

// Now returns the underlying clock reading without starting a frame.
func (fc *FrameClock) Now() time.Duration {
	return fc.clock.Now()
}
