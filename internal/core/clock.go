package core

import "time"

// FrameMillis is the length of one nominal frame. Frame-based timers
// (attack duration, enemy spawn delay, fade-out) count in these units.
const FrameMillis = 1000.0 / 60.0

// DefaultMaxElapsed caps the wall time a single tick may cover, so a stalled
// terminal does not turn into one giant step.
const DefaultMaxElapsed = 100 * time.Millisecond

// Delta is the time covered by one tick, in both units the simulation uses.
type Delta struct {
	Frames float64 // Elapsed time in nominal 60 Hz frames
	Millis float64 // Elapsed wall time in milliseconds
}

// NominalDelta is the delta of one tick at exactly 60 Hz.
func NominalDelta() Delta {
	return Delta{Frames: 1, Millis: FrameMillis}
}

// DeltaFromMillis converts a wall time step into a Delta.
func DeltaFromMillis(ms float64) Delta {
	return Delta{Frames: ms / FrameMillis, Millis: ms}
}

// Clock measures wall time between display refreshes.
type Clock struct {
	last       time.Time
	started    bool
	tickRate   int
	maxElapsed time.Duration
}

// NewClock creates a clock for a driver refreshing tickRate times a second.
func NewClock(tickRate int, maxElapsed time.Duration) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	if maxElapsed <= 0 {
		maxElapsed = DefaultMaxElapsed
	}
	return &Clock{tickRate: tickRate, maxElapsed: maxElapsed}
}

// Tick returns the delta since the previous call. The first call after
// creation or Reset returns one refresh interval.
func (c *Clock) Tick(now time.Time) Delta {
	if !c.started {
		c.started = true
		c.last = now
		interval := time.Second / time.Duration(c.tickRate)
		return DeltaFromMillis(float64(interval) / float64(time.Millisecond))
	}

	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > c.maxElapsed {
		elapsed = c.maxElapsed
	}
	return DeltaFromMillis(float64(elapsed) / float64(time.Millisecond))
}

// Reset makes the next Tick nominal again (after pause or restart).
func (c *Clock) Reset() {
	c.started = false
}
