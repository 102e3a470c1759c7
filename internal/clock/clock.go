// Package clock converts variable wall-clock frame deltas into a fixed number
// of physics steps plus an interpolation fraction, via a time accumulator.
package clock

import (
	"errors"
	"fmt"
	"math"
)

// DefaultFixedDt is the default simulation interval (60 Hz).
const DefaultFixedDt = 1.0 / 60.0

// DefaultMaxStepsPerFrame bounds how many fixed steps one frame may run.
// Excess accumulated time beyond the cap is discarded, not simulated, so a
// long frame cannot snowball into ever-longer frames.
const DefaultMaxStepsPerFrame = 5

// ErrInvalidDelta is returned by Advance for a negative or NaN frame delta.
// The delta is treated as zero; the clock itself stays usable.
var ErrInvalidDelta = errors.New("clock: invalid frame delta")

// Clock accumulates real time and emits fixed-length simulation steps.
// Not safe for concurrent use; the frame scheduler owns it.
type Clock struct {
	fixedDt  float64
	maxSteps int
	acc      float64
}

// New returns a clock with the given fixed timestep in seconds and step cap.
// Non-positive arguments fall back to the defaults.
func New(fixedDt float64, maxSteps int) *Clock {
	if fixedDt <= 0 {
		fixedDt = DefaultFixedDt
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxStepsPerFrame
	}
	return &Clock{fixedDt: fixedDt, maxSteps: maxSteps}
}

// FixedDt returns the fixed timestep in seconds.
func (c *Clock) FixedDt() float64 {
	return c.fixedDt
}

// Advance adds realDelta seconds to the accumulator and returns how many
// fixed steps to simulate this frame, plus the interpolation alpha in [0,1)
// (the fraction of a step left unsimulated). A negative or NaN delta returns
// ErrInvalidDelta and contributes zero time; steps and alpha are still valid
// for the frame.
func (c *Clock) Advance(realDelta float64) (steps int, alpha float64, err error) {
	if realDelta < 0 || math.IsNaN(realDelta) {
		err = fmt.Errorf("%w: %v", ErrInvalidDelta, realDelta)
		realDelta = 0
	}
	c.acc += realDelta

	for c.acc >= c.fixedDt && steps < c.maxSteps {
		c.acc -= c.fixedDt
		steps++
	}
	// Step cap hit: drop the remaining whole steps, keep the fraction so
	// alpha stays continuous.
	if c.acc >= c.fixedDt {
		c.acc = math.Mod(c.acc, c.fixedDt)
	}

	return steps, c.acc / c.fixedDt, err
}
