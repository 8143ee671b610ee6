package core

import (
	"fmt"
	"time"
)

// halfStepSeq is the 8-phase coil energization table. Adjacent entries,
// including the 7->0 wrap, differ by exactly one coil toggle, so the
// motor never skips or doubles a transition while half-stepping.
var halfStepSeq = [8][4]bool{
	{true, false, false, false},
	{true, true, false, false},
	{false, true, false, false},
	{false, true, true, false},
	{false, false, true, false},
	{false, false, true, true},
	{false, false, false, true},
	{true, false, false, true},
}

// AxisDriver issues half-step pulses for a single motor. The production
// implementation is PhaseDriver; tests substitute a recording fake.
type AxisDriver interface {
	// Step advances the motor one half-step at the default step rate.
	// dir is +1 or -1.
	Step(dir int)

	// StepAt is Step with a caller-supplied inter-step delay. Homing
	// uses it to run at a reduced rate near the mechanical stop.
	StepAt(dir int, delay time.Duration)

	// Disable drives all coils low: no holding torque, phase unchanged.
	// Callable at any time, including mid-sequence.
	Disable()
}

// PhaseDriver drives one motor's four coils through the half-step
// sequence. It tracks the phase index and applies direction inversion
// for axes with reversed wiring.
type PhaseDriver struct {
	pins   PinDriver
	sleep  Sleeper
	coils  [4]Pin
	invert bool
	delay  time.Duration
	phase  int
}

// NewPhaseDriver claims the coil pins as outputs and returns a driver
// with the coils de-energized and the phase index at zero.
func NewPhaseDriver(pins PinDriver, sleep Sleeper, coils [4]Pin, invert bool, delay time.Duration) (*PhaseDriver, error) {
	for _, p := range coils {
		if err := pins.ConfigureOutput(p); err != nil {
			return nil, fmt.Errorf("coil pin %d: %w", p, err)
		}
	}
	return &PhaseDriver{
		pins:   pins,
		sleep:  sleep,
		coils:  coils,
		invert: invert,
		delay:  delay,
	}, nil
}

// Step issues one half-step in dir at the default step rate.
func (d *PhaseDriver) Step(dir int) { d.StepAt(dir, d.delay) }

// StepAt advances or retreats the phase index by one (mod 8), writes the
// corresponding coil pattern, then blocks for delay before returning.
func (d *PhaseDriver) StepAt(dir int, delay time.Duration) {
	step := 1
	if dir < 0 {
		step = -1
	}
	if d.invert {
		step = -step
	}
	d.phase = (d.phase + step + 8) & 7
	for i, p := range d.coils {
		d.pins.SetPin(p, halfStepSeq[d.phase][i])
	}
	d.sleep.Sleep(delay)
}

// Disable cuts power to all four coils. The phase index is preserved, so
// a later pulse resumes the sequence without a skipped transition.
func (d *PhaseDriver) Disable() {
	for _, p := range d.coils {
		d.pins.SetPin(p, false)
	}
}

// Phase returns the current index into the half-step sequence.
func (d *PhaseDriver) Phase() int { return d.phase }
