// Package sim provides in-memory implementations of the core hardware
// interfaces: a pin driver that records levels, recording axis drivers,
// and limit switches that trip after a scripted travel distance. It
// backs both the unit tests and the firmware daemon's -pins=sim mode.
package sim

import (
	"fmt"
	"time"

	"goplot/core"
)

// Pins is an in-memory core.PinDriver. Output levels are recorded so
// coil patterns can be inspected; input levels are scripted with SetInput.
type Pins struct {
	levels  map[core.Pin]bool
	outputs map[core.Pin]bool
	inputs  map[core.Pin]bool
}

// NewPins returns an empty pin bank.
func NewPins() *Pins {
	return &Pins{
		levels:  make(map[core.Pin]bool),
		outputs: make(map[core.Pin]bool),
		inputs:  make(map[core.Pin]bool),
	}
}

// ConfigureOutput claims a pin as an output, driven low.
func (p *Pins) ConfigureOutput(pin core.Pin) error {
	if p.outputs[pin] || p.inputs[pin] {
		return fmt.Errorf("pin %d already claimed", pin)
	}
	p.outputs[pin] = true
	p.levels[pin] = false
	return nil
}

// ConfigureInput claims a pin as an input. Simulated inputs idle low
// regardless of the pull direction; use SetInput to drive them.
func (p *Pins) ConfigureInput(pin core.Pin, pullUp bool) error {
	if p.outputs[pin] || p.inputs[pin] {
		return fmt.Errorf("pin %d already claimed", pin)
	}
	p.inputs[pin] = true
	p.levels[pin] = false
	return nil
}

// SetPin drives an output pin.
func (p *Pins) SetPin(pin core.Pin, high bool) { p.levels[pin] = high }

// ReadPin reads any pin's current level.
func (p *Pins) ReadPin(pin core.Pin) bool { return p.levels[pin] }

// SetInput drives a simulated input pin, e.g. a limit switch closing.
func (p *Pins) SetInput(pin core.Pin, high bool) { p.levels[pin] = high }

// Level reports the current level of any pin.
func (p *Pins) Level(pin core.Pin) bool { return p.levels[pin] }

// StepEvent is one recorded pulse: which axis moved and in which
// direction.
type StepEvent struct {
	Axis core.Axis
	Dir  int
}

// Trace is an ordered log of pulses across all axes, for tests that care
// about interleaving.
type Trace struct {
	Events []StepEvent
}

// Axis is a recording core.AxisDriver. Every pulse is appended along
// with the delay it was issued at; Net accumulates the signed travel.
type Axis struct {
	ID       core.Axis
	Pulses   []int
	Delays   []time.Duration
	Net      int64
	Disables int
	trace    *Trace
}

// Step records one pulse at the default rate, which the simulator treats
// as zero delay.
func (d *Axis) Step(dir int) { d.StepAt(dir, 0) }

// StepAt records one pulse with the caller's delay. The simulator never
// actually sleeps.
func (d *Axis) StepAt(dir int, delay time.Duration) {
	if dir < 0 {
		dir = -1
	} else {
		dir = 1
	}
	d.Pulses = append(d.Pulses, dir)
	d.Delays = append(d.Delays, delay)
	d.Net += int64(dir)
	if d.trace != nil {
		d.trace.Events = append(d.trace.Events, StepEvent{Axis: d.ID, Dir: dir})
	}
}

// Disable records a de-energize request.
func (d *Axis) Disable() { d.Disables++ }

// Count returns the total number of pulses issued.
func (d *Axis) Count() int { return len(d.Pulses) }

// Switch emulates a limit switch mounted a fixed travel away: it reads
// triggered whenever its axis has moved at least TripAfter half-steps in
// Dir from the starting position, and untriggers once the axis backs out.
type Switch struct {
	Axis      *Axis
	Dir       int
	TripAfter int64
}

// Triggered reports the simulated switch state.
func (s *Switch) Triggered() bool {
	if s.Dir > 0 {
		return s.Axis.Net >= s.TripAfter
	}
	return s.Axis.Net <= -s.TripAfter
}

// Limits bundles one switch per axis into a core.LimitSource.
type Limits struct {
	Switches [core.NumAxes]*Switch
}

// Triggered reports the state of the switch for an axis. An axis without
// a switch never triggers.
func (l *Limits) Triggered(a core.Axis) bool {
	sw := l.Switches[a]
	if sw == nil {
		return false
	}
	return sw.Triggered()
}

// Bench is a fully simulated machine: one recording driver and one
// scripted switch per axis.
type Bench struct {
	Axes    [core.NumAxes]*Axis
	Limits  *Limits
	Machine *core.Machine
	Trace   *Trace
}

// NewBench builds a simulated machine from a configuration. Every axis
// gets a switch that trips after tripAfter half-steps of travel in its
// homing direction.
func NewBench(cfg core.Config, tripAfter int64) *Bench {
	b := &Bench{Limits: &Limits{}, Trace: &Trace{}}
	var drivers [core.NumAxes]core.AxisDriver
	for a := core.Axis(0); a < core.NumAxes; a++ {
		ax := &Axis{ID: a, trace: b.Trace}
		b.Axes[a] = ax
		drivers[a] = ax
		b.Limits.Switches[a] = &Switch{
			Axis:      ax,
			Dir:       cfg.Axes[a].HomeDir,
			TripAfter: tripAfter,
		}
	}
	b.Machine = core.NewMachineWithDrivers(cfg, drivers, b.Limits)
	return b
}
