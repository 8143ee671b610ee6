package core

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the complete machine description.
type Config struct {
	Axes        [NumAxes]AxisConfig
	StepDelay   time.Duration // inter-step delay for G0/G1 moves
	HomingDelay time.Duration // reduced rate used while seeking limit switches
}

// LimitSource reports whether an axis limit switch is triggered. The
// default implementation reads the configured input pins; tests inject
// scripted switches.
type LimitSource interface {
	Triggered(a Axis) bool
}

// Machine owns the complete motion state: one phase driver per axis, the
// per-axis positions and the positioning mode. It is not safe for
// concurrent use; the transport loop executes exactly one command to
// completion before reading the next.
type Machine struct {
	cfg     Config
	drivers [NumAxes]AxisDriver
	limits  LimitSource
	state   State
}

// NewMachine wires a machine to hardware: coil outputs and limit inputs
// are configured through pins, step timing through sleep. Motors start
// de-energized at position zero in absolute mode.
func NewMachine(cfg Config, pins PinDriver, sleep Sleeper) (*Machine, error) {
	if pins == nil {
		return nil, errors.New("nil pin driver")
	}
	if sleep == nil {
		sleep = WallClock()
	}
	m := &Machine{cfg: cfg}
	for a := Axis(0); a < NumAxes; a++ {
		ac := cfg.Axes[a]
		drv, err := NewPhaseDriver(pins, sleep, ac.Coils, ac.InvertDir, cfg.StepDelay)
		if err != nil {
			return nil, fmt.Errorf("axis %s: %w", a, err)
		}
		if err := pins.ConfigureInput(ac.LimitPin, ac.InvertLimit); err != nil {
			return nil, fmt.Errorf("axis %s limit pin %d: %w", a, ac.LimitPin, err)
		}
		m.drivers[a] = drv
	}
	m.limits = &pinLimits{pins: pins, cfg: cfg}
	return m, nil
}

// NewMachineWithDrivers builds a machine from pre-built axis drivers and
// limit switches. Used by tests and the simulation backend.
func NewMachineWithDrivers(cfg Config, drivers [NumAxes]AxisDriver, limits LimitSource) *Machine {
	return &Machine{cfg: cfg, drivers: drivers, limits: limits}
}

// pinLimits reads limit switches straight from GPIO inputs.
type pinLimits struct {
	pins PinDriver
	cfg  Config
}

func (l *pinLimits) Triggered(a Axis) bool {
	ac := l.cfg.Axes[a]
	v := l.pins.ReadPin(ac.LimitPin)
	if ac.InvertLimit {
		return !v
	}
	return v
}

// Position returns the current absolute position of an axis in half-steps.
func (m *Machine) Position(a Axis) int64 { return m.state.Position(a) }

// Mode returns the active positioning mode.
func (m *Machine) Mode() Mode { return m.state.Mode() }

// SetMode selects absolute or relative positioning. A mode change alone
// never moves an axis.
func (m *Machine) SetMode(mode Mode) { m.state.SetMode(mode) }

// DisableMotors de-energizes all coils on all axes. It has no
// precondition and may be called repeatedly.
func (m *Machine) DisableMotors() {
	for _, d := range m.drivers {
		d.Disable()
	}
}
