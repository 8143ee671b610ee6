package core

import "time"

// Pin identifies a hardware GPIO line.
type Pin uint32

// PinDriver is the abstract GPIO interface the control core drives.
// Platform-specific implementations (hw, sim) handle actual hardware.
type PinDriver interface {
	// ConfigureOutput configures a pin as a digital output, driven low.
	// Returns an error if the pin is invalid or already claimed.
	ConfigureOutput(pin Pin) error

	// ConfigureInput configures a pin as a digital input, with the
	// internal pull-up enabled when pullUp is set.
	ConfigureInput(pin Pin, pullUp bool) error

	// SetPin drives an output pin high (true) or low (false).
	SetPin(pin Pin, high bool)

	// ReadPin reads the current input pin state.
	ReadPin(pin Pin) bool
}

// Sleeper blocks the control loop between step pulses. Production code
// sleeps on the wall clock; tests inject a no-op so the interpolator and
// homing sequencer run without real delays.
type Sleeper interface {
	Sleep(d time.Duration)
}

// SleepFunc adapts a function to the Sleeper interface.
type SleepFunc func(time.Duration)

func (f SleepFunc) Sleep(d time.Duration) { f(d) }

// WallClock returns a Sleeper backed by time.Sleep.
func WallClock() Sleeper { return SleepFunc(time.Sleep) }
