// Package hw drives real GPIO pins through periph.io. Pin numbers in the
// configuration are Broadcom-style GPIO numbers resolved by name at
// configure time, so the same config works on any host periph supports.
package hw

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"goplot/core"
)

// Driver is a core.PinDriver backed by the host's GPIO controller.
type Driver struct {
	pins map[core.Pin]gpio.PinIO
}

// NewDriver initializes the host's peripheral drivers.
func NewDriver() (*Driver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init gpio host: %w", err)
	}
	return &Driver{pins: make(map[core.Pin]gpio.PinIO)}, nil
}

func (d *Driver) lookup(pin core.Pin) (gpio.PinIO, error) {
	name := fmt.Sprintf("GPIO%d", pin)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no such pin %s", name)
	}
	d.pins[pin] = p
	return p, nil
}

// ConfigureOutput claims a pin as an output, driven low.
func (d *Driver) ConfigureOutput(pin core.Pin) error {
	p, err := d.lookup(pin)
	if err != nil {
		return err
	}
	if err := p.Out(gpio.Low); err != nil {
		return fmt.Errorf("configure %s as output: %w", p, err)
	}
	return nil
}

// ConfigureInput claims a pin as an input with the requested pull.
func (d *Driver) ConfigureInput(pin core.Pin, pullUp bool) error {
	p, err := d.lookup(pin)
	if err != nil {
		return err
	}
	pull := gpio.PullDown
	if pullUp {
		pull = gpio.PullUp
	}
	if err := p.In(pull, gpio.NoEdge); err != nil {
		return fmt.Errorf("configure %s as input: %w", p, err)
	}
	return nil
}

// SetPin drives an output pin. The pin must have been configured first.
func (d *Driver) SetPin(pin core.Pin, high bool) {
	if p, ok := d.pins[pin]; ok {
		_ = p.Out(gpio.Level(high))
	}
}

// ReadPin samples a pin's level.
func (d *Driver) ReadPin(pin core.Pin) bool {
	p, ok := d.pins[pin]
	if !ok {
		return false
	}
	return p.Read() == gpio.High
}
