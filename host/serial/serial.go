// Package serial opens the plotter's serial link.
package serial

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Port is the open link to the plotter.
type Port interface {
	io.ReadWriteCloser
}

// Config names the device and line settings.
type Config struct {
	Device      string
	Baud        int
	ReadTimeout time.Duration
}

// Open connects to the plotter over a serial device.
func Open(cfg Config) (Port, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}
	return port, nil
}
