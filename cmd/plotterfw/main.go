// Command plotterfw runs the plotter firmware: it speaks the line
// protocol over a serial device (or stdio) and drives the motors through
// GPIO or the built-in simulator.
//
// Usage:
//
//	plotterfw [-config plotter.json] [-device /dev/ttyACM0] [-baud 9600] [-pins gpio|sim]
//
// Pass -device - to serve the protocol over stdin/stdout, which together
// with -pins sim gives a fully host-testable firmware.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"goplot/config"
	"goplot/core"
	"goplot/gcode"
	"goplot/host/serial"
	"goplot/hw"
	"goplot/protocol"
	"goplot/sim"
)

// stdio serves the protocol over the process's own streams.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func main() {
	configPath := flag.String("config", "", "JSON config file (defaults used when empty)")
	device := flag.String("device", "", "serial device, or - for stdio (overrides config)")
	baud := flag.Int("baud", 0, "serial baud rate (overrides config)")
	pins := flag.String("pins", "gpio", "pin backend: gpio or sim")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("plotterfw: %v", err)
		}
	}
	if *device != "" {
		cfg.Device = *device
	}
	if *baud != 0 {
		cfg.Baud = *baud
	}

	mc, err := cfg.Machine()
	if err != nil {
		log.Fatalf("plotterfw: %v", err)
	}

	var machine gcode.Machine
	switch *pins {
	case "sim":
		machine = sim.NewBench(mc, 400).Machine
	case "gpio":
		drv, err := hw.NewDriver()
		if err != nil {
			log.Fatalf("plotterfw: %v", err)
		}
		machine, err = core.NewMachine(mc, drv, core.WallClock())
		if err != nil {
			log.Fatalf("plotterfw: %v", err)
		}
	default:
		log.Fatalf("plotterfw: unknown pin backend %q", *pins)
	}

	var link io.ReadWriter
	if cfg.Device == "-" {
		link = stdio{}
	} else {
		port, err := serial.Open(serial.Config{Device: cfg.Device, Baud: cfg.Baud})
		if err != nil {
			log.Fatalf("plotterfw: %v", err)
		}
		defer port.Close()
		link = port
	}

	log.Printf("plotterfw: serving on %s (pins=%s)", cfg.Device, *pins)
	if err := protocol.NewTransport(link, machine).Run(); err != nil {
		log.Fatalf("plotterfw: %v", err)
	}
}
