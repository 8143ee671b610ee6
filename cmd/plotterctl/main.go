// Command plotterctl is the host-side control tool for the plotter:
// it streams programs, previews drawings, and jogs the axes interactively.
package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Send SendCommand `command:"send" description:"Stream a program to the plotter"`
	Jog  JogCommand  `command:"jog" description:"Drive the axes interactively"`
	View ViewCommand `command:"view" description:"Preview a program as ASCII art"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "plotterctl - host control for the pen plotter"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
