package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"goplot/host/sender"
	"goplot/host/serial"
)

type SendCommand struct {
	Device string `long:"device" short:"d" default:"/dev/ttyACM0" description:"Serial device"`
	Baud   int    `long:"baud" short:"b" default:"9600" description:"Baud rate"`
	Args   struct {
		File string `positional-arg-name:"program.gcode" required:"true"`
	} `positional-args:"true"`
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

func (c *SendCommand) Execute(args []string) error {
	data, err := os.ReadFile(c.Args.File)
	if err != nil {
		return err
	}
	lines := strings.Split(string(data), "\n")

	total := 0
	for _, line := range lines {
		if sender.Sendable(line) {
			total++
		}
	}
	if total == 0 {
		return fmt.Errorf("%s contains no commands", c.Args.File)
	}

	port, err := serial.Open(serial.Config{Device: c.Device, Baud: c.Baud})
	if err != nil {
		return err
	}
	defer port.Close()

	s := sender.New(port)
	fmt.Println(dimStyle.Render("waiting for plotter..."))
	if err := s.WaitReady(10 * time.Second); err != nil {
		return err
	}

	est := sender.EstimateAll(lines)
	fmt.Printf("%s: %d commands, about %s\n",
		c.Args.File, total, est.Round(time.Second))

	start := time.Now()
	sent := 0
	err = s.SendAll(lines, func(i int, line string) {
		sent++
		fmt.Printf("\r%s %s",
			okStyle.Render(fmt.Sprintf("[%d/%d]", sent, total)),
			dimStyle.Render(strings.TrimSpace(line)))
	})
	fmt.Println()
	if err != nil {
		fmt.Println(warnStyle.Render("aborted, pen may still be down"))
		return err
	}

	fmt.Println(okStyle.Render(fmt.Sprintf("done in %s", time.Since(start).Round(time.Second))))
	return nil
}
