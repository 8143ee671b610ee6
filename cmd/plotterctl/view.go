package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"goplot/host/preview"
)

type ViewCommand struct {
	Width  int `long:"width" default:"78" description:"Render width in characters"`
	Height int `long:"height" default:"36" description:"Render height in characters"`
	Args   struct {
		File string `positional-arg-name:"program.gcode" required:"true"`
	} `positional-args:"true"`
}

func (c *ViewCommand) Execute(args []string) error {
	f, err := os.Open(c.Args.File)
	if err != nil {
		return err
	}
	defer f.Close()

	d, err := preview.Parse(f)
	if err != nil {
		return err
	}
	if len(d.Segments) == 0 {
		fmt.Println("no pen-down moves found")
		return nil
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))
	fmt.Println(border.Render(strings.Join(d.Render(c.Width, c.Height), "\n")))
	fmt.Printf("%d strokes, bed (%d,%d) to (%d,%d)\n",
		len(d.Segments), d.MinX, d.MinY, d.MaxX, d.MaxY)
	return nil
}
