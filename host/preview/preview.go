// Package preview extracts the pen path from a plotter program and
// renders it as ASCII art, so a drawing can be checked before committing
// the plotter to it. A move draws when it ends with Z at or below zero,
// so a line that lowers the pen while moving counts as a stroke.
package preview

import (
	"bufio"
	"io"

	"goplot/gcode"
)

// Point is a position on the bed in half-steps.
type Point struct {
	X, Y int64
}

// Segment is one pen-down stroke.
type Segment struct {
	From, To Point
}

// Drawing is the extracted pen path with its bounding box.
type Drawing struct {
	Segments               []Segment
	MinX, MinY, MaxX, MaxY int64
}

// Parse walks a program and collects every XY move made with the pen
// down. It tracks absolute and relative positioning the same way the
// plotter does, starting at the origin in absolute mode.
func Parse(r io.Reader) (*Drawing, error) {
	d := &Drawing{}
	var x, y, z int64
	absolute := true

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		cmd := gcode.ParseLine(sc.Text())
		if cmd == nil {
			continue
		}
		switch {
		case cmd.Is('G', 90):
			absolute = true
		case cmd.Is('G', 91):
			absolute = false
		case cmd.Is('G', 28):
			x, y, z = 0, 0, 0
		case cmd.Is('G', 0) || cmd.Is('G', 1):
			nx, ny, nz := x, y, z
			if absolute {
				if cmd.Has('X') {
					nx = int64(cmd.Arg('X', 0))
				}
				if cmd.Has('Y') {
					ny = int64(cmd.Arg('Y', 0))
				}
				if cmd.Has('Z') {
					nz = int64(cmd.Arg('Z', 0))
				}
			} else {
				nx += int64(cmd.Arg('X', 0))
				ny += int64(cmd.Arg('Y', 0))
				nz += int64(cmd.Arg('Z', 0))
			}
			if nz <= 0 && (nx != x || ny != y) {
				seg := Segment{From: Point{x, y}, To: Point{nx, ny}}
				d.Segments = append(d.Segments, seg)
				d.expandSegment(seg)
			}
			x, y, z = nx, ny, nz
		}
	}
	return d, sc.Err()
}

func (d *Drawing) expandSegment(seg Segment) {
	if len(d.Segments) == 1 {
		d.MinX, d.MaxX = seg.From.X, seg.From.X
		d.MinY, d.MaxY = seg.From.Y, seg.From.Y
	}
	d.expandPoint(seg.From)
	d.expandPoint(seg.To)
}

func (d *Drawing) expandPoint(p Point) {
	if p.X < d.MinX {
		d.MinX = p.X
	}
	if p.X > d.MaxX {
		d.MaxX = p.X
	}
	if p.Y < d.MinY {
		d.MinY = p.Y
	}
	if p.Y > d.MaxY {
		d.MaxY = p.Y
	}
}

// Render rasterizes the drawing onto a w by h character grid. Y grows
// upward on the bed, so rows are flipped for terminal output.
func (d *Drawing) Render(w, h int) []string {
	grid := make([][]byte, h)
	for i := range grid {
		row := make([]byte, w)
		for j := range row {
			row[j] = ' '
		}
		grid[i] = row
	}
	if len(d.Segments) == 0 {
		return rows(grid)
	}

	spanX := d.MaxX - d.MinX
	spanY := d.MaxY - d.MinY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	plot := func(p Point) (int, int) {
		cx := int((p.X - d.MinX) * int64(w-1) / spanX)
		cy := int((p.Y - d.MinY) * int64(h-1) / spanY)
		return cx, h - 1 - cy
	}

	for _, seg := range d.Segments {
		x0, y0 := plot(seg.From)
		x1, y1 := plot(seg.To)
		line(grid, x0, y0, x1, y1)
	}
	return rows(grid)
}

// line marks cells along a segment with a simple stepped walk.
func line(grid [][]byte, x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		grid[y0][x0] = '#'
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		grid[y][x] = '#'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func rows(grid [][]byte) []string {
	out := make([]string, len(grid))
	for i, row := range grid {
		out[i] = string(row)
	}
	return out
}
