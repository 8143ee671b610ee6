// Package protocol implements the plotter's line-oriented wire protocol:
// newline-delimited requests, a single Ready banner at power-up, and one
// OK token per completed request. There is no error channel; malformed
// and unsupported input degrades to an acknowledged no-op.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"goplot/gcode"
)

const (
	// Ready is emitted exactly once before the first command is read.
	Ready = "Ready"
	// OK acknowledges every non-empty request, including no-ops, once
	// the request has fully completed.
	OK = "OK"
)

// Transport reads one request line at a time, executes it to completion,
// and writes the acknowledgment. It is strictly sequential: a long move
// or a homing seek blocks the link, including the acknowledgment, for
// its entire duration. One in-flight command is the protocol contract.
type Transport struct {
	scanner *bufio.Scanner
	w       io.Writer
	interp  *gcode.Interpreter
}

// maxLineLen caps a single request line. Real programs stay under a
// hundred bytes; the headroom keeps line noise from erroring out the
// scanner and killing the link.
const maxLineLen = 1 << 20

// NewTransport wraps a serial stream (or any ReadWriter) around a machine.
func NewTransport(rw io.ReadWriter, m gcode.Machine) *Transport {
	scanner := bufio.NewScanner(rw)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLen)
	return &Transport{
		scanner: scanner,
		w:       rw,
		interp:  gcode.NewInterpreter(m),
	}
}

// Run announces readiness, then serves requests until the link closes.
// Zero-length lines are dropped without acknowledgment.
func (t *Transport) Run() error {
	if err := t.writeLine(Ready); err != nil {
		return err
	}
	for t.scanner.Scan() {
		line := strings.TrimSpace(t.scanner.Text())
		if line == "" {
			continue
		}
		t.interp.Execute(gcode.ParseLine(line))
		if err := t.writeLine(OK); err != nil {
			return err
		}
	}
	return t.scanner.Err()
}

func (t *Transport) writeLine(s string) error {
	if _, err := fmt.Fprintf(t.w, "%s\n", s); err != nil {
		return fmt.Errorf("write %q: %w", s, err)
	}
	return nil
}
