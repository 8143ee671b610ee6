// Package sender streams a program to the plotter one line at a time,
// waiting for each acknowledgement before sending the next. Per-line
// timeouts are derived from the plotter's fixed half-step rate so a long
// travel move is given time to finish while a dead link still fails fast.
package sender

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"goplot/gcode"
	"goplot/protocol"
)

const (
	// stepTime is the plotter's per-half-step delay during moves.
	stepTime = 2 * time.Millisecond

	baseTimeout = 3 * time.Second
	minTimeout  = 5 * time.Second
	maxTimeout  = 2 * time.Minute

	// homingTimeout covers a G28 run: homing has no step budget, so no
	// estimate can be derived from the line itself. Seeking three axes
	// at the reduced rate plus the pen backoff takes several seconds on
	// a small bed.
	homingTimeout = 30 * time.Second
)

// ErrNoResponse is returned when the plotter stops answering.
var ErrNoResponse = errors.New("no response from plotter")

// Sender drives the lockstep line protocol over an open link.
type Sender struct {
	w     io.Writer
	lines chan string
	errs  chan error

	// timeout is LineTimeout in production; tests shorten it.
	timeout func(line string) time.Duration

	// dead is set after a timeout. The plotter may still complete the
	// command and emit a late acknowledgement, which the next Send
	// would misread as its own; the link has to be reopened.
	dead error
}

// New starts reading responses from the link.
func New(rw io.ReadWriter) *Sender {
	s := &Sender{
		w:       rw,
		lines:   make(chan string),
		errs:    make(chan error, 1),
		timeout: LineTimeout,
	}
	go s.read(rw)
	return s
}

func (s *Sender) read(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		s.lines <- line
	}
	if err := sc.Err(); err != nil {
		s.errs <- err
		return
	}
	s.errs <- io.EOF
}

// WaitReady consumes boot noise until the plotter announces itself.
func (s *Sender) WaitReady(timeout time.Duration) error {
	deadline := time.After(timeout)
	for {
		select {
		case line := <-s.lines:
			if line == protocol.Ready {
				return nil
			}
		case err := <-s.errs:
			return fmt.Errorf("waiting for plotter: %w", err)
		case <-deadline:
			return fmt.Errorf("waiting for plotter: %w", ErrNoResponse)
		}
	}
}

// Send writes one line and waits for its acknowledgement. After a
// timeout the sender refuses further sends: a late acknowledgement for
// the timed-out line cannot be told apart from the next line's.
func (s *Sender) Send(line string) error {
	if s.dead != nil {
		return fmt.Errorf("send %q: link desynchronized: %w", line, s.dead)
	}
	if _, err := fmt.Fprintf(s.w, "%s\n", line); err != nil {
		return fmt.Errorf("send %q: %w", line, err)
	}
	select {
	case resp := <-s.lines:
		if resp != protocol.OK {
			return fmt.Errorf("send %q: unexpected response %q", line, resp)
		}
		return nil
	case err := <-s.errs:
		return fmt.Errorf("send %q: %w", line, err)
	case <-time.After(s.timeout(line)):
		s.dead = ErrNoResponse
		return fmt.Errorf("send %q: %w after %v", line, ErrNoResponse, s.timeout(line))
	}
}

// SendAll streams every sendable line in order, reporting progress after
// each acknowledgement.
func (s *Sender) SendAll(lines []string, progress func(i int, line string)) error {
	for i, line := range lines {
		if !Sendable(line) {
			continue
		}
		if err := s.Send(strings.TrimSpace(line)); err != nil {
			return err
		}
		if progress != nil {
			progress(i, line)
		}
	}
	return nil
}

// Sendable reports whether a program line should go over the wire.
// Blank lines and comment lines are skipped host-side.
func Sendable(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && !strings.HasPrefix(line, ";")
}

// Estimate predicts how long the plotter will spend executing a line.
// Moves take the longest axis displacement times the half-step delay;
// everything else is treated as near-instant.
func Estimate(line string) time.Duration {
	cmd := gcode.ParseLine(line)
	if cmd == nil || !(cmd.Is('G', 0) || cmd.Is('G', 1)) {
		return 100 * time.Millisecond
	}
	var longest int64
	for _, letter := range []byte{'X', 'Y', 'Z'} {
		v := int64(cmd.Arg(letter, 0))
		if v < 0 {
			v = -v
		}
		if v > longest {
			longest = v
		}
	}
	return time.Duration(longest) * stepTime
}

// EstimateAll sums the estimates for every sendable line.
func EstimateAll(lines []string) time.Duration {
	var total time.Duration
	for _, line := range lines {
		if Sendable(line) {
			total += Estimate(line)
		}
	}
	return total
}

// LineTimeout is the acknowledgement deadline for a line: the estimate
// plus a 150% margin and a fixed base, clamped to a sane range. G28 gets
// a fixed homing allowance instead, since its duration depends on where
// the axes happen to be rather than on anything in the line.
func LineTimeout(line string) time.Duration {
	if cmd := gcode.ParseLine(line); cmd != nil && cmd.Is('G', 28) {
		return homingTimeout
	}
	est := Estimate(line)
	timeout := est + est*3/2 + baseTimeout
	if timeout < minTimeout {
		return minTimeout
	}
	if timeout > maxTimeout {
		return maxTimeout
	}
	return timeout
}
