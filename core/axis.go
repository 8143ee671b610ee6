package core

// Axis identifies one of the three motors.
type Axis int

// The plotter's axes: X and Y carry the pen across the paper, Z lifts it.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// NumAxes is the number of controlled axes.
const NumAxes = 3

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "?"
}

// Mode selects how incoming move operands are interpreted. It never
// affects stored positions, only the translation of operands to
// displacements.
type Mode int

const (
	// Absolute treats operands as target positions (G90, the default).
	Absolute Mode = iota
	// Relative treats operands as offsets from the current position (G91).
	Relative
)

// Steps holds a per-axis count of half-steps, signed.
type Steps [NumAxes]int64

// AxisConfig describes the fixed wiring of one axis. It is selected once
// at construction; all motion code is data-driven from it.
type AxisConfig struct {
	Coils       [4]Pin // ordered coil outputs, half-step table order
	InvertDir   bool   // flip pulse direction for reversed wiring (X, Y)
	LimitPin    Pin    // limit switch input
	InvertLimit bool   // switch reads low when triggered
	HomeDir     int    // +1 or -1, the direction that approaches the switch
	Backoff     int    // half-steps driven away from the switch after homing
}

// State tracks the absolute position of each axis, in half-steps taken
// since the last homing, and the active positioning mode. It is mutated
// only by the single control thread.
type State struct {
	pos  Steps
	mode Mode
}

// Position returns the current absolute position of an axis.
func (s *State) Position(a Axis) int64 { return s.pos[a] }

// Mode returns the active positioning mode.
func (s *State) Mode() Mode { return s.mode }

// SetMode selects absolute or relative positioning.
func (s *State) SetMode(m Mode) { s.mode = m }

// commit applies a completed move's displacement to every axis at once,
// so no partial-axis update is observable between commands.
func (s *State) commit(delta Steps) {
	for a := range s.pos {
		s.pos[a] += delta[a]
	}
}

// zero resets all positions to the homed origin.
func (s *State) zero() { s.pos = Steps{} }
