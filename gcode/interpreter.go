package gcode

import "goplot/core"

// Machine is the motion surface the interpreter drives. core.Machine
// satisfies it; tests substitute fakes.
type Machine interface {
	Move(delta core.Steps)
	Home()
	DisableMotors()
	Position(a core.Axis) int64
	Mode() core.Mode
	SetMode(m core.Mode)
}

// Interpreter validates parsed commands and dispatches them: G0/G1 to
// the motion interpolator, G28 to the homing sequence, mode and power
// toggles to machine state. Codes outside the supported set do nothing;
// the dialect acknowledges everything.
type Interpreter struct {
	m Machine
}

// NewInterpreter returns an interpreter bound to a machine.
func NewInterpreter(m Machine) *Interpreter {
	return &Interpreter{m: m}
}

// Execute runs one command to completion, including any implied motion.
func (in *Interpreter) Execute(cmd *Command) {
	if cmd == nil {
		return
	}
	switch cmd.Letter {
	case 'G':
		in.executeG(cmd)
	case 'M':
		in.executeM(cmd)
	}
}

func (in *Interpreter) executeG(cmd *Command) {
	switch cmd.Number {
	case 0, 1:
		// No feed-rate distinction between G0 and G1 in this dialect.
		in.move(cmd)
	case 21:
		// Units are already steps; accepted for compatibility.
	case 28:
		in.m.Home()
	case 90:
		in.m.SetMode(core.Absolute)
	case 91:
		in.m.SetMode(core.Relative)
	}
}

func (in *Interpreter) executeM(cmd *Command) {
	switch cmd.Number {
	case 84:
		in.m.DisableMotors()
	}
}

var axisLetters = [core.NumAxes]byte{'X', 'Y', 'Z'}

// move translates G0/G1 operands into per-axis displacements. Operand
// values are truncated toward zero; an axis absent from the line
// contributes zero displacement, not a move to zero.
func (in *Interpreter) move(cmd *Command) {
	var delta core.Steps
	for a := core.Axis(0); a < core.NumAxes; a++ {
		letter := axisLetters[a]
		if !cmd.Has(letter) {
			continue
		}
		v := int64(cmd.Arg(letter, 0))
		if in.m.Mode() == core.Absolute {
			delta[a] = v - in.m.Position(a)
		} else {
			delta[a] = v
		}
	}
	in.m.Move(delta)
}
