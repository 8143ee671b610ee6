package gcode

import "testing"

func TestParseBasicCommands(t *testing.T) {
	tests := []struct {
		input  string
		letter byte
		number int
		args   map[byte]float64
	}{
		{
			input:  "G0 X10 Y20",
			letter: 'G',
			number: 0,
			args:   map[byte]float64{'X': 10, 'Y': 20},
		},
		{
			input:  "G1 X100.5 Y-200.25 Z3",
			letter: 'G',
			number: 1,
			args:   map[byte]float64{'X': 100.5, 'Y': -200.25, 'Z': 3},
		},
		{
			input:  "G28",
			letter: 'G',
			number: 28,
			args:   map[byte]float64{},
		},
		{
			input:  "M84",
			letter: 'M',
			number: 84,
			args:   map[byte]float64{},
		},
		{
			input:  "G1 Z-4.9 X2",
			letter: 'G',
			number: 1,
			args:   map[byte]float64{'Z': -4.9, 'X': 2},
		},
		{
			input:  "G90",
			letter: 'G',
			number: 90,
			args:   map[byte]float64{},
		},
	}

	for _, test := range tests {
		cmd := ParseLine(test.input)
		if cmd == nil {
			t.Errorf("got nil command for %q", test.input)
			continue
		}
		if cmd.Letter != test.letter {
			t.Errorf("%q: letter %c, want %c", test.input, cmd.Letter, test.letter)
		}
		if cmd.Number != test.number {
			t.Errorf("%q: number %d, want %d", test.input, cmd.Number, test.number)
		}
		if len(cmd.Args) != len(test.args) {
			t.Errorf("%q: %d operands, want %d", test.input, len(cmd.Args), len(test.args))
		}
		for letter, want := range test.args {
			if !cmd.Has(letter) {
				t.Errorf("%q: missing operand %c", test.input, letter)
			} else if got := cmd.Arg(letter, 0); got != want {
				t.Errorf("%q: %c=%v, want %v", test.input, letter, got, want)
			}
		}
	}
}

func TestParseOperandOrderIndependent(t *testing.T) {
	a := ParseLine("G1 X10 Y20 Z30")
	b := ParseLine("G1 Z30 X10 Y20")

	for _, letter := range []byte{'X', 'Y', 'Z'} {
		if a.Arg(letter, 0) != b.Arg(letter, 0) {
			t.Errorf("operand %c differs with order: %v vs %v",
				letter, a.Arg(letter, 0), b.Arg(letter, 0))
		}
	}
}

func TestParseLowercase(t *testing.T) {
	cmd := ParseLine("g1 x10 y-2.5")
	if !cmd.Is('G', 1) {
		t.Fatalf("got %c%d, want G1", cmd.Letter, cmd.Number)
	}
	if cmd.Arg('X', 0) != 10 || cmd.Arg('Y', 0) != -2.5 {
		t.Errorf("operands X=%v Y=%v, want X=10 Y=-2.5", cmd.Arg('X', 0), cmd.Arg('Y', 0))
	}
}

func TestParseUnrecognized(t *testing.T) {
	tests := []string{
		"T1",
		"hello world",
		"; a comment",
		"G",
		"M",
		"Gfoo",
		"42",
	}

	for _, input := range tests {
		cmd := ParseLine(input)
		if cmd == nil {
			t.Errorf("%q: got nil, want a no-op command", input)
			continue
		}
		if cmd.Letter != 0 {
			t.Errorf("%q: parsed as %c%d, want unrecognized", input, cmd.Letter, cmd.Number)
		}
	}
}

func TestParseUnsupportedCodeStillParses(t *testing.T) {
	// The parser reports any G/M code; the interpreter decides support.
	cmd := ParseLine("G5 X1")
	if !cmd.Is('G', 5) {
		t.Fatalf("got %c%d, want G5", cmd.Letter, cmd.Number)
	}
}

func TestParseEmptyLine(t *testing.T) {
	for _, input := range []string{"", "   ", "\t"} {
		if cmd := ParseLine(input); cmd != nil {
			t.Errorf("%q: got %+v, want nil", input, cmd)
		}
	}
}

func TestParseMalformedOperands(t *testing.T) {
	// A junk operand is skipped, not fatal.
	cmd := ParseLine("G1 X10 Q Y5 #! Z.")
	if !cmd.Is('G', 1) {
		t.Fatalf("got %c%d, want G1", cmd.Letter, cmd.Number)
	}
	if cmd.Arg('X', 0) != 10 || cmd.Arg('Y', 0) != 5 {
		t.Errorf("operands X=%v Y=%v, want X=10 Y=5", cmd.Arg('X', 0), cmd.Arg('Y', 0))
	}
	if cmd.Has('Z') {
		t.Errorf("Z with no digits parsed as %v, want absent", cmd.Arg('Z', 0))
	}
}
