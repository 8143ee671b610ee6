// Package gcode parses and executes the plotter's restricted command
// dialect: G/M codes with optional per-axis operands, all coordinates in
// half-steps. The dialect is permissive the way hobby G-code consumers
// are: anything unrecognized is acknowledged and ignored rather than
// rejected.
package gcode

import "strconv"

// Command is one parsed line: a code letter ('G' or 'M', zero for
// unrecognized lines), a code number and the operands that followed.
type Command struct {
	Letter byte
	Number int
	Args   map[byte]float64
}

// ParseLine parses a single trimmed line. Empty input yields nil; any
// other text yields a Command, with Letter left zero when the line does
// not start with a G or M code so the caller can treat it as a no-op.
func ParseLine(line string) *Command {
	i := skipSpace(line, 0)
	if i >= len(line) {
		return nil
	}

	cmd := &Command{Args: make(map[byte]float64)}

	c := toUpper(line[i])
	if c != 'G' && c != 'M' {
		return cmd
	}
	num, j := parseUint(line, i+1)
	if j == i+1 {
		// Code letter without a number.
		return cmd
	}
	cmd.Letter = c
	cmd.Number = num
	i = j

	for i < len(line) {
		i = skipSpace(line, i)
		if i >= len(line) {
			break
		}
		c := toUpper(line[i])
		if !isLetter(c) {
			i++
			continue
		}
		v, j := parseFloat(line, i+1)
		if j == i+1 {
			i++
			continue
		}
		cmd.Args[c] = v
		i = j
	}

	return cmd
}

// Has reports whether an operand letter is present.
func (c *Command) Has(letter byte) bool {
	_, ok := c.Args[letter]
	return ok
}

// Arg returns an operand value, or def when the letter is absent.
func (c *Command) Arg(letter byte, def float64) float64 {
	if v, ok := c.Args[letter]; ok {
		return v
	}
	return def
}

// Is reports whether the command is the given code, e.g. Is('G', 28).
func (c *Command) Is(letter byte, number int) bool {
	return c.Letter == letter && c.Number == number
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	return pos
}

// parseUint scans an unsigned decimal at pos. It returns the value and
// the position after the last digit, or pos unchanged when no digits
// were found.
func parseUint(s string, pos int) (int, int) {
	j := pos
	v := 0
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		v = v*10 + int(s[j]-'0')
		j++
	}
	if j == pos {
		return 0, pos
	}
	return v, j
}

// parseFloat scans a decimal number (sign and fractional part allowed)
// at pos. It returns pos unchanged when no valid number starts there.
func parseFloat(s string, pos int) (float64, int) {
	j := pos
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	digits := false
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
		digits = true
	}
	if j < len(s) && s[j] == '.' {
		j++
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			digits = true
		}
	}
	if !digits {
		return 0, pos
	}
	v, err := strconv.ParseFloat(s[pos:j], 64)
	if err != nil {
		return 0, pos
	}
	return v, j
}

func isLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
