package core_test

import (
	"testing"
	"time"

	"goplot/core"
	"goplot/sim"
)

func testConfig() core.Config {
	return core.Config{
		Axes: [core.NumAxes]core.AxisConfig{
			core.AxisX: {Coils: [4]core.Pin{2, 3, 4, 5}, InvertDir: true, LimitPin: 14, HomeDir: -1},
			core.AxisY: {Coils: [4]core.Pin{6, 7, 8, 9}, InvertDir: true, LimitPin: 15, HomeDir: 1},
			core.AxisZ: {Coils: [4]core.Pin{10, 11, 12, 13}, LimitPin: 16, HomeDir: -1, Backoff: 750},
		},
		StepDelay:   2 * time.Millisecond,
		HomingDelay: 4 * time.Millisecond,
	}
}

func TestMoveExactPulseCounts(t *testing.T) {
	tests := []core.Steps{
		{10, 0, 0},
		{0, -7, 0},
		{100, 100, 100},
		{17, -5, 3},
		{-80, 1, -33},
		{1, 1000, 2},
	}

	for _, delta := range tests {
		b := sim.NewBench(testConfig(), 1<<40)
		b.Machine.Move(delta)

		for a := core.Axis(0); a < core.NumAxes; a++ {
			want := delta[a]
			if want < 0 {
				want = -want
			}
			if got := int64(b.Axes[a].Count()); got != want {
				t.Errorf("move %v: axis %s issued %d pulses, want %d", delta, a, got, want)
			}
			if b.Axes[a].Net != delta[a] {
				t.Errorf("move %v: axis %s net travel %d, want %d", delta, a, b.Axes[a].Net, delta[a])
			}
			if got := b.Machine.Position(a); got != delta[a] {
				t.Errorf("move %v: axis %s position %d, want %d", delta, a, got, delta[a])
			}
		}
	}
}

// TestMoveBoundedError checks the interpolator property that at every
// point during a move, each axis's cumulative pulse count stays within
// one step of the ideal straight line k*|d|/M.
func TestMoveBoundedError(t *testing.T) {
	deltas := []core.Steps{
		{7, 3, 0},
		{100, 99, 1},
		{-50, 20, -49},
		{2, 1000, 999},
	}

	for _, delta := range deltas {
		b := sim.NewBench(testConfig(), 1<<40)
		b.Machine.Move(delta)

		var longest int64
		var longestAxis core.Axis
		for a := core.Axis(0); a < core.NumAxes; a++ {
			d := delta[a]
			if d < 0 {
				d = -d
			}
			if d > longest {
				longest = d
				longestAxis = a
			}
		}

		// The longest axis pulses once per iteration, so its pulse
		// count marks the iteration index.
		var issued [core.NumAxes]int64
		var k int64
		for _, ev := range b.Trace.Events {
			if ev.Axis == longestAxis {
				k++
			}
			issued[ev.Axis]++
			for a := core.Axis(0); a < core.NumAxes; a++ {
				d := delta[a]
				if d < 0 {
					d = -d
				}
				ideal := float64(k) * float64(d) / float64(longest)
				diff := float64(issued[a]) - ideal
				if diff < -1 || diff > 1 {
					t.Fatalf("move %v: after iteration %d axis %s issued %d pulses, ideal %.2f",
						delta, k, a, issued[a], ideal)
				}
			}
		}
	}
}

func TestMoveZeroDeltaIsNoOp(t *testing.T) {
	b := sim.NewBench(testConfig(), 1<<40)
	b.Machine.Move(core.Steps{})

	for a := core.Axis(0); a < core.NumAxes; a++ {
		if b.Axes[a].Count() != 0 {
			t.Errorf("axis %s pulsed during a zero move", a)
		}
		if b.Machine.Position(a) != 0 {
			t.Errorf("axis %s position changed during a zero move", a)
		}
	}
}

func TestMoveSingleAxisDegenerate(t *testing.T) {
	b := sim.NewBench(testConfig(), 1<<40)
	b.Machine.Move(core.Steps{0, 0, 100})

	if n := b.Axes[core.AxisZ].Count(); n != 100 {
		t.Errorf("Z issued %d pulses, want 100", n)
	}
	if b.Axes[core.AxisX].Count() != 0 || b.Axes[core.AxisY].Count() != 0 {
		t.Errorf("X/Y pulsed during a Z-only move")
	}
}

func TestMoveCommitsPositionsTogether(t *testing.T) {
	b := sim.NewBench(testConfig(), 1<<40)
	b.Machine.Move(core.Steps{5, -3, 8})
	b.Machine.Move(core.Steps{-5, 3, -8})

	for a := core.Axis(0); a < core.NumAxes; a++ {
		if got := b.Machine.Position(a); got != 0 {
			t.Errorf("axis %s position %d after round trip, want 0", a, got)
		}
	}
}
