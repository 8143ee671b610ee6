package core_test

import (
	"testing"

	"goplot/core"
	"goplot/sim"
)

func TestHomeSeeksBacksOffAndZeroes(t *testing.T) {
	cfg := testConfig()
	b := sim.NewBench(cfg, 120)

	b.Machine.Home()

	for a := core.Axis(0); a < core.NumAxes; a++ {
		ax := b.Axes[a]
		want := 120 + int64(cfg.Axes[a].Backoff)
		if got := int64(ax.Count()); got != want {
			t.Errorf("axis %s issued %d pulses, want %d (120 seek + %d backoff)",
				a, got, want, cfg.Axes[a].Backoff)
		}
		if got := b.Machine.Position(a); got != 0 {
			t.Errorf("axis %s position %d after homing, want 0", a, got)
		}
		if ax.Disables == 0 {
			t.Errorf("axis %s not de-energized after homing", a)
		}
		for i, d := range ax.Delays {
			if d != cfg.HomingDelay {
				t.Fatalf("axis %s pulse %d at delay %v, want homing rate %v", a, i, d, cfg.HomingDelay)
			}
		}
	}

	// Seek pulses run toward the switch, backoff pulses away from it.
	z := b.Axes[core.AxisZ]
	home := cfg.Axes[core.AxisZ].HomeDir
	for i := 0; i < 120; i++ {
		if z.Pulses[i] != home {
			t.Fatalf("Z seek pulse %d in direction %d, want %d", i, z.Pulses[i], home)
		}
	}
	for i := 120; i < len(z.Pulses); i++ {
		if z.Pulses[i] != -home {
			t.Fatalf("Z backoff pulse %d in direction %d, want %d", i, z.Pulses[i], -home)
		}
	}
}

func TestHomeZBackoffCount(t *testing.T) {
	cfg := testConfig()
	b := sim.NewBench(cfg, 0) // switches already triggered: pure backoff

	b.Machine.Home()

	if n := b.Axes[core.AxisZ].Count(); n != 750 {
		t.Errorf("Z issued %d backoff pulses, want 750", n)
	}
	if n := b.Axes[core.AxisX].Count(); n != 0 {
		t.Errorf("X issued %d pulses with its switch already triggered, want 0", n)
	}
	if n := b.Axes[core.AxisY].Count(); n != 0 {
		t.Errorf("Y issued %d pulses with its switch already triggered, want 0", n)
	}
}

func TestHomeResetsPriorPosition(t *testing.T) {
	cfg := testConfig()
	b := sim.NewBench(cfg, 1<<40)
	b.Machine.Move(core.Steps{40, -25, 10})

	// Let every switch trip immediately so homing completes.
	for a := core.Axis(0); a < core.NumAxes; a++ {
		b.Limits.Switches[a].TripAfter = -(1 << 40)
	}
	b.Machine.Home()

	for a := core.Axis(0); a < core.NumAxes; a++ {
		if got := b.Machine.Position(a); got != 0 {
			t.Errorf("axis %s position %d after homing, want 0", a, got)
		}
	}
}
