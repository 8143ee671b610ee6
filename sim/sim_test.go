package sim

import (
	"testing"

	"goplot/core"
)

func TestPinsRejectDoubleClaim(t *testing.T) {
	p := NewPins()
	if err := p.ConfigureOutput(5); err != nil {
		t.Fatalf("ConfigureOutput: %v", err)
	}
	if err := p.ConfigureOutput(5); err == nil {
		t.Errorf("reclaiming output pin should fail")
	}
	if err := p.ConfigureInput(5, true); err == nil {
		t.Errorf("claiming output pin as input should fail")
	}
}

func TestPinsRecordLevels(t *testing.T) {
	p := NewPins()
	if err := p.ConfigureOutput(7); err != nil {
		t.Fatalf("ConfigureOutput: %v", err)
	}
	if p.Level(7) {
		t.Errorf("fresh output should idle low")
	}
	p.SetPin(7, true)
	if !p.ReadPin(7) {
		t.Errorf("level not recorded")
	}
}

func TestSwitchTripsAfterTravel(t *testing.T) {
	ax := &Axis{ID: core.AxisZ}
	sw := &Switch{Axis: ax, Dir: -1, TripAfter: 3}

	for i := 0; i < 2; i++ {
		ax.Step(-1)
	}
	if sw.Triggered() {
		t.Errorf("switch tripped after 2 steps, want 3")
	}
	ax.Step(-1)
	if !sw.Triggered() {
		t.Errorf("switch did not trip after 3 steps")
	}
	ax.Step(+1)
	if sw.Triggered() {
		t.Errorf("switch still tripped after backing off")
	}
}

func TestSwitchAlreadyTripped(t *testing.T) {
	ax := &Axis{ID: core.AxisX}
	sw := &Switch{Axis: ax, Dir: 1, TripAfter: 0}
	if !sw.Triggered() {
		t.Errorf("zero-travel switch should start tripped")
	}
}
