package core

// Home runs the limit-switch homing sequence, the only way to establish
// an absolute origin after power-up. Each axis in X, Y, Z order is
// driven toward its switch at the homing rate until the switch triggers,
// then each axis with a configured backoff is driven that many
// half-steps away from the switch (the Z pen axis parks at the paper
// surface instead of against the hard stop). Finally all positions are
// zeroed and the coils de-energized.
//
// The sequence runs to completion and cannot be aborted. Seeking carries
// no step budget: a switch that never triggers blocks forever, and only
// physical intervention recovers the machine.
func (m *Machine) Home() {
	for a := Axis(0); a < NumAxes; a++ {
		m.seekLimit(a)
	}
	for a := Axis(0); a < NumAxes; a++ {
		m.backOff(a)
	}
	m.state.zero()
	m.DisableMotors()
}

// seekLimit pulses one axis toward its switch until it reads triggered.
// An already-triggered switch seeks zero steps.
func (m *Machine) seekLimit(a Axis) {
	ac := m.cfg.Axes[a]
	for !m.limits.Triggered(a) {
		m.drivers[a].StepAt(ac.HomeDir, m.cfg.HomingDelay)
	}
}

// backOff unconditionally drives an axis its configured number of
// half-steps away from the switch, still at the homing rate.
func (m *Machine) backOff(a Axis) {
	ac := m.cfg.Axes[a]
	for i := 0; i < ac.Backoff; i++ {
		m.drivers[a].StepAt(-ac.HomeDir, m.cfg.HomingDelay)
	}
}
