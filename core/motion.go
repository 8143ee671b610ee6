package core

// Move executes a coordinated straight-line move of the given per-axis
// displacements. The interpolator accumulates per-axis error in units of
// 1/M, where M is the largest displacement magnitude: every iteration
// each accumulator grows by |delta|, and crossing M issues one half-step
// pulse in the sign direction. Each axis therefore receives exactly
// |delta| pulses, spread evenly across the M iterations, with the
// cumulative pulse count never more than one step from the ideal line.
//
// The target positions are committed together once the last pulse has
// been issued; a move with zero displacement on every axis returns
// without stepping.
func (m *Machine) Move(delta Steps) {
	var longest int64
	for _, d := range delta {
		if abs64(d) > longest {
			longest = abs64(d)
		}
	}
	if longest == 0 {
		return
	}

	var acc Steps
	for i := int64(0); i < longest; i++ {
		for a := Axis(0); a < NumAxes; a++ {
			acc[a] += abs64(delta[a])
			if acc[a] >= longest {
				acc[a] -= longest
				m.drivers[a].Step(sign64(delta[a]))
			}
		}
	}
	m.state.commit(delta)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign64(v int64) int {
	if v < 0 {
		return -1
	}
	return 1
}
