package p3s

// Cycle is an integer count of accuracy cycles, used both as an absolute
// timestamp (the "now" passed to hooks) and as a relative duration (a delay
// or a leftover budget). All clock and cycle arithmetic in the engine is
// this single integer type plus the handful of receiver methods below —
// there is no wall-clock, no fractional cycle, and no per-model epoch:
// every cycle counter (Process leftover, CPUModel.cycle, HWModel.cycle) is
// a Cycle.
type Cycle int64

// Advance adds delta cycles, in place, and returns the receiver for
// chaining.
func (c *Cycle) Advance(delta Cycle) Cycle {
	*c += delta
	return *c
}

// Burn consumes up to budget cycles from the receiver (which must represent
// a remaining delay) and returns how much of budget was actually spent.
// The receiver never goes negative.
func (c *Cycle) Burn(budget Cycle) Cycle {
	if budget >= *c {
		spent := *c
		*c = 0
		return spent
	}
	*c -= budget
	return budget
}
