// Package clock owns tick bookkeeping for a worker, adapted from the
// teacher's clock.Clock (same New/Init shape, minus the RPC surface and the
// continuous-time sub-loop machinery a 1-D discrete CA road has no use for:
// spec.md's road advances in whole ticks, not fractional seconds).
package clock

// Clock tracks a worker's progress through the simulation's discrete ticks.
type Clock struct {
	MaxTime    int // total number of ticks to run (spec.md §3 Configuration: max_time)
	WarmupTime int // ticks whose finishes are excluded from travel-time stats

	Tick int // current tick, starts at 0
}

// New creates a Clock for the given run length and warm-up period.
func New(maxTime, warmupTime int) *Clock {
	c := &Clock{MaxTime: maxTime, WarmupTime: warmupTime}
	c.Init()
	return c
}

// Init resets the clock to tick 0.
func (c *Clock) Init() {
	c.Tick = 0
}

// Advance moves the clock forward by one tick. It mirrors the original's
// increment-then-compare-to-warmup ordering (Simulation.cpp: "this->time++"
// followed by "if (this->time > this->inputs.warmup_time)"): call Advance
// before checking PastWarmup for a finish recorded in the tick that just
// completed.
func (c *Clock) Advance() {
	c.Tick++
}

// Done reports whether the run has reached max_time.
func (c *Clock) Done() bool {
	return c.Tick >= c.MaxTime
}

// PastWarmup reports whether the current tick's finishes should be counted
// in travel-time statistics. Ticks strictly greater than WarmupTime count
// (spec.md §9(c), confirmed against the original's `time > warmup_time`).
func (c *Clock) PastWarmup() bool {
	return c.Tick > c.WarmupTime
}
