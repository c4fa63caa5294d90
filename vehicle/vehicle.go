// Package vehicle implements the pure per-vehicle cellular-automaton rule
// (spec.md §4.1): it evaluates gaps, lane-switch decisions, and lane moves
// against a small view interface, with no knowledge of partitions, workers,
// or the network — spec.md §9's design note ("treat ghost positions as
// first-class per-tick inputs to updateGaps; do not let the rule evaluator
// reach into neighbor state") is the reason for that boundary.
package vehicle

// Vehicle holds one car's kinematic state and behavioral parameters
// (spec.md §3). Gaps are recomputed every tick by updateGaps and are not
// meaningful across ticks.
type Vehicle struct {
	ID       int
	Position int
	Speed    int
	Lane     int // 0 or 1

	MaxSpeed          int
	LookForward       int
	LookOtherForward  int
	LookOtherBackward int
	ProbSlowDown      float64
	ProbChange        float64
	TimeOnRoad        int

	GapForward       int
	GapOtherForward  int
	GapOtherBackward int

	index int // arena slot, see container.Indexed
}

// Index and SetIndex implement container.Indexed so a Partition's arena can
// own Vehicles without any package holding a second reference to them.
func (v *Vehicle) Index() int      { return v.index }
func (v *Vehicle) SetIndex(i int)  { v.index = i }

// New creates a Vehicle at the given position and lane with the supplied
// behavioral parameters. Speed starts at 0 and TimeOnRoad at 0, matching the
// original Vehicle constructor (Vehicle.h / the C++ Simulation's spawn path).
func New(id, position, lane int, maxSpeed, lookForward, lookOtherForward, lookOtherBackward int, probSlowDown, probChange float64) *Vehicle {
	return &Vehicle{
		ID:                id,
		Position:          position,
		Lane:              lane,
		MaxSpeed:          maxSpeed,
		LookForward:       lookForward,
		LookOtherForward:  lookOtherForward,
		LookOtherBackward: lookOtherBackward,
		ProbSlowDown:      probSlowDown,
		ProbChange:        probChange,
	}
}
