package vehicle

import (
	"github.com/samber/lo"

	"github.com/fib-lab/ca-traffic-sim/randengine"
)

// GapLookup is the partition-local view the rule evaluator scans against.
// A Partition implements it; the rule evaluator never reaches past it into
// neighbor state directly (spec.md §9) — cross-partition information only
// enters through the first/last ghost parameters below.
type GapLookup interface {
	// ScanForward returns the nearest occupied position strictly ahead of
	// from on lane, within from+maxDistance, and whether one was found.
	ScanForward(lane, from, maxDistance int) (blockerPos int, found bool)
	// ScanBackward returns the nearest occupied position strictly behind
	// from on lane, within from-maxDistance, and whether one was found.
	ScanBackward(lane, from, maxDistance int) (blockerPos int, found bool)
	// Occupied reports whether lane has a vehicle at pos.
	Occupied(lane, pos int) bool
	RoadStart() int
	RoadEnd() int
}

// forwardGap computes the capped forward gap on lane starting from pos,
// falling back to the downstream ghost position when the lookup runs off
// the end of the partition (spec.md §4.1 "Near the downstream boundary").
func forwardGap(view GapLookup, lane, pos, cap int, ghost int) int {
	if cap <= 0 {
		return 0
	}
	if blocker, found := view.ScanForward(lane, pos, cap); found {
		return lo.Clamp(blocker-pos-1, 0, cap)
	}
	if pos+cap > view.RoadEnd() {
		if ghost == -1 {
			return cap
		}
		return lo.Clamp(ghost-pos-1, 0, cap)
	}
	return cap
}

// backwardGap is forwardGap's mirror image for upstream lookups, falling
// back to the upstream ghost position (spec.md §4.1 "Near the upstream
// boundary... symmetric with first_vehicles").
func backwardGap(view GapLookup, lane, pos, cap int, ghost int) int {
	if cap <= 0 {
		return 0
	}
	if blocker, found := view.ScanBackward(lane, pos, cap); found {
		return lo.Clamp(pos-blocker-1, 0, cap)
	}
	if pos-cap < view.RoadStart() {
		if ghost == -1 {
			return cap
		}
		return lo.Clamp(pos-ghost-1, 0, cap)
	}
	return cap
}

// UpdateGaps computes v's three derived gaps for this tick (spec.md §4.1
// updateGaps). first and last are the per-lane ghost positions from Phase A:
// first[lane] is the tail-most vehicle of the upstream neighbor (or -1),
// last[lane] is the head-most vehicle of the downstream neighbor (or -1).
func UpdateGaps(v *Vehicle, view GapLookup, first, last [2]int) {
	other := 1 - v.Lane
	v.GapForward = forwardGap(view, v.Lane, v.Position, v.LookForward, last[v.Lane])
	v.GapOtherForward = forwardGap(view, other, v.Position, v.LookOtherForward, last[other])
	v.GapOtherBackward = backwardGap(view, other, v.Position, v.LookOtherBackward, first[other])
}

// PerformLaneSwitch decides whether v should move to the opposite lane this
// tick (spec.md §4.1 performLaneSwitch). It does not mutate v.Lane or touch
// lane storage — the caller (Partition) claims the target cell atomically
// and applies the switch, since two vehicles evaluating in the same phase
// must not both win the same target cell (spec.md §4.1 tie-breaking note).
func PerformLaneSwitch(v *Vehicle, view GapLookup, rng *randengine.Engine) bool {
	desiredSpeed := v.Speed + 1
	if desiredSpeed > v.MaxSpeed {
		desiredSpeed = v.MaxSpeed
	}
	insufficientGap := v.GapForward < desiredSpeed
	betterOtherLane := v.GapOtherForward > v.GapForward
	safeToMerge := v.GapOtherBackward >= v.LookOtherBackward
	if !(insufficientGap && betterOtherLane && safeToMerge) {
		return false
	}
	other := 1 - v.Lane
	if view.Occupied(other, v.Position) {
		return false
	}
	return rng.PTrue(v.ProbChange)
}

// PerformLaneMove applies the Nagel-Schreckenberg step (spec.md §4.1
// performLaneMove): accelerate, brake to the gap, randomize, advance. It
// returns the travel time if v exits the global road this tick (position
// exceeds globalLength), or 0 otherwise.
func PerformLaneMove(v *Vehicle, rng *randengine.Engine, globalLength int) int {
	v.Speed++
	if v.Speed > v.MaxSpeed {
		v.Speed = v.MaxSpeed
	}
	if v.Speed > v.GapForward {
		v.Speed = v.GapForward
	}
	if rng.PTrue(v.ProbSlowDown) {
		v.Speed--
		if v.Speed < 0 {
			v.Speed = 0
		}
	}
	v.Position += v.Speed
	v.TimeOnRoad++
	if v.Position > globalLength {
		return v.TimeOnRoad
	}
	return 0
}
