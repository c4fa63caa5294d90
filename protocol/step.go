// Package protocol is the per-tick step orchestrator (spec.md §4.3, THE
// CORE): ghost exchange, the two-sweep local update, the multi-hop
// hand-off, and worker 0's spawn — everything between one barrier and the
// next.
package protocol

import (
	"github.com/fib-lab/ca-traffic-sim/clock"
	"github.com/fib-lab/ca-traffic-sim/neighbor"
	"github.com/fib-lab/ca-traffic-sim/partition"
	"github.com/fib-lab/ca-traffic-sim/randengine"
	"github.com/fib-lab/ca-traffic-sim/stats"
	"github.com/fib-lab/ca-traffic-sim/vehicle"
)

// empty is the ghost sentinel for "no vehicle" (spec.md §3 Ghost info).
const empty = -1

// ExchangeGhosts runs Phase A (spec.md §4.3): it returns the ghost pair
// this worker's updateGaps should use this tick — firstVehicles (tail-most
// vehicle of the upstream neighbor, per lane) and lastVehicles (head-most
// vehicle of the downstream neighbor, per lane). Steps run in the order
// the spec fixes (receive before computing the dependent send) so an
// empty chain of workers transparently forwards the nearest populated
// neighbor's boundary vehicle.
func ExchangeGhosts(p *partition.Partition, link *neighbor.Link) (firstVehicles, lastVehicles [2]int) {
	lastVehicles = [2]int{empty, empty}
	if p.HasNext() {
		lastVehicles = link.ReceiveLastVehicles()
	}
	if p.HasPrev() {
		_, ownLast := p.Road.FirstLast()
		exposed := ownLast
		for lane := 0; lane < 2; lane++ {
			if exposed[lane] == empty {
				exposed[lane] = lastVehicles[lane]
			}
		}
		link.SendLastVehicles(exposed)
	}

	firstVehicles = [2]int{empty, empty}
	if p.HasPrev() {
		firstVehicles = link.ReceiveFirstVehicles()
	}
	if p.HasNext() {
		ownFirst, _ := p.Road.FirstLast()
		exposed := ownFirst
		for lane := 0; lane < 2; lane++ {
			if exposed[lane] == empty {
				exposed[lane] = firstVehicles[lane]
			}
		}
		link.SendFirstVehicles(exposed)
	}
	return firstVehicles, lastVehicles
}

// LocalUpdate runs Phase B (spec.md §4.3): two full sweeps over the
// partition's owned vehicles — lane switch, then lane move — each
// preceded by a gap recomputation since lane assignments may have
// changed. Vehicles that exit the global road are detached and, on the
// last worker, folded into stat (subject to warm-up filtering, spec.md
// §9(c)).
func LocalUpdate(p *partition.Partition, firstVehicles, lastVehicles [2]int, rng *randengine.Engine, globalLength int, isLast bool, clk *clock.Clock, stat *stats.Statistic) {
	// Snapshot the owned set before either sweep: Detach below commits the
	// arena's swap-fill removal (container.Arena.Prepare) mid-sweep, which
	// would otherwise overwrite live slice positions out from under a
	// range over p.Vehicles() directly.
	sweep := append([]*vehicle.Vehicle(nil), p.Vehicles()...)

	for _, v := range sweep {
		vehicle.UpdateGaps(v, p, firstVehicles, lastVehicles)
		if vehicle.PerformLaneSwitch(v, p, rng) {
			target := 1 - v.Lane
			if err := p.MoveLane(v, target); err != nil {
				continue
			}
		}
	}

	for _, v := range sweep {
		vehicle.UpdateGaps(v, p, firstVehicles, lastVehicles)
		oldPosition := v.Position
		travelTime := vehicle.PerformLaneMove(v, rng, globalLength)
		if travelTime != 0 {
			// The lane still records v at oldPosition; clear that cell before
			// Detach, which looks v up at its new position.
			p.Road.Lanes[v.Lane].Remove(oldPosition)
			p.Detach(v)
			if isLast && clk.PastWarmup() {
				stat.Record(float64(travelTime))
			}
			continue
		}
		if err := p.MovePosition(v, oldPosition); err != nil {
			continue
		}
	}
}
