package protocol

import (
	"github.com/fib-lab/ca-traffic-sim/config"
	"github.com/fib-lab/ca-traffic-sim/partition"
	"github.com/fib-lab/ca-traffic-sim/randengine"
	"github.com/fib-lab/ca-traffic-sim/vehicle"
)

// RunSpawn runs Phase D (spec.md §4.3, §4.4): only the worker holding the
// global road's entry cell (the one with no upstream neighbor) attempts to
// spawn. lastVehicles is consulted so a vehicle is never spawned on top of
// a ghost-occupied cell (spec.md §9(b)); nextID is the shared, monotonic
// vehicle-id counter threaded in by the caller.
func RunSpawn(p *partition.Partition, lastVehicles [2]int, rng *randengine.Engine, cfg config.Config, nextID *int) {
	if p.HasPrev() {
		return
	}
	entry := p.RoadStart()
	for lane := 0; lane < 2; lane++ {
		if !rng.PTrue(cfg.SpawnProbability) {
			continue
		}
		if p.Occupied(lane, entry) {
			continue
		}
		if lastVehicles[lane] == entry {
			continue
		}
		v := vehicle.New(*nextID, entry, lane, cfg.MaxSpeed, cfg.LookForward, cfg.LookOtherForward, cfg.LookOtherBackward, cfg.ProbSlowDown, cfg.ProbChange)
		if err := p.Attach(v); err == nil {
			*nextID++
		}
	}
}
