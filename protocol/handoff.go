package protocol

import (
	"github.com/fib-lab/ca-traffic-sim/neighbor"
	"github.com/fib-lab/ca-traffic-sim/partition"
	"github.com/fib-lab/ca-traffic-sim/vehicle"
)

// RunHandoff runs Phase C (spec.md §4.3, §4.3.1, §9): it is a bounded loop
// of exactly numWorkers-1 rounds so a single vehicle may transit several
// short partitions within one tick. Every worker participates in every
// round, sending and receiving even when its own outbound set is empty,
// since the fixed message sequence is what keeps sender and receiver in
// lockstep without a separate termination broadcast.
func RunHandoff(p *partition.Partition, link *neighbor.Link, numWorkers int) {
	var transit []*vehicle.Vehicle

	for round := 0; round < numWorkers-1; round++ {
		outbound := p.OutboundCandidates()
		for _, v := range outbound {
			p.Detach(v)
		}
		outbound = append(outbound, transit...)
		transit = nil

		if p.HasNext() {
			link.SendHandoffCount(len(outbound))
			for _, v := range outbound {
				link.SendHandoffVehicle(v.Lane, v.ToPayload())
			}
		}

		var incoming []*vehicle.Vehicle
		if p.HasPrev() {
			n := link.ReceiveHandoffCount()
			for i := 0; i < n; i++ {
				lane, payload := link.ReceiveHandoffVehicle()
				if lane != 0 && lane != 1 {
					// ProtocolMismatch (spec.md §7): discard, continue the run.
					continue
				}
				incoming = append(incoming, vehicle.FromPayload(payload, lane))
			}
		}

		for _, v := range incoming {
			if v.Position > p.RoadEnd() {
				transit = append(transit, v)
				continue
			}
			if err := p.Attach(v); err != nil {
				// CellCollision (spec.md §7): vehicle is not placed, no retry.
				continue
			}
		}
	}
}
