// Package partition is the per-worker view of the road (spec.md §3
// Partition): it owns a contiguous range of cells, the vehicles inside
// that range, and the spawn/attach/detach primitives the step protocol
// drives. It is the sole owner of vehicle memory — lanes reference
// vehicles only by arena index (spec.md §9's ownership redesign note).
package partition

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/fib-lab/ca-traffic-sim/container"
	"github.com/fib-lab/ca-traffic-sim/road"
	"github.com/fib-lab/ca-traffic-sim/vehicle"
)

// NoRank is the sentinel for "no neighbor in this direction" (spec.md §3
// Partition: prev_rank/next_rank "or sentinel meaning none").
const NoRank = -1

// Partition is one worker's owned stretch of road plus its vehicles.
type Partition struct {
	start, end int // inclusive, global coordinates
	Rank       int
	PrevRank   int
	NextRank   int
	NumWorkers int

	Road     *road.Road
	vehicles *container.Arena[*vehicle.Vehicle]
}

// New creates an empty Partition over [roadStart, roadEnd].
func New(roadStart, roadEnd, rank, prevRank, nextRank, numWorkers int) *Partition {
	return &Partition{
		start:      roadStart,
		end:        roadEnd,
		Rank:       rank,
		PrevRank:   prevRank,
		NextRank:   nextRank,
		NumWorkers: numWorkers,
		Road:       road.New(roadStart, roadEnd),
		vehicles:   container.NewArena[*vehicle.Vehicle](),
	}
}

// HasPrev reports whether this partition has an upstream neighbor.
func (p *Partition) HasPrev() bool { return p.PrevRank != NoRank }

// HasNext reports whether this partition has a downstream neighbor.
func (p *Partition) HasNext() bool { return p.NextRank != NoRank }

// Vehicles returns the owned vehicles in arena order. The slice aliases
// live arena storage and must not be retained across a Prepare call.
func (p *Partition) Vehicles() []*vehicle.Vehicle { return p.vehicles.Data() }

// Len returns the number of vehicles currently owned.
func (p *Partition) Len() int { return p.vehicles.Len() }

// Attach places v into the partition: it is recorded in the vehicle arena
// and placed into its lane at its current position. It fails with
// CellCollision (spec.md §7) if the cell is already occupied, in which
// case v is not added to the arena either.
func (p *Partition) Attach(v *vehicle.Vehicle) error {
	if v.Position < p.start || v.Position > p.end {
		return fmt.Errorf("partition: attach: position %d outside [%d,%d]", v.Position, p.start, p.end)
	}
	if p.Road.Occupied(v.Lane, v.Position) {
		return fmt.Errorf("partition: attach: cell collision at lane %d position %d", v.Lane, v.Position)
	}
	p.vehicles.Add(v)
	p.commitArena()
	if err := p.Road.Lanes[v.Lane].Place(v.Position, v.Index()); err != nil {
		return err
	}
	return nil
}

// Detach removes v from the partition entirely: out of its lane and out
// of the vehicle arena. Used for hand-off sends and off-road exits.
func (p *Partition) Detach(v *vehicle.Vehicle) {
	p.Road.Lanes[v.Lane].Remove(v.Position)
	p.vehicles.Remove(v)
	p.commitArena()
}

// commitArena flushes the staged arena add/remove and re-points the lane
// cell of every surviving vehicle the arena's swap-fill reindexed, so a
// lane's cached arena index never goes stale after a removal.
func (p *Partition) commitArena() {
	for _, v := range p.vehicles.Prepare() {
		p.Road.Lanes[v.Lane].UpdateArenaIndex(v.Position, v.Index())
	}
}

// MoveLane relocates v to lane (0 or 1) at its current position, used by
// performLaneSwitch once a target cell has been claimed.
func (p *Partition) MoveLane(v *vehicle.Vehicle, lane int) error {
	if err := p.Road.Lanes[lane].Place(v.Position, v.Index()); err != nil {
		return err
	}
	p.Road.Lanes[v.Lane].Remove(v.Position)
	v.Lane = lane
	return nil
}

// MovePosition relocates v within its current lane from its old position
// to its new v.Position, used by performLaneMove after speed is applied.
// oldPosition is passed explicitly since v.Position has already been
// mutated by the caller.
func (p *Partition) MovePosition(v *vehicle.Vehicle, oldPosition int) error {
	return p.Road.Lanes[v.Lane].Move(oldPosition, v.Position)
}

// VehicleAt resolves an arena index back to its vehicle pointer.
func (p *Partition) VehicleAt(arenaIndex int) *vehicle.Vehicle {
	return p.vehicles.Data()[arenaIndex]
}

// OutboundCandidates returns every vehicle, across both lanes, whose
// position has advanced past RoadEnd and therefore must hand off to the
// next worker this tick (spec.md §4.3 Phase C / §4.3.1 hand-off gate). The
// descending-position order of each lane's TailBeyond scan is preserved.
func (p *Partition) OutboundCandidates() []*vehicle.Vehicle {
	var out []*vehicle.Vehicle
	for lane := 0; lane < 2; lane++ {
		indices := p.Road.Lanes[lane].TailBeyond(p.end)
		out = append(out, lo.Map(indices, func(idx int, _ int) *vehicle.Vehicle {
			return p.VehicleAt(idx)
		})...)
	}
	return out
}

// ScanForward implements vehicle.GapLookup.
func (p *Partition) ScanForward(lane, from, maxDistance int) (int, bool) {
	_, pos, found := p.Road.Lanes[lane].ScanForward(from, maxDistance)
	return pos, found
}

// ScanBackward implements vehicle.GapLookup.
func (p *Partition) ScanBackward(lane, from, maxDistance int) (int, bool) {
	_, pos, found := p.Road.Lanes[lane].ScanBackward(from, maxDistance)
	return pos, found
}

// Occupied implements vehicle.GapLookup.
func (p *Partition) Occupied(lane, pos int) bool { return p.Road.Occupied(lane, pos) }

// RoadStart implements vehicle.GapLookup.
func (p *Partition) RoadStart() int { return p.start }

// RoadEnd implements vehicle.GapLookup.
func (p *Partition) RoadEnd() int { return p.end }

var _ vehicle.GapLookup = (*Partition)(nil)
