// Package road stores one partition's stretch of pavement: two ordered
// lanes of cell occupancy, indexed by global position. It holds arena
// indices, never vehicle pointers (spec.md §9) — the partition package is
// the only one that dereferences an index into an actual *vehicle.Vehicle.
package road

import (
	"fmt"

	"github.com/fib-lab/ca-traffic-sim/container"
)

// Lane is one ordered track of occupied cells between Start and End
// (inclusive), grounded on the teacher's container.List used as an ordered
// position index.
type Lane struct {
	start, end int
	cells      *container.List[int] // position -> vehicle arena index
}

// NewLane creates an empty lane spanning [start, end].
func NewLane(start, end int) *Lane {
	return &Lane{start: start, end: end, cells: container.NewList[int]()}
}

// Start returns the lane's first valid position.
func (l *Lane) Start() int { return l.start }

// End returns the lane's last valid position.
func (l *Lane) End() int { return l.end }

// Occupied reports whether pos currently holds a vehicle.
func (l *Lane) Occupied(pos int) bool {
	return l.cells.Find(pos) != nil
}

// Place records a vehicle at pos, returning an error if the cell is already
// occupied (spec.md §7 CellCollision) — callers resolve target-cell
// contention (lane-switch races) before calling Place.
func (l *Lane) Place(pos, arenaIndex int) error {
	if l.cells.Find(pos) != nil {
		return fmt.Errorf("road: lane: cell collision at position %d", pos)
	}
	l.cells.Insert(pos, arenaIndex)
	return nil
}

// Remove clears the vehicle recorded at pos. It is a no-op if pos was
// already empty, which happens when a vehicle has just been handed off and
// its old cell already cleared by the same tick's bookkeeping.
func (l *Lane) Remove(pos int) {
	if n := l.cells.Find(pos); n != nil {
		l.cells.Remove(n)
	}
}

// Move relocates the occupant of from to to, failing with CellCollision if
// to is already occupied by a different vehicle.
func (l *Lane) Move(from, to int) error {
	if from == to {
		return nil
	}
	n := l.cells.Find(from)
	if n == nil {
		return fmt.Errorf("road: lane: no vehicle at position %d to move", from)
	}
	if l.cells.Find(to) != nil {
		return fmt.Errorf("road: lane: cell collision at position %d", to)
	}
	arenaIndex := n.Value
	l.cells.Remove(n)
	l.cells.Insert(to, arenaIndex)
	return nil
}

// UpdateArenaIndex overwrites the arena index cached at pos, without moving
// the cell. It is a no-op if pos is empty. Callers must use this to refresh
// a lane's cached index whenever container.Arena.Prepare reports that the
// vehicle occupying pos was reindexed by a removal's swap-fill.
func (l *Lane) UpdateArenaIndex(pos, arenaIndex int) {
	if n := l.cells.Find(pos); n != nil {
		n.Value = arenaIndex
	}
}

// ScanForward returns the arena index and position of the nearest occupant
// strictly ahead of from, within from+maxDistance.
func (l *Lane) ScanForward(from, maxDistance int) (arenaIndex, pos int, found bool) {
	n := l.cells.ScanForward(from, maxDistance)
	if n == nil {
		return 0, 0, false
	}
	return n.Value, n.Pos, true
}

// ScanBackward returns the arena index and position of the nearest occupant
// strictly behind from, within from-maxDistance.
func (l *Lane) ScanBackward(from, maxDistance int) (arenaIndex, pos int, found bool) {
	n := l.cells.ScanBackward(from, maxDistance)
	if n == nil {
		return 0, 0, false
	}
	return n.Value, n.Pos, true
}

// FirstOccupied returns the position of the lowest-position occupant (the
// upstream-most vehicle), used to compute the FirstVehicles ghost sent to
// the next worker (spec.md §4.2 "Ghost Information").
func (l *Lane) FirstOccupied() (pos int, found bool) {
	if n := l.cells.First(); n != nil {
		return n.Pos, true
	}
	return 0, false
}

// LastOccupied returns the position of the highest-position occupant (the
// downstream-most vehicle), used for the LastVehicles ghost sent to the
// previous worker.
func (l *Lane) LastOccupied() (pos int, found bool) {
	if n := l.cells.Last(); n != nil {
		return n.Pos, true
	}
	return 0, false
}

// Len returns the number of vehicles currently in the lane.
func (l *Lane) Len() int { return l.cells.Len() }

// TailBeyond returns the arena indices of every occupant whose position is
// strictly greater than limit, scanning from the tail (highest position)
// backward and stopping at the first occupant at or below limit. Since a
// lane's occupants are strictly ordered by position (spec.md §3), the set
// of positions greater than limit is always a contiguous suffix — this is
// the hand-off gate of spec.md §4.3.1 applied to an ordered list, where
// "descending position order until a candidate fails" reduces to exactly
// this scan.
func (l *Lane) TailBeyond(limit int) []int {
	var indices []int
	for n := l.cells.Last(); n != nil && n.Pos > limit; n = n.Prev() {
		indices = append(indices, n.Value)
	}
	return indices
}

// ArenaIndices returns all occupants' arena indices in position order.
func (l *Lane) ArenaIndices() []int { return l.cells.Values() }
