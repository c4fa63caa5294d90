package neighbor

import "github.com/fib-lab/ca-traffic-sim/vehicle"

// Edge is the bidirectional channel pair between two adjacent workers,
// rank i (the "prev" side) and rank i+1 (the "next" side). Downstream
// carries everything rank i sends to rank i+1 (FirstVehicles, HandoffCount,
// HandoffVehicle); Upstream carries what rank i+1 sends back to rank i
// (LastVehicles) — matching the direction each message travels in spec.md
// §4.3.
type Edge struct {
	Downstream chan Message
	Upstream   chan Message
}

// NewEdge creates an Edge with the given channel buffer depth. A buffer of
// 0 makes every send a rendezvous with its matching receive, which is
// sufficient to realize the tick's fixed causal ordering without deadlock
// as long as both ends follow the phase sequence in lockstep.
func NewEdge(buffer int) *Edge {
	return &Edge{
		Downstream: make(chan Message, buffer),
		Upstream:   make(chan Message, buffer),
	}
}

// Link is one worker's view onto its two adjacent edges. Either side may
// be nil when the worker has no neighbor in that direction (spec.md §3
// Partition: prev_rank/next_rank "or sentinel meaning none").
type Link struct {
	prev *Edge // edge shared with rank-1, where this worker is the "next" side
	next *Edge // edge shared with rank+1, where this worker is the "prev" side
}

// New creates a Link from this worker's two adjacent edges (either may be
// nil).
func New(prev, next *Edge) *Link {
	return &Link{prev: prev, next: next}
}

// SendFirstVehicles ships this worker's tail-most per-lane positions to
// its downstream neighbor (spec.md §4.3 Phase A step 4).
func (l *Link) SendFirstVehicles(fv [2]int) {
	l.next.Downstream <- Message{Tag: TagFirstVehicles, Ints: fv}
}

// ReceiveFirstVehicles blocks for the FirstVehicles message from this
// worker's upstream neighbor (spec.md §4.3 Phase A step 3).
func (l *Link) ReceiveFirstVehicles() [2]int {
	m := <-l.prev.Downstream
	return m.Ints
}

// SendLastVehicles ships this worker's head-most per-lane positions to its
// upstream neighbor (spec.md §4.3 Phase A step 2).
func (l *Link) SendLastVehicles(lv [2]int) {
	l.prev.Upstream <- Message{Tag: TagLastVehicles, Ints: lv}
}

// ReceiveLastVehicles blocks for the LastVehicles message from this
// worker's downstream neighbor (spec.md §4.3 Phase A step 1).
func (l *Link) ReceiveLastVehicles() [2]int {
	m := <-l.next.Upstream
	return m.Ints
}

// SendHandoffCount tells the downstream neighbor how many vehicles will
// follow this tick (spec.md §4.3.2 HandoffCount).
func (l *Link) SendHandoffCount(n int) {
	l.next.Downstream <- Message{Tag: TagHandoffCount, Ints: [2]int{n, 0}}
}

// ReceiveHandoffCount blocks for the HandoffCount message from upstream.
func (l *Link) ReceiveHandoffCount() int {
	m := <-l.prev.Downstream
	return m.Ints[0]
}

// SendHandoffVehicle ships one vehicle's lane index and payload downstream
// (spec.md §4.3.2 HandoffVehicle).
func (l *Link) SendHandoffVehicle(lane int, payload vehicle.Payload) {
	l.next.Downstream <- Message{Tag: TagHandoffVehicle, Ints: [2]int{lane, 0}, Payload: payload}
}

// ReceiveHandoffVehicle blocks for one HandoffVehicle message from
// upstream, returning the carried lane index and payload.
func (l *Link) ReceiveHandoffVehicle() (int, vehicle.Payload) {
	m := <-l.prev.Downstream
	return m.Ints[0], m.Payload
}
