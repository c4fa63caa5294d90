// Package neighbor implements the point-to-point channel abstraction
// between adjacent workers (spec.md §4.3.2): the four tagged message
// kinds exchanged each tick, carried over native Go channels. Go channels
// are the literal idiomatic-Go reading of "point-to-point channel
// abstraction" — there is no messaging library in this module's stack
// that fits without fabricating an external wire schema, so this one
// corner of the transport is stdlib by design.
package neighbor

import "github.com/fib-lab/ca-traffic-sim/vehicle"

// Tag identifies which of the four logical message kinds a Message
// carries, so a receiver never has to guess shape from content.
type Tag int

const (
	TagLastVehicles Tag = iota
	TagFirstVehicles
	TagHandoffCount
	TagHandoffVehicle
)

// Message is the single wire type every channel carries; Tag disambiguates
// which fields are meaningful.
type Message struct {
	Tag     Tag
	Ints    [2]int // LastVehicles/FirstVehicles: per-lane ghost positions. HandoffCount: Ints[0]. HandoffVehicle: Ints[0] is lane index.
	Payload vehicle.Payload
}
