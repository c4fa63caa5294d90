package partition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fib-lab/ca-traffic-sim/partition"
	"github.com/fib-lab/ca-traffic-sim/vehicle"
)

func newVehicle(id, position, lane int) *vehicle.Vehicle {
	return vehicle.New(id, position, lane, 5, 5, 5, 5, 0.3, 0.6)
}

func TestAttachAndDetach(t *testing.T) {
	p := partition.New(0, 99, 0, partition.NoRank, 1, 2)
	v := newVehicle(1, 10, 0)

	require.NoError(t, p.Attach(v))
	assert.Equal(t, 1, p.Len())
	assert.True(t, p.Occupied(0, 10))

	p.Detach(v)
	assert.Equal(t, 0, p.Len())
	assert.False(t, p.Occupied(0, 10))
}

func TestAttachOutOfRange(t *testing.T) {
	p := partition.New(0, 99, 0, partition.NoRank, 1, 2)
	v := newVehicle(1, 150, 0)
	err := p.Attach(v)
	assert.Error(t, err)
	assert.Equal(t, 0, p.Len())
}

func TestAttachCellCollision(t *testing.T) {
	p := partition.New(0, 99, 0, partition.NoRank, 1, 2)
	require.NoError(t, p.Attach(newVehicle(1, 10, 0)))
	err := p.Attach(newVehicle(2, 10, 0))
	assert.Error(t, err)
	assert.Equal(t, 1, p.Len())
}

func TestMoveLane(t *testing.T) {
	p := partition.New(0, 99, 0, partition.NoRank, 1, 2)
	v := newVehicle(1, 10, 0)
	require.NoError(t, p.Attach(v))

	require.NoError(t, p.MoveLane(v, 1))
	assert.Equal(t, 1, v.Lane)
	assert.False(t, p.Occupied(0, 10))
	assert.True(t, p.Occupied(1, 10))
}

func TestMovePosition(t *testing.T) {
	p := partition.New(0, 99, 0, partition.NoRank, 1, 2)
	v := newVehicle(1, 10, 0)
	require.NoError(t, p.Attach(v))

	v.Position = 15
	require.NoError(t, p.MovePosition(v, 10))
	assert.False(t, p.Occupied(0, 10))
	assert.True(t, p.Occupied(0, 15))
}

func TestOutboundCandidates(t *testing.T) {
	p := partition.New(0, 20, 0, partition.NoRank, 1, 2)
	inRange := newVehicle(1, 10, 0)
	beyond1 := newVehicle(2, 18, 0)
	beyond2 := newVehicle(3, 19, 1)

	require.NoError(t, p.Attach(inRange))
	require.NoError(t, p.Attach(beyond1))
	require.NoError(t, p.Attach(beyond2))

	// Attach only accepts in-range positions; advance two vehicles past
	// RoadEnd the way a lane move does.
	beyond1.Position = 22
	require.NoError(t, p.MovePosition(beyond1, 18))
	beyond2.Position = 25
	require.NoError(t, p.MovePosition(beyond2, 19))

	out := p.OutboundCandidates()
	require.Len(t, out, 2)
	ids := map[int]bool{out[0].ID: true, out[1].ID: true}
	assert.True(t, ids[2])
	assert.True(t, ids[3])
}

// TestOutboundCandidatesAfterDetachReindex guards against the arena/lane
// desync: detaching a vehicle that isn't the arena's last element forces
// Prepare's swap-fill to move the last vehicle into the freed slot, and the
// lane holding that moved vehicle must learn its new arena index.
func TestOutboundCandidatesAfterDetachReindex(t *testing.T) {
	p := partition.New(0, 20, 0, partition.NoRank, 1, 2)
	inRange := newVehicle(1, 10, 0)
	beyond1 := newVehicle(2, 18, 0)
	beyond2 := newVehicle(3, 19, 1)

	require.NoError(t, p.Attach(inRange))
	require.NoError(t, p.Attach(beyond1))
	require.NoError(t, p.Attach(beyond2))

	beyond1.Position = 22
	require.NoError(t, p.MovePosition(beyond1, 18))
	beyond2.Position = 25
	require.NoError(t, p.MovePosition(beyond2, 19))

	// inRange holds arena index 0, the lowest, so detaching it swap-fills
	// the hole with the arena's last occupant (beyond2).
	p.Detach(inRange)
	require.Equal(t, 2, p.Len())

	out := p.OutboundCandidates()
	require.Len(t, out, 2)
	byID := map[int]*vehicle.Vehicle{out[0].ID: out[0], out[1].ID: out[1]}
	require.Contains(t, byID, 2)
	require.Contains(t, byID, 3)
	assert.Same(t, beyond1, byID[2])
	assert.Same(t, beyond2, byID[3])
}

func TestHasPrevHasNext(t *testing.T) {
	p := partition.New(0, 99, 1, 0, 2, 3)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())

	first := partition.New(0, 99, 0, partition.NoRank, 1, 3)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())
}

func TestScanForwardBackwardViaGapLookup(t *testing.T) {
	p := partition.New(0, 99, 0, partition.NoRank, 1, 2)
	require.NoError(t, p.Attach(newVehicle(1, 20, 0)))

	pos, found := p.ScanForward(0, 10, 50)
	require.True(t, found)
	assert.Equal(t, 20, pos)

	pos, found = p.ScanBackward(0, 30, 50)
	require.True(t, found)
	assert.Equal(t, 20, pos)
}

func TestRoadStartEndAccessors(t *testing.T) {
	p := partition.New(5, 50, 0, partition.NoRank, 1, 2)
	assert.Equal(t, 5, p.RoadStart())
	assert.Equal(t, 50, p.RoadEnd())
}
