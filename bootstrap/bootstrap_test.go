package bootstrap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fib-lab/ca-traffic-sim/bootstrap"
	"github.com/fib-lab/ca-traffic-sim/partition"
)

const testConfigYAML = `
num_lanes: 2
length: 100
max_speed: 5
look_forward: 5
look_other_forward: 5
look_other_backward: 5
prob_slow_down: 0.3
prob_change: 0.6
max_time: 20
step_size: 1
warmup_time: 0
spawn_probability: 0.2
`

func writeTempConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o644))
	return path
}

// TestDivideRoadEvenSplit matches spec.md §8 scenario 2.
func TestDivideRoadEvenSplit(t *testing.T) {
	ranges, err := bootstrap.DivideRoad(100, 4)
	require.NoError(t, err)
	require.Len(t, ranges, 4)

	want := []bootstrap.Range{{0, 25}, {25, 50}, {50, 75}, {75, 100}}
	assert.Equal(t, want, ranges)
}

// TestDivideRoadRemainderAware matches spec.md §8 scenario 3: sizes 4,3,3.
func TestDivideRoadRemainderAware(t *testing.T) {
	ranges, err := bootstrap.DivideRoad(10, 3)
	require.NoError(t, err)

	want := []bootstrap.Range{{0, 4}, {4, 7}, {7, 10}}
	assert.Equal(t, want, ranges)
}

func TestDivideRoadSingleWorker(t *testing.T) {
	ranges, err := bootstrap.DivideRoad(10, 1)
	require.NoError(t, err)
	assert.Equal(t, []bootstrap.Range{{0, 10}}, ranges)
}

func TestDivideRoadUnderflow(t *testing.T) {
	_, err := bootstrap.DivideRoad(2, 5)
	assert.Error(t, err)
}

func TestDivideRoadRejectsNonPositiveWorkers(t *testing.T) {
	_, err := bootstrap.DivideRoad(10, 0)
	assert.Error(t, err)
}

func TestBuildPartitionsInclusiveEnds(t *testing.T) {
	ranges, err := bootstrap.DivideRoad(10, 3)
	require.NoError(t, err)

	partitions := bootstrap.BuildPartitions(ranges)
	require.Len(t, partitions, 3)

	assert.Equal(t, 0, partitions[0].RoadStart())
	assert.Equal(t, 3, partitions[0].RoadEnd())
	assert.Equal(t, 4, partitions[1].RoadStart())
	assert.Equal(t, 6, partitions[1].RoadEnd())
	assert.Equal(t, 7, partitions[2].RoadStart())
	assert.Equal(t, 9, partitions[2].RoadEnd())
}

func TestBuildPartitionsWiresNeighborRanks(t *testing.T) {
	ranges, err := bootstrap.DivideRoad(10, 3)
	require.NoError(t, err)
	partitions := bootstrap.BuildPartitions(ranges)

	assert.Equal(t, partition.NoRank, partitions[0].PrevRank)
	assert.Equal(t, 1, partitions[0].NextRank)
	assert.Equal(t, 0, partitions[1].PrevRank)
	assert.Equal(t, 2, partitions[1].NextRank)
	assert.Equal(t, 1, partitions[2].PrevRank)
	assert.Equal(t, partition.NoRank, partitions[2].NextRank)
}

func TestLoadAndBroadcast(t *testing.T) {
	path := writeTempConfig(t)
	rc, err := bootstrap.LoadAndBroadcast(path)
	require.NoError(t, err)
	assert.Equal(t, 100, rc.All.Length)
}

func TestLoadAndBroadcastMissingFile(t *testing.T) {
	_, err := bootstrap.LoadAndBroadcast("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestNewLinksMatchesWorkerCount(t *testing.T) {
	links := bootstrap.NewLinks(4)
	assert.Len(t, links, 4)
}
