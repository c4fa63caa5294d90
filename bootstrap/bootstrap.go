// Package bootstrap performs rank discovery, road splitting, and
// configuration loading — the external collaborators spec.md §1 excludes
// from the core but §4.4 still names (divideRoad, broadcastConfig).
package bootstrap

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/fib-lab/ca-traffic-sim/config"
	"github.com/fib-lab/ca-traffic-sim/neighbor"
	"github.com/fib-lab/ca-traffic-sim/partition"
)

// Range is one worker's half-open [Start, End) slice of the global road,
// as computed by DivideRoad before being narrowed to the worker's
// inclusive road_end.
type Range struct {
	Start, End int
}

// DivideRoad splits [0, roadLength) into numWorkers contiguous,
// non-overlapping ranges using the remainder-aware split named in spec.md
// §4.4, front-loading the remainder onto the earliest workers: worked
// example `road_length=10, num_workers=3` yields `[0,3],[4,6],[7,9]`
// (sizes 4,3,3), which `end_i = start_i + ceil(remaining / (num_workers -
// i))` reproduces and a floor-based split does not. It returns
// PartitionUnderflow (spec.md §7) if any resulting range is empty.
func DivideRoad(roadLength, numWorkers int) ([]Range, error) {
	if numWorkers <= 0 {
		return nil, fmt.Errorf("bootstrap: divide road: num_workers must be positive, got %d", numWorkers)
	}
	ranges := make([]Range, numWorkers)
	start := 0
	remaining := roadLength
	for i := 0; i < numWorkers; i++ {
		workersLeft := numWorkers - i
		share := (remaining + workersLeft - 1) / workersLeft
		end := start + share
		if end <= start {
			return nil, fmt.Errorf("bootstrap: divide road: worker %d got an empty range [%d,%d)", i, start, end)
		}
		ranges[i] = Range{Start: start, End: end}
		remaining -= share
		start = end
	}
	starts := make([]int, len(ranges))
	for i, r := range ranges {
		starts[i] = r.Start
	}
	if !slices.IsSorted(starts) {
		return nil, fmt.Errorf("bootstrap: divide road: computed ranges are not monotonic: %v", ranges)
	}
	return ranges, nil
}

// BuildPartitions constructs one Partition per worker from the ranges
// DivideRoad produced, wiring prev_rank/next_rank and the sentinel
// partition.NoRank at the ends (spec.md §3 Partition).
func BuildPartitions(ranges []Range) []*partition.Partition {
	numWorkers := len(ranges)
	partitions := make([]*partition.Partition, numWorkers)
	for rank, r := range ranges {
		prevRank, nextRank := partition.NoRank, partition.NoRank
		if rank > 0 {
			prevRank = rank - 1
		}
		if rank < numWorkers-1 {
			nextRank = rank + 1
		}
		partitions[rank] = partition.New(r.Start, r.End-1, rank, prevRank, nextRank, numWorkers)
	}
	return partitions
}

// LoadAndBroadcast reads the configuration once on worker 0's behalf and
// returns a RuntimeConfig every worker shares — the single-process
// analogue of spec.md §4.4's broadcastConfig, since all workers here are
// goroutines in the same address space and need no wire transfer.
func LoadAndBroadcast(path string) (*config.RuntimeConfig, error) {
	c, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: load and broadcast: %w", err)
	}
	return config.NewRuntimeConfig(c), nil
}

// NewLinks builds the neighbor-link group for numWorkers ranks.
func NewLinks(numWorkers int) []*neighbor.Link {
	return neighbor.NewGroup(numWorkers)
}
