// Package worker ties one partition, its neighbor link, its RNG stream,
// and its clock together into the per-tick loop the step protocol drives.
// Workers are goroutines inside a single process — the idiomatic-Go
// reading of spec.md §5's "parallel processes on a static, pre-sized
// worker group" (see SPEC_FULL.md §3.4).
package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fib-lab/ca-traffic-sim/clock"
	"github.com/fib-lab/ca-traffic-sim/config"
	"github.com/fib-lab/ca-traffic-sim/neighbor"
	"github.com/fib-lab/ca-traffic-sim/partition"
	"github.com/fib-lab/ca-traffic-sim/protocol"
	"github.com/fib-lab/ca-traffic-sim/randengine"
	"github.com/fib-lab/ca-traffic-sim/stats"
)

var log = logrus.WithField("module", "worker")

// RunStats is the supplemented performance report (SPEC_FULL.md §4,
// grounded on Simulation::run_simulation's steady_clock timing): wall
// time and ticks executed, logged at Info after the run, not part of the
// protocol's correctness surface.
type RunStats struct {
	Rank    int
	Elapsed time.Duration
	Ticks   int
}

// Worker owns one partition and drives it through every tick of the run.
type Worker struct {
	Rank         int
	NumWorkers   int
	GlobalLength int

	Partition *partition.Partition
	Link      *neighbor.Link
	Clock     *clock.Clock
	RNG       *randengine.Engine
	Stats     *stats.Statistic
	Config    config.Config
	Barrier   *Barrier

	nextID int
}

// New creates a Worker. nextIDBase seeds the vehicle-id counter; only the
// worker with no upstream neighbor (rank 0) ever spawns, so only its
// counter is load-bearing.
func New(rank, numWorkers, globalLength int, p *partition.Partition, link *neighbor.Link, clk *clock.Clock, rng *randengine.Engine, stat *stats.Statistic, cfg config.Config, barrier *Barrier, nextIDBase int) *Worker {
	return &Worker{
		Rank:         rank,
		NumWorkers:   numWorkers,
		GlobalLength: globalLength,
		Partition:    p,
		Link:         link,
		Clock:        clk,
		RNG:          rng,
		Stats:        stat,
		Config:       cfg,
		Barrier:      barrier,
		nextID:       nextIDBase,
	}
}

// Run drives this worker's partition through every tick until the clock
// is done or ctx is canceled (a sibling worker's Transport failure, per
// spec.md §7, cancels every worker through the errgroup context). It
// returns the performance report described in SPEC_FULL.md §4.
func (w *Worker) Run(ctx context.Context) (RunStats, error) {
	start := time.Now()
	ticks := 0
	isLast := !w.Partition.HasNext()

	for !w.Clock.Done() {
		select {
		case <-ctx.Done():
			return RunStats{Rank: w.Rank, Elapsed: time.Since(start), Ticks: ticks}, ctx.Err()
		default:
		}

		// Advance first so LocalUpdate's PastWarmup check sees the number of
		// the tick being run (see clock.Clock.Advance).
		w.Clock.Advance()

		firstVehicles, lastVehicles := protocol.ExchangeGhosts(w.Partition, w.Link)
		protocol.LocalUpdate(w.Partition, firstVehicles, lastVehicles, w.RNG, w.GlobalLength, isLast, w.Clock, w.Stats)
		protocol.RunHandoff(w.Partition, w.Link, w.NumWorkers)
		protocol.RunSpawn(w.Partition, lastVehicles, w.RNG, w.Config, &w.nextID)

		ticks++
		log.WithField("rank", w.Rank).WithField("tick", w.Clock.Tick).WithField("vehicles", w.Partition.Len()).Trace("tick complete")

		w.Barrier.Wait()
	}

	report := RunStats{Rank: w.Rank, Elapsed: time.Since(start), Ticks: ticks}
	log.WithField("rank", w.Rank).WithField("elapsed", report.Elapsed).WithField("ticks", report.Ticks).Info("worker finished")
	return report, nil
}
