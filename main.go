package main

import (
	"context"
	"flag"
	"os"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fib-lab/ca-traffic-sim/bootstrap"
	"github.com/fib-lab/ca-traffic-sim/clock"
	"github.com/fib-lab/ca-traffic-sim/randengine"
	"github.com/fib-lab/ca-traffic-sim/stats"
	"github.com/fib-lab/ca-traffic-sim/worker"
)

var (
	configPath = flag.String("config", "", "config file path")
	numWorkers = flag.Int("workers", 1, "number of workers (goroutines standing in for MPI processes)")
	baseSeed   = flag.Uint64("seed", 1, "base RNG seed; each worker draws from baseSeed+rank")

	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "log level (one of: trace debug info warn error critical off)")

	log = logrus.WithField("module", "main")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}

	if *configPath == "" {
		log.Fatal("config file must be specified with -config")
	}

	runtimeConfig, err := bootstrap.LoadAndBroadcast(*configPath)
	if err != nil {
		log.Fatalf("configuration load failed: %v", err)
	}
	cfg := runtimeConfig.All
	log.Infof("%+v", cfg)

	ranges, err := bootstrap.DivideRoad(cfg.Length, *numWorkers)
	if err != nil {
		log.Fatalf("partitioning failed: %v", err)
	}
	partitions := bootstrap.BuildPartitions(ranges)
	links := bootstrap.NewLinks(*numWorkers)
	barrier := worker.NewBarrier(*numWorkers)

	workers := make([]*worker.Worker, *numWorkers)
	workerStats := make([]*stats.Statistic, *numWorkers)
	for rank := 0; rank < *numWorkers; rank++ {
		rng := randengine.New(*baseSeed, rank)
		clk := clock.New(cfg.MaxTime, cfg.WarmupTime)
		stat := stats.New()
		workerStats[rank] = stat
		workers[rank] = worker.New(rank, *numWorkers, cfg.Length, partitions[rank], links[rank], clk, rng, stat, cfg, barrier, rank*1_000_000)
	}

	group, ctx := errgroup.WithContext(context.Background())
	for _, w := range workers {
		w := w
		group.Go(func() error {
			_, err := w.Run(ctx)
			return err
		})
	}
	if err := group.Wait(); err != nil {
		log.Fatalf("simulation aborted: %v", err)
	}

	// Gather: every non-last worker's samples fold into the last worker's
	// accumulator, mirroring the source's tree/gather choice (spec.md
	// §4.5, §9 "Statistics aggregation is a tree or gather, not a chain").
	aggregator := workerStats[*numWorkers-1]
	batches := make(map[int][]float64, *numWorkers-1)
	for rank := 0; rank < *numWorkers-1; rank++ {
		batches[rank] = workerStats[rank].Samples()
	}
	aggregator.Gather(batches)

	log.Infof("travel time: avg=%.4f variance=%.4f n=%d", aggregator.Mean(), aggregator.Variance(), aggregator.Count())
	os.Exit(0)
}
