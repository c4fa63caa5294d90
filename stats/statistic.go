// Package stats implements a streaming Welford mean/variance accumulator
// for travel-time samples (spec.md §4.5), retaining the raw sequence for
// end-of-run gather.
package stats

import "golang.org/x/exp/slices"

// Statistic accumulates double-precision samples with Welford's online
// algorithm, avoiding the numerical instability of a naive sum-of-squares
// variance.
type Statistic struct {
	count   int
	mean    float64
	m2      float64
	samples []float64
}

// New creates an empty Statistic.
func New() *Statistic {
	return &Statistic{}
}

// Record adds one sample to the accumulator.
func (s *Statistic) Record(x float64) {
	s.count++
	delta := x - s.mean
	s.mean += delta / float64(s.count)
	delta2 := x - s.mean
	s.m2 += delta * delta2
	s.samples = append(s.samples, x)
}

// Count returns the number of recorded samples.
func (s *Statistic) Count() int { return s.count }

// Mean returns the running mean, or 0 if no samples have been recorded.
func (s *Statistic) Mean() float64 { return s.mean }

// Variance returns the running population variance, or 0 if fewer than
// two samples have been recorded.
func (s *Statistic) Variance() float64 {
	if s.count < 2 {
		return 0
	}
	return s.m2 / float64(s.count)
}

// Samples returns the raw recorded sequence, for gather (spec.md §4.5:
// "every worker except the designated aggregator... sends its samples").
func (s *Statistic) Samples() []float64 { return s.samples }

// Merge absorbs another worker's samples into this accumulator, replaying
// them through Record one at a time. This keeps the merge exact rather
// than combining summary statistics with the parallel-variance formula,
// at the cost of transmitting raw samples — spec.md §4.5 requires the raw
// sequence be exposed for gather regardless, so no precision is given up
// by reusing it here.
func (s *Statistic) Merge(samples []float64) {
	for _, x := range samples {
		s.Record(x)
	}
}

// Gather merges every other worker's sample batch into this (last-rank)
// accumulator, sorting batches by rank first (spec.md §9: "a tree or
// gather, not a chain; the source sends from each non-last rank to the
// last rank") so the same input batches always merge in the same order
// regardless of goroutine scheduling.
func (s *Statistic) Gather(batches map[int][]float64) {
	ranks := make([]int, 0, len(batches))
	for rank := range batches {
		ranks = append(ranks, rank)
	}
	slices.Sort(ranks)
	for _, rank := range ranks {
		s.Merge(batches[rank])
	}
}
