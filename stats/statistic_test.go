package stats_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fib-lab/ca-traffic-sim/stats"
)

func TestStatisticMeanAndVariance(t *testing.T) {
	s := stats.New()
	for _, x := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Record(x)
	}
	assert.Equal(t, 8, s.Count())
	assert.InDelta(t, 5.0, s.Mean(), 1e-9)
	assert.InDelta(t, 4.0, s.Variance(), 1e-9)
}

func TestStatisticEmpty(t *testing.T) {
	s := stats.New()
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0.0, s.Mean())
	assert.Equal(t, 0.0, s.Variance())
}

func TestStatisticSingleSampleVarianceIsZero(t *testing.T) {
	s := stats.New()
	s.Record(42)
	assert.Equal(t, 0.0, s.Variance())
}

func TestStatisticMerge(t *testing.T) {
	a := stats.New()
	a.Record(1)
	a.Record(2)

	b := stats.New()
	b.Record(3)
	b.Record(4)

	a.Merge(b.Samples())
	assert.Equal(t, 4, a.Count())
	assert.InDelta(t, 2.5, a.Mean(), 1e-9)
}

func TestStatisticGatherIsOrderIndependentOfMapIteration(t *testing.T) {
	batches := map[int][]float64{
		2: {30, 31},
		0: {10, 11},
		1: {20, 21},
	}

	a := stats.New()
	a.Gather(batches)

	b := stats.New()
	b.Merge(batches[0])
	b.Merge(batches[1])
	b.Merge(batches[2])

	assert.True(t, math.Abs(a.Mean()-b.Mean()) < 1e-9)
	assert.Equal(t, b.Samples(), a.Samples())
}
