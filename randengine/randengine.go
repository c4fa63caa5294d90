// Package randengine wraps golang.org/x/exp/rand with the helpers the
// vehicle rule evaluator and the spawn policy need. Each worker owns exactly
// one Engine, seeded from a base seed plus its rank, so concurrent workers
// draw from independent streams (spec.md §8: "random draws are per-worker").
package randengine

import (
	"golang.org/x/exp/rand"
)

// Engine is a per-worker random number source.
type Engine struct {
	*rand.Rand
}

// New creates an Engine seeded deterministically from a base seed and the
// owning worker's rank.
func New(baseSeed uint64, rank int) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(baseSeed + uint64(rank)))}
}

// PTrue returns true with probability p, the Bernoulli draw
// performLaneMove's randomization step and performLaneSwitch's
// prob_change gate both need.
func (e *Engine) PTrue(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return e.Float64() < p
}
