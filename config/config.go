// Package config defines the simulator's configuration record and loads it
// from a YAML file, following the teacher's utils/config shape
// (yaml-tagged struct, loaded with gopkg.in/yaml.v2 and UnmarshalStrict).
// Loading and broadcasting configuration is bootstrap's job (spec.md §4.4);
// this package only owns the record shape and its validation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the full set of recognized options from spec.md §3.
type Config struct {
	NumLanes          int     `yaml:"num_lanes"` // fixed at 2, validated in Validate
	Length            int     `yaml:"length"`
	MaxSpeed          int     `yaml:"max_speed"`
	LookForward       int     `yaml:"look_forward"`
	LookOtherForward  int     `yaml:"look_other_forward"`
	LookOtherBackward int     `yaml:"look_other_backward"`
	ProbSlowDown      float64 `yaml:"prob_slow_down"`
	ProbChange        float64 `yaml:"prob_change"`
	MaxTime           int     `yaml:"max_time"`
	StepSize          float64 `yaml:"step_size"`
	WarmupTime        int     `yaml:"warmup_time"`

	// SpawnProbability is the per-tick, per-lane Bernoulli chance of a new
	// vehicle entering at the road's first cell (Phase D, spec.md §4.3).
	// The spawn-probability tuning itself is an external collaborator per
	// spec.md §1; this field is the seam bootstrap reads it through.
	SpawnProbability float64 `yaml:"spawn_probability"`
}

// Load reads and strictly parses a Config from path. A missing or malformed
// file is the ConfigurationLoad error kind (spec.md §7): fatal on worker 0
// before broadcast.
func Load(path string) (Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %q: %w", path, err)
	}
	var c Config
	if err := yaml.UnmarshalStrict(file, &c); err != nil {
		return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: validate %q: %w", path, err)
	}
	return c, nil
}

// Validate checks the structural invariants of a Config. It does not check
// partition feasibility against a worker count — that is PartitionUnderflow,
// raised by bootstrap.DivideRoad once the worker count is known.
func (c Config) Validate() error {
	if c.NumLanes != 2 {
		return fmt.Errorf("num_lanes must be 2, got %d", c.NumLanes)
	}
	if c.Length <= 0 {
		return fmt.Errorf("length must be positive, got %d", c.Length)
	}
	if c.MaxSpeed < 0 {
		return fmt.Errorf("max_speed must be non-negative, got %d", c.MaxSpeed)
	}
	if c.LookForward < 0 || c.LookOtherForward < 0 || c.LookOtherBackward < 0 {
		return fmt.Errorf("look_forward/look_other_forward/look_other_backward must be non-negative")
	}
	if c.ProbSlowDown < 0 || c.ProbSlowDown > 1 {
		return fmt.Errorf("prob_slow_down must be in [0,1], got %f", c.ProbSlowDown)
	}
	if c.ProbChange < 0 || c.ProbChange > 1 {
		return fmt.Errorf("prob_change must be in [0,1], got %f", c.ProbChange)
	}
	if c.MaxTime <= 0 {
		return fmt.Errorf("max_time must be positive, got %d", c.MaxTime)
	}
	if c.WarmupTime < 0 {
		return fmt.Errorf("warmup_time must be non-negative, got %d", c.WarmupTime)
	}
	if c.SpawnProbability < 0 || c.SpawnProbability > 1 {
		return fmt.Errorf("spawn_probability must be in [0,1], got %f", c.SpawnProbability)
	}
	return nil
}
