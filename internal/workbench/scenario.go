// Package workbench drives synthetic operation mixes against the keyed
// containers.
package workbench

import (
	"errors"
	"fmt"
)

// Backing variants for a scenario's container.
const (
	BackingHash  = "hash"
	BackingArray = "array"
)

// Validation errors.
var (
	ErrNoName         = errors.New("workbench: scenario needs a name")
	ErrUnknownBacking = errors.New("workbench: unknown backing")
	ErrBadKeySpace    = errors.New("workbench: key space must be positive")
	ErrBadOps         = errors.New("workbench: op count must be positive")
)

// Scenario describes one workload: the container under test and the
// operation mix to run against it.
type Scenario struct {
	// Name identifies the scenario in logs, metrics, and results.
	Name string `koanf:"name" yaml:"name"`

	// Backing selects the container variant: "hash" or "array".
	Backing string `koanf:"backing" yaml:"backing"`

	// Capacity bounds the container entry count; 0 means unbounded.
	Capacity int `koanf:"capacity" yaml:"capacity"`

	// Strict makes capacity rejections fail the inserting operation
	// instead of being skipped and counted.
	Strict bool `koanf:"strict" yaml:"strict"`

	// Ops is the total number of operations to execute.
	Ops int `koanf:"ops" yaml:"ops"`

	// KeySpace is the number of distinct keys the mix draws from.
	KeySpace int `koanf:"key_space" yaml:"key_space"`

	// Rate caps execution in operations per second; 0 means unthrottled.
	Rate float64 `koanf:"rate" yaml:"rate"`

	// Seed seeds the operation mix; runs with equal seeds are identical.
	Seed uint64 `koanf:"seed" yaml:"seed"`

	// SweepEvery triggers a sweep pass after every N operations;
	// 0 disables sweeping.
	SweepEvery int `koanf:"sweep_every" yaml:"sweep_every"`
}

// DefaultScenario returns a small unbounded hash-backed workload.
func DefaultScenario() Scenario {
	return Scenario{
		Name:     "default",
		Backing:  BackingHash,
		Ops:      10_000,
		KeySpace: 1024,
		Seed:     1,
	}
}

// Validate checks the scenario for inconsistencies.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return ErrNoName
	}

	if s.Backing != BackingHash && s.Backing != BackingArray {
		return fmt.Errorf("%w: %q", ErrUnknownBacking, s.Backing)
	}

	if s.Capacity < 0 {
		return fmt.Errorf("workbench: capacity must not be negative, got %d", s.Capacity)
	}

	if s.Ops <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadOps, s.Ops)
	}

	if s.KeySpace <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadKeySpace, s.KeySpace)
	}

	if s.Rate < 0 {
		return fmt.Errorf("workbench: rate must not be negative, got %v", s.Rate)
	}

	if s.SweepEvery < 0 {
		return fmt.Errorf("workbench: sweep_every must not be negative, got %d", s.SweepEvery)
	}

	return nil
}

// Bounded reports whether the scenario's container is capacity-bounded.
func (s Scenario) Bounded() bool {
	return s.Capacity > 0
}
