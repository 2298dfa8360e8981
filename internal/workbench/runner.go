// Package workbench drives synthetic operation mixes against the keyed
// containers.
package workbench

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/mapkit-go/internal/telemetry/logger"
	"github.com/yndnr/mapkit-go/internal/telemetry/metric"
	"github.com/yndnr/mapkit-go/pkg/keyed"
)

// Operation names used in counters and metrics labels.
const (
	opSet         = "set"
	opGet         = "get"
	opRemove      = "remove"
	opCompute     = "compute"
	opMerge       = "merge"
	opSetIfAbsent = "set_if_absent"
	opSweep       = "sweep"
)

// Result summarizes one completed run.
type Result struct {
	// RunID is the ULID assigned to the run.
	RunID string `json:"run_id" yaml:"run_id"`

	// Scenario is the name of the executed scenario.
	Scenario string `json:"scenario" yaml:"scenario"`

	// Ops counts executed operations by name.
	Ops map[string]int `json:"ops" yaml:"ops"`

	// Rejections counts inserts refused by the capacity bound.
	Rejections int `json:"rejections" yaml:"rejections"`

	// SweepRemoved counts entries removed by sweep passes.
	SweepRemoved int `json:"sweep_removed" yaml:"sweep_removed"`

	// FinalSize is the container's entry count after the run.
	FinalSize int `json:"final_size" yaml:"final_size"`

	// Duration is the wall-clock run time.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// TotalOps returns the number of executed operations, sweeps included.
func (r Result) TotalOps() int {
	total := 0
	for _, n := range r.Ops {
		total += n
	}

	return total
}

// Runner executes scenarios and reports results.
type Runner struct {
	registry *Registry
	metrics  *metric.Registry

	// OnProgress, when set, is called periodically with the number of
	// completed operations and the scenario total.
	OnProgress func(done, total int)
}

// NewRunner creates a runner publishing to the given container registry
// and metrics registry. Either may be nil, in which case the concern is
// skipped.
func NewRunner(registry *Registry, metrics *metric.Registry) *Runner {
	return &Runner{
		registry: registry,
		metrics:  metrics,
	}
}

// tombstone marks a value as recorded but unusable. The mix writes a
// small fraction of tombstones so sweeps and the absence rule have
// something to act on.
const tombstone = int64(-1)

func isTombstone(v int64) bool {
	return v < 0
}

// Run executes one scenario to completion. The returned error is non-nil
// only for invalid scenarios, context cancellation, or container
// construction failures; capacity rejections under a strict bound are
// counted, not fatal.
func (r *Runner) Run(ctx context.Context, sc Scenario) (Result, error) {
	if err := sc.Validate(); err != nil {
		return Result{}, err
	}

	runID := ulid.Make().String()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.L(ctx).With("scenario", sc.Name)

	var lenientRejections int

	container, err := r.buildContainer(sc, &lenientRejections)
	if err != nil {
		return Result{}, err
	}

	// The probe runs on the scrape goroutine while the single-writer
	// container is mutating, so it reads a counter the run loop publishes
	// instead of touching the container itself.
	var entries atomic.Int64

	if r.registry != nil {
		r.registry.Register(sc.Name, func() metric.Snapshot {
			return metric.Snapshot{
				Container: sc.Name,
				Backing:   sc.Backing,
				Entries:   int(entries.Load()),
				Capacity:  sc.Capacity,
			}
		})
		defer r.registry.Deregister(sc.Name)
	}

	var limiter *rate.Limiter
	if sc.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(sc.Rate), 1)
	}

	rng := rand.New(rand.NewPCG(sc.Seed, sc.Seed^0x9e3779b97f4a7c15))

	result := Result{
		RunID:    runID,
		Scenario: sc.Name,
		Ops:      make(map[string]int),
	}

	log.Info("run started",
		"backing", sc.Backing,
		"ops", sc.Ops,
		"key_space", sc.KeySpace,
		"capacity", sc.Capacity,
	)

	progressStep := sc.Ops / 100
	if progressStep == 0 {
		progressStep = 1
	}

	start := time.Now()

	for i := 0; i < sc.Ops; i++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("run %s interrupted after %d ops: %w", runID, i, err)
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return result, fmt.Errorf("run %s interrupted after %d ops: %w", runID, i, err)
			}
		}

		if err := r.step(container, rng, sc, &result); err != nil {
			return result, err
		}

		if sc.SweepEvery > 0 && (i+1)%sc.SweepEvery == 0 {
			sweepStart := time.Now()
			removed := container.Sweep(func(v int64, _ string) bool {
				return isTombstone(v)
			})
			result.Ops[opSweep]++
			result.SweepRemoved += len(removed)

			if r.metrics != nil {
				r.metrics.RecordOp(sc.Name, opSweep)
				r.metrics.ObserveOpDuration(sc.Name, opSweep, time.Since(sweepStart).Seconds())
				r.metrics.AddSweepRemovals(len(removed))
			}
		}

		entries.Store(int64(container.Len()))

		if r.OnProgress != nil && (i+1)%progressStep == 0 {
			r.OnProgress(i+1, sc.Ops)
		}
	}

	if r.OnProgress != nil {
		r.OnProgress(sc.Ops, sc.Ops)
	}

	result.Duration = time.Since(start)
	result.FinalSize = container.Len()
	result.Rejections += lenientRejections

	if r.metrics != nil {
		r.metrics.RecordRun(result.Duration.Seconds())
	}

	log.Info("run finished",
		"total_ops", result.TotalOps(),
		"rejections", result.Rejections,
		"sweep_removed", result.SweepRemoved,
		"final_size", result.FinalSize,
		"duration", result.Duration,
	)

	return result, nil
}

// buildContainer assembles the container under test for a scenario.
// Lenient-mode capacity rejections are counted through rejected, which
// must outlive the container.
func (r *Runner) buildContainer(sc Scenario, rejected *int) (*keyed.Map[string, int64], error) {
	var store keyed.Store[string, int64]

	switch sc.Backing {
	case BackingArray:
		store = keyed.NewArrayMap[string, int64]()
	default:
		store = keyed.NewHashMap[string, int64]()
	}

	if sc.Bounded() {
		sinks := []keyed.DiagnosticSink{
			keyed.NewSlogSink(nil),
			keyed.SinkFunc(func(any, int) { *rejected++ }),
		}
		if r.metrics != nil {
			sinks = append(sinks, metric.NewRejectionSink(r.metrics, sc.Name))
		}

		opts := []keyed.BoundedOption[string, int64]{
			keyed.WithSink[string, int64](keyed.MultiSink(sinks...)),
		}
		if sc.Strict {
			opts = append(opts, keyed.WithStrict[string, int64]())
		}

		bounded, err := keyed.NewBounded(store, sc.Capacity, opts...)
		if err != nil {
			return nil, err
		}
		store = bounded
	}

	return keyed.New(
		keyed.WithStore[string, int64](store),
		keyed.WithNull[string, int64](isTombstone),
	), nil
}

// step executes one operation of the mix.
func (r *Runner) step(m *keyed.Map[string, int64], rng *rand.Rand, sc Scenario, result *Result) error {
	key := fmt.Sprintf("k%06d", rng.IntN(sc.KeySpace))

	opStart := time.Now()

	// Roughly 1 in 16 written values is a tombstone.
	value := rng.Int64N(1 << 16)
	if rng.IntN(16) == 0 {
		value = tombstone
	}

	var (
		op  string
		err error
	)

	switch roll := rng.IntN(100); {
	case roll < 30:
		op = opSet
		err = m.Set(key, value)
	case roll < 60:
		op = opGet
		m.GetUsable(key)
	case roll < 70:
		op = opRemove
		m.Remove(key)
	case roll < 80:
		op = opCompute
		_, _, err = m.Compute(key, func(_ string, old int64, present bool) (int64, bool) {
			if !present {
				return value, !isTombstone(value)
			}

			return old + 1, true
		})
	case roll < 90:
		op = opMerge
		_, _, err = m.Merge(key, value, func(old, incoming int64) (int64, bool) {
			return old + incoming, true
		})
	default:
		op = opSetIfAbsent
		_, _, err = m.SetIfAbsent(key, value)
	}

	if err != nil {
		if errors.Is(err, keyed.ErrCapacityExceeded) {
			result.Rejections++
			err = nil
		} else {
			return fmt.Errorf("op %s on %q: %w", op, key, err)
		}
	}

	result.Ops[op]++

	if r.metrics != nil {
		r.metrics.RecordOp(sc.Name, op)
		r.metrics.ObserveOpDuration(sc.Name, op, time.Since(opStart).Seconds())
	}

	return nil
}
