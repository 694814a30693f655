//go:generate mockgen -source=strategy.go -destination=mocks/mock_strategy.go -package=mocks

package summation

import (
	"context"
	"runtime"
)

// Options configures the parallel strategies.
type Options struct {
	// Workers is the number of goroutines (or batches) used by the parallel
	// strategies. Zero selects runtime.NumCPU(); negative values are passed
	// through and rejected by the summation core.
	Workers int
}

// EffectiveWorkers resolves the worker count actually used for a run.
func (o Options) EffectiveWorkers() int {
	if o.Workers == 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

// Strategy is one way of summing an array.
type Strategy interface {
	// Name returns a human-readable description of the strategy.
	Name() string
	// Sum returns the sum of values. Implementations check ctx once before
	// starting; a summation that has started always runs to completion.
	Sum(ctx context.Context, values []int, opts Options) (int, error)
}

// SequentialStrategy sums in the calling goroutine.
type SequentialStrategy struct{}

// Name implements Strategy.
func (SequentialStrategy) Name() string { return "Sequential" }

// Sum implements Strategy.
func (SequentialStrategy) Sum(ctx context.Context, values []int, _ Options) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return SequentialSum(values), nil
}

// ManualStrategy fans out over goroutines that merge into a mutex-guarded
// accumulator.
type ManualStrategy struct{}

// Name implements Strategy.
func (ManualStrategy) Name() string { return "Manual (goroutines + mutex)" }

// Sum implements Strategy.
func (ManualStrategy) Sum(ctx context.Context, values []int, opts Options) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return ParallelSum(values, opts.EffectiveWorkers())
}

// AggregateStrategy runs a declarative parallel reduction.
type AggregateStrategy struct{}

// Name implements Strategy.
func (AggregateStrategy) Name() string { return "Aggregate (parallel reduce)" }

// Sum implements Strategy.
func (AggregateStrategy) Sum(ctx context.Context, values []int, opts Options) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return AggregateSum(values, opts.EffectiveWorkers())
}

// PartialsStrategy joins per-worker partial sums without a lock.
type PartialsStrategy struct{}

// Name implements Strategy.
func (PartialsStrategy) Name() string { return "Partials (errgroup join)" }

// Sum implements Strategy.
func (PartialsStrategy) Sum(ctx context.Context, values []int, opts Options) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return JoinSum(values, opts.EffectiveWorkers())
}
