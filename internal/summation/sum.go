package summation

import (
	"sync"

	"github.com/exascience/pargo/parallel"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/sumbench/internal/errors"
)

// SequentialSum adds the elements of values in a single loop.
// Overflow wraps silently.
func SequentialSum[S ~[]E, E constraints.Integer](values S) E {
	var total E
	for _, v := range values {
		total += v
	}
	return total
}

// ParallelSum sums values with workerCount goroutines.
//
// Each goroutine sums its chunk (see Partition) into a local variable without
// touching shared state, then takes the lock once to add that partial sum to
// an accumulator that lives only for the duration of this call. ParallelSum
// returns after every goroutine has merged its partial sum.
//
// workerCount is validated before any goroutine is started; a value below 1
// returns an error matching apperrors.ErrInvalidArgument. An empty slice
// yields 0.
func ParallelSum[S ~[]E, E constraints.Integer](values S, workerCount int) (E, error) {
	ranges, err := Partition(len(values), workerCount)
	if err != nil {
		return 0, err
	}

	var (
		mu    sync.Mutex
		total E
		wg    sync.WaitGroup
	)
	wg.Add(len(ranges))
	for _, r := range ranges {
		go func(r ChunkRange) {
			defer wg.Done()
			partial := SequentialSum(values[r.Start:r.End])

			mu.Lock()
			total += partial
			mu.Unlock()
		}(r)
	}
	wg.Wait()

	return total, nil
}

// JoinSum is the lock-free variant of ParallelSum: every worker writes its
// partial sum into its own slot and the calling goroutine adds the slots up
// once all workers have joined. Partitioning and validation are identical.
func JoinSum[S ~[]E, E constraints.Integer](values S, workerCount int) (E, error) {
	ranges, err := Partition(len(values), workerCount)
	if err != nil {
		return 0, err
	}

	partials := make([]E, len(ranges))
	var g errgroup.Group
	for i, r := range ranges {
		i, r := i, r
		g.Go(func() error {
			partials[i] = SequentialSum(values[r.Start:r.End])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return SequentialSum(partials), nil
}

// AggregateSum expresses the sum as a declarative parallel reduction over
// the index range of values and lets pargo decide how to schedule it.
// batches is the number of batches to split the range into; 0 selects
// pargo's default (GOMAXPROCS).
func AggregateSum(values []int, batches int) (int, error) {
	if batches < 0 {
		return 0, apperrors.NewValidationError("batches", "must be >= 0, got %d", batches)
	}
	if len(values) == 0 {
		return 0, nil
	}
	return parallel.RangeReduceInt(0, len(values), batches,
		func(low, high int) int {
			return SequentialSum(values[low:high])
		},
		func(x, y int) int {
			return x + y
		},
	), nil
}
