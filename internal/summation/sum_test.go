package summation

import (
	"errors"
	"sync"
	"testing"

	apperrors "github.com/agbru/sumbench/internal/errors"
)

type sumFunc func([]int, int) (int, error)

func parallelVariants() map[string]sumFunc {
	return map[string]sumFunc{
		"ParallelSum":  ParallelSum[[]int, int],
		"JoinSum":      JoinSum[[]int, int],
		"AggregateSum": AggregateSum,
	}
}

func TestSequentialSum(t *testing.T) {
	t.Parallel()
	if got := SequentialSum([]int{}); got != 0 {
		t.Errorf("SequentialSum(empty) = %d, want 0", got)
	}
	if got := SequentialSum([]int{1, 2, 3, 4, 5, 6, 7}); got != 28 {
		t.Errorf("SequentialSum = %d, want 28", got)
	}
	if got := SequentialSum([]int32{-3, 3, 10}); got != 10 {
		t.Errorf("SequentialSum(int32) = %d, want 10", got)
	}
}

func TestParallelVariants(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		values  []int
		workers int
		want    int
	}{
		{"reference scenario", []int{1, 2, 3, 4, 5, 6, 7}, 3, 28},
		{"single element many workers", []int{5}, 4, 5},
		{"empty", nil, 4, 0},
		{"single worker", []int{10, 20, 30}, 1, 60},
		{"negatives", []int{-1, -2, 3, 4}, 2, 4},
		{"more workers than elements", []int{1, 1, 1}, 16, 3},
	}
	for name, fn := range parallelVariants() {
		fn := fn
		for _, tt := range tests {
			tt := tt
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				t.Parallel()
				got, err := fn(tt.values, tt.workers)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("got %d, want %d", got, tt.want)
				}
			})
		}
	}
}

func TestParallelSum_InvalidWorkerCount(t *testing.T) {
	t.Parallel()
	for _, w := range []int{0, -1} {
		if _, err := ParallelSum([]int{1, 2, 3}, w); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("ParallelSum(workers=%d) error = %v, want ErrInvalidArgument", w, err)
		}
		if _, err := JoinSum([]int{1, 2, 3}, w); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("JoinSum(workers=%d) error = %v, want ErrInvalidArgument", w, err)
		}
	}
	if _, err := AggregateSum([]int{1}, -1); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("AggregateSum(batches=-1) error = %v, want ErrInvalidArgument", err)
	}
}

func TestParallelSum_LargeArray(t *testing.T) {
	t.Parallel()
	values := make([]int, 1_000_003)
	for i := range values {
		values[i] = i%99 + 1
	}
	want := SequentialSum(values)
	for _, w := range []int{1, 2, 3, 7, 8, 64} {
		got, err := ParallelSum(values, w)
		if err != nil {
			t.Fatalf("workers=%d: %v", w, err)
		}
		if got != want {
			t.Errorf("workers=%d: got %d, want %d", w, got, want)
		}
	}
}

// TestParallelSum_Reentrant runs many summations at once; with -race this
// also checks that no state leaks between calls.
func TestParallelSum_Reentrant(t *testing.T) {
	t.Parallel()
	values := make([]int, 10_000)
	for i := range values {
		values[i] = 1
	}

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(workers int) {
			defer wg.Done()
			got, err := ParallelSum(values, workers)
			if err != nil {
				errs <- err
				return
			}
			if got != len(values) {
				errs <- errors.New("wrong total from concurrent call")
			}
		}(i%8 + 1)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestParallelSum_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	values := []int{3, 1, 4, 1, 5, 9, 2, 6}
	orig := append([]int(nil), values...)
	if _, err := ParallelSum(values, 3); err != nil {
		t.Fatal(err)
	}
	for i := range values {
		if values[i] != orig[i] {
			t.Fatalf("input mutated at %d: %d != %d", i, values[i], orig[i])
		}
	}
}

func BenchmarkStrategies(b *testing.B) {
	values := make([]int, 1_000_000)
	for i := range values {
		values[i] = i%99 + 1
	}
	b.Run("Sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = SequentialSum(values)
		}
	})
	for name, fn := range parallelVariants() {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = fn(values, 8)
			}
		})
	}
}
