package summation

import (
	apperrors "github.com/agbru/sumbench/internal/errors"
)

// ChunkRange is the half-open index range [Start, End) assigned to one worker.
type ChunkRange struct {
	Start int
	End   int
}

// Len returns the number of elements covered by the range.
func (r ChunkRange) Len() int { return r.End - r.Start }

// Partition splits [0, n) into workers contiguous ranges.
//
// The base chunk size is n/workers (integer division). Worker i < workers-1
// receives [i*C, (i+1)*C); the last worker receives [(workers-1)*C, n) and
// therefore absorbs the whole remainder. When workers > n, every worker but
// the last gets an empty range.
//
// Parameters:
//   - n: The array length (must be >= 0).
//   - workers: The number of workers (must be >= 1).
//
// Returns:
//   - []ChunkRange: Exactly workers ranges covering [0, n) without overlap.
//   - error: An apperrors.ValidationError (matching apperrors.ErrInvalidArgument)
//     if either argument is out of range.
func Partition(n, workers int) ([]ChunkRange, error) {
	if workers <= 0 {
		return nil, apperrors.NewValidationError("workerCount", "must be >= 1, got %d", workers)
	}
	if n < 0 {
		return nil, apperrors.NewValidationError("length", "must be >= 0, got %d", n)
	}
	chunk := n / workers
	ranges := make([]ChunkRange, workers)
	for i := range ranges {
		ranges[i] = ChunkRange{Start: i * chunk, End: (i + 1) * chunk}
	}
	ranges[workers-1].End = n
	return ranges, nil
}
