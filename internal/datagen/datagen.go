// Package datagen produces the random input arrays fed to the summation
// strategies.
package datagen

import (
	"github.com/valyala/fastrand"

	apperrors "github.com/agbru/sumbench/internal/errors"
)

const (
	// DefaultMin is the inclusive lower bound of generated values.
	DefaultMin = 1
	// DefaultMax is the exclusive upper bound of generated values.
	DefaultMax = 100
)

// Generate returns size values drawn uniformly from [min, max).
// A non-zero seed makes the output reproducible; seed 0 draws a fresh one.
func Generate(size, min, max int, seed uint32) ([]int, error) {
	if size < 0 {
		return nil, apperrors.NewValidationError("size", "must be >= 0, got %d", size)
	}
	if max <= min {
		return nil, apperrors.NewValidationError("max", "must be greater than min (%d), got %d", min, max)
	}
	span := uint64(max - min)
	if span > 1<<32 {
		return nil, apperrors.NewValidationError("max", "range [%d, %d) is wider than 2^32", min, max)
	}

	var rng fastrand.RNG
	if seed != 0 {
		rng.Seed(seed)
	}

	values := make([]int, size)
	if span == 1<<32 {
		for i := range values {
			values[i] = min + int(rng.Uint32())
		}
		return values, nil
	}
	n := uint32(span)
	for i := range values {
		values[i] = min + int(rng.Uint32n(n))
	}
	return values, nil
}
