// Package calibration searches for the worker count that makes the manual
// parallel strategy fastest on the current machine and persists it.
package calibration

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/agbru/sumbench/internal/config"
	"github.com/agbru/sumbench/internal/datagen"
	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/logging"
	"github.com/agbru/sumbench/internal/summation"
)

const (
	// DefaultSampleSize is the array length used when calibrating.
	DefaultSampleSize = 4_000_000
	// DefaultRepetitions is how many timed runs are taken per candidate.
	DefaultRepetitions = 5
)

type calibrationResult struct {
	Workers  int
	Duration time.Duration
	Err      error
}

// Options tunes a calibration run.
type Options struct {
	SampleSize  int
	Repetitions int
	Candidates  []int
	ProfilePath string
	Seed        uint32
}

func (o Options) withDefaults() Options {
	if o.SampleSize <= 0 {
		o.SampleSize = DefaultSampleSize
	}
	if o.Repetitions <= 0 {
		o.Repetitions = DefaultRepetitions
	}
	if len(o.Candidates) == 0 {
		o.Candidates = GenerateWorkerCandidates()
	}
	return o
}

// RunCalibration benchmarks every candidate worker count, prints a summary,
// saves the winner to the profile (when ProfilePath is set) and returns an
// exit code.
func RunCalibration(ctx context.Context, cfg config.AppConfig, opts Options, out io.Writer, logger logging.Logger) int {
	opts = opts.withDefaults()
	start := time.Now()

	values, err := datagen.Generate(opts.SampleSize, cfg.Min, cfg.Max, opts.Seed)
	if err != nil {
		fmt.Fprintf(out, "Calibration failed: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	want := summation.SequentialSum(values)

	fmt.Fprintf(out, "--- Calibration Mode: worker count ---\n")
	fmt.Fprintf(out, "Sample: %d elements, %d runs per candidate, candidates %v\n", len(values), opts.Repetitions, opts.Candidates)

	results := make([]calibrationResult, 0, len(opts.Candidates))
	for _, w := range opts.Candidates {
		if ctx.Err() != nil {
			fmt.Fprintf(out, "Calibration interrupted.\n")
			return apperrors.ExitErrorCanceled
		}
		d, err := measureWorkers(values, w, opts.Repetitions, want)
		results = append(results, calibrationResult{Workers: w, Duration: d, Err: err})
		logger.Debug("calibration candidate",
			logging.Int("workers", w), logging.Duration("median", d), logging.Err(err))
	}

	best, ok := bestResult(results)
	printCalibrationResults(out, results, best.Workers)
	if !ok {
		fmt.Fprintf(out, "Calibration failed: no candidate completed.\n")
		return apperrors.ExitErrorGeneric
	}

	profile := NewProfile()
	profile.OptimalWorkers = best.Workers
	profile.CalibrationSize = len(values)
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	printCalibrationOutput(out, profile)

	if opts.ProfilePath != "" {
		if err := profile.SaveProfile(opts.ProfilePath); err != nil {
			logger.Error("saving calibration profile", err, logging.String("path", opts.ProfilePath))
		} else {
			logger.Info("calibration profile saved", logging.String("path", opts.ProfilePath))
		}
	}
	return apperrors.ExitSuccess
}

// measureWorkers returns the median duration of reps runs of the manual
// parallel sum, failing if any run disagrees with want.
func measureWorkers(values []int, workers, reps int, want int) (time.Duration, error) {
	durations := make([]time.Duration, reps)
	for i := range durations {
		start := time.Now()
		got, err := summation.ParallelSum(values, workers)
		durations[i] = time.Since(start)
		if err != nil {
			return 0, err
		}
		if got != want {
			return 0, fmt.Errorf("workers=%d: sum %d, want %d", workers, got, want)
		}
	}
	slices.Sort(durations)
	return durations[len(durations)/2], nil
}

// bestResult picks the fastest successful result; ties go to fewer workers.
func bestResult(results []calibrationResult) (calibrationResult, bool) {
	var best calibrationResult
	found := false
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !found || r.Duration < best.Duration || (r.Duration == best.Duration && r.Workers < best.Workers) {
			best, found = r, true
		}
	}
	return best, found
}
