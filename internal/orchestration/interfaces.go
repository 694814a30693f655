package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/sumbench/internal/summation"
)

// BenchmarkResult is the outcome of one strategy run over one array.
type BenchmarkResult struct {
	// Strategy is the display name of the strategy (e.g. "Sequential").
	Strategy string
	// Key is the registry key of the strategy (e.g. "manual").
	Key string
	// Size is the number of elements summed.
	Size int
	// Sum is the total. It is meaningless when Err is set.
	Sum int
	// Duration is the wall-clock time of the run.
	Duration time.Duration
	// Err is the error returned by the strategy, if any.
	Err error
}

// SelectedStrategy pairs a strategy with its registry key.
type SelectedStrategy struct {
	Key      string
	Strategy summation.Strategy
}

// ProgressUpdate reports that the strategy at Index has started or finished.
type ProgressUpdate struct {
	Index int
	Key   string
	Done  bool
	Err   error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Size    int
	Workers int
	Verbose bool
	Details bool
}

// ProgressReporter displays benchmark progress.
//
// DisplayProgress runs in its own goroutine until progressChan is closed and
// must call wg.Done before returning.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer) {
	f(wg, progressChan, numStrategies, out)
}

// NullProgressReporter drains the progress channel without output.
// Used in quiet mode and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles run errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// ResultPresenter displays the results of one benchmark round.
type ResultPresenter interface {
	DurationFormatter
	ErrorHandler

	// PresentComparisonTable displays every result of the round.
	PresentComparisonTable(results []BenchmarkResult, out io.Writer)

	// PresentResult displays the agreed total, using the fastest run.
	PresentResult(result BenchmarkResult, opts PresentationOptions, out io.Writer)
}

// RunObserver is notified around every strategy run. The metrics recorder
// implements it.
type RunObserver interface {
	RunStarted(strategy string, size int)
	RunFinished(strategy string, size int, d time.Duration, err error)
}
