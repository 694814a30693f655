package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/summation"
)

const tracerName = "github.com/agbru/sumbench/internal/orchestration"

// ProgressBufferMultiplier sizes the progress channel so that a slow
// reporter never blocks a run: every run sends exactly two updates.
const ProgressBufferMultiplier = 2

// Options configures one benchmark round.
type Options struct {
	// Summation is passed to every strategy.
	Summation summation.Options
	// Concurrency bounds how many strategies run at the same time. Values
	// below 1 mean 1, so that strategies do not compete for cores.
	Concurrency int
	// Observer, if set, is notified around every run.
	Observer RunObserver
	// TracerProvider creates the span of every run. Nil uses the global
	// provider.
	TracerProvider trace.TracerProvider
}

// ExecuteBenchmarks runs every strategy over values and returns one result
// per strategy, in input order.
//
// Strategy errors are recorded in the results and never abort the round.
// A cancelled ctx makes the remaining strategies fail fast with the context
// error; a strategy that has started is never interrupted.
func ExecuteBenchmarks(ctx context.Context, strategies []SelectedStrategy, values []int, opts Options, reporter ProgressReporter, out io.Writer) []BenchmarkResult {
	results := make([]BenchmarkResult, len(strategies))
	progressChan := make(chan ProgressUpdate, len(strategies)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(strategies), out)

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)

	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(tracerName)

	for i, sel := range strategies {
		i, sel := i, sel
		g.Go(func() error {
			progressChan <- ProgressUpdate{Index: i, Key: sel.Key}
			results[i] = runOne(ctx, tracer, sel, values, opts)
			progressChan <- ProgressUpdate{Index: i, Key: sel.Key, Done: true, Err: results[i].Err}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func runOne(ctx context.Context, tracer trace.Tracer, sel SelectedStrategy, values []int, opts Options) BenchmarkResult {
	size := len(values)
	ctx, span := tracer.Start(ctx, "sumbench.strategy", trace.WithAttributes(
		attribute.String("strategy.key", sel.Key),
		attribute.Int("array.size", size),
		attribute.Int("workers", opts.Summation.Workers),
	))
	defer span.End()

	if opts.Observer != nil {
		opts.Observer.RunStarted(sel.Key, size)
	}

	start := time.Now()
	sum, err := sel.Strategy.Sum(ctx, values, opts.Summation)
	elapsed := time.Since(start)
	if err != nil && !apperrors.IsContextError(err) {
		err = apperrors.CalculationError{Strategy: sel.Key, Size: size, Cause: err}
	}

	if opts.Observer != nil {
		opts.Observer.RunFinished(sel.Key, size, elapsed, err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("sum", strconv.Itoa(sum)))
	}

	return BenchmarkResult{
		Strategy: sel.Strategy.Name(),
		Key:      sel.Key,
		Size:     size,
		Sum:      sum,
		Duration: elapsed,
		Err:      err,
	}
}

// SortResults orders results with successes first, fastest first.
func SortResults(results []BenchmarkResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})
}

// AnalyzeResults sorts the results, presents the comparison table and checks
// that every successful run produced the same sum. It returns an exit code
// from the apperrors package.
func AnalyzeResults(results []BenchmarkResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	SortResults(results)

	var firstValid *BenchmarkResult
	var firstErr error
	for i := range results {
		if results[i].Err != nil {
			if firstErr == nil {
				firstErr = results[i].Err
			}
			continue
		}
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the sum.\n")
		return presenter.HandleError(firstErr, 0, out)
	}

	if _, ok := CheckConsistency(results); !ok {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The strategies disagree on the sum.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}

// CheckConsistency reports the common sum of the successful results and
// whether they all agree. It returns false when nothing succeeded.
func CheckConsistency(results []BenchmarkResult) (int, bool) {
	found := false
	var want int
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !found {
			want, found = r.Sum, true
			continue
		}
		if r.Sum != want {
			return want, false
		}
	}
	return want, found
}
