package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/sumbench/internal/errors"
)

// Plan describes a benchmark session: one round per array size.
type Plan struct {
	Sizes      []int
	Strategies []SelectedStrategy
	Options    Options
	// Presentation is passed to the presenter; Size is filled per round.
	Presentation PresentationOptions
	// Generate builds the array for one round.
	Generate func(size int) ([]int, error)
	// BeforeRound, if set, is called before each round is generated.
	BeforeRound func(size int)
	// Timeout is the limit ctx was created with, used to describe an
	// expired deadline. Zero leaves the context error as is.
	Timeout time.Duration
}

// RunPlan runs every round in order and returns the results of each round
// together with the first non-zero exit code, or ExitSuccess.
//
// Rounds stop early when ctx is done or when an array cannot be generated.
func RunPlan(ctx context.Context, plan Plan, reporter ProgressReporter, presenter ResultPresenter, out io.Writer) ([][]BenchmarkResult, int) {
	rounds := make([][]BenchmarkResult, 0, len(plan.Sizes))
	exitCode := apperrors.ExitSuccess

	for _, size := range plan.Sizes {
		if err := ctx.Err(); err != nil {
			return rounds, firstFailure(exitCode, presenter.HandleError(planError(err, plan.Timeout), 0, out))
		}
		if plan.BeforeRound != nil {
			plan.BeforeRound(size)
		}
		values, err := plan.Generate(size)
		if err != nil {
			fmt.Fprintf(out, "cannot generate array of size %d: %v\n", size, err)
			return rounds, firstFailure(exitCode, apperrors.ExitCodeFor(err))
		}

		results := ExecuteBenchmarks(ctx, plan.Strategies, values, plan.Options, reporter, out)
		presOpts := plan.Presentation
		presOpts.Size = size
		code := AnalyzeResults(results, presOpts, presenter, out)
		rounds = append(rounds, results)
		exitCode = firstFailure(exitCode, code)
	}
	return rounds, exitCode
}

// planError turns an expired deadline into a TimeoutError carrying the limit.
func planError(err error, timeout time.Duration) error {
	if timeout > 0 && errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "benchmark", Limit: timeout}
	}
	return err
}

func firstFailure(current, next int) int {
	if current != apperrors.ExitSuccess {
		return current
	}
	return next
}
