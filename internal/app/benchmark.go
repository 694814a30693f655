package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/sumbench/internal/cli"
	"github.com/agbru/sumbench/internal/datagen"
	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/logging"
	"github.com/agbru/sumbench/internal/metrics"
	"github.com/agbru/sumbench/internal/orchestration"
	"github.com/agbru/sumbench/internal/sysmon"
)

// newPlan turns the configuration into a benchmark plan. Strategies run one
// at a time unless -concurrent is set.
func (a *Application) newPlan(strategies []orchestration.SelectedStrategy) orchestration.Plan {
	cfg := a.Config
	concurrency := 1
	if cfg.Concurrent {
		concurrency = len(strategies)
	}
	return orchestration.Plan{
		Sizes:      cfg.Sizes,
		Strategies: strategies,
		Options: orchestration.Options{
			Summation:   cfg.ToSummationOptions(),
			Concurrency: concurrency,
			Observer:    a.Recorder,

			TracerProvider: a.TracerProvider,
		},
		Presentation: orchestration.PresentationOptions{
			Workers: cfg.Workers,
			Verbose: cfg.Verbose,
			Details: cfg.Details,
		},
		Timeout: cfg.Timeout,
		Generate: func(size int) ([]int, error) {
			return datagen.Generate(size, cfg.Min, cfg.Max, uint32(cfg.Seed))
		},
	}
}

// runBenchmark runs every configured size through the selected strategies
// and prints the results.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.withLifecycle(ctx)
	defer cancel()

	strategies, err := orchestration.GetStrategiesToRun(a.Config.Algo, a.Factory)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	quiet := a.Config.Quiet
	if !quiet {
		cli.PrintExecutionConfig(a.Config, sysmon.DescribeHost(), out)
		cli.PrintExecutionMode(strategies, a.Config.Concurrent, out)
	}

	var (
		reporter  orchestration.ProgressReporter
		presenter orchestration.ResultPresenter
		planOut   = out
	)
	if quiet {
		reporter = orchestration.NullProgressReporter{}
		presenter = cli.QuietResultPresenter{Out: out}
		planOut = io.Discard
	} else {
		reporter = cli.CLIProgressReporter{}
		presenter = cli.CLIResultPresenter{}
	}

	plan := a.newPlan(strategies)
	plan.BeforeRound = func(size int) {
		a.Logger.Debug("round started", logging.Int("size", size), logging.Int("workers", a.Config.Workers))
		if quiet {
			return
		}
		cli.PrintSizeHeader(size, out)
		if a.Config.Verbose {
			s := sysmon.Sample()
			fmt.Fprintf(out, "System: CPU %.1f%%, memory %.1f%%\n", s.CPUPercent, s.MemPercent)
		}
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	rounds, exitCode := orchestration.RunPlan(ctx, plan, reporter, presenter, planOut)
	if a.Config.Details && !quiet {
		cli.DisplayMemoryStats(collector.Snapshot().Sub(before), out)
	}

	if a.Config.OutputFile != "" && len(rounds) > 0 {
		if err := cli.WriteReportToFile(a.Config.OutputFile, rounds, a.Config.Workers); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving report: %v\n", err)
			if exitCode == apperrors.ExitSuccess {
				exitCode = apperrors.ExitErrorGeneric
			}
		} else if !quiet {
			cli.DisplaySavedReport(out, a.Config.OutputFile)
		}
	}
	return exitCode
}
