package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/format"
	"github.com/agbru/sumbench/internal/orchestration"
	"github.com/agbru/sumbench/internal/ui"
)

// FormatQuietResult formats one result as "size key sum duration_ns", or
// "size key error message" for a failed run.
func FormatQuietResult(r orchestration.BenchmarkResult) string {
	if r.Err != nil {
		return fmt.Sprintf("%d %s error %v", r.Size, r.Key, r.Err)
	}
	return fmt.Sprintf("%d %s %d %d", r.Size, r.Key, r.Sum, r.Duration.Nanoseconds())
}

// DisplayQuietResults prints one line per result.
func DisplayQuietResults(out io.Writer, results []orchestration.BenchmarkResult) {
	for _, r := range results {
		fmt.Fprintln(out, FormatQuietResult(r))
	}
}

// WriteReportToFile writes a plain-text report of every round to path,
// creating parent directories as needed. An empty path is a no-op.
func WriteReportToFile(path string, rounds [][]orchestration.BenchmarkResult, workers int) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "failed to create directory")
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file")
	}
	defer file.Close()

	fmt.Fprintf(file, "# Array Summation Benchmark\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Workers: %d\n", workers)
	for _, results := range rounds {
		if len(results) == 0 {
			continue
		}
		fmt.Fprintf(file, "\nArray Size: %s\n", format.FormatInt(results[0].Size))
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(file, "  %-28s error: %v\n", r.Strategy, r.Err)
				continue
			}
			fmt.Fprintf(file, "  %-28s %12s  sum=%d\n", r.Strategy, format.FormatExecutionDuration(r.Duration), r.Sum)
		}
	}
	if err := file.Close(); err != nil {
		return apperrors.WrapError(err, "failed to write output file")
	}
	return nil
}

// DisplaySavedReport confirms where the report was written.
func DisplaySavedReport(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%sReport saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}

// QuietResultPresenter prints one machine-readable line per result to Out
// and ignores the writer handed to it by the orchestrator.
type QuietResultPresenter struct {
	Out io.Writer
}

var _ orchestration.ResultPresenter = QuietResultPresenter{}

// PresentComparisonTable implements orchestration.ResultPresenter.
func (q QuietResultPresenter) PresentComparisonTable(results []orchestration.BenchmarkResult, _ io.Writer) {
	DisplayQuietResults(q.Out, results)
}

// PresentResult implements orchestration.ResultPresenter.
func (QuietResultPresenter) PresentResult(orchestration.BenchmarkResult, orchestration.PresentationOptions, io.Writer) {
}

// FormatDuration implements orchestration.DurationFormatter.
func (QuietResultPresenter) FormatDuration(d time.Duration) string {
	return strconv.FormatInt(d.Nanoseconds(), 10)
}

// HandleError implements orchestration.ErrorHandler without printing.
func (QuietResultPresenter) HandleError(err error, _ time.Duration, _ io.Writer) int {
	return apperrors.ExitCodeFor(err)
}
