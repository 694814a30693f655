package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/format"
	"github.com/agbru/sumbench/internal/metrics"
	"github.com/agbru/sumbench/internal/orchestration"
	"github.com/agbru/sumbench/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numStrategies int, out io.Writer) {
	DisplayProgress(wg, progressChan, numStrategies, out)
}

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter with colored
// terminal output.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable prints one row per strategy. Padding is computed
// on the visible text so ANSI codes do not break the alignment.
func (p CLIResultPresenter) PresentComparisonTable(results []orchestration.BenchmarkResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	const nameHdr, durHdr, rateHdr = "Strategy", "Duration", "Throughput"
	nameW, durW, rateW := len(nameHdr), len(durHdr), len(rateHdr)
	rows := make([][3]string, len(results))
	for i, res := range results {
		rows[i] = [3]string{res.Strategy, p.FormatDuration(res.Duration), throughput(res)}
		nameW = max(nameW, len(rows[i][0]))
		durW = max(durW, len([]rune(rows[i][1])))
		rateW = max(rateW, len(rows[i][2]))
	}

	fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s%s%s   %sStatus%s\n",
		ui.ColorUnderline(), nameHdr, ui.ColorReset(), padRight("", nameW-len(nameHdr)),
		ui.ColorUnderline(), durHdr, ui.ColorReset(), padRight("", durW-len(durHdr)),
		ui.ColorUnderline(), rateHdr, ui.ColorReset(), padRight("", rateW-len(rateHdr)),
		ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%sFailure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%sSuccess%s sum=%s", ui.ColorGreen(), ui.ColorReset(), format.FormatInt(res.Sum))
		}
		name, dur, rate := rows[i][0], rows[i][1], rows[i][2]
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s   %s\n",
			ui.ColorBlue(), name, ui.ColorReset(), padRight("", nameW-len(name)),
			ui.ColorYellow(), dur, ui.ColorReset(), padRight("", durW-len([]rune(dur))),
			rate, padRight("", rateW-len(rate)),
			status)
	}
}

func throughput(res orchestration.BenchmarkResult) string {
	if res.Err != nil {
		return "-"
	}
	return format.FormatThroughput(res.Size, res.Duration.Seconds())
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult prints the agreed sum and the fastest strategy.
func (p CLIResultPresenter) PresentResult(result orchestration.BenchmarkResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "Sum: %s%s%s (fastest: %s%s%s in %s)\n",
		ui.ColorGreen(), format.FormatInt(result.Sum), ui.ColorReset(),
		ui.ColorCyan(), result.Strategy, ui.ColorReset(),
		p.FormatDuration(result.Duration))
	if opts.Verbose {
		fmt.Fprintf(out, "  Elements: %s, workers: %d, throughput: %s\n",
			format.FormatInt(result.Size), opts.Workers, throughput(result))
	}
}

// FormatDuration implements orchestration.DurationFormatter. Timings below
// the microsecond resolution of the table read "< 1µs".
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	if d < time.Microsecond {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// HandleError implements orchestration.ErrorHandler.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats shows the memory used by the run.
func DisplayMemoryStats(delta metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(delta.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(delta.TotalAlloc))
	fmt.Fprintf(out, "  Obtained from OS: %s\n", format.FormatBytes(delta.Sys))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.PauseTotalNs)/1e6)
}
