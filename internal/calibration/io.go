package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/sumbench/internal/format"
	"github.com/agbru/sumbench/internal/ui"
)

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, results []calibrationResult, bestWorkers int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sWorkers%s      │ %sMedian Time%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 25))
	for _, res := range results {
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			durationStr = format.FormatExecutionDuration(res.Duration)
		}
		highlight := ""
		if res.Workers == bestWorkers && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-12d%s │ %s%s%s%s\n", ui.ColorCyan(), res.Workers, ui.ColorReset(), ui.ColorYellow(), durationStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// printCalibrationOutput prints the one-line calibration verdict.
func printCalibrationOutput(out io.Writer, p *CalibrationProfile) {
	fmt.Fprintf(out, "\n%sCalibration%s: optimal workers=%s%d%s (%d CPUs, took %s)\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), p.OptimalWorkers, ui.ColorReset(),
		p.NumCPU, p.CalibrationTime)
}
