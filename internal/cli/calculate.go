package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/sumbench/internal/config"
	"github.com/agbru/sumbench/internal/format"
	"github.com/agbru/sumbench/internal/orchestration"
	"github.com/agbru/sumbench/internal/sysmon"
	"github.com/agbru/sumbench/internal/ui"
)

// PrintExecutionConfig displays the run configuration and, in verbose mode,
// the host description.
func PrintExecutionConfig(cfg config.AppConfig, host sysmon.HostInfo, out io.Writer) {
	sizes := make([]string, len(cfg.Sizes))
	for i, s := range cfg.Sizes {
		sizes[i] = format.FormatInt(s)
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Array sizes: %s%s%s, values in [%d, %d), timeout %s%s%s.\n",
		ui.ColorMagenta(), strings.Join(sizes, ", "), ui.ColorReset(),
		cfg.Min, cfg.Max, ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, %s%d%s workers.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset())
	if cfg.Verbose {
		model := host.Model
		if model == "" {
			model = "unknown CPU"
		}
		fmt.Fprintf(out, "Host: %s, %d physical cores, %s RAM, SIMD [%s].\n",
			model, host.PhysicalCores, format.FormatBytes(host.TotalMemory), strings.Join(host.Features, " "))
	}
}

// PrintExecutionMode displays which strategies will run and how.
func PrintExecutionMode(strategies []orchestration.SelectedStrategy, concurrent bool, out io.Writer) {
	var modeDesc string
	switch {
	case len(strategies) == 1:
		modeDesc = fmt.Sprintf("Single strategy %s%s%s", ui.ColorGreen(), strategies[0].Strategy.Name(), ui.ColorReset())
	case concurrent:
		modeDesc = fmt.Sprintf("Concurrent comparison of %d strategies", len(strategies))
	default:
		modeDesc = fmt.Sprintf("Sequential comparison of %d strategies", len(strategies))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// PrintSizeHeader opens the section for one array size.
func PrintSizeHeader(size int, out io.Writer) {
	fmt.Fprintf(out, "\n%sArray Size: %s%s\n", ui.ColorBold(), format.FormatInt(size), ui.ColorReset())
}
