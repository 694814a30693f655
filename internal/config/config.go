// Package config defines the application configuration and parses it from
// command-line flags and SUMBENCH_* environment variables.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/summation"
)

const (
	// EnvPrefix is prepended to every environment variable override.
	EnvPrefix = "SUMBENCH_"
	// DefaultSizes are the array sizes benchmarked when none are given.
	DefaultSizes = "10000000,100000,1000000"
	// DefaultTimeout bounds a whole benchmark run.
	DefaultTimeout = time.Minute
	// DefaultLogLevel keeps diagnostic logs quiet unless asked for.
	DefaultLogLevel = "warn"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Sizes lists the array lengths to benchmark, in order.
	Sizes []int
	// Workers is the worker count for the parallel strategies (0 = adaptive).
	Workers int
	// Algo selects a single strategy key, or "all".
	Algo string
	// Seed makes data generation reproducible when non-zero.
	Seed uint
	// Min and Max bound generated values to [Min, Max).
	Min, Max int
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Concurrent runs strategies for the same size at the same time instead
	// of one after the other.
	Concurrent bool
	// Quiet prints one machine-readable line per strategy.
	Quiet bool
	// Verbose adds per-size system usage and environment details.
	Verbose bool
	// Details prints runtime memory statistics after the run.
	Details bool
	// NoColor disables ANSI colors.
	NoColor bool
	// TUI launches the interactive dashboard.
	TUI bool
	// Calibrate searches for the fastest worker count and exits.
	Calibrate bool
	// Interactive starts the REPL.
	Interactive bool
	// OutputFile receives a plain-text report when set.
	OutputFile string
	// MetricsAddr exposes Prometheus metrics over HTTP while running.
	MetricsAddr string
	// MetricsFile receives Prometheus metrics in text format after the run.
	MetricsFile string
	// TraceFile receives one JSON document per strategy span.
	TraceFile string
	// LogLevel is the zerolog level for diagnostic logs on stderr.
	LogLevel string
}

// ToSummationOptions converts the configuration into strategy options.
func (c AppConfig) ToSummationOptions() summation.Options {
	return summation.Options{Workers: c.Workers}
}

// ParseConfig parses command-line arguments into an AppConfig, then applies
// SUMBENCH_* environment overrides for flags that were not set explicitly,
// and finally validates the result.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The arguments, without the program name.
//   - errorWriter: Where usage and parse errors are written.
//   - availableAlgos: The registered strategy keys.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h/--help, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	var sizes string
	fs.StringVar(&sizes, "sizes", DefaultSizes, "Comma-separated array sizes (accepts k/m suffixes and _ separators).")
	fs.StringVar(&sizes, "s", DefaultSizes, "Shorthand for -sizes.")
	fs.IntVar(&config.Workers, "workers", 0, "Workers for the parallel strategies (0 = number of CPUs).")
	fs.IntVar(&config.Workers, "w", 0, "Shorthand for -workers.")
	fs.StringVar(&config.Algo, "algo", "all", fmt.Sprintf("Strategy to run: 'all' or one of %s.", strings.Join(availableAlgos, ", ")))
	fs.UintVar(&config.Seed, "seed", 0, "Seed for data generation (0 = random).")
	fs.IntVar(&config.Min, "min", 1, "Inclusive lower bound of generated values.")
	fs.IntVar(&config.Max, "max", 100, "Exclusive upper bound of generated values.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of the whole run.")
	fs.BoolVar(&config.Concurrent, "concurrent", false, "Run strategies concurrently instead of one at a time.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print one line per strategy, for scripting.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Show environment and system usage details.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&config.Details, "details", false, "Show memory statistics after the run.")
	fs.BoolVar(&config.Details, "d", false, "Shorthand for -details.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.TUI, "tui", false, "Launch the interactive dashboard.")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Find the fastest worker count and exit.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start the interactive shell.")
	fs.BoolVar(&config.Interactive, "i", false, "Shorthand for -interactive.")
	fs.StringVar(&config.OutputFile, "output", "", "Write a report to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for -output.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file.")
	fs.StringVar(&config.TraceFile, "trace", "", "Write OpenTelemetry spans as JSON to this file.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level (debug, info, warn, error, disabled).")

	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorWriter, "Benchmarks sequential and parallel strategies for summing random integer arrays.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)
	if !isFlagSetAny(fs, "sizes", "s") {
		if v := getEnvString("SIZES", ""); v != "" {
			sizes = v
		}
	}

	parsed, err := ParseSizes(sizes)
	if err != nil {
		fmt.Fprintln(errorWriter, err)
		return AppConfig{}, err
	}
	config.Sizes = parsed
	config.Algo = strings.ToLower(config.Algo)

	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(availableAlgos []string) error {
	if len(c.Sizes) == 0 {
		return apperrors.NewConfigError("at least one array size is required")
	}
	for _, s := range c.Sizes {
		if s < 0 {
			return apperrors.NewConfigError("array size must be non-negative, got %d", s)
		}
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("worker count must be >= 1 (or 0 for automatic), got %d", c.Workers)
	}
	if c.Max <= c.Min {
		return apperrors.NewConfigError("max (%d) must be greater than min (%d)", c.Max, c.Min)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown strategy %q (available: all, %s)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseSizes parses a comma-separated list of array sizes. Each entry may use
// underscores as digit separators and a k (x1000) or m (x1000000) suffix.
func ParseSizes(s string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(s, ",") {
		field = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(field, "_", "")))
		if field == "" {
			continue
		}
		mult := 1
		switch {
		case strings.HasSuffix(field, "k"):
			mult, field = 1_000, strings.TrimSuffix(field, "k")
		case strings.HasSuffix(field, "m"):
			mult, field = 1_000_000, strings.TrimSuffix(field, "m")
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, apperrors.NewConfigError("invalid array size %q", field)
		}
		if n < 0 {
			return nil, apperrors.NewConfigError("array size must be non-negative, got %d", n)
		}
		sizes = append(sizes, n*mult)
	}
	if len(sizes) == 0 {
		return nil, apperrors.NewConfigError("at least one array size is required")
	}
	return sizes, nil
}
