package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/sumbench/internal/config"
	"github.com/agbru/sumbench/internal/datagen"
	"github.com/agbru/sumbench/internal/format"
	"github.com/agbru/sumbench/internal/orchestration"
	"github.com/agbru/sumbench/internal/summation"
	"github.com/agbru/sumbench/internal/ui"
)

// REPLConfig holds the initial settings of an interactive session.
type REPLConfig struct {
	DefaultAlgo string
	Size        int
	Workers     int
	Min, Max    int
	Seed        uint32
	Timeout     time.Duration
	Observer    orchestration.RunObserver

	// TracerProvider receives a span per strategy run. Nil uses the global
	// provider.
	TracerProvider trace.TracerProvider
}

// REPL is an interactive benchmark shell.
type REPL struct {
	config      REPLConfig
	factory     summation.StrategyFactory
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a session over the strategies of factory.
func NewREPL(factory summation.StrategyFactory, cfg REPLConfig) *REPL {
	if cfg.Size <= 0 {
		cfg.Size = 1_000_000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	if cfg.Max <= cfg.Min {
		cfg.Min, cfg.Max = datagen.DefaultMin, datagen.DefaultMax
	}
	algo := cfg.DefaultAlgo
	if algo == "" {
		algo = orchestration.AlgoAll
	}
	return &REPL{
		config:      cfg,
		factory:     factory,
		currentAlgo: algo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and executes commands until exit or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"sum> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		line := strings.TrimSpace(input)
		if line != "" && !r.processCommand(line) {
			return
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s=== Array Summation Benchmark: interactive mode ===%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srun [size]%s      - Benchmark the current selection\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %salgo <key>%s      - Select a strategy or 'all' (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(r.factory.List(), ", "))
	fmt.Fprintf(r.out, "  %sworkers <n>%s     - Set the worker count (0 = number of CPUs)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %ssize <n>%s        - Set the default array size\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s            - List available strategies\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s          - Display current settings\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s            - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s     - Leave interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand executes one command. It returns false on exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "run", "r":
		r.cmdRun(args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "workers", "w":
		r.cmdWorkers(args)
	case "size", "s":
		r.cmdSize(args)
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if size, err := config.ParseSizes(cmd); err == nil && len(size) == 1 {
			r.run(size[0])
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) cmdRun(args []string) {
	size := r.config.Size
	if len(args) > 0 {
		sizes, err := config.ParseSizes(args[0])
		if err != nil || len(sizes) != 1 {
			fmt.Fprintf(r.out, "%sInvalid size: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
			return
		}
		size = sizes[0]
	}
	r.run(size)
}

// run generates an array of size elements and benchmarks the selection.
func (r *REPL) run(size int) {
	selected, err := orchestration.GetStrategiesToRun(r.currentAlgo, r.factory)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	values, err := datagen.Generate(size, r.config.Min, r.config.Max, r.config.Seed)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	PrintSizeHeader(size, r.out)
	results := orchestration.ExecuteBenchmarks(ctx, selected, values, orchestration.Options{
		Summation:      summation.Options{Workers: r.config.Workers},
		Observer:       r.config.Observer,
		TracerProvider: r.config.TracerProvider,
	}, CLIProgressReporter{}, r.out)

	orchestration.SortResults(results)
	want, consistent := orchestration.CheckConsistency(results)
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-28s%s: %sError - %v%s\n",
				ui.ColorYellow(), res.Strategy, ui.ColorReset(), ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		status := ui.ColorGreen() + "ok" + ui.ColorReset()
		if res.Sum != want {
			status = ui.ColorRed() + "INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-28s%s: %s%10s%s  sum=%s %s\n",
			ui.ColorYellow(), res.Strategy, ui.ColorReset(),
			ui.ColorCyan(), CLIResultPresenter{}.FormatDuration(res.Duration), ui.ColorReset(),
			format.FormatInt(res.Sum), status)
	}
	if !consistent && len(results) > 0 && results[0].Err == nil {
		fmt.Fprintf(r.out, "%sStrategies disagree on the sum.%s\n", ui.ColorRed(), ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <key>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	key := strings.ToLower(args[0])
	if key != orchestration.AlgoAll {
		if _, err := r.factory.Get(key); err != nil {
			fmt.Fprintf(r.out, "%sUnknown strategy: %s%s\n", ui.ColorRed(), key, ui.ColorReset())
			fmt.Fprintf(r.out, "Available strategies: %s\n", strings.Join(r.factory.List(), ", "))
			return
		}
	}
	r.currentAlgo = key
	fmt.Fprintf(r.out, "Strategy changed to: %s%s%s\n", ui.ColorGreen(), key, ui.ColorReset())
}

func (r *REPL) cmdWorkers(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: workers <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		fmt.Fprintf(r.out, "%sInvalid worker count: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	r.config.Workers = n
	fmt.Fprintf(r.out, "Workers set to: %s%d%s\n", ui.ColorGreen(), n, ui.ColorReset())
}

func (r *REPL) cmdSize(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: size <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	sizes, err := config.ParseSizes(args[0])
	if err != nil || len(sizes) != 1 {
		fmt.Fprintf(r.out, "%sInvalid size: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	r.config.Size = sizes[0]
	fmt.Fprintf(r.out, "Size set to: %s%s%s\n", ui.ColorGreen(), format.FormatInt(sizes[0]), ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable strategies:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, key := range r.factory.List() {
		s, err := r.factory.Get(key)
		if err != nil {
			continue
		}
		marker := "  "
		if key == r.currentAlgo {
			marker = ui.ColorGreen() + "> " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), key, ui.ColorReset(), s.Name())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	workers := strconv.Itoa(r.config.Workers)
	if r.config.Workers == 0 {
		workers = fmt.Sprintf("auto (%d)", summation.Options{}.EffectiveWorkers())
	}
	fmt.Fprintf(r.out, "\n%sCurrent settings:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Strategy: %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Size:     %s%s%s\n", ui.ColorCyan(), format.FormatInt(r.config.Size), ui.ColorReset())
	fmt.Fprintf(r.out, "  Workers:  %s%s%s\n", ui.ColorCyan(), workers, ui.ColorReset())
	fmt.Fprintf(r.out, "  Values:   [%d, %d)\n", r.config.Min, r.config.Max)
	fmt.Fprintf(r.out, "  Timeout:  %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintln(r.out)
}
