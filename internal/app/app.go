// Package app wires configuration, strategies and presentation together and
// runs the selected mode: benchmark, calibration, dashboard or shell.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/sumbench/internal/calibration"
	"github.com/agbru/sumbench/internal/cli"
	"github.com/agbru/sumbench/internal/config"
	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/logging"
	"github.com/agbru/sumbench/internal/metrics"
	"github.com/agbru/sumbench/internal/orchestration"
	"github.com/agbru/sumbench/internal/server"
	"github.com/agbru/sumbench/internal/summation"
	"github.com/agbru/sumbench/internal/tracing"
	"github.com/agbru/sumbench/internal/tui"
	"github.com/agbru/sumbench/internal/ui"
)

// Application represents the sumbench application instance.
type Application struct {
	Config      config.AppConfig
	Factory     summation.StrategyFactory
	ErrWriter   io.Writer
	Logger      logging.Logger
	Recorder    *metrics.Recorder
	ProfilePath string

	// TracerProvider is set by Run when -trace is given.
	TracerProvider trace.TracerProvider
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom StrategyFactory for the application.
func WithFactory(f summation.StrategyFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger replaces the console logger built from --log-level.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithProfilePath overrides where the calibration profile is read and saved.
func WithProfilePath(path string) AppOption {
	return func(a *Application) { a.ProfilePath = path }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = summation.GlobalFactory()
	}

	programName := "sumbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}

	if app.Logger == nil {
		logger, err := logging.NewConsoleLogger(errWriter, "sumbench", cfg.LogLevel)
		if err != nil {
			fmt.Fprintf(errWriter, "Configuration error: %v\n", err)
			return nil, apperrors.NewConfigError("invalid -log-level: %v", err)
		}
		app.Logger = logger
	}
	if app.ProfilePath == "" {
		app.ProfilePath = calibration.GetDefaultProfilePath()
	}

	if cfg.Workers == 0 {
		if workers, ok := calibration.CachedWorkers(app.ProfilePath); ok {
			cfg.Workers = workers
			app.Logger.Debug("using calibrated worker count",
				logging.Int("workers", workers), logging.String("profile", app.ProfilePath))
		} else {
			cfg = config.ApplyAdaptiveWorkers(cfg)
		}
	}

	app.Config = cfg
	app.Recorder = metrics.NewRecorder()
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}

	if a.Config.MetricsAddr != "" {
		stop, err := a.startMetricsServer(ctx)
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return apperrors.ExitErrorConfig
		}
		defer stop()
	}

	if a.Config.TraceFile != "" {
		exporter, err := tracing.Create(a.Config.TraceFile, Version)
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return apperrors.ExitErrorConfig
		}
		a.TracerProvider = exporter.Provider()
		defer func() {
			if err := exporter.Close(context.WithoutCancel(ctx)); err != nil {
				a.Logger.Error("writing trace file", err, logging.String("path", a.Config.TraceFile))
			}
		}()
	}

	var exitCode int
	switch {
	case a.Config.Interactive:
		exitCode = a.runREPL(out)
	case a.Config.TUI:
		exitCode = a.runTUI(ctx)
	default:
		exitCode = a.runBenchmark(ctx, out)
	}

	if a.Config.MetricsFile != "" {
		if err := a.Recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
			a.Logger.Error("writing metrics file", err, logging.String("path", a.Config.MetricsFile))
			if exitCode == apperrors.ExitSuccess {
				exitCode = apperrors.ExitErrorGeneric
			}
		}
	}
	a.Logger.Debug("run finished", logging.Int("exit_code", exitCode))
	return exitCode
}

// withLifecycle bounds ctx by the configured timeout and by SIGINT/SIGTERM.
func (a *Application) withLifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// startMetricsServer binds the metrics address and serves in the background.
// The returned function stops the server and waits for it.
func (a *Application) startMetricsServer(ctx context.Context) (func(), error) {
	srv := server.New(a.Config.MetricsAddr, a.Recorder, a.Logger)
	if _, err := srv.Listen(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(ctx); err != nil {
			a.Logger.Error("metrics server", err)
		}
	}()
	return func() {
		cancel()
		<-done
	}, nil
}

// runCalibration runs the full calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	opts := calibration.Options{
		ProfilePath: a.ProfilePath,
		Seed:        uint32(a.Config.Seed),
	}
	return calibration.RunCalibration(ctx, a.Config, opts, out, a.Logger)
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	strategies, err := orchestration.GetStrategiesToRun(a.Config.Algo, a.Factory)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	ctx, cancel := a.withLifecycle(ctx)
	defer cancel()
	return tui.Run(ctx, a.newPlan(strategies), Version)
}

// runREPL starts the interactive shell on stdin.
func (a *Application) runREPL(out io.Writer) int {
	size := 0
	if len(a.Config.Sizes) > 0 {
		size = a.Config.Sizes[0]
	}
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Size:        size,
		Workers:     a.Config.Workers,
		Min:         a.Config.Min,
		Max:         a.Config.Max,
		Seed:        uint32(a.Config.Seed),
		Timeout:     a.Config.Timeout,
		Observer:    a.Recorder,

		TracerProvider: a.TracerProvider,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
