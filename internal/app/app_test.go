package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/agbru/sumbench/internal/calibration"
	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/logging"
	"github.com/agbru/sumbench/internal/orchestration"
)

func newTestApp(t *testing.T, args ...string) *Application {
	t.Helper()
	profile := filepath.Join(t.TempDir(), "profile.json")
	var errBuf bytes.Buffer
	a, err := New(append([]string{"sumbench"}, args...), &errBuf,
		WithLogger(logging.Nop{}), WithProfilePath(profile))
	if err != nil {
		t.Fatalf("New(%v): %v (stderr: %s)", args, err, errBuf.String())
	}
	return a
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	if a.Config.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", a.Config.Workers, runtime.NumCPU())
	}
	if want := []int{10_000_000, 100_000, 1_000_000}; len(a.Config.Sizes) != 3 || a.Config.Sizes[0] != want[0] {
		t.Errorf("Sizes = %v, want %v", a.Config.Sizes, want)
	}
	if a.Recorder == nil || a.Factory == nil {
		t.Error("recorder or factory not initialized")
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		help bool
	}{
		{"help", []string{"-h"}, true},
		{"unknown algo", []string{"-algo", "nope"}, false},
		{"bad range", []string{"-min", "5", "-max", "5"}, false},
		{"bad log level", []string{"-log-level", "loud"}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(append([]string{"sumbench"}, tt.args...), &bytes.Buffer{},
				WithProfilePath(filepath.Join(t.TempDir(), "p.json")))
			if err == nil {
				t.Fatal("expected an error")
			}
			if IsHelpError(err) != tt.help {
				t.Errorf("IsHelpError(%v) = %v, want %v", err, !tt.help, tt.help)
			}
		})
	}
}

func TestNew_UsesCalibratedWorkers(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")
	profile := calibration.NewProfile()
	profile.OptimalWorkers = 3
	if err := profile.SaveProfile(path); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	a, err := New([]string{"sumbench"}, &bytes.Buffer{}, WithLogger(logging.Nop{}), WithProfilePath(path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Config.Workers != 3 {
		t.Errorf("Workers = %d, want 3 from the profile", a.Config.Workers)
	}

	b, err := New([]string{"sumbench", "-workers", "5"}, &bytes.Buffer{}, WithLogger(logging.Nop{}), WithProfilePath(path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.Config.Workers != 5 {
		t.Errorf("Workers = %d, want explicit 5", b.Config.Workers)
	}
}

func TestRun_Quiet(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "-q", "-sizes", "100,7", "-min", "1", "-max", "2", "-workers", "3")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run = %d, want 0; output:\n%s", code, out.String())
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	keys := len(a.Factory.List())
	if len(lines) != 2*keys {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), 2*keys, out.String())
	}
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 4 {
			t.Fatalf("malformed quiet line %q", line)
		}
		if fields[0] != fields[2] {
			t.Errorf("line %q: sum of ones should equal the size", line)
		}
	}
}

func TestRun_Verbose(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "-sizes", "1k", "-algo", "manual", "-v", "-d", "-no-color", "-seed", "9")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run = %d, want 0; output:\n%s", code, out.String())
	}
	for _, want := range []string{"Array Size: 1,000", "Global Status: Success", "Memory Stats:", "System: CPU"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q:\n%s", want, out.String())
		}
	}
}

func TestRun_WritesReportAndMetrics(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	report := filepath.Join(dir, "report.txt")
	metricsFile := filepath.Join(dir, "sumbench.prom")
	a := newTestApp(t, "-q", "-sizes", "50", "-o", report, "-metrics-file", metricsFile)

	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitSuccess {
		t.Fatalf("Run = %d, want 0", code)
	}
	if _, err := os.Stat(report); err != nil {
		t.Errorf("report not written: %v", err)
	}
	data, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), "sumbench_runs_total") {
		t.Errorf("metrics file lacks sumbench_runs_total:\n%s", data)
	}
}

func TestRun_WritesTrace(t *testing.T) {
	t.Parallel()
	traceFile := filepath.Join(t.TempDir(), "spans.json")
	a := newTestApp(t, "-q", "-sizes", "20", "-algo", "sequential", "-trace", traceFile)

	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitSuccess {
		t.Fatalf("Run = %d, want 0", code)
	}
	data, err := os.ReadFile(traceFile)
	if err != nil {
		t.Fatalf("trace file not written: %v", err)
	}
	if !strings.Contains(string(data), `"sumbench.strategy"`) || !strings.Contains(string(data), `"sequential"`) {
		t.Errorf("trace file lacks the strategy span:\n%s", data)
	}
}

func TestRun_MetricsServer(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "-q", "-sizes", "10", "-metrics-addr", "127.0.0.1:0")
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitSuccess {
		t.Errorf("Run = %d, want 0", code)
	}
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "-q", "-sizes", "10")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if code := a.Run(ctx, &bytes.Buffer{}); code != apperrors.ExitErrorCanceled {
		t.Errorf("Run = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestNewPlan(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "-sizes", "5", "-min", "1", "-max", "2", "-workers", "3", "-concurrent")
	strategies, err := orchestration.GetStrategiesToRun("all", a.Factory)
	if err != nil {
		t.Fatal(err)
	}
	plan := a.newPlan(strategies)
	if plan.Options.Concurrency != len(strategies) {
		t.Errorf("Concurrency = %d, want %d", plan.Options.Concurrency, len(strategies))
	}
	if plan.Options.Summation.Workers != 3 || plan.Presentation.Workers != 3 {
		t.Errorf("workers not propagated: %+v", plan.Options.Summation)
	}
	if plan.Options.Observer == nil {
		t.Error("recorder not wired as observer")
	}
	values, err := plan.Generate(5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, v := range values {
		if v != 1 {
			t.Errorf("value %d outside [1, 2)", v)
		}
	}

	a.Config.Concurrent = false
	if got := a.newPlan(strategies).Options.Concurrency; got != 1 {
		t.Errorf("sequential Concurrency = %d, want 1", got)
	}
}
