package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/metrics"
	"github.com/agbru/sumbench/internal/orchestration"
)

func sampleResults() []orchestration.BenchmarkResult {
	return []orchestration.BenchmarkResult{
		{Strategy: "Sequential", Key: "sequential", Size: 1000, Sum: 50_500, Duration: 2 * time.Millisecond},
		{Strategy: "Manual (goroutines + mutex)", Key: "manual", Size: 1000, Sum: 50_500, Duration: time.Millisecond},
		{Strategy: "Broken", Key: "broken", Size: 1000, Err: errors.New("boom")},
	}
}

func TestCLIResultPresenter_PresentComparisonTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(sampleResults(), &buf)
	out := buf.String()

	for _, want := range []string{"Comparison Summary", "Strategy", "Throughput", "Sequential", "2.00ms", "sum=50,500", "Failure (boom)"} {
		if !strings.Contains(out, want) {
			t.Errorf("table should contain %q:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	header := lines[1]
	row := lines[2]
	if strings.Index(header, "Duration") != strings.Index(row, "2.00ms") {
		t.Errorf("columns are misaligned:\n%s\n%s", header, row)
	}
}

func TestCLIResultPresenter_PresentResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	res := sampleResults()[1]
	CLIResultPresenter{}.PresentResult(res, orchestration.PresentationOptions{Verbose: true, Workers: 4}, &buf)

	for _, want := range []string{"Sum: 50,500", "fastest: Manual", "workers: 4", "throughput"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output should contain %q: %q", want, buf.String())
		}
	}
}

func TestCLIResultPresenter_FormatDuration(t *testing.T) {
	t.Parallel()
	p := CLIResultPresenter{}
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "< 1µs"},
		{420 * time.Nanosecond, "< 1µs"},
		{999 * time.Nanosecond, "< 1µs"},
		{time.Microsecond, "1µs"},
		{1500 * time.Microsecond, "1.50ms"},
	}
	for _, tt := range tests {
		if got := p.FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestCLIResultPresenter_HandleError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	code := CLIResultPresenter{}.HandleError(context.DeadlineExceeded, time.Second, &buf)
	if code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
}

func TestAnalyzeResultsWithCLIPresenter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	code := orchestration.AnalyzeResults(sampleResults(), orchestration.PresentationOptions{}, CLIResultPresenter{}, &buf)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "fastest: Manual") {
		t.Errorf("fastest strategy should be reported:\n%s", buf.String())
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemorySnapshot{HeapAlloc: 2048, TotalAlloc: 4096, NumGC: 3, PauseTotalNs: 1_500_000}, &buf)
	for _, want := range []string{"2.0 KiB", "4.0 KiB", "GC cycles:       3", "1.50ms"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output should contain %q:\n%s", want, buf.String())
		}
	}
}
