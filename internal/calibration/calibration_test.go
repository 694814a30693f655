package calibration

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/sumbench/internal/config"
	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/logging"
)

func testConfig() config.AppConfig {
	return config.AppConfig{Min: 1, Max: 100}
}

func TestRunCalibration(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")
	var out bytes.Buffer

	code := RunCalibration(context.Background(), testConfig(), Options{
		SampleSize:  10_000,
		Repetitions: 2,
		Candidates:  []int{1, 2, 4},
		ProfilePath: path,
		Seed:        7,
	}, &out, logging.Nop{})

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	for _, want := range []string{"Calibration Summary", "(Optimal)", "optimal workers="} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output should contain %q", want)
		}
	}
	w, ok := CachedWorkers(path)
	if !ok || (w != 1 && w != 2 && w != 4) {
		t.Errorf("CachedWorkers = %d, %v", w, ok)
	}
}

func TestRunCalibration_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	code := RunCalibration(ctx, testConfig(), Options{SampleSize: 100, Candidates: []int{1}}, &out, logging.Nop{})
	if code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestRunCalibration_InvalidRange(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{Min: 10, Max: 10}
	code := RunCalibration(context.Background(), cfg, Options{SampleSize: 100}, &bytes.Buffer{}, logging.Nop{})
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestBestResult(t *testing.T) {
	t.Parallel()
	results := []calibrationResult{
		{Workers: 1, Duration: 5 * time.Millisecond},
		{Workers: 2, Duration: 2 * time.Millisecond},
		{Workers: 4, Duration: 2 * time.Millisecond},
		{Workers: 8, Err: errors.New("boom")},
	}
	best, ok := bestResult(results)
	if !ok || best.Workers != 2 {
		t.Errorf("bestResult = %+v, %v; want workers=2", best, ok)
	}

	if _, ok := bestResult([]calibrationResult{{Workers: 1, Err: errors.New("x")}}); ok {
		t.Error("bestResult should fail when nothing succeeded")
	}
}

func TestMeasureWorkers_InvalidWorkers(t *testing.T) {
	t.Parallel()
	if _, err := measureWorkers([]int{1, 2, 3}, 0, 1, 6); err == nil {
		t.Error("measureWorkers should propagate the invalid worker count")
	}
}
