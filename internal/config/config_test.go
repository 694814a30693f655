package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/sumbench/internal/errors"
)

var testAlgos = []string{"aggregate", "manual", "partials", "sequential"}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("sumbench", nil, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{10_000_000, 100_000, 1_000_000}; !reflect.DeepEqual(cfg.Sizes, want) {
		t.Errorf("Sizes = %v, want %v", cfg.Sizes, want)
	}
	if cfg.Algo != "all" || cfg.Workers != 0 || cfg.Min != 1 || cfg.Max != 100 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %s, want %s", cfg.Timeout, DefaultTimeout)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{"-s", "1k,2_000", "-w", "3", "--algo", "MANUAL", "-q", "--seed", "9", "--timeout", "5s"}
	cfg, err := ParseConfig("sumbench", args, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Sizes, []int{1000, 2000}) {
		t.Errorf("Sizes = %v", cfg.Sizes)
	}
	if cfg.Workers != 3 || cfg.Algo != "manual" || !cfg.Quiet || cfg.Seed != 9 || cfg.Timeout != 5*time.Second {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := ParseConfig("sumbench", []string{"-h"}, io.Discard, testAlgos)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative workers", []string{"-w", "-1"}},
		{"unknown algo", []string{"--algo", "quantum"}},
		{"bad size", []string{"-s", "ten"}},
		{"negative size", []string{"-sizes=-5"}},
		{"empty sizes", []string{"-sizes", " , "}},
		{"inverted bounds", []string{"--min", "10", "--max", "10"}},
		{"zero timeout", []string{"--timeout", "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			_, err := ParseConfig("sumbench", tt.args, &stderr, testAlgos)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if !strings.Contains(stderr.String(), err.Error()) {
				t.Errorf("error %q not written to the error writer, got %q", err, stderr.String())
			}
		})
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SUMBENCH_WORKERS", "6")
	t.Setenv("SUMBENCH_SIZES", "10,20")
	t.Setenv("SUMBENCH_QUIET", "yes")
	t.Setenv("SUMBENCH_ALGO", "partials")
	t.Setenv("SUMBENCH_TRACE", "spans.json")

	cfg, err := ParseConfig("sumbench", []string{"--algo", "sequential"}, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != 6 {
		t.Errorf("Workers = %d, want 6 from env", cfg.Workers)
	}
	if !reflect.DeepEqual(cfg.Sizes, []int{10, 20}) {
		t.Errorf("Sizes = %v, want [10 20] from env", cfg.Sizes)
	}
	if !cfg.Quiet {
		t.Error("Quiet should be set from env")
	}
	if cfg.Algo != "sequential" {
		t.Errorf("flag should win over env, got Algo = %q", cfg.Algo)
	}
	if cfg.TraceFile != "spans.json" {
		t.Errorf("TraceFile = %q, want spans.json from env", cfg.TraceFile)
	}
}

func TestParseSizes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"10m,100k,1m", []int{10_000_000, 100_000, 1_000_000}, false},
		{" 7 , 0 ", []int{7, 0}, false},
		{"1_000", []int{1000}, false},
		{"", nil, true},
		{"abc", nil, true},
		{"-5", nil, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSizes(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSizes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSizes(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyAdaptiveWorkers(t *testing.T) {
	t.Parallel()
	if got := ApplyAdaptiveWorkers(AppConfig{}).Workers; got != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", got, runtime.NumCPU())
	}
	if got := ApplyAdaptiveWorkers(AppConfig{Workers: 3}).Workers; got != 3 {
		t.Errorf("explicit Workers overwritten: %d", got)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	if !parseBoolEnv("YES", false) || parseBoolEnv("0", true) || !parseBoolEnv("maybe", true) {
		t.Error("parseBoolEnv returned unexpected values")
	}
}
