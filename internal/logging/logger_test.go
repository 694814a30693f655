package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewConsoleLogger_Levels(t *testing.T) {
	t.Parallel()
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantError bool
	}{
		{"debug", true, true, true},
		{"INFO", false, true, true},
		{"error", false, false, true},
		{"disabled", false, false, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger, err := NewConsoleLogger(&buf, "test", tt.level)
			if err != nil {
				t.Fatalf("NewConsoleLogger(%q): %v", tt.level, err)
			}
			logger.Debug("debug message")
			logger.Info("info message")
			logger.Error("error message", errors.New("boom"))

			out := buf.String()
			for msg, want := range map[string]bool{
				"debug message": tt.wantDebug,
				"info message":  tt.wantInfo,
				"error message": tt.wantError,
			} {
				if got := strings.Contains(out, msg); got != want {
					t.Errorf("level %s: %q logged = %v, want %v\n%s", tt.level, msg, got, want, out)
				}
			}
		})
	}
}

func TestNewConsoleLogger_InvalidLevel(t *testing.T) {
	t.Parallel()
	if _, err := NewConsoleLogger(&bytes.Buffer{}, "test", "loud"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestZerologAdapter_Fields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := NewConsoleLogger(&buf, "calibration", "debug")
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("trial finished",
		String("strategy", "partials"),
		Int("workers", 4),
		Duration("elapsed", 1500*time.Millisecond),
		Err(errors.New("slow")),
		Field{Key: "ok", Value: true},
	)
	logger.Error("save failed", errors.New("disk full"), String("path", "/tmp/p.json"))

	out := buf.String()
	for _, want := range []string{
		"component=calibration",
		"strategy=partials",
		"workers=4",
		"elapsed=",
		"error=slow",
		"ok=true",
		"disk full",
		"path=/tmp/p.json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestNop(t *testing.T) {
	t.Parallel()
	var l Logger = Nop{}
	l.Info("ignored", String("k", "v"))
	l.Debug("ignored")
	l.Error("ignored", errors.New("x"))
}
