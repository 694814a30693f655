package tui

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/orchestration"
)

func TestProgramRefWithoutProgram(t *testing.T) {
	t.Parallel()
	ref := &programRef{}
	// Must not panic.
	ref.Send(TickMsg(time.Now()))
}

func TestTUIProgressReporterDrainsChannel(t *testing.T) {
	t.Parallel()
	reporter := &TUIProgressReporter{ref: &programRef{}}
	ch := make(chan orchestration.ProgressUpdate, 4)
	ch <- orchestration.ProgressUpdate{Index: 0, Key: "manual"}
	ch <- orchestration.ProgressUpdate{Index: 0, Key: "manual", Done: true}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 1, io.Discard)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("DisplayProgress did not return after the channel was closed")
	}
}

func TestTUIResultPresenter(t *testing.T) {
	t.Parallel()
	p := &TUIResultPresenter{ref: &programRef{}}

	if got := p.FormatDuration(1500 * time.Millisecond); got == "" {
		t.Error("FormatDuration returned an empty string")
	}
	if code := p.HandleError(nil, 0, io.Discard); code != apperrors.ExitSuccess {
		t.Errorf("HandleError(nil) = %d, want %d", code, apperrors.ExitSuccess)
	}
	if code := p.HandleError(errors.New("boom"), 0, io.Discard); code != apperrors.ExitErrorGeneric {
		t.Errorf("HandleError(boom) = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
	// Must not panic without a program.
	p.PresentComparisonTable([]orchestration.BenchmarkResult{{Strategy: "x"}}, io.Discard)
	p.PresentResult(orchestration.BenchmarkResult{}, orchestration.PresentationOptions{}, io.Discard)
}
