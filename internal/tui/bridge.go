package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/format"
	"github.com/agbru/sumbench/internal/orchestration"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so the bridge needs a pointer that survives copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send delivers msg to the program, or drops it when none is set.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter by
// forwarding updates as ProgressMsg.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress implements orchestration.ProgressReporter.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for u := range progressChan {
		t.ref.Send(ProgressMsg{Update: u, Generation: t.generation})
	}
}

// TUIResultPresenter implements orchestration.ResultPresenter by sending
// results to the dashboard instead of writing them.
type TUIResultPresenter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)

// PresentComparisonTable implements orchestration.ResultPresenter.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.BenchmarkResult, _ io.Writer) {
	cp := make([]orchestration.BenchmarkResult, len(results))
	copy(cp, results)
	t.ref.Send(RoundResultsMsg{Results: cp, Generation: t.generation})
}

// PresentResult implements orchestration.ResultPresenter. The dashboard
// already shows every row, so there is nothing more to send.
func (t *TUIResultPresenter) PresentResult(orchestration.BenchmarkResult, orchestration.PresentationOptions, io.Writer) {
}

// FormatDuration implements orchestration.DurationFormatter.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError implements orchestration.ErrorHandler.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(RoundErrorMsg{Err: err, Generation: t.generation})
	return apperrors.HandleCalculationError(err, duration, io.Discard, nil)
}
