package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/sumbench/internal/orchestration"
	"github.com/agbru/sumbench/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress line.
	ProgressRefreshRate = 100 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a real terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner and a run counter until progressChan is
// closed. It calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numStrategies int, out io.Writer) {
	defer wg.Done()
	tracker := orchestration.NewProgressTracker(numStrategies)
	if tracker == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	s.UpdateSuffix(progressSuffix(tracker))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case u, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(progressSuffix(tracker))
				return
			}
			tracker.Update(u)
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(tracker))
		}
	}
}

func progressSuffix(t *orchestration.ProgressTracker) string {
	done, failed, total := t.Counts()
	suffix := fmt.Sprintf(" %s %3.0f%% (%d/%d)", progressBar(t.Fraction(), ProgressBarWidth), t.Fraction()*100, done, total)
	if active := t.Active(); active != "" {
		suffix += fmt.Sprintf(" running %s%s%s", ui.ColorCyan(), active, ui.ColorReset())
	}
	if failed > 0 {
		suffix += fmt.Sprintf(" %s%d failed%s", ui.ColorRed(), failed, ui.ColorReset())
	}
	return suffix
}

// progressBar renders progress in [0, 1] as a bar of the given width.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	return strings.Repeat("█", count) + strings.Repeat("░", length-count)
}
