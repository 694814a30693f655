package tui

import (
	"time"

	"github.com/agbru/sumbench/internal/metrics"
	"github.com/agbru/sumbench/internal/orchestration"
)

// RoundStartedMsg announces that the array for a size is being generated.
type RoundStartedMsg struct {
	Size       int
	Generation uint64
}

// ProgressMsg forwards one orchestration progress update.
type ProgressMsg struct {
	Update     orchestration.ProgressUpdate
	Generation uint64
}

// RoundResultsMsg carries the sorted results of one round.
type RoundResultsMsg struct {
	Results    []orchestration.BenchmarkResult
	Generation uint64
}

// RoundErrorMsg reports a round in which no strategy succeeded.
type RoundErrorMsg struct {
	Err        error
	Generation uint64
}

// RunCompleteMsg is sent once every round has finished.
type RunCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// MemStatsMsg carries a runtime memory snapshot of this process.
type MemStatsMsg metrics.MemorySnapshot

// ContextCancelledMsg reports that the run context ended before the run did.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
