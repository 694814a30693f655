package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/metrics"
	"github.com/agbru/sumbench/internal/orchestration"
	"github.com/agbru/sumbench/internal/sysmon"
)

const (
	// SampleInterval is the period between CPU and memory samples.
	SampleInterval = 500 * time.Millisecond
	// HistoryLength is the number of samples kept for the sparklines.
	HistoryLength = 40
)

// sizeRow is the dashboard state of one benchmark round.
type sizeRow struct {
	size     int
	results  []orchestration.BenchmarkResult
	err      error
	finished bool
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	keymap  KeyMap
	spinner spinner.Model
	version string
	plan    orchestration.Plan
	ref     *programRef

	parentCtx  context.Context
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64

	rows     []sizeRow
	progress *orchestration.ProgressTracker

	cpu       history
	mem       history
	heap      metrics.MemorySnapshot
	collector *metrics.MemoryCollector

	width     int
	height    int
	scroll    int
	startTime time.Time
	elapsed   time.Duration
	done      bool
	exitCode  int
}

// NewModel builds a dashboard that runs plan under parentCtx.
func NewModel(parentCtx context.Context, plan orchestration.Plan, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(runningStyle))
	return Model{
		keymap:    DefaultKeyMap(),
		spinner:   sp,
		version:   version,
		plan:      plan,
		ref:       &programRef{},
		parentCtx: parentCtx,
		ctx:       ctx,
		cancel:    cancel,
		cpu:       newHistory(HistoryLength),
		mem:       newHistory(HistoryLength),
		collector: metrics.NewMemoryCollector(),
		startTime: time.Now(),
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
		startRunCmd(m.ref, m.ctx, m.plan, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RoundStartedMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.rows = append(m.rows, sizeRow{size: msg.Size})
		m.progress = orchestration.NewProgressTracker(len(m.plan.Strategies))
		return m, nil

	case ProgressMsg:
		if msg.Generation != m.generation || m.progress == nil {
			return m, nil
		}
		m.progress.Update(msg.Update)
		return m, nil

	case RoundResultsMsg:
		if msg.Generation != m.generation || len(m.rows) == 0 {
			return m, nil
		}
		last := &m.rows[len(m.rows)-1]
		last.results = msg.Results
		last.finished = true
		m.progress = nil
		return m, nil

	case RoundErrorMsg:
		if msg.Generation != m.generation || len(m.rows) == 0 {
			return m, nil
		}
		m.rows[len(m.rows)-1].err = msg.Err
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		m.elapsed = time.Since(m.startTime)
		return m, tea.Batch(sampleMemStatsCmd(m.collector), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.heap = metrics.MemorySnapshot(msg)
		return m, nil

	case SysStatsMsg:
		m.cpu.push(msg.CPUPercent)
		m.mem.push(msg.MemPercent)
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.elapsed = time.Since(m.startTime)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation || m.done {
			return m, nil
		}
		m.done = true
		m.exitCode = apperrors.ExitCodeFor(msg.Err)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Rerun):
		if !m.done || m.parentCtx.Err() != nil {
			return m, nil
		}
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.rows = nil
		m.progress = nil
		m.scroll = 0
		m.done = false
		m.exitCode = apperrors.ExitSuccess
		m.startTime = time.Now()
		m.elapsed = 0
		return m, tea.Batch(
			tickCmd(),
			startRunCmd(m.ref, m.ctx, m.plan, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up):
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		m.scroll++
		return m, nil
	}
	return m, nil
}

// Run starts the dashboard over plan and blocks until the user quits or
// ctx ends. It returns the exit code of the last run.
func Run(ctx context.Context, plan orchestration.Plan, version string) int {
	initTUIStyles()

	model := NewModel(ctx, plan, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitCodeFor(ctx.Err())
		}
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRunCmd runs the whole plan and reports completion.
func startRunCmd(ref *programRef, ctx context.Context, plan orchestration.Plan, gen uint64) tea.Cmd {
	return func() tea.Msg {
		plan.BeforeRound = func(size int) {
			ref.Send(RoundStartedMsg{Size: size, Generation: gen})
		}
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{ref: ref, generation: gen}
		_, code := orchestration.RunPlan(ctx, plan, reporter, presenter, io.Discard)
		return RunCompleteMsg{ExitCode: code, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(SampleInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg(mc.Snapshot())
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd waits for ctx to end and reports it.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
