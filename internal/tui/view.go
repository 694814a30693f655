package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/sumbench/internal/format"
	"github.com/agbru/sumbench/internal/orchestration"
)

const (
	// chromeHeight is the number of lines used by the header, the system
	// panel and the footer.
	chromeHeight = 8
	nameWidth    = 28
)

// View renders the dashboard.
func (m Model) View() string {
	header := m.renderHeader()
	body := m.renderBody()
	sys := panelStyle.Render(m.renderSystem())
	footer := m.renderFooter()
	return lipgloss.JoinVertical(lipgloss.Left, header, body, sys, footer)
}

func (m Model) renderHeader() string {
	status := runningStyle.Render(m.spinner.View() + " running")
	if m.done {
		status = successStyle.Render("done")
		if m.exitCode != 0 {
			status = errorStyle.Render(fmt.Sprintf("done (exit %d)", m.exitCode))
		}
	}
	return fmt.Sprintf("%s %s  %s  %s",
		titleStyle.Render("sumbench"),
		dimStyle.Render(m.version),
		status,
		dimStyle.Render(format.FormatExecutionDuration(m.elapsed)))
}

// bodyLines returns one line per round header and per result.
func (m Model) bodyLines() []string {
	var lines []string
	for i, row := range m.rows {
		lines = append(lines, sizeStyle.Render("Array Size: "+format.FormatInt(row.size)))
		if !row.finished {
			lines = append(lines, m.renderRunning())
		}
		for _, r := range row.results {
			lines = append(lines, renderResult(r))
		}
		if row.err != nil {
			lines = append(lines, errorStyle.Render("  no strategy completed: "+row.err.Error()))
		}
		if i < len(m.rows)-1 {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		lines = append(lines, dimStyle.Render("generating data..."))
	}
	return lines
}

func (m Model) renderBody() string {
	lines := m.bodyLines()
	if m.height > chromeHeight {
		visible := m.height - chromeHeight
		start := min(m.scroll, max(len(lines)-visible, 0))
		end := min(start+visible, len(lines))
		lines = lines[start:end]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRunning() string {
	if m.progress == nil {
		return "  " + m.spinner.View() + dimStyle.Render(" generating data")
	}
	done, _, total := m.progress.Counts()
	s := fmt.Sprintf("  %s %d/%d", m.spinner.View(), done, total)
	if active := m.progress.Active(); active != "" {
		s += " " + runningStyle.Render(active)
	}
	return s
}

func renderResult(r orchestration.BenchmarkResult) string {
	name := r.Strategy
	if len(name) < nameWidth {
		name += strings.Repeat(" ", nameWidth-len(name))
	}
	if r.Err != nil {
		return "  " + name + errorStyle.Render("failed: "+r.Err.Error())
	}
	return fmt.Sprintf("  %s%s  %s",
		name,
		durationStyle.Render(format.FormatExecutionDuration(r.Duration)),
		successStyle.Render("sum="+format.FormatInt(r.Sum)))
}

func (m Model) renderSystem() string {
	return fmt.Sprintf("CPU %s %5.1f%%\nMEM %s %5.1f%%\nheap %s  gc %d",
		cpuSparkStyle.Render(sparkline(m.cpu.samples)), m.cpu.last(),
		memSparkStyle.Render(sparkline(m.mem.samples)), m.mem.last(),
		format.FormatBytes(m.heap.HeapAlloc), m.heap.NumGC)
}

func (m Model) renderFooter() string {
	help := m.keymap.ShortHelp()
	parts := make([]string, len(help))
	for i, b := range help {
		h := b.Help()
		parts[i] = footerKeyStyle.Render(h.Key) + " " + dimStyle.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}
