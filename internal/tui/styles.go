package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/sumbench/internal/ui"
)

// Dashboard styles, rebuilt from the ui theme by initTUIStyles.
var (
	panelStyle     lipgloss.Style
	titleStyle     lipgloss.Style
	dimStyle       lipgloss.Style
	sizeStyle      lipgloss.Style
	durationStyle  lipgloss.Style
	successStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	runningStyle   lipgloss.Style
	footerKeyStyle lipgloss.Style
	cpuSparkStyle  lipgloss.Style
	memSparkStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds every style from the current ui theme. Run calls
// it again after the theme has been chosen.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	sizeStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	durationStyle = lipgloss.NewStyle().Foreground(t.Accent)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	runningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	footerKeyStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	cpuSparkStyle = lipgloss.NewStyle().Foreground(t.Accent)
	memSparkStyle = lipgloss.NewStyle().Foreground(t.Warning)
}
