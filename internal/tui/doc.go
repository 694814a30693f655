// Package tui implements the interactive benchmark dashboard on top of
// bubbletea. The orchestration layer talks to it through the bridge types,
// which turn progress updates and results into bubbletea messages.
package tui
