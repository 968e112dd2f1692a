// Package tui provides the Bubble Tea integration for the arcade platform.
// It maps terminal keys to game keys, drives the frame loop, and hosts the
// menu, scoreboard and SSH session screens.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. The simulation reads
// time from its own clock, so the timestamp is informational.
type TickMsg time.Time

// tickCmd schedules the next tick. A non-positive rate falls back to 60 Hz.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
