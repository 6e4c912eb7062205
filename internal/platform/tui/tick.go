// Package tui hosts registered games in a terminal through Bubble Tea,
// either locally or over SSH. It owns the tick loop, key mapping, the menu
// and scoreboard screens and the persistence of finished runs.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Loop names the tick
// loop that scheduled it so a model can drop ticks left over from an
// earlier game.
type TickMsg struct {
	Loop string
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends tick messages for loop at
// the specified rate.
func tickCmd(loop string, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, Time: t}
	})
}
