package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// GameKeyMap holds the in-game key bindings.
// It doubles as a help.KeyMap for the footer.
type GameKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Rotate     key.Binding
	SoftDrop   key.Binding
	HardDrop   key.Binding
	Hold       key.Binding
	Pause      key.Binding
	NewGame    key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Rotate, k.HardDrop, k.Hold, k.Pause, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Rotate, k.SoftDrop},
		{k.HardDrop, k.Hold, k.Pause, k.NewGame},
		{k.Back, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("up", "w", "x"),
			key.WithHelp("↑/w", "rotate"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "soft drop"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "hard drop"),
		),
		Hold: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "hold"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("r", "n"),
			key.WithHelp("r", "new game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a game action.
// Bindings that are not game actions (screenshot, help) map to ActionNone.
func (k GameKeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Rotate):
		return core.ActionUp
	case key.Matches(msg, k.SoftDrop):
		return core.ActionDown
	case key.Matches(msg, k.HardDrop):
		return core.ActionJump
	case key.Matches(msg, k.Hold):
		return core.ActionHold
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.NewGame):
		return core.ActionRestart
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// MapKeyToFrame records the action for msg in frame.
// Returns true if the key was a quit request.
func (k GameKeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action := k.MapKey(msg)
	switch action {
	case core.ActionQuit:
		return true
	case core.ActionNone, core.ActionBack:
		return false
	}
	frame.Set(action)
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionScoreboard
	MenuActionBack
	MenuActionQuit
)

// MenuKeyMap holds the menu bindings.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Select, k.Scoreboard, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Scoreboard, k.Back, k.Quit},
	}
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/→", "difficulty"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/l", "next difficulty"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scoreboard: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key to a menu action.
func (k MenuKeyMap) MapKey(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Left):
		return MenuActionLeft
	case key.Matches(msg, k.Right):
		return MenuActionRight
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Scoreboard):
		return MenuActionScoreboard
	case key.Matches(msg, k.Back):
		return MenuActionBack
	}
	return MenuActionNone
}
