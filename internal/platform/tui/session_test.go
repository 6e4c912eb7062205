package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewSessionModel(openStore(t), testConfig(), "bob", log.New(io.Discard))
}

func send(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = sm
	}
	return m
}

// gameTick is a tick for the game the session is currently hosting.
func gameTick(m SessionModel) TickMsg {
	return TickMsg{Loop: m.game.loop}
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newTestSession(t)

	if !strings.Contains(m.View(), "Tetris") {
		t.Fatal("menu should list the registered modes")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil {
		t.Fatal("enter should start the selected game")
	}

	m = send(t, m, gameTick(m))
	if lvl := m.game.State().Level; lvl != config.InitialLevelForPreset(config.DifficultyHard) {
		t.Errorf("level = %d, expected the hard preset start level", lvl)
	}

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	m = send(t, m, esc)
	m = send(t, m, gameTick(m), esc)
	if m.screen != screenMenu {
		t.Fatal("back while paused should return to the menu")
	}
	if m.menu.Preset() != config.DifficultyHard {
		t.Errorf("menu should remember the difficulty, got %s", m.menu.Preset())
	}
	if m.quitting {
		t.Error("returning to the menu must not quit")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := newTestSession(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("expected the scoreboard title")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Error("esc should return to the menu")
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t)
	next, cmd := m.Update(runeKey('q'))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q in the menu should quit the session")
	}
}

func TestSessionResizeReachesGame(t *testing.T) {
	m := newTestSession(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, tea.WindowSizeMsg{Width: 30, Height: 12})

	if !strings.Contains(m.View(), "too small") {
		t.Error("a tiny terminal should show the resize notice")
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if strings.Contains(m.View(), "too small") {
		t.Error("notice should clear once the terminal is large enough")
	}
}

func TestSessionDropsTicksFromPreviousGame(t *testing.T) {
	m := newTestSession(t)
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	stale := gameTick(m)
	m = send(t, m, esc, stale, esc)
	if m.screen != screenMenu {
		t.Fatal("expected to be back in the menu")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game.loop == stale.Loop {
		t.Fatal("a new game should run its own tick loop")
	}

	next, cmd := m.Update(stale)
	if cmd != nil {
		t.Error("a tick from the previous game must not start a second loop")
	}
	if next.(SessionModel).game.State() != m.game.State() {
		t.Error("a tick from the previous game must not step the new one")
	}
}
