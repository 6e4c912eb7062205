package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// scriptedGame ends after overAfter steps and records what the host did.
type scriptedGame struct {
	overAfter int
	steps     int
	resets    int
	resizes   [][2]int
	paused    bool
	last      core.InputFrame
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.paused = false
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.last = in.Clone()
	if in.Has(core.ActionRestart) && (g.paused || g.steps >= g.overAfter) {
		g.steps = 0
		g.paused = false
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if !g.paused && g.steps < g.overAfter {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(s *core.Screen) {
	s.Clear()
	s.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{
		Score:    g.steps * 10,
		Level:    2,
		Lines:    g.steps,
		Pieces:   g.steps + 1,
		GameOver: g.steps >= g.overAfter,
		Paused:   g.paused,
	}
}

func (g *scriptedGame) Resize(w, h int) { g.resizes = append(g.resizes, [2]int{w, h}) }

func (g *scriptedGame) MinSize() (int, int) { return 20, 10 }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 1}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func tick(t *testing.T, m GameModel, n int) GameModel {
	t.Helper()
	for range n {
		m = update(t, m, TickMsg{Loop: m.loop})
	}
	return m
}

func TestGameModelSavesRunOnce(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{overAfter: 20}
	m := NewGameModel(game, store, testConfig()).WithPlayer("alice")
	m.Init()

	m = tick(t, m, 25)
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}
	if m.LastRunID() == "" {
		t.Fatal("expected a saved run id")
	}

	runs, err := store.RecentRuns("scripted", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected exactly one run, got %d", len(runs))
	}
	r := runs[0]
	if r.Player != "alice" || r.Score != 200 || r.Lines != 20 || r.Level != 2 || r.Pieces != 21 {
		t.Errorf("unexpected run %+v", r)
	}
	// 19 playing ticks at 10 per second.
	if r.Duration != time.Second {
		t.Errorf("duration = %v, expected 1s", r.Duration)
	}

	best, err := store.HighScore("scripted")
	if err != nil || best != 200 {
		t.Errorf("HighScore() = %d, %v", best, err)
	}
}

func TestGameModelRestartStartsNewRun(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{overAfter: 3}
	m := NewGameModel(game, store, testConfig())
	m.Init()

	m = tick(t, m, 5)
	m = update(t, m, runeKey('r'))
	m = tick(t, m, 5)

	runs, err := store.RecentRuns("scripted", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected two runs after restart, got %d", len(runs))
	}
}

func TestGameModelWithoutStore(t *testing.T) {
	m := NewGameModel(&scriptedGame{overAfter: 1}, nil, testConfig())
	m.Init()
	m = tick(t, m, 3)
	if !m.State().GameOver {
		t.Error("expected game over")
	}
	if m.LastRunID() != "" {
		t.Error("no run should be saved without a store")
	}
}

func TestGameModelResizeKeepsSession(t *testing.T) {
	game := &scriptedGame{overAfter: 100}
	m := NewGameModel(game, nil, testConfig())
	m.Init()
	m = tick(t, m, 5)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if game.resets != 1 {
		t.Errorf("resize should not reset, resets = %d", game.resets)
	}
	if game.steps != 5 {
		t.Errorf("steps = %d, expected the session to continue", game.steps)
	}
	got := game.resizes[len(game.resizes)-1]
	if got[0] != 100 || got[1] >= 40 || got[1] < 10 {
		t.Errorf("resize = %v, expected width 100 and room for the footer", got)
	}
}

func TestGameModelFooter(t *testing.T) {
	m := NewGameModel(&scriptedGame{overAfter: 100}, nil, testConfig())
	m.Init()

	view := m.View()
	if !strings.Contains(view, "rotate") {
		t.Error("expected the help footer on a roomy screen")
	}
	if lines := strings.Count(view, "\n") + 1; lines != 24 {
		t.Errorf("view has %d lines, expected 24", lines)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})
	if strings.Contains(m.View(), "rotate") {
		t.Error("footer should be dropped when the game needs every row")
	}
}

func TestGameModelBack(t *testing.T) {
	game := &scriptedGame{overAfter: 100}
	m := NewGameModel(game, nil, testConfig()).Embedded()
	m.Init()

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	m = update(t, m, esc)
	if m.BackToMenu() {
		t.Fatal("first back should pause, not leave")
	}
	m = tick(t, m, 1)
	if !m.State().Paused {
		t.Fatal("expected pause after back")
	}
	m = update(t, m, esc)
	if !m.BackToMenu() {
		t.Error("back while paused should leave the game")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&scriptedGame{overAfter: 100}, nil, testConfig())
	next, cmd := m.Update(runeKey('q'))
	if !next.(GameModel).IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
	if next.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestGameModelForwardsInput(t *testing.T) {
	game := &scriptedGame{overAfter: 100}
	m := NewGameModel(game, nil, testConfig())
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, runeKey('c'))
	m = tick(t, m, 1)

	if game.last.Count(core.ActionLeft) != 2 || !game.last.Has(core.ActionHold) {
		t.Errorf("unexpected frame %+v", game.last)
	}

	tick(t, m, 1)
	if game.last.Has(core.ActionLeft) {
		t.Error("frame should be cleared after each tick")
	}
}

func TestGameModelIgnoresForeignTicks(t *testing.T) {
	game := &scriptedGame{overAfter: 50}
	m := NewGameModel(game, nil, testConfig())
	m.Init()

	next, cmd := m.Update(TickMsg{Loop: "another-game"})
	m = next.(GameModel)
	if cmd != nil {
		t.Error("a foreign tick must not schedule another tick")
	}
	if game.steps != 0 {
		t.Errorf("foreign tick stepped the game %d times", game.steps)
	}

	_, cmd = m.Update(TickMsg{Loop: m.loop})
	if cmd == nil || game.steps != 1 {
		t.Errorf("own tick should step and reschedule, steps = %d", game.steps)
	}
}
