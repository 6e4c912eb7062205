package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// resizer is implemented by games that follow a terminal resize without
// restarting the session.
type resizer interface {
	Resize(width, height int)
}

// sizer reports the smallest screen a game can draw on.
type sizer interface {
	MinSize() (width, height int)
}

// GameModel is the Bubble Tea model that hosts one game.
// When embedded in a session, Back returns to the menu instead of pausing.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	player     string
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       GameKeyMap
	help       help.Model
	palette    *Palette
	embedded   bool
	loop       string // Id of the tick loop this model accepts

	playTicks  int // Unpaused ticks of the current run
	runSaved   bool
	lastRunID  string
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. A nil store disables persistence.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultGameKeyMap(),
		help:       h,
		palette:    defaultPalette,
		loop:       uuid.NewString(),
	}
}

// WithPlayer sets the name recorded with finished runs.
func (m GameModel) WithPlayer(name string) GameModel {
	m.player = name
	return m
}

// WithLogger sets the logger used for run summaries.
func (m GameModel) WithLogger(l *log.Logger) GameModel {
	if l != nil {
		m.logger = l
	}
	return m
}

// WithRenderer draws the game with styles from r, typically the
// renderer of an SSH session.
func (m GameModel) WithRenderer(r *lipgloss.Renderer) GameModel {
	if r != nil {
		m.palette = NewPalette(r)
	}
	return m
}

// Embedded makes Back leave the game once it is paused or over.
func (m GameModel) Embedded() GameModel {
	m.embedded = true
	return m
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.syncSize()
	return tickCmd(m.loop, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.syncSize()
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.syncSize()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.embedded && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
			return m, nil
		}
		if !m.gameState.Paused && !m.gameState.GameOver {
			m.inputFrame.Set(core.ActionPause)
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick advances the simulation by one tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState
	restartRequested := m.inputFrame.Has(core.ActionRestart)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if restartRequested && (prev.GameOver || prev.Paused) && !m.gameState.GameOver {
		m.playTicks = 0
		m.runSaved = false
	}

	if !m.gameState.Paused && !m.gameState.GameOver {
		m.playTicks++
	}

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	return m, tickCmd(m.loop, m.config.TickRate)
}

// saveRun logs and persists the summary of a finished run.
func (m *GameModel) saveRun() {
	st := m.gameState
	dur := time.Duration(m.playTicks) * time.Second / time.Duration(m.config.TickRate)

	m.logger.Info("game over",
		"game", m.game.ID(),
		"player", m.player,
		"score", st.Score,
		"lines", st.Lines,
		"level", st.Level,
		"pieces", st.Pieces,
		"duration", dur.Round(time.Second),
	)

	if m.store == nil {
		return
	}
	if st.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), st.Score); err != nil {
			m.logger.Warn("could not save score", "error", err)
		}
	}
	id, err := m.store.SaveRun(storage.Run{
		GameID:   m.game.ID(),
		Player:   m.player,
		Score:    st.Score,
		Lines:    st.Lines,
		Level:    st.Level,
		Pieces:   st.Pieces,
		Duration: dur,
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.lastRunID = id
	m.logger.Debug("run saved", "run", id)
}

// footer returns the help line, or "" when the game needs every row.
func (m GameModel) footer() string {
	view := m.palette.footer.Render(m.help.View(m.keys))
	need := lipgloss.Height(view)
	minH := 0
	if s, ok := m.game.(sizer); ok {
		_, minH = s.MinSize()
	}
	if m.config.ScreenH-need < max(minH, 1) {
		return ""
	}
	return view
}

// gameHeight is the number of rows left for the game after the footer.
func (m GameModel) gameHeight() int {
	if f := m.footer(); f != "" {
		return m.config.ScreenH - lipgloss.Height(f)
	}
	return m.config.ScreenH
}

// syncSize resizes the screen buffer and tells the game about it.
func (m GameModel) syncSize() {
	h := m.gameHeight()
	m.screen.Resize(m.config.ScreenW, h)
	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, h)
	}
}

// saveScreenshot saves the current screen to a file.
func (m GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := m.palette.Render(m.screen)
	if f := m.footer(); f != "" {
		out += "\n" + f
	}
	return out
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// LastRunID returns the id of the most recently saved run, if any.
func (m GameModel) LastRunID() string {
	return m.lastRunID
}

// BackToMenu reports whether the player asked to leave the game.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the player asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// Run plays game in a standalone Bubble Tea program.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg).
		WithPlayer(player).
		WithLogger(logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
