package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// presetter is implemented by games that accept a per-session difficulty.
type presetter interface {
	SetPreset(p config.DifficultyPreset)
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game or scores -> menu.
// It is the top-level model for SSH sessions and the local menu command.
type SessionModel struct {
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	username string
	renderer *lipgloss.Renderer // nil means the process default
	screen   sessionScreen
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	return SessionModel{
		store:    store,
		logger:   logger,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(store, cfg),
	}
}

// WithRenderer makes games render with r's colour profile.
func (m SessionModel) WithRenderer(r *lipgloss.Renderer) SessionModel {
	m.renderer = r
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH).
			WithRenderer(m.renderer)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.GameID)
		if err != nil {
			m.logger.Error("cannot create game", "game", selected.GameID, "error", err)
			m.menu = NewMenuModel(m.store, m.config)
			return m, nil
		}
		if p, ok := game.(presetter); ok {
			p.SetPreset(m.menu.Preset())
		}

		cfg := m.config
		cfg.Seed = 0
		gm := NewGameModel(game, m.store, cfg).
			WithPlayer(m.username).
			WithLogger(m.logger).
			WithRenderer(m.renderer).
			Embedded()
		m.game = &gm
		m.screen = screenGame
		m.logger.Debug("game started",
			"game", selected.GameID,
			"player", m.username,
			"difficulty", m.menu.Preset(),
		)
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.toMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.toMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// toMenu returns to a fresh menu that keeps the chosen difficulty.
func (m *SessionModel) toMenu() {
	preset := m.menu.preset
	m.game = nil
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	m.menu.preset = preset
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven session in a local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	model := NewSessionModel(store, cfg, player, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunScoreboard runs the scoreboard screen on its own.
func RunScoreboard(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
