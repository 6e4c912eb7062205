package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

const (
	maxRuns             = 100 // Runs loaded per mode and listing
	wideColumnsMinWidth = 80  // Pieces, time and date need this much room
	scoreboardChrome    = 10  // Rows taken by title, tabs, summary, borders and help
)

// runListing selects which runs the scoreboard lists.
type runListing int

const (
	listingBest runListing = iota
	listingRecent
)

func (l runListing) String() string {
	if l == listingRecent {
		return "Recent runs"
	}
	return "Best runs"
}

// runColumn is one scoreboard column and how a run fills it.
type runColumn struct {
	title string
	width int
	wide  bool // Hidden on narrow terminals
	cell  func(rank int, r storage.Run) string
}

var runColumns = []runColumn{
	{"#", 4, false, func(rank int, _ storage.Run) string { return strconv.Itoa(rank) }},
	{"Score", 8, false, func(_ int, r storage.Run) string { return strconv.Itoa(r.Score) }},
	{"Lines", 6, false, func(_ int, r storage.Run) string { return strconv.Itoa(r.Lines) }},
	{"Lvl", 4, false, func(_ int, r storage.Run) string { return strconv.Itoa(r.Level) }},
	{"Pieces", 6, true, func(_ int, r storage.Run) string { return strconv.Itoa(r.Pieces) }},
	{"Time", 7, true, func(_ int, r storage.Run) string { return formatRunTime(r.Duration) }},
	{"Player", 10, false, func(_ int, r storage.Run) string {
		if r.Player == "" {
			return "-"
		}
		return r.Player
	}},
	{"Date", 12, true, func(_ int, r storage.Run) string { return r.CreatedAt.Format("Jan 02 15:04") }},
}

// playerColumn is the index of the column that absorbs spare width.
const playerColumn = 6

// formatRunTime renders d as m:ss.
func formatRunTime(d time.Duration) string {
	s := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Listing  key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMode, k.Listing, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextMode, k.PrevMode, k.Listing},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Listing: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "best/recent"),
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

// scoreboardStyles are built on one renderer so SSH sessions get their
// own colour profile.
type scoreboardStyles struct {
	title     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	summary   lipgloss.Style
	empty     lipgloss.Style
	frame     lipgloss.Style
	help      lipgloss.Style
	table     table.Styles
}

func newScoreboardStyles(r *lipgloss.Renderer) scoreboardStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	ts := table.DefaultStyles()
	ts.Header = r.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(lipgloss.Color(colorCodes[core.ColorBrightCyan])).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(colorCodes[core.ColorDarkGray])).
		BorderBottom(true)
	ts.Cell = r.NewStyle().Padding(0, 1)
	ts.Selected = r.NewStyle().
		Foreground(lipgloss.Color(colorCodes[core.ColorBrightWhite])).
		Background(lipgloss.Color(colorCodes[core.ColorBlue]))

	return scoreboardStyles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorCodes[core.ColorBrightYellow])),
		tab: r.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color(colorCodes[core.ColorGray])),
		activeTab: r.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color(colorCodes[core.ColorBrightWhite])).
			Background(lipgloss.Color(colorCodes[core.ColorMagenta])),
		summary: r.NewStyle().
			Foreground(lipgloss.Color(colorCodes[core.ColorGray])),
		empty: r.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(colorCodes[core.ColorGray])).
			Align(lipgloss.Center).
			Padding(1, 2),
		frame: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorCodes[core.ColorDarkGray])),
		help: r.NewStyle().
			Foreground(lipgloss.Color(colorCodes[core.ColorDarkGray])),
		table: ts,
	}
}

// ScoreboardModel lists the stored runs of one mode at a time.
type ScoreboardModel struct {
	modes      []registry.GameInfo
	modeCursor int
	listing    runListing
	store      *storage.Store
	runs       []storage.Run
	stats      *storage.GameStats // nil without a store
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	styles     scoreboardStyles
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard showing the best runs of the
// first registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		styles: newScoreboardStyles(nil),
		width:  width,
		height: height,
	}
	m.rebuildTable()
	m.reload()
	return m
}

// WithRenderer restyles the scoreboard for r.
func (m ScoreboardModel) WithRenderer(r *lipgloss.Renderer) ScoreboardModel {
	if r != nil {
		m.styles = newScoreboardStyles(r)
		m.table.SetStyles(m.styles.table)
	}
	return m
}

// visibleColumns returns the columns that fit the current width.
func (m ScoreboardModel) visibleColumns() []runColumn {
	wide := m.width >= wideColumnsMinWidth
	cols := make([]runColumn, 0, len(runColumns))
	for i, c := range runColumns {
		if c.wide && !wide {
			continue
		}
		if i == playerColumn {
			c.width += m.spareWidth()
		}
		cols = append(cols, c)
	}
	return cols
}

// spareWidth is the room the player column may grow into, capped at 10.
func (m ScoreboardModel) spareWidth() int {
	wide := m.width >= wideColumnsMinWidth
	used := 4 // Frame and margin
	for _, c := range runColumns {
		if !c.wide || wide {
			used += c.width + 2
		}
	}
	return min(max(m.width-used, 0), 10)
}

// rebuildTable recreates the table for the current size.
func (m *ScoreboardModel) rebuildTable() {
	cols := m.visibleColumns()
	tc := make([]table.Column, len(cols))
	for i, c := range cols {
		tc[i] = table.Column{Title: c.title, Width: c.width}
	}
	m.table = table.New(
		table.WithColumns(tc),
		table.WithFocused(true),
		table.WithHeight(max(m.height-scoreboardChrome, 3)),
		table.WithStyles(m.styles.table),
	)
	m.fillRows()
}

// reload fetches runs and statistics of the selected mode.
func (m *ScoreboardModel) reload() {
	m.runs = nil
	m.stats = nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.modeCursor].ID
		var runs []storage.Run
		var err error
		if m.listing == listingRecent {
			runs, err = m.store.RecentRuns(id, maxRuns)
		} else {
			runs, err = m.store.TopRuns(id, maxRuns)
		}
		if err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.fillRows()
}

// fillRows copies the loaded runs into the table.
func (m *ScoreboardModel) fillRows() {
	cols := m.visibleColumns()
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		row := make(table.Row, len(cols))
		for j, c := range cols {
			row[j] = c.cell(i+1, r)
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycleMode moves the mode cursor by delta, wrapping around.
func (m *ScoreboardModel) cycleMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.modeCursor = (m.modeCursor + delta + len(m.modes)) % len(m.modes)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.cycleMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.cycleMode(-1)
			return m, nil
		case key.Matches(msg, m.keys.Listing):
			m.listing = 1 - m.listing
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	body := m.styles.empty.Render("No runs recorded yet.\nFinish a game to set a high score!")
	if len(m.runs) > 0 {
		body = m.table.View()
	}

	sections := []string{
		m.styles.title.Render("HIGH SCORES"),
		m.renderTabs(),
		m.styles.summary.Render(m.summary()),
		m.styles.frame.Render(body),
		m.styles.help.Render(m.help.View(m.keys)),
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

// renderTabs draws one tab per mode, falling back to "< Mode >" when the
// tabs do not fit.
func (m ScoreboardModel) renderTabs() string {
	if len(m.modes) == 0 {
		return ""
	}
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		style := m.styles.tab
		if i == m.modeCursor {
			style = m.styles.activeTab
		}
		tabs[i] = style.Render(g.Title)
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width {
		return m.styles.activeTab.Render("< " + m.modes[m.modeCursor].Title + " >")
	}
	return line
}

// summary describes the listing and the mode's totals.
func (m ScoreboardModel) summary() string {
	parts := []string{m.listing.String()}
	if m.stats != nil && m.stats.GamesCount > 0 {
		parts = append(parts,
			fmt.Sprintf("%d games", m.stats.GamesCount),
			fmt.Sprintf("best %d", m.stats.HighScore),
			fmt.Sprintf("avg %.0f", m.stats.AvgScore),
		)
	}
	return strings.Join(parts, "  ·  ")
}

// IsGoingBack reports whether the player asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
