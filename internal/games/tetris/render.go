package tetris

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Each grid cell is drawn two characters wide so blocks look square.
const cellW = 2

const (
	panelGap    = 2
	panelW      = 16
	previewRows = 2

	spawnStatCols = 3
	spawnStatW    = 5 // Kind letter, count and a gap
)

const (
	blockRune = '█'
	ghostRune = '░'
	emptyRune = '·'
)

// kindColors gives every piece kind its conventional color.
var kindColors = map[engine.Kind]core.Color{
	engine.KindI: core.ColorCyan,
	engine.KindJ: core.ColorBlue,
	engine.KindL: core.ColorOrange,
	engine.KindO: core.ColorYellow,
	engine.KindS: core.ColorGreen,
	engine.KindT: core.ColorMagenta,
	engine.KindZ: core.ColorRed,
}

// KindColor returns the display color of a piece kind.
func KindColor(k engine.Kind) core.Color {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return core.ColorDefault
}

// layout is where the board and side panel land on a given screen.
type layout struct {
	ok        bool
	originX   int
	originY   int
	topBorder bool // Dropped when the screen is exactly one row short
	boardW    int
	visible   int
}

func (g *Game) layoutFor(w, h int) layout {
	b := g.cfg.Board
	l := layout{
		boardW:  b.Cols*cellW + 2,
		visible: b.VisibleRows(),
	}
	totalW, minH := g.MinSize()
	if w < totalW || h < minH {
		return l
	}

	l.ok = true
	l.topBorder = h >= l.visible+2
	boxH := l.visible + 1
	if l.topBorder {
		boxH++
	}
	l.originX = (w - totalW) / 2
	l.originY = (h - boxH) / 2
	return l
}

// MinSize returns the smallest screen the game can be drawn on.
func (g *Game) MinSize() (width, height int) {
	b := g.cfg.Board
	return b.Cols*cellW + 2 + panelGap + panelW, b.VisibleRows() + 1
}

func (g *Game) fits(w, h int) bool {
	return g.layoutFor(w, h).ok
}

// Render draws the board, the side panel and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.board == nil {
		return
	}

	l := g.layoutFor(dst.Width(), dst.Height())
	if !l.ok {
		w, h := g.MinSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", w, h))
		return
	}

	g.renderWell(dst, l)
	g.renderPanel(dst, l)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d", g.board.Score()), "R / N: new game")
	case g.paused:
		g.renderOverlay(dst, "PAUSED", "P: resume", "N: new game")
	}
}

// cellOrigin returns the screen position of grid cell (col, row), and false
// for hidden rows.
func (g *Game) cellOrigin(l layout, col, row int) (int, int, bool) {
	vr := row - g.cfg.Board.HiddenRows
	if vr < 0 || vr >= l.visible {
		return 0, 0, false
	}
	top := l.originY
	if l.topBorder {
		top++
	}
	return l.originX + 1 + col*cellW, top + vr, true
}

func (g *Game) drawCell(dst *core.Screen, l layout, col, row int, r rune, c core.Color) {
	x, y, ok := g.cellOrigin(l, col, row)
	if !ok {
		return
	}
	for i := range cellW {
		dst.SetCell(x+i, y, r, c)
	}
}

func (g *Game) renderWell(dst *core.Screen, l layout) {
	rows := g.board.Rows()
	cols := g.board.Cols()

	// Frame
	if l.topBorder {
		dst.DrawBox(core.NewRect(l.originX, l.originY, l.boardW, l.visible+2), core.ColorGray)
	} else {
		bottom := l.originY + l.visible
		for y := l.originY; y < bottom; y++ {
			dst.SetCell(l.originX, y, '│', core.ColorGray)
			dst.SetCell(l.originX+l.boardW-1, y, '│', core.ColorGray)
		}
		dst.SetCell(l.originX, bottom, '└', core.ColorGray)
		dst.SetCell(l.originX+l.boardW-1, bottom, '┘', core.ColorGray)
		for x := l.originX + 1; x < l.originX+l.boardW-1; x++ {
			dst.SetCell(x, bottom, '─', core.ColorGray)
		}
	}

	grid := g.board.Grid()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if v := grid[r][c]; v != 0 {
				g.drawCell(dst, l, c, r, blockRune, KindColor(engine.Kind(v)))
				continue
			}
			if x, y, ok := g.cellOrigin(l, c, r); ok {
				dst.SetCell(x+cellW-1, y, emptyRune, core.ColorDarkGray)
			}
		}
	}

	if !g.board.Active().Valid() {
		return
	}
	view := g.board.View()
	color := KindColor(g.board.Active())

	if !g.gameOver {
		ghost := g.board.GhostRow()
		if ghost != view.Row {
			g.drawShape(dst, l, view.Shape, view.Col, ghost, ghostRune, core.ColorGray)
		}
	}
	g.drawShape(dst, l, view.Shape, view.Col, view.Row, blockRune, color)
}

func (g *Game) drawShape(dst *core.Screen, l layout, shape engine.Matrix, col, row int, r rune, c core.Color) {
	for i, line := range shape {
		for j, v := range line {
			if v != 0 {
				g.drawCell(dst, l, col+j, row+i, r, c)
			}
		}
	}
}

func (g *Game) renderPanel(dst *core.Screen, l layout) {
	x := l.originX + l.boardW + panelGap
	y := l.originY

	var next engine.Matrix
	if g.board.Active().Valid() {
		next = g.board.View().Next
	} else {
		next = g.board.NextPreview()
	}
	y = g.drawPreview(dst, x, y, "NEXT", next, false)
	y++
	y = g.drawPreview(dst, x, y, "HOLD", g.board.HeldPreview(), g.board.HoldUsed())
	y++

	stats := []struct {
		label string
		value int
	}{
		{"SCORE", g.board.Score()},
		{"LEVEL", g.level},
		{"LINES", g.lines},
		{"PIECES", g.pieces},
	}
	for _, s := range stats {
		dst.DrawTextColor(x, y, s.label, core.ColorGray)
		v := strconv.Itoa(s.value)
		dst.DrawTextColor(x+panelW-len(v), y, v, core.ColorBrightWhite)
		y++
	}

	y++
	y = g.renderSpawnStats(dst, x, y)

	if g.notice != "" {
		y++
		dst.DrawTextColor(x, y, g.notice, core.ColorBrightYellow)
	}
}

// renderSpawnStats draws how often each kind entered play, spawnStatCols
// kinds per row, and returns the row below the table.
func (g *Game) renderSpawnStats(dst *core.Screen, x, y int) int {
	for i, k := range engine.Kinds() {
		cx := x + (i%spawnStatCols)*spawnStatW
		cy := y + i/spawnStatCols
		dst.DrawTextColor(cx, cy, k.String(), KindColor(k))
		n := strconv.Itoa(g.SpawnCount(k))
		dst.DrawTextColor(cx+spawnStatW-1-len(n), cy, n, core.ColorWhite)
	}
	return y + (len(engine.Kinds())+spawnStatCols-1)/spawnStatCols
}

// drawPreview draws a labelled box holding shape and returns the row below
// it. A nil shape leaves the box empty.
func (g *Game) drawPreview(dst *core.Screen, x, y int, label string, shape engine.Matrix, dim bool) int {
	dst.DrawTextColor(x, y, label, core.ColorGray)
	y++

	box := core.NewRect(x, y, 4*cellW+2, previewRows+2)
	dst.DrawBox(box, core.ColorDarkGray)
	inner := box.Inset(1)

	for i, line := range trimRows(shape, previewRows) {
		for j, v := range line {
			if v == 0 {
				continue
			}
			color := KindColor(engine.Kind(v))
			if dim {
				color = core.ColorDarkGray
			}
			for dx := range cellW {
				dst.SetCell(inner.X+j*cellW+dx, inner.Y+i, blockRune, color)
			}
		}
	}
	return box.Bottom()
}

// trimRows drops empty leading rows of m and keeps at most n rows.
func trimRows(m engine.Matrix, n int) engine.Matrix {
	start := 0
	for start < len(m) && rowEmpty(m[start]) {
		start++
	}
	end := min(start+n, len(m))
	return m[start:end]
}

func rowEmpty(line []int) bool {
	for _, v := range line {
		if v != 0 {
			return false
		}
	}
	return true
}

// renderOverlay draws a centered box with one line of text per argument.
func (g *Game) renderOverlay(dst *core.Screen, lines ...string) {
	width := 0
	for _, s := range lines {
		width = max(width, len([]rune(s)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, s := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorBrightWhite
		}
		dst.DrawTextCentered(box.Y+1+i, s, c)
	}
}
