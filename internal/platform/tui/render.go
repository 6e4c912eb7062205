package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// colorCodes maps core.Color to ANSI 256 palette indexes.
var colorCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorDarkGray:      "238",
}

// Palette turns screen colours into styles for one lipgloss renderer.
// SSH sessions get their own renderer so colours match the client's
// terminal rather than the server's.
type Palette struct {
	plain  lipgloss.Style
	styles map[core.Color]lipgloss.Style
	footer lipgloss.Style
}

// NewPalette builds a palette on r. A nil renderer means the default one.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{
		plain:  r.NewStyle(),
		styles: make(map[core.Color]lipgloss.Style, len(colorCodes)),
		footer: r.NewStyle().Foreground(lipgloss.Color("241")),
	}
	for c, code := range colorCodes {
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

func (p *Palette) style(c core.Color) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	return p.plain
}

// Render converts a Screen buffer to a styled string.
// Adjacent cells of one colour share a single style run.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

var defaultPalette = NewPalette(nil)

// RenderScreen renders s with the process-wide renderer.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}
