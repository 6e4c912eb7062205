package core

// Color is the foreground color of a screen cell.
// Values map to ANSI 256-color codes in the platform layer.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
)

// String returns the lowercase color name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorBrightRed:
		return "bright-red"
	case ColorBrightGreen:
		return "bright-green"
	case ColorBrightYellow:
		return "bright-yellow"
	case ColorBrightBlue:
		return "bright-blue"
	case ColorBrightMagenta:
		return "bright-magenta"
	case ColorBrightCyan:
		return "bright-cyan"
	case ColorBrightWhite:
		return "bright-white"
	case ColorOrange:
		return "orange"
	case ColorGray:
		return "gray"
	case ColorDarkGray:
		return "dark-gray"
	default:
		return "unknown"
	}
}
