package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color style.
type Color uint8

// Predefined colors for game elements.
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
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// Cell is a single styled character of the screen buffer.
type Cell struct {
	Rune  rune
	Color Color
}
