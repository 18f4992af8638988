// Package board implements Othello board representation using bitboards.
package board

// Color represents the owner of a square: one of the two players or Empty.
type Color uint8

const (
	Black Color = iota
	White
	Empty
)

// Opposite returns the opposing color. Empty has no opponent and maps
// to itself.
func (c Color) Opposite() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// Glyph returns the single-character board representation of the color,
// as used by the save format.
func (c Color) Glyph() byte {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	default:
		return '_'
	}
}

// PossibleGlyph marks a playable square in board displays.
const PossibleGlyph = "·"

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}
