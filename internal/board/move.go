package board

import "fmt"

// Move is a board coordinate. The sentinel Pass (-1, -1) means
// "no move".
type Move struct {
	X, Y int
}

// Pass is the reserved no-move sentinel.
var Pass = Move{X: -1, Y: -1}

// IsPass reports whether the move is the pass sentinel.
func (m Move) IsPass() bool {
	return m.X == -1 && m.Y == -1
}

// String returns the save-format notation of the move: a column letter
// ('a'-indexed) followed by a 1-indexed row number, or "-1-1" for a
// pass.
func (m Move) String() string {
	if m.IsPass() {
		return "-1-1"
	}
	return fmt.Sprintf("%c%d", 'a'+m.X, m.Y+1)
}

// ParseMove parses save-format move notation for a board of the given
// size.
func ParseMove(s string, size int) (Move, error) {
	if s == "-1-1" {
		return Pass, nil
	}
	if len(s) < 2 {
		return Pass, fmt.Errorf("invalid move: %q", s)
	}
	x := int(s[0] - 'a')
	var row int
	if _, err := fmt.Sscanf(s[1:], "%d", &row); err != nil {
		return Pass, fmt.Errorf("invalid move: %q", s)
	}
	y := row - 1
	if x < 0 || x >= size || y < 0 || y >= size {
		return Pass, fmt.Errorf("move %q is outside a %dx%d board", s, size, size)
	}
	return Move{X: x, Y: y}, nil
}
