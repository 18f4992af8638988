package board

import (
	"errors"
	"fmt"
)

// ErrCannotPop is returned when undoing a move on a board with no history.
var ErrCannotPop = errors.New("cannot pop from this board")

// ErrOutOfBounds is returned when a bit index falls outside [0, size*size).
var ErrOutOfBounds = errors.New("bit index out of bounds")

// IllegalMoveError reports an attempt to play a square that is not in
// the current legal-move mask.
type IllegalMoveError struct {
	X, Y   int
	Player Color
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("move %d:%d from player %s is illegal", e.X, e.Y, e.Player)
}

// IllegalBoardSizeError reports a board size outside the supported set.
type IllegalBoardSizeError struct {
	Size int
}

func (e *IllegalBoardSizeError) Error() string {
	return fmt.Sprintf("boards of size %d are not possible", e.Size)
}
