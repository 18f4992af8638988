package board

import (
	"fmt"
	"strings"
)

// historyEntry snapshots the board before a move was applied, together
// with the move and the player who made it. A Pass move records an
// automatic turn skip (or the literal-pass path used by the save
// parser).
type historyEntry struct {
	black  words
	white  words
	move   Move
	player Color
}

// Position is a full Othello game state: one bitboard per color, the
// side to move, and an undo history. The two color bitboards are
// always disjoint.
type Position struct {
	size           int
	masks          *MaskSet
	black          Bitboard
	white          Bitboard
	sideToMove     Color
	history        []historyEntry
	forcedGameOver bool
}

// NewPosition creates a board of the given size in the Othello
// starting position: two discs of each color crossed in the center,
// Black to move. Sizes outside {6, 8, 10, 12} are rejected.
func NewPosition(size int) (*Position, error) {
	black, err := NewBitboard(size)
	if err != nil {
		return nil, err
	}
	white, _ := NewBitboard(size)
	p := &Position{
		size:  size,
		masks: black.masks,
		black: black,
		white: white,
	}
	p.initBoard()
	return p, nil
}

// NewPositionFromBitboards creates a position from existing color
// bitboards, used when loading a save. The bitboards must match the
// board size.
func NewPositionFromBitboards(size int, black, white Bitboard, sideToMove Color) (*Position, error) {
	if !ValidSize(size) {
		return nil, &IllegalBoardSizeError{Size: size}
	}
	if black.size != size || white.size != size {
		mismatch := black.size
		if mismatch == size {
			mismatch = white.size
		}
		return nil, &IllegalBoardSizeError{Size: mismatch}
	}
	return &Position{
		size:       size,
		masks:      black.masks,
		black:      black,
		white:      white,
		sideToMove: sideToMove,
	}, nil
}

func (p *Position) initBoard() {
	half := p.size / 2
	p.white.Set(half-1, half-1, true)
	p.white.Set(half, half, true)
	p.black.Set(half-1, half, true)
	p.black.Set(half, half-1, true)
}

// Size returns the board side length.
func (p *Position) Size() int {
	return p.size
}

// SideToMove returns the player whose turn it is.
func (p *Position) SideToMove() Color {
	return p.sideToMove
}

// Black returns the black disc bitboard.
func (p *Position) Black() Bitboard {
	return p.black
}

// White returns the white disc bitboard.
func (p *Position) White() Bitboard {
	return p.white
}

// PlayerAt returns which color occupies (x, y), or Empty.
func (p *Position) PlayerAt(x, y int) (Color, error) {
	isBlack, err := p.black.Get(x, y)
	if err != nil {
		return Empty, err
	}
	if isBlack {
		return Black, nil
	}
	isWhite, _ := p.white.Get(x, y)
	if isWhite {
		return White, nil
	}
	return Empty, nil
}

// ownOpp returns the raw word sets of the given player and their
// opponent.
func (p *Position) ownOpp(c Color) (words, words) {
	if c == Black {
		return p.black.bits, p.white.bits
	}
	return p.white.bits, p.black.bits
}

func (p *Position) legalMoveWords(c Color) words {
	own, opp := p.ownOpp(c)
	return lineCapMove(own, opp, uint(p.size), p.masks)
}

// LegalMoves returns the bitboard of legal destination squares for the
// given color.
func (p *Position) LegalMoves(c Color) Bitboard {
	return newBitboard(p.size, p.legalMoveWords(c))
}

// CaptureMask returns the capture set for placing a disc of the given
// color at (x, y): the placed bit plus every flipped disc. The
// placement is assumed legal; results for illegal squares are
// meaningless.
func (p *Position) CaptureMask(x, y int, c Color) Bitboard {
	own, opp := p.ownOpp(c)
	return newBitboard(p.size, lineCap(x, y, own, opp, uint(p.size), p.masks))
}

// Play applies the move at (x, y) for the side to move. The literal
// pass (-1, -1) records a pass entry without flipping the player; it
// exists for the save parser, not for normal legal play. A real move
// is validated against the legal-move mask, applied with its captures,
// and followed by an automatic pass entry whenever the opponent is
// left without a legal move.
func (p *Position) Play(x, y int) error {
	if x == -1 && y == -1 {
		p.pushHistory(Pass)
		return nil
	}
	idx, err := p.black.bitIndex(x, y)
	if err != nil {
		return err
	}
	if !p.legalMoveWords(p.sideToMove).testBit(idx) {
		return &IllegalMoveError{X: x, Y: y, Player: p.sideToMove}
	}

	own, opp := p.ownOpp(p.sideToMove)
	capMask := lineCap(x, y, own, opp, uint(p.size), p.masks)
	p.pushHistory(Move{X: x, Y: y})

	own = own.or(capMask)
	opp = opp.andNot(capMask)
	if p.sideToMove == Black {
		p.black.bits, p.white.bits = own, opp
	} else {
		p.white.bits, p.black.bits = own, opp
	}
	p.sideToMove = p.sideToMove.Opposite()

	// One level of auto-pass: if the new side to move has nothing, the
	// turn skips back. A position where neither side can move is game
	// over and detected separately.
	if p.legalMoveWords(p.sideToMove).isZero() {
		p.pushHistory(Pass)
		p.sideToMove = p.sideToMove.Opposite()
	}
	return nil
}

func (p *Position) pushHistory(m Move) {
	p.history = append(p.history, historyEntry{
		black:  p.black.bits,
		white:  p.white.bits,
		move:   m,
		player: p.sideToMove,
	})
}

// Pop undoes the last real move. A pass entry on top of the stack is
// undone together with the move beneath it, since the pass was an
// automatic consequence of that move. The boards and side to move are
// restored from the retained snapshot.
func (p *Position) Pop() error {
	if len(p.history) == 0 {
		return ErrCannotPop
	}
	entry := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	if entry.move.IsPass() {
		if len(p.history) == 0 {
			p.history = append(p.history, entry)
			return ErrCannotPop
		}
		entry = p.history[len(p.history)-1]
		p.history = p.history[:len(p.history)-1]
	}
	p.black.bits = entry.black
	p.white.bits = entry.white
	p.sideToMove = entry.player
	return nil
}

// LastMove returns the most recent non-pass move and its player.
// ok is false when no real move has been played yet.
func (p *Position) LastMove() (m Move, player Color, ok bool) {
	for i := len(p.history) - 1; i >= 0; i-- {
		if !p.history[i].move.IsPass() {
			return p.history[i].move, p.history[i].player, true
		}
	}
	return Pass, Empty, false
}

// ForceGameOver marks the game as over regardless of the board state,
// used for forfeits and timeouts.
func (p *Position) ForceGameOver() {
	p.forcedGameOver = true
}

// IsGameOver reports whether the game has been forced over or neither
// color has a legal move.
func (p *Position) IsGameOver() bool {
	if p.forcedGameOver {
		return true
	}
	return p.legalMoveWords(p.sideToMove).isZero() &&
		p.legalMoveWords(p.sideToMove.Opposite()).isZero()
}

// TurnID returns the current turn number, starting from 1. A turn is
// two history entries, one per player, passes included.
func (p *Position) TurnID() int {
	return len(p.history)/2 + 1
}

// CountDiscs returns the number of discs the given color has on the
// board.
func (p *Position) CountDiscs(c Color) int {
	if c == Black {
		return p.black.PopCount()
	}
	return p.white.PopCount()
}

// Fork returns an independent copy of the boards and side to move with
// an empty history. Forward search never needs the past, so the clone
// is a cheap fixed-size copy rather than a deep copy of the history
// stack.
func (p *Position) Fork() *Position {
	return &Position{
		size:       p.size,
		masks:      p.masks,
		black:      p.black,
		white:      p.white,
		sideToMove: p.sideToMove,
	}
}

// Restart resets the board to the starting position of the same size.
func (p *Position) Restart() {
	p.black.bits = words{}
	p.white.bits = words{}
	p.history = nil
	p.sideToMove = Black
	p.forcedGameOver = false
	p.initBoard()
}

// Equal reports whether two positions have the same boards and side to
// move. History is not compared.
func (p *Position) Equal(o *Position) bool {
	return p.sideToMove == o.sideToMove && p.black.Equal(o.black) && p.white.Equal(o.white)
}

// Hash returns a hash over (side to move, black, white).
func (p *Position) Hash() uint64 {
	return uint64(p.sideToMove)*0x9E3779B97F4A7C15 ^ p.black.Hash() ^ p.white.Hash()*3
}

// String renders the board with column letters, row numbers, and a dot
// on every square the side to move could play.
func (p *Position) String() string {
	var sb strings.Builder
	legal := p.legalMoveWords(p.sideToMove)
	sb.WriteString("  ")
	if p.size >= 10 {
		sb.WriteByte(' ')
	}
	for x := 0; x < p.size; x++ {
		if x > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte('a' + x))
	}
	for y := 0; y < p.size; y++ {
		sb.WriteByte('\n')
		fmt.Fprintf(&sb, "%d ", y+1)
		if p.size >= 10 && y < 9 {
			sb.WriteByte(' ')
		}
		for x := 0; x < p.size; x++ {
			idx := y*p.size + x
			switch {
			case p.black.bits.testBit(idx):
				sb.WriteByte(Black.Glyph())
			case p.white.bits.testBit(idx):
				sb.WriteByte(White.Glyph())
			case legal.testBit(idx):
				sb.WriteString(PossibleGlyph)
			default:
				sb.WriteByte(Empty.Glyph())
			}
			if x < p.size-1 {
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}
