package board

// Move generation works on raw word sets rather than Bitboard values:
// it runs at every search node, so it avoids going through the generic
// Bitboard wrappers and allocating intermediate boards.

// dirShift shifts a word set one step in the given direction. The
// horizontal component is masked so bits never cross row boundaries;
// vertical shifts are clipped to the board.
func dirShift(w words, d Direction, size uint, m *MaskSet) words {
	switch d {
	case North:
		return w.shr(size)
	case South:
		return w.shl(size).and(m.Full)
	case East:
		return w.shl(1).and(m.West)
	case West:
		return w.shr(1).and(m.East)
	case NorthEast:
		return w.shr(size - 1).and(m.West)
	case NorthWest:
		return w.shr(size + 1).and(m.East)
	case SouthEast:
		return w.shl(size + 1).and(m.West)
	default: // SouthWest
		return w.shl(size - 1).and(m.East)
	}
}

// lineCapMove returns the mask of every legal destination square for
// the player owning p against the opponent owning o. For each
// direction it flood-fills a run of opponent discs adjacent to p and
// collects the empty squares the run spills into: exactly the squares
// from which one or more opponent discs are outflanked in a straight
// line. Inputs are never mutated.
func lineCapMove(p, o words, size uint, m *MaskSet) words {
	empty := m.Full.andNot(p.or(o))
	var moves words
	for _, d := range Directions {
		run := o.and(dirShift(p, d, size, m))
		for !run.isZero() {
			next := dirShift(run, d, size, m)
			moves = moves.or(empty.and(next))
			run = o.and(next)
		}
	}
	return moves
}

// lineCap returns the capture mask for placing a disc at (x, y): the
// placed bit plus every opponent disc flipped by the move. It walks
// each direction one step at a time, accumulating a directional run of
// opponent discs, committing the run when it reaches an own disc and
// discarding it when it exits the board or hits an empty square.
// Legality of the placement is not checked here; callers must confirm
// the square against lineCapMove first.
func lineCap(x, y int, p, o words, size uint, m *MaskSet) words {
	var pos words
	pos.setBit(y*int(size) + x)
	capMask := pos
	for _, d := range Directions {
		run := pos
		ptr := pos
		for {
			ptr = dirShift(ptr, d, size, m)
			if !ptr.and(o).isZero() {
				run = run.or(ptr)
			} else if !ptr.and(p).isZero() {
				capMask = capMask.or(run)
				break
			} else {
				break
			}
		}
	}
	return capMask
}
