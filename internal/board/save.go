package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Save format:
//
//	# board
//	X
//	_ _ _ _ _ _
//	... (size rows of space-separated glyphs)
//	# history
//	1. X c4 O c3
//	2. X -1-1 O e3
//
// The '#' character starts a comment running to the end of the line.
// When a history section is present, loading replays the moves from
// the initial position instead of trusting the board section.

// ExportBoard returns the board section of the save format: the side
// to move's glyph followed by one row of glyphs per board line.
func (p *Position) ExportBoard() string {
	var sb strings.Builder
	sb.WriteString("# board\n")
	sb.WriteByte(p.sideToMove.Glyph())
	sb.WriteByte('\n')
	for y := 0; y < p.size; y++ {
		for x := 0; x < p.size; x++ {
			idx := y*p.size + x
			switch {
			case p.black.bits.testBit(idx):
				sb.WriteByte(Black.Glyph())
			case p.white.bits.testBit(idx):
				sb.WriteByte(White.Glyph())
			default:
				sb.WriteByte(Empty.Glyph())
			}
			if x < p.size-1 {
				sb.WriteByte(' ')
			}
		}
		if y < p.size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ExportHistory returns the history section: numbered turn lines of
// the form "<n>. X <move> O <move>", with "-1-1" for passes. A history
// starting with a white entry fabricates a leading black pass so the
// line shape stays uniform.
func (p *Position) ExportHistory() string {
	var sb strings.Builder
	sb.WriteString("# history\n")
	for i, e := range p.history {
		if e.player == Black {
			fmt.Fprintf(&sb, "%d. X %s", i/2+1, e.move)
		} else {
			if i&1 == 0 {
				fmt.Fprintf(&sb, "%d. X -1-1", i/2+1)
			}
			fmt.Fprintf(&sb, " O %s", e.move)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Export returns the whole game state (board plus history) in the save
// format.
func (p *Position) Export() string {
	return p.ExportBoard() + "\n" + p.ExportHistory()
}

// saveScanner walks the save line by line, stripping comments and
// blank lines and remembering 1-based line numbers for errors.
type saveScanner struct {
	lines []string
	pos   int
}

// next returns the next content line with comments stripped, or false
// at end of input.
func (s *saveScanner) next() (string, int, bool) {
	for s.pos < len(s.lines) {
		line := s.lines[s.pos]
		s.pos++
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) != "" {
			return line, s.pos, true
		}
	}
	return "", s.pos, false
}

// ParseSave parses a saved game and returns the resulting position.
func ParseSave(raw string) (*Position, error) {
	sc := &saveScanner{lines: strings.Split(raw, "\n")}

	// Side to move.
	line, lineNo, ok := sc.next()
	if !ok {
		return nil, fmt.Errorf("line %d: trying to parse an empty board", lineNo)
	}
	var sideToMove Color
	switch strings.TrimSpace(line) {
	case string(Black.Glyph()):
		sideToMove = Black
	case string(White.Glyph()):
		sideToMove = White
	default:
		return nil, fmt.Errorf("line %d: expected to find color", lineNo)
	}

	// First board row fixes the size.
	line, lineNo, ok = sc.next()
	if !ok {
		return nil, fmt.Errorf("line %d: reached end of file", lineNo)
	}
	size := len(rowCells(line))
	if !ValidSize(size) {
		return nil, fmt.Errorf("line %d: illegal board size value %d", lineNo, size)
	}

	black, _ := NewBitboard(size)
	white, _ := NewBitboard(size)
	for y := 0; y < size; y++ {
		if y > 0 {
			line, lineNo, ok = sc.next()
			if !ok {
				return nil, fmt.Errorf("line %d: reached end of file before finished parsing", lineNo)
			}
		}
		cells := rowCells(line)
		if len(cells) != size {
			return nil, fmt.Errorf("line %d: row of size %d where it should have been %d", lineNo, len(cells), size)
		}
		for x, c := range cells {
			switch c {
			case rune(Black.Glyph()):
				black.Set(x, y, true)
			case rune(White.Glyph()):
				white.Set(x, y, true)
			case rune(Empty.Glyph()), []rune(PossibleGlyph)[0]:
				// empty square
			default:
				return nil, fmt.Errorf("line %d: expected to find either a case or a space, found %q", lineNo, c)
			}
		}
	}

	parsed, err := NewPositionFromBitboards(size, black, white, sideToMove)
	if err != nil {
		return nil, err
	}

	// Without a history section the board is taken as-is. With one, the
	// moves are replayed from the initial position and the replayed
	// board wins.
	line, lineNo, ok = sc.next()
	if !ok {
		return parsed, nil
	}
	replayed, _ := NewPosition(size)
	for {
		if err := replayTurn(replayed, line, lineNo); err != nil {
			return nil, err
		}
		line, lineNo, ok = sc.next()
		if !ok {
			return replayed, nil
		}
	}
}

// rowCells extracts the cell glyphs of a board row, ignoring spaces.
func rowCells(line string) []rune {
	cells := make([]rune, 0, MaxSize)
	for _, c := range line {
		if c != ' ' && c != '\t' && c != '\r' {
			cells = append(cells, c)
		}
	}
	return cells
}

// replayTurn parses one "<n>. X <move> O <move>" line and plays its
// moves into the position.
func replayTurn(p *Position, line string, lineNo int) error {
	fields := strings.Fields(line)
	if len(fields) != 3 && len(fields) != 5 {
		return fmt.Errorf("line %d: incorrect line format: %q", lineNo, strings.TrimSpace(line))
	}
	numStr, found := strings.CutSuffix(fields[0], ".")
	if !found || fields[1] != "X" {
		return fmt.Errorf("line %d: incorrect line format: %q", lineNo, strings.TrimSpace(line))
	}
	turnID, err := strconv.Atoi(numStr)
	if err != nil {
		return fmt.Errorf("line %d: incorrect line format: %q", lineNo, strings.TrimSpace(line))
	}
	if turnID != p.TurnID() {
		return fmt.Errorf("line %d: incorrect turn number in history", lineNo)
	}

	move, err := ParseMove(fields[2], p.size)
	if err != nil {
		return fmt.Errorf("line %d: %w", lineNo, err)
	}
	if err := p.Play(move.X, move.Y); err != nil {
		return fmt.Errorf("line %d: black move %s is illegal: %w", lineNo, fields[2], err)
	}

	if len(fields) == 5 {
		if fields[3] != "O" {
			return fmt.Errorf("line %d: incorrect line format: %q", lineNo, strings.TrimSpace(line))
		}
		move, err = ParseMove(fields[4], p.size)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := p.Play(move.X, move.Y); err != nil {
			return fmt.Errorf("line %d: white move %s is illegal: %w", lineNo, fields[4], err)
		}
	}
	return nil
}
