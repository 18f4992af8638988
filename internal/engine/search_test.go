package engine

import (
	"testing"

	"github.com/xdZireael/Othello/internal/board"
)

// oneMovePossible is a 6x6 midgame where white, to move, has a single
// legal move: f6.
func oneMovePossible(t *testing.T) *board.Position {
	return buildPosition(t, 6,
		[][2]int{
			{0, 4}, {1, 4}, {2, 4}, {3, 4}, {4, 4},
			{0, 5}, {1, 5}, {2, 5}, {3, 5}, {4, 5},
		},
		[][2]int{
			{1, 1}, {1, 2}, {1, 3},
			{2, 2}, {2, 3},
			{3, 2}, {3, 3},
			{4, 2},
		},
		board.White)
}

// whiteChoices is a 6x6 position where white, to move, picks between a
// corner grab at a1 and a bigger capture at a4.
func whiteChoices(t *testing.T) *board.Position {
	return buildPosition(t, 6,
		[][2]int{
			{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4},
			{2, 3}, {3, 2},
		},
		[][2]int{{2, 2}, {3, 3}},
		board.White)
}

// stalledWhite is a 6x6 position where white, to move, has no legal
// move while black can still play e1, so the game is not over.
func stalledWhite(t *testing.T) *board.Position {
	return buildPosition(t, 6,
		[][2]int{{1, 0}, {2, 0}},
		[][2]int{{0, 0}, {3, 0}},
		board.White)
}

// fullBoard is a 6x6 board with every square occupied, so the game is
// over.
func fullBoard(t *testing.T) *board.Position {
	var black, white [][2]int
	for x := 0; x < 6; x++ {
		for y := 0; y < 6; y++ {
			if (x+y)%2 == 0 {
				black = append(black, [2]int{x, y})
			} else {
				white = append(white, [2]int{x, y})
			}
		}
	}
	return buildPosition(t, 6, black, white, board.Black)
}

func TestMinimaxAlphaBetaStartPos(t *testing.T) {
	for _, maxPlayer := range []board.Color{board.Black, board.White} {
		pos, _ := board.NewPosition(6)
		if got := Minimax(pos, 1, maxPlayer, CornersCaptured); got != 0 {
			t.Errorf("Minimax(start, 1, %s) = %d, want 0", maxPlayer, got)
		}
		pos, _ = board.NewPosition(6)
		if got := AlphaBeta(pos, 1, -Infinity, Infinity, maxPlayer, CornersCaptured); got != 0 {
			t.Errorf("AlphaBeta(start, 1, %s) = %d, want 0", maxPlayer, got)
		}
	}
}

func TestSearchNoMoves(t *testing.T) {
	pos := emptyBoard(t)
	if got := Minimax(pos, 1, board.Black, CornersCaptured); got != 0 {
		t.Errorf("Minimax(empty, 1) = %d, want 0", got)
	}
	if got := AlphaBeta(pos, 1, -Infinity, Infinity, board.Black, CornersCaptured); got != 0 {
		t.Errorf("AlphaBeta(empty, 1) = %d, want 0", got)
	}
}

func TestAlphaBetaClosedWindow(t *testing.T) {
	pos, _ := board.NewPosition(6)
	if got := AlphaBeta(pos, 1, 0, 0, board.White, CornersCaptured); got != 0 {
		t.Errorf("AlphaBeta with a closed window = %d, want 0", got)
	}
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	// With full (-Infinity, Infinity) bounds pruning never changes the
	// root value.
	fixtures := map[string]func(*testing.T) *board.Position{
		"one move":      oneMovePossible,
		"white choices": whiteChoices,
	}
	for name, fixture := range fixtures {
		for depth := 1; depth <= 3; depth++ {
			for _, h := range []Heuristic{CornersCaptured, CoinParity, Mobility, AllInOne} {
				pos := fixture(t)
				maxPlayer := pos.SideToMove()
				mm := Minimax(pos.Fork(), depth, maxPlayer, h)
				ab := AlphaBeta(pos.Fork(), depth, -Infinity, Infinity, maxPlayer, h)
				if mm != ab {
					t.Errorf("%s, depth %d: Minimax = %d, AlphaBeta = %d", name, depth, mm, ab)
				}
			}
		}
	}
}

func TestSearchStalledSideKeepsTurn(t *testing.T) {
	pos := stalledWhite(t)
	if pos.IsGameOver() {
		t.Fatal("fixture reports game over")
	}
	if got := pos.LegalMoves(board.White).PopCount(); got != 0 {
		t.Fatalf("white has %d legal moves, want 0", got)
	}
	if got := pos.LegalMoves(board.Black).Coordinates(); len(got) != 1 || got[0] != (board.Move{X: 4, Y: 0}) {
		t.Fatalf("black legal moves = %v, want [e1]", got)
	}

	// White cannot move, so the search burns its plies on the unchanged
	// position without handing the turn to black: every depth evaluates
	// the position exactly as it stands.
	for _, h := range []Heuristic{CornersCaptured, CoinParity, Mobility, AllInOne} {
		want := h(pos, board.Black)
		for depth := 1; depth <= 3; depth++ {
			if got := Minimax(pos.Fork(), depth, board.Black, h); got != want {
				t.Errorf("depth %d: Minimax = %d, want %d", depth, got, want)
			}
			if got := AlphaBeta(pos.Fork(), depth, -Infinity, Infinity, board.Black, h); got != want {
				t.Errorf("depth %d: AlphaBeta = %d, want %d", depth, got, want)
			}
		}
	}

	// Known values: black holds no corner against white's a1, has the
	// only mobility, and the discs are even.
	if got := Minimax(pos.Fork(), 2, board.Black, CornersCaptured); got != -100 {
		t.Errorf("Minimax with corners = %d, want -100", got)
	}
	if got := Minimax(pos.Fork(), 2, board.Black, Mobility); got != 100 {
		t.Errorf("Minimax with mobility = %d, want 100", got)
	}
	if got := Minimax(pos.Fork(), 2, board.Black, CoinParity); got != 0 {
		t.Errorf("Minimax with coin parity = %d, want 0", got)
	}
}

func TestSearchLeavesPositionUntouched(t *testing.T) {
	pos := whiteChoices(t)
	before := pos.Fork()
	Minimax(pos, 3, board.White, AllInOne)
	AlphaBeta(pos, 3, -Infinity, Infinity, board.White, AllInOne)
	if !pos.Equal(before) {
		t.Errorf("search mutated its position:\n%s", pos)
	}
}

func TestFindBestMoveSingleChoice(t *testing.T) {
	want := board.Move{X: 5, Y: 5}
	for _, algorithm := range []string{AlgorithmMinimax, AlgorithmAlphaBeta} {
		for _, heuristic := range HeuristicNames {
			pos := oneMovePossible(t)
			got := FindBestMove(pos, 1, board.White, algorithm, heuristic, false)
			if got != want {
				t.Errorf("%s/%s: FindBestMove = %v, want %v", algorithm, heuristic, got, want)
			}
		}
	}
}

func TestFindBestMoveChoices(t *testing.T) {
	cases := []struct {
		algorithm string
		heuristic string
		want      board.Move
	}{
		{AlgorithmMinimax, HeuristicAllInOne, board.Move{X: 0, Y: 0}},
		{AlgorithmAlphaBeta, HeuristicCornersCaptured, board.Move{X: 0, Y: 0}},
		{AlgorithmMinimax, HeuristicCoinParity, board.Move{X: 0, Y: 3}},
		{AlgorithmAlphaBeta, HeuristicCoinParity, board.Move{X: 0, Y: 3}},
	}
	for _, tc := range cases {
		pos := whiteChoices(t)
		got := FindBestMove(pos, 1, board.White, tc.algorithm, tc.heuristic, false)
		if got != tc.want {
			t.Errorf("%s/%s: FindBestMove = %v, want %v", tc.algorithm, tc.heuristic, got, tc.want)
		}
	}
}

func TestFindBestMoveGameOver(t *testing.T) {
	pos := fullBoard(t)
	got := FindBestMove(pos, 1, board.Black, AlgorithmMinimax, HeuristicCornersCaptured, false)
	if !got.IsPass() {
		t.Errorf("FindBestMove on a finished game = %v, want pass", got)
	}
}

func TestFindBestMoveDepthZero(t *testing.T) {
	pos, _ := board.NewPosition(8)
	got := FindBestMove(pos, 0, board.Black, AlgorithmAlphaBeta, HeuristicAllInOne, false)
	if !got.IsPass() {
		t.Errorf("FindBestMove at depth 0 = %v, want pass", got)
	}
}

func TestRandomMoveIsLegal(t *testing.T) {
	pos, _ := board.NewPosition(6)
	legal := pos.LegalMoves(pos.SideToMove())
	for i := 0; i < 20; i++ {
		mv := RandomMove(pos)
		set, err := legal.Get(mv.X, mv.Y)
		if err != nil || !set {
			t.Fatalf("RandomMove returned illegal move %v", mv)
		}
	}
}

func TestRandomMoveSingleChoice(t *testing.T) {
	pos := oneMovePossible(t)
	if got := RandomMove(pos); got != (board.Move{X: 5, Y: 5}) {
		t.Errorf("RandomMove = %v, want f6", got)
	}
}
