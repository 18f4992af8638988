// Package engine implements adversarial tree search and static
// evaluation for Othello positions.
package engine

import (
	"math"

	"github.com/xdZireael/Othello/internal/board"
)

// Heuristic statically evaluates a position from the point of view of
// maxPlayer, as a signed percentage in [-100, 100] (AllInOne is an
// unnormalized weighted sum and exceeds that range).
type Heuristic func(pos *board.Position, maxPlayer board.Color) int

// EmptyEval is returned when a difference-based heuristic is asked to
// score the Empty color. It is a sentinel, not a score; callers treat
// it as "no advantage".
const EmptyEval = math.MinInt32

// Heuristic names accepted by FindBestMove.
const (
	HeuristicCornersCaptured = "corners_captured"
	HeuristicCoinParity      = "coin_parity"
	HeuristicMobility        = "mobility"
	HeuristicAllInOne        = "all_in_one"
)

// HeuristicNames lists every named heuristic.
var HeuristicNames = []string{
	HeuristicCornersCaptured,
	HeuristicCoinParity,
	HeuristicMobility,
	HeuristicAllInOne,
}

// HeuristicByName resolves a heuristic name. Unknown names fall back
// to the all-in-one heuristic rather than failing.
func HeuristicByName(name string) Heuristic {
	switch name {
	case HeuristicCornersCaptured:
		return CornersCaptured
	case HeuristicCoinParity:
		return CoinParity
	case HeuristicMobility:
		return Mobility
	default:
		return AllInOne
	}
}

// CornersCaptured scores corner ownership: 100*(own-opp)/(own+opp)
// over the four board corners, 0 when no corner is taken.
func CornersCaptured(pos *board.Position, maxPlayer board.Color) int {
	size := pos.Size()
	corners := [4][2]int{{0, 0}, {size - 1, 0}, {0, size - 1}, {size - 1, size - 1}}

	maxCorners, minCorners := 0, 0
	for _, c := range corners {
		owner, _ := pos.PlayerAt(c[0], c[1])
		if owner == maxPlayer {
			maxCorners++
		}
		if owner == maxPlayer.Opposite() {
			minCorners++
		}
	}

	if maxCorners+minCorners == 0 {
		return 0
	}
	return 100 * (maxCorners - minCorners) / (maxCorners + minCorners)
}

// CoinParity scores the disc-count difference as a percentage of all
// discs on the board. An empty board scores 0; the Empty color gets
// the EmptyEval sentinel.
func CoinParity(pos *board.Position, maxPlayer board.Color) int {
	blackCount := pos.CountDiscs(board.Black)
	whiteCount := pos.CountDiscs(board.White)

	if blackCount+whiteCount == 0 {
		return 0
	}
	switch maxPlayer {
	case board.Black:
		return 100 * (blackCount - whiteCount) / (blackCount + whiteCount)
	case board.White:
		return 100 * (whiteCount - blackCount) / (blackCount + whiteCount)
	default:
		return EmptyEval
	}
}

// Mobility scores the legal-move-count difference as a percentage of
// both players' combined mobility. 0 when neither side can move; the
// Empty color gets the EmptyEval sentinel.
func Mobility(pos *board.Position, maxPlayer board.Color) int {
	blackMoves := pos.LegalMoves(board.Black).PopCount()
	whiteMoves := pos.LegalMoves(board.White).PopCount()

	if blackMoves+whiteMoves == 0 {
		return 0
	}
	switch maxPlayer {
	case board.Black:
		return 100 * (blackMoves - whiteMoves) / (blackMoves + whiteMoves)
	case board.White:
		return 100 * (whiteMoves - blackMoves) / (blackMoves + whiteMoves)
	default:
		return EmptyEval
	}
}

// AllInOne weights for the combined evaluation.
const (
	weightCorners  = 10
	weightMobility = 4
	weightCoins    = 1
)

// AllInOne combines the three scaled heuristics into one weighted sum.
// The result is not clamped back to [-100, 100].
func AllInOne(pos *board.Position, maxPlayer board.Color) int {
	return weightCorners*CornersCaptured(pos, maxPlayer) +
		weightMobility*Mobility(pos, maxPlayer) +
		weightCoins*CoinParity(pos, maxPlayer)
}
