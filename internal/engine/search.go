package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xdZireael/Othello/internal/board"
)

// Infinity bounds every reachable score: heuristics stay within
// [-1500, 1500], so it doubles as the alpha/beta window sentinel.
const Infinity = 30000

// Search algorithm names accepted by FindBestMove.
const (
	AlgorithmMinimax   = "minimax"
	AlgorithmAlphaBeta = "alphabeta"
	AlgorithmAB        = "ab"
)

// withMove plays mv on pos, runs eval, and guarantees the matching
// undo on every exit path. Search moves come straight from the
// legal-move mask, so a failure here is a broken invariant, not an
// input error.
func withMove(pos *board.Position, mv board.Move, eval func() int) int {
	if err := pos.Play(mv.X, mv.Y); err != nil {
		panic(fmt.Sprintf("search played illegal move %s: %v", mv, err))
	}
	defer func() {
		if err := pos.Pop(); err != nil {
			panic(fmt.Sprintf("search failed to undo %s: %v", mv, err))
		}
	}()
	return eval()
}

// Minimax evaluates the position by exhaustive depth-first search,
// maximizing on maxPlayer's turns and minimizing on the opponent's.
func Minimax(pos *board.Position, depth int, maxPlayer board.Color, h Heuristic) int {
	if depth == 0 || pos.IsGameOver() {
		return h(pos, maxPlayer)
	}

	moves := pos.LegalMoves(pos.SideToMove()).Coordinates()
	if len(moves) == 0 {
		// The stalled side keeps the turn and the search burns a ply on
		// the unchanged position. Deliberately not the same as Play's
		// auto-pass: changing it changes every established score.
		return Minimax(pos, depth-1, maxPlayer, h)
	}

	if maxPlayer == pos.SideToMove() {
		best := -Infinity
		for _, mv := range moves {
			score := withMove(pos, mv, func() int {
				return Minimax(pos, depth-1, maxPlayer, h)
			})
			best = max(best, score)
		}
		return best
	}

	best := Infinity
	for _, mv := range moves {
		score := withMove(pos, mv, func() int {
			return Minimax(pos, depth-1, maxPlayer, h)
		})
		best = min(best, score)
	}
	return best
}

// AlphaBeta is Minimax with an (alpha, beta) window: sibling iteration
// stops as soon as beta <= alpha, since the pruned subtrees cannot
// change the final choice. Scores equal Minimax's for the same inputs.
func AlphaBeta(pos *board.Position, depth, alpha, beta int, maxPlayer board.Color, h Heuristic) int {
	if depth == 0 || pos.IsGameOver() {
		return h(pos, maxPlayer)
	}

	moves := pos.LegalMoves(pos.SideToMove()).Coordinates()
	if len(moves) == 0 {
		return Minimax(pos, depth-1, maxPlayer, h)
	}

	if maxPlayer == pos.SideToMove() {
		best := -Infinity
		for _, mv := range moves {
			score := withMove(pos, mv, func() int {
				return AlphaBeta(pos, depth-1, alpha, beta, maxPlayer, h)
			})
			best = max(best, score)
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := Infinity
	for _, mv := range moves {
		score := withMove(pos, mv, func() int {
			return AlphaBeta(pos, depth-1, alpha, beta, maxPlayer, h)
		})
		best = min(best, score)
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}

// FindBestMove enumerates the side to move's legal moves and returns
// the one whose subtree scores best for maxPlayer under the named
// algorithm and heuristic. Unknown heuristic names fall back to
// all-in-one. Each candidate is evaluated on an independent fork of
// the position with fresh alpha/beta bounds, so root moves are never
// pruned against each other. Returns Pass when depth is 0 or the game
// is over.
func FindBestMove(pos *board.Position, depth int, maxPlayer board.Color, algorithm, heuristic string, benchmark bool) board.Move {
	if depth == 0 || pos.IsGameOver() {
		return board.Pass
	}

	h := HeuristicByName(heuristic)
	moves := pos.LegalMoves(pos.SideToMove()).Coordinates()
	start := time.Now()

	bestMove := board.Pass
	bestScore := Infinity
	if maxPlayer == pos.SideToMove() {
		bestScore = -Infinity
	}
	for _, mv := range moves {
		child := pos.Fork()
		if err := child.Play(mv.X, mv.Y); err != nil {
			continue
		}
		var score int
		if algorithm == AlgorithmMinimax {
			score = Minimax(child, depth-1, maxPlayer, h)
		} else {
			score = AlphaBeta(child, depth-1, -Infinity, Infinity, maxPlayer, h)
		}
		log.Debug().
			Str("move", mv.String()).
			Int("score", score).
			Int("depth", depth).
			Msg("evaluated root move")
		if score > bestScore {
			bestScore = score
			bestMove = mv
		}
	}

	if benchmark {
		log.Info().
			Str("algorithm", algorithm).
			Str("heuristic", heuristic).
			Int("depth", depth).
			Int("moves", len(moves)).
			Dur("elapsed", time.Since(start)).
			Msg("root search finished")
	}
	return bestMove
}

// RandomMove returns a uniformly random legal move for the side to
// move. The caller must ensure at least one legal move exists.
func RandomMove(pos *board.Position) board.Move {
	moves := pos.LegalMoves(pos.SideToMove()).Coordinates()
	return moves[rand.IntN(len(moves))]
}
