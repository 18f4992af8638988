package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/xdZireael/Othello/internal/board"
	"github.com/xdZireael/Othello/internal/engine"
)

// matchup is one scheduled game between two heuristics.
type matchup struct {
	blackHeuristic string
	whiteHeuristic string
	game           int
}

// result is the outcome of one finished game.
type result struct {
	matchup
	blackScore int
	whiteScore int
	moves      int
	elapsed    time.Duration
}

func main() {
	size := flag.Int("size", 8, "board size (6, 8, 10 or 12)")
	depth := flag.Int("depth", 3, "search depth for both players")
	games := flag.Int("games", 1, "games per heuristic pairing")
	algorithm := flag.String("algorithm", engine.AlgorithmAlphaBeta, "search algorithm for both players")
	parallel := flag.Int("parallel", runtime.NumCPU(), "games played concurrently")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if !board.ValidSize(*size) {
		log.Fatal().Int("size", *size).Msg("unsupported board size")
	}

	var schedule []matchup
	for _, blackH := range engine.HeuristicNames {
		for _, whiteH := range engine.HeuristicNames {
			for game := 0; game < *games; game++ {
				schedule = append(schedule, matchup{blackHeuristic: blackH, whiteHeuristic: whiteH, game: game})
			}
		}
	}
	log.Info().
		Int("pairings", len(engine.HeuristicNames)*len(engine.HeuristicNames)).
		Int("games", len(schedule)).
		Int("parallel", *parallel).
		Msg("starting heuristic round-robin")

	results := make([]result, len(schedule))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(*parallel)
	for i, m := range schedule {
		g.Go(func() error {
			r, err := playGame(m, *size, *depth, *algorithm)
			if err != nil {
				return err
			}
			results[i] = r
			log.Info().
				Str("black", m.blackHeuristic).
				Str("white", m.whiteHeuristic).
				Int("black_score", r.blackScore).
				Int("white_score", r.whiteScore).
				Dur("elapsed", r.elapsed).
				Msg("game finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("benchmark aborted")
	}

	if err := writeCSV(os.Stdout, results); err != nil {
		log.Fatal().Err(err).Msg("could not write results")
	}
}

// playGame plays one full AI-vs-AI game and reports the outcome. Each
// game owns its position, so games are independent and safe to run in
// parallel.
func playGame(m matchup, size, depth int, algorithm string) (result, error) {
	pos, err := board.NewPosition(size)
	if err != nil {
		return result{}, err
	}

	start := time.Now()
	moves := 0
	for !pos.IsGameOver() {
		heuristic := m.blackHeuristic
		if pos.SideToMove() == board.White {
			heuristic = m.whiteHeuristic
		}
		mv := engine.FindBestMove(pos, depth, pos.SideToMove(), algorithm, heuristic, false)
		if mv.IsPass() {
			break
		}
		if err := pos.Play(mv.X, mv.Y); err != nil {
			return result{}, fmt.Errorf("%s vs %s: illegal move %s: %w",
				m.blackHeuristic, m.whiteHeuristic, mv, err)
		}
		moves++
	}

	return result{
		matchup:    m,
		blackScore: pos.CountDiscs(board.Black),
		whiteScore: pos.CountDiscs(board.White),
		moves:      moves,
		elapsed:    time.Since(start),
	}, nil
}

func writeCSV(out *os.File, results []result) error {
	w := csv.NewWriter(out)
	header := []string{"black_heuristic", "white_heuristic", "game", "black_score", "white_score", "winner", "moves", "elapsed_ms"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		winner := "draw"
		if r.blackScore > r.whiteScore {
			winner = "black"
		} else if r.whiteScore > r.blackScore {
			winner = "white"
		}
		row := []string{
			r.blackHeuristic,
			r.whiteHeuristic,
			strconv.Itoa(r.game),
			strconv.Itoa(r.blackScore),
			strconv.Itoa(r.whiteScore),
			winner,
			strconv.Itoa(r.moves),
			strconv.FormatInt(r.elapsed.Milliseconds(), 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
