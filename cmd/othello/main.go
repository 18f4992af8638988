package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xdZireael/Othello/internal/blitz"
	"github.com/xdZireael/Othello/internal/board"
	"github.com/xdZireael/Othello/internal/engine"
	"github.com/xdZireael/Othello/internal/storage"
)

// aiConfig is the per-side engine configuration.
type aiConfig struct {
	mode      string
	depth     int
	heuristic string
}

func (c aiConfig) pickMove(pos *board.Position) board.Move {
	if c.mode == "random" {
		return engine.RandomMove(pos)
	}
	return engine.FindBestMove(pos, c.depth, pos.SideToMove(), c.mode, c.heuristic, false)
}

// sideConfigs applies the AI color code: the sides it names keep their
// search configuration, the rest play random moves.
func sideConfigs(code string, black, white aiConfig) (aiConfig, aiConfig) {
	switch strings.ToUpper(code) {
	case "X":
		white.mode = "random"
	case "O":
		black.mode = "random"
	}
	return black, white
}

func main() {
	defaults := storage.DefaultPreferences()

	size := flag.Int("size", defaults.BoardSize, "board size (6, 8, 10 or 12)")
	blitzMinutes := flag.Int("blitz", 0, "blitz time budget per player in minutes (0 disables)")
	aiMode := flag.String("ai-mode", defaults.AIMode, "black search algorithm (minimax, alphabeta)")
	aiDepth := flag.Int("ai-depth", defaults.AIDepth, "black search depth")
	aiHeuristic := flag.String("ai-heuristic", defaults.AIHeuristic, "black evaluation heuristic")
	aiColor := flag.String("ai-color", defaults.AIColor, "side(s) using the search engine: X (black), O (white) or A (both); the rest play random moves")
	whiteMode := flag.String("white-ai-mode", "", "white search algorithm (defaults to -ai-mode)")
	whiteDepth := flag.Int("white-ai-depth", 0, "white search depth (defaults to -ai-depth)")
	whiteHeuristic := flag.String("white-ai-heuristic", "", "white evaluation heuristic (defaults to -ai-heuristic)")
	loadFile := flag.String("load", "", "resume the game saved in this file")
	loadID := flag.String("load-id", "", "resume the game stored under this record id")
	saveFile := flag.String("save", "", "write the finished game to this file")
	listGames := flag.Bool("list", false, "list stored games and exit")
	benchmark := flag.Bool("benchmark", false, "log per-turn search timings")
	debug := flag.Bool("debug", false, "enable debug logging")
	noStore := flag.Bool("no-store", false, "skip the preferences/statistics database")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if !storage.ValidAIColor(*aiColor) {
		log.Fatal().Str("ai-color", *aiColor).Msg("AI color must be X, O or A")
	}

	var store *storage.Storage
	if !*noStore {
		var err error
		store, err = storage.Open()
		if err != nil {
			log.Warn().Err(err).Msg("storage unavailable, continuing without it")
		} else {
			defer store.Close()
		}
	}

	if *listGames {
		if store == nil {
			log.Fatal().Msg("-list needs the storage database")
		}
		records, err := store.ListGames()
		if err != nil {
			log.Fatal().Err(err).Msg("could not list stored games")
		}
		for _, rec := range records {
			fmt.Printf("%s  %s\n", rec.ID, rec.SavedAt.Format(time.RFC3339))
		}
		return
	}

	black := aiConfig{mode: *aiMode, depth: *aiDepth, heuristic: *aiHeuristic}
	white := black
	if *whiteMode != "" {
		white.mode = *whiteMode
	}
	if *whiteDepth > 0 {
		white.depth = *whiteDepth
	}
	if *whiteHeuristic != "" {
		white.heuristic = *whiteHeuristic
	}
	configured := black
	black, white = sideConfigs(*aiColor, black, white)

	pos, err := setupPosition(store, *size, *loadFile, *loadID)
	if err != nil {
		log.Fatal().Err(err).Msg("could not set up the game")
	}

	var clock *blitz.Clock
	if *blitzMinutes > 0 {
		clock = blitz.New(time.Duration(*blitzMinutes) * time.Minute)
		clock.Start(pos.SideToMove())
	}

	start := time.Now()
	runGame(pos, black, white, clock, *benchmark)

	blackScore := pos.CountDiscs(board.Black)
	whiteScore := pos.CountDiscs(board.White)
	fmt.Println(pos)
	fmt.Printf("Final score - Black: %d, White: %d\n", blackScore, whiteScore)
	switch {
	case blackScore > whiteScore:
		fmt.Println("Black wins!")
	case whiteScore > blackScore:
		fmt.Println("White wins!")
	default:
		fmt.Println("Draw!")
	}

	if *saveFile != "" {
		if err := os.WriteFile(*saveFile, []byte(pos.Export()+"\n"), 0644); err != nil {
			log.Error().Err(err).Str("file", *saveFile).Msg("could not save the game")
		}
	}

	if store != nil {
		if id, err := store.SaveGame(pos.Export()); err != nil {
			log.Error().Err(err).Msg("could not store the game record")
		} else {
			log.Info().Str("id", id).Msg("game stored")
		}
		recordOutcome(store, black, white, blackScore, whiteScore, time.Since(start))
		savePreferences(store, *size, configured, *aiColor, *blitzMinutes, *debug)
	}
}

func setupPosition(store *storage.Storage, size int, loadFile, loadID string) (*board.Position, error) {
	switch {
	case loadID != "":
		if store == nil {
			return nil, fmt.Errorf("-load-id needs the storage database")
		}
		rec, err := store.LoadGame(loadID)
		if err != nil {
			return nil, err
		}
		pos, err := board.ParseSave(rec.Export)
		if err != nil {
			return nil, fmt.Errorf("parsing record %s: %w", loadID, err)
		}
		return pos, nil
	case loadFile != "":
		raw, err := os.ReadFile(loadFile)
		if err != nil {
			return nil, err
		}
		pos, err := board.ParseSave(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", loadFile, err)
		}
		return pos, nil
	default:
		return board.NewPosition(size)
	}
}

// runGame plays the position out move by move until the game ends. A
// player whose clock runs out forfeits on the spot.
func runGame(pos *board.Position, black, white aiConfig, clock *blitz.Clock, benchmark bool) {
	for !pos.IsGameOver() {
		side := pos.SideToMove()
		if clock != nil && clock.TimeUp(side) {
			log.Info().Str("player", side.String()).Msg("out of time, game forfeited")
			pos.ForceGameOver()
			return
		}

		cfg := black
		if side == board.White {
			cfg = white
		}
		turnStart := time.Now()
		mv := cfg.pickMove(pos)
		if mv.IsPass() {
			// No legal move left for either side.
			return
		}
		if err := pos.Play(mv.X, mv.Y); err != nil {
			log.Fatal().Err(err).Str("move", mv.String()).Msg("engine produced an illegal move")
		}
		if benchmark {
			log.Info().
				Str("player", side.String()).
				Str("move", mv.String()).
				Int("turn", pos.TurnID()).
				Dur("elapsed", time.Since(turnStart)).
				Msg("move played")
		}
		log.Debug().Str("player", side.String()).Str("move", mv.String()).Msg("played")

		if clock != nil {
			clock.ChangePlayer(pos.SideToMove())
		}
	}
}

func recordOutcome(store *storage.Storage, black, white aiConfig, blackScore, whiteScore int, elapsed time.Duration) {
	winner := ""
	switch {
	case blackScore > whiteScore:
		winner = black.heuristic
	case whiteScore > blackScore:
		winner = white.heuristic
	}
	err := store.RecordGame(storage.GameResult{
		BlackScore:      blackScore,
		WhiteScore:      whiteScore,
		WinnerHeuristic: winner,
		Duration:        elapsed,
	})
	if err != nil {
		log.Error().Err(err).Msg("could not record the game")
	}
}

func savePreferences(store *storage.Storage, size int, black aiConfig, aiColor string, blitzMinutes int, debug bool) {
	prefs, err := store.LoadPreferences()
	if err != nil {
		log.Error().Err(err).Msg("could not load preferences")
		return
	}
	prefs.BoardSize = size
	prefs.AIMode = black.mode
	prefs.AIDepth = black.depth
	prefs.AIHeuristic = black.heuristic
	prefs.AIColor = strings.ToUpper(aiColor)
	prefs.BlitzMinutes = blitzMinutes
	prefs.Debug = debug
	if err := store.SavePreferences(prefs); err != nil {
		log.Error().Err(err).Msg("could not save preferences")
	}
}
