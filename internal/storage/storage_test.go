package storage

import (
	"testing"
	"time"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open in-memory storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	if prefs.BoardSize != 8 {
		t.Errorf("Expected board size 8, got %d", prefs.BoardSize)
	}
	if prefs.AIDepth != 3 {
		t.Errorf("Expected AI depth 3, got %d", prefs.AIDepth)
	}
	if prefs.AIMode != "minimax" {
		t.Errorf("Expected minimax mode, got %q", prefs.AIMode)
	}
	if prefs.AIHeuristic != "corners_captured" {
		t.Errorf("Expected corners_captured heuristic, got %q", prefs.AIHeuristic)
	}
	if prefs.BlitzMinutes != 30 {
		t.Errorf("Expected 30 blitz minutes, got %d", prefs.BlitzMinutes)
	}
}

func TestPreferencesRoundtrip(t *testing.T) {
	s := openTestStorage(t)

	// Nothing stored yet: defaults come back.
	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if prefs.BoardSize != 8 {
		t.Errorf("Expected default board size, got %d", prefs.BoardSize)
	}

	prefs.BoardSize = 10
	prefs.AIMode = "alphabeta"
	prefs.AIHeuristic = "all_in_one"
	prefs.Debug = true
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.BoardSize != 10 || loaded.AIMode != "alphabeta" || loaded.AIHeuristic != "all_in_one" || !loaded.Debug {
		t.Errorf("Loaded preferences differ: %+v", loaded)
	}
	if loaded.LastPlayed.IsZero() {
		t.Error("Expected LastPlayed to be stamped on save")
	}
}

func TestGameStats(t *testing.T) {
	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.WinRate(stats.BlackWins) != 0 {
			t.Errorf("Expected 0 win rate")
		}
	})

	t.Run("WinRate", func(t *testing.T) {
		stats := &GameStats{GamesPlayed: 10, BlackWins: 5, WhiteWins: 3, Draws: 2}
		if rate := stats.WinRate(stats.BlackWins); rate != 50 {
			t.Errorf("Expected 50%% win rate, got %.2f%%", rate)
		}
	})
}

func TestRecordGame(t *testing.T) {
	s := openTestStorage(t)

	results := []GameResult{
		{BlackScore: 40, WhiteScore: 24, WinnerHeuristic: "all_in_one", Duration: time.Minute},
		{BlackScore: 20, WhiteScore: 44, WinnerHeuristic: "corners_captured", Duration: 2 * time.Minute},
		{BlackScore: 32, WhiteScore: 32, Duration: time.Minute},
		{BlackScore: 50, WhiteScore: 14, WinnerHeuristic: "all_in_one", Duration: time.Minute},
	}
	for _, r := range results {
		if err := s.RecordGame(r); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 4 {
		t.Errorf("Expected 4 games played, got %d", stats.GamesPlayed)
	}
	if stats.BlackWins != 2 || stats.WhiteWins != 1 || stats.Draws != 1 {
		t.Errorf("Expected 2/1/1 wins/losses/draws, got %d/%d/%d", stats.BlackWins, stats.WhiteWins, stats.Draws)
	}
	if stats.WinsByHeuristic["all_in_one"] != 2 {
		t.Errorf("Expected 2 all_in_one wins, got %d", stats.WinsByHeuristic["all_in_one"])
	}
	if stats.TotalPlayTime != 5*time.Minute {
		t.Errorf("Expected 5m of play time, got %v", stats.TotalPlayTime)
	}
}

func TestSaveLoadGame(t *testing.T) {
	s := openTestStorage(t)

	export := "# board\nX\n_ _ _ _ _ _\n_ _ _ _ _ _\n_ _ O X _ _\n_ _ X O _ _\n_ _ _ _ _ _\n_ _ _ _ _ _"
	id, err := s.SaveGame(export)
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("Expected a non-empty game id")
	}

	rec, err := s.LoadGame(id)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Export != export {
		t.Errorf("Loaded export differs:\n%s", rec.Export)
	}
	if rec.ID != id {
		t.Errorf("Expected id %s, got %s", id, rec.ID)
	}

	if _, err := s.LoadGame("not-a-real-id"); err == nil {
		t.Error("Expected an error for an unknown id")
	}
}

func TestListGames(t *testing.T) {
	s := openTestStorage(t)

	games, err := s.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 0 {
		t.Fatalf("Expected no games, got %d", len(games))
	}

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		id, err := s.SaveGame("export")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	games, err = s.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 3 {
		t.Fatalf("Expected 3 games, got %d", len(games))
	}
	seen := make(map[string]bool)
	for _, g := range games {
		seen[g.ID] = true
	}
	for _, id := range ids {
		if !seen[id] {
			t.Errorf("Game %s missing from the listing", id)
		}
	}
}

func TestValidAIColor(t *testing.T) {
	for _, code := range []string{"X", "O", "A", "x", "o", "a"} {
		if !ValidAIColor(code) {
			t.Errorf("ValidAIColor(%q) = false", code)
		}
	}
	for _, code := range []string{"", "B", "XO", "black"} {
		if ValidAIColor(code) {
			t.Errorf("ValidAIColor(%q) = true", code)
		}
	}
}
