package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	gameKeyPrefix  = "game:"
)

// Preferences stores the user's default match settings, mirroring the
// CLI flags.
type Preferences struct {
	BoardSize    int       `json:"board_size"`
	AIDepth      int       `json:"ai_depth"`
	AIMode       string    `json:"ai_mode"`
	AIHeuristic  string    `json:"ai_heuristic"`
	AIColor      string    `json:"ai_color"`
	BlitzMinutes int       `json:"blitz_minutes"`
	Debug        bool      `json:"debug"`
	LastPlayed   time.Time `json:"last_played"`
}

// DefaultPreferences returns the default match settings.
func DefaultPreferences() *Preferences {
	return &Preferences{
		BoardSize:    8,
		AIDepth:      3,
		AIMode:       "minimax",
		AIHeuristic:  "corners_captured",
		AIColor:      "O",
		BlitzMinutes: 30,
	}
}

// GameStats accumulates results over completed games.
type GameStats struct {
	GamesPlayed     int            `json:"games_played"`
	BlackWins       int            `json:"black_wins"`
	WhiteWins       int            `json:"white_wins"`
	Draws           int            `json:"draws"`
	WinsByHeuristic map[string]int `json:"wins_by_heuristic"`
	TotalPlayTime   time.Duration  `json:"total_play_time"`
}

// NewGameStats returns empty game statistics.
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByHeuristic: make(map[string]int),
	}
}

// WinRate returns the percentage of games won by the given side,
// 0-100.
func (s *GameStats) WinRate(wins int) float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(wins) / float64(s.GamesPlayed) * 100
}

// GameResult describes one completed game.
type GameResult struct {
	BlackScore      int
	WhiteScore      int
	WinnerHeuristic string
	Duration        time.Duration
}

// GameRecord is a saved game: the save-format export plus metadata.
type GameRecord struct {
	ID      string    `json:"id"`
	SavedAt time.Time `json:"saved_at"`
	Export  string    `json:"export"`
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// Open opens the database at the default platform data directory.
func Open() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbDir)
}

// OpenAt opens the database at an explicit directory.
func OpenAt(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// OpenInMemory opens a throwaway in-memory database, used by tests.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences persists the user preferences.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads the user preferences, returning defaults when
// none are stored yet.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // use defaults
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

// SaveStats persists the game statistics.
func (s *Storage) SaveStats(stats *GameStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads the game statistics, returning empty stats when none
// are stored yet.
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // use empty stats
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordGame folds one completed game into the statistics.
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration

	switch {
	case result.BlackScore > result.WhiteScore:
		stats.BlackWins++
	case result.WhiteScore > result.BlackScore:
		stats.WhiteWins++
	default:
		stats.Draws++
	}
	if result.WinnerHeuristic != "" && result.BlackScore != result.WhiteScore {
		stats.WinsByHeuristic[result.WinnerHeuristic]++
	}

	return s.SaveStats(stats)
}

// SaveGame stores a save-format export under a fresh record ID and
// returns the ID.
func (s *Storage) SaveGame(export string) (string, error) {
	rec := GameRecord{
		ID:      uuid.NewString(),
		SavedAt: time.Now(),
		Export:  export,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(gameKeyPrefix+rec.ID), data)
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// LoadGame fetches a saved game by record ID.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	rec := &GameRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gameKeyPrefix + id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("no saved game with id %s", id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListGames returns every saved game record, most recent first.
func (s *Storage) ListGames() ([]GameRecord, error) {
	var records []GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(gameKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].SavedAt.After(records[j].SavedAt)
	})
	return records, nil
}

// ValidAIColor reports whether the AI color preference is one of the
// accepted codes: "X" (black), "O" (white) or "A" (both sides).
func ValidAIColor(code string) bool {
	switch strings.ToUpper(code) {
	case "X", "O", "A":
		return true
	}
	return false
}
