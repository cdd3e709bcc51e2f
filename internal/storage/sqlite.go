// Package storage provides SQLite-based persistence for scores, registered
// users and round history. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrUserExists is returned when registering a taken name.
	ErrUserExists = errors.New("storage: user already exists")
	// ErrUserNotFound is returned for operations on unknown users.
	ErrUserNotFound = errors.New("storage: user not found")
	// ErrInvalidName is returned for empty or oversized user names.
	ErrInvalidName = errors.New("storage: invalid user name")
)

// MaxNameLen is the longest accepted user name, in characters.
const MaxNameLen = 32

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single match score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string
	Score     int
	CreatedAt time.Time
}

// User is a registered player.
type User struct {
	ID        int64
	Name      string
	HighScore float64
	CreatedAt time.Time
}

// RoundRecord is one scored round.
type RoundRecord struct {
	ID         string // uuid; generated by SaveRound when empty
	GameID     string
	Player     string
	Steps      int
	Similarity float64
	Score      float64
	Elapsed    float64 // seconds
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			high_score REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL,
			steps INTEGER NOT NULL,
			similarity REAL NOT NULL,
			score REAL NOT NULL,
			elapsed REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_player ON rounds(player);
		CREATE INDEX IF NOT EXISTS idx_rounds_game_id ON rounds(game_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime converts a DATETIME column value, which the driver returns as
// either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveScore records a finished match total for the given game and player.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID, player string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, player, score) VALUES (?, ?, ?)",
		gameID, player, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores and rounds for the given game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM rounds WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// NormalizeName trims a user name and checks its length.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLen {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}

// RegisterUser creates a new user with a zero high score.
func (s *Store) RegisterUser(name string) (*User, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	exists, err := s.UserExists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, name)
	}

	if _, err := s.db.Exec("INSERT INTO users (name) VALUES (?)", name); err != nil {
		return nil, fmt.Errorf("storage: cannot register user: %w", err)
	}
	return s.GetUser(name)
}

// UserExists reports whether name is registered.
func (s *Store) UserExists(name string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE name = ?", strings.TrimSpace(name)).Scan(&n); err != nil {
		return false, fmt.Errorf("storage: cannot query user: %w", err)
	}
	return n > 0, nil
}

// GetUser returns the named user. Returns nil, nil if the user is unknown.
func (s *Store) GetUser(name string) (*User, error) {
	var u User
	var createdAt any
	err := s.db.QueryRow(
		"SELECT id, name, high_score, created_at FROM users WHERE name = ?",
		strings.TrimSpace(name),
	).Scan(&u.ID, &u.Name, &u.HighScore, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

// UpdateHighScore raises the user's high score to score if it is higher.
// It reports whether the stored value changed.
func (s *Store) UpdateHighScore(name string, score float64) (bool, error) {
	res, err := s.db.Exec(
		"UPDATE users SET high_score = ? WHERE name = ? AND high_score < ?",
		score, strings.TrimSpace(name), score,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot update high score: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot update high score: %w", err)
	}
	if n > 0 {
		return true, nil
	}

	exists, err := s.UserExists(name)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("%w: %s", ErrUserNotFound, name)
	}
	return false, nil
}

// SaveRound records a scored round and returns its id.
func (s *Store) SaveRound(r RoundRecord) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO rounds (id, game_id, player, steps, similarity, score, elapsed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.Player, r.Steps, r.Similarity, r.Score, r.Elapsed,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return r.ID, nil
}

// RecentRounds returns the most recent rounds, newest first.
// Empty gameID or player matches every game or player.
func (s *Store) RecentRounds(gameID, player string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, steps, similarity, score, elapsed, created_at
		 FROM rounds
		 WHERE (? = '' OR game_id = ?) AND (? = '' OR player = ?)
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Player, &r.Steps, &r.Similarity, &r.Score, &r.Elapsed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID        string
	GamesCount    int
	HighScore     int
	AvgScore      float64
	TotalScore    int64
	RoundsCount   int
	AvgSimilarity float64
	LastPlayed    time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(similarity), 0) FROM rounds WHERE game_id = ?`,
		gameID,
	).Scan(&stats.RoundsCount, &stats.AvgSimilarity)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get round stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}
