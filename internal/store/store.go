// Package store persists client-local state in SQLite: the auth session
// (access token, token type, role) and a history of graded exam attempts.
// The server owns all real data; this store only remembers who is signed in
// and what they scored.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies pragmas, and runs
// migration.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SessionRepo returns the session repository backed by this store.
func (s *Store) SessionRepo() SessionRepo {
	return &sessionRepo{db: s.db}
}

// AttemptRepo returns the attempt-history repository backed by this store.
func (s *Store) AttemptRepo() AttemptRepo {
	return &attemptRepo{db: s.db}
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS auth_session (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attempts (
		id TEXT PRIMARY KEY,
		exam_id TEXT NOT NULL,
		title TEXT NOT NULL,
		flow TEXT NOT NULL,
		score REAL NOT NULL,
		correct_count INTEGER NOT NULL,
		total_questions INTEGER NOT NULL,
		taken_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// applyPragmas configures SQLite for single-user client use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. BILIM_DB environment variable
// 2. $XDG_DATA_HOME/bilim/bilim.db
// 3. ~/.local/share/bilim/bilim.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("BILIM_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "bilim", "bilim.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
