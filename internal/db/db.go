// ABOUTME: Database connection and schema management for mealog.
// ABOUTME: Handles XDG paths, SQLite initialization, and migrations.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrOpen wraps failures to establish the durable store. There is no
// degraded mode; callers treat it as fatal.
var ErrOpen = errors.New("cannot open meal database")

const schema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS meals (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL DEFAULT 'snack',
    notes TEXT NOT NULL,
    date TEXT NOT NULL,
    timestamp INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meals_date ON meals(date);
CREATE INDEX IF NOT EXISTS idx_meals_timestamp ON meals(timestamp);

CREATE TABLE IF NOT EXISTS meal_images (
    meal_id TEXT NOT NULL REFERENCES meals(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    data BLOB NOT NULL,
    PRIMARY KEY (meal_id, position)
);
`

// Open establishes the durable store at path, creating the schema if
// needed. Idempotent: a second call against the same path yields an
// equivalent handle over the same data.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %v", ErrOpen, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: run migrations: %v", ErrOpen, err)
	}

	// Enable foreign keys for this connection
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enable foreign keys: %v", ErrOpen, err)
	}

	return db, nil
}

func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mealog", "mealog.db")
}
