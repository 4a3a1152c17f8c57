// Package state persists small pieces of shell state between runs, such
// as the inspector dock position and detached-window geometry. Values
// are strings keyed by (section, key), an ini file living in sqlite.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver (pure Go)
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed SQLite WASM binary

	"github.com/skiff-browser/skiff/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS shell_state (
    section    TEXT NOT NULL,
    key        TEXT NOT NULL,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (section, key)
)`

// Store is the sqlite-backed state store. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens the state database at path, creating file and schema as
// needed.
func Open(ctx context.Context, path string) (*Store, error) {
	const dirPerm = 0o750
	log := logging.FromContext(ctx)

	if path == "" {
		return nil, fmt.Errorf("state: database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, fmt.Errorf("state: failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("state: failed to open database: %w", err)
	}
	// SQLite is single-writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("state: failed to connect: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("state: failed to set pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("state: failed to create schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("state store opened")
	return &Store{db: db}, nil
}

// State returns the stored value for (section, key); the bool reports
// whether anything was stored.
func (s *Store) State(ctx context.Context, section, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM shell_state WHERE section = ? AND key = ?`,
		section, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("state: read %s/%s: %w", section, key, err)
	}
	return value, true, nil
}

// SetState stores value under (section, key), replacing any previous
// value.
func (s *Store) SetState(ctx context.Context, section, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO shell_state (section, key, value, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(section, key) DO UPDATE SET
    value      = excluded.value,
    updated_at = excluded.updated_at`,
		section, key, value,
	)
	if err != nil {
		return fmt.Errorf("state: write %s/%s: %w", section, key, err)
	}
	return nil
}

// DeleteSection removes every key under section.
func (s *Store) DeleteSection(ctx context.Context, section string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM shell_state WHERE section = ?`, section)
	if err != nil {
		return fmt.Errorf("state: delete section %s: %w", section, err)
	}
	return nil
}

// Clear removes all stored state.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM shell_state`)
	if err != nil {
		return fmt.Errorf("state: clear: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
