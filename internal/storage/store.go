// Package storage persists browsing data: the visit log behind history
// completion and the per-host zoom levels.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skiff-browser/skiff/internal/logging"
	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver (pure Go)
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed SQLite WASM binary
)

// Store owns the browsing-data database connection and its query layer.
type Store struct {
	db      *sql.DB
	queries *Queries
}

// Open opens the browsing-data database at path, creating it and its
// directory if needed, and brings the schema up to date.
func Open(ctx context.Context, path string) (*Store, error) {
	const dbDirPerm = 0o750
	log := logging.FromContext(ctx)

	if path == "" {
		return nil, fmt.Errorf("storage: database path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), dbDirPerm); err != nil {
		return nil, fmt.Errorf("storage: failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to open database: %w", err)
	}

	// Pool limits must be in place before the first query runs.
	configurePool(db)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: failed to connect to database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: failed to run migrations: %w", err)
	}

	log.Info().Str("path", path).Msg("database connection established")

	return &Store{db: db, queries: New(db)}, nil
}

// applyPragmas configures SQLite for optimal performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",    // Write-Ahead Logging for concurrent access
		"PRAGMA synchronous = NORMAL",  // Safe in WAL mode
		"PRAGMA cache_size = -64000",   // 64MB cache
		"PRAGMA temp_store = MEMORY",   // Temporary tables in RAM
		"PRAGMA mmap_size = 268435456", // 256MB memory-mapped I/O
		"PRAGMA busy_timeout = 5000",   // Wait 5 seconds on lock contention
		"PRAGMA foreign_keys = ON",     // Enable referential integrity
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("storage: failed to set pragma %q: %w", pragma, err)
		}
	}

	return nil
}

// configurePool sets connection pool parameters optimized for SQLite.
// SQLite only supports one writer at a time, so we limit connections.
// They never expire or close while idle: the process terminates before
// the underlying database file is rotated or replaced.
func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
}

// Queries returns the query layer bound to this store's connection.
func (s *Store) Queries() *Queries { return s.queries }

// DB exposes the raw connection for queries the generated layer does not cover.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
