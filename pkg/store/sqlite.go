package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteFile is the database file name created under the base path.
const SQLiteFile = "jos.sqlite"

// SQLite keeps every key as a row of a settings table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if needed) the database under basePath.
// basePath may be ":memory:" for an in-process database.
func OpenSQLite(ctx context.Context, basePath string) (*SQLite, error) {
	dsn := basePath
	if basePath != ":memory:" {
		if basePath == "" {
			return nil, errors.New("store: base path required")
		}
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure base path: %w", err)
		}
		dsn = filepath.Join(basePath, SQLiteFile)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Get implements KV.
func (s *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements KV.
func (s *SQLite) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Watch implements KV. SQLite changes are not observed.
func (s *SQLite) Watch(context.Context) (<-chan Event, error) {
	return nil, nil
}

// Close implements KV.
func (s *SQLite) Close() error {
	return s.db.Close()
}
