// Package store is the SQLite-backed save store behind the
// persistence API. Saves are keyed by session name; a second save
// under the same name overwrites the first.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no save exists under the given name.
var ErrNotFound = errors.New("save not found")

// Summary identifies one saved session.
type Summary struct {
	ID   string
	Name string
}

// Store persists flat save records as JSON documents.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given DSN and
// runs migrations. Example DSN: "file:questwalk.db?_journal=WAL".
func Open(dsn string) (*Store, error) {
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &Store{db: sqldb}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			record TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saves_updated ON saves(updated_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Put stores record JSON under name, overwriting any previous save
// with that name, and returns the row identifier.
func (s *Store) Put(ctx context.Context, name string, record []byte) (string, error) {
	if name == "" {
		return "", errors.New("save name cannot be empty")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves(name, record, updated_at) VALUES(?, ?, datetime('now'))
		ON CONFLICT(name) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		name, string(record))
	if err != nil {
		return "", fmt.Errorf("put save %q: %w", name, err)
	}
	var id int64
	row := s.db.QueryRowContext(ctx, `SELECT id FROM saves WHERE name = ?`, name)
	if err := row.Scan(&id); err != nil {
		return "", fmt.Errorf("put save %q: %w", name, err)
	}
	return strconv.FormatInt(id, 10), nil
}

// Get returns the record JSON saved under name.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `SELECT record FROM saves WHERE name = ?`, name)
	var record string
	if err := row.Scan(&record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get save %q: %w", name, err)
	}
	return []byte(record), nil
}

// List returns every save, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM saves ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()
	var out []Summary
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("list saves: %w", err)
		}
		out = append(out, Summary{ID: strconv.FormatInt(id, 10), Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return out, nil
}
