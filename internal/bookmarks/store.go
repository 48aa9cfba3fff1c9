// Package bookmarks keeps the companies a user saved from the CLI in a local SQLite file.
package bookmarks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// ErrEmptyName is returned when saving a blank company name
var ErrEmptyName = errors.New("company name is required")

// Bookmark is a saved company
type Bookmark struct {
	Name    string
	SavedAt time.Time
}

// Store is a bookmark list backed by SQLite
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath returns ~/.company_prep/bookmarks.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("bookmarks: home dir: %w", err)
	}
	return filepath.Join(home, ".company_prep", "bookmarks.db"), nil
}

// Open opens or creates the bookmark database at path
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("bookmarks: mkdir %s: %w", filepath.Dir(path), err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("bookmarks: open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS bookmarks (
		name     TEXT NOT NULL PRIMARY KEY COLLATE NOCASE,
		saved_at TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bookmarks: init schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Add saves name. Names already saved, ignoring case, are left alone and added is false.
func (s *Store) Add(ctx context.Context, name string) (added bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO bookmarks (name, saved_at) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
		name, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return false, fmt.Errorf("bookmarks: add %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("bookmarks: add %q: %w", name, err)
	}
	return n > 0, nil
}

// List returns saved companies, most recently saved first
func (s *Store) List(ctx context.Context) ([]Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, saved_at FROM bookmarks ORDER BY saved_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("bookmarks: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Bookmark
	for rows.Next() {
		var b Bookmark
		var savedAt string
		if err := rows.Scan(&b.Name, &savedAt); err != nil {
			return nil, fmt.Errorf("bookmarks: scan: %w", err)
		}
		b.SavedAt, _ = time.Parse(time.RFC3339Nano, savedAt)
		out = append(out, b)
	}
	return out, rows.Err()
}

// Remove deletes name and reports whether it was saved
func (s *Store) Remove(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return false, fmt.Errorf("bookmarks: remove %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("bookmarks: remove %q: %w", name, err)
	}
	return n > 0, nil
}
