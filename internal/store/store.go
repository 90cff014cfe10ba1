// Package store handles SQLite persistence of the snippet library.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/autotype/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a snippet does not exist.
var ErrNotFound = errors.New("snippet not found")

// Store wraps SQLite access for snippets.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snippets (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ValidateName checks that a snippet name is usable on the command line.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &model.ConfigError{Field: "name", Reason: "must not be empty"}
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return &model.ConfigError{Field: "name", Reason: fmt.Sprintf("must not contain whitespace (%q)", name)}
	}
	return nil
}

// PutSnippet creates or replaces a snippet.
func (s *Store) PutSnippet(ctx context.Context, name, text string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	now := s.now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snippets (name, body, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		name, text, now, now,
	)
	return err
}

// GetSnippet returns the snippet with the given name.
func (s *Store) GetSnippet(ctx context.Context, name string) (model.Snippet, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, body, created_at, updated_at FROM snippets WHERE name = ?`, name)
	snip, err := scanSnippet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snippet{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return snip, err
}

// ListSnippets returns all snippets ordered by name.
func (s *Store) ListSnippets(ctx context.Context) ([]model.Snippet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, body, created_at, updated_at FROM snippets ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Snippet
	for rows.Next() {
		snip, err := scanSnippet(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, snip)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteSnippet removes a snippet.
func (s *Store) DeleteSnippet(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snippets WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnippet(sc scanner) (model.Snippet, error) {
	var snip model.Snippet
	var createdAt, updatedAt string
	if err := sc.Scan(&snip.Name, &snip.Text, &createdAt, &updatedAt); err != nil {
		return model.Snippet{}, err
	}
	var err error
	if snip.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return model.Snippet{}, err
	}
	if snip.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return model.Snippet{}, err
	}
	return snip, nil
}
