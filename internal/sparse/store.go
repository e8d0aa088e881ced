package sparse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS arrays (
	name   TEXT PRIMARY KEY,
	n_rows INTEGER NOT NULL,
	n_cols INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS cells (
	name    TEXT NOT NULL REFERENCES arrays(name) ON DELETE CASCADE,
	row_idx INTEGER NOT NULL,
	col_idx INTEGER NOT NULL,
	value   INTEGER NOT NULL,
	PRIMARY KEY (name, row_idx, col_idx)
);
`

// Store keeps named Arrays in a sqlite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the database at path. path may be a
// plain file name or a "file:" URI with its own query; ":memory:" gives a
// private in-memory store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("sparse: open %s: %w", path, err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sparse: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// dsn turns path into a "file:" URI with foreign keys switched on.
func dsn(path string) string {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Save stores a under name, replacing any array already saved there.
func (s *Store) Save(ctx context.Context, name string, a Array) error {
	if err := a.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sparse: save %q: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cells WHERE name = ?`, name); err != nil {
		return fmt.Errorf("sparse: save %q: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO arrays (name, n_rows, n_cols) VALUES (?, ?, ?)
		 ON CONFLICT (name) DO UPDATE SET n_rows = excluded.n_rows, n_cols = excluded.n_cols`,
		name, a.Rows, a.Cols); err != nil {
		return fmt.Errorf("sparse: save %q: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO cells (name, row_idx, col_idx, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sparse: save %q: %w", name, err)
	}
	defer stmt.Close()
	for _, t := range a.Items {
		if _, err := stmt.ExecContext(ctx, name, t.Row, t.Col, t.Value); err != nil {
			return fmt.Errorf("sparse: save %q cell (%d,%d): %w", name, t.Row, t.Col, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sparse: save %q: %w", name, err)
	}
	return nil
}

// Load returns the array saved under name, or ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) (Array, error) {
	var a Array
	err := s.db.QueryRowContext(ctx,
		`SELECT n_rows, n_cols FROM arrays WHERE name = ?`, name).Scan(&a.Rows, &a.Cols)
	if errors.Is(err, sql.ErrNoRows) {
		return Array{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return Array{}, fmt.Errorf("sparse: load %q: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT row_idx, col_idx, value FROM cells WHERE name = ? ORDER BY row_idx, col_idx`, name)
	if err != nil {
		return Array{}, fmt.Errorf("sparse: load %q: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t Triple
		if err := rows.Scan(&t.Row, &t.Col, &t.Value); err != nil {
			return Array{}, fmt.Errorf("sparse: load %q: %w", name, err)
		}
		a.Items = append(a.Items, t)
	}
	if err := rows.Err(); err != nil {
		return Array{}, fmt.Errorf("sparse: load %q: %w", name, err)
	}
	if err := a.Validate(); err != nil {
		return Array{}, fmt.Errorf("sparse: load %q: %w", name, err)
	}
	return a, nil
}

// Names lists the saved arrays in name order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM arrays ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("sparse: list: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("sparse: list: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Delete removes the array saved under name, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM arrays WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("sparse: delete %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
