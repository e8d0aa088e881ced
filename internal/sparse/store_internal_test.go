package sparse

import (
	"context"
	"errors"
	"testing"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"sparse.db", "file:sparse.db?_foreign_keys=on"},
		{"/tmp/x/sparse.db", "file:/tmp/x/sparse.db?_foreign_keys=on"},
		{":memory:", "file::memory:?_foreign_keys=on"},
		{"file:sparse.db", "file:sparse.db?_foreign_keys=on"},
		{"file:sparse.db?cache=shared", "file:sparse.db?cache=shared&_foreign_keys=on"},
		{"sparse.db?mode=rwc", "file:sparse.db?mode=rwc&_foreign_keys=on"},
	}
	for _, tt := range tests {
		if got := dsn(tt.path); got != tt.want {
			t.Errorf("dsn(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// Rows written by something other than Save are still checked on Load.
func TestStore_LoadRejectsHugeDimensions(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(":memory:")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer s.Close()

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO arrays (name, n_rows, n_cols) VALUES (?, ?, ?)`,
		"huge", 3037000500, 3037000500); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.Load(ctx, "huge"); !errors.Is(err, ErrBadHeader) {
		t.Errorf("expected ErrBadHeader, got %v", err)
	}
}

// Deleting an array drops its cells through the foreign key.
func TestStore_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(":memory:")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer s.Close()

	var on int
	if err := s.db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&on); err != nil {
		t.Fatalf("PRAGMA: %v", err)
	}
	if on != 1 {
		t.Errorf("expected foreign_keys = 1, got %d", on)
	}

	a := Array{Rows: 4, Cols: 4, Items: []Triple{{Row: 1, Col: 2, Value: 1}, {Row: 2, Col: 3, Value: 2}}}
	if err := s.Save(ctx, "c", a); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, "c"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cells WHERE name = ?`, "c").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no cells after Delete, got %d", n)
	}
}
