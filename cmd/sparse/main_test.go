package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildBoard(t *testing.T) {
	board, err := buildBoard(4, "1,2=1 3,0=-7")
	if err != nil {
		t.Fatalf("buildBoard: %v", err)
	}
	if board[1][2] != 1 || board[3][0] != -7 {
		t.Errorf("cells not set: %v", board)
	}

	for _, bad := range []string{"1,2", "12=1", "a,1=1", "4,0=1", "0,-1=1"} {
		if _, err := buildBoard(4, bad); err == nil {
			t.Errorf("buildBoard(%q): expected an error", bad)
		}
	}
	if _, err := buildBoard(0, ""); err == nil {
		t.Error("expected an error for size 0")
	}
	if _, err := buildBoard(1<<13, ""); err == nil {
		t.Error("expected an error for a board past MaxCells")
	}
}

func TestRun_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"table", "3\t3\t1\n0\t1\t4\n"},
		{"map", "0,1=4\ncolumn=3\nrow=3\n"},
		{"json", `{"rows":3,"cols":3,"items":[{"row":0,"col":1,"value":4}]}`},
		{"board", "0\t4\t0\t\n0\t0\t0\t\n0\t0\t0\t\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(&out, 3, "0,1=4", tt.format, "", "", false); err != nil {
				t.Fatalf("run: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("got %q, want %q", out.String(), tt.want)
			}
		})
	}

	var out bytes.Buffer
	if err := run(&out, 3, "", "xml", "", "", false); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestRun_SaveLoad(t *testing.T) {
	db := filepath.Join(t.TempDir(), "boards.db")

	var out bytes.Buffer
	if err := run(&out, 5, "2,2=9", "table", db, "demo", false); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(out.String(), `saved "demo"`) {
		t.Errorf("missing save line: %q", out.String())
	}

	out.Reset()
	if err := run(&out, 0, "", "table", db, "demo", true); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, want := out.String(), "5\t5\t1\n2\t2\t9\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if err := run(&out, 0, "", "table", db, "missing", true); err == nil {
		t.Error("expected an error loading a missing name")
	}
	if err := run(&out, 0, "", "table", "", "demo", true); err == nil {
		t.Error("expected an error for -load without -db")
	}
}
