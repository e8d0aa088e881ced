// Command sparse compresses a mostly-empty board into a sparse array and
// prints it in one of its forms, optionally saving it to or loading it from
// a sqlite database.
//
// Usage:
//
//	go run ./cmd/sparse -size 11 -set "1,2=1 2,3=2" -format table
//	go run ./cmd/sparse -set "0,0=5" -db boards.db -name demo
//	go run ./cmd/sparse -db boards.db -name demo -load -format board
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/randomizedcoder/boundedbuffer/internal/sparse"
)

func main() {
	size := flag.Int("size", 11, "board rows and columns")
	set := flag.String("set", "1,2=1 2,3=2", "space-separated non-zero cells as row,col=value")
	format := flag.String("format", "table", "output: table, map, json or board")
	db := flag.String("db", "", "sqlite database to save to or load from")
	name := flag.String("name", "board", "name of the array in the database")
	load := flag.Bool("load", false, "load -name from -db instead of building a board")
	flag.Parse()

	if err := run(os.Stdout, *size, *set, *format, *db, *name, *load); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out io.Writer, size int, set, format, dbPath, name string, load bool) error {
	ctx := context.Background()

	var store *sparse.Store
	if dbPath != "" {
		s, err := sparse.OpenStore(dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	var a sparse.Array
	if load {
		if store == nil {
			return errors.New("-load needs -db")
		}
		var err error
		if a, err = store.Load(ctx, name); err != nil {
			return err
		}
	} else {
		board, err := buildBoard(size, set)
		if err != nil {
			return err
		}
		if a, err = sparse.Compress(board); err != nil {
			return err
		}
		if store != nil {
			if err := store.Save(ctx, name, a); err != nil {
				return err
			}
			fmt.Fprintf(out, "saved %q (%d cells) to %s\n", name, a.Len(), dbPath)
		}
	}

	return render(out, a, format)
}

// buildBoard returns a size x size board with the cells listed in set.
func buildBoard(size int, set string) ([][]int, error) {
	if size <= 0 {
		return nil, fmt.Errorf("size %d must be positive", size)
	}
	if size > sparse.MaxCells/size {
		return nil, fmt.Errorf("size %d: board exceeds %d cells", size, sparse.MaxCells)
	}
	board := make([][]int, size)
	for i := range board {
		board[i] = make([]int, size)
	}
	for _, cell := range strings.Fields(set) {
		pos, val, ok := strings.Cut(cell, "=")
		if !ok {
			return nil, fmt.Errorf("cell %q: want row,col=value", cell)
		}
		rs, cs, ok := strings.Cut(pos, ",")
		if !ok {
			return nil, fmt.Errorf("cell %q: want row,col=value", cell)
		}
		r, err1 := strconv.Atoi(rs)
		c, err2 := strconv.Atoi(cs)
		v, err3 := strconv.Atoi(val)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("cell %q: want integers", cell)
		}
		if r < 0 || r >= size || c < 0 || c >= size {
			return nil, fmt.Errorf("cell %q: outside %dx%d board", cell, size, size)
		}
		board[r][c] = v
	}
	return board, nil
}

func render(out io.Writer, a sparse.Array, format string) error {
	switch format {
	case "table":
		for _, row := range a.Table() {
			fmt.Fprintf(out, "%d\t%d\t%d\n", row[0], row[1], row[2])
		}
	case "map":
		m := a.Map()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "%s=%d\n", k, m[k])
		}
	case "json":
		data, err := sparse.Marshal(a)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", data)
	case "board":
		board, err := a.Expand()
		if err != nil {
			return err
		}
		for _, row := range board {
			for _, v := range row {
				fmt.Fprintf(out, "%d\t", v)
			}
			fmt.Fprintln(out)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
