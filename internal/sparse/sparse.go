// Package sparse converts mostly-zero 2D boards to and from compact sparse
// forms.
//
// The canonical form is an Array: the board's dimensions plus one Triple
// per non-zero cell in row-major order. Two other forms are offered for the
// same data:
//   - Table: the classic (n+1) x 3 matrix whose first row is
//     [rows, cols, n]
//   - Map: string keys, "row" and "column" for the dimensions and "i,j"
//     for each non-zero cell
//
// Arrays can be encoded as JSON (Marshal, Unmarshal) and kept in a sqlite
// database (Store).
package sparse

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBoard = errors.New("sparse: empty board")
	ErrRagged     = errors.New("sparse: rows have different lengths")
	ErrOutOfRange = errors.New("sparse: cell out of range")
	ErrBadHeader  = errors.New("sparse: bad header")
	ErrBadKey     = errors.New("sparse: bad map key")
	ErrNotFound   = errors.New("sparse: not found")
)

// Triple is one non-zero cell.
type Triple struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

// MaxCells bounds Rows*Cols for any Array, so expanding one cannot
// overflow or exhaust memory.
const MaxCells = 1 << 24

// Array is a sparse board.
type Array struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Items []Triple `json:"items"`
}

// Compress returns the sparse form of board. board must be non-empty and
// rectangular.
func Compress(board [][]int) (Array, error) {
	if len(board) == 0 || len(board[0]) == 0 {
		return Array{}, ErrEmptyBoard
	}
	a := Array{Rows: len(board), Cols: len(board[0])}
	if a.Rows > MaxCells/a.Cols {
		return Array{}, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrBadHeader, a.Rows, a.Cols, MaxCells)
	}
	for i, row := range board {
		if len(row) != a.Cols {
			return Array{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRagged, i, len(row), a.Cols)
		}
		for j, v := range row {
			if v != 0 {
				a.Items = append(a.Items, Triple{Row: i, Col: j, Value: v})
			}
		}
	}
	return a, nil
}

// Len returns the number of non-zero cells.
func (a Array) Len() int { return len(a.Items) }

// Validate checks the dimensions are positive with at most MaxCells cells,
// and every triple lies inside them. Arrays from Unmarshal, FromTable or a
// Store may come from anywhere, so Expand validates first.
func (a Array) Validate() error {
	if a.Rows <= 0 || a.Cols <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrBadHeader, a.Rows, a.Cols)
	}
	if a.Rows > MaxCells/a.Cols {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrBadHeader, a.Rows, a.Cols, MaxCells)
	}
	for _, t := range a.Items {
		if t.Row < 0 || t.Row >= a.Rows || t.Col < 0 || t.Col >= a.Cols {
			return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, t.Row, t.Col, a.Rows, a.Cols)
		}
	}
	return nil
}

// Expand rebuilds the full board. A cell listed twice keeps the last value.
func (a Array) Expand() ([][]int, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	board := newBoard(a.Rows, a.Cols)
	for _, t := range a.Items {
		board[t.Row][t.Col] = t.Value
	}
	return board, nil
}

// Table returns the (n+1) x 3 tabular form.
func (a Array) Table() [][3]int {
	t := make([][3]int, 0, len(a.Items)+1)
	t = append(t, [3]int{a.Rows, a.Cols, len(a.Items)})
	for _, it := range a.Items {
		t = append(t, [3]int{it.Row, it.Col, it.Value})
	}
	return t
}

// FromTable parses the tabular form produced by Table.
func FromTable(t [][3]int) (Array, error) {
	if len(t) == 0 {
		return Array{}, fmt.Errorf("%w: no header row", ErrBadHeader)
	}
	h := t[0]
	if h[2] != len(t)-1 {
		return Array{}, fmt.Errorf("%w: header says %d cells, table has %d", ErrBadHeader, h[2], len(t)-1)
	}
	a := Array{Rows: h[0], Cols: h[1]}
	for _, r := range t[1:] {
		a.Items = append(a.Items, Triple{Row: r[0], Col: r[1], Value: r[2]})
	}
	return a, a.Validate()
}

func newBoard(rows, cols int) [][]int {
	cells := make([]int, rows*cols)
	board := make([][]int, rows)
	for i := range board {
		board[i] = cells[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return board
}
