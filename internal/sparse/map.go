package sparse

import (
	"fmt"
	"strconv"
	"strings"
)

// Keys holding the board dimensions in the map form.
const (
	RowsKey = "row"
	ColsKey = "column"
)

// ToMap returns the map form of board.
func ToMap(board [][]int) (map[string]int, error) {
	a, err := Compress(board)
	if err != nil {
		return nil, err
	}
	return a.Map(), nil
}

// Map returns the map form of a.
func (a Array) Map() map[string]int {
	m := make(map[string]int, len(a.Items)+2)
	m[RowsKey] = a.Rows
	m[ColsKey] = a.Cols
	for _, t := range a.Items {
		m[cellKey(t.Row, t.Col)] = t.Value
	}
	return m
}

// FromMap rebuilds the board from its map form.
func FromMap(m map[string]int) ([][]int, error) {
	a, err := ArrayFromMap(m)
	if err != nil {
		return nil, err
	}
	return a.Expand()
}

// ArrayFromMap parses the map form. Items come back in row-major order.
func ArrayFromMap(m map[string]int) (Array, error) {
	if len(m) == 0 {
		return Array{}, ErrEmptyBoard
	}
	rows, ok := m[RowsKey]
	if !ok {
		return Array{}, fmt.Errorf("%w: missing %q", ErrBadKey, RowsKey)
	}
	cols, ok := m[ColsKey]
	if !ok {
		return Array{}, fmt.Errorf("%w: missing %q", ErrBadKey, ColsKey)
	}

	board := Array{Rows: rows, Cols: cols}
	if err := board.Validate(); err != nil {
		return Array{}, err
	}
	// Walk the board rather than the map so the order is deterministic.
	cells := make(map[[2]int]int, len(m)-2)
	for k, v := range m {
		if k == RowsKey || k == ColsKey {
			continue
		}
		i, j, err := parseKey(k)
		if err != nil {
			return Array{}, err
		}
		if i >= rows || j >= cols {
			return Array{}, fmt.Errorf("%w: %q in %dx%d", ErrOutOfRange, k, rows, cols)
		}
		cells[[2]int{i, j}] = v
	}
	for i := 0; i < rows && len(board.Items) < len(cells); i++ {
		for j := 0; j < cols; j++ {
			if v, ok := cells[[2]int{i, j}]; ok && v != 0 {
				board.Items = append(board.Items, Triple{Row: i, Col: j, Value: v})
			}
		}
	}
	return board, nil
}

func cellKey(i, j int) string {
	return strconv.Itoa(i) + "," + strconv.Itoa(j)
}

func parseKey(k string) (int, int, error) {
	a, b, ok := strings.Cut(k, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadKey, k)
	}
	i, err := strconv.Atoi(a)
	if err != nil || i < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadKey, k)
	}
	j, err := strconv.Atoi(b)
	if err != nil || j < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadKey, k)
	}
	return i, j, nil
}
