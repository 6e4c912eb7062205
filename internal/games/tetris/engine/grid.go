package engine

import "fmt"

// Matrix is a row-major cell array, indexed as m[row][col].
// It is used both for the playfield grid and for piece rotation states.
// A zero cell is empty; any positive value identifies the occupying kind.
type Matrix [][]int

// NewGrid returns an all-empty grid with the given dimensions.
func NewGrid(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for r := range m {
		m[r] = make([]int, cols)
	}
	return m
}

// Clone returns a deep copy of m. A nil matrix clones to nil.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for r, row := range m {
		out[r] = make([]int, len(row))
		copy(out[r], row)
	}
	return out
}

// Equal reports whether m and o have identical dimensions and cells.
func (m Matrix) Equal(o Matrix) bool {
	if len(m) != len(o) {
		return false
	}
	for r := range m {
		if len(m[r]) != len(o[r]) {
			return false
		}
		for c := range m[r] {
			if m[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the number of columns, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// ClearResult is the outcome of a full-row scan.
type ClearResult struct {
	Removed int    // Number of rows removed
	Grid    Matrix // Grid after removal and shift
	Bonus   int    // Score bonus for this clear
}

// Intersects reports whether shape, anchored with its top-left corner at
// (col, row), overlaps an occupied grid cell or leaves the grid.
// Cells above the grid (negative rows) are treated as empty so pieces may
// spawn partly out of view. Empty shape cells never collide.
func Intersects(grid, shape Matrix, col, row int) bool {
	rows := grid.Rows()
	cols := grid.Cols()

	for sr, line := range shape {
		for sc, v := range line {
			if v == 0 {
				continue
			}
			x := col + sc
			y := row + sr
			if x < 0 || x >= cols || y >= rows {
				return true
			}
			if y < 0 {
				continue
			}
			if grid[y][x] != 0 {
				return true
			}
		}
	}
	return false
}

// Merge returns a copy of grid with every occupied cell of shape written at
// its absolute position. The input grid is not modified.
// Cells above the top row are dropped; cells past the side walls or the
// floor are a caller error and panic.
func Merge(grid, shape Matrix, col, row int) Matrix {
	out := grid.Clone()
	rows := out.Rows()
	cols := out.Cols()

	for sr, line := range shape {
		for sc, v := range line {
			if v == 0 {
				continue
			}
			x := col + sc
			y := row + sr
			if y < 0 {
				continue
			}
			if x < 0 || x >= cols || y >= rows {
				panic(fmt.Sprintf("engine: merge cell (%d,%d) outside %dx%d grid", x, y, rows, cols))
			}
			out[y][x] = v
		}
	}
	return out
}

// ClearBonus returns the score awarded for clearing n rows at once.
func ClearBonus(n int) int {
	return 50 * n * n
}

// ClearFullRows removes every row whose cells are all non-zero.
// Remaining rows keep their relative order and settle at the bottom; the
// vacated rows at the top are zero-filled. With no full rows the result
// carries an unchanged copy of the grid and a zero bonus.
func ClearFullRows(grid Matrix) ClearResult {
	rows := grid.Rows()
	cols := grid.Cols()

	kept := make([][]int, 0, rows)
	removed := 0
	for _, line := range grid {
		if rowFull(line) {
			removed++
			continue
		}
		kept = append(kept, line)
	}

	out := NewGrid(rows, cols)
	// Fill from the bottom up so kept rows settle against the floor
	dst := rows - 1
	for i := len(kept) - 1; i >= 0; i-- {
		copy(out[dst], kept[i])
		dst--
	}

	return ClearResult{
		Removed: removed,
		Grid:    out,
		Bonus:   ClearBonus(removed),
	}
}

// rowFull reports whether every cell in the row is occupied.
func rowFull(line []int) bool {
	if len(line) == 0 {
		return false
	}
	for _, v := range line {
		if v == 0 {
			return false
		}
	}
	return true
}
