package pathfinding

import (
	"fmt"
	"strings"
)

// Coordinate addresses a grid cell by row and column.
type Coordinate struct {
	Row, Col int
}

// String returns the coordinate as "(row,col)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Manhattan returns the 4-connected distance between c and other.
func (c Coordinate) Manhattan(other Coordinate) int {
	return abs(c.Row-other.Row) + abs(c.Col-other.Col)
}

// Adjacent reports whether other is exactly one orthogonal step away.
func (c Coordinate) Adjacent(other Coordinate) bool {
	return c.Manhattan(other) == 1
}

// directions lists orthogonal moves in expansion order: up, down, left, right.
var directions = [4]Coordinate{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// Grid is an immutable passability matrix. A true cell is passable,
// a false cell is blocked.
type Grid struct {
	rows  int
	cols  int
	cells []bool // row-major
}

// NewGrid builds a Grid from a row-major boolean matrix.
// The input is copied; later changes to cells do not affect the Grid.
func NewGrid(cells [][]bool) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	rows, cols := len(cells), len(cells[0])
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]bool, 0, rows*cols),
	}
	for r, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, r, len(row), cols)
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// MustGrid is like NewGrid but panics on error. Intended for fixtures.
func MustGrid(cells [][]bool) *Grid {
	g, err := NewGrid(cells)
	if err != nil {
		panic(err)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Passable reports whether c is inside the grid and not blocked.
func (g *Grid) Passable(c Coordinate) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.cells[g.index(c)]
}

// PassableCount returns the number of passable cells.
func (g *Grid) PassableCount() int {
	n := 0
	for _, ok := range g.cells {
		if ok {
			n++
		}
	}
	return n
}

// Neighbors returns the passable orthogonal neighbours of c
// in the order up, down, left, right.
func (g *Grid) Neighbors(c Coordinate) []Coordinate {
	out := make([]Coordinate, 0, len(directions))
	for _, d := range directions {
		next := Coordinate{c.Row + d.Row, c.Col + d.Col}
		if g.Passable(next) {
			out = append(out, next)
		}
	}
	return out
}

// Cells returns a copy of the grid as a row-major matrix.
func (g *Grid) Cells() [][]bool {
	out := make([][]bool, g.rows)
	for r := range out {
		out[r] = append([]bool(nil), g.cells[r*g.cols:(r+1)*g.cols]...)
	}
	return out
}

// String renders the grid with '.' for passable and '#' for blocked cells.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r*g.cols+c] {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Grid) index(c Coordinate) int {
	return c.Row*g.cols + c.Col
}

func (g *Grid) coordOf(i int) Coordinate {
	return Coordinate{Row: i / g.cols, Col: i % g.cols}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
