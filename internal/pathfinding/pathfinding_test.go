package pathfinding

import (
	"errors"
	"testing"
)

// mockGrid creates an all-passable grid with the given cells blocked.
func mockGrid(rows, cols int, blocked []Coordinate) *Grid {
	cells := make([][]bool, rows)
	for r := range cells {
		cells[r] = make([]bool, cols)
		for c := range cells[r] {
			cells[r][c] = true
		}
	}
	for _, b := range blocked {
		if b.Row >= 0 && b.Row < rows && b.Col >= 0 && b.Col < cols {
			cells[b.Row][b.Col] = false
		}
	}
	return MustGrid(cells)
}

func TestFindPath_Simple(t *testing.T) {
	// 5x5 grid, no obstacles
	grid := mockGrid(5, 5, nil)

	path, err := FindPath(grid, Coordinate{0, 0}, Coordinate{4, 4})
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if path.Empty() {
		t.Fatal("expected path, got empty")
	}

	if path[0] != (Coordinate{0, 0}) {
		t.Errorf("path should start at (0,0), got %s", path[0])
	}
	if last := path[len(path)-1]; last != (Coordinate{4, 4}) {
		t.Errorf("path should end at (4,4), got %s", last)
	}
	if path.Steps() != 8 {
		t.Errorf("expected 8 steps, got %d", path.Steps())
	}
}

func TestFindPath_ThreeByThreeTieBreak(t *testing.T) {
	grid := mockGrid(3, 3, nil)

	res, err := Search(grid, Coordinate{0, 0}, Coordinate{2, 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	// Lower h wins ties on f, then lower row-major index.
	want := Path{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}}
	if len(res.Path) != len(want) {
		t.Fatalf("expected %v, got %v", want, res.Path)
	}
	for i := range want {
		if res.Path[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, res.Path)
		}
	}
	if res.Expanded != 5 {
		t.Errorf("expected 5 expanded cells, got %d", res.Expanded)
	}
	if !res.Found {
		t.Error("expected Found to be true")
	}
}

func TestFindPath_WithObstacle(t *testing.T) {
	// 5x5 grid with a wall in column 2 open only at the bottom
	blocked := []Coordinate{{0, 2}, {1, 2}, {2, 2}, {3, 2}}
	grid := mockGrid(5, 5, blocked)

	path, err := FindPath(grid, Coordinate{2, 0}, Coordinate{2, 4})
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if path.Empty() {
		t.Fatal("expected path around obstacle, got empty")
	}

	for _, p := range path {
		if p.Col == 2 && p.Row < 4 {
			t.Errorf("path went through blocked cell at %s", p)
		}
	}
	// Down 2, across 4, up 2
	if path.Steps() != 8 {
		t.Errorf("expected 8 steps, got %d", path.Steps())
	}
}

func TestFindPath_NoPath(t *testing.T) {
	// Middle row fully blocked
	grid := mockGrid(3, 3, []Coordinate{{1, 0}, {1, 1}, {1, 2}})

	path, err := FindPath(grid, Coordinate{0, 0}, Coordinate{2, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !path.Empty() {
		t.Errorf("expected no path, got %v", path)
	}
}

func TestFindPath_SameStartGoal(t *testing.T) {
	grid := mockGrid(5, 5, nil)

	path, err := FindPath(grid, Coordinate{2, 2}, Coordinate{2, 2})
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if len(path) != 1 {
		t.Fatalf("expected path length 1, got %d", len(path))
	}
	if path[0] != (Coordinate{2, 2}) {
		t.Errorf("expected [(2,2)], got %v", path)
	}
	if path.Steps() != 0 {
		t.Errorf("expected 0 steps, got %d", path.Steps())
	}
}

func TestFindPath_OutOfBounds(t *testing.T) {
	grid := mockGrid(5, 5, nil)

	tests := []struct {
		name       string
		start, end Coordinate
	}{
		{"start negative", Coordinate{-1, 0}, Coordinate{4, 4}},
		{"start past edge", Coordinate{0, 5}, Coordinate{4, 4}},
		{"end past edge", Coordinate{0, 0}, Coordinate{10, 10}},
		{"end negative col", Coordinate{0, 0}, Coordinate{2, -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := FindPath(grid, tt.start, tt.end)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("expected ErrOutOfBounds, got %v", err)
			}
			if path != nil {
				t.Errorf("expected nil path on error, got %v", path)
			}
		})
	}
}

func TestFindPath_BlockedEndpoint(t *testing.T) {
	grid := mockGrid(5, 5, []Coordinate{{0, 0}, {4, 4}})

	if _, err := FindPath(grid, Coordinate{0, 0}, Coordinate{2, 2}); !errors.Is(err, ErrBlockedEndpoint) {
		t.Errorf("blocked start: expected ErrBlockedEndpoint, got %v", err)
	}
	if _, err := FindPath(grid, Coordinate{2, 2}, Coordinate{4, 4}); !errors.Is(err, ErrBlockedEndpoint) {
		t.Errorf("blocked end: expected ErrBlockedEndpoint, got %v", err)
	}
}

func TestFindPath_NilGrid(t *testing.T) {
	if _, err := FindPath(nil, Coordinate{}, Coordinate{}); !errors.Is(err, ErrNilGrid) {
		t.Errorf("expected ErrNilGrid, got %v", err)
	}
}

func TestFindPath_TwoRoutesAroundWall(t *testing.T) {
	// Both routes around the wall cost 6.
	//   . . . . .
	//   . # # # .
	//   . . . . .
	grid := mockGrid(3, 5, []Coordinate{{1, 1}, {1, 2}, {1, 3}})

	path, err := FindPath(grid, Coordinate{2, 0}, Coordinate{0, 4})
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if path.Steps() != 6 {
		t.Errorf("expected 6 steps, got %d: %v", path.Steps(), path)
	}
}

func TestFindPath_DoesNotMutateGrid(t *testing.T) {
	cells := [][]bool{
		{true, true, true},
		{false, true, false},
		{true, true, true},
	}
	grid := MustGrid(cells)
	before := grid.String()

	if _, err := FindPath(grid, Coordinate{0, 0}, Coordinate{2, 2}); err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if grid.String() != before {
		t.Error("grid changed during search")
	}
}
