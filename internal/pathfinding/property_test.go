package pathfinding

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/Faultbox/gridpath/pkg/gridgen"
)

// cellGraph builds an undirected unit graph straight from the passability
// matrix, so the reference distances never touch Grid's own neighbour code.
func cellGraph(cells [][]bool) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	cols := len(cells[0])
	id := func(r, c int) int64 { return int64(r*cols + c) }

	for r, row := range cells {
		for c, ok := range row {
			if ok {
				g.AddNode(simple.Node(id(r, c)))
			}
		}
	}
	for r, row := range cells {
		for c, ok := range row {
			if !ok {
				continue
			}
			if c+1 < cols && row[c+1] {
				g.SetEdge(g.NewEdge(simple.Node(id(r, c)), simple.Node(id(r, c+1))))
			}
			if r+1 < len(cells) && cells[r+1][c] {
				g.SetEdge(g.NewEdge(simple.Node(id(r, c)), simple.Node(id(r+1, c))))
			}
		}
	}
	return g
}

// referenceDistance returns the breadth-first distance from start to end,
// or -1 when they lie in different connected components.
func referenceDistance(cells [][]bool, start, end Coordinate) int {
	g := cellGraph(cells)
	cols := len(cells[0])
	startID := int64(start.Row*cols + start.Col)
	endID := int64(end.Row*cols + end.Col)

	component := make(map[int64]int)
	for i, comp := range topo.ConnectedComponents(g) {
		for _, n := range comp {
			component[n.ID()] = i
		}
	}
	if component[startID] != component[endID] {
		return -1
	}

	dist := -1
	var bf traverse.BreadthFirst
	bf.Walk(g, simple.Node(startID), func(n graph.Node, depth int) bool {
		if n.ID() == endID {
			dist = depth
			return true
		}
		return false
	})
	return dist
}

type scenario struct {
	cells      [][]bool
	grid       *Grid
	start, end Coordinate
}

// randomScenarios builds seeded grids with random passable endpoints.
func randomScenarios(t *testing.T, count int) []scenario {
	t.Helper()
	var out []scenario
	for seed := uint64(0); len(out) < count; seed++ {
		rng := gridgen.NewRand(seed)
		rows, cols := 1+rng.IntN(12), 1+rng.IntN(12)
		cells, err := gridgen.Generate(rows, cols, gridgen.DefaultOptions(seed))
		require.NoError(t, err)

		sr, sc, ok := gridgen.RandomPassable(cells, rng)
		if !ok {
			continue
		}
		er, ec, _ := gridgen.RandomPassable(cells, rng)
		out = append(out, scenario{
			cells: cells,
			grid:  MustGrid(cells),
			start: Coordinate{sr, sc},
			end:   Coordinate{er, ec},
		})
	}
	return out
}

func TestFindPath_MatchesBFS(t *testing.T) {
	for i, sc := range randomScenarios(t, 300) {
		name := fmt.Sprintf("%d_%dx%d_%s_%s", i, sc.grid.Rows(), sc.grid.Cols(), sc.start, sc.end)
		t.Run(name, func(t *testing.T) {
			path, err := FindPath(sc.grid, sc.start, sc.end)
			require.NoError(t, err)

			want := referenceDistance(sc.cells, sc.start, sc.end)
			if want < 0 {
				assert.Empty(t, path, "endpoints in different components must give no path")
				return
			}

			require.NotEmpty(t, path)
			assert.Equal(t, want, path.Steps(), "path is not the shortest")
			assert.Equal(t, sc.start, path[0])
			assert.Equal(t, sc.end, path[len(path)-1])
			for j, cell := range path {
				assert.True(t, sc.grid.Passable(cell), "cell %s is blocked", cell)
				if j > 0 {
					assert.True(t, path[j-1].Adjacent(cell), "%s and %s are not adjacent", path[j-1], cell)
				}
			}
		})
	}
}

func TestFindPath_Deterministic(t *testing.T) {
	for _, sc := range randomScenarios(t, 50) {
		first, err := FindPath(sc.grid, sc.start, sc.end)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			again, err := FindPath(sc.grid, sc.start, sc.end)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	}
}

func TestFindPath_ConcurrentSharedGrid(t *testing.T) {
	cells, err := gridgen.Generate(20, 20, gridgen.Options{Seed: 11, BlockedRatio: 0.2})
	require.NoError(t, err)
	cells[0][0], cells[19][19] = true, true
	grid := MustGrid(cells)

	want, err := FindPath(grid, Coordinate{0, 0}, Coordinate{19, 19})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Path, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := FindPath(grid, Coordinate{0, 0}, Coordinate{19, 19})
			if err == nil {
				results[i] = p
			}
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, want, got, "goroutine %d", i)
	}
}

func TestSearch_DiscardsStaleEntries(t *testing.T) {
	grid := mockGrid(4, 4, nil)
	s, err := newSearch(grid, Coordinate{0, 0}, Coordinate{3, 3})
	require.NoError(t, err)

	// Duplicate the start entry; the copies must be skipped once it is closed.
	s.push(0)
	s.push(0)
	for s.step() {
	}

	res := s.result()
	require.True(t, res.Found)
	assert.Equal(t, 6, res.Path.Steps())

	clean, err := Search(grid, Coordinate{0, 0}, Coordinate{3, 3})
	require.NoError(t, err)
	assert.Equal(t, clean.Path, res.Path)
	assert.Equal(t, clean.Expanded, res.Expanded)
}

func TestFrontier_Order(t *testing.T) {
	q := frontier{
		{node: 5, f: 4, h: 2, seq: 0},
		{node: 1, f: 4, h: 2, seq: 1},
		{node: 9, f: 3, h: 3, seq: 2},
		{node: 2, f: 4, h: 1, seq: 3},
		{node: 1, f: 4, h: 2, seq: 4},
	}
	order := []int{2, 3, 1, 4, 0}
	for i := 0; i+1 < len(order); i++ {
		assert.True(t, q.Less(order[i], order[i+1]), "entry %d should precede %d", order[i], order[i+1])
	}
}
