// Package pathfinding provides A* shortest-path search on 4-connected grids.
package pathfinding

import (
	"container/heap"
	"fmt"
	"math"
)

// noParent marks a node without a predecessor.
const noParent = -1

// searchNode holds the per-cell state of one search.
type searchNode struct {
	coord  Coordinate
	g      float64 // Cost from start
	h      float64 // Manhattan distance to goal
	f      float64 // g + h
	parent int     // Arena index of predecessor, noParent if none
}

// frontierEntry is one push onto the frontier. A cell may be pushed
// several times as its cost improves; older entries go stale and are
// dropped when popped after the cell is closed.
type frontierEntry struct {
	node int
	f    float64
	h    float64
	seq  uint64
}

// frontier implements a min-priority queue for A*.
// Order: f, then h, then row-major cell index, then push order.
type frontier []frontierEntry

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	if a.node != b.node {
		return a.node < b.node
	}
	return a.seq < b.seq
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x any) {
	*q = append(*q, x.(frontierEntry))
}

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	entry := old[n-1]
	*q = old[:n-1]
	return entry
}

// Path is an ordered start-to-end sequence of cells. Consecutive cells
// are orthogonally adjacent. An empty Path means no route exists.
type Path []Coordinate

// Steps returns the number of moves in the path.
func (p Path) Steps() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Empty reports whether the path is empty.
func (p Path) Empty() bool {
	return len(p) == 0
}

// Result is the outcome of a search.
type Result struct {
	Path     Path
	Expanded int // Number of cells closed
	Found    bool
}

// FindPath returns the shortest path from start to end, or an empty Path
// if end is unreachable. Start and end must be in bounds and passable.
//
// FindPath keeps no state between calls and does not modify grid, so it
// is safe to call concurrently on a shared Grid.
func FindPath(grid *Grid, start, end Coordinate) (Path, error) {
	res, err := Search(grid, start, end)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Search runs A* to completion and reports the path with search statistics.
func Search(grid *Grid, start, end Coordinate) (Result, error) {
	s, err := newSearch(grid, start, end)
	if err != nil {
		return Result{}, err
	}
	for s.step() {
	}
	return s.result(), nil
}

// validateEndpoints rejects endpoints outside the grid or on blocked cells.
func validateEndpoints(grid *Grid, start, end Coordinate) error {
	if grid == nil {
		return ErrNilGrid
	}
	for _, ep := range []struct {
		name  string
		coord Coordinate
	}{{"start", start}, {"end", end}} {
		if !grid.InBounds(ep.coord) {
			return fmt.Errorf("%s %s in %dx%d grid: %w", ep.name, ep.coord, grid.rows, grid.cols, ErrOutOfBounds)
		}
		if !grid.Passable(ep.coord) {
			return fmt.Errorf("%s %s: %w", ep.name, ep.coord, ErrBlockedEndpoint)
		}
	}
	return nil
}

// search is the state of a single A* run.
type search struct {
	grid  *Grid
	start Coordinate
	end   Coordinate

	nodes  []searchNode
	closed []bool
	open   frontier
	seq    uint64

	expanded int
	current  Coordinate
	done     bool
	found    bool
	path     Path
}

func newSearch(grid *Grid, start, end Coordinate) (*search, error) {
	if err := validateEndpoints(grid, start, end); err != nil {
		return nil, err
	}

	cellCount := grid.rows * grid.cols
	s := &search{
		grid:    grid,
		start:   start,
		end:     end,
		nodes:   make([]searchNode, cellCount),
		closed:  make([]bool, cellCount),
		open:    make(frontier, 0, grid.rows+grid.cols),
		current: start,
	}
	for i := range s.nodes {
		s.nodes[i] = searchNode{
			coord:  grid.coordOf(i),
			g:      math.Inf(1),
			parent: noParent,
		}
	}

	startIdx := grid.index(start)
	startNode := &s.nodes[startIdx]
	startNode.g = 0
	startNode.h = float64(start.Manhattan(end))
	startNode.f = startNode.h

	heap.Init(&s.open)
	s.push(startIdx)
	return s, nil
}

func (s *search) push(idx int) {
	n := &s.nodes[idx]
	heap.Push(&s.open, frontierEntry{node: idx, f: n.f, h: n.h, seq: s.seq})
	s.seq++
}

// step closes one cell and relaxes its neighbours.
// It returns false once the search has finished.
func (s *search) step() bool {
	if s.done {
		return false
	}

	for s.open.Len() > 0 {
		entry := heap.Pop(&s.open).(frontierEntry)

		// Stale duplicate of a cell that was already finalized
		if s.closed[entry.node] {
			continue
		}
		s.closed[entry.node] = true
		s.expanded++

		current := &s.nodes[entry.node]
		s.current = current.coord

		if current.coord == s.end {
			s.done = true
			s.found = true
			s.path = s.reconstructPath(entry.node)
			return false
		}

		for _, d := range directions {
			next := Coordinate{current.coord.Row + d.Row, current.coord.Col + d.Col}
			if !s.grid.Passable(next) {
				continue
			}
			nextIdx := s.grid.index(next)
			if s.closed[nextIdx] {
				continue
			}

			tentative := current.g + 1
			neighbor := &s.nodes[nextIdx]
			if tentative < neighbor.g {
				neighbor.parent = entry.node
				neighbor.g = tentative
				neighbor.h = float64(next.Manhattan(s.end))
				neighbor.f = tentative + neighbor.h
				s.push(nextIdx)
			}
		}
		return true
	}

	// Frontier exhausted without reaching the goal
	s.done = true
	s.path = Path{}
	return false
}

func (s *search) result() Result {
	return Result{
		Path:     s.path,
		Expanded: s.expanded,
		Found:    s.found,
	}
}

func (s *search) reconstructPath(idx int) Path {
	var path Path
	for idx != noParent {
		path = append(path, s.nodes[idx].coord)
		idx = s.nodes[idx].parent
	}
	// Reverse path (it's built from goal to start)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
