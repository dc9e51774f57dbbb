// Package render draws grids and paths as text.
package render

import (
	"strings"

	"github.com/Faultbox/gridpath/internal/pathfinding"
)

// Cell glyphs.
const (
	GlyphPassable = '.'
	GlyphBlocked  = '#'
	GlyphPath     = '*'
	GlyphStart    = 'S'
	GlyphEnd      = 'E'
	GlyphMarker   = '@'
)

// Options selects what to draw on top of the grid.
type Options struct {
	Start  *pathfinding.Coordinate
	End    *pathfinding.Coordinate
	Marker *pathfinding.Coordinate // Walker position
	Spaced bool                    // Separate cells with a space
}

// Render returns the grid with the path overlaid, one line per row.
// Start and End default to the path's endpoints.
func Render(grid *pathfinding.Grid, path pathfinding.Path, opts Options) string {
	if grid == nil {
		return ""
	}

	rows, cols := grid.Rows(), grid.Cols()
	canvas := make([][]byte, rows)
	for r := range canvas {
		canvas[r] = make([]byte, cols)
		for c := range canvas[r] {
			if grid.Passable(pathfinding.Coordinate{Row: r, Col: c}) {
				canvas[r][c] = GlyphPassable
			} else {
				canvas[r][c] = GlyphBlocked
			}
		}
	}

	put := func(at pathfinding.Coordinate, glyph byte) {
		if grid.InBounds(at) {
			canvas[at.Row][at.Col] = glyph
		}
	}

	for _, at := range path {
		put(at, GlyphPath)
	}

	start, end := opts.Start, opts.End
	if len(path) > 0 {
		if start == nil {
			start = &path[0]
		}
		if end == nil {
			end = &path[len(path)-1]
		}
	}
	if start != nil {
		put(*start, GlyphStart)
	}
	if end != nil {
		put(*end, GlyphEnd)
	}
	if opts.Marker != nil {
		put(*opts.Marker, GlyphMarker)
	}

	var sb strings.Builder
	for _, line := range canvas {
		for c, glyph := range line {
			if opts.Spaced && c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(glyph)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
