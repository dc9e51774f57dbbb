package gridfile

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/Faultbox/gridpath/internal/pathfinding"
)

// Text glyphs. S and E mark passable endpoint cells.
const (
	glyphPassable = '.'
	glyphBlocked  = '#'
	glyphStart    = 'S'
	glyphEnd      = 'E'
	commentPrefix = ";"
)

// ParseText parses a text grid: one row per line, '.' passable,
// '#' blocked, 'S'/'E' passable endpoints. Blank lines and lines
// starting with ';' are ignored.
func ParseText(data []byte) (*Map, error) {
	m := &Map{}
	var cells [][]bool

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		row := make([]bool, len(line))
		r := len(cells)
		for c := 0; c < len(line); c++ {
			switch line[c] {
			case glyphPassable:
				row[c] = true
			case glyphBlocked:
				row[c] = false
			case glyphStart, glyphEnd:
				row[c] = true
				marker := &m.Start
				if line[c] == glyphEnd {
					marker = &m.End
				}
				if *marker != nil {
					return nil, fmt.Errorf("%w: %q on line %d", ErrDuplicateMarker, line[c], lineNo)
				}
				*marker = &pathfinding.Coordinate{Row: r, Col: c}
			default:
				return nil, fmt.Errorf("%w: %q on line %d", ErrInvalidGlyph, line[c], lineNo)
			}
		}
		cells = append(cells, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	cols := 0
	if len(cells) > 0 {
		cols = len(cells[0])
	}
	if err := checkDimensions(len(cells), cols); err != nil {
		return nil, err
	}

	grid, err := pathfinding.NewGrid(cells)
	if err != nil {
		return nil, err
	}
	m.Grid = grid
	return m, nil
}

// EncodeText renders m in the text format, including endpoint markers.
// Endpoints that S/E glyphs cannot carry are rejected with
// ErrUnencodableMarker; the scenario format stores those.
func EncodeText(m *Map) (string, error) {
	if m == nil || m.Grid == nil {
		return "", nil
	}
	if err := checkTextMarkers(m); err != nil {
		return "", err
	}
	lines := textRows(m)
	return strings.Join(lines, "\n") + "\n", nil
}

// checkTextMarkers rejects endpoints that would not survive ParseText:
// a marker always reads back as a passable cell and each cell holds one glyph.
func checkTextMarkers(m *Map) error {
	for _, mk := range []struct {
		name string
		at   *pathfinding.Coordinate
	}{{"start", m.Start}, {"end", m.End}} {
		if mk.at == nil {
			continue
		}
		if !m.Grid.InBounds(*mk.at) {
			return fmt.Errorf("%w: %s %s is outside the grid", ErrUnencodableMarker, mk.name, mk.at)
		}
		if !m.Grid.Passable(*mk.at) {
			return fmt.Errorf("%w: %s %s is blocked", ErrUnencodableMarker, mk.name, mk.at)
		}
	}
	if m.Start != nil && m.End != nil && *m.Start == *m.End {
		return fmt.Errorf("%w: start and end share %s", ErrUnencodableMarker, m.Start)
	}
	return nil
}

// textRows returns the text rows of m without trailing newlines.
func textRows(m *Map) []string {
	g := m.Grid
	lines := make([]string, g.Rows())
	for r := range lines {
		row := make([]byte, g.Cols())
		for c := range row {
			at := pathfinding.Coordinate{Row: r, Col: c}
			switch {
			case m.Start != nil && *m.Start == at:
				row[c] = glyphStart
			case m.End != nil && *m.End == at:
				row[c] = glyphEnd
			case g.Passable(at):
				row[c] = glyphPassable
			default:
				row[c] = glyphBlocked
			}
		}
		lines[r] = string(row)
	}
	return lines
}
