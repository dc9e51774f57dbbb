// Package gridfile reads and writes passability grids in text, binary
// and YAML scenario form.
package gridfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/gridpath/internal/pathfinding"
)

// Format errors.
var (
	ErrInvalidMagic       = errors.New("invalid grid magic: expected 'GRID'")
	ErrUnsupportedVersion = errors.New("unsupported grid version")
	ErrTruncatedData      = errors.New("truncated grid data")
	ErrInvalidDimensions  = errors.New("invalid grid dimensions")
	ErrInvalidGlyph       = errors.New("invalid grid glyph")
	ErrDuplicateMarker    = errors.New("duplicate start or end marker")
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrUnencodableMarker  = errors.New("endpoint cannot be written as a text marker")
)

// MaxDimension bounds rows and columns accepted by the parsers.
const MaxDimension = 4096

// Map is a parsed grid with optional endpoints.
type Map struct {
	Grid  *pathfinding.Grid
	Start *pathfinding.Coordinate
	End   *pathfinding.Coordinate
}

// Format identifies an on-disk representation.
type Format int

// Supported formats.
const (
	FormatText Format = iota
	FormatBinary
	FormatScenario
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBinary:
		return "binary"
	case FormatScenario:
		return "scenario"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// FormatFor picks a format from a file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".grid":
		return FormatBinary
	case ".yaml", ".yml":
		return FormatScenario
	default:
		return FormatText
	}
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*Map, error) {
	switch format {
	case FormatBinary:
		return ParseBinary(data)
	case FormatScenario:
		return ParseScenario(data)
	default:
		return ParseText(data)
	}
}

// ParseFile reads a grid from disk, choosing the format by extension.
func ParseFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grid file: %w", err)
	}
	m, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// WriteFile encodes m in the format chosen by the extension and writes it.
func WriteFile(path string, m *Map) error {
	var (
		data []byte
		err  error
	)
	switch FormatFor(path) {
	case FormatBinary:
		data, err = EncodeBinary(m.Grid)
	case FormatScenario:
		data, err = ScenarioFromMap(m).Marshal()
	default:
		var text string
		text, err = EncodeText(m)
		data = []byte(text)
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func checkDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 || rows > MaxDimension || cols > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return nil
}
