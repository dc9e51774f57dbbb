package gridfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gridpath/internal/pathfinding"
)

// Scenario is the YAML form of a grid with endpoints:
//
//	grid:
//	  - "..#"
//	  - "#.."
//	start: [0, 0]
//	end: [1, 2]
//
// Explicit start/end override S/E markers in the grid rows.
type Scenario struct {
	Name  string   `yaml:"name,omitempty"`
	Grid  []string `yaml:"grid"`
	Start []int    `yaml:"start,omitempty"`
	End   []int    `yaml:"end,omitempty"`
}

// ParseScenario parses a YAML scenario.
func ParseScenario(data []byte) (*Map, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s.Map()
}

// LoadScenario reads a YAML scenario from disk.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return &s, nil
}

// ScenarioFromMap converts m into its YAML form.
func ScenarioFromMap(m *Map) *Scenario {
	s := &Scenario{}
	if m == nil || m.Grid == nil {
		return s
	}
	// Endpoints go in start/end, not as markers
	s.Grid = textRows(&Map{Grid: m.Grid})
	if m.Start != nil {
		s.Start = []int{m.Start.Row, m.Start.Col}
	}
	if m.End != nil {
		s.End = []int{m.End.Row, m.End.Col}
	}
	return s
}

// Map builds the grid and endpoints described by the scenario.
func (s *Scenario) Map() (*Map, error) {
	m, err := ParseText([]byte(strings.Join(s.Grid, "\n")))
	if err != nil {
		return nil, err
	}

	if s.Start != nil {
		if m.Start, err = toCoordinate("start", s.Start); err != nil {
			return nil, err
		}
	}
	if s.End != nil {
		if m.End, err = toCoordinate("end", s.End); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Marshal encodes the scenario as YAML.
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Save writes the scenario to path, creating parent directories.
func (s *Scenario) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := s.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func toCoordinate(name string, v []int) (*pathfinding.Coordinate, error) {
	if len(v) != 2 {
		return nil, fmt.Errorf("%w: %s needs [row, col], got %v", ErrInvalidCoordinate, name, v)
	}
	return &pathfinding.Coordinate{Row: v[0], Col: v[1]}, nil
}
