// Package gridgen generates random city-block grids for demos and tests.
package gridgen

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// DefaultBlockedRatio is the share of cells turned into buildings.
const DefaultBlockedRatio = 0.3

// Generation errors.
var (
	ErrInvalidSize  = errors.New("grid dimensions must be positive")
	ErrInvalidRatio = errors.New("blocked ratio must be within [0, 1]")
)

// Options controls grid generation.
type Options struct {
	Seed         uint64
	BlockedRatio float64
}

// DefaultOptions returns options with the given seed and the default ratio.
func DefaultOptions(seed uint64) Options {
	return Options{
		Seed:         seed,
		BlockedRatio: DefaultBlockedRatio,
	}
}

// Validate checks that the ratio is usable.
func (o Options) Validate() error {
	if o.BlockedRatio < 0 || o.BlockedRatio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidRatio, o.BlockedRatio)
	}
	return nil
}

// NewRand returns the deterministic source used for a seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate returns a rows x cols passability matrix where each cell is
// blocked with probability opts.BlockedRatio. The same seed always
// yields the same grid.
func Generate(rows, cols int, opts Options) ([][]bool, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rng := NewRand(opts.Seed)
	cells := make([][]bool, rows)
	for r := range cells {
		cells[r] = make([]bool, cols)
		for c := range cells[r] {
			cells[r][c] = rng.Float64() >= opts.BlockedRatio
		}
	}
	return cells, nil
}

// RandomPassable picks a uniformly random passable cell.
// ok is false when the grid has no passable cells.
func RandomPassable(cells [][]bool, rng *rand.Rand) (row, col int, ok bool) {
	candidates := passableCells(cells)
	if len(candidates) == 0 {
		return 0, 0, false
	}
	pick := candidates[rng.IntN(len(candidates))]
	return pick[0], pick[1], true
}

// RandomEndpoints picks two distinct passable cells as [row, col] pairs.
// ok is false when the grid has fewer than two passable cells.
func RandomEndpoints(cells [][]bool, rng *rand.Rand) (start, end [2]int, ok bool) {
	candidates := passableCells(cells)
	if len(candidates) < 2 {
		return start, end, false
	}
	i := rng.IntN(len(candidates))
	j := rng.IntN(len(candidates) - 1)
	if j >= i {
		j++
	}
	return candidates[i], candidates[j], true
}

// passableCells lists passable cells in row-major order.
func passableCells(cells [][]bool) [][2]int {
	var out [][2]int
	for r, line := range cells {
		for c, passable := range line {
			if passable {
				out = append(out, [2]int{r, c})
			}
		}
	}
	return out
}
