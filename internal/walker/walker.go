// Package walker moves a marker along a computed path one cell per tick.
package walker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/gridpath/internal/pathfinding"
)

// ErrInvalidInterval is returned by Run for a non-positive tick interval.
var ErrInvalidInterval = errors.New("walker interval must be positive")

// Walker tracks a marker's progress along a path.
// A Walker is not safe for concurrent use.
type Walker struct {
	path      pathfinding.Path
	pathIndex int
}

// New creates a walker positioned at the start of path.
func New(path pathfinding.Path) *Walker {
	return &Walker{path: path}
}

// Position returns the marker's cell. ok is false for an empty path.
func (w *Walker) Position() (at pathfinding.Coordinate, ok bool) {
	if len(w.path) == 0 {
		return pathfinding.Coordinate{}, false
	}
	return w.path[w.pathIndex], true
}

// Advance moves the marker to the next cell.
// Returns false if the marker was already at the end.
func (w *Walker) Advance() bool {
	if w.Done() {
		return false
	}
	w.pathIndex++
	return true
}

// Done reports whether the marker has reached the last cell.
func (w *Walker) Done() bool {
	return w.pathIndex >= len(w.path)-1
}

// Index returns the marker's index in the path.
func (w *Walker) Index() int {
	return w.pathIndex
}

// Steps returns the total number of moves along the path.
func (w *Walker) Steps() int {
	return w.path.Steps()
}

// Path returns the path being walked.
func (w *Walker) Path() pathfinding.Path {
	return w.path
}

// Reset moves the marker back to the start.
func (w *Walker) Reset() {
	w.pathIndex = 0
}

// Run calls onStep for the current cell, then advances once per interval
// and calls onStep for each new cell until the end is reached or ctx is done.
func (w *Walker) Run(ctx context.Context, interval time.Duration, onStep func(index int, at pathfinding.Coordinate)) error {
	if interval <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidInterval, interval)
	}
	at, ok := w.Position()
	if !ok {
		return nil
	}
	if onStep != nil {
		onStep(w.pathIndex, at)
	}
	if w.Done() {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Advance()
			if onStep != nil {
				onStep(w.pathIndex, w.path[w.pathIndex])
			}
			if w.Done() {
				return nil
			}
		}
	}
}
