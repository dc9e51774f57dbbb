package pathfinding

import "errors"

// Pathfinding errors. An unreachable goal is not an error: FindPath
// returns an empty Path instead.
var (
	ErrNilGrid         = errors.New("nil grid")
	ErrEmptyGrid       = errors.New("grid must have at least one row and one column")
	ErrNonRectangular  = errors.New("grid rows must all have the same length")
	ErrOutOfBounds     = errors.New("coordinate out of bounds")
	ErrBlockedEndpoint = errors.New("endpoint is on a blocked cell")
)
