package pathfinding

// StepSnapshot describes the search state after one expansion.
type StepSnapshot struct {
	Current   Coordinate // Cell closed by this step
	Open      int        // Frontier entries, stale ones included
	Closed    int
	StepIndex int
	Done      bool
	Found     bool
	Path      Path // Set once the goal is reached
}

// Stepper runs A* one expansion at a time, for visualisers and debugging.
// A Stepper is not safe for concurrent use.
type Stepper struct {
	s     *search
	steps int
}

// NewStepper prepares an incremental search from start to end.
func NewStepper(grid *Grid, start, end Coordinate) (*Stepper, error) {
	s, err := newSearch(grid, start, end)
	if err != nil {
		return nil, err
	}
	return &Stepper{s: s}, nil
}

// Step advances the search by one expansion and returns a snapshot.
// Calling Step after the search finished returns the final snapshot.
func (st *Stepper) Step() StepSnapshot {
	if !st.s.done {
		before := st.s.expanded
		st.s.step()
		if st.s.expanded > before {
			st.steps++
		}
	}
	return st.snapshot()
}

// Done reports whether the search has finished.
func (st *Stepper) Done() bool {
	return st.s.done
}

// Result returns the search outcome. It is only meaningful once Done is true.
func (st *Stepper) Result() Result {
	return st.s.result()
}

func (st *Stepper) snapshot() StepSnapshot {
	return StepSnapshot{
		Current:   st.s.current,
		Open:      st.s.open.Len(),
		Closed:    st.s.expanded,
		StepIndex: st.steps,
		Done:      st.s.done,
		Found:     st.s.found,
		Path:      st.s.path,
	}
}
