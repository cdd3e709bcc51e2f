package trajectory

import "fmt"

// Trajectory is an ordered, append-only sequence of cells.
// Insertion order is temporal order. The zero value is an empty trajectory.
// Copies share storage; use Clone before appending to both.
type Trajectory struct {
	cells   []Cell
	current Cell
	lat     *lattice // nil unless built by the engine
}

// New creates a trajectory holding the given cells in order.
func New(cells ...Cell) Trajectory {
	var t Trajectory
	for _, c := range cells {
		t.Add(c)
	}
	return t
}

// Add appends a cell and makes it the current cell.
func (t *Trajectory) Add(c Cell) {
	t.cells = append(t.cells, c)
	t.current = c
	t.lat = nil
}

// Cell returns the cell at index i.
func (t Trajectory) Cell(i int) (Cell, error) {
	if i < 0 || i >= len(t.cells) {
		return Cell{}, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(t.cells))
	}
	return t.cells[i], nil
}

// Current returns the most recently appended cell, or (0,0) when empty.
func (t Trajectory) Current() Cell {
	return t.current
}

// Len returns the number of cells.
func (t Trajectory) Len() int {
	return len(t.cells)
}

// Cells returns a copy of the cell sequence.
func (t Trajectory) Cells() []Cell {
	out := make([]Cell, len(t.cells))
	copy(out, t.cells)
	return out
}

// Clear empties the trajectory and resets the current cell to (0,0).
func (t *Trajectory) Clear() {
	t.cells = nil
	t.current = Cell{}
	t.lat = nil
}

// Clone returns an independent copy.
func (t Trajectory) Clone() Trajectory {
	out := Trajectory{cells: t.Cells(), current: t.current}
	if t.lat != nil {
		pts := make([]point, len(t.lat.points))
		copy(pts, t.lat.points)
		out.lat = &lattice{set: t.lat.set, origin: t.lat.origin, points: pts}
	}
	return out
}

// Similarity scores t as a prediction of actual. See Similarity.
func (t Trajectory) Similarity(actual Trajectory) float64 {
	return Similarity(t, actual)
}

// Contains reports whether c appears anywhere in the trajectory.
func (t Trajectory) Contains(c Cell) bool {
	for _, x := range t.cells {
		if x.Equal(c) {
			return true
		}
	}
	return false
}

// Deltas returns the step displacements; Deltas()[i] = cell[i+1] - cell[i].
func (t Trajectory) Deltas() []Cell {
	if len(t.cells) < 2 {
		return nil
	}
	out := make([]Cell, len(t.cells)-1)
	for i := 1; i < len(t.cells); i++ {
		out[i-1] = canon(t.cells[i].Sub(t.cells[i-1]))
	}
	return out
}

// String returns a compact representation of the cells.
func (t Trajectory) String() string {
	return fmt.Sprint(t.cells)
}
