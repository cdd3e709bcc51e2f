package trajectory

// lattice records the integer offsets behind an engine-built trajectory.
// Composition of two lattice trajectories works on the offsets, so the
// result lands on exactly the cells a Cursor or the generator would produce.
type lattice struct {
	set    DirectionSet
	origin Cell
	points []point
}

func (p point) sub(o point) point {
	return point{Q: p.Q - o.Q, R: p.R - o.R}
}

func (p point) scale(k int) point {
	return point{Q: p.Q * k, R: p.R * k}
}

// onLattice builds the trajectory visiting pts, offset from origin.
func onLattice(set DirectionSet, origin Cell, pts []point) Trajectory {
	origin = canon(origin)
	t := Trajectory{cells: make([]Cell, len(pts))}
	for i, p := range pts {
		t.cells[i] = set.project(origin, p)
	}
	if len(pts) > 0 {
		t.current = t.cells[len(pts)-1]
	}
	t.lat = &lattice{set: set, origin: origin, points: pts}
	return t
}

// Set reports the direction set a trajectory was built on.
// ok is false for trajectories assembled cell by cell.
func (t Trajectory) Set() (set DirectionSet, ok bool) {
	if t.lat == nil {
		return Four, false
	}
	return t.lat.set, true
}

// Cursor is a lattice position that moves one unit step at a time from an
// origin. Its cells compare equal to engine-built cells at the same point.
type Cursor struct {
	set    DirectionSet
	origin Cell
	pos    point
}

// NewCursor places a cursor at origin.
func NewCursor(set DirectionSet, origin Cell) Cursor {
	return Cursor{set: set, origin: canon(origin)}
}

// Move steps the cursor one unit in direction d.
func (c *Cursor) Move(d Direction) error {
	if !c.set.Valid(d) {
		return c.set.invalid(d)
	}
	c.pos = c.pos.add(c.set.step(d))
	return nil
}

// Cell returns the cell under the cursor.
func (c Cursor) Cell() Cell {
	return c.set.project(c.origin, c.pos)
}

// Origin returns the cell the cursor started from.
func (c Cursor) Origin() Cell {
	return c.origin
}

// Set returns the cursor's direction set.
func (c Cursor) Set() DirectionSet {
	return c.set
}

// Reset moves the cursor back to its origin.
func (c *Cursor) Reset() {
	c.pos = point{}
}
