package trajectory

import (
	"fmt"
	"math"
	"strings"
)

// DirectionSet selects the lattice a walk moves on.
type DirectionSet uint8

const (
	// Four is the orthogonal lattice: right, up, left, down.
	Four DirectionSet = iota
	// Six is the hexagonal lattice with six equidistant neighbours.
	Six
)

// Direction is a direction id within a DirectionSet.
// Ids are ordered around the cycle so opposites are Len()/2 apart.
type Direction uint8

// Four-way directions.
const (
	Right Direction = iota
	Up
	Left
	Down
)

// Six-way directions.
const (
	East Direction = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast
)

// hexHalf is the column offset of a diagonal hex step (sqrt(3)/2).
var hexHalf = math.Sqrt(3) / 2

// point is an integer lattice coordinate. For Four it is (col, row);
// for Six it is axial (q, r).
type point struct {
	Q, R int
}

func (p point) add(o point) point {
	return point{Q: p.Q + o.Q, R: p.R + o.R}
}

var fourSteps = []point{
	Right: {Q: 1, R: 0},
	Up:    {Q: 0, R: -1},
	Left:  {Q: -1, R: 0},
	Down:  {Q: 0, R: 1},
}

var sixSteps = []point{
	East:      {Q: 1, R: 0},
	NorthEast: {Q: 1, R: -1},
	NorthWest: {Q: 0, R: -1},
	West:      {Q: -1, R: 0},
	SouthWest: {Q: -1, R: 1},
	SouthEast: {Q: 0, R: 1},
}

var fourNames = []string{"right", "up", "left", "down"}

var sixNames = []string{"e", "ne", "nw", "w", "sw", "se"}

// ParseDirectionSet parses "four" or "six".
func ParseDirectionSet(s string) (DirectionSet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "four", "4":
		return Four, nil
	case "six", "6", "hex":
		return Six, nil
	default:
		return Four, fmt.Errorf("%w: unknown direction set %q", ErrInvalidArgument, s)
	}
}

// String returns the configuration name of the set.
func (s DirectionSet) String() string {
	switch s {
	case Four:
		return "four"
	case Six:
		return "six"
	default:
		return "unknown"
	}
}

// Len returns the number of directions in the set.
func (s DirectionSet) Len() int {
	return len(s.steps())
}

// Valid reports whether d is a direction id of this set.
func (s DirectionSet) Valid(d Direction) bool {
	return int(d) < s.Len()
}

// Opposite returns the direction pointing back along d.
func (s DirectionSet) Opposite(d Direction) (Direction, error) {
	if !s.Valid(d) {
		return 0, s.invalid(d)
	}
	n := s.Len()
	return Direction((int(d) + n/2) % n), nil
}

// Delta returns the unit displacement of d.
func (s DirectionSet) Delta(d Direction) (Cell, error) {
	if !s.Valid(d) {
		return Cell{}, s.invalid(d)
	}
	return s.project(Cell{}, s.steps()[d]), nil
}

// Name returns the short name of d within this set.
func (s DirectionSet) Name(d Direction) string {
	names := fourNames
	if s == Six {
		names = sixNames
	}
	if int(d) >= len(names) {
		return "?"
	}
	return names[d]
}

// ParseDirection parses a direction name ("right", "ne", ...) in this set.
func (s DirectionSet) ParseDirection(name string) (Direction, error) {
	names := fourNames
	if s == Six {
		names = sixNames
	}
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s direction %q", ErrInvalidArgument, s, name)
}

// Directions returns every direction id of the set in cycle order.
func (s DirectionSet) Directions() []Direction {
	out := make([]Direction, s.Len())
	for i := range out {
		out[i] = Direction(i)
	}
	return out
}

func (s DirectionSet) steps() []point {
	if s == Six {
		return sixSteps
	}
	return fourSteps
}

func (s DirectionSet) step(d Direction) point {
	return s.steps()[d]
}

// project maps a lattice offset from origin into cell coordinates.
func (s DirectionSet) project(origin Cell, p point) Cell {
	var off Cell
	if s == Six {
		off = Cell{Row: 1.5 * float64(p.R), Col: hexHalf * float64(2*p.Q+p.R)}
	} else {
		off = Cell{Row: float64(p.R), Col: float64(p.Q)}
	}
	return canon(origin.Add(off))
}

func (s DirectionSet) invalid(d Direction) error {
	return fmt.Errorf("%w: direction %d not in %s set", ErrInvalidArgument, d, s)
}
