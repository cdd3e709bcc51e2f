// Package trajectory is the generation, composition and scoring engine.
// It is pure: no I/O, no global random state, no terminal or storage
// dependencies. Rendering and round flow live in the games and platform layers.
package trajectory

import (
	"fmt"
	"math"
)

// Cell is a point on the movement lattice.
// Coordinates are real-valued because the hexagonal lattice uses fractional offsets.
type Cell struct {
	Row float64
	Col float64
}

// C is a convenience constructor for Cell.
func C(row, col float64) Cell {
	return Cell{Row: row, Col: col}
}

// Add returns the vector sum of two cells.
func (c Cell) Add(other Cell) Cell {
	return Cell{Row: c.Row + other.Row, Col: c.Col + other.Col}
}

// Sub returns the displacement from other to c.
func (c Cell) Sub(other Cell) Cell {
	return Cell{Row: c.Row - other.Row, Col: c.Col - other.Col}
}

// Equal reports exact equality on both coordinates.
func (c Cell) Equal(other Cell) bool {
	return c.Row == other.Row && c.Col == other.Col
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%s,%s)", formatCoord(c.Row), formatCoord(c.Col))
}

// canonical is the resolution engine-produced coordinates are rounded to.
const canonical = 1e9

// canon rounds both coordinates to the canonical resolution so that one
// lattice point reached along different float paths has one representation.
func canon(c Cell) Cell {
	return Cell{Row: snap(c.Row), Col: snap(c.Col)}
}

func snap(v float64) float64 {
	r := math.Round(v*canonical) / canonical
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

func formatCoord(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
