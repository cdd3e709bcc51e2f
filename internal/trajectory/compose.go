package trajectory

import (
	"fmt"
	"strings"
)

// Composition selects how a relative path is combined with a reference path.
type Composition uint8

const (
	// CompositionDelta sums per-step displacements from an independent start.
	CompositionDelta Composition = iota
	// CompositionOffset adds the relative cells to the reference cells directly.
	// The relative path then acts as an absolute offset, not a delta sequence.
	CompositionOffset
)

// ParseComposition parses "delta" or "offset".
func ParseComposition(s string) (Composition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "delta":
		return CompositionDelta, nil
	case "offset":
		return CompositionOffset, nil
	default:
		return CompositionDelta, fmt.Errorf("%w: unknown composition %q", ErrInvalidArgument, s)
	}
}

// String returns the configuration name of the composition.
func (c Composition) String() string {
	if c == CompositionOffset {
		return "offset"
	}
	return "delta"
}

// Compose builds a trajectory anchored at start whose step displacement at
// each index is the sum of a's and b's displacements at that index.
//
//	result[0] = start
//	result[i] = result[i-1] + (a[i]-a[i-1]) + (b[i]-b[i-1])
//
// The result has min(a.Len(), b.Len()) cells; trailing cells of the longer
// input are ignored. No cell is ever skipped.
func Compose(start Cell, a, b Trajectory) Trajectory {
	return combine(start, a, b, 1)
}

// Decompose is the inverse of Compose: the step displacement at each index is
// whole's displacement minus part's. Compose(s, part, Decompose(r, whole, part))
// reproduces whole's displacements.
func Decompose(start Cell, whole, part Trajectory) Trajectory {
	return combine(start, whole, part, -1)
}

// Overlay adds b's cells to a's cells index by index. Length is min of both.
func Overlay(a, b Trajectory) Trajectory {
	n := min(a.Len(), b.Len())
	if la, lb := a.lat, b.lat; la != nil && lb != nil && la.set == lb.set {
		pts := make([]point, n)
		for i := range pts {
			pts[i] = la.points[i].add(lb.points[i])
		}
		return onLattice(la.set, la.origin.Add(lb.origin), pts)
	}
	var out Trajectory
	for i := 0; i < n; i++ {
		out.Add(canon(a.cells[i].Add(b.cells[i])))
	}
	return out
}

// Combine applies the selected composition. start is ignored for offset.
func Combine(mode Composition, start Cell, reference, relative Trajectory) Trajectory {
	if mode == CompositionOffset {
		return Overlay(reference, relative)
	}
	return Compose(start, reference, relative)
}

func combine(start Cell, a, b Trajectory, sign float64) Trajectory {
	n := min(a.Len(), b.Len())
	var out Trajectory
	if n == 0 {
		return out
	}
	if la, lb := a.lat, b.lat; la != nil && lb != nil && la.set == lb.set {
		pts := make([]point, n)
		for i := 1; i < n; i++ {
			da := la.points[i].sub(la.points[i-1])
			db := lb.points[i].sub(lb.points[i-1]).scale(int(sign))
			pts[i] = pts[i-1].add(da).add(db)
		}
		return onLattice(la.set, start, pts)
	}
	out.Add(canon(start))
	for i := 1; i < n; i++ {
		da := a.cells[i].Sub(a.cells[i-1])
		db := b.cells[i].Sub(b.cells[i-1])
		step := Cell{Row: da.Row + sign*db.Row, Col: da.Col + sign*db.Col}
		out.Add(canon(out.current.Add(step)))
	}
	return out
}
