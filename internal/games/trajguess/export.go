package trajguess

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/trajguess/internal/trajectory"
)

// RoundExport is the printable form of a round, used by the generate command.
type RoundExport struct {
	ID            string       `yaml:"id"`
	Difficulty    string       `yaml:"difficulty"`
	Lattice       string       `yaml:"lattice"`
	Steps         int          `yaml:"steps"`
	Relaxed       int          `yaml:"relaxed,omitempty"`
	ReferenceDirs []string     `yaml:"reference_dirs,flow"`
	RelativeDirs  []string     `yaml:"relative_dirs,flow"`
	Reference     [][2]float64 `yaml:"reference,flow"`
	Relative      [][2]float64 `yaml:"relative,flow"`
	Actual        [][2]float64 `yaml:"actual,flow"`
}

// Export returns the round with cells as [row, col] pairs and directions by
// name.
func (r *Round) Export() RoundExport {
	return RoundExport{
		ID:            r.ID,
		Difficulty:    r.Difficulty.String(),
		Lattice:       r.Set.String(),
		Steps:         r.Steps,
		Relaxed:       r.Relaxed,
		ReferenceDirs: dirNames(r.Set, r.ReferenceDirs),
		RelativeDirs:  dirNames(r.Set, r.RelativeDirs),
		Reference:     pairs(r.Reference),
		Relative:      pairs(r.Relative),
		Actual:        pairs(r.Actual),
	}
}

// Text renders the export as aligned plain text.
func (e RoundExport) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "round %s (%s, %s lattice, %d steps)\n", e.ID, e.Difficulty, e.Lattice, e.Steps)
	if e.Relaxed > 0 {
		fmt.Fprintf(&b, "relaxed steps: %d\n", e.Relaxed)
	}
	fmt.Fprintf(&b, "reference dirs: %s\n", strings.Join(e.ReferenceDirs, " "))
	fmt.Fprintf(&b, "relative dirs:  %s\n", strings.Join(e.RelativeDirs, " "))
	fmt.Fprintf(&b, "\n%4s  %-18s  %-18s  %-18s\n", "i", "reference", "relative", "actual")
	for i := range e.Actual {
		fmt.Fprintf(&b, "%4d  %-18s  %-18s  %-18s\n", i, pair(e.Reference, i), pair(e.Relative, i), pair(e.Actual, i))
	}
	return b.String()
}

func pair(ps [][2]float64, i int) string {
	if i >= len(ps) {
		return "-"
	}
	return fmt.Sprintf("(%g, %g)", round4(ps[i][0]), round4(ps[i][1]))
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func pairs(t trajectory.Trajectory) [][2]float64 {
	cells := t.Cells()
	out := make([][2]float64, len(cells))
	for i, c := range cells {
		out[i] = [2]float64{c.Row, c.Col}
	}
	return out
}

func dirNames(set trajectory.DirectionSet, dirs []trajectory.Direction) []string {
	out := make([]string, len(dirs))
	for i, d := range dirs {
		out[i] = set.Name(d)
	}
	return out
}
