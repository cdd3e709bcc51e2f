package trajectory

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Source is the random stream a Generator draws from.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// DeadlockPolicy decides what happens when no direction satisfies every
// walk constraint.
type DeadlockPolicy uint8

const (
	// DeadlockRelax drops the revisit constraint, then the window constraint,
	// for the blocked step and records the step in Walk.Relaxed.
	DeadlockRelax DeadlockPolicy = iota
	// DeadlockTruncate stops the walk and returns ErrDeadlock with the partial walk.
	DeadlockTruncate
)

// ParseDeadlockPolicy parses "relax" or "truncate".
func ParseDeadlockPolicy(s string) (DeadlockPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relax":
		return DeadlockRelax, nil
	case "truncate":
		return DeadlockTruncate, nil
	default:
		return DeadlockRelax, fmt.Errorf("%w: unknown deadlock policy %q", ErrInvalidArgument, s)
	}
}

// String returns the configuration name of the policy.
func (p DeadlockPolicy) String() string {
	if p == DeadlockTruncate {
		return "truncate"
	}
	return "relax"
}

// Window bounds the cells a walk may enter. Bounds are inclusive.
type Window struct {
	MinRow, MaxRow float64
	MinCol, MaxCol float64
}

// SquareWindow returns a window spanning [-half, half] on both axes.
func SquareWindow(half float64) *Window {
	return &Window{MinRow: -half, MaxRow: half, MinCol: -half, MaxCol: half}
}

// Contains reports whether c lies inside the window.
func (w Window) Contains(c Cell) bool {
	return c.Row >= w.MinRow && c.Row <= w.MaxRow && c.Col >= w.MinCol && c.Col <= w.MaxCol
}

// Options configures a Generator.
type Options struct {
	Set          DirectionSet
	StartBound   int            // start row and col are drawn from [-StartBound, StartBound]
	AvoidRevisit bool           // reject cells already on the walk
	MaxAttempts  int            // random draws before enumerating legal directions
	Policy       DeadlockPolicy // applied when no direction is legal
	Window       *Window        // nil disables the window constraint
}

// DefaultOptions returns the four-way options used by simple mode.
func DefaultOptions() Options {
	return Options{
		Set:         Four,
		StartBound:  10,
		MaxAttempts: 16,
		Policy:      DeadlockRelax,
	}
}

// Walk is a generated trajectory together with how it was produced.
type Walk struct {
	Path    Trajectory
	Dirs    []Direction
	Relaxed []int // step indices where a constraint was relaxed
}

// Generator produces constrained random walks.
// It owns its random stream; separate generators never share state.
type Generator struct {
	rng  Source
	opts Options
}

// NewGenerator creates a generator drawing from rng.
// A nil rng is replaced by a time-seeded stream created once here.
func NewGenerator(rng Source, opts Options) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.MaxAttempts < 0 {
		opts.MaxAttempts = 0
	}
	if opts.StartBound < 0 {
		opts.StartBound = -opts.StartBound
	}
	return &Generator{rng: rng, opts: opts}
}

// NewSeededGenerator creates a generator with its own deterministic stream.
func NewSeededGenerator(seed int64, opts Options) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)), opts)
}

// Options returns the generator configuration.
func (g *Generator) Options() Options {
	return g.opts
}

// Start draws a start cell with integer coordinates in [-StartBound, StartBound].
func (g *Generator) Start() Cell {
	b := g.opts.StartBound
	row := g.rng.Intn(2*b+1) - b
	col := g.rng.Intn(2*b+1) - b
	return C(float64(row), float64(col))
}

// Generate returns a walk of exactly steps moves from a random start.
func (g *Generator) Generate(steps int) (Trajectory, error) {
	w, err := g.GenerateWalk(steps)
	return w.Path, err
}

// GenerateWalk is Generate with the chosen directions and relaxation record.
func (g *Generator) GenerateWalk(steps int) (Walk, error) {
	if steps < 0 {
		return Walk{}, fmt.Errorf("%w: steps must be >= 0, got %d", ErrInvalidArgument, steps)
	}
	return g.GenerateFrom(g.Start(), steps)
}

// GenerateFrom walks steps moves from start.
// With DeadlockTruncate the partial walk is returned alongside ErrDeadlock.
func (g *Generator) GenerateFrom(start Cell, steps int) (Walk, error) {
	if steps < 0 {
		return Walk{}, fmt.Errorf("%w: steps must be >= 0, got %d", ErrInvalidArgument, steps)
	}

	set := g.opts.Set
	start = canon(start)
	w := Walk{Dirs: make([]Direction, 0, steps)}
	pts := make([]point, 1, steps+1)

	var pos point
	visited := map[point]bool{pos: true}
	prev := Direction(0)

	for i := 0; i < steps; i++ {
		d, relaxed, ok := g.pick(set, start, pos, prev, i > 0, visited)
		if !ok {
			w.Path = onLattice(set, start, pts)
			return w, fmt.Errorf("%w: no legal direction at step %d of %d", ErrDeadlock, i, steps)
		}
		if relaxed {
			w.Relaxed = append(w.Relaxed, i)
		}
		pos = pos.add(set.step(d))
		visited[pos] = true
		pts = append(pts, pos)
		w.Dirs = append(w.Dirs, d)
		prev = d
	}
	w.Path = onLattice(set, start, pts)
	return w, nil
}

// constraint levels, strictest first
const (
	levelStrict   = iota // reversal, revisit, window
	levelNoRevisit       // reversal, window
	levelReversal        // reversal only
)

// pick chooses the next direction. It tries MaxAttempts random draws under
// the strict constraints, then enumerates. It never loops unbounded.
func (g *Generator) pick(set DirectionSet, start Cell, pos point, prev Direction, hasPrev bool, visited map[point]bool) (Direction, bool, bool) {
	n := set.Len()
	legal := func(d Direction, level int) bool {
		if hasPrev {
			if opp, _ := set.Opposite(prev); d == opp {
				return false
			}
		}
		next := pos.add(set.step(d))
		if level < levelNoRevisit && g.opts.AvoidRevisit && visited[next] {
			return false
		}
		if level < levelReversal && g.opts.Window != nil && !g.opts.Window.Contains(set.project(start, next)) {
			return false
		}
		return true
	}

	for attempt := 0; attempt < g.opts.MaxAttempts; attempt++ {
		d := Direction(g.rng.Intn(n))
		if legal(d, levelStrict) {
			return d, false, true
		}
	}

	for level := levelStrict; level <= levelReversal; level++ {
		candidates := make([]Direction, 0, n)
		for _, d := range set.Directions() {
			if legal(d, level) {
				candidates = append(candidates, d)
			}
		}
		if len(candidates) > 0 {
			return candidates[g.rng.Intn(len(candidates))], level > levelStrict, true
		}
		if g.opts.Policy == DeadlockTruncate {
			return 0, false, false
		}
	}
	// unreachable: reversal excludes one direction out of at least four
	return 0, false, false
}

// Trace replays a fixed direction sequence from start.
// It enforces no walk constraints; it is used for scripted paths and player input.
func Trace(start Cell, set DirectionSet, dirs []Direction) (Trajectory, error) {
	pts := make([]point, 1, len(dirs)+1)
	var pos point
	for i, d := range dirs {
		if !set.Valid(d) {
			return Trajectory{}, fmt.Errorf("step %d: %w", i, set.invalid(d))
		}
		pos = pos.add(set.step(d))
		pts = append(pts, pos)
	}
	return onLattice(set, start, pts), nil
}
