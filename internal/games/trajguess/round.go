package trajguess

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/vovakirdan/trajguess/internal/config"
	"github.com/vovakirdan/trajguess/internal/trajectory"
)

// Round holds the paths of one guessing round.
//
// Reference is object A's absolute path. Relative is object B's path in its
// own frame, starting at the origin. Actual is B's absolute path, composed
// from a fresh start cell; the player sees its first cell only.
type Round struct {
	ID         string
	Difficulty config.Difficulty
	Set        trajectory.DirectionSet
	Steps      int
	Reference  trajectory.Trajectory
	Relative   trajectory.Trajectory
	Actual     trajectory.Trajectory
	Relaxed    int // steps where a walk constraint had to be dropped

	// Directions chosen by the generator, one per step.
	ReferenceDirs []trajectory.Direction
	RelativeDirs  []trajectory.Direction

	guess  Guess
	result *Result
}

// composeAttempts bounds how many relative walks are drawn while looking for
// one whose composed path fits the configured window.
const composeAttempts = 32

// NewRound generates a round for difficulty d. steps is clamped to the
// difficulty's range; zero picks the default.
//
// With a window configured, B's absolute path must stay inside it too. The
// start cell is drawn among the starts that keep the composed path inside the
// window; when no start fits, the relative walk is redrawn. After
// composeAttempts misses NewRound fails with trajectory.ErrDeadlock.
func NewRound(rng *rand.Rand, cfg config.GameConfig, d config.Difficulty, steps int) (*Round, error) {
	opts, err := cfg.GeneratorOptions(d)
	if err != nil {
		return nil, err
	}
	mode, err := cfg.CompositionMode()
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return nil, fmt.Errorf("trajguess: round id: %w", err)
	}

	r := &Round{
		ID:         id.String(),
		Difficulty: d,
		Set:        opts.Set,
		Steps:      cfg.ClampSteps(d, steps),
	}
	gen := trajectory.NewGenerator(rng, opts)

	ref, err := gen.GenerateWalk(r.Steps)
	if err := r.accept("reference", ref, err); err != nil {
		return nil, err
	}
	r.Reference, r.ReferenceDirs = ref.Path, ref.Dirs
	r.Relaxed = len(ref.Relaxed)

	attempts := 1
	if opts.Window != nil {
		attempts = composeAttempts
	}
	for attempt := 0; attempt < attempts; attempt++ {
		rel, err := gen.GenerateFrom(trajectory.C(0, 0), r.Steps)
		if err := r.accept("relative", rel, err); err != nil {
			return nil, err
		}
		actual, ok := composeInside(rng, gen, mode, opts, ref.Path, rel.Path)
		if !ok {
			continue
		}
		if attempt > 0 {
			logger.Debug("relative path redrawn to fit window", "round", r.ID, "attempts", attempt+1)
		}
		r.Relative, r.RelativeDirs = rel.Path, rel.Dirs
		r.Relaxed += len(rel.Relaxed)
		r.Actual = actual
		break
	}
	if r.Actual.Len() == 0 {
		if opts.Window != nil {
			logger.Warn("no composed path fits the window", "round", r.ID, "attempts", attempts, "window", *opts.Window)
			return nil, fmt.Errorf("trajguess: round %s: %w: composed path leaves the window after %d attempts",
				r.ID, trajectory.ErrDeadlock, attempts)
		}
		return nil, fmt.Errorf("trajguess: round %s composed an empty path", r.ID)
	}

	// truncated walks shorten the round
	r.Steps = r.Actual.Len() - 1
	r.ReferenceDirs = r.ReferenceDirs[:min(len(r.ReferenceDirs), r.Steps)]
	r.RelativeDirs = r.RelativeDirs[:min(len(r.RelativeDirs), r.Steps)]

	start, _ := r.Actual.Cell(0)
	r.guess = NewGuess(r.Set, start, r.Actual.Len())
	return r, nil
}

// composeInside builds B's absolute path. Without a window it starts from a
// fresh generator start. With one, the start is drawn uniformly among the
// integer starts within the start bound that keep every cell inside.
func composeInside(rng *rand.Rand, gen *trajectory.Generator, mode trajectory.Composition, opts trajectory.Options, ref, rel trajectory.Trajectory) (trajectory.Trajectory, bool) {
	w := opts.Window
	if w == nil {
		return trajectory.Combine(mode, gen.Start(), ref, rel), true
	}
	if mode == trajectory.CompositionOffset {
		actual := trajectory.Overlay(ref, rel)
		return actual, inside(*w, actual)
	}

	// the shape does not depend on the start, so fit its bounding box
	shape := trajectory.Compose(trajectory.C(0, 0), ref, rel)
	if shape.Len() == 0 {
		return shape, false
	}
	first, _ := shape.Cell(0)
	minRow, maxRow, minCol, maxCol := first.Row, first.Row, first.Col, first.Col
	for _, c := range shape.Cells() {
		minRow, maxRow = min(minRow, c.Row), max(maxRow, c.Row)
		minCol, maxCol = min(minCol, c.Col), max(maxCol, c.Col)
	}

	bound := float64(opts.StartBound)
	rowLo, rowHi := max(-bound, math.Ceil(w.MinRow-minRow)), min(bound, math.Floor(w.MaxRow-maxRow))
	colLo, colHi := max(-bound, math.Ceil(w.MinCol-minCol)), min(bound, math.Floor(w.MaxCol-maxCol))
	if rowLo > rowHi || colLo > colHi {
		return trajectory.Trajectory{}, false
	}
	row := rowLo + float64(rng.Intn(int(rowHi-rowLo)+1))
	col := colLo + float64(rng.Intn(int(colHi-colLo)+1))

	actual := trajectory.Compose(trajectory.C(row, col), ref, rel)
	return actual, inside(*w, actual)
}

func inside(w trajectory.Window, t trajectory.Trajectory) bool {
	for _, c := range t.Cells() {
		if !w.Contains(c) {
			return false
		}
	}
	return true
}

// accept logs relaxed or truncated walks and filters fatal errors.
func (r *Round) accept(name string, w trajectory.Walk, err error) error {
	if len(w.Relaxed) > 0 {
		logger.Warn("constraint relaxed", "round", r.ID, "path", name, "steps", w.Relaxed)
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, trajectory.ErrDeadlock) && w.Path.Len() > 1 {
		logger.Warn("walk truncated", "round", r.ID, "path", name, "cells", w.Path.Len(), "err", err)
		return nil
	}
	return fmt.Errorf("trajguess: %s path: %w", name, err)
}

// Guess returns the player's guess for this round.
func (r *Round) Guess() *Guess {
	return &r.guess
}

// Start returns the first cell of B's absolute path.
func (r *Round) Start() trajectory.Cell {
	c, _ := r.Actual.Cell(0)
	return c
}

// Submitted reports whether the guess has been scored.
func (r *Round) Submitted() bool {
	return r.result != nil
}

// Result returns the scored outcome, or false before Submit.
func (r *Round) Result() (Result, bool) {
	if r.result == nil {
		return Result{}, false
	}
	return *r.result, true
}

// Submit scores the guess. Submitting twice returns the first result.
func (r *Round) Submit(elapsed, decay float64) Result {
	if r.result != nil {
		return *r.result
	}
	sim := trajectory.Similarity(r.guess.Path(), r.Actual)
	res := Result{
		RoundID:    r.ID,
		Steps:      r.Steps,
		Similarity: sim,
		Score:      trajectory.Score(sim, elapsed, decay),
		Elapsed:    max(elapsed, 0),
	}
	r.result = &res
	return res
}

// Guess is the path the player is drawing. It starts at B's first cell and
// grows one placed cell at a time. The cursor moves freely on the lattice.
type Guess struct {
	cursor trajectory.Cursor
	placed []trajectory.Cursor
	limit  int
	path   trajectory.Trajectory
}

// NewGuess starts a guess at start. limit caps the number of cells.
func NewGuess(set trajectory.DirectionSet, start trajectory.Cell, limit int) Guess {
	cur := trajectory.NewCursor(set, start)
	return Guess{
		cursor: cur,
		limit:  limit,
		path:   trajectory.New(cur.Cell()),
	}
}

// Move moves the cursor one lattice step.
func (g *Guess) Move(d trajectory.Direction) error {
	return g.cursor.Move(d)
}

// Place appends the cursor cell to the guess. It reports false when the
// guess is already as long as the true path.
func (g *Guess) Place() bool {
	if g.limit > 0 && g.path.Len() >= g.limit {
		return false
	}
	g.placed = append(g.placed, g.cursor)
	g.path.Add(g.cursor.Cell())
	return true
}

// Undo removes the last placed cell and returns the cursor to the new end.
// The start cell cannot be removed.
func (g *Guess) Undo() bool {
	if len(g.placed) == 0 {
		return false
	}
	g.placed = g.placed[:len(g.placed)-1]

	g.cursor.Reset()
	if n := len(g.placed); n > 0 {
		g.cursor = g.placed[n-1]
	}
	cells := make([]trajectory.Cell, 0, len(g.placed)+1)
	cells = append(cells, g.cursor.Origin())
	for _, p := range g.placed {
		cells = append(cells, p.Cell())
	}
	g.path = trajectory.New(cells...)
	return true
}

// Path returns the guessed trajectory including the start cell.
func (g *Guess) Path() trajectory.Trajectory {
	return g.path.Clone()
}

// Cursor returns the cell under the cursor.
func (g *Guess) Cursor() trajectory.Cell {
	return g.cursor.Cell()
}

// Len returns the number of guessed cells including the start.
func (g *Guess) Len() int {
	return g.path.Len()
}

// Full reports whether no more cells can be placed.
func (g *Guess) Full() bool {
	return g.limit > 0 && g.path.Len() >= g.limit
}
