package trajectory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/trajguess/internal/trajectory"
)

// scripted replays fixed draws, then returns 0 forever.
type scripted struct {
	draws []int
	calls int
}

func (s *scripted) Intn(n int) int {
	s.calls++
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v % n
}

func TestTraceScenario(t *testing.T) {
	dirs := []trajectory.Direction{
		trajectory.Right, trajectory.Right, trajectory.Up, trajectory.Left, trajectory.Down,
	}
	got, err := trajectory.Trace(trajectory.C(0, 0), trajectory.Four, dirs)
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}

	want := []trajectory.Cell{
		trajectory.C(0, 0), trajectory.C(0, 1), trajectory.C(0, 2),
		trajectory.C(-1, 2), trajectory.C(-1, 1), trajectory.C(0, 1),
	}
	if got.Len() != len(want) {
		t.Fatalf("Len = %d, expected %d", got.Len(), len(want))
	}
	for i, w := range want {
		c, _ := got.Cell(i)
		if !c.Equal(w) {
			t.Errorf("cell %d = %v, expected %v", i, c, w)
		}
	}
}

func TestGeneratorScriptedScenario(t *testing.T) {
	// right, right, up, left, down
	src := &scripted{draws: []int{0, 0, 1, 2, 3}}
	opts := trajectory.DefaultOptions()
	opts.MaxAttempts = 1
	g := trajectory.NewGenerator(src, opts)

	w, err := g.GenerateFrom(trajectory.C(0, 0), 5)
	if err != nil {
		t.Fatalf("GenerateFrom failed: %v", err)
	}
	if got := w.Path.Current(); !got.Equal(trajectory.C(0, 1)) {
		t.Errorf("final cell = %v, expected (0,1)", got)
	}
	if len(w.Relaxed) != 0 {
		t.Errorf("Relaxed = %v, expected none", w.Relaxed)
	}
}

func TestTraceHexReturnsExactlyToStart(t *testing.T) {
	dirs := []trajectory.Direction{
		trajectory.East, trajectory.NorthEast, trajectory.West, trajectory.SouthWest,
	}
	start := trajectory.C(3, -2)
	tr, err := trajectory.Trace(start, trajectory.Six, dirs)
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	if !tr.Current().Equal(start) {
		t.Errorf("closed hex loop ended at %v, expected %v", tr.Current(), start)
	}
}

func TestTraceRejectsMalformedDirection(t *testing.T) {
	_, err := trajectory.Trace(trajectory.C(0, 0), trajectory.Four, []trajectory.Direction{trajectory.Right, 5})
	if !errors.Is(err, trajectory.ErrInvalidArgument) {
		t.Errorf("error = %v, expected ErrInvalidArgument", err)
	}
}

func TestGenerateLength(t *testing.T) {
	for _, set := range []trajectory.DirectionSet{trajectory.Four, trajectory.Six} {
		for _, avoid := range []bool{false, true} {
			opts := trajectory.DefaultOptions()
			opts.Set = set
			opts.AvoidRevisit = avoid
			g := trajectory.NewSeededGenerator(7, opts)

			for steps := 0; steps <= 40; steps++ {
				tr, err := g.Generate(steps)
				if err != nil {
					t.Fatalf("%s avoid=%v steps=%d: %v", set, avoid, steps, err)
				}
				if tr.Len() != steps+1 {
					t.Errorf("%s avoid=%v steps=%d: Len = %d", set, avoid, steps, tr.Len())
				}
			}
		}
	}
}

func TestGenerateNegativeSteps(t *testing.T) {
	g := trajectory.NewSeededGenerator(1, trajectory.DefaultOptions())
	if _, err := g.Generate(-1); !errors.Is(err, trajectory.ErrInvalidArgument) {
		t.Errorf("error = %v, expected ErrInvalidArgument", err)
	}
}

func TestGenerateStartWithinBound(t *testing.T) {
	opts := trajectory.DefaultOptions()
	opts.StartBound = 3
	g := trajectory.NewSeededGenerator(99, opts)

	for i := 0; i < 200; i++ {
		s := g.Start()
		if s.Row < -3 || s.Row > 3 || s.Col < -3 || s.Col > 3 {
			t.Fatalf("start %v outside [-3,3]", s)
		}
		if s.Row != math.Trunc(s.Row) || s.Col != math.Trunc(s.Col) {
			t.Fatalf("start %v is not integral", s)
		}
	}
}

func TestGenerateStepsAreUnitAndNeverReverse(t *testing.T) {
	for _, set := range []trajectory.DirectionSet{trajectory.Four, trajectory.Six} {
		opts := trajectory.DefaultOptions()
		opts.Set = set
		opts.AvoidRevisit = true
		g := trajectory.NewSeededGenerator(2024, opts)

		for run := 0; run < 50; run++ {
			w, err := g.GenerateWalk(30)
			if err != nil {
				t.Fatalf("%s: %v", set, err)
			}
			deltas := w.Path.Deltas()
			if len(deltas) != len(w.Dirs) {
				t.Fatalf("%s: %d deltas for %d dirs", set, len(deltas), len(w.Dirs))
			}
			for i, d := range deltas {
				want, _ := set.Delta(w.Dirs[i])
				if math.Abs(d.Row-want.Row) > 1e-9 || math.Abs(d.Col-want.Col) > 1e-9 {
					t.Errorf("%s step %d: displacement %v, expected %v", set, i, d, want)
				}
				if i > 0 {
					opp, _ := set.Opposite(w.Dirs[i-1])
					if w.Dirs[i] == opp {
						t.Errorf("%s step %d reverses step %d", set, i, i-1)
					}
				}
			}
		}
	}
}

func TestGenerateAvoidRevisit(t *testing.T) {
	for _, set := range []trajectory.DirectionSet{trajectory.Four, trajectory.Six} {
		opts := trajectory.DefaultOptions()
		opts.Set = set
		opts.AvoidRevisit = true
		g := trajectory.NewSeededGenerator(5, opts)

		for run := 0; run < 50; run++ {
			w, err := g.GenerateWalk(25)
			if err != nil {
				t.Fatalf("%s: %v", set, err)
			}
			relaxed := make(map[int]bool)
			for _, i := range w.Relaxed {
				relaxed[i+1] = true // step i produces cell i+1
			}
			cells := w.Path.Cells()
			for i := 1; i < len(cells); i++ {
				if relaxed[i] {
					continue
				}
				for j := 0; j < i; j++ {
					if cells[i].Equal(cells[j]) {
						t.Errorf("%s run %d: cell %d revisits cell %d at %v", set, run, i, j, cells[i])
					}
				}
			}
		}
	}
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	opts := trajectory.DefaultOptions()
	opts.Set = trajectory.Six
	a, _ := trajectory.NewSeededGenerator(42, opts).Generate(20)
	b, _ := trajectory.NewSeededGenerator(42, opts).Generate(20)

	if a.Similarity(b) != 1 {
		t.Errorf("same seed produced different walks:\n%v\n%v", a, b)
	}
}

func TestIndependentGeneratorsDoNotShareState(t *testing.T) {
	opts := trajectory.DefaultOptions()
	g1 := trajectory.NewSeededGenerator(11, opts)
	g2 := trajectory.NewSeededGenerator(11, opts)

	// Drawing from g1 must not advance g2.
	for i := 0; i < 5; i++ {
		g1.Generate(10) //nolint:errcheck // only advances the stream
	}
	fresh, _ := trajectory.NewSeededGenerator(11, opts).Generate(10)
	got, _ := g2.Generate(10)
	if got.Similarity(fresh) != 1 {
		t.Error("generator output depends on another generator's draws")
	}
}

// deadEnd walks right, right, down, down, left, left, up, right and ends at
// (1,1) with every non-reversing neighbour already visited.
var deadEnd = []int{0, 0, 3, 3, 2, 2, 1, 0}

func TestGenerateDeadlockTruncate(t *testing.T) {
	opts := trajectory.DefaultOptions()
	opts.AvoidRevisit = true
	opts.MaxAttempts = 1
	opts.Policy = trajectory.DeadlockTruncate
	g := trajectory.NewGenerator(&scripted{draws: append([]int{}, deadEnd...)}, opts)

	w, err := g.GenerateFrom(trajectory.C(0, 0), 12)
	if !errors.Is(err, trajectory.ErrDeadlock) {
		t.Fatalf("error = %v, expected ErrDeadlock", err)
	}
	if w.Path.Len() != len(deadEnd)+1 {
		t.Errorf("partial walk Len = %d, expected %d", w.Path.Len(), len(deadEnd)+1)
	}
	if !w.Path.Current().Equal(trajectory.C(1, 1)) {
		t.Errorf("walk stopped at %v, expected (1,1)", w.Path.Current())
	}
}

func TestGenerateDeadlockRelax(t *testing.T) {
	opts := trajectory.DefaultOptions()
	opts.AvoidRevisit = true
	opts.MaxAttempts = 1
	src := &scripted{draws: append([]int{}, deadEnd...)}
	g := trajectory.NewGenerator(src, opts)

	w, err := g.GenerateFrom(trajectory.C(0, 0), 12)
	if err != nil {
		t.Fatalf("GenerateFrom failed: %v", err)
	}
	if w.Path.Len() != 13 {
		t.Errorf("Len = %d, expected 13", w.Path.Len())
	}
	if len(w.Relaxed) == 0 || w.Relaxed[0] != len(deadEnd) {
		t.Errorf("Relaxed = %v, expected first relaxation at step %d", w.Relaxed, len(deadEnd))
	}
	// the relaxed step must still not reverse
	opp, _ := trajectory.Four.Opposite(w.Dirs[len(deadEnd)-1])
	if w.Dirs[len(deadEnd)] == opp {
		t.Error("relaxed step reversed direction")
	}
	if src.calls > 100 {
		t.Errorf("generator made %d draws; retries must be bounded", src.calls)
	}
}

func TestGenerateWindow(t *testing.T) {
	opts := trajectory.DefaultOptions()
	opts.Window = trajectory.SquareWindow(3)
	opts.StartBound = 0
	g := trajectory.NewSeededGenerator(8, opts)

	for run := 0; run < 30; run++ {
		w, err := g.GenerateWalk(60)
		if err != nil {
			t.Fatalf("GenerateWalk failed: %v", err)
		}
		relaxed := make(map[int]bool)
		for _, i := range w.Relaxed {
			relaxed[i+1] = true
		}
		for i, c := range w.Path.Cells() {
			if !opts.Window.Contains(c) && !relaxed[i] {
				t.Errorf("run %d: cell %d %v left the window without relaxation", run, i, c)
			}
		}
	}
}

func TestParseDeadlockPolicy(t *testing.T) {
	if p, err := trajectory.ParseDeadlockPolicy("truncate"); err != nil || p != trajectory.DeadlockTruncate {
		t.Errorf("ParseDeadlockPolicy(truncate) = %v, %v", p, err)
	}
	if p, err := trajectory.ParseDeadlockPolicy(""); err != nil || p != trajectory.DeadlockRelax {
		t.Errorf("ParseDeadlockPolicy(\"\") = %v, %v", p, err)
	}
	if _, err := trajectory.ParseDeadlockPolicy("panic"); !errors.Is(err, trajectory.ErrInvalidArgument) {
		t.Errorf("ParseDeadlockPolicy(panic) error = %v", err)
	}
}
