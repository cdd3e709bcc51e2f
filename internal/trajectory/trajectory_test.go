package trajectory_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/trajguess/internal/trajectory"
)

func TestCellEqualIsExact(t *testing.T) {
	a := trajectory.C(1, 2)
	if !a.Equal(trajectory.C(1, 2)) {
		t.Error("identical cells should be equal")
	}
	if a.Equal(trajectory.C(1, 2.0000001)) {
		t.Error("equality must not use a tolerance")
	}
}

func TestCellArithmetic(t *testing.T) {
	a := trajectory.C(1, 2)
	b := trajectory.C(-3, 0.5)

	if got := a.Add(b); !got.Equal(trajectory.C(-2, 2.5)) {
		t.Errorf("Add = %v, expected (-2,2.5)", got)
	}
	if got := a.Sub(b); !got.Equal(trajectory.C(4, 1.5)) {
		t.Errorf("Sub = %v, expected (4,1.5)", got)
	}
	if got := a.Add(b).Sub(b); !got.Equal(a) {
		t.Errorf("Add then Sub = %v, expected %v", got, a)
	}
}

func TestTrajectoryAddAndCurrent(t *testing.T) {
	var tr trajectory.Trajectory

	if tr.Len() != 0 {
		t.Fatalf("empty trajectory Len = %d", tr.Len())
	}
	if !tr.Current().Equal(trajectory.C(0, 0)) {
		t.Errorf("empty Current = %v, expected (0,0)", tr.Current())
	}

	tr.Add(trajectory.C(3, 4))
	tr.Add(trajectory.C(3, 5))

	if tr.Len() != 2 {
		t.Errorf("Len = %d, expected 2", tr.Len())
	}
	if !tr.Current().Equal(trajectory.C(3, 5)) {
		t.Errorf("Current = %v, expected (3,5)", tr.Current())
	}
	last, err := tr.Cell(tr.Len() - 1)
	if err != nil {
		t.Fatalf("Cell(last) failed: %v", err)
	}
	if !last.Equal(tr.Current()) {
		t.Errorf("Current %v diverged from last cell %v", tr.Current(), last)
	}
}

func TestTrajectoryCellOutOfRange(t *testing.T) {
	tr := trajectory.New(trajectory.C(0, 0), trajectory.C(0, 1))

	for _, i := range []int{-1, 2, 100} {
		if _, err := tr.Cell(i); !errors.Is(err, trajectory.ErrIndexOutOfRange) {
			t.Errorf("Cell(%d) error = %v, expected ErrIndexOutOfRange", i, err)
		}
	}
	if _, err := tr.Cell(1); err != nil {
		t.Errorf("Cell(1) unexpected error: %v", err)
	}
}

func TestTrajectoryClear(t *testing.T) {
	tr := trajectory.New(trajectory.C(5, 5), trajectory.C(5, 6))
	snapshot := tr

	tr.Clear()

	if tr.Len() != 0 {
		t.Errorf("Len after Clear = %d", tr.Len())
	}
	if !tr.Current().Equal(trajectory.C(0, 0)) {
		t.Errorf("Current after Clear = %v, expected (0,0)", tr.Current())
	}

	tr.Add(trajectory.C(9, 9))
	if c, _ := snapshot.Cell(0); !c.Equal(trajectory.C(5, 5)) {
		t.Errorf("earlier copy changed after Clear+Add: %v", c)
	}
}

func TestTrajectoryCellsIsCopy(t *testing.T) {
	tr := trajectory.New(trajectory.C(1, 1))
	cells := tr.Cells()
	cells[0] = trajectory.C(7, 7)

	if c, _ := tr.Cell(0); !c.Equal(trajectory.C(1, 1)) {
		t.Errorf("mutating Cells() leaked into trajectory: %v", c)
	}
}

func TestTrajectoryCloneIsIndependent(t *testing.T) {
	a := trajectory.New(trajectory.C(0, 0))
	b := a.Clone()
	b.Add(trajectory.C(0, 1))
	a.Add(trajectory.C(1, 0))

	if c, _ := b.Cell(1); !c.Equal(trajectory.C(0, 1)) {
		t.Errorf("clone cell = %v, expected (0,1)", c)
	}
}

func TestTrajectoryDeltas(t *testing.T) {
	tr := trajectory.New(trajectory.C(0, 0), trajectory.C(0, 1), trajectory.C(-1, 1))
	d := tr.Deltas()

	if len(d) != 2 {
		t.Fatalf("len(Deltas) = %d, expected 2", len(d))
	}
	if !d[0].Equal(trajectory.C(0, 1)) || !d[1].Equal(trajectory.C(-1, 0)) {
		t.Errorf("Deltas = %v", d)
	}
	if trajectory.New(trajectory.C(0, 0)).Deltas() != nil {
		t.Error("single-cell trajectory should have no deltas")
	}
}
