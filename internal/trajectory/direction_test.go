package trajectory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/trajguess/internal/trajectory"
)

func TestOppositeDirections(t *testing.T) {
	tests := []struct {
		set  trajectory.DirectionSet
		d    trajectory.Direction
		want trajectory.Direction
	}{
		{trajectory.Four, trajectory.Right, trajectory.Left},
		{trajectory.Four, trajectory.Left, trajectory.Right},
		{trajectory.Four, trajectory.Up, trajectory.Down},
		{trajectory.Four, trajectory.Down, trajectory.Up},
		{trajectory.Six, trajectory.East, trajectory.West},
		{trajectory.Six, trajectory.NorthEast, trajectory.SouthWest},
		{trajectory.Six, trajectory.NorthWest, trajectory.SouthEast},
		{trajectory.Six, trajectory.SouthEast, trajectory.NorthWest},
	}

	for _, tt := range tests {
		got, err := tt.set.Opposite(tt.d)
		if err != nil {
			t.Fatalf("%s Opposite(%s) failed: %v", tt.set, tt.set.Name(tt.d), err)
		}
		if got != tt.want {
			t.Errorf("%s Opposite(%s) = %s, expected %s",
				tt.set, tt.set.Name(tt.d), tt.set.Name(got), tt.set.Name(tt.want))
		}
	}
}

func TestOppositeDeltasCancel(t *testing.T) {
	for _, set := range []trajectory.DirectionSet{trajectory.Four, trajectory.Six} {
		for _, d := range set.Directions() {
			opp, _ := set.Opposite(d)
			a, _ := set.Delta(d)
			b, _ := set.Delta(opp)
			sum := a.Add(b)
			if math.Abs(sum.Row) > 1e-9 || math.Abs(sum.Col) > 1e-9 {
				t.Errorf("%s: delta(%s)+delta(%s) = %v, expected zero",
					set, set.Name(d), set.Name(opp), sum)
			}
		}
	}
}

func TestFourDeltasAreUnit(t *testing.T) {
	want := map[trajectory.Direction]trajectory.Cell{
		trajectory.Right: trajectory.C(0, 1),
		trajectory.Up:    trajectory.C(-1, 0),
		trajectory.Left:  trajectory.C(0, -1),
		trajectory.Down:  trajectory.C(1, 0),
	}
	for d, w := range want {
		got, err := trajectory.Four.Delta(d)
		if err != nil {
			t.Fatalf("Delta(%d) failed: %v", d, err)
		}
		if !got.Equal(w) {
			t.Errorf("Delta(%s) = %v, expected %v", trajectory.Four.Name(d), got, w)
		}
	}
}

func TestSixDeltasAreEquidistant(t *testing.T) {
	for _, d := range trajectory.Six.Directions() {
		delta, err := trajectory.Six.Delta(d)
		if err != nil {
			t.Fatalf("Delta(%d) failed: %v", d, err)
		}
		length := math.Hypot(delta.Row, delta.Col)
		if math.Abs(length-math.Sqrt(3)) > 1e-9 {
			t.Errorf("Delta(%s) length = %f, expected sqrt(3)", trajectory.Six.Name(d), length)
		}
	}
}

func TestInvalidDirection(t *testing.T) {
	if _, err := trajectory.Four.Delta(4); !errors.Is(err, trajectory.ErrInvalidArgument) {
		t.Errorf("Four.Delta(4) error = %v, expected ErrInvalidArgument", err)
	}
	if _, err := trajectory.Six.Opposite(6); !errors.Is(err, trajectory.ErrInvalidArgument) {
		t.Errorf("Six.Opposite(6) error = %v, expected ErrInvalidArgument", err)
	}
	if _, err := trajectory.Four.ParseDirection("ne"); !errors.Is(err, trajectory.ErrInvalidArgument) {
		t.Errorf("Four.ParseDirection(ne) error = %v, expected ErrInvalidArgument", err)
	}
}

func TestParseDirectionSet(t *testing.T) {
	if s, err := trajectory.ParseDirectionSet("six"); err != nil || s != trajectory.Six {
		t.Errorf("ParseDirectionSet(six) = %v, %v", s, err)
	}
	if s, err := trajectory.ParseDirectionSet("Four"); err != nil || s != trajectory.Four {
		t.Errorf("ParseDirectionSet(Four) = %v, %v", s, err)
	}
	if _, err := trajectory.ParseDirectionSet("eight"); err == nil {
		t.Error("ParseDirectionSet(eight) should fail")
	}
}
