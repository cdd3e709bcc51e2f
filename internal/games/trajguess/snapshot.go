package trajguess

import "github.com/vovakirdan/trajguess/internal/trajectory"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Round     int    // 1-based round number
	Player    string // active seat
	RoundID   string
	Reference []trajectory.Cell
	Relative  []trajectory.Cell
	Actual    []trajectory.Cell
	Guess     []trajectory.Cell
	Cursor    trajectory.Cell
	Totals    []float64 // per seat, in seat order
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:  g.tick,
		Phase: g.phase,
	}
	if g.match == nil {
		return s
	}
	s.Round = g.match.RoundNumber()
	s.Player = g.match.Active().Name
	for _, p := range g.match.Players() {
		s.Totals = append(s.Totals, p.Total)
	}
	if r := g.match.Current(); r != nil {
		s.RoundID = r.ID
		s.Reference = r.Reference.Cells()
		s.Relative = r.Relative.Cells()
		s.Actual = r.Actual.Cells()
		s.Guess = r.Guess().Path().Cells()
		s.Cursor = r.Guess().Cursor()
	}
	return s
}
