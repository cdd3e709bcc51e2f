package trajguess

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/trajguess/internal/config"
)

// ErrMatchOver is returned when a round is requested after the last one.
var ErrMatchOver = errors.New("trajguess: match is over")

// Match runs the rounds of one game. With several seats the players take
// turns in seat order, one round each, until every player has played
// cfg.Rounds rounds.
type Match struct {
	cfg        config.GameConfig
	difficulty config.Difficulty
	steps      int
	rng        *rand.Rand
	players    []*Player
	rounds     []*Round
}

// NewMatch creates a match for the named players. The seed drives every
// round of the match.
func NewMatch(cfg config.GameConfig, d config.Difficulty, steps int, seed int64, names []string) *Match {
	if len(names) == 0 {
		names = []string{"P1"}
	}
	players := make([]*Player, len(names))
	for i, name := range names {
		players[i] = &Player{ID: i + 1, Name: name}
	}
	return &Match{
		cfg:        cfg,
		difficulty: d,
		steps:      steps,
		rng:        rand.New(rand.NewSource(seed)),
		players:    players,
	}
}

// Players returns the seats in turn order.
func (m *Match) Players() []*Player {
	return m.players
}

// TotalRounds returns the number of rounds across all seats.
func (m *Match) TotalRounds() int {
	return m.cfg.Rounds * len(m.players)
}

// RoundNumber returns the 1-based number of the current round, 0 before the first.
func (m *Match) RoundNumber() int {
	return len(m.rounds)
}

// Current returns the round in progress, or nil before the first.
func (m *Match) Current() *Round {
	if len(m.rounds) == 0 {
		return nil
	}
	return m.rounds[len(m.rounds)-1]
}

// Active returns the player whose turn it is.
func (m *Match) Active() *Player {
	n := len(m.rounds)
	if n > 0 {
		n--
	}
	return m.players[n%len(m.players)]
}

// Done reports whether the last round has been submitted.
func (m *Match) Done() bool {
	cur := m.Current()
	return len(m.rounds) >= m.TotalRounds() && cur != nil && cur.Submitted()
}

// Next starts the next round. Each round draws from its own generator,
// seeded from the match stream.
func (m *Match) Next() (*Round, error) {
	if len(m.rounds) >= m.TotalRounds() {
		return nil, ErrMatchOver
	}
	if cur := m.Current(); cur != nil && !cur.Submitted() {
		return nil, fmt.Errorf("trajguess: round %d not submitted", len(m.rounds))
	}
	rng := rand.New(rand.NewSource(m.rng.Int63()))
	r, err := NewRound(rng, m.cfg, m.difficulty, m.steps)
	if err != nil {
		return nil, err
	}
	m.rounds = append(m.rounds, r)
	return r, nil
}

// Submit scores the current round for the active player.
func (m *Match) Submit(elapsed float64) (Result, error) {
	r := m.Current()
	if r == nil {
		return Result{}, fmt.Errorf("trajguess: no round in progress")
	}
	if r.Submitted() {
		return Result{}, fmt.Errorf("trajguess: round %d already submitted", len(m.rounds))
	}

	res := r.Submit(elapsed, m.cfg.Decay())
	res.Round = len(m.rounds)
	r.result.Round = res.Round

	p := m.Active()
	p.Record(res)
	logger.Info("round finished",
		"round", res.RoundID,
		"player", p.Name,
		"steps", res.Steps,
		"similarity", fmt.Sprintf("%.3f", res.Similarity),
		"score", fmt.Sprintf("%.2f", res.Score),
		"elapsed", fmt.Sprintf("%.1fs", res.Elapsed),
	)
	return res, nil
}

// Leader returns the player with the highest total. Ties go to the earlier seat.
func (m *Match) Leader() *Player {
	best := m.players[0]
	for _, p := range m.players[1:] {
		if p.Total > best.Total {
			best = p
		}
	}
	return best
}
