// Package trajguess implements the trajectory guessing game: object A walks
// a random lattice path, object B walks relative to A, and the player draws
// where B actually went.
package trajguess

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trajguess/internal/config"
	"github.com/vovakirdan/trajguess/internal/core"
	"github.com/vovakirdan/trajguess/internal/registry"
	"github.com/vovakirdan/trajguess/internal/trajectory"
)

// Phase is the stage of the current round.
type Phase string

const (
	PhaseGuessing Phase = "guessing"
	PhaseRevealed Phase = "revealed"
	PhaseGameOver Phase = "game_over"
	PhaseFailed   Phase = "failed" // round generation failed
)

// Package-level settings shared by every game instance.
var (
	settingsMu sync.RWMutex
	gameConfig = config.DefaultConfig()
	logger     = log.New(io.Discard)
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.GameConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	gameConfig = cfg
}

// Config returns the configuration new games use.
func Config() config.GameConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return gameConfig
}

// SetLogger sets the logger for round events. nil discards them.
// Call it before games are started.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Variant identifies a registered game mode.
type Variant struct {
	ID         string
	Title      string
	Difficulty config.Difficulty
	Seats      int
}

// Variants lists the registered modes.
var Variants = []Variant{
	{ID: "trajguess", Title: "Trajectory Guess", Difficulty: config.DifficultySimple, Seats: 1},
	{ID: "trajguess_complex", Title: "Trajectory Guess (Hex)", Difficulty: config.DifficultyComplex, Seats: 1},
	{ID: "trajguess_duo", Title: "Trajectory Guess Duo", Difficulty: config.DifficultySimple, Seats: 2},
	{ID: "trajguess_duo_complex", Title: "Trajectory Guess Duo (Hex)", Difficulty: config.DifficultyComplex, Seats: 2},
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// Game is a playable match of the guessing game.
type Game struct {
	variant Variant
	cfg     config.GameConfig
	match   *Match

	tick       uint64
	guessTicks uint64 // ticks spent guessing in the current round
	tickRate   int

	phase   Phase
	paused  bool
	err     error
	pending []core.Result

	screenW int
	screenH int
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	if v.Seats < 1 {
		v.Seats = 1
	}
	return &Game{variant: v}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Reset starts a new match.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = Config()
	g.tick = 0
	g.guessTicks = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.err = nil
	g.pending = nil

	names := make([]string, g.variant.Seats)
	for i := range names {
		names[i] = cfg.PlayerName(i, fmt.Sprintf("P%d", i+1))
	}
	g.match = NewMatch(g.cfg, g.variant.Difficulty, cfg.Steps, cfg.Seed, names)
	g.startRound()
}

// Resize updates the screen size without restarting the match.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

func (g *Game) startRound() {
	if _, err := g.match.Next(); err != nil {
		g.err = err
		g.phase = PhaseFailed
		logger.Error("round generation failed", "game", g.variant.ID, "err", err)
		return
	}
	g.guessTicks = 0
	g.phase = PhaseGuessing
}

// Match returns the match in progress.
func (g *Game) Match() *Match {
	return g.match
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Elapsed returns the seconds spent guessing in the current round.
func (g *Game) Elapsed() float64 {
	return float64(g.guessTicks) / float64(g.tickRate)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.phase == PhaseGuessing && in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	switch g.phase {
	case PhaseGuessing:
		g.guessTicks++
		g.handleGuessInput(in)
	case PhaseRevealed:
		if in.Has(core.ActionConfirm) {
			if g.match.Done() {
				g.phase = PhaseGameOver
			} else {
				g.startRound()
			}
		}
	}

	return g.result()
}

func (g *Game) handleGuessInput(in core.InputFrame) {
	round := g.match.Current()
	guess := round.Guess()

	for _, a := range in.Sequence() {
		switch a {
		case core.ActionPlace:
			guess.Place()
		case core.ActionUndo:
			guess.Undo()
		case core.ActionConfirm:
			if guess.Full() {
				g.submit()
				return
			}
		default:
			if d, ok := directionFor(round.Set, a); ok {
				//nolint:errcheck // directionFor only returns valid directions
				guess.Move(d)
			}
		}
	}
}

func (g *Game) submit() {
	res, err := g.match.Submit(g.Elapsed())
	if err != nil {
		g.err = err
		return
	}
	g.phase = PhaseRevealed
	g.pending = append(g.pending, core.Result{
		ID:         res.RoundID,
		Player:     g.match.Active().Name,
		Steps:      res.Steps,
		Similarity: res.Similarity,
		Score:      res.Score,
		Elapsed:    res.Elapsed,
	})
}

func (g *Game) result() core.StepResult {
	out := core.StepResult{State: g.State(), Results: g.pending}
	g.pending = nil
	return out
}

// directionFor maps a cursor action to a lattice direction.
func directionFor(set trajectory.DirectionSet, a core.Action) (trajectory.Direction, bool) {
	if set == trajectory.Six {
		switch a {
		case core.ActionRight:
			return trajectory.East, true
		case core.ActionLeft:
			return trajectory.West, true
		case core.ActionUpRight:
			return trajectory.NorthEast, true
		case core.ActionUpLeft:
			return trajectory.NorthWest, true
		case core.ActionDownLeft:
			return trajectory.SouthWest, true
		case core.ActionDownRight:
			return trajectory.SouthEast, true
		}
		return 0, false
	}
	switch a {
	case core.ActionRight:
		return trajectory.Right, true
	case core.ActionUp:
		return trajectory.Up, true
	case core.ActionLeft:
		return trajectory.Left, true
	case core.ActionDown:
		return trajectory.Down, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.phase == PhaseGameOver || g.phase == PhaseFailed,
		Paused:   g.paused,
	}
	if g.match == nil {
		return st
	}
	st.Score = g.match.Active().Points()
	for _, p := range g.match.Players() {
		st.Players = append(st.Players, core.PlayerScore{Name: p.Name, Score: p.Points()})
	}
	return st
}
