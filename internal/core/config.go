package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int      // Screen width in characters
	ScreenH  int      // Screen height in characters
	TickRate int      // Simulation ticks per second (default 30)
	Seed     int64    // RNG seed for deterministic gameplay
	Steps    int      // Requested steps per path, 0 selects the mode default
	Players  []string // Seat names; games fill missing seats with defaults
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// PlayerName returns the configured name for seat i, or fallback.
func (c RuntimeConfig) PlayerName(i int, fallback string) string {
	if i >= 0 && i < len(c.Players) && c.Players[i] != "" {
		return c.Players[i]
	}
	return fallback
}

// PlayerScore is one seat's running total.
type PlayerScore struct {
	Name  string
	Score int
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int           // Current score of the active player
	GameOver bool          // Whether the game has ended
	Paused   bool          // Whether the game is paused
	Players  []PlayerScore // Totals per seat, in seat order
}

// Result describes a finished round so the platform can persist it.
type Result struct {
	ID         string  // Unique round id
	Player     string  // Seat name of the player who guessed
	Steps      int     // Steps per path in the round
	Similarity float64 // Fraction of matching cells, 0..1
	Score      float64 // Time-decayed round score
	Elapsed    float64 // Seconds spent guessing
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any rounds finished during the tick.
type StepResult struct {
	State   GameState
	Results []Result
}
