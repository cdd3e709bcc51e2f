// Package config loads and validates trajguess game settings.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/trajguess/internal/trajectory"
)

// ErrInvalid is returned by Validate for inconsistent settings.
var ErrInvalid = errors.New("config: invalid")

// GameConfig holds every tunable of the guessing game.
type GameConfig struct {
	Modes       ModesConfig     `yaml:"modes"`
	Generator   GeneratorConfig `yaml:"generator"`
	Composition string          `yaml:"composition"`
	Scoring     ScoringConfig   `yaml:"scoring"`
	Rounds      int             `yaml:"rounds"`
}

// ModesConfig holds per-difficulty settings.
type ModesConfig struct {
	Simple  ModeConfig `yaml:"simple"`
	Complex ModeConfig `yaml:"complex"`
}

// ModeConfig configures one difficulty.
type ModeConfig struct {
	Directions   string `yaml:"directions"`
	MinSteps     int    `yaml:"min_steps"`
	MaxSteps     int    `yaml:"max_steps"`
	DefaultSteps int    `yaml:"default_steps"`
}

// GeneratorConfig configures path generation.
type GeneratorConfig struct {
	StartBound     int     `yaml:"start_bound"`
	AvoidRevisit   bool    `yaml:"avoid_revisit"`
	MaxAttempts    int     `yaml:"max_attempts"`
	DeadlockPolicy string  `yaml:"deadlock_policy"`
	Window         float64 `yaml:"window"`
}

// ScoringConfig configures the time decay of round scores.
type ScoringConfig struct {
	Decay float64 `yaml:"decay"`
}

// Mode returns the settings for the given difficulty.
func (c GameConfig) Mode(d Difficulty) ModeConfig {
	if d == DifficultyComplex {
		return c.Modes.Complex
	}
	return c.Modes.Simple
}

// ClampSteps clamps n into the step range of the difficulty.
// Zero or negative n selects the mode's default step count.
func (c GameConfig) ClampSteps(d Difficulty, n int) int {
	m := c.Mode(d)
	if n <= 0 {
		n = m.DefaultSteps
		if n <= 0 {
			n = m.MinSteps
		}
	}
	if n < m.MinSteps {
		return m.MinSteps
	}
	if m.MaxSteps > 0 && n > m.MaxSteps {
		return m.MaxSteps
	}
	return n
}

// GeneratorOptions converts the configuration into generator options for d.
func (c GameConfig) GeneratorOptions(d Difficulty) (trajectory.Options, error) {
	set, err := trajectory.ParseDirectionSet(c.Mode(d).Directions)
	if err != nil {
		return trajectory.Options{}, fmt.Errorf("config: %s directions: %w", d, err)
	}
	policy, err := trajectory.ParseDeadlockPolicy(c.Generator.DeadlockPolicy)
	if err != nil {
		return trajectory.Options{}, fmt.Errorf("config: generator: %w", err)
	}

	opts := trajectory.Options{
		Set:          set,
		StartBound:   c.Generator.StartBound,
		AvoidRevisit: c.Generator.AvoidRevisit,
		MaxAttempts:  c.Generator.MaxAttempts,
		Policy:       policy,
	}
	if c.Generator.Window > 0 {
		opts.Window = trajectory.SquareWindow(c.Generator.Window)
	}
	return opts, nil
}

// CompositionMode returns the configured composition.
func (c GameConfig) CompositionMode() (trajectory.Composition, error) {
	mode, err := trajectory.ParseComposition(c.Composition)
	if err != nil {
		return trajectory.CompositionDelta, fmt.Errorf("config: composition: %w", err)
	}
	return mode, nil
}

// Decay returns the scoring decay. Zero disables the time penalty; a file
// that omits the key keeps the default from DefaultConfig.
func (c GameConfig) Decay() float64 {
	return c.Scoring.Decay
}

// Validate checks the configuration for inconsistent values.
func (c GameConfig) Validate() error {
	for _, d := range []Difficulty{DifficultySimple, DifficultyComplex} {
		m := c.Mode(d)
		if m.MinSteps < 1 {
			return fmt.Errorf("%w: %s min_steps must be at least 1", ErrInvalid, d)
		}
		if m.MaxSteps < m.MinSteps {
			return fmt.Errorf("%w: %s max_steps %d below min_steps %d", ErrInvalid, d, m.MaxSteps, m.MinSteps)
		}
		if _, err := c.GeneratorOptions(d); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if c.Generator.StartBound < 0 {
		return fmt.Errorf("%w: start_bound must not be negative", ErrInvalid)
	}
	if c.Generator.MaxAttempts < 1 {
		return fmt.Errorf("%w: max_attempts must be at least 1", ErrInvalid)
	}
	if c.Generator.Window < 0 {
		return fmt.Errorf("%w: window must not be negative", ErrInvalid)
	}
	if w := c.Generator.Window; w > 0 && w < float64(c.Generator.StartBound) {
		return fmt.Errorf("%w: window %.1f does not cover start_bound %d", ErrInvalid, w, c.Generator.StartBound)
	}
	if _, err := c.CompositionMode(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Scoring.Decay < 0 {
		return fmt.Errorf("%w: scoring decay must not be negative", ErrInvalid)
	}
	if c.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be at least 1", ErrInvalid)
	}
	return nil
}
