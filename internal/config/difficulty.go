package config

import (
	"fmt"
	"strings"
)

// Difficulty selects the lattice and step range of a round.
type Difficulty string

const (
	DifficultySimple  Difficulty = "simple"  // four-way lattice
	DifficultyComplex Difficulty = "complex" // hex lattice
)

// ParseDifficulty parses a difficulty name. Empty selects simple.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultySimple:
		return DifficultySimple, nil
	case DifficultyComplex:
		return DifficultyComplex, nil
	default:
		return DifficultySimple, fmt.Errorf("config: unknown difficulty %q (want simple or complex)", s)
	}
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	if d == "" {
		return string(DifficultySimple)
	}
	return string(d)
}
