package config

import (
	_ "embed"
)

//go:embed defaults/trajguess.yaml
var defaultTrajguessYAML []byte

// DefaultConfig returns the hardcoded game configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Modes: ModesConfig{
			Simple: ModeConfig{
				Directions:   "four",
				MinSteps:     6,
				MaxSteps:     25,
				DefaultSteps: 8,
			},
			Complex: ModeConfig{
				Directions:   "six",
				MinSteps:     4,
				MaxSteps:     15,
				DefaultSteps: 6,
			},
		},
		Generator: GeneratorConfig{
			StartBound:     10,
			AvoidRevisit:   true,
			MaxAttempts:    16,
			DeadlockPolicy: "relax",
		},
		Composition: "delta",
		Scoring: ScoringConfig{
			Decay: 0.1,
		},
		Rounds: 5,
	}
}
