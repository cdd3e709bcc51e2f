package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/trajguess/internal/config"
	"github.com/vovakirdan/trajguess/internal/games/trajguess"
)

var (
	flagDifficulty string
	flagGenSteps   int
	flagFormat     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print one generated round without playing",
	Long: `Generate a round (reference path A, relative path B, actual path B)
and print it. The same --seed always produces the same round.

Examples:
  trajguess generate
  trajguess generate --difficulty complex --steps 6 --seed 42
  trajguess generate --format yaml > round.yaml`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "simple", "Difficulty: simple (square lattice) or complex (hex lattice)")
	generateCmd.Flags().IntVar(&flagGenSteps, "steps", 0, "Steps per path (0 = mode default)")
	generateCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or yaml")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	d, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	if flagFormat != "text" && flagFormat != "yaml" {
		return fmt.Errorf("unknown format %q (want text or yaml)", flagFormat)
	}

	trajguess.SetLogger(stderrLogger("trajguess"))

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	round, err := trajguess.NewRound(rand.New(rand.NewSource(seed)), trajguess.Config(), d, flagGenSteps)
	if err != nil {
		return err
	}

	export := round.Export()
	if flagFormat == "yaml" {
		data, err := yaml.Marshal(export)
		if err != nil {
			return fmt.Errorf("cannot encode round: %w", err)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "# seed %d\n%s", seed, data)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seed %d\n%s", seed, export.Text())
	return nil
}
