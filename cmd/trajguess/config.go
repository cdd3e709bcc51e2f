package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trajguess/internal/config"
	"github.com/vovakirdan/trajguess/internal/games/trajguess"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the configuration in use as YAML, after applying the search order:
--config, ~/.trajguess/configs/trajguess.yaml, ./configs/trajguess.yaml,
then the built-in defaults. The output is a valid config file.

Examples:
  trajguess config > ~/.trajguess/configs/trajguess.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		data, err := config.Marshal(trajguess.Config())
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}
