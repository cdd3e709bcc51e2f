// trajguess is a terminal game about guessing where an object moving relative
// to another one ended up.
//
// Usage:
//
//	trajguess list              - List game modes
//	trajguess play <game>       - Play a mode
//	trajguess menu              - Pick modes interactively
//	trajguess generate          - Print one generated round
//	trajguess scores <game>     - Show high scores for a mode
//	trajguess users register    - Register a player name
//	trajguess serve             - Start SSH server for remote play
//	trajguess config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 30)
//	--seed <value>   - Set RNG seed for reproducible rounds
//	--db <path>      - Set database path (default: ~/.trajguess/scores.db)
//	--config <path>  - Use a custom game config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trajguess/internal/config"
	"github.com/vovakirdan/trajguess/internal/games/trajguess"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "trajguess",
	Short: "Trajectory Guess - infer where B went from A's path",
	Long: `Trajectory Guess shows the path of object A and the path of object B
relative to A. Reconstruct B's absolute path on the lattice, then submit
your guess. Matching cells score points; thinking time decays them.

Available commands:
  list      - Show all game modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  generate  - Print a generated round without playing
  scores    - View high scores and round history
  users     - Register and inspect players
  serve     - Start SSH server for remote play
  config    - Print the effective configuration

Examples:
  trajguess list
  trajguess play trajguess --steps 10
  trajguess play trajguess_duo_complex --user ana --p2 bo
  trajguess generate --difficulty complex --seed 7 --format yaml
  trajguess serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		trajguess.SetConfig(cfg)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.trajguess/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
