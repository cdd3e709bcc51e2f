package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/trajguess/internal/core"
	"github.com/vovakirdan/trajguess/internal/games/trajguess"
	"github.com/vovakirdan/trajguess/internal/platform/tui"
	"github.com/vovakirdan/trajguess/internal/registry"
	"github.com/vovakirdan/trajguess/internal/storage"
)

var (
	flagSteps int
	flagUser  string
	flagP2    string
	flagLog   string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game mode",
	Long: `Start playing the specified mode.

Each round shows A's path and B's path relative to A. B starts on the
marked cell; walk the cursor along where you think B went, place one cell
per step and submit when the guess is complete.

Controls:
  Arrows/WASD  - Move cursor (square lattice, left/right on hex)
  Q/E/Z/C      - Hex diagonals (up-left, up-right, down-left, down-right)
  Space        - Place the cursor cell
  Backspace/U  - Undo the last placed cell
  Enter        - Submit guess / next round
  P/Esc        - Pause
  R            - Restart (after game over)
  Ctrl+C       - Quit

Examples:
  trajguess play trajguess
  trajguess play trajguess_complex --steps 6
  trajguess play trajguess_duo --user ana --p2 bo
  trajguess play trajguess --config ./my-trajguess.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSteps, "steps", 0, "Steps per path (0 = mode default, clamped to the mode range)")
	playCmd.Flags().StringVar(&flagUser, "user", "", "Registered player name for seat one")
	playCmd.Flags().StringVar(&flagP2, "p2", "", "Player name for seat two in duo modes")
	playCmd.Flags().StringVar(&flagLog, "log", "~/.trajguess/trajguess.log", "Log file (empty disables logging)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'trajguess list' to see available games.")
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	players, err := seatNames(store)
	if err != nil {
		closeStore(store)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := openLogger(flagLog, "trajguess")
	if err != nil {
		closeStore(store)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	trajguess.SetLogger(logger)

	game, err := registry.Create(gameID)
	if err != nil {
		closeStore(store)
		closeLog()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	cfg.Players = players

	logger.Info("game started", "game", gameID, "players", players, "seed", cfg.Seed)
	runErr := tui.Run(game, store, cfg, logger)

	closeStore(store)
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// seatNames resolves the --user and --p2 flags.
func seatNames(store *storage.Store) ([]string, error) {
	p1, err := resolvePlayer(store, flagUser)
	if err != nil {
		return nil, err
	}
	players := []string{p1}
	if flagP2 != "" {
		p2, err := resolvePlayer(store, flagP2)
		if err != nil {
			return nil, err
		}
		players = append(players, p2)
	}
	return players, nil
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Steps:    flagSteps,
	}
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
