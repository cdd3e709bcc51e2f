package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trajguess/internal/storage"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Register and inspect players",
}

var usersRegisterCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Register a player name",
	Long: `Register a player so their match totals raise a personal high score.
Names are trimmed and may be up to 32 characters.

Examples:
  trajguess users register ana
  trajguess play trajguess --user ana`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		u, err := store.RegisterUser(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s.\n", u.Name)
		return nil
	},
}

var usersShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a player's high score and recent rounds",
	Long: `Show a registered player. Without a name, shows the player for this
machine.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		name := localPlayer()
		if len(args) == 1 {
			name = args[0]
		}
		u, err := store.GetUser(name)
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("%w: %s", storage.ErrUserNotFound, name)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", u.Name)
		fmt.Fprintf(out, "  registered  %s\n", u.CreatedAt.Format("2006-01-02"))
		fmt.Fprintf(out, "  high score  %.0f\n", u.HighScore)

		rounds, err := store.RecentRounds("", u.Name, 10)
		if err != nil {
			return err
		}
		if len(rounds) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  %-22s  %-5s  %-6s  %-7s  %s\n", "Game", "Steps", "Match", "Score", "Time")
		for _, r := range rounds {
			fmt.Fprintf(out, "  %-22s  %-5d  %5.0f%%  %-7.1f  %6.1fs\n",
				r.GameID, r.Steps, r.Similarity*100, r.Score, r.Elapsed)
		}
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersRegisterCmd)
	usersCmd.AddCommand(usersShowCmd)
}
