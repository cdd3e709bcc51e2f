package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trajguess/internal/registry"
	"github.com/vovakirdan/trajguess/internal/storage"
)

var flagRounds bool

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game mode",
	Long: `Display the top 10 match scores for the specified mode, with
aggregate statistics. With --rounds, list the most recent rounds instead.

Examples:
  trajguess scores trajguess
  trajguess scores trajguess_complex --rounds`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRounds, "rounds", false, "Show recent rounds instead of match scores")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'trajguess list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRounds {
		if err := printRounds(store, gameID, title); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		}
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'trajguess play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "----", "------", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-8d  %s\n", i+1, entry.Player, entry.Score, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Matches: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
		if stats.RoundsCount > 0 {
			fmt.Printf("Rounds: %d  Average match: %.0f%%\n", stats.RoundsCount, stats.AvgSimilarity*100)
		}
	}
}

func printRounds(store *storage.Store, gameID, title string) error {
	rounds, err := store.RecentRounds(gameID, "", 20)
	if err != nil {
		return err
	}

	fmt.Printf("Recent Rounds - %s\n", title)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-5s  %-6s  %-7s  %-7s  %s\n", "Player", "Steps", "Match", "Score", "Time", "Date")
	for _, r := range rounds {
		fmt.Printf("  %-16s  %-5d  %5.0f%%  %-7.1f  %6.1fs  %s\n",
			r.Player, r.Steps, r.Similarity*100, r.Score, r.Elapsed, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
