package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hue-arcade/internal/registry"
	"github.com/vovakirdan/hue-arcade/internal/storage"
)

var (
	flagClearScores bool
	flagAllScores   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game, or every run with --all.
Without a game, shows a summary of every game played plus recent runs.

Examples:
  arcade scores
  arcade scores colorrun
  arcade scores colorrun --all
  arcade scores shield --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all stored runs for the game")
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "List every stored run instead of the top 10")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClearScores || flagAllScores {
			return fmt.Errorf("--clear and --all need a game")
		}
		return printSummary(store)
	}

	gameID := args[0]
	info, ok := registry.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "game", gameID)
		return nil
	}

	return printGameScores(store, info)
}

func printGameScores(store *storage.Store, info registry.GameInfo) error {
	gameID := info.ID
	var scores []storage.ScoreEntry
	var err error
	if flagAllScores {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-7s  %-6s  %s\n", "Rank", "Score", "Level", "Time", "Date")
	fmt.Printf("  %-4s  %-10s  %-7s  %-6s  %s\n", "----", "-----", "-----", "----", "----")

	for i, entry := range scores {
		score := fmt.Sprintf("%d", entry.Score)
		if entry.Won {
			score += " *"
		}
		fmt.Printf("  %-4d  %-10s  %-7s  %-6s  %s\n",
			i+1, score, levelName(entry.Difficulty), shortDuration(entry.Duration),
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Printf("Best: %d  Games: %d  Wins: %d  Avg: %.0f  Longest: %s\n",
		stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore, shortDuration(stats.LongestRun))
	return nil
}

func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println("Games played:")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-5s  %-8s  %s\n", "Game", "Games", "Wins", "Best", "Last played")
	for _, id := range ids {
		gs := all[id]
		fmt.Printf("  %-10s  %-6d  %-5d  %-8d  %s\n",
			id, gs.GamesCount, gs.Wins, gs.HighScore, gs.LastPlayed.Format("2006-01-02 15:04"))
	}

	recent, err := store.RecentRuns(5)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Recent runs:")
	for _, r := range recent {
		fmt.Printf("  %-10s  %-8d  %-7s  %s\n",
			r.GameID, r.Score, levelName(r.Difficulty), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func levelName(d string) string {
	if d == "" {
		return "default"
	}
	return d
}

func shortDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Second).String()
}
