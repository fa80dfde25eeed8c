package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/slide-arcade/internal/games/sliding"
	"github.com/vovakirdan/slide-arcade/internal/platform/tui"
	"github.com/vovakirdan/slide-arcade/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresPlayer      string
	flagScoresInteractive bool
	flagScoresClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best results",
	Long: `Display the best solved puzzles, fewest moves first and fastest on ties.

Examples:
  slide scores
  slide scores --limit 5
  slide scores --player alice
  slide scores -i          # interactive table
  slide scores --clear     # delete all results`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show one player's latest results instead")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse results in an interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded results")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		exitf("opening results database: %v", err)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearResults(sliding.GameID); err != nil {
			exitf("%v", err)
		}
		fmt.Println("All results deleted.")

	case flagScoresInteractive:
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			exitf("%v", err)
		}

	case flagScoresPlayer != "":
		results, err := store.PlayerResults(flagScoresPlayer, flagScoresLimit)
		if err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Latest results - %s\n\n", flagScoresPlayer)
		printResults(results)

	default:
		results, err := store.BestResults(sliding.GameID, flagScoresLimit)
		if err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Best results - Sliding Puzzle\n\n")
		printResults(results)
		if len(results) > 0 {
			printStats(store)
		}
	}
}

func printResults(results []storage.Result) {
	if len(results) == 0 {
		fmt.Println("No puzzles solved yet.")
		fmt.Println()
		fmt.Println("Play 'slide play' to set the first result!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-5s  %-6s  %s\n", "Rank", "Player", "Moves", "Time", "Date")
	fmt.Printf("  %-4s  %-16s  %-5s  %-6s  %s\n", "----", "------", "-----", "----", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-16s  %-5d  %-6s  %s\n",
			i+1, r.Player, r.Moves, formatDuration(r), r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printStats(store *storage.Store) {
	stats, err := store.Stats(sliding.GameID)
	if err != nil {
		logger.Warn("could not load stats", "error", err)
		return
	}
	fmt.Println()
	fmt.Printf("Solved: %d  Best: %d moves  Average: %.1f moves\n",
		stats.Solved, stats.BestMoves, stats.AvgMoves)
}

func formatDuration(r storage.Result) string {
	secs := int(r.Duration.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
