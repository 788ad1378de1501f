package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best results",
	Long: `Display the top 10 results for a mode ("solo" or "versus"; default solo),
followed by per-mode totals. For versus, recent matches are listed too.

Examples:
  blockfall scores
  blockfall scores versus`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	mode := "solo"
	if len(args) > 0 {
		mode = args[0]
	}
	if mode != "solo" && mode != "versus" {
		exitf("Error: unknown mode %q (want solo or versus)\n", mode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("Error opening database: %v\n", err)
	}
	defer store.Close()

	results, err := store.TopResults(mode, 10)
	if err != nil {
		exitf("Error retrieving results: %v\n", err)
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Run 'blockfall simulate --save' to record the first one!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-12s  %s\n", "Rank", "Score", "Lines", "Pieces", "Randomizer", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-12s  %s\n", "----", "-----", "-----", "------", "----------", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-10d  %-6d  %-6d  %-12s  %s\n", i+1, r.Score, r.Lines, r.Pieces, r.Randomizer,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetAllModeStats()
	if err == nil {
		if ms, ok := stats[mode]; ok {
			fmt.Println()
			fmt.Printf("Best: %d   Games: %d   Average: %.0f   Lines: %d\n", ms.HighScore, ms.GamesCount, ms.AvgScore, ms.TotalLines)
		}
	}

	if mode != "versus" {
		return
	}
	matches, err := store.RecentMatches(10)
	if err != nil {
		exitf("Error retrieving matches: %v\n", err)
	}
	fmt.Println()
	fmt.Println("Recent matches:")
	for _, m := range matches {
		winner := "draw"
		if m.Winner > 0 {
			winner = fmt.Sprintf("P%d", m.Winner)
		}
		fmt.Printf("  %-8d %-8d %-5s %-12s %d frames\n", m.Score1, m.Score2, winner, m.EndReason, m.Frames)
	}
}
