package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/semissileman/spacehunter/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded runs",
	Long: `Display the top recorded runs from the runs database.

Examples:
  spacehunter scores
  spacehunter scores --limit 25`,
	Args: cobra.NoArgs,
	RunE: runScoresCmd,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241"))
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	bestStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
)

func runScoresCmd(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open runs database: %w", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	fmt.Println(titleStyle.Render("Space Hunter - Best Runs"))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'spacehunter simulate' to record the first one.")
		return nil
	}

	header := fmt.Sprintf("  %-4s  %-10s  %-6s  %-8s  %-12s  %-10s  %s",
		"Rank", "Score", "Level", "Ticks", "Seed", "Outcome", "Date")
	fmt.Println(headerStyle.Render(header))

	for i, r := range runs {
		line := fmt.Sprintf("  %-4d  %-10d  %-6d  %-8d  %-12d  %-10s  %s",
			i+1, r.Score, r.Level, r.Ticks, r.Seed, r.Outcome,
			r.CreatedAt.Format("2006-01-02 15:04"))
		style := rowStyle
		if i == 0 {
			style = bestStyle
		}
		fmt.Println(style.Render(line))
	}

	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f\n",
			stats.RunsCount, stats.BestScore, stats.AvgScore)
	}
	return nil
}
