package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Print the best runs of a mode with the seed that replays each one.

Examples:
  match3 scores match3
  match3 scores match3_moves --limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", storage.DefaultTopLimit, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	modeID := args[0]
	mode, err := registry.Create(modeID)
	if err != nil {
		return fmt.Errorf("unknown mode %q (run 'match3 list')", modeID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	entries, err := store.TopScores(modeID, flagScoresLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n\n", mode.Title())
	if len(entries) == 0 {
		fmt.Fprintf(out, "No scores recorded yet. Play 'match3 play %s' to set one.\n", modeID)
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Score", "Turns", "Chain", "Seed", "Date")
	for i, e := range entries {
		t.Row(
			strconv.Itoa(i+1),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Turns),
			strconv.Itoa(e.BestChain),
			strconv.FormatInt(e.Seed, 10),
			e.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	fmt.Fprintln(out, t.String())

	if st, err := store.GetGameStats(modeID); err == nil {
		fmt.Fprintf(out, "Games: %d   Average: %.1f   Longest chain: %d\n",
			st.GamesCount, st.AvgScore, st.BestChain)
	}
	return nil
}
