package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every registered match-3 mode.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Fprintln(out, "No modes available.")
		return
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ID", "Title")
	for _, m := range modes {
		t.Row(m.ID, m.Title)
	}
	fmt.Fprintln(out, t.String())
	fmt.Fprintln(out, "Run 'match3 play <id>' to play a mode.")
}
