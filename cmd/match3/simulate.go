package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/sim"
)

var (
	flagSimGames    int
	flagSimTurns    int
	flagSimWorkers  int
	flagSimWidth    int
	flagSimHeight   int
	flagSimOut      string
	flagSimProgress bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play boards headlessly and print statistics",
	Long: `Generate boards and play them with the hint policy: every turn takes
the first productive swap. Prints score, chain and dead-board statistics.

Game i uses seed --seed + i, so runs are reproducible.

Examples:
  match3 simulate
  match3 simulate --games 10000 --turns 50 --workers 8
  match3 simulate --width 8 --height 8 --out report.json.zst`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 1000, "Number of boards to play")
	simulateCmd.Flags().IntVar(&flagSimTurns, "turns", 30, "Swaps per board")
	simulateCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Parallel workers (0 = all CPUs)")
	simulateCmd.Flags().IntVar(&flagSimWidth, "width", 0, "Board width (0 = default)")
	simulateCmd.Flags().IntVar(&flagSimHeight, "height", 0, "Board height (0 = default)")
	simulateCmd.Flags().StringVar(&flagSimOut, "out", "", "Write the full report as zstd-compressed JSON")
	simulateCmd.Flags().BoolVar(&flagSimProgress, "progress", true, "Show a progress bar")
}

func runSimulate(_ *cobra.Command, _ []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, used, err := sim.Run(ctx, sim.Config{
		Games:        flagSimGames,
		Turns:        flagSimTurns,
		Workers:      flagSimWorkers,
		Width:        flagSimWidth,
		Height:       flagSimHeight,
		Seed:         flagSeed,
		ShowProgress: flagSimProgress,
		Progress:     os.Stderr,
	})
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "Interrupted, reporting finished boards")
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(rep.Format(used))

	if flagSimOut == "" {
		return
	}
	f, err := os.Create(flagSimOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating report file: %v\n", err)
		os.Exit(1)
	}
	if err := rep.WriteCompressed(f); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Report written to %s\n", flagSimOut)
}
