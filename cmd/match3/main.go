// match3 is a terminal match-3 game with a local menu, an SSH server, a
// read-only HTTP API and a headless simulator.
//
// Usage:
//
//	match3 list              - List available modes
//	match3 play [mode]       - Play a mode (default: match3)
//	match3 menu              - Start menu to pick a mode interactively
//	match3 serve             - Start SSH server for remote play
//	match3 scores <mode>     - Show high scores for a mode
//	match3 simulate          - Play boards headlessly and print statistics
//	match3 api               - Serve scores and boards as JSON
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.match3/scores.db)
//	--config <path>       - Custom match3.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - Swap tiles in your terminal",
	Long: `Match-3 is a terminal puzzle game. Swap neighbouring tiles to line up
three or more of the same colour, then watch the board cascade.

Available commands:
  list      - Show all available modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Play boards headlessly and print statistics
  api       - Serve scores and boards over HTTP

Examples:
  match3 play
  match3 play match3_moves --difficulty hard
  match3 menu
  match3 serve --ssh :2222
  match3 simulate --games 1000 --turns 30`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match3.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(apiCmd)
}

// applyGameFlags pushes --config and --difficulty into the game package and
// returns the resolved preset.
func applyGameFlags() config.DifficultyPreset {
	match3.SetConfigPath(flagConfig)
	match3.SetDifficultyPreset(flagDifficulty)
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok && flagDifficulty != "" {
		fmt.Fprintf(os.Stderr, "Warning: unknown difficulty %q, using %s\n", flagDifficulty, preset)
	}
	return preset
}
