package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/httpapi"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve scores and boards as JSON",
	Long: `Start a read-only HTTP API.

Endpoints:
  GET /healthz
  GET /api/games
  GET /api/scores/{mode}?limit=N
  GET /api/stats
  GET /api/boards/{seed}?width=W&height=H

Examples:
  match3 api
  match3 api --addr 127.0.0.1:9090 --db ./scores.db`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runAPI(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3-api",
	})

	var scores httpapi.ScoreSource
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		scores = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpapi.New(scores, logger).ListenAndServe(ctx, flagAPIAddr); err != nil {
		logger.Error("server error", "error", err)
		stop()
		os.Exit(1)
	}
}
