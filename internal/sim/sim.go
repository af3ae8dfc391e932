// Package sim plays match-3 boards headlessly with a greedy hint policy
// and aggregates the results into a report.
package sim

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
)

// Config controls a simulation run.
type Config struct {
	Games        int   // Number of boards to play
	Turns        int   // Productive swaps attempted per board
	Workers      int   // Parallel workers, 0 means GOMAXPROCS
	Width        int   // Board width, 0 means the board default
	Height       int   // Board height, 0 means the board default
	Seed         int64 // Game i is generated from Seed+i
	ShowProgress bool
	Progress     io.Writer // Progress bar output, nil means stderr
}

// GameResult is the outcome of one simulated board.
type GameResult struct {
	Seed      int64 `json:"seed"`
	Score     int   `json:"score"`
	Turns     int   `json:"turns"`
	BestChain int   `json:"best_chain"`
	Removed   int   `json:"removed"`
	Dead      bool  `json:"dead"` // Ran out of moves before Turns
}

var (
	ErrNoGames = errors.New("sim: games must be > 0")
	ErrNoTurns = errors.New("sim: turns must be > 0")
)

// Run plays cfg.Games boards in parallel and returns the aggregated report
// and the wall time used. Cancelling ctx stops workers between games; the
// report then covers the finished games and the context error is returned.
func Run(ctx context.Context, cfg Config) (*Report, time.Duration, error) {
	if cfg.Games < 1 {
		return nil, 0, ErrNoGames
	}
	if cfg.Turns < 1 {
		return nil, 0, ErrNoTurns
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, cfg.Games)

	bar := pb.StartNew(cfg.Games)
	switch {
	case !cfg.ShowProgress:
		bar.SetWriter(io.Discard)
	case cfg.Progress != nil:
		bar.SetWriter(cfg.Progress)
	}

	results := make([]GameResult, cfg.Games)
	done := make([]bool, cfg.Games)
	jobs := make(chan int, workers)

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = PlayGame(cfg.Width, cfg.Height, cfg.Seed+int64(i), cfg.Turns)
				done[i] = true
				bar.Increment()
			}
		}()
	}

	var runErr error
feed:
	for i := range cfg.Games {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	finished := results[:0:0]
	for i, ok := range done {
		if ok {
			finished = append(finished, results[i])
		}
	}
	return NewReport(cfg.Turns, finished), used, runErr
}

// PlayGame generates a board from seed and plays up to turns hinted swaps.
// The game is dead when no productive swap is left.
func PlayGame(w, h int, seed int64, turns int) GameResult {
	b := board.New(w, h)
	b.GenerateInitial(seed)

	res := GameResult{Seed: seed}
	for res.Turns < turns {
		a, c, ok := b.FindAnySwap()
		if !ok {
			res.Dead = true
			break
		}
		r, ok := b.TrySwapAndResolve(a, c)
		if !ok {
			// FindAnySwap only returns productive swaps
			res.Dead = true
			break
		}
		res.Turns++
		res.Score += r.Score
		res.Removed += r.Removed
		res.BestChain = max(res.BestChain, r.Steps)
	}
	return res
}
