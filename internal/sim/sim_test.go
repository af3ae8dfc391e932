package sim_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/sim"
)

func TestRunValidates(t *testing.T) {
	_, _, err := sim.Run(context.Background(), sim.Config{Games: 0, Turns: 5})
	assert.ErrorIs(t, err, sim.ErrNoGames)

	_, _, err = sim.Run(context.Background(), sim.Config{Games: 3, Turns: 0})
	assert.ErrorIs(t, err, sim.ErrNoTurns)
}

func TestPlayGameDeterministic(t *testing.T) {
	a := sim.PlayGame(6, 6, 99, 20)
	b := sim.PlayGame(6, 6, 99, 20)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(99), a.Seed)
	assert.LessOrEqual(t, a.Turns, 20)
	if !a.Dead {
		assert.Equal(t, 20, a.Turns)
	}
	if a.Turns > 0 {
		assert.GreaterOrEqual(t, a.Score, 3*a.Turns, "every turn clears at least one run of three")
		assert.GreaterOrEqual(t, a.BestChain, 1)
		assert.GreaterOrEqual(t, a.Removed, 3*a.Turns)
	}
}

func TestRunMatchesSequentialPlay(t *testing.T) {
	cfg := sim.Config{Games: 12, Turns: 15, Workers: 4, Seed: 1000}
	rep, _, err := sim.Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, rep.Results, 12)

	for i, got := range rep.Results {
		want := sim.PlayGame(0, 0, cfg.Seed+int64(i), cfg.Turns)
		assert.Equal(t, want, got, "game %d", i)
	}

	// Worker count must not change the outcome
	single, _, err := sim.Run(context.Background(), sim.Config{Games: 12, Turns: 15, Workers: 1, Seed: 1000})
	require.NoError(t, err)
	assert.Equal(t, rep.Results, single.Results)
	assert.Equal(t, rep.MeanScore, single.MeanScore)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, _, err := sim.Run(ctx, sim.Config{Games: 1000, Turns: 10, Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, rep)
	assert.Less(t, rep.Games, 1000)
}

func TestNewReportAggregates(t *testing.T) {
	results := []sim.GameResult{
		{Seed: 3, Score: 30, Turns: 10, BestChain: 2, Removed: 30},
		{Seed: 1, Score: 10, Turns: 5, BestChain: 1, Removed: 12, Dead: true},
		{Seed: 2, Score: 20, Turns: 10, BestChain: 4, Removed: 21},
	}
	rep := sim.NewReport(10, results)

	assert.Equal(t, 3, rep.Games)
	assert.InDelta(t, 20.0, rep.MeanScore, 1e-9)
	assert.InDelta(t, 10.0, rep.StdScore, 1e-9)
	assert.Equal(t, 30, rep.BestScore)
	assert.Equal(t, 4, rep.BestChain)
	assert.Equal(t, 1, rep.DeadBoards)
	assert.InDelta(t, 1.0/3, rep.DeadRate(), 1e-9)
	assert.Equal(t, int64(63), rep.Removed)
	assert.Equal(t, 20.0, rep.P50Score)
	assert.Equal(t, 30.0, rep.P99Score)

	seeds := []int64{rep.Results[0].Seed, rep.Results[1].Seed, rep.Results[2].Seed}
	assert.Equal(t, []int64{1, 2, 3}, seeds)
}

func TestNewReportEmpty(t *testing.T) {
	rep := sim.NewReport(5, nil)
	assert.Equal(t, 0, rep.Games)
	assert.Zero(t, rep.MeanScore)
	assert.Zero(t, rep.DeadRate())
}

func TestFormat(t *testing.T) {
	rep := sim.NewReport(10, []sim.GameResult{{Seed: 1, Score: 12345, Turns: 10, BestChain: 3}})
	out := rep.Format(0)

	assert.Contains(t, out, "match-3 simulation")
	assert.Contains(t, out, "12,345", "numbers use grouping")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for _, l := range lines {
		assert.Equal(t, len(lines[0]), len(l), "row %q is misaligned", l)
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	rep, _, err := sim.Run(context.Background(), sim.Config{Games: 4, Turns: 5, Seed: 7})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteCompressed(&buf))

	got, err := sim.ReadCompressed(&buf)
	require.NoError(t, err)
	assert.Equal(t, rep, got)
}
