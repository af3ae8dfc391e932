package match3

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newTestGame(t *testing.T, mode Mode, mutate func(*config.Match3Config)) *Game {
	t.Helper()
	cfg := config.DefaultMatch3Config()
	if mutate != nil {
		mutate(&cfg)
	}
	g := NewWithConfig(mode, cfg, config.DifficultyHard)
	g.Reset(testRuntime(42))
	return g
}

// hintSwapInput drags from the first swap the board offers to its partner.
func hintSwapInput(t *testing.T, g *Game) core.InputFrame {
	t.Helper()
	a, b, ok := g.Board().FindAnySwap()
	if !ok {
		t.Fatal("board has no possible move")
	}
	ax, ay := cellCenter(g.Layout(), a)
	bx, by := cellCenter(g.Layout(), b)
	return pointers(
		core.PointerEvent{Kind: core.PointerPress, X: ax, Y: ay},
		core.PointerEvent{Kind: core.PointerRelease, X: bx, Y: by},
	)
}

func runUntilIdle(t *testing.T, g *Game) {
	t.Helper()
	empty := core.NewInputFrame()
	for range 10000 {
		g.Step(empty)
		if !g.Machine().Busy() {
			return
		}
	}
	t.Fatal("game never settled")
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDClassic, IDMoves} {
		if !registry.Exists(id) {
			t.Errorf("%s not registered", id)
		}
	}
	g, err := registry.Create(IDMoves)
	if err != nil {
		t.Fatal(err)
	}
	if g.ID() != IDMoves || g.Title() != "Match-3 (Moves)" {
		t.Errorf("got %s / %s", g.ID(), g.Title())
	}
}

func TestResetBoardIsPlayable(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)

	if _, ok := g.Board().FindMatches(); ok {
		t.Error("fresh board has matches")
	}
	if !g.Board().HasPossibleMove() {
		t.Error("fresh board has no move")
	}
	if g.Visual().Len() != g.Board().Len() {
		t.Errorf("visual=%d board=%d", g.Visual().Len(), g.Board().Len())
	}
	if g.MovesLeft() != -1 {
		t.Errorf("classic MovesLeft = %d, want -1", g.MovesLeft())
	}

	g.Step(core.NewInputFrame())
	if g.State().GameOver {
		t.Error("game over right after reset")
	}
}

func TestProductiveTurnScores(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)

	g.Step(hintSwapInput(t, g))
	if !g.Machine().Busy() {
		t.Fatal("swap did not start")
	}
	runUntilIdle(t, g)

	if g.Score() < 3 {
		t.Errorf("score = %d, want at least 3", g.Score())
	}
	if g.Machine().Turns() != 1 {
		t.Errorf("turns = %d, want 1", g.Machine().Turns())
	}
}

func TestMovesModeRunsOut(t *testing.T) {
	g := newTestGame(t, ModeMoves, func(c *config.Match3Config) {
		c.Moves.Hard = 1
	})
	if g.MovesLeft() != 1 {
		t.Fatalf("MovesLeft = %d, want 1", g.MovesLeft())
	}

	g.Step(hintSwapInput(t, g))
	runUntilIdle(t, g)
	g.Step(core.NewInputFrame())

	if g.MovesLeft() != 0 {
		t.Errorf("MovesLeft = %d, want 0", g.MovesLeft())
	}
	if !g.State().GameOver {
		t.Error("game should end when moves run out")
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("snapshot state = %s", g.Snapshot().State)
	}
}

func TestIdleHint(t *testing.T) {
	g := newTestGame(t, ModeClassic, func(c *config.Match3Config) {
		c.HintDelaySeconds = 0.5
	})
	empty := core.NewInputFrame()

	for range 20 {
		g.Step(empty)
	}
	if _, ok := g.Hint(); ok {
		t.Fatal("hint shown too early")
	}
	for range 20 {
		g.Step(empty)
	}
	hint, ok := g.Hint()
	if !ok {
		t.Fatal("hint not shown after the delay")
	}
	a, b, _ := g.Board().FindAnySwap()
	if hint.A != a || hint.B != b {
		t.Errorf("hint = %+v, want %v %v", hint, a, b)
	}

	// Any input hides it again
	g.Step(keys(core.ActionDown))
	if _, ok := g.Hint(); ok {
		t.Error("input should hide the hint")
	}
}

func TestHintDisabled(t *testing.T) {
	g := newTestGame(t, ModeClassic, func(c *config.Match3Config) {
		c.HintDelaySeconds = 0
	})
	empty := core.NewInputFrame()
	for range 600 {
		g.Step(empty)
	}
	if _, ok := g.Hint(); ok {
		t.Error("idle hint shown while disabled")
	}

	g.Step(keys(core.ActionHint))
	if _, ok := g.Hint(); !ok {
		t.Error("hint key should show the hint")
	}
}

func TestPauseFreezes(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)

	g.Step(keys(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("pause did not toggle")
	}
	before := g.Board().Rows()
	g.Step(hintSwapInput(t, g))
	if g.Machine().Busy() {
		t.Error("swap accepted while paused")
	}
	if !reflect.DeepEqual(before, g.Board().Rows()) {
		t.Error("board changed while paused")
	}

	g.Step(keys(core.ActionPause))
	if g.State().Paused {
		t.Error("pause did not toggle back")
	}
}

func TestResizeTooSmall(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)

	g.Resize(20, 6)
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("state = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}
	screen := core.NewScreen(20, 6)
	g.Render(screen)
	if !strings.Contains(screen.String(), "small") {
		t.Errorf("too small message missing:\n%s", screen)
	}

	g.Resize(120, 50)
	if g.Snapshot().State != StatePlaying {
		t.Errorf("state = %s after growing", g.Snapshot().State)
	}
	l := g.Layout()
	for _, tile := range g.Visual().Tiles() {
		r := l.CellRect(tile.Cell)
		if tile.X != float64(r.X) || tile.Y != float64(r.Y) {
			t.Fatalf("tile %v not snapped to the new layout", tile.Cell)
		}
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, ModeMoves, nil)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Match-3 (Moves)", "Score: 0", "Moves: 20/20", "█", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestDeterminism(t *testing.T) {
	play := func() Snapshot {
		g := newTestGame(t, ModeClassic, nil)
		empty := core.NewInputFrame()
		for range 10 {
			g.Step(empty)
		}
		g.Step(hintSwapInput(t, g))
		for range 300 {
			g.Step(empty)
		}
		return g.Snapshot()
	}

	s1, s2 := play(), play()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if s1.Seed != 42 || s1.Tiles != 36 || len(s1.Board) != 6 {
		t.Errorf("unexpected snapshot %+v", s1)
	}
}
