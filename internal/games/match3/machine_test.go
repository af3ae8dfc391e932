package match3

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/anim"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
	"github.com/vovakirdan/tui-match3/internal/games/match3/visual"
)

// swapRows makes a row-0 match when (2,0) and (2,1) are swapped.
var swapRows = []string{
	"RRGBYP",
	"BYRORG",
	"PORGBY",
	"RGBYPO",
	"BYPORG",
	"PORGBY",
}

const frame = 1.0 / 60

func newTestMachine(t *testing.T, rows []string) (*Machine, *board.Board, *visual.Board, *anim.Engine) {
	t.Helper()
	b := board.FromRows(rows, 7)
	if b == nil {
		t.Fatal("bad fixture")
	}
	l := visual.ComputeLayout(80, 40, b.Width(), b.Height(), hudRows)
	vb := visual.New(visual.DefaultTimings())
	vb.BuildFromBoard(b, l)
	eng := anim.NewEngine()
	return NewMachine(b, vb, eng), b, vb, eng
}

// settle drives frames until the machine is idle and quiet.
func settle(t *testing.T, m *Machine, eng *anim.Engine) int {
	t.Helper()
	for i := 0; i < 10000; i++ {
		eng.Update(frame)
		m.Step()
		if !m.Busy() {
			return i + 1
		}
	}
	t.Fatal("machine never settled")
	return 0
}

func assertMirror(t *testing.T, b *board.Board, vb *visual.Board) {
	t.Helper()
	if vb.Len() != b.Len() {
		t.Fatalf("visual has %d tiles, board has %d cells", vb.Len(), b.Len())
	}
	l := vb.Layout()
	seen := map[board.Coord]bool{}
	for _, tile := range vb.Tiles() {
		if seen[tile.Cell] {
			t.Fatalf("two tiles at %v", tile.Cell)
		}
		seen[tile.Cell] = true
		if tile.Type != b.Get(tile.Cell) {
			t.Errorf("tile at %v is %v, board has %v", tile.Cell, tile.Type, b.Get(tile.Cell))
		}
		r := l.CellRect(tile.Cell)
		if tile.X != float64(r.X) || tile.Y != float64(r.Y) {
			t.Errorf("tile at %v rests at (%v,%v), want (%d,%d)", tile.Cell, tile.X, tile.Y, r.X, r.Y)
		}
		if tile.Alpha != 1 || tile.ScaleX != 1 || tile.ScaleY != 1 {
			t.Errorf("tile at %v not at rest: %+v", tile.Cell, tile)
		}
	}
}

func TestTransitionTableComplete(t *testing.T) {
	for s := StateIdle; s <= StateCascadeCheck; s++ {
		if transitions[s] == nil {
			t.Errorf("state %v has no transition", s)
		}
		if s.String() == "unknown" {
			t.Errorf("state %d has no name", s)
		}
	}
}

func TestRequestSwapRejectsInvalid(t *testing.T) {
	m, b, _, eng := newTestMachine(t, swapRows)
	orig := b.Clone()

	tests := []struct {
		name string
		a, c board.Coord
	}{
		{"non-adjacent far corner", board.C(0, 0), board.C(5, 5)},
		{"diagonal", board.C(0, 0), board.C(1, 1)},
		{"same cell", board.C(2, 2), board.C(2, 2)},
		{"out of bounds", board.C(5, 0), board.C(6, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if m.RequestSwap(tc.a, tc.c) {
				t.Error("swap should be rejected")
			}
			if !b.Equal(orig) {
				t.Error("rejected swap mutated the grid")
			}
			if m.State() != StateIdle || eng.Len() != 0 {
				t.Error("rejected swap started a turn")
			}
		})
	}
}

func TestUnproductiveSwapReverts(t *testing.T) {
	m, b, vb, eng := newTestMachine(t, swapRows)
	orig := b.Clone()

	if !m.RequestSwap(board.C(3, 0), board.C(4, 0)) {
		t.Fatal("valid swap rejected")
	}
	if m.State() != StateSwapAnim {
		t.Fatalf("state = %v, want swap", m.State())
	}

	// Gated while the swap plays
	eng.Update(frame)
	m.Step()
	if m.State() != StateSwapAnim {
		t.Errorf("state advanced before the swap finished: %v", m.State())
	}
	if m.RequestSwap(board.C(0, 0), board.C(0, 1)) {
		t.Error("second swap accepted while busy")
	}

	settle(t, m, eng)

	if !b.Equal(orig) {
		t.Errorf("board not reverted:\n%s", b)
	}
	if m.Score() != 0 || m.Turns() != 0 {
		t.Errorf("score=%d turns=%d after revert", m.Score(), m.Turns())
	}
	assertMirror(t, b, vb)
}

func TestProductiveSwapResolves(t *testing.T) {
	m, b, vb, eng := newTestMachine(t, swapRows)

	if !m.RequestSwap(board.C(2, 0), board.C(2, 1)) {
		t.Fatal("valid swap rejected")
	}

	// Run until the first clear starts and check the literal score formula
	sawFade := false
	for i := 0; i < 1000 && !sawFade; i++ {
		eng.Update(frame)
		m.Step()
		sawFade = m.State() == StateFadeMatches
	}
	if !sawFade {
		t.Fatal("never reached the fade state")
	}
	if m.LastGain() != 3 || m.Score() != 3 {
		t.Errorf("first step gain=%d score=%d, want 3 (3 cells x 1 group)", m.LastGain(), m.Score())
	}
	if m.Chain() != 1 {
		t.Errorf("chain = %d, want 1", m.Chain())
	}

	settle(t, m, eng)

	if m.State() != StateIdle {
		t.Errorf("state = %v, want idle", m.State())
	}
	if m.Turns() != 1 {
		t.Errorf("turns = %d, want 1", m.Turns())
	}
	if m.BestChain() < 1 || m.Score() < 3 {
		t.Errorf("best chain=%d score=%d", m.BestChain(), m.Score())
	}
	if m.Chain() < maxCascadeSteps {
		if _, ok := b.FindMatches(); ok {
			t.Errorf("board left with matches:\n%s", b)
		}
	}
	assertMirror(t, b, vb)
}

func TestStateSequence(t *testing.T) {
	m, _, _, eng := newTestMachine(t, swapRows)
	m.RequestSwap(board.C(2, 0), board.C(2, 1))

	var seq []State
	last := m.State()
	seq = append(seq, last)
	for i := 0; i < 10000 && m.Busy(); i++ {
		eng.Update(frame)
		m.Step()
		if m.State() != last {
			last = m.State()
			seq = append(seq, last)
		}
	}

	// The first observed phases are always swap, fade, drop.
	want := []State{StateSwapAnim, StateFadeMatches, StateDropAndSpawn}
	if len(seq) < len(want)+1 {
		t.Fatalf("sequence too short: %v", seq)
	}
	for i, s := range want {
		if seq[i] != s {
			t.Fatalf("sequence = %v, want prefix %v", seq, want)
		}
	}
	if seq[len(seq)-1] != StateIdle {
		t.Errorf("sequence ends in %v", seq[len(seq)-1])
	}
	for i := 3; i < len(seq)-1; i++ {
		if seq[i] != StateFadeMatches && seq[i] != StateDropAndSpawn {
			t.Errorf("unexpected cascade phase %v in %v", seq[i], seq)
		}
	}
}
