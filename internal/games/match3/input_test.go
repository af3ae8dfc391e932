package match3

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
	"github.com/vovakirdan/tui-match3/internal/games/match3/visual"
)

func keys(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func pointers(evs ...core.PointerEvent) core.InputFrame {
	in := core.NewInputFrame()
	for _, ev := range evs {
		in.AddPointer(ev)
	}
	return in
}

func cellCenter(l visual.Layout, c board.Coord) (int, int) {
	r := l.CellRect(c)
	return r.X + r.W/2, r.Y + r.H/2
}

func TestSelectorCursorClamps(t *testing.T) {
	s := NewSelector(6, 6)
	l := visual.ComputeLayout(80, 24, 6, 6, hudRows)

	s.Handle(keys(core.ActionUp), l)
	s.Handle(keys(core.ActionLeft), l)
	if s.Cursor() != board.C(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", s.Cursor())
	}

	for range 10 {
		s.Handle(keys(core.ActionRight), l)
		s.Handle(keys(core.ActionDown), l)
	}
	if s.Cursor() != board.C(5, 5) {
		t.Errorf("cursor = %v, want (5,5)", s.Cursor())
	}
}

func TestSelectorKeyboardSwap(t *testing.T) {
	s := NewSelector(6, 6)
	l := visual.ComputeLayout(80, 24, 6, 6, hudRows)

	s.Handle(keys(core.ActionDown), l)
	if _, ok := s.Handle(keys(core.ActionConfirm), l); ok {
		t.Fatal("confirm alone should not swap")
	}
	if sel, ok := s.Selected(); !ok || sel != board.C(0, 1) {
		t.Fatalf("selected = %v %v, want (0,1)", sel, ok)
	}

	sw, ok := s.Handle(keys(core.ActionRight), l)
	if !ok {
		t.Fatal("arrow after select should swap")
	}
	if sw.A != board.C(0, 1) || sw.B != board.C(1, 1) {
		t.Errorf("swap = %+v", sw)
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection should clear after swap")
	}
}

func TestSelectorKeyboardEdgeAndCancel(t *testing.T) {
	s := NewSelector(6, 6)
	l := visual.ComputeLayout(80, 24, 6, 6, hudRows)

	s.Handle(keys(core.ActionConfirm), l)
	if _, ok := s.Handle(keys(core.ActionUp), l); ok {
		t.Error("swap off the top edge should be ignored")
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection should clear after an edge arrow")
	}

	s.Handle(keys(core.ActionConfirm), l)
	s.Handle(keys(core.ActionBack), l)
	if _, ok := s.Selected(); ok {
		t.Error("back should cancel the selection")
	}

	// Confirm twice on the same cell toggles off
	s.Handle(keys(core.ActionConfirm), l)
	s.Handle(keys(core.ActionConfirm), l)
	if _, ok := s.Selected(); ok {
		t.Error("second confirm should deselect")
	}
}

func TestSelectorDrag(t *testing.T) {
	l := visual.ComputeLayout(80, 24, 6, 6, hudRows)
	from := board.C(2, 2)
	x, y := cellCenter(l, from)

	tests := []struct {
		name   string
		dx, dy int
		want   board.Coord
	}{
		{"right", l.CellW, 0, board.C(3, 2)},
		{"left", -l.CellW, 0, board.C(1, 2)},
		{"down", 0, l.CellH, board.C(2, 3)},
		{"up", 0, -l.CellH, board.C(2, 1)},
		{"dominant axis", l.CellW, 1, board.C(3, 2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSelector(6, 6)
			sw, ok := s.Handle(pointers(
				core.PointerEvent{Kind: core.PointerPress, X: x, Y: y},
				core.PointerEvent{Kind: core.PointerRelease, X: x + tc.dx, Y: y + tc.dy},
			), l)
			if !ok {
				t.Fatal("drag should swap")
			}
			if sw.A != from || sw.B != tc.want {
				t.Errorf("swap = %+v, want %v -> %v", sw, from, tc.want)
			}
		})
	}
}

func TestSelectorDragOffBoardIgnored(t *testing.T) {
	l := visual.ComputeLayout(80, 24, 6, 6, hudRows)
	s := NewSelector(6, 6)
	x, y := cellCenter(l, board.C(0, 0))

	_, ok := s.Handle(pointers(
		core.PointerEvent{Kind: core.PointerPress, X: x, Y: y},
		core.PointerEvent{Kind: core.PointerRelease, X: x - l.CellW, Y: y},
	), l)
	if ok {
		t.Error("drag toward a missing neighbor should not swap")
	}
}

func TestSelectorTapSelectsThenSwaps(t *testing.T) {
	l := visual.ComputeLayout(80, 24, 6, 6, hudRows)
	s := NewSelector(6, 6)

	tap := func(c board.Coord) (Swap, bool) {
		x, y := cellCenter(l, c)
		return s.Handle(pointers(
			core.PointerEvent{Kind: core.PointerPress, X: x, Y: y},
			core.PointerEvent{Kind: core.PointerRelease, X: x, Y: y},
		), l)
	}

	if _, ok := tap(board.C(1, 1)); ok {
		t.Fatal("first tap should only select")
	}
	if sel, ok := s.Selected(); !ok || sel != board.C(1, 1) {
		t.Fatalf("selected = %v %v", sel, ok)
	}

	// A far tap moves the selection
	if _, ok := tap(board.C(4, 4)); ok {
		t.Fatal("non-adjacent tap should not swap")
	}
	sw, ok := tap(board.C(4, 5))
	if !ok || sw.A != board.C(4, 4) || sw.B != board.C(4, 5) {
		t.Errorf("swap = %+v %v", sw, ok)
	}
}

func TestSelectorDragHighlights(t *testing.T) {
	l := visual.ComputeLayout(80, 24, 6, 6, hudRows)
	s := NewSelector(6, 6)
	x, y := cellCenter(l, board.C(2, 2))

	s.Handle(pointers(core.PointerEvent{Kind: core.PointerPress, X: x, Y: y}), l)
	primary, secondary := s.Highlights()
	if len(primary) != 1 || primary[0] != board.C(2, 2) || len(secondary) != 0 {
		t.Fatalf("after press: %v %v", primary, secondary)
	}

	s.Handle(pointers(core.PointerEvent{Kind: core.PointerMotion, X: x + l.CellW, Y: y}), l)
	_, secondary = s.Highlights()
	if len(secondary) != 1 || secondary[0] != board.C(3, 2) {
		t.Errorf("drag target = %v, want (3,2)", secondary)
	}

	s.Cancel()
	primary, secondary = s.Highlights()
	if len(primary) != 0 || len(secondary) != 0 {
		t.Errorf("after cancel: %v %v", primary, secondary)
	}
}

func TestSelectorPressOutsideBoard(t *testing.T) {
	l := visual.ComputeLayout(80, 24, 6, 6, hudRows)
	s := NewSelector(6, 6)

	_, ok := s.Handle(pointers(
		core.PointerEvent{Kind: core.PointerPress, X: 0, Y: 0},
		core.PointerEvent{Kind: core.PointerRelease, X: 40, Y: 12},
	), l)
	if ok {
		t.Error("gesture started outside the board should be ignored")
	}
	if _, sel := s.Selected(); sel {
		t.Error("nothing should be selected")
	}
}
