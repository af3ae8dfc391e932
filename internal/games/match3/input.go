package match3

import (
	"math"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
	"github.com/vovakirdan/tui-match3/internal/games/match3/visual"
)

// dragThresholdShare is the drag distance, as a share of the tile width,
// that turns a press into a swap gesture.
const dragThresholdShare = 0.35

// Swap is a resolved swap intent.
type Swap struct {
	A, B board.Coord
}

// Selector turns keys and pointer gestures into swap intents.
//
// Keyboard: arrows move the cursor, Confirm selects, an arrow after
// selecting swaps in that direction, Back cancels. Pointer: press on a
// tile and release past the drag threshold to swap toward the dominant
// axis; a short tap selects, and a tap next to the selection swaps.
type Selector struct {
	cols, rows int

	cursor   board.Coord
	selected board.Coord
	hasSel   bool

	pressing   bool
	pressCell  board.Coord
	pressX     int
	pressY     int
	dragTarget board.Coord
	hasDragTgt bool
}

// NewSelector creates a selector for a cols×rows board with the cursor
// in the top-left cell.
func NewSelector(cols, rows int) *Selector {
	return &Selector{cols: cols, rows: rows}
}

// Cursor returns the keyboard cursor.
func (s *Selector) Cursor() board.Coord { return s.cursor }

// Selected returns the selected cell, if any.
func (s *Selector) Selected() (board.Coord, bool) { return s.selected, s.hasSel }

// Cancel drops the selection and any gesture in progress.
func (s *Selector) Cancel() {
	s.hasSel = false
	s.pressing = false
	s.hasDragTgt = false
}

// Highlights returns the primary cells (selected or pressed) and the
// secondary cells (the current drag target).
func (s *Selector) Highlights() (primary, secondary []board.Coord) {
	switch {
	case s.pressing:
		primary = append(primary, s.pressCell)
	case s.hasSel:
		primary = append(primary, s.selected)
	}
	if s.pressing && s.hasDragTgt {
		secondary = append(secondary, s.dragTarget)
	}
	return primary, secondary
}

func (s *Selector) inBounds(c board.Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.cols && c.Y < s.rows
}

// Handle consumes one frame of input and returns a swap intent if a
// gesture or key sequence completed. Pointer events are resolved against l.
func (s *Selector) Handle(in core.InputFrame, l visual.Layout) (Swap, bool) {
	var out Swap
	found := false

	for _, d := range directions {
		if !in.Has(d.action) {
			continue
		}
		if sw, ok := s.arrow(d.step); ok && !found {
			out, found = sw, true
		}
	}

	if in.Has(core.ActionConfirm) {
		s.confirm()
	}
	if in.Has(core.ActionBack) {
		s.Cancel()
	}

	for _, ev := range in.Pointer {
		if sw, ok := s.pointer(ev, l); ok && !found {
			out, found = sw, true
		}
	}

	return out, found
}

var directions = []struct {
	action core.Action
	step   board.Coord
}{
	{core.ActionUp, board.C(0, -1)},
	{core.ActionDown, board.C(0, 1)},
	{core.ActionLeft, board.C(-1, 0)},
	{core.ActionRight, board.C(1, 0)},
}

func (s *Selector) arrow(step board.Coord) (Swap, bool) {
	if s.hasSel {
		s.hasSel = false
		to := s.selected.Add(step)
		if !s.inBounds(to) {
			return Swap{}, false
		}
		s.cursor = to
		return Swap{A: s.selected, B: to}, true
	}

	next := s.cursor.Add(step)
	if s.inBounds(next) {
		s.cursor = next
	}
	return Swap{}, false
}

func (s *Selector) confirm() {
	if s.hasSel && s.selected == s.cursor {
		s.hasSel = false
		return
	}
	s.selected = s.cursor
	s.hasSel = true
}

func (s *Selector) pointer(ev core.PointerEvent, l visual.Layout) (Swap, bool) {
	switch ev.Kind {
	case core.PointerPress:
		cell, ok := l.ScreenToCell(ev.X, ev.Y)
		if !ok {
			s.pressing = false
			return Swap{}, false
		}
		s.pressing = true
		s.pressCell = cell
		s.pressX, s.pressY = ev.X, ev.Y
		s.hasDragTgt = false
		s.cursor = cell

	case core.PointerMotion:
		if !s.pressing {
			return Swap{}, false
		}
		s.dragTarget, s.hasDragTgt = s.dragDirection(ev, l)

	case core.PointerRelease:
		if !s.pressing {
			return Swap{}, false
		}
		s.pressing = false
		s.hasDragTgt = false

		if to, ok := s.dragDirection(ev, l); ok {
			s.hasSel = false
			return Swap{A: s.pressCell, B: to}, true
		}
		return s.tap(s.pressCell)
	}
	return Swap{}, false
}

// tap selects cell, or swaps with the selection when they are neighbors.
func (s *Selector) tap(cell board.Coord) (Swap, bool) {
	if s.hasSel && board.AreAdjacent(s.selected, cell) {
		s.hasSel = false
		return Swap{A: s.selected, B: cell}, true
	}
	if s.hasSel && s.selected == cell {
		s.hasSel = false
		return Swap{}, false
	}
	s.selected = cell
	s.hasSel = true
	return Swap{}, false
}

// dragDirection returns the neighbor of the pressed cell in the dominant
// drag direction once the drag passes the threshold. Rows are scaled by
// the tile aspect so both axes are measured in the same units.
func (s *Selector) dragDirection(ev core.PointerEvent, l visual.Layout) (board.Coord, bool) {
	aspect := 1.0
	if l.CellH > 0 {
		aspect = float64(l.CellW) / float64(l.CellH)
	}
	dx := float64(ev.X - s.pressX)
	dy := float64(ev.Y-s.pressY) * aspect

	threshold := math.Max(1, dragThresholdShare*float64(l.CellW))
	if math.Hypot(dx, dy) < threshold {
		return board.Coord{}, false
	}

	step := board.C(0, 1)
	switch {
	case math.Abs(dx) > math.Abs(dy) && dx > 0:
		step = board.C(1, 0)
	case math.Abs(dx) > math.Abs(dy):
		step = board.C(-1, 0)
	case dy < 0:
		step = board.C(0, -1)
	}

	to := s.pressCell.Add(step)
	if !s.inBounds(to) {
		return board.Coord{}, false
	}
	return to, true
}
