package visual

import (
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
)

// Tile size limits in terminal rows. Tiles are twice as wide as tall so
// they look square in a typical terminal font.
const (
	maxCellH    = 5
	tileAspectW = 2
)

// Layout is the screen geometry of the board, in character cells.
type Layout struct {
	OriginX, OriginY int // Top-left of cell (0, 0)
	CellW, CellH     int // Tile size
	Gap              int // Space between tiles, both axes
	WidthPx          int // Total board width
	HeightPx         int // Total board height
}

// Empty reports whether the layout has no usable cells.
func (l Layout) Empty() bool {
	return l.CellW <= 0 || l.CellH <= 0
}

// StrideX is the horizontal distance between neighboring tile origins.
func (l Layout) StrideX() int { return l.CellW + l.Gap }

// StrideY is the vertical distance between neighboring tile origins.
func (l Layout) StrideY() int { return l.CellH + l.Gap }

// Bounds returns the rectangle covered by the board.
func (l Layout) Bounds() core.Rect {
	return core.NewRect(l.OriginX, l.OriginY, l.WidthPx, l.HeightPx)
}

// CellRect returns the screen rectangle of cell c.
func (l Layout) CellRect(c board.Coord) core.Rect {
	return core.NewRect(
		l.OriginX+c.X*l.StrideX(),
		l.OriginY+c.Y*l.StrideY(),
		l.CellW,
		l.CellH,
	)
}

// ScreenToCell maps a screen position to a cell. Positions outside the
// board or on a gap between tiles report false.
func (l Layout) ScreenToCell(x, y int) (board.Coord, bool) {
	if l.Empty() {
		return board.Coord{}, false
	}
	lx := x - l.OriginX
	ly := y - l.OriginY
	if lx < 0 || ly < 0 || lx >= l.WidthPx || ly >= l.HeightPx {
		return board.Coord{}, false
	}

	cx := lx / l.StrideX()
	cy := ly / l.StrideY()
	if lx-cx*l.StrideX() >= l.CellW || ly-cy*l.StrideY() >= l.CellH {
		return board.Coord{}, false
	}
	return board.C(cx, cy), true
}

// ComputeLayout fits a cols×rows board into a viewW×viewH terminal below
// top reserved HUD rows. One cell of margin is kept on every side for the
// frame and one extra row at the bottom for the footer. The largest tile
// that fits wins; the result is centered. An empty Layout means the
// viewport is too small.
func ComputeLayout(viewW, viewH, cols, rows, top int) Layout {
	if cols <= 0 || rows <= 0 {
		return Layout{}
	}
	availW := viewW - 2
	availH := viewH - top - 3

	for cellH := maxCellH; cellH >= 1; cellH-- {
		gap := 0
		if cellH >= 2 {
			gap = 1
		}
		cellW := cellH * tileAspectW
		w := cols*cellW + (cols-1)*gap
		h := rows*cellH + (rows-1)*gap
		if w > availW || h > availH {
			continue
		}
		return Layout{
			OriginX:  1 + (availW-w)/2,
			OriginY:  top + 1 + (availH-h)/2,
			CellW:    cellW,
			CellH:    cellH,
			Gap:      gap,
			WidthPx:  w,
			HeightPx: h,
		}
	}
	return Layout{}
}
