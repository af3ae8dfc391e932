package match3

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
)

// Alpha thresholds for tile glyphs, densest first.
var alphaGlyphs = []struct {
	min   float64
	glyph rune
}{
	{0.85, '█'},
	{0.60, '▓'},
	{0.35, '▒'},
	{0.10, '░'},
}

var cellColors = map[board.CellType]core.Color{
	board.Red:    core.ColorRed,
	board.Green:  core.ColorGreen,
	board.Blue:   core.ColorBlue,
	board.Yellow: core.ColorYellow,
	board.Purple: core.ColorPurple,
	board.Orange: core.ColorOrange,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderHighlights(dst)
	g.renderFooter(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorDim)
}

// renderHUD draws the title and counters.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCentered(0, g.Title(), core.ColorWhite)

	var turns string
	if g.mode == ModeMoves {
		turns = fmt.Sprintf("Moves: %d/%d", g.MovesLeft(), g.movesLimit)
	} else {
		turns = fmt.Sprintf("Turns: %d", g.machine.Turns())
	}
	info := fmt.Sprintf("Score: %d  %s  Chain: %d  Best: %d  [%s]",
		g.machine.Score(), turns, g.machine.Chain(), g.machine.BestChain(), g.machine.State())
	dst.DrawTextCentered(1, info, core.ColorDefault)
}

// renderBoard draws the frame and every tile. Tiles are clipped to the
// board so spawns above the top edge stay hidden.
func (g *Game) renderBoard(dst *core.Screen) {
	l := g.layout
	area := l.Bounds()
	frame := core.NewRect(area.X-1, area.Y-1, area.W+2, area.H+2)
	dst.DrawBox(frame, core.ColorFrame)

	for _, t := range g.vis.Tiles() {
		glyph, ok := glyphFor(t.Alpha)
		if !ok {
			continue
		}
		r := core.ScaledRect(t.X, t.Y, l.CellW, l.CellH, t.ScaleX, t.ScaleY).Intersect(area)
		if r.Empty() {
			continue
		}
		dst.FillRect(r, glyph, cellColors[t.Type])
	}
}

func glyphFor(alpha float64) (rune, bool) {
	for _, a := range alphaGlyphs {
		if alpha >= a.min {
			return a.glyph, true
		}
	}
	return 0, false
}

// renderHighlights marks the cursor, the selection or pressed tile, the
// drag target and the idle hint.
func (g *Game) renderHighlights(dst *core.Screen) {
	if hint, ok := g.Hint(); ok && (g.tick/20)%2 == 0 {
		g.markCenter(dst, hint.A, '*', core.ColorTarget)
		g.markCenter(dst, hint.B, '*', core.ColorTarget)
	}

	primary, secondary := g.selector.Highlights()
	for _, c := range secondary {
		g.markCenter(dst, c, '○', core.ColorTarget)
	}
	for _, c := range primary {
		g.markCenter(dst, c, '●', core.ColorHighlight)
	}

	g.markEdges(dst, g.selector.Cursor(), '[', ']', core.ColorHighlight)
}

func (g *Game) markCenter(dst *core.Screen, c board.Coord, r rune, color core.Color) {
	rect := g.layout.CellRect(c)
	dst.SetColored(rect.X+rect.W/2, rect.Y+rect.H/2, r, color)
}

func (g *Game) markEdges(dst *core.Screen, c board.Coord, left, right rune, color core.Color) {
	rect := g.layout.CellRect(c)
	y := rect.Y + rect.H/2
	dst.SetColored(rect.X, y, left, color)
	dst.SetColored(rect.Right()-1, y, right, color)
}

// renderFooter draws the key help line.
func (g *Game) renderFooter(dst *core.Screen) {
	help := "Arrows/Mouse: Move & Swap  Enter: Select  H: Hint  P: Pause  Esc: Menu"
	dst.DrawTextCentered(dst.Height()-1, help, core.ColorDim)
}

// renderOverlays draws pause and game over boxes.
func (g *Game) renderOverlays(dst *core.Screen) {
	switch {
	case g.gameOver:
		reason := "No moves left"
		if g.mode == ModeMoves && g.MovesLeft() <= 0 {
			reason = "Out of moves"
		}
		g.drawMessageBox(dst, []string{
			"GAME OVER",
			reason,
			fmt.Sprintf("Score: %d  Best chain: %d", g.machine.Score(), g.machine.BestChain()),
			"R: Restart  Esc: Menu",
		})
	case g.paused:
		g.drawMessageBox(dst, []string{"PAUSED", "P: Resume"})
	}
}

func (g *Game) drawMessageBox(dst *core.Screen, lines []string) {
	w := 0
	for _, s := range lines {
		w = max(w, len([]rune(s)))
	}
	w += 4
	h := len(lines) + 2
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2

	box := core.NewRect(x, y, w, h)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	for i, s := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorHighlight
		}
		dst.DrawTextCentered(y+1+i, s, color)
	}
}
