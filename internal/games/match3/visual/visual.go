// Package visual mirrors the logical board in screen space and turns
// logical transitions into animation batches.
//
// Tiles are addressed by stable TileID handles. Every Animate* call tags
// tile coordinates immediately, so coordinate lookups resolve to the new
// cell even while the tile is still in flight.
package visual

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-match3/internal/games/match3/anim"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
)

// TileID is a stable handle to a tile. IDs are never reused by a Board.
type TileID uint64

// Tile is the presentation state of one logical cell.
type Tile struct {
	ID     TileID
	Type   board.CellType
	Cell   board.Coord // Logical cell the tile represents
	X, Y   float64     // Top-left screen position
	Alpha  float64     // 0..1
	ScaleX float64
	ScaleY float64
}

// Timings holds effect durations in seconds and scale peaks.
type Timings struct {
	Swap      float64
	Fade      float64
	Pulse     float64
	PulsePeak float64
	Fall      float64
	Bump      float64
	BumpPeak  float64
	BumpShare float64 // Fraction of Bump spent overshooting
}

// DefaultTimings returns the stock effect timings.
func DefaultTimings() Timings {
	return Timings{
		Swap:      0.15,
		Fade:      0.20,
		Pulse:     0.20,
		PulsePeak: 1.18,
		Fall:      0.25,
		Bump:      0.10,
		BumpPeak:  1.10,
		BumpShare: 0.35,
	}
}

// Board is the screen-space mirror of a board.Board.
type Board struct {
	Timings Timings

	tiles  *intmap.Map[TileID, *Tile]
	order  []TileID
	nextID TileID
	cols   int
	rows   int
	layout Layout
}

// New creates an empty visual board.
func New(t Timings) *Board {
	return &Board{
		Timings: t,
		tiles:   intmap.New[TileID, *Tile](64),
		nextID:  1,
	}
}

// Layout returns the layout tiles are placed against.
func (vb *Board) Layout() Layout {
	return vb.layout
}

// Len returns the number of tiles.
func (vb *Board) Len() int {
	return vb.tiles.Len()
}

func (vb *Board) newTile(t board.CellType, c board.Coord, x, y float64) *Tile {
	tile := &Tile{
		ID:     vb.nextID,
		Type:   t,
		Cell:   c,
		X:      x,
		Y:      y,
		Alpha:  1,
		ScaleX: 1,
		ScaleY: 1,
	}
	vb.nextID++
	vb.tiles.Put(tile.ID, tile)
	vb.order = append(vb.order, tile.ID)
	return tile
}

// BuildFromBoard recreates one tile per cell at its resting position.
func (vb *Board) BuildFromBoard(b *board.Board, l Layout) {
	vb.tiles.Clear()
	vb.order = vb.order[:0]
	vb.cols = b.Width()
	vb.rows = b.Height()
	vb.layout = l

	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := board.C(x, y)
			r := l.CellRect(c)
			vb.newTile(b.Get(c), c, float64(r.X), float64(r.Y))
		}
	}
}

// SnapToLayout adopts l and moves every tile to its cell's resting
// position. Call it after the viewport changes.
func (vb *Board) SnapToLayout(l Layout) {
	vb.layout = l
	for _, id := range vb.order {
		t, ok := vb.tiles.Get(id)
		if !ok {
			continue
		}
		r := l.CellRect(t.Cell)
		t.X = float64(r.X)
		t.Y = float64(r.Y)
	}
}

// Tiles returns copies of all tiles in render order.
func (vb *Board) Tiles() []Tile {
	out := make([]Tile, 0, len(vb.order))
	for _, id := range vb.order {
		if t, ok := vb.tiles.Get(id); ok {
			out = append(out, *t)
		}
	}
	return out
}

// Tile returns a copy of the tile with the given id.
func (vb *Board) Tile(id TileID) (Tile, bool) {
	t, ok := vb.tiles.Get(id)
	if !ok {
		return Tile{}, false
	}
	return *t, true
}

// TileAt returns a copy of the tile currently tagged with c.
func (vb *Board) TileAt(c board.Coord) (Tile, bool) {
	if t := vb.find(c); t != nil {
		return *t, true
	}
	return Tile{}, false
}

func (vb *Board) find(c board.Coord) *Tile {
	for _, id := range vb.order {
		if t, ok := vb.tiles.Get(id); ok && t.Cell == c {
			return t
		}
	}
	return nil
}

func (vb *Board) masked(mask []bool, c board.Coord) bool {
	if c.X < 0 || c.Y < 0 || c.X >= vb.cols || c.Y >= vb.rows {
		return false
	}
	idx := c.Y*vb.cols + c.X
	return idx < len(mask) && mask[idx]
}

// AnimateSwap moves the tiles at a and b to each other's cells and swaps
// their cell tags right away. Returns NoGroup if either tile is missing.
func (vb *Board) AnimateSwap(a, b board.Coord, eng *anim.Engine, group anim.GroupID) anim.GroupID {
	ta, tb := vb.find(a), vb.find(b)
	if ta == nil || tb == nil {
		return anim.NoGroup
	}
	ra, rb := vb.layout.CellRect(a), vb.layout.CellRect(b)

	batch := eng.Join(group)
	batch.Add(vb.Timings.Swap, anim.EaseOutCubic, moveTarget{
		vb: vb, id: ta.ID,
		x0: ta.X, y0: ta.Y, x1: float64(rb.X), y1: float64(rb.Y),
	})
	batch.Add(vb.Timings.Swap, anim.EaseOutCubic, moveTarget{
		vb: vb, id: tb.ID,
		x0: tb.X, y0: tb.Y, x1: float64(ra.X), y1: float64(ra.Y),
	})

	ta.Cell, tb.Cell = tb.Cell, ta.Cell
	return batch.ID()
}

// AnimateFadeMask fades every masked tile to transparent.
func (vb *Board) AnimateFadeMask(mask []bool, eng *anim.Engine, group anim.GroupID) anim.GroupID {
	batch := eng.Join(group)
	for _, id := range vb.order {
		t, ok := vb.tiles.Get(id)
		if !ok || !vb.masked(mask, t.Cell) {
			continue
		}
		batch.Add(vb.Timings.Fade, anim.Linear, fadeTarget{vb: vb, id: id, a0: t.Alpha, a1: 0})
	}
	return batch.ID()
}

// AnimatePulseMask swells every masked tile to PulsePeak and back.
func (vb *Board) AnimatePulseMask(mask []bool, eng *anim.Engine, group anim.GroupID) anim.GroupID {
	batch := eng.Join(group)
	env := pulseEnvelope(vb.Timings.PulsePeak)
	for _, id := range vb.order {
		t, ok := vb.tiles.Get(id)
		if !ok || !vb.masked(mask, t.Cell) {
			continue
		}
		batch.Add(vb.Timings.Pulse, anim.Linear, scaleTarget{vb: vb, id: id, envelope: env})
	}
	return batch.ID()
}

// RemoveByMask deletes every masked tile and returns how many were removed.
// Call it only once the fade of those tiles has finished.
func (vb *Board) RemoveByMask(mask []bool) int {
	kept := vb.order[:0]
	removed := 0
	for _, id := range vb.order {
		t, ok := vb.tiles.Get(id)
		if !ok {
			continue
		}
		if vb.masked(mask, t.Cell) {
			vb.tiles.Del(id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	vb.order = kept
	return removed
}

// AnimateMoves drops existing tiles to their planned cells.
func (vb *Board) AnimateMoves(moves []board.Move, eng *anim.Engine, group anim.GroupID) anim.GroupID {
	batch := eng.Join(group)

	// Resolve all tiles before retagging so chained moves in one column
	// do not pick up a tile that already moved.
	tiles := make([]*Tile, len(moves))
	for i, m := range moves {
		tiles[i] = vb.find(m.From)
	}
	for i, m := range moves {
		t := tiles[i]
		if t == nil {
			continue
		}
		r := vb.layout.CellRect(m.To)
		batch.Add(vb.Timings.Fall, anim.EaseOutCubic, moveTarget{
			vb: vb, id: t.ID,
			x0: t.X, y0: t.Y, x1: float64(r.X), y1: float64(r.Y),
		})
		t.Cell = m.To
	}
	return batch.ID()
}

// AnimateSpawns creates tiles stacked above the board by spawn order and
// drops them into place.
func (vb *Board) AnimateSpawns(spawns []board.Spawn, eng *anim.Engine, group anim.GroupID) anim.GroupID {
	batch := eng.Join(group)
	for _, s := range spawns {
		r := vb.layout.CellRect(s.To)
		startY := float64(vb.layout.OriginY - (s.Order+1)*vb.layout.StrideY())
		t := vb.newTile(s.Type, s.To, float64(r.X), startY)
		batch.Add(vb.Timings.Fall, anim.EaseOutCubic, moveTarget{
			vb: vb, id: t.ID,
			x0: t.X, y0: startY, x1: float64(r.X), y1: float64(r.Y),
		})
	}
	return batch.ID()
}

// AnimateBumpCells plays a short landing bounce on the tiles at cells.
func (vb *Board) AnimateBumpCells(cells []board.Coord, eng *anim.Engine, group anim.GroupID) anim.GroupID {
	batch := eng.Join(group)
	env := bumpEnvelope(vb.Timings.BumpPeak, vb.Timings.BumpShare)
	for _, c := range cells {
		t := vb.find(c)
		if t == nil {
			continue
		}
		batch.Add(vb.Timings.Bump, anim.Linear, scaleTarget{vb: vb, id: t.ID, envelope: env})
	}
	return batch.ID()
}
