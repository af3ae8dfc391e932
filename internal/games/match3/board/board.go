// Package board holds the authoritative match-3 grid: seeded generation,
// match detection and collapse/refill planning.
//
// Row 0 is the top of the board. Gravity pulls cells toward row Height-1.
// Every operation is deterministic given the board's seed, and no operation
// ever leaves the grid with an empty cell.
package board

import (
	"math/rand"
	"strings"
)

// Default grid dimensions.
const (
	DefaultWidth  = 6
	DefaultHeight = 6
)

// generateRetries bounds the random draws per cell during initial generation.
const generateRetries = 8

// CellType is the color of a cell. Types compare by identity only.
type CellType uint8

const (
	Red CellType = iota
	Green
	Blue
	Yellow
	Purple
	Orange
)

// CellTypeCount is the number of distinct cell types.
const CellTypeCount = 6

var cellNames = [CellTypeCount]string{"red", "green", "blue", "yellow", "purple", "orange"}

// String returns the lowercase color name.
func (c CellType) String() string {
	if int(c) < CellTypeCount {
		return cellNames[c]
	}
	return "unknown"
}

// Letter returns a one-letter code used in fixtures and snapshots.
func (c CellType) Letter() byte {
	if int(c) < CellTypeCount {
		return "RGBYPO"[c]
	}
	return '?'
}

// ParseLetter is the inverse of Letter.
func ParseLetter(b byte) (CellType, bool) {
	i := strings.IndexByte("RGBYPO", b)
	if i < 0 {
		return 0, false
	}
	return CellType(i), true
}

// Coord is a grid coordinate.
type Coord struct {
	X, Y int
}

// C is shorthand for Coord{x, y}.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns the component-wise sum.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// ManhattanDistance returns |dx| + |dy|.
func (c Coord) ManhattanDistance(o Coord) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// AreAdjacent reports whether a and b are exactly one step apart.
func AreAdjacent(a, b Coord) bool {
	return a.ManhattanDistance(b) == 1
}

// Board is a W×H grid of cell types stored row-major.
type Board struct {
	w, h  int
	cells []CellType
	seed  int64
	rng   *rand.Rand
}

// New creates a board of the given size filled with Red.
// Non-positive dimensions fall back to the defaults.
// Call GenerateInitial to fill it.
func New(w, h int) *Board {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return &Board{
		w:     w,
		h:     h,
		cells: make([]CellType, w*h),
		rng:   rand.New(rand.NewSource(0)),
	}
}

// FromCells builds a board from explicit row-major contents.
// The refill generator is seeded with seed.
// Returns nil if len(cells) != w*h or a dimension is not positive.
func FromCells(w, h int, cells []CellType, seed int64) *Board {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil
	}
	b := &Board{
		w:     w,
		h:     h,
		cells: append([]CellType(nil), cells...),
		seed:  seed,
		rng:   rand.New(rand.NewSource(seed)),
	}
	return b
}

// FromRows builds a board from rows of letters (see CellType.Letter).
// Returns nil on ragged rows or unknown letters.
func FromRows(rows []string, seed int64) *Board {
	if len(rows) == 0 {
		return nil
	}
	w := len(rows[0])
	cells := make([]CellType, 0, w*len(rows))
	for _, row := range rows {
		if len(row) != w {
			return nil
		}
		for i := 0; i < len(row); i++ {
			c, ok := ParseLetter(row[i])
			if !ok {
				return nil
			}
			cells = append(cells, c)
		}
	}
	return FromCells(w, len(rows), cells, seed)
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.w }

// Height returns the number of rows.
func (b *Board) Height() int { return b.h }

// Seed returns the seed of the last generation.
func (b *Board) Seed() int64 { return b.seed }

// Len returns the number of cells.
func (b *Board) Len() int { return len(b.cells) }

// Index returns the row-major index of p. p must be in bounds.
func (b *Board) Index(p Coord) int {
	return p.Y*b.w + p.X
}

// CoordOf is the inverse of Index.
func (b *Board) CoordOf(i int) Coord {
	return Coord{X: i % b.w, Y: i / b.w}
}

// InBounds reports whether p lies inside the grid.
func (b *Board) InBounds(p Coord) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.w && p.Y < b.h
}

// Get returns the cell at p. Out-of-bounds reads return Red.
func (b *Board) Get(p Coord) CellType {
	if !b.InBounds(p) {
		return Red
	}
	return b.cells[b.Index(p)]
}

// Set writes the cell at p. Out-of-bounds writes are ignored.
func (b *Board) Set(p Coord, c CellType) {
	if !b.InBounds(p) {
		return
	}
	b.cells[b.Index(p)] = c
}

// Cells returns a copy of the row-major contents.
func (b *Board) Cells() []CellType {
	return append([]CellType(nil), b.cells...)
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(o *Board) bool {
	if b.w != o.w || b.h != o.h {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the grid.
// The copy's generator restarts from the board's seed.
func (b *Board) Clone() *Board {
	return &Board{
		w:     b.w,
		h:     b.h,
		cells: append([]CellType(nil), b.cells...),
		seed:  b.seed,
		rng:   rand.New(rand.NewSource(b.seed)),
	}
}

// Swap exchanges two cells unconditionally.
// Out-of-bounds coordinates make it a no-op.
func (b *Board) Swap(a, c Coord) {
	if !b.InBounds(a) || !b.InBounds(c) {
		return
	}
	ia, ic := b.Index(a), b.Index(c)
	b.cells[ia], b.cells[ic] = b.cells[ic], b.cells[ia]
}

// GenerateInitial reseeds the generator and fills every cell, avoiding
// a three-run with the two cells placed to the left or above.
func (b *Board) GenerateInitial(seed int64) {
	b.seed = seed
	b.rng = rand.New(rand.NewSource(seed))
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			b.cells[b.Index(Coord{x, y})] = b.randomAvoiding(x, y)
		}
	}
}

func (b *Board) randomCell() CellType {
	return CellType(b.rng.Intn(CellTypeCount))
}

// randomAvoiding draws up to generateRetries candidates. If all of them
// complete a run, it walks the palette from the last draw and takes the
// first type that does not. At most two types can be blocked, so that
// walk always succeeds.
func (b *Board) randomAvoiding(x, y int) CellType {
	var c CellType
	for range generateRetries {
		c = b.randomCell()
		if !b.completesRun(x, y, c) {
			return c
		}
	}
	for i := 1; i < CellTypeCount; i++ {
		alt := CellType((int(c) + i) % CellTypeCount)
		if !b.completesRun(x, y, alt) {
			return alt
		}
	}
	return c
}

// completesRun reports whether placing c at (x, y) forms a three-run with
// the two previous cells in its row or column.
func (b *Board) completesRun(x, y int, c CellType) bool {
	if x >= 2 && b.Get(Coord{x - 1, y}) == c && b.Get(Coord{x - 2, y}) == c {
		return true
	}
	if y >= 2 && b.Get(Coord{x, y - 1}) == c && b.Get(Coord{x, y - 2}) == c {
		return true
	}
	return false
}

// Rows returns the grid as rows of letters, top first.
func (b *Board) Rows() []string {
	rows := make([]string, b.h)
	buf := make([]byte, b.w)
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			buf[x] = b.cells[b.Index(Coord{x, y})].Letter()
		}
		rows[y] = string(buf)
	}
	return rows
}

// String renders the grid as newline-separated letter rows.
func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
