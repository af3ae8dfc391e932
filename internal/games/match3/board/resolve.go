package board

// MaxResolveSteps caps cascade iterations in TrySwapAndResolve.
const MaxResolveSteps = 64

// Resolution summarizes a fully resolved turn.
type Resolution struct {
	Steps   int // Cascade steps, 1 for a swap without chain reactions
	Score   int // Sum of Cells*Groups over all steps
	Removed int // Cells removed over all steps
}

// FindAnySwap returns the first adjacent pair whose swap produces a match.
// Pairs are tried row-major, the right neighbor before the down neighbor.
// The live grid is never touched.
func (b *Board) FindAnySwap() (a, c Coord, ok bool) {
	scratch := &Board{w: b.w, h: b.h, cells: append([]CellType(nil), b.cells...)}

	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			p := Coord{x, y}
			for _, d := range [2]Coord{{1, 0}, {0, 1}} {
				q := p.Add(d)
				if !scratch.InBounds(q) {
					continue
				}
				if scratch.Get(p) == scratch.Get(q) {
					continue
				}
				scratch.Swap(p, q)
				_, found := scratch.FindMatches()
				scratch.Swap(p, q)
				if found {
					return p, q, true
				}
			}
		}
	}
	return Coord{}, Coord{}, false
}

// HasPossibleMove reports whether any swap would produce a match.
func (b *Board) HasPossibleMove() bool {
	_, _, ok := b.FindAnySwap()
	return ok
}

// TrySwapAndResolve swaps a and c if they are in bounds and adjacent and
// the swap makes a match, then resolves every cascade at once.
// An unproductive swap is reverted and reports false; the grid is then
// unchanged. Resolution stops after MaxResolveSteps steps even if matches
// remain.
func (b *Board) TrySwapAndResolve(a, c Coord) (Resolution, bool) {
	var res Resolution
	if !b.InBounds(a) || !b.InBounds(c) || !AreAdjacent(a, c) {
		return res, false
	}

	b.Swap(a, c)
	m, ok := b.FindMatches()
	if !ok {
		b.Swap(a, c)
		return res, false
	}

	for ok && res.Steps < MaxResolveSteps {
		res.Steps++
		res.Score += m.Score()
		_, _, removed := b.CollapseAndRefillPlanned(m.Mask)
		res.Removed += removed
		m, ok = b.FindMatches()
	}
	return res, true
}
