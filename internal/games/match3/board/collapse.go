package board

// Move relocates a surviving cell downward within its column.
type Move struct {
	From, To Coord
}

// Spawn is a fresh cell entering a column from above the grid.
// Order 0 is the spawn closest to the grid; higher orders stack further up.
type Spawn struct {
	To    Coord
	Type  CellType
	Order int
}

// CollapseAndRefillPlanned removes every masked cell, compacts survivors to
// the bottom of their column in their original order, and refills the
// vacated top rows with uniform random cells. Refills may form new matches.
//
// The grid reaches its final state in this call. The returned plan lists a
// Move for each survivor whose row changed and a Spawn for each new cell.
// A mask of the wrong length is treated as empty.
func (b *Board) CollapseAndRefillPlanned(mask []bool) (moves []Move, spawns []Spawn, removed int) {
	if len(mask) != len(b.cells) {
		return nil, nil, 0
	}

	for x := 0; x < b.w; x++ {
		writeY := b.h - 1
		for y := b.h - 1; y >= 0; y-- {
			idx := b.Index(Coord{x, y})
			if mask[idx] {
				removed++
				continue
			}
			if writeY != y {
				b.cells[b.Index(Coord{x, writeY})] = b.cells[idx]
				moves = append(moves, Move{From: Coord{x, y}, To: Coord{x, writeY}})
			}
			writeY--
		}

		for y := writeY; y >= 0; y-- {
			c := b.randomCell()
			b.cells[b.Index(Coord{x, y})] = c
			spawns = append(spawns, Spawn{To: Coord{x, y}, Type: c, Order: writeY - y})
		}
	}

	return moves, spawns, removed
}
