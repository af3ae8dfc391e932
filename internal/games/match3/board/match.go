package board

// MinRun is the shortest run of equal cells that counts as a match.
const MinRun = 3

// Match is the result of a match scan.
type Match struct {
	// Mask is parallel to the grid; true marks a cell in at least one run.
	Mask []bool
	// Groups counts qualifying runs. An L or T shape counts twice.
	Groups int
	// Cells counts marked cells, each once.
	Cells int
}

// Any reports whether the scan found at least one run.
func (m Match) Any() bool {
	return m.Groups > 0
}

// Score is the points awarded for this resolution step.
func (m Match) Score() int {
	return m.Cells * m.Groups
}

// Coords returns the marked cells in row-major order for a grid of width w.
func (m Match) Coords(w int) []Coord {
	if w <= 0 {
		return nil
	}
	out := make([]Coord, 0, m.Cells)
	for i, on := range m.Mask {
		if on {
			out = append(out, Coord{X: i % w, Y: i / w})
		}
	}
	return out
}

// FindMatches scans every row, then every column, for maximal runs of at
// least MinRun equal cells. It never mutates the grid.
func (b *Board) FindMatches() (Match, bool) {
	m := Match{Mask: make([]bool, len(b.cells))}

	for y := 0; y < b.h; y++ {
		b.scanLine(&m, Coord{0, y}, Coord{1, 0}, b.w)
	}
	for x := 0; x < b.w; x++ {
		b.scanLine(&m, Coord{x, 0}, Coord{0, 1}, b.h)
	}

	return m, m.Any()
}

// scanLine walks n cells from start in direction step and records runs.
func (b *Board) scanLine(m *Match, start, step Coord, n int) {
	runStart := 0
	for i := 1; i <= n; i++ {
		if i < n && b.at(start, step, i) == b.at(start, step, i-1) {
			continue
		}
		if i-runStart >= MinRun {
			m.Groups++
			for k := runStart; k < i; k++ {
				idx := b.Index(Coord{start.X + step.X*k, start.Y + step.Y*k})
				if !m.Mask[idx] {
					m.Mask[idx] = true
					m.Cells++
				}
			}
		}
		runStart = i
	}
}

func (b *Board) at(start, step Coord, i int) CellType {
	return b.cells[b.Index(Coord{start.X + step.X*i, start.Y + step.Y*i})]
}
