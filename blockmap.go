package worldcore

import "math"

// BlockSize is the fixed cell edge length of the Blockmap, matching the
// classic engine's 128-unit blocks.
const BlockSize = 128.0

// Blockmap is a uniform spatial grid over the map bounds, indexing both
// lines (built once at load time) and mobjs (updated every Link/Unlink).
// It is a fixed dense grid sized to the map rather than an open hash
// keyed by cell coordinate, so the Traverser's and TryMove's box
// queries walk a plain range of cells.
type Blockmap struct {
	originX, originY float64
	cols, rows       int

	lineCells []([]*Line)
	mobjCells []*Mobj // head of each cell's intrusive mobj list
}

// NewBlockmap builds an empty grid covering bounds, then populates the
// line cells (mobjs are linked in afterward via MobjTable).
func NewBlockmap(bounds AABB, lines []*Line) *Blockmap {
	cols := int(math.Ceil((bounds.MaxX-bounds.MinX)/BlockSize)) + 1
	rows := int(math.Ceil((bounds.MaxY-bounds.MinY)/BlockSize)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	bm := &Blockmap{
		originX: bounds.MinX, originY: bounds.MinY,
		cols: cols, rows: rows,
		lineCells: make([][]*Line, cols*rows),
		mobjCells: make([]*Mobj, cols*rows),
	}
	for _, l := range lines {
		bm.insertLine(l)
	}
	return bm
}

func (bm *Blockmap) cellOf(x, y float64) (int, int, bool) {
	cx := int(math.Floor((x - bm.originX) / BlockSize))
	cy := int(math.Floor((y - bm.originY) / BlockSize))
	if cx < 0 || cy < 0 || cx >= bm.cols || cy >= bm.rows {
		return 0, 0, false
	}
	return cx, cy, true
}

func (bm *Blockmap) index(cx, cy int) int { return cy*bm.cols + cx }

func (bm *Blockmap) insertLine(l *Line) {
	minCX, minCY, okMin := bm.cellOf(l.Bounds.MinX, l.Bounds.MinY)
	maxCX, maxCY, okMax := bm.cellOf(l.Bounds.MaxX, l.Bounds.MaxY)
	if !okMin {
		minCX, minCY = bm.clampCell(l.Bounds.MinX, l.Bounds.MinY)
	}
	if !okMax {
		maxCX, maxCY = bm.clampCell(l.Bounds.MaxX, l.Bounds.MaxY)
	}
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			i := bm.index(cx, cy)
			bm.lineCells[i] = append(bm.lineCells[i], l)
		}
	}
}

// removeLineAt splices l out of every cell its old bounds covered. Only
// those cells are scanned, not the whole grid.
func (bm *Blockmap) removeLineAt(l *Line, oldBounds AABB) {
	minCX, minCY := bm.clampCell(oldBounds.MinX, oldBounds.MinY)
	maxCX, maxCY := bm.clampCell(oldBounds.MaxX, oldBounds.MaxY)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			i := bm.index(cx, cy)
			cell := bm.lineCells[i]
			for j, other := range cell {
				if other == l {
					cell[j] = cell[len(cell)-1]
					bm.lineCells[i] = cell[:len(cell)-1]
					break
				}
			}
		}
	}
}

// RelinkLine removes l from the cells it occupied at oldBounds and
// reinserts it at its current Bounds. A polyobj's Translate/Rotate call
// this after recomputing a line's geometry, the line equivalent of
// MobjTable unlinking and relinking a moved mobj.
func (bm *Blockmap) RelinkLine(l *Line, oldBounds AABB) {
	bm.removeLineAt(l, oldBounds)
	bm.insertLine(l)
}

func (bm *Blockmap) clampCell(x, y float64) (int, int) {
	cx := int(math.Floor((x - bm.originX) / BlockSize))
	cy := int(math.Floor((y - bm.originY) / BlockSize))
	if cx < 0 {
		cx = 0
	}
	if cx >= bm.cols {
		cx = bm.cols - 1
	}
	if cy < 0 {
		cy = 0
	}
	if cy >= bm.rows {
		cy = bm.rows - 1
	}
	return cx, cy
}

// LinesInBox calls visit for every line whose cell overlaps box,
// deduplicated via validCount rather than a seen-set allocation.
// Returning false from visit stops the sweep early.
func (bm *Blockmap) LinesInBox(box AABB, validCount int, visit func(*Line) bool) {
	minCX, minCY := bm.clampCell(box.MinX, box.MinY)
	maxCX, maxCY := bm.clampCell(box.MaxX, box.MaxY)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			for _, l := range bm.lineCells[bm.index(cx, cy)] {
				if l.validCount == validCount {
					continue
				}
				l.validCount = validCount
				if !visit(l) {
					return
				}
			}
		}
	}
}

// linkMobj inserts m into the mobj cell containing its center. Unlike
// lines, a mobj occupies exactly one cell (its center), mirroring the
// original's single-cell mobj blocklinks; box queries widen the cell
// range searched instead of inserting into every overlapped cell.
func (bm *Blockmap) linkMobj(m *Mobj) {
	cx, cy := bm.clampCell(m.X, m.Y)
	i := bm.index(cx, cy)
	m.blockCell = i
	m.blockNext = bm.mobjCells[i]
	m.blockPrev = nil
	if m.blockNext != nil {
		m.blockNext.blockPrev = m
	}
	bm.mobjCells[i] = m
}

func (bm *Blockmap) unlinkMobj(m *Mobj) {
	if m.blockPrev != nil {
		m.blockPrev.blockNext = m.blockNext
	} else if bm.mobjCells[m.blockCell] == m {
		bm.mobjCells[m.blockCell] = m.blockNext
	}
	if m.blockNext != nil {
		m.blockNext.blockPrev = m.blockPrev
	}
	m.blockNext, m.blockPrev = nil, nil
}

// MobjsInBox calls visit for every mobj whose cell overlaps box. Mobjs
// are not deduplicated (each occupies exactly one cell), so no
// validCount parameter is needed here.
func (bm *Blockmap) MobjsInBox(box AABB, visit func(*Mobj) bool) {
	minCX, minCY := bm.clampCell(box.MinX, box.MinY)
	maxCX, maxCY := bm.clampCell(box.MaxX, box.MaxY)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			for m := bm.mobjCells[bm.index(cx, cy)]; m != nil; m = m.blockNext {
				if !visit(m) {
					return
				}
			}
		}
	}
}
