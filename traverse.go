package worldcore

import (
	"math"
	"sort"
)

// TraverseFlags selects which kinds of obstacle PathTraverse reports.
type TraverseFlags int

const (
	TraversePathLines TraverseFlags = 1 << iota
	TraversePathMobjs
)

// TraverseHit is one intersection PathTraverse reports, in increasing
// Fraction order along the segment from start to end.
type TraverseHit struct {
	Fraction float64 // 0 at start, 1 at end
	Line     *Line   // nil if this hit is a mobj
	Mobj     *Mobj   // nil if this hit is a line
	X, Y     float64

	// Opening is set on two-sided Line hits to the Line Opening of the
	// line just crossed, computed once by the traverser in distance
	// order rather than by every caller. It points at a single struct
	// reused for the whole walk and overwritten with each two-sided
	// line's opening before that hit is visited, so a callback that
	// needs a value after returning must copy it.
	Opening *OpeningCache
}

// OpeningCache holds the Top/Bottom/LowFloor of the most recently
// crossed two-sided line during one PathTraverse walk.
type OpeningCache struct {
	Top, Bottom, LowFloor, Range float64
}

// PathTraverse collects, from the blockmap cells under the bounding box
// of the segment (x0,y0)-(x1,y1), every line and/or mobj the segment
// crosses and visits them in increasing distance order (a line before a
// mobj at equal distance), calling visit for each. Returning false
// from visit stops the walk early. It generalizes a single nearest-hit
// raycast into an ordered multi-hit callback walk.
func PathTraverse(w *WorldGeometryStore, x0, y0, x1, y1 float64, flags TraverseFlags, validCount int, visit func(TraverseHit) bool) {
	dx, dy := x1-x0, y1-y0
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}

	box := AABB{MinX: math.Min(x0, x1), MinY: math.Min(y0, y1), MaxX: math.Max(x0, x1), MaxY: math.Max(y0, y1)}
	// Widen the box by a mobj's plausible radius so a segment that
	// clips a blockmap cell edge still finds mobjs centered just
	// outside the raw bounding box.
	const widen = 64.0
	mobjBox := AABB{MinX: box.MinX - widen, MinY: box.MinY - widen, MaxX: box.MaxX + widen, MaxY: box.MaxY + widen}

	var hits []TraverseHit

	if flags&TraversePathLines != 0 {
		w.Blockmap.LinesInBox(box, validCount, func(l *Line) bool {
			if !lineSegmentsCross(x0, y0, x1, y1, l) {
				return true
			}
			if t, hx, hy, ok := segLineFraction(x0, y0, dx, dy, l); ok {
				hits = append(hits, TraverseHit{Fraction: t, Line: l, X: hx, Y: hy})
			}
			return true
		})
	}

	if flags&TraversePathMobjs != 0 {
		w.Blockmap.MobjsInBox(mobjBox, func(m *Mobj) bool {
			if m.validCount == validCount {
				return true
			}
			m.validCount = validCount
			if t, ok := segBoxFraction(x0, y0, dx, dy, m.X, m.Y, m.Radius); ok {
				hits = append(hits, TraverseHit{Fraction: t, Mobj: m, X: x0 + dx*t, Y: y0 + dy*t})
			}
			return true
		})
	}

	// Ties within epsilon resolve line-before-mobj, so a shot grazing a
	// mobj standing exactly on a line crosses the line first.
	const tieEpsilon = 1e-9
	sort.Slice(hits, func(i, j int) bool {
		if math.Abs(hits[i].Fraction-hits[j].Fraction) <= tieEpsilon {
			return hits[i].Line != nil && hits[j].Line == nil
		}
		return hits[i].Fraction < hits[j].Fraction
	})

	cache := &OpeningCache{}
	for _, h := range hits {
		if h.Line != nil && h.Line.TwoSided() {
			op := ComputeOpening(h.Line)
			cache.Top, cache.Bottom, cache.LowFloor, cache.Range = op.Top, op.Bottom, op.LowFloor, op.Range
			h.Opening = cache
		}
		if !visit(h) {
			return
		}
	}
}

func lineSegmentsCross(x0, y0, x1, y1 float64, l *Line) bool {
	b := l.Bounds
	seg := AABB{MinX: math.Min(x0, x1), MinY: math.Min(y0, y1), MaxX: math.Max(x0, x1), MaxY: math.Max(y0, y1)}
	return b.Overlaps(seg)
}

// segLineFraction finds where the ray (px,py)+t*(dx,dy), t in [0,1],
// crosses line l, returning the crossing fraction on the ray and on the
// line both in range.
func segLineFraction(px, py, dx, dy float64, l *Line) (t, hx, hy float64, ok bool) {
	lx, ly := l.From.X, l.From.Y
	ldx, ldy := l.To.X-l.From.X, l.To.Y-l.From.Y
	denom := dx*ldy - dy*ldx
	if denom == 0 {
		return 0, 0, 0, false
	}
	tRay := ((lx-px)*ldy - (ly-py)*ldx) / denom
	tLine := ((lx-px)*dy - (ly-py)*dx) / denom
	if tRay < 0 || tRay > 1 || tLine < 0 || tLine > 1 {
		return 0, 0, 0, false
	}
	return tRay, px + dx*tRay, py + dy*tRay, true
}

// segBoxFraction returns the smallest t in [0,1] at which the ray
// (px,py)+t*(dx,dy) enters the axis-aligned square of side 2*radius
// centered on (cx,cy) — a mobj occupies its bounding square, not the
// inscribed circle, so a ray clipping a corner still registers. A ray
// starting inside the square enters at t = 0.
func segBoxFraction(px, py, dx, dy, cx, cy, radius float64) (float64, bool) {
	tmin, tmax := 0.0, 1.0

	clip := func(p, d, lo, hi float64) bool {
		if d == 0 {
			return p >= lo && p <= hi
		}
		t1 := (lo - p) / d
		t2 := (hi - p) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		return tmin <= tmax
	}

	if !clip(px, dx, cx-radius, cx+radius) {
		return 0, false
	}
	if !clip(py, dy, cy-radius, cy+radius) {
		return 0, false
	}
	return tmin, true
}
