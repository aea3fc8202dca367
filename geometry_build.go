package worldcore

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// recomputeLineGeometry refreshes everything derived from a line's
// endpoints: direction, length, angle, bounding box and slope type. It
// is called once at load time for every line, and again for every line
// of a polyobj whenever it translates or rotates.
func recomputeLineGeometry(l *Line) {
	dx := l.To.X - l.From.X
	dy := l.To.Y - l.From.Y
	l.Direction = mgl32.Vec2{float32(dx), float32(dy)}
	l.Length = math.Hypot(dx, dy)
	l.Angle = AngleTo(l.From.X, l.From.Y, l.To.X, l.To.Y)
	l.Bounds = AABB{
		MinX: math.Min(l.From.X, l.To.X),
		MinY: math.Min(l.From.Y, l.To.Y),
		MaxX: math.Max(l.From.X, l.To.X),
		MaxY: math.Max(l.From.Y, l.To.Y),
	}
	switch {
	case dx == 0:
		l.SlopeType = SlopeVertical
	case dy == 0:
		l.SlopeType = SlopeHorizontal
	case dy/dx > 0:
		l.SlopeType = SlopePositive
	default:
		l.SlopeType = SlopeNegative
	}
}

// BuildGeometry derives every load-time computable field of a freshly
// parsed map: line geometry, sector bounding boxes and line lists,
// vertex line-owner rings sorted by angle, and sector area (stored on
// Sector.Area; nothing in the core reads it), restructured as one explicit
// function instead of a chain of loader globals.
func BuildGeometry(vertices []*Vertex, lines []*Line, sectors []*Sector) {
	for _, l := range lines {
		recomputeLineGeometry(l)
	}

	for _, s := range sectors {
		s.Bounds = AABB{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
		s.Lines = s.Lines[:0]
	}
	for _, l := range lines {
		for _, sec := range []*Sector{l.FrontSector(), l.BackSector()} {
			if sec == nil {
				continue
			}
			sec.Lines = append(sec.Lines, l)
			sec.Bounds.MinX = math.Min(sec.Bounds.MinX, l.Bounds.MinX)
			sec.Bounds.MinY = math.Min(sec.Bounds.MinY, l.Bounds.MinY)
			sec.Bounds.MaxX = math.Max(sec.Bounds.MaxX, l.Bounds.MaxX)
			sec.Bounds.MaxY = math.Max(sec.Bounds.MaxY, l.Bounds.MaxY)
		}
	}
	for _, s := range sectors {
		s.Area = shoelaceArea(s)
	}

	buildVertexOwnerRings(vertices, lines)
}

// shoelaceArea sums the signed area of a sector's boundary lines via the
// shoelace formula over the sector's own line loop. Sectors with
// disjoint line sets (e.g. a moat sector) still produce a usable
// value; the absolute value is taken, so the result is never negative.
func shoelaceArea(s *Sector) float64 {
	var sum float64
	for _, l := range s.Lines {
		sum += l.From.X*l.To.Y - l.To.X*l.From.Y
	}
	return math.Abs(sum) / 2
}

// buildVertexOwnerRings fills each vertex's OwnerRing, sorted by the
// angle each incident line makes at that vertex. Nothing else in the
// core reads the rings; they are kept for callers.
func buildVertexOwnerRings(vertices []*Vertex, lines []*Line) {
	owners := make(map[*Vertex][]*LineOwner, len(vertices))
	for _, l := range lines {
		owners[l.From] = append(owners[l.From], &LineOwner{Line: l, ToVertex: false, Angle: l.Angle})
		backAngle := l.Angle + (1 << 31)
		owners[l.To] = append(owners[l.To], &LineOwner{Line: l, ToVertex: true, Angle: backAngle})
	}
	for _, v := range vertices {
		ring := owners[v]
		sort.Slice(ring, func(i, j int) bool { return ring[i].Angle < ring[j].Angle })
		v.OwnerRing = ring
	}
}
