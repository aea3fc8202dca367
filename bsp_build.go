package worldcore

import "github.com/go-gl/mathgl/mgl32"

// bspSeg is one directed line segment fed to the builder, tagged with
// the sector on the side BuildBSP is currently splitting. Two-sided
// lines contribute one segment per sector they bound.
type bspSeg struct {
	line           *Line
	sector         *Sector
	x0, y0, x1, y1 float64
}

// BuildBSP partitions the map's line segments into a binary tree of
// convex subsectors. Each leaf becomes a Subsector tagged with the
// sector that contributed the most segments to it, which is all
// SubsectorAt's point classification needs.
func BuildBSP(sectors []*Sector) ([]*Subsector, []*BSPNode, BSPChild) {
	var segs []bspSeg
	for _, s := range sectors {
		for _, l := range s.Lines {
			if l.FrontSector() == s {
				segs = append(segs, bspSeg{line: l, sector: s, x0: l.From.X, y0: l.From.Y, x1: l.To.X, y1: l.To.Y})
			} else if l.BackSector() == s {
				segs = append(segs, bspSeg{line: l, sector: s, x0: l.To.X, y0: l.To.Y, x1: l.From.X, y1: l.From.Y})
			}
		}
	}

	var nodes []*BSPNode
	var subsectors []*Subsector

	var build func(segs []bspSeg, depth int) BSPChild
	build = func(segs []bspSeg, depth int) BSPChild {
		if len(segs) == 0 || depth > 48 || allSameSector(segs) {
			sub := &Subsector{ID: len(subsectors), Sector: dominantSector(segs), Polygon: segPolygon(segs)}
			subsectors = append(subsectors, sub)
			return BSPChild{IsLeaf: true, Leaf: sub}
		}

		part := segs[pickPartition(segs)]
		px, py := part.x0, part.y0
		dx, dy := part.x1-part.x0, part.y1-part.y0

		var front, back []bspSeg
		for _, s := range segs {
			side0 := lineSide(px, py, dx, dy, s.x0, s.y0)
			side1 := lineSide(px, py, dx, dy, s.x1, s.y1)
			switch {
			case side0 >= 0 && side1 >= 0:
				front = append(front, s)
			case side0 <= 0 && side1 <= 0:
				back = append(back, s)
			default:
				mx, my, ok := segIntersect(px, py, dx, dy, s.x0, s.y0, s.x1, s.y1)
				if !ok {
					front = append(front, s)
					continue
				}
				a := s
				a.x1, a.y1 = mx, my
				b := s
				b.x0, b.y0 = mx, my
				if side0 > 0 {
					front = append(front, a)
					back = append(back, b)
				} else {
					back = append(back, a)
					front = append(front, b)
				}
			}
		}

		// Degenerate split (every seg collinear with the partition):
		// stop subdividing rather than recursing forever.
		if len(front) == 0 || len(back) == 0 {
			sub := &Subsector{ID: len(subsectors), Sector: dominantSector(segs), Polygon: segPolygon(segs)}
			subsectors = append(subsectors, sub)
			return BSPChild{IsLeaf: true, Leaf: sub}
		}

		node := &BSPNode{
			Origin:      mgl32.Vec2{float32(px), float32(py)},
			Direction:   mgl32.Vec2{float32(dx), float32(dy)},
			RightBounds: segBounds(front),
			LeftBounds:  segBounds(back),
		}
		idx := len(nodes)
		nodes = append(nodes, node)
		node.RightChild = build(front, depth+1)
		node.LeftChild = build(back, depth+1)
		return BSPChild{IsLeaf: false, NodeIndex: idx}
	}

	root := build(segs, 0)
	return subsectors, nodes, root
}

func allSameSector(segs []bspSeg) bool {
	if len(segs) == 0 {
		return true
	}
	first := segs[0].sector
	for _, s := range segs[1:] {
		if s.sector != first {
			return false
		}
	}
	return true
}

func dominantSector(segs []bspSeg) *Sector {
	counts := map[*Sector]int{}
	var best *Sector
	bestN := -1
	for _, s := range segs {
		counts[s.sector]++
		if counts[s.sector] > bestN {
			best, bestN = s.sector, counts[s.sector]
		}
	}
	return best
}

func segPolygon(segs []bspSeg) []mgl32.Vec2 {
	poly := make([]mgl32.Vec2, 0, len(segs)*2)
	for _, s := range segs {
		poly = append(poly, mgl32.Vec2{float32(s.x0), float32(s.y0)}, mgl32.Vec2{float32(s.x1), float32(s.y1)})
	}
	return poly
}

func segBounds(segs []bspSeg) AABB {
	b := AABB{MinX: 1e30, MinY: 1e30, MaxX: -1e30, MaxY: -1e30}
	for _, s := range segs {
		b.MinX = minf(b.MinX, minf(s.x0, s.x1))
		b.MinY = minf(b.MinY, minf(s.y0, s.y1))
		b.MaxX = maxf(b.MaxX, maxf(s.x0, s.x1))
		b.MaxY = maxf(b.MaxY, maxf(s.y0, s.y1))
	}
	return b
}

// pickPartition picks the segment in the middle of the list, in list
// order, as the split line, without the cost of evaluating every
// candidate's front/back split quality.
func pickPartition(segs []bspSeg) int {
	return len(segs) / 2
}

// lineSide returns >0 if (x,y) is left of the partition ray, <0 if
// right, 0 if on it.
func lineSide(px, py, dx, dy, x, y float64) float64 {
	return dx*(y-py) - dy*(x-px)
}

func segIntersect(px, py, dx, dy, x0, y0, x1, y1 float64) (float64, float64, bool) {
	sdx, sdy := x1-x0, y1-y0
	denom := dx*sdy - dy*sdx
	if denom == 0 {
		return 0, 0, false
	}
	t := ((x0-px)*sdy - (y0-py)*sdx) / denom
	return px + dx*t, py + dy*t, true
}

// SubsectorAt returns the convex leaf containing (x,y) by a
// root-to-leaf descent.
func (w *WorldGeometryStore) SubsectorAt(x, y float64) *Subsector {
	child := w.RootNode
	for !child.IsLeaf {
		n := w.Nodes[child.NodeIndex]
		side := lineSide(float64(n.Origin.X()), float64(n.Origin.Y()), float64(n.Direction.X()), float64(n.Direction.Y()), x, y)
		if side >= 0 {
			child = n.RightChild
		} else {
			child = n.LeftChild
		}
	}
	return child.Leaf
}

// indexPolyobj locates a polyobj's subsector by its origin and records
// the back-reference both ways.
func indexPolyobj(w *WorldGeometryStore, p *Polyobj) {
	sub := w.SubsectorAt(float64(p.Origin.X()), float64(p.Origin.Y()))
	p.Subsec = sub
	if sub != nil {
		sub.Polyobj = p
	}
}
