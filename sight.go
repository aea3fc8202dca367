package worldcore

// RejectMatrix is the precomputed sector-pair visibility table. A set
// bit means the two sectors are known to never see each other regardless
// of geometry, letting CheckSight skip the BSP walk entirely for most
// pairs.
type RejectMatrix struct {
	n    int
	bits []uint64
}

func NewRejectMatrix(sectorCount int) *RejectMatrix {
	n := sectorCount
	words := (n*n + 63) / 64
	if words == 0 {
		words = 1
	}
	return &RejectMatrix{n: n, bits: make([]uint64, words)}
}

func (r *RejectMatrix) index(a, b int) int { return a*r.n + b }

// SetBlocked marks the (a,b) and (b,a) pairs as never mutually visible.
func (r *RejectMatrix) SetBlocked(a, b int) {
	r.setBit(r.index(a, b))
	r.setBit(r.index(b, a))
}

func (r *RejectMatrix) setBit(i int) { r.bits[i/64] |= 1 << uint(i%64) }

// Blocked reports whether the (a,b) pair is precomputed as never
// visible. Out-of-range indices report false rather than panicking, the
// same behavior as a missing or undersized reject table.
func (r *RejectMatrix) Blocked(a, b int) bool {
	if a < 0 || b < 0 || a >= r.n || b >= r.n {
		return false
	}
	i := r.index(a, b)
	return r.bits[i/64]&(1<<uint(i%64)) != 0
}

// SightResult is the three-outcome verdict CheckSight produces: blocked
// by solid geometry, blocked only by a closed two-sided opening
// (near-miss, useful for "almost saw you" AI logic), or clear.
type SightResult int

const (
	SightBlocked SightResult = iota
	SightBlockedByClosedDoor
	SightClear
)

// CheckSight tests whether eye (at height eyeZ above from's floor) can
// see target (at height targetZ above its floor), consulting the reject
// matrix first and falling back to a BSP line-of-sight walk.
func CheckSight(w *WorldGeometryStore, from *Mobj, eyeZ float64, target *Mobj, targetZ float64) SightResult {
	if from.Subsector == nil || target.Subsector == nil || target.Flags.Has(MFCamera) {
		return SightBlocked
	}
	fs, ts := from.Sector(), target.Sector()
	if fs != nil && ts != nil && w.Reject.Blocked(fs.ID, ts.ID) {
		return SightBlocked
	}

	x0, y0, z0 := from.X, from.Y, from.FloorZ+eyeZ
	x1, y1, z1 := target.X, target.Y, target.FloorZ+targetZ

	closedDoor := false
	vc := w.NextValidCount()
	blocked := false
	PathTraverse(w, x0, y0, x1, y1, TraversePathLines, vc, func(hit TraverseHit) bool {
		if hit.Line == nil {
			return true
		}
		l := hit.Line
		if !l.TwoSided() || l.Flags&LineBlockEverything != 0 {
			blocked = true
			return false
		}
		op := hit.Opening
		if op.Range <= 0 {
			closedDoor = true
			blocked = true
			return false
		}
		// Interpolate sight-line height at the intersection and compare
		// against the opening; a miss here means geometry occludes even
		// though the line itself is open (e.g. a high sill).
		t := hit.Fraction
		sightZ := z0 + (z1-z0)*t
		if sightZ < op.Bottom || sightZ > op.Top {
			blocked = true
			return false
		}
		return true
	})

	switch {
	case !blocked:
		return SightClear
	case closedDoor:
		return SightBlockedByClosedDoor
	default:
		return SightBlocked
	}
}

// BuildRejectMatrix computes reject bits in-process, suitable for
// dynamically generated maps rather than build-time lump
// precomputation; either way the result is cached once in
// WorldGeometryStore.Reject. A reject bit asserts two sectors provably
// cannot see each other, so a pair is marked only when every probe
// between the two sectors' sample points is obstructed — one clear
// corner-to-corner line and the pair stays visible. The sample set
// (center plus inset corners) is a conservative approximation: it can
// leave a truly blocked pair unmarked, which only costs CheckSight a
// BSP walk, never a wrong answer.
func BuildRejectMatrix(w *WorldGeometryStore) {
	n := len(w.Sectors)
	probes := make([][][3]float64, n)
	for i, s := range w.Sectors {
		probes[i] = rejectProbePoints(s)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			blocked := true
		pairs:
			for _, a := range probes[i] {
				for _, b := range probes[j] {
					if straightLineClear(w, a[0], a[1], a[2], b[0], b[1], b[2]) {
						blocked = false
						break pairs
					}
				}
			}
			if blocked {
				w.Reject.SetBlocked(i, j)
			}
		}
	}
}

// rejectProbePoints returns the sample points BuildRejectMatrix probes
// for a sector: its bounding-box center plus the four corners pulled a
// quarter of the way in, all at roughly eye height above the floor.
func rejectProbePoints(s *Sector) [][3]float64 {
	cx := (s.Bounds.MinX + s.Bounds.MaxX) / 2
	cy := (s.Bounds.MinY + s.Bounds.MaxY) / 2
	z := s.Floor().Z + 41
	const inset = 0.25
	pts := [][3]float64{{cx, cy, z}}
	for _, c := range [4][2]float64{
		{s.Bounds.MinX, s.Bounds.MinY}, {s.Bounds.MaxX, s.Bounds.MinY},
		{s.Bounds.MinX, s.Bounds.MaxY}, {s.Bounds.MaxX, s.Bounds.MaxY},
	} {
		pts = append(pts, [3]float64{c[0] + (cx-c[0])*inset, c[1] + (cy-c[1])*inset, z})
	}
	return pts
}

func straightLineClear(w *WorldGeometryStore, x0, y0, z0, x1, y1, z1 float64) bool {
	vc := w.NextValidCount()
	clear := true
	PathTraverse(w, x0, y0, x1, y1, TraversePathLines, vc, func(hit TraverseHit) bool {
		if hit.Line == nil {
			return true
		}
		l := hit.Line
		if !l.TwoSided() || l.Flags&LineBlockEverything != 0 {
			clear = false
			return false
		}
		op := hit.Opening
		t := hit.Fraction
		sightZ := z0 + (z1-z0)*t
		if op.Range <= 0 || sightZ < op.Bottom || sightZ > op.Top {
			clear = false
			return false
		}
		return true
	})
	return clear
}
