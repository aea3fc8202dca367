package worldcore

import "github.com/go-gl/mathgl/mgl32"

// BAMAngle is a binary angle measure: the full circle mapped onto
// [0, 1<<32), so wraparound is free unsigned-integer overflow instead of
// a modulo. Lines, mobjs and the Traverser all use it.
type BAMAngle uint32

// SlopeType classifies a line's direction for the fast paths the
// Movement Engine and Sliding code take.
type SlopeType int

const (
	SlopeHorizontal SlopeType = iota
	SlopeVertical
	SlopePositive
	SlopeNegative
)

// LineFlags are the per-line behavior bits affecting blocking and use.
type LineFlags uint32

const (
	LineBlocking LineFlags = 1 << iota
	LineBlockMonsters
	LineTwoSided
	LineBlockEverything
	LinePassThroughUse
	LineMappedByPlayer0
	LineMappedByPlayer1
	LineMappedByPlayer2
	LineMappedByPlayer3
)

// AABB is an axis-aligned bounding box in the map plane.
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b AABB) Overlaps(o AABB) bool {
	return b.MinX <= o.MaxX && b.MaxX >= o.MinX && b.MinY <= o.MaxY && b.MaxY >= o.MinY
}

// Vertex is an immutable map coordinate plus the ring of lines that use
// it, sorted by the angle each line makes at this vertex.
type Vertex struct {
	ID        int
	X, Y      float64
	OwnerRing []*LineOwner
}

// LineOwner is one entry of a vertex's line-owner ring.
type LineOwner struct {
	Line     *Line
	ToVertex bool // true if this line's `To` endpoint is the owning vertex
	Angle    BAMAngle
}

// Side references its owning line and optional sector, and carries the
// three texture surfaces. Material/tint/blend payload is opaque to the
// core: worldcore threads it through load and query but never
// interprets it, since rendering is out of scope for this package.
type Side struct {
	ID                  int
	Sector              *Sector
	Top, Middle, Bottom Surface
	// SoundEmitters are per-surface emitter anchors; opaque to the core.
	SoundEmitters [3]SoundEmitter
	// ShadowData is the FakeRadio per-edge shadow cache; opaque to the core.
	ShadowData any
}

// Surface is a single textured plane of a Side or Plane.
type Surface struct {
	Material         string
	OffsetX, OffsetY float64
	Tint             [3]float32
	Alpha            float32
	BlendMode        int
}

// SoundEmitter anchors a positional sound source; worldcore only stores
// the position, the audio subsystem (out of scope) does the rest.
type SoundEmitter struct {
	X, Y, Z float64
}

// Line is an ordered pair of vertices with up to two sides.
type Line struct {
	ID         int
	From, To   *Vertex
	Direction  mgl32.Vec2
	Length     float64
	Angle      BAMAngle
	Bounds     AABB
	FrontSide  *Side
	BackSide   *Side // nil unless two-sided
	Flags      LineFlags
	SlopeType  SlopeType
	SpecialID  int
	Args       [5]int
	validCount int
}

// TwoSided reports whether the line has a back side and therefore
// defines an opening between two sectors.
func (l *Line) TwoSided() bool { return l.BackSide != nil }

// FrontSector and BackSector are convenience accessors; BackSector is
// nil for one-sided lines.
func (l *Line) FrontSector() *Sector {
	if l.FrontSide == nil {
		return nil
	}
	return l.FrontSide.Sector
}

func (l *Line) BackSector() *Sector {
	if l.BackSide == nil {
		return nil
	}
	return l.BackSide.Sector
}

// Plane belongs to one sector at a fixed index (0=floor, 1=ceiling,
// >=2 extra).
type Plane struct {
	Index   int
	Z       float64
	TargetZ float64
	Speed   float64 // units per tic, signed
	Surface Surface
	Normal  mgl32.Vec3
	PrevZ   float64 // previous-tick height, for visual interpolation

	// Sky marks this plane as an open-sky surface rather than a real
	// textured boundary; LineAttack consults it to suppress the puff a
	// hitscan would otherwise spawn against it.
	Sky bool
}

// ReverbDescriptor is an opaque audio parameter bundle; the core stores
// it on Sector but never reads it, since audio is out of scope.
type ReverbDescriptor struct {
	SpaceSize float32
	Decay     float32
	Damping   float32
}

// Sector is a list of planes plus everything the movement/propagation
// code needs to find mobjs and bounding lines.
type Sector struct {
	ID           int
	Planes       []Plane // Planes[0]=floor, Planes[1]=ceiling by convention
	LightLevel   int
	Tint         [3]float32
	Bounds       AABB
	Area         float64
	Lines        []*Line
	Subsectors   []*Subsector
	SoundEmitter SoundEmitter
	Reverb       ReverbDescriptor

	// mobjList is the head of the sector's linked list of mobjs, walked
	// via Mobj.sectorNext/sectorPrev in Link/Unlink.
	mobjList *Mobj

	// touchingExtra holds mobjs that overlap this sector without being
	// centered in it (straddling a shared line into an adjacent sector).
	// TouchingMobjsIterator walks mobjList and touchingExtra together.
	touchingExtra []*Mobj
}

func (s *Sector) addTouchingMobj(m *Mobj) {
	for _, existing := range s.touchingExtra {
		if existing == m {
			return
		}
	}
	s.touchingExtra = append(s.touchingExtra, m)
}

func (s *Sector) removeTouchingMobj(m *Mobj) {
	for i, existing := range s.touchingExtra {
		if existing == m {
			s.touchingExtra[i] = s.touchingExtra[len(s.touchingExtra)-1]
			s.touchingExtra = s.touchingExtra[:len(s.touchingExtra)-1]
			return
		}
	}
}

func (s *Sector) Floor() *Plane   { return &s.Planes[0] }
func (s *Sector) Ceiling() *Plane { return &s.Planes[1] }

// Subsector is a convex BSP leaf.
type Subsector struct {
	ID      int
	Sector  *Sector
	Polygon []mgl32.Vec2 // convex, in sector space
	Polyobj *Polyobj     // nil unless a polyobj is indexed here
}

// BSPNodeChild tags which side of a BSPNode a child occupies.
type BSPNodeChild int

const (
	ChildRight BSPNodeChild = iota
	ChildLeft
)

// BSPNode is an interior partition of the BSP tree. Each child is
// either another node or a leaf (subsector); IsLeaf reports which,
// mirroring the flat-array encoding real Doom-family engines use (high
// bit of the child index marks a leaf) without exposing that bit-trick
// in the public type.
type BSPNode struct {
	Origin                  mgl32.Vec2
	Direction               mgl32.Vec2
	RightChild, LeftChild   BSPChild
	RightBounds, LeftBounds AABB
}

// BSPChild is either an interior node index or a subsector index.
type BSPChild struct {
	IsLeaf    bool
	NodeIndex int
	Leaf      *Subsector
}

// Polyobj is a rigid group of lines translated/rotated together,
// indexed into exactly one subsector and walked by the Traverser
// separately from the BSP proper.
type Polyobj struct {
	ID       int
	Lines    []*Line
	Vertices []*Vertex // the polyobj's own vertices, translated as a unit
	Origin   mgl32.Vec2
	Angle    BAMAngle
	Subsec   *Subsector
}

// Translate moves every vertex of the polyobj by (dx, dy), refreshes each
// owned line's direction/length/bounds, and relinks each line in bm so
// the Traverser keeps finding it at its new position. bm may be nil (a
// polyobj built outside a loaded WorldGeometryStore, e.g. in a test),
// in which case only the geometry is updated.
func (p *Polyobj) Translate(bm *Blockmap, dx, dy float64) {
	p.Origin[0] += float32(dx)
	p.Origin[1] += float32(dy)
	for _, v := range p.Vertices {
		v.X += dx
		v.Y += dy
	}
	for _, l := range p.Lines {
		old := l.Bounds
		recomputeLineGeometry(l)
		if bm != nil {
			bm.RelinkLine(l, old)
		}
	}
}

// Rotate turns the polyobj by delta (a BAMAngle) about its Origin and
// relinks each owned line in bm, the rotational counterpart to Translate.
func (p *Polyobj) Rotate(bm *Blockmap, delta BAMAngle) {
	p.Angle += delta
	sin, cos := bamSinCos(delta)
	ox, oy := float64(p.Origin.X()), float64(p.Origin.Y())
	for _, v := range p.Vertices {
		dx, dy := v.X-ox, v.Y-oy
		v.X = ox + dx*cos - dy*sin
		v.Y = oy + dx*sin + dy*cos
	}
	for _, l := range p.Lines {
		old := l.Bounds
		recomputeLineGeometry(l)
		if bm != nil {
			bm.RelinkLine(l, old)
		}
	}
}

// LineOpening is the computed vertical gap at a two-sided line
// intersection.
type LineOpening struct {
	Top      float64
	Bottom   float64
	Range    float64
	LowFloor float64
}

// ComputeOpening returns the Line Opening for a two-sided line. Calling
// it on a one-sided line is a programmer error: it panics in Debug
// builds, returns a zero-range opening otherwise.
func ComputeOpening(l *Line) LineOpening {
	if !l.TwoSided() {
		if Debug {
			panic("ComputeOpening: line has no back side")
		}
		return LineOpening{}
	}
	front, back := l.FrontSector(), l.BackSector()
	top := front.Ceiling().Z
	if back.Ceiling().Z < top {
		top = back.Ceiling().Z
	}
	bottom := front.Floor().Z
	if back.Floor().Z > bottom {
		bottom = back.Floor().Z
	}
	lowFloor := front.Floor().Z
	if back.Floor().Z < lowFloor {
		lowFloor = back.Floor().Z
	}
	return LineOpening{Top: top, Bottom: bottom, Range: top - bottom, LowFloor: lowFloor}
}

// Debug gates out-of-range property query panics. Off by default; the
// embedding test suite flips it on.
var Debug = false
