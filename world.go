package worldcore

import "github.com/google/uuid"

// WorldGeometryStore is the immutable-after-load map data: vertices,
// lines, sectors, the BSP tree and its subsectors, polyobjs, and the
// derived blockmap. It is built once per map and never
// mutated except for the plane heights that plane-moving thinkers
// advance before calling ChangeSector and the
// polyobj translate/rotate transforms; everything else — topology,
// bounding boxes, the BSP itself — is fixed for the store's lifetime.
// There is no streaming or region-paging model: a map is small enough
// to live resident for its whole session.
type WorldGeometryStore struct {
	LoadID uuid.UUID

	Vertices []*Vertex
	Lines    []*Line
	Sides    []*Side
	Sectors  []*Sector

	Subsectors []*Subsector
	Nodes      []*BSPNode
	RootNode   BSPChild // may itself be a leaf, for single-subsector maps

	Polyobjs []*Polyobj

	Blockmap *Blockmap

	Reject *RejectMatrix

	bounds     AABB
	validCount int
}

// NewWorldGeometryStore assembles a store from already-built pieces and
// runs the derived-data pass (BuildGeometry, blockmap, BSP). Callers
// that parse their own map format call this once after populating the
// raw vertices/lines/sectors/polyobjs slices.
func NewWorldGeometryStore(vertices []*Vertex, lines []*Line, sides []*Side, sectors []*Sector, polyobjs []*Polyobj) *WorldGeometryStore {
	BuildGeometry(vertices, lines, sectors)

	w := &WorldGeometryStore{
		LoadID:   uuid.New(),
		Vertices: vertices,
		Lines:    lines,
		Sides:    sides,
		Sectors:  sectors,
		Polyobjs: polyobjs,
	}

	w.bounds = AABB{MinX: 1e30, MinY: 1e30, MaxX: -1e30, MaxY: -1e30}
	for _, s := range sectors {
		w.bounds.MinX = minf(w.bounds.MinX, s.Bounds.MinX)
		w.bounds.MinY = minf(w.bounds.MinY, s.Bounds.MinY)
		w.bounds.MaxX = maxf(w.bounds.MaxX, s.Bounds.MaxX)
		w.bounds.MaxY = maxf(w.bounds.MaxY, s.Bounds.MaxY)
	}

	w.Subsectors, w.Nodes, w.RootNode = BuildBSP(sectors)
	for _, p := range polyobjs {
		indexPolyobj(w, p)
	}

	w.Blockmap = NewBlockmap(w.bounds, lines)
	// Polyobj-owned lines aren't part of any sector's Lines list (they're
	// never fed to BuildBSP), so PathTraverse would never find them
	// without this: insert them into the same blockmap the raw map lines
	// use, so LinesInBox and the Traverser see them for free. Translate
	// and Rotate keep them relinked afterward.
	for _, p := range polyobjs {
		for _, l := range p.Lines {
			w.Blockmap.insertLine(l)
		}
	}
	w.Reject = NewRejectMatrix(len(sectors))

	return w
}

func (w *WorldGeometryStore) Bounds() AABB { return w.bounds }

// NewWorld assembles the live simulation World around a built
// WorldGeometryStore: its mobj table, config, rules boundary and
// random table. NewEngine takes this, not the bare geometry
// store, so every tick-time operation has a single struct to read from.
func NewWorld(geometry *WorldGeometryStore, rules GameRules, config Config, logger Logger) *World {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &World{
		Geometry: geometry,
		Mobjs:    NewMobjTable(geometry),
		Config:   config,
		Rules:    rules,
		Rand:     NewRandomTable(),
		Log:      logger,
	}
}

// NextValidCount returns a monotonically increasing counter used to
// deduplicate traversal visits without per-call allocation. It is the
// single counter for the whole map: every traversal — movement, sight,
// hitscan, reject precomputation — draws from this one sequence, since
// they all tag the same per-line and per-mobj fields.
func (w *WorldGeometryStore) NextValidCount() int {
	w.validCount++
	return w.validCount
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
