package worldcore

// MobjTable owns every live mobj's links into the world: its sector
// list and its blockmap cell. There is no archetype component store
// here — a mobj is one concrete struct, and MobjTable is the only place
// its intrusive list pointers are spliced.
type MobjTable struct {
	world *WorldGeometryStore
	all   map[*Mobj]struct{}

	pendingRemovals []*Mobj
}

func NewMobjTable(world *WorldGeometryStore) *MobjTable {
	return &MobjTable{world: world, all: make(map[*Mobj]struct{})}
}

// Spawn registers a newly created mobj and links it at its current
// position. Callers create the Mobj value themselves (typically via
// GameRules.SpawnMob); MobjTable only owns linkage, not construction.
func (t *MobjTable) Spawn(m *Mobj) {
	t.all[m] = struct{}{}
	if len(m.touchingSectors) == 0 && !m.Flags.Has(MFNoSector) && m.Subsector != nil {
		sec := m.Subsector.Sector
		m.touchingSectors = append(m.touchingSectors, sec)
		m.FloorZ, m.CeilingZ = sec.Floor().Z, sec.Ceiling().Z
		m.FloorPlane, m.CeilingPlane = sec.Floor(), sec.Ceiling()
	}
	t.Link(m)
}

// Link inserts m into its sector's mobj list and the blockmap, using
// its current X/Y/Z/Subsector. Callers must have already set Subsector
// (SubsectorAt) and the touching-sectors list before calling Link.
func (t *MobjTable) Link(m *Mobj) {
	if !m.Flags.Has(MFNoSector) && m.Subsector != nil {
		sec := m.Subsector.Sector
		m.sectorNext = sec.mobjList
		m.sectorPrev = nil
		if m.sectorNext != nil {
			m.sectorNext.sectorPrev = m
		}
		sec.mobjList = m
	}
	if !m.Flags.Has(MFNoBlockmap) {
		t.world.Blockmap.linkMobj(m)
	}
}

// Unlink removes m from its sector list, its secondary touching-sector
// memberships and its blockmap cell, without deregistering it from the
// table; TryMove calls this before relinking at a new position.
func (t *MobjTable) Unlink(m *Mobj) {
	if m.sectorPrev != nil {
		m.sectorPrev.sectorNext = m.sectorNext
	} else if m.Subsector != nil && m.Subsector.Sector.mobjList == m {
		m.Subsector.Sector.mobjList = m.sectorNext
	}
	if m.sectorNext != nil {
		m.sectorNext.sectorPrev = m.sectorPrev
	}
	m.sectorNext, m.sectorPrev = nil, nil

	for _, s := range m.touchingSectors {
		s.removeTouchingMobj(m)
	}

	if !m.Flags.Has(MFNoBlockmap) {
		t.world.Blockmap.unlinkMobj(m)
	}
}

// Remove defers m's removal to the end of the current tick rather than
// splicing it out mid-iteration, so thinkers iterating a list they're
// also mutating never observe a half-removed mobj.
func (t *MobjTable) Remove(m *Mobj) {
	if m.removePending {
		return
	}
	m.removePending = true
	t.pendingRemovals = append(t.pendingRemovals, m)
}

// DrainRemovals unlinks and forgets every mobj queued by Remove since
// the last call. The Engine calls this once per tick, after every stage
// has run.
func (t *MobjTable) DrainRemovals() []*Mobj {
	if len(t.pendingRemovals) == 0 {
		return nil
	}
	removed := t.pendingRemovals
	t.pendingRemovals = nil
	for _, m := range removed {
		t.Unlink(m)
		delete(t.all, m)
	}
	return removed
}

// SectorIterator walks the live mobjs linked into sec. It reads each
// mobj's successor before calling visit, so visit may unlink the mobj
// it was given; other changes to the list during the walk are seen.
func (t *MobjTable) SectorIterator(sec *Sector, visit func(*Mobj) bool) {
	for m := sec.mobjList; m != nil; {
		next := m.sectorNext
		if !visit(m) {
			return
		}
		m = next
	}
}

// BoxIterator walks every mobj whose blockmap cell overlaps box.
func (t *MobjTable) BoxIterator(box AABB, visit func(*Mobj) bool) {
	t.world.Blockmap.MobjsInBox(box, visit)
}

// TouchingMobjsIterator walks every mobj currently linked into sec, plus
// every mobj centered in a different sector whose bounding square
// crosses into sec via a shared line. ChangeSector uses this so a plane
// move notices mobjs straddling the sector boundary, not just ones
// resting squarely inside it.
func (t *MobjTable) TouchingMobjsIterator(sec *Sector, visit func(*Mobj) bool) {
	for m := sec.mobjList; m != nil; {
		next := m.sectorNext
		if !visit(m) {
			return
		}
		m = next
	}
	extra := append([]*Mobj(nil), sec.touchingExtra...)
	for _, m := range extra {
		if !visit(m) {
			return
		}
	}
}

// Count returns the number of mobjs currently registered, including any
// queued for removal but not yet drained.
func (t *MobjTable) Count() int { return len(t.all) }
