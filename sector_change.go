package worldcore

// CrushResult reports what happened when a plane's movement was applied
// against the mobjs resting in its sector.
type CrushResult int

const (
	CrushNone     CrushResult = iota
	CrushBlocked              // at least one mobj prevents the plane from reaching TargetZ
	CrushDamaging             // the plane moved through mobjs, dealing crush damage
)

// crushDamageInterval is how many ticks pass between successive crush
// damage applications to the same mobj while it's pinned: the classic
// "every 4th tic" crusher cadence.
const crushDamageInterval = 4

// crushBloodMomentum scales the SubRandom draw ChangeSector uses for a
// crush-blood spray's horizontal momentum.
const crushBloodMomentum = 1.0 / 16.0

// ChangeSector re-evaluates every mobj touching sec after one or both
// of its planes have moved. It is the single entry point plane-moving
// thinkers (doors, lifts, crushers — all out of scope themselves) call
// once they've advanced Sector.Planes[i].Z. crushDamage is the per-hit
// damage a pinned mobj takes; zero means the plane does not crush, and
// the caller gets CrushBlocked back to reverse its direction.
func ChangeSector(w *World, sec *Sector, tick uint64, crushDamage int) CrushResult {
	result := CrushNone

	// Snapshot first: a mobj pushed out of sec might touch a different
	// sector's list by the time we're done, so don't walk the live list
	// while mutating it. TouchingMobjsIterator also catches mobjs
	// centered in an adjacent sector whose bounding square crosses into
	// sec through a shared line.
	var touching []*Mobj
	w.Mobjs.TouchingMobjsIterator(sec, func(m *Mobj) bool {
		touching = append(touching, m)
		return true
	})

	var ctx MoveContext
	for _, m := range touching {
		if m.removePending {
			continue
		}
		// No-blockmap mobjs were never linked into the blockmap to begin
		// with, so CheckPosition's mobj/line queries would silently miss
		// half of what it's meant to check; a camera is a viewpoint, not
		// a participant, and was never meant to be pushed around by a
		// plane. Both sit out ChangeSector entirely.
		if m.Flags.Has(MFNoBlockmap) || m.Flags.Has(MFCamera) {
			continue
		}

		CheckPosition(w, m, m.X, m.Y, &ctx)
		stillTouchesSec := false
		for _, s := range ctx.TouchingSectors {
			if s == sec {
				stillTouchesSec = true
				break
			}
		}
		if !stillTouchesSec {
			continue
		}

		floorZ, ceilZ := ctx.FloorZ, ctx.CeilingZ
		m.FloorZ, m.CeilingZ = floorZ, ceilZ
		m.FloorPlane, m.CeilingPlane = ctx.FloorPlane, ctx.CeilingPlane
		m.touchingSectors = append(m.touchingSectors[:0], ctx.TouchingSectors...)

		if ceilZ-floorZ < m.Height {
			if m.Flags.Has(MFCorpse) {
				// A crushed corpse flattens to its gibs state in place —
				// it stops blocking and stops being targetable, but stays
				// a thinker instead of vanishing.
				if w.Rules != nil {
					w.Rules.ChangeMobState(m, GibsStateSentinel)
				}
				m.Flags &^= MFSolid | MFShootable
				m.Radius, m.Height = 0, 0
				continue
			}
			if m.Flags.Has(MFDropped) {
				// A dropped item never blocks the plane and never takes
				// crush damage: it's just gone, crushing plane or not.
				if w.Rules != nil {
					w.Rules.RemoveMob(m)
				}
				continue
			}
			if !m.Flags.Has(MFShootable) {
				continue
			}
			if crushDamage <= 0 {
				result = CrushBlocked
				continue
			}
			result = CrushDamaging
			if tick%crushDamageInterval == 0 && w.Rules != nil {
				w.Rules.DamageMob(m, nil, nil, crushDamage, false)
				spawnCrushBlood(w, m)
			}
			continue
		}

		if m.Z < floorZ {
			m.Z = floorZ
		} else if m.Z+m.Height > ceilZ && m.OnMobj == nil {
			m.Z = ceilZ - m.Height
		}
	}

	return result
}

// spawnCrushBlood drops a blood-spray mob at m's center with a small
// random horizontal kick drawn from the shared random table, unless m
// opts out of bleeding entirely.
func spawnCrushBlood(w *World, m *Mobj) {
	if w.Rules == nil || m.Flags.Has(MFNoBlood) {
		return
	}
	blood := w.Rules.SpawnMob(BloodMobjType, m.X, m.Y, m.Z+m.Height/2, 0, 0)
	if blood == nil {
		return
	}
	blood.MomX = float64(w.Rand.SubRandom()) * crushBloodMomentum
	blood.MomY = float64(w.Rand.SubRandom()) * crushBloodMomentum
}
