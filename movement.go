package worldcore

import "math"

// World is the live simulation the Movement Engine, ChangeSector and
// hitscan code all operate on: the immutable geometry plus the mutable
// mobj table, config and rules boundary. It is the concrete type
// Engine wires into every tick stage.
type World struct {
	Geometry *WorldGeometryStore
	Mobjs    *MobjTable
	Config   Config
	Rules    GameRules
	Rand     *RandomTable
	Log      Logger

	// Scheduler, if set, lets RadiusAttack also sweep no-blockmap mobjs
	// a blockmap box query would never find. Nil is the common case: most
	// embedders never spawn MFNoBlockmap mobjs, so the blockmap sweep
	// alone is enough.
	Scheduler ThinkerScheduler
}

// nextValidCount delegates to the geometry store's counter: there is
// exactly one validCount sequence per loaded map, shared by every
// traversal, or the per-line/per-mobj dedup tags would collide across
// counters.
func (w *World) nextValidCount() int {
	return w.Geometry.NextValidCount()
}

// CheckPosition runs the check phase of TryMove: it determines whether
// mob could occupy (x,y) at its current Z and radius, without moving or
// relinking it, filling ctx with everything the commit phase and the
// caller's slide logic need. Thing collisions found on the way can still
// have side effects (special touches, skull-fly and missile damage,
// pushes). It returns false if the position is blocked outright.
func CheckPosition(w *World, mob *Mobj, x, y float64, ctx *MoveContext) bool {
	ctx.reset(mob, x, y)

	sub := w.Geometry.SubsectorAt(x, y)
	if sub == nil || sub.Sector == nil {
		return false
	}
	ctx.FloorZ = sub.Sector.Floor().Z
	ctx.CeilingZ = sub.Sector.Ceiling().Z
	ctx.DropoffZ = ctx.FloorZ
	ctx.FloorPlane = sub.Sector.Floor()
	ctx.CeilingPlane = sub.Sector.Ceiling()
	ctx.TouchingSectors = append(ctx.TouchingSectors, sub.Sector)

	if mob.Flags.Has(MFNoClip) {
		return true
	}

	box := AABB{MinX: x - mob.Radius, MinY: y - mob.Radius, MaxX: x + mob.Radius, MaxY: y + mob.Radius}
	vc := w.nextValidCount()

	blocked := false

	if mob.Flags&MFNoBlockmap == 0 {
		// Mobjs hash into the blockmap by center, so the query box has to
		// reach one max radius beyond the destination square to find a fat
		// neighbor whose center sits in an adjacent cell.
		query := AABB{
			MinX: box.MinX - maxMobjRadius, MinY: box.MinY - maxMobjRadius,
			MaxX: box.MaxX + maxMobjRadius, MaxY: box.MaxY + maxMobjRadius,
		}
		w.Mobjs.BoxIterator(query, func(other *Mobj) bool {
			if other == mob {
				return true
			}
			if !checkThing(w, mob, other, ctx) {
				blocked = true
				return false
			}
			return true
		})
	}
	if blocked {
		return false
	}

	w.Geometry.Blockmap.LinesInBox(box, vc, func(l *Line) bool {
		if !checkLine(w, mob, box, l, ctx) {
			blocked = true
			return false
		}
		return true
	})

	return !blocked
}

// checkThing applies the per-thing collision rules: radius overlap
// test, the pickup/touch-special exception, the missile-vs-shootable
// rules (species/infighting, ripping, skull-fly charges), the pushable-
// momentum exception, and the MFPassMobj stand-on-top exception for
// whatever solid mobj is left.
func checkThing(w *World, mob, other *Mobj, ctx *MoveContext) bool {
	dx := math.Abs(ctx.X - other.X)
	dy := math.Abs(ctx.Y - other.Y)
	if dx >= mob.Radius+other.Radius || dy >= mob.Radius+other.Radius {
		return true
	}

	if other.Flags.Has(MFPickup) {
		if mob.Player != nil && w.Rules != nil {
			w.Rules.TouchSpecial(other, mob)
		}
		return true
	}

	if mob.Flags.Has(MFMissile) {
		return checkMissileVsThing(w, mob, other, ctx)
	}

	if mob.Flags.Has(MFSkullFly) && other.Flags.Has(MFSolid) {
		if w.Rules != nil {
			w.Rules.DamageMob(other, mob, mob.Target, mob.DamageOverride, false)
		}
		mob.Flags &^= MFSkullFly
		mob.MomX, mob.MomY, mob.MomZ = 0, 0, 0
		ctx.BlockingMobj = other
		return false
	}

	if !other.Flags.Has(MFSolid) {
		return true
	}

	if other.Flags.Has(MFPushable) && !mob.Flags.Has(MFCannotPush) {
		impartPushMomentum(w, mob, other)
		return true
	}

	top := other.Z + other.Height

	if w.Config.MoveCheckZ && (mob.Z >= top || mob.Z+mob.Height <= other.Z) {
		return true
	}

	if other.Flags.Has(MFPassMobj) || w.Config.AllowMonsterFloatOverBlocking {
		if mob.Z >= top {
			// Standing on (or flying over) the other mobj: its top becomes
			// part of the floor envelope instead of a wall.
			if top > ctx.FloorZ {
				ctx.FloorZ = top
			}
			if ctx.OnMobj == nil || other.Z > ctx.OnMobj.Z {
				ctx.OnMobj = other
			}
			return true
		}
		if mob.Z+mob.Height <= other.Z {
			return true
		}
	}

	// A non-corpse player may mount a solid mobj whose top is within step
	// reach, the same way a 24-unit ledge is climbable.
	if mob.Player != nil && !mob.Flags.Has(MFCorpse) && top-mob.Z <= StepHeight {
		if top > ctx.FloorZ {
			ctx.FloorZ = top
		}
		ctx.OnMobj = other
		return true
	}

	ctx.BlockingMobj = other
	return false
}

// checkMissileVsThing applies the missile subset of checkThing's rules:
// a shootable target of the missile's own species is passed through
// unless infighting is on, a hit otherwise always damages the target,
// a ripping missile keeps flying afterward, and anything else stops it
// dead.
func checkMissileVsThing(w *World, mob, other *Mobj, ctx *MoveContext) bool {
	if !other.Flags.Has(MFShootable) {
		if other.Flags.Has(MFSolid) {
			ctx.BlockingMobj = other
			return false
		}
		return true
	}
	if mob.Target != nil && mob.Target.Type == other.Type && !w.Config.MonsterInfighting {
		return true
	}
	if w.Rules != nil {
		w.Rules.DamageMob(other, mob, mob.Target, mob.DamageOverride, false)
	}
	if mob.Flags.Has(MFRip) {
		return true
	}
	ctx.BlockingMobj = other
	return false
}

// pushMomentumFraction is how much of the pusher's own momentum gets
// imparted to a pushable mobj it bumps into, each tick the overlap
// persists.
const pushMomentumFraction = 0.25

// impartPushMomentum shoves other in the direction mob is moving,
// optionally capping the result to mob's own momentum so a pushable
// mobj can never end up moving faster than whatever pushed it.
func impartPushMomentum(w *World, mob, other *Mobj) {
	other.MomX += mob.MomX * pushMomentumFraction
	other.MomY += mob.MomY * pushMomentumFraction
	if w.Config.PushableMomentumLimitedToPusher {
		other.MomX = clampMagnitude(other.MomX, mob.MomX)
		other.MomY = clampMagnitude(other.MomY, mob.MomY)
	}
}

func clampMagnitude(v, limit float64) float64 {
	limit = math.Abs(limit)
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// checkLine applies the per-line collision rules: one-sided lines
// always block, two-sided lines update the running floor/ceiling/
// dropoff extrema from the Line Opening, and special lines queue a
// crossing for the commit phase.
func checkLine(w *World, mob *Mobj, box AABB, l *Line, ctx *MoveContext) bool {
	if !l.Bounds.Overlaps(box) {
		return true
	}
	if boxOnLineSide(box, l) != -1 {
		return true // box entirely on one side, doesn't actually cross
	}

	if l.Flags&LineBlockEverything != 0 {
		ctx.BlockingLine = l
		return false
	}
	if !l.TwoSided() {
		if escapingStuckLine(mob, l, ctx.X, ctx.Y) {
			return true
		}
		ctx.BlockingLine = l
		return false
	}
	if !mob.Flags.Has(MFMissile) {
		if l.Flags&LineBlocking != 0 {
			ctx.BlockingLine = l
			return false
		}
		if l.Flags&LineBlockMonsters != 0 && mob.Player == nil && mob.Flags.Has(MFCountKill) {
			ctx.BlockingLine = l
			return false
		}
	}

	op := ComputeOpening(l)
	if op.Top < ctx.CeilingZ {
		ctx.CeilingZ = op.Top
		ctx.CeilingPlane = minCeilingPlane(l)
	}
	if op.Bottom > ctx.FloorZ {
		ctx.FloorZ = op.Bottom
		ctx.FloorPlane = maxFloorPlane(l)
	}
	if op.LowFloor < ctx.DropoffZ {
		ctx.DropoffZ = op.LowFloor
	}
	if op.Range < mob.Height {
		ctx.BlockingLine = l
		return false
	}
	if op.Top-mob.Z < mob.Height {
		ctx.BlockingLine = l
		return false
	}
	if op.Bottom-mob.Z > StepHeight {
		ctx.BlockingLine = l
		return false
	}

	if front := l.FrontSector(); front != nil {
		addTouching(ctx, front)
	}
	if back := l.BackSector(); back != nil {
		addTouching(ctx, back)
	}

	if l.SpecialID != 0 {
		// The side recorded is the one the mobj starts on; the commit
		// phase compares it against the destination side to tell an
		// actual crossing from a grazing overlap.
		side := 0
		if boxOnLineSideSigned(mob.X, mob.Y, l) < 0 {
			side = 1
		}
		ctx.SpecialLines = append(ctx.SpecialLines, specialLineCrossing{line: l, side: side})
	}

	return true
}

// escapingStuckLine is the player-only unstuck escape: when the player
// is already overlapping a one-sided line (wedged into the wall by a
// spawn, a lift edge, or an old engine bug in a loaded save), a move
// that increases separation from the line is let through instead of
// pinning the player against it forever.
func escapingStuckLine(mob *Mobj, l *Line, destX, destY float64) bool {
	if mob.Player == nil {
		return false
	}
	cur := mob.Bounds()
	if !l.Bounds.Overlaps(cur) || boxOnLineSide(cur, l) != -1 {
		return false
	}
	oldD := boxOnLineSideSigned(mob.X, mob.Y, l)
	newD := boxOnLineSideSigned(destX, destY, l)
	return math.Abs(newD) > math.Abs(oldD) && oldD*newD >= 0
}

func addTouching(ctx *MoveContext, s *Sector) {
	for _, existing := range ctx.TouchingSectors {
		if existing == s {
			return
		}
	}
	ctx.TouchingSectors = append(ctx.TouchingSectors, s)
}

func minCeilingPlane(l *Line) *Plane {
	f, b := l.FrontSector(), l.BackSector()
	if f.Ceiling().Z < b.Ceiling().Z {
		return f.Ceiling()
	}
	return b.Ceiling()
}

func maxFloorPlane(l *Line) *Plane {
	f, b := l.FrontSector(), l.BackSector()
	if f.Floor().Z > b.Floor().Z {
		return f.Floor()
	}
	return b.Floor()
}

// boxOnLineSideSigned is the half-plane test. Every coordinate here is
// already a float64, so the fixed/float precision split some Doom-family
// engines carry collapses to a single implementation.
func boxOnLineSideSigned(x, y float64, l *Line) float64 {
	dx, dy := l.To.X-l.From.X, l.To.Y-l.From.Y
	return dx*(y-l.From.Y) - dy*(x-l.From.X)
}

// boxOnLineSide returns -1 if the box straddles the line (the case that
// matters for blocking tests), 0 if entirely on the front side, 1 if
// entirely on the back side. Testing all four corners rather than
// picking the two extremal ones by slope type (the classic fast-path
// optimization) costs a few extra multiplies per line but needs no
// slope-type special casing.
func boxOnLineSide(box AABB, l *Line) int {
	corners := [4][2]float64{
		{box.MinX, box.MinY}, {box.MaxX, box.MinY},
		{box.MinX, box.MaxY}, {box.MaxX, box.MaxY},
	}
	pos, neg := false, false
	for _, c := range corners {
		s := boxOnLineSideSigned(c[0], c[1], l)
		if s > 0 {
			pos = true
		} else if s < 0 {
			neg = true
		}
	}
	if pos && neg {
		return -1
	}
	if pos {
		return 0
	}
	return 1
}

// TryMove runs CheckPosition and, if the position is admissible, commits
// it: unlinking and relinking the mobj, updating its floor/ceiling/
// terrain cache, and firing every special line crossed. The check
// phase leaves the mover's position and links alone, but its thing
// collisions can already touch specials, deal skull-fly or missile
// damage and push pushable mobjs; the commit phase does everything else.
func TryMove(w *World, mob *Mobj, x, y float64, ctx *MoveContext) bool {
	if !CheckPosition(w, mob, x, y, ctx) {
		return rejectMove(w, mob, ctx)
	}

	if !mob.Flags.Has(MFNoClip) {
		if ctx.CeilingZ-ctx.FloorZ < mob.Height {
			return rejectMove(w, mob, ctx)
		}
		if !mob.Flags.Has(MFTeleport) && ctx.CeilingZ-mob.Z < mob.Height {
			return rejectMove(w, mob, ctx)
		}
		if !mob.Flags.Has(MFFloat) && ctx.FloorZ-mob.Z > StepHeight {
			return rejectMove(w, mob, ctx)
		}
		if !mob.Flags.Has(MFDropOff) && !mob.Flags.Has(MFFloat) {
			if ctx.FloorZ-ctx.DropoffZ > StepHeight {
				if !ctx.AllowDropoff || (w.Config.AvoidDropoffs && mob.Player == nil) {
					return rejectMove(w, mob, ctx)
				}
				ctx.FellDown = true
			}
		}
	}

	commitMove(w, mob, x, y, ctx)
	return true
}

// rejectMove is the failure tail of TryMove: if a special line is what
// stopped the move, it gets its Push activation here so switch-by-bump
// map scripting still fires on a refused move.
func rejectMove(w *World, mob *Mobj, ctx *MoveContext) bool {
	if ctx.BlockingLine != nil && ctx.BlockingLine.SpecialID != 0 && w.Rules != nil {
		side := 0
		if boxOnLineSideSigned(mob.X, mob.Y, ctx.BlockingLine) < 0 {
			side = 1
		}
		w.Rules.CrossSpecialLine(ctx.BlockingLine, mob, side, ActivationPush)
	}
	return false
}

func commitMove(w *World, mob *Mobj, x, y float64, ctx *MoveContext) {
	// Unlink reads mob.touchingSectors (still the pre-move set here) to
	// drop every secondary sector membership before it's overwritten.
	w.Mobjs.Unlink(mob)
	mob.X, mob.Y = x, y
	mob.Subsector = w.Geometry.SubsectorAt(x, y)
	mob.FloorZ = ctx.FloorZ
	mob.CeilingZ = ctx.CeilingZ
	mob.DropoffZ = ctx.DropoffZ
	mob.FloorPlane = ctx.FloorPlane
	mob.CeilingPlane = ctx.CeilingPlane
	mob.touchingSectors = append(mob.touchingSectors[:0], ctx.TouchingSectors...)
	mob.OnMobj = ctx.OnMobj
	w.Mobjs.Link(mob)

	if mob.Z <= mob.FloorZ && w.Rules != nil {
		mob.FloorTerrain = w.Rules.GetMobjFloorTerrain(mob)
	}

	// A mobj straddling a shared line touches sectors beyond the one it's
	// centered in; those need a secondary index so ChangeSector on any of
	// them finds it via TouchingMobjsIterator, not just SectorIterator.
	var primary *Sector
	if mob.Subsector != nil {
		primary = mob.Subsector.Sector
	}
	for _, s := range mob.touchingSectors {
		if s == primary {
			continue
		}
		s.addTouchingMobj(mob)
	}

	if w.Rules != nil {
		// Crossing activations fire newest-first: the last line crossed
		// is the first one activated, which puzzle maps rely on when a
		// single step crosses several stacked trigger lines.
		for i := len(ctx.SpecialLines) - 1; i >= 0; i-- {
			sp := ctx.SpecialLines[i]
			newSide := 0
			if boxOnLineSideSigned(x, y, sp.line) < 0 {
				newSide = 1
			}
			if newSide == sp.side {
				continue // grazed the line's box without crossing it
			}
			activation := ActivationCross
			if mob.Flags.Has(MFMissile) {
				activation = ActivationProjectileCross
			} else if mob.Flags.Has(MFCountKill) {
				activation = ActivationMonsterCross
			}
			w.Rules.CrossSpecialLine(sp.line, mob, sp.side, activation)
		}
	}
}
