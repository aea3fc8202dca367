package worldcore

import "math"

// AimResult is what AimLineAttack found along the aim ray: the target
// (nil if none), the slope to it, and the distance — the autoaim inputs
// LineAttack needs to actually fire.
type AimResult struct {
	Target   *Mobj
	Slope    float64
	Distance float64
}

// AimLineAttack searches along the ray from (x,y,z) at angle for the
// nearest shootable mobj within the fixed aimSlopeRange autoaim cone. If
// w.Config.NoAutoAim is set it still computes straight-ahead geometry
// but never substitutes a target slope, matching a freelook-style
// no-autoaim toggle.
func AimLineAttack(w *World, shooter *Mobj, x, y, z float64, angle BAMAngle, distance float64) AimResult {
	sin, cos := bamSinCos(angle)
	x1, y1 := x+cos*distance, y+sin*distance

	const aimSlopeRange = 100.0 / 160.0 // ~32 degrees of vertical cone, classic Doom constant
	topSlope, bottomSlope := aimSlopeRange, -aimSlopeRange

	var best AimResult
	bestDist := math.Inf(1)

	vc := w.nextValidCount()
	PathTraverse(w.Geometry, x, y, x1, y1, TraversePathLines|TraversePathMobjs, vc, func(hit TraverseHit) bool {
		dist := hit.Fraction * distance

		if hit.Line != nil {
			l := hit.Line
			if !l.TwoSided() || l.Flags&LineBlockEverything != 0 {
				return false
			}
			op := hit.Opening
			if op.Range <= 0 {
				return false
			}
			topS := (op.Top - z) / maxf(dist, 1)
			bottomS := (op.Bottom - z) / maxf(dist, 1)
			if topS < topSlope {
				topSlope = topS
			}
			if bottomS > bottomSlope {
				bottomSlope = bottomS
			}
			if topSlope <= bottomSlope {
				return false
			}
			return true
		}

		m := hit.Mobj
		if w.Config.NoAutoAim || !m.Flags.Has(MFShootable) || m == shooter {
			return true
		}
		thingTopSlope := (m.Z + m.Height - z) / maxf(dist, 1)
		thingBottomSlope := (m.Z - z) / maxf(dist, 1)
		if thingTopSlope < bottomSlope || thingBottomSlope > topSlope {
			return true
		}
		if dist < bestDist {
			bestDist = dist
			slope := (thingTopSlope + thingBottomSlope) / 2
			if slope > topSlope {
				slope = topSlope
			}
			if slope < bottomSlope {
				slope = bottomSlope
			}
			best = AimResult{Target: m, Slope: slope, Distance: dist}
		}
		return true
	})

	return best
}

// EyeZ returns the vertical origin hitscan and sight checks use for m:
// a player's configured view height, or half height plus 8 units for
// everything else.
func EyeZ(w *World, m *Mobj) float64 {
	if m.Player != nil {
		return m.Z + w.Config.PlrViewHeight
	}
	return m.Z + m.Height/2 + 8
}

// LineAttackHit is one outcome of LineAttack: either a line was struck
// (Line non-nil) or a mobj was damaged (Mobj non-nil), at the given
// impact point — enough for a caller to pick a puff or blood effect.
type LineAttackHit struct {
	Line    *Line
	Mobj    *Mobj
	X, Y, Z float64
}

// hitscanSpawnBackoff is how far back toward the shooter LineAttack
// pulls a puff/blood spawn point, so the effect mobj doesn't spawn
// embedded in the wall or thing it just struck.
const hitscanSpawnBackoff = 4.0

// hitscanZRefineIterations bounds the bisection LineAttack runs when a
// two-sided line's opening stops the shot, narrowing the impact point
// toward the exact fraction where the shot's Z trajectory crosses out
// of the opening rather than spawning the effect at the line's raw 2D
// crossing point.
const hitscanZRefineIterations = 8

func backoffPoint(fromX, fromY, toX, toY, amount float64) (float64, float64) {
	dx, dy := fromX-toX, fromY-toY
	d := math.Hypot(dx, dy)
	if d == 0 {
		return toX, toY
	}
	return toX + dx/d*amount, toY + dy/d*amount
}

// lineOpeningSky reports whether the plane that actually bounds l's
// opening at impactZ is sky: a one-sided line looks at its lone
// sector's ceiling; a two-sided line looks at whichever side's ceiling
// is lower, since that's the plane the opening check failed against.
func lineOpeningSky(l *Line, impactZ float64) bool {
	if !l.TwoSided() {
		front := l.FrontSector()
		if front == nil {
			return false
		}
		c := front.Ceiling()
		return c != nil && c.Sky && impactZ >= c.Z-1e-6
	}
	cp := minCeilingPlane(l)
	return cp != nil && cp.Sky && impactZ >= cp.Z-1e-6
}

// refineDeadEndFraction bisects between loFrac (the last fraction along
// the ray still known to lie inside an opening) and hiFrac (the
// fraction PathTraverse reported for the blocking line) to find where
// the shot's Z trajectory actually leaves the opening, rather than
// trusting the 2D line-crossing fraction as the impact point outright.
func refineDeadEndFraction(z, slope, distance, loFrac, hiFrac float64, op *OpeningCache) float64 {
	inside := func(frac float64) bool {
		iz := z + slope*frac*distance
		return iz >= op.Bottom && iz <= op.Top
	}
	for i := 0; i < hitscanZRefineIterations && hiFrac-loFrac > 1e-5; i++ {
		mid := (loFrac + hiFrac) / 2
		if inside(mid) {
			loFrac = mid
		} else {
			hiFrac = mid
		}
	}
	return hiFrac
}

// spawnHitscanPuff asks GameRules for a puff mob at the impact point,
// backed off toward the shooter, unless the surface that stopped the
// shot is open sky — sky never shows a puff, matching the vanilla
// "don't spawn a puff against the sky hack".
func spawnHitscanPuff(w *World, x0, y0, ix, iy, iz float64, sky bool) {
	if sky || w.Rules == nil {
		return
	}
	bx, by := backoffPoint(x0, y0, ix, iy, hitscanSpawnBackoff)
	w.Rules.SpawnMob(PuffMobjType, bx, by, iz, 0, 0)
}

// LineAttack fires a hitscan from (x,y,z) at angle/slope out to
// distance, returning the first thing it struck. Calling it commits
// damage via GameRules.DamageMob when it hits a shootable mobj and
// spawns the puff or blood effect mob itself via GameRules.SpawnMob, so
// the caller never has to re-derive the impact point.
func LineAttack(w *World, shooter *Mobj, x, y, z float64, angle BAMAngle, slope, distance float64, damage int) (LineAttackHit, bool) {
	sin, cos := bamSinCos(angle)
	x1, y1 := x+cos*distance, y+sin*distance

	var result LineAttackHit
	found := false
	lastClearFrac := 0.0

	vc := w.nextValidCount()
	PathTraverse(w.Geometry, x, y, x1, y1, TraversePathLines|TraversePathMobjs, vc, func(hit TraverseHit) bool {
		dist := hit.Fraction * distance
		impactZ := z + slope*dist

		if hit.Line != nil {
			l := hit.Line
			if !l.TwoSided() || l.Flags&LineBlockEverything != 0 {
				result = LineAttackHit{Line: l, X: hit.X, Y: hit.Y, Z: impactZ}
				found = true
				spawnHitscanPuff(w, x, y, hit.X, hit.Y, impactZ, lineOpeningSky(l, impactZ))
				return false
			}
			op := hit.Opening
			if impactZ < op.Bottom || impactZ > op.Top {
				frac := refineDeadEndFraction(z, slope, distance, lastClearFrac, hit.Fraction, op)
				ix, iy := x+(x1-x)*frac, y+(y1-y)*frac
				iz := z + slope*frac*distance
				result = LineAttackHit{Line: l, X: ix, Y: iy, Z: iz}
				found = true
				spawnHitscanPuff(w, x, y, ix, iy, iz, lineOpeningSky(l, iz))
				return false
			}
			lastClearFrac = hit.Fraction
			return true
		}

		m := hit.Mobj
		if m == shooter || !m.Flags.Has(MFShootable) {
			return true
		}
		if impactZ < m.Z || impactZ > m.Z+m.Height {
			return true
		}
		result = LineAttackHit{Mobj: m, X: hit.X, Y: hit.Y, Z: impactZ}
		found = true
		if w.Rules != nil {
			w.Rules.DamageMob(m, shooter, shooter, damage, false)
			effect := BloodMobjType
			if m.Flags.Has(MFNoBlood) {
				effect = PuffMobjType
			}
			bx, by := backoffPoint(x, y, hit.X, hit.Y, hitscanSpawnBackoff)
			w.Rules.SpawnMob(effect, bx, by, impactZ, 0, 0)
		}
		return false
	})

	return result, found
}

// RadiusAttack damages every shootable mobj within radius of the origin
// mobj, scaling damage linearly down to zero at the radius edge, and
// skipping anything the blockmap search finds but CheckSight rejects —
// the same sight boundary AI targeting uses, not an approximation of
// it, so radius damage respects the closed-door near-miss the same way
// a monster's sight check would.
//
// The blockmap box query never finds a no-blockmap mobj (MFNoBlockmap
// unlinks it from the blockmap entirely), so if w.Scheduler is set
// RadiusAttack also sweeps every live mobj thinker looking for that
// case specifically; a nil Scheduler just means those mobjs are immune
// to radius damage, same as vanilla without a thinker sweep.
func RadiusAttack(w *World, origin *Mobj, radius float64, damage int, source *Mobj) {
	box := AABB{
		MinX: origin.X - radius, MinY: origin.Y - radius,
		MaxX: origin.X + radius, MaxY: origin.Y + radius,
	}
	consider := func(m *Mobj) bool {
		return radiusAttackConsider(w, origin, m, radius, damage, source)
	}
	w.Mobjs.BoxIterator(box, consider)

	if w.Scheduler != nil {
		w.Scheduler.IterateThinkers(ThinkerKindMobj, func(thinker any) bool {
			m, ok := thinker.(*Mobj)
			if !ok || !m.Flags.Has(MFNoBlockmap) {
				return true
			}
			return consider(m)
		})
	}
}

func radiusAttackConsider(w *World, origin, m *Mobj, radius float64, damage int, source *Mobj) bool {
	if m == origin || !m.Flags.Has(MFShootable) {
		return true
	}
	// Blast falloff uses the dominant-axis distance, not Euclidean: the
	// square blast shape is part of the gameplay contract.
	dist := math.Max(math.Abs(m.X-origin.X), math.Abs(m.Y-origin.Y))
	if !w.Config.NetNoMaxZRadiusAttack {
		dist = math.Max(dist, math.Abs(m.Z-origin.Z))
	}
	dist -= m.Radius
	if dist < 0 {
		dist = 0
	}
	if dist >= radius {
		return true
	}
	if CheckSight(w.Geometry, origin, EyeZ(w, origin)-origin.Z, m, 0) != SightClear {
		return true
	}
	scaled := damage - int(float64(damage)*dist/radius)
	if scaled > 0 && w.Rules != nil {
		w.Rules.DamageMob(m, origin, source, scaled, false)
	}
	return true
}

// UseLines fires the Use activation for the nearest usable special line
// within distance along angle, stopping at the first blocking line
// encountered even if it has no special: a solid wall blocks "use" the
// same way it blocks sight.
func UseLines(w *World, user *Mobj, x, y, z float64, angle BAMAngle, distance float64) bool {
	sin, cos := bamSinCos(angle)
	x1, y1 := x+cos*distance, y+sin*distance

	used := false
	vc := w.nextValidCount()
	PathTraverse(w.Geometry, x, y, x1, y1, TraversePathLines, vc, func(hit TraverseHit) bool {
		l := hit.Line
		if l.SpecialID == 0 {
			if !l.TwoSided() || l.Flags&LineBlockEverything != 0 {
				return false // solid wall swallows the use
			}
			if hit.Opening != nil && hit.Opening.Range <= 0 {
				return false // closed door with no special
			}
			return true
		}
		side := 0
		if boxOnLineSideSigned(x, y, l) < 0 {
			side = 1
		}
		if w.Rules != nil {
			w.Rules.CrossSpecialLine(l, user, side, ActivationUse)
		}
		used = true
		// Pass-through-use lines allow chained activation behind them.
		return l.Flags&LinePassThroughUse != 0
	})
	return used
}
