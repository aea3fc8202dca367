package worldcore

import "math"

// maxSlideIterations caps the number of times SlideMove re-projects a
// blocked move onto a wall's tangent before giving up and clamping to
// zero motion, the classic "three strikes" slide retry limit.
const maxSlideIterations = 3

// slideBackoff is how far off the wall SlideMove pulls back before
// projecting, so the retried move doesn't immediately re-collide with
// the same line from float rounding.
const slideBackoff = 1.0 / 32.0

// SlideMove attempts to move mob by (dx,dy). It first runs the
// three-corner nearest-blocking-line search vanilla slide movement uses
// (tracing from the mob's two leading corners plus one trailing corner,
// relative to the move direction). When that finds a line, the mob
// advances to slideBackoff short of it and the remaining motion is
// projected onto the line's direction, its length scaled by the cosine
// of the angle between the move and the line. When no line comes back
// it tries the whole move; if that is refused — the diagonal was blocked
// by a mobj or a Z constraint instead of a wall — it falls back to an
// axis-decomposed stair step (y-only, then x-only) so a move into a
// corner still carries through on whichever axis isn't blocked. Retries
// up to maxSlideIterations times.
func SlideMove(w *World, mob *Mobj, dx, dy float64, ctx *MoveContext) (movedX, movedY float64) {
	remainX, remainY := dx, dy

	for iter := 0; iter < maxSlideIterations; iter++ {
		if remainX == 0 && remainY == 0 {
			return movedX, movedY
		}

		bl, frac := nearestCornerBlockingLine(w, mob, remainX, remainY)
		if bl == nil {
			if TryMove(w, mob, mob.X+remainX, mob.Y+remainY, ctx) {
				return movedX + remainX, movedY + remainY
			}
			if remainY != 0 && TryMove(w, mob, mob.X, mob.Y+remainY, ctx) {
				return movedX, movedY + remainY
			}
			if remainX != 0 && TryMove(w, mob, mob.X+remainX, mob.Y, ctx) {
				return movedX + remainX, movedY
			}
			return movedX, movedY
		}

		dist := math.Hypot(remainX, remainY)
		travel := dist*frac - slideBackoff
		if travel < 0 {
			travel = 0
		}
		stepX, stepY := remainX/dist*travel, remainY/dist*travel
		if travel > 0 && TryMove(w, mob, mob.X+stepX, mob.Y+stepY, ctx) {
			movedX, movedY = movedX+stepX, movedY+stepY
			dist -= travel
		}

		moveAngle := AngleTo(0, 0, remainX, remainY)
		lineAngle := bl.Angle
		deflection := bamDiffToRadians(lineAngle.Diff(moveAngle))
		scale := math.Cos(deflection)

		sin, cos := bamSinCos(lineAngle)
		newLen := dist * scale

		remainX, remainY = cos*newLen, sin*newLen
	}

	return movedX, movedY
}

// nearestCornerBlockingLine traces from the mob's two leading corners
// and one trailing corner (relative to the move direction) and returns
// whichever too-narrow or one-sided line any of the three traces hits
// first, plus the fraction along the move where it was hit. Returns a
// nil line if none of the three traces found a blocking line — the
// diagonal move was stopped by something else (a mobj, a step-height
// constraint).
func nearestCornerBlockingLine(w *World, mob *Mobj, dx, dy float64) (*Line, float64) {
	leadX, trailX := mob.X-mob.Radius, mob.X+mob.Radius
	if dx > 0 {
		leadX, trailX = mob.X+mob.Radius, mob.X-mob.Radius
	}
	leadY, trailY := mob.Y-mob.Radius, mob.Y+mob.Radius
	if dy > 0 {
		leadY, trailY = mob.Y+mob.Radius, mob.Y-mob.Radius
	}

	corners := [3][2]float64{
		{leadX, leadY},
		{trailX, leadY},
		{leadX, trailY},
	}

	var best *Line
	bestFrac := 1.0
	for _, c := range corners {
		vc := w.nextValidCount()
		PathTraverse(w.Geometry, c[0], c[1], c[0]+dx, c[1]+dy, TraversePathLines, vc, func(hit TraverseHit) bool {
			l := hit.Line
			blocked := !l.TwoSided() || l.Flags&LineBlockEverything != 0
			if !blocked {
				op := ComputeOpening(l)
				if op.Range < mob.Height || op.Top-mob.Z < mob.Height || op.Bottom-mob.Z > StepHeight {
					blocked = true
				}
			}
			if blocked && hit.Fraction < bestFrac {
				bestFrac = hit.Fraction
				best = l
			}
			return !blocked
		})
	}
	return best, bestFrac
}

// bamDiffToRadians converts a signed BAMAngle difference, as returned
// by BAMAngle.Diff, to radians in [-pi, pi).
func bamDiffToRadians(d int32) float64 {
	return float64(d) / float64(int64(1)<<31) * math.Pi
}

// BounceWall reflects momentum (momX, momY) off the blocking line
// recorded in ctx, scaled by restitution (1.0 = perfectly elastic),
// for missile-bounce behavior, kept distinct from player sliding.
func BounceWall(ctx *MoveContext, momX, momY, restitution float64) (float64, float64) {
	bl := ctx.BlockingLine
	if bl == nil {
		return -momX * restitution, -momY * restitution
	}
	nx, ny := -float64(bl.Direction.Y()), float64(bl.Direction.X())
	nlen := math.Hypot(nx, ny)
	if nlen == 0 {
		return -momX * restitution, -momY * restitution
	}
	nx, ny = nx/nlen, ny/nlen

	dot := momX*nx + momY*ny
	rx := momX - 2*dot*nx
	ry := momY - 2*dot*ny
	return rx * restitution, ry * restitution
}
