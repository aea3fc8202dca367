package worldcore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlideMove_SingleWallPreservesTangentialComponent(t *testing.T) {
	w, a, _ := buildTwoRoomWorld(0)
	mob := newTestMobj(20, 64, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	require.Equal(t, a, mob.Subsector.Sector)
	w.Mobjs.Spawn(mob)

	// Drive the mobj into the left wall (vertical, x=0) at an angle: the
	// move as a whole is blocked, but sliding along the wall should still
	// carry most of the Y component through, and never push the mobj
	// through the wall.
	var ctx MoveContext
	movedX, movedY := SlideMove(w, mob, -30, 10, &ctx)

	assert.Greater(t, movedX, -20.0, "the full -30 X component cannot survive against the wall")
	assert.Greater(t, movedY, 0.0, "the tangential component along the wall must survive the slide")
	assert.Less(t, mob.X, 20.0, "the mobj should advance up to the wall before sliding along it")
	assert.GreaterOrEqual(t, mob.X, mob.Radius, "sliding along the wall must never tunnel the mobj through it")
}

func TestSlideMove_InteriorCornerStairStepsTowardZero(t *testing.T) {
	w, a, _ := buildTwoRoomWorld(0)
	// Room A's (0,0) corner is a genuine convex interior corner: the
	// vertical left wall (x=0) meets the horizontal bottom wall (y=0) at
	// a right angle, matching the boundary case where a slide against
	// two perpendicular walls must stair-step to zero tangential motion
	// rather than oscillate or tunnel through the corner.
	mob := newTestMobj(48, 48, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	require.Equal(t, a, mob.Subsector.Sector)
	w.Mobjs.Spawn(mob)

	var ctx MoveContext
	movedX, movedY := SlideMove(w, mob, -1000, -1000, &ctx)

	dist := math.Hypot(movedX, movedY)
	assert.Less(t, dist, 60.0, "a move into a corner must stair-step down to near-zero progress, not sail through")
	assert.GreaterOrEqual(t, mob.X, mob.Radius-1e-6, "must not penetrate the left wall")
	assert.GreaterOrEqual(t, mob.Y, mob.Radius-1e-6, "must not penetrate the bottom wall")
}

func TestSlideMove_UnblockedMoveIsUnchanged(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)
	mob := newTestMobj(64, 64, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	w.Mobjs.Spawn(mob)

	var ctx MoveContext
	mx, my := SlideMove(w, mob, 5, 5, &ctx)
	assert.Equal(t, 5.0, mx)
	assert.Equal(t, 5.0, my)
}

func TestBounceWall_ReflectsAcrossNormal(t *testing.T) {
	ctx := &MoveContext{}
	// A vertical wall (x=0, running along Y): direction (0,1), so its
	// normal is (-1,0) or (1,0). Momentum straight into it along -X
	// should reverse to +X and leave Y untouched.
	ctx.BlockingLine = &Line{Direction: mustVec2(0, 1)}
	rx, ry := BounceWall(ctx, -10, 3, 1.0)
	assert.InDelta(t, 10, rx, 1e-6)
	assert.InDelta(t, 3, ry, 1e-6)
}
