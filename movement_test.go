package worldcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryMove_StepUpLedge(t *testing.T) {
	w, a, _ := buildTwoRoomWorld(16) // 16 units: well within StepHeight (24)
	mob := newTestMobj(64, 64, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	require.Equal(t, a, mob.Subsector.Sector)
	w.Mobjs.Spawn(mob)

	var ctx MoveContext
	ok := TryMove(w, mob, 192, 64, &ctx)
	require.True(t, ok, "a 16-unit step should be climbable")
	assert.Equal(t, 16.0, mob.FloorZ)
}

func TestTryMove_StepRejectedAtTwentyFive(t *testing.T) {
	w, a, _ := buildTwoRoomWorld(25) // one unit over StepHeight
	mob := newTestMobj(64, 64, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	require.Equal(t, a, mob.Subsector.Sector)
	w.Mobjs.Spawn(mob)

	var ctx MoveContext
	ok := TryMove(w, mob, 192, 64, &ctx)
	assert.False(t, ok, "a 25-unit step exceeds StepHeight and must be rejected")
	assert.Equal(t, 64.0, mob.X, "a rejected move must not relocate the mobj")
}

func TestTryMove_DropOffForbidden(t *testing.T) {
	w, _, b := buildTwoRoomWorld(-40) // room B's floor is 40 below room A's
	_ = b
	w.Config.AvoidDropoffs = true

	mob := newTestMobj(64, 64, 0)
	mob.Flags &^= MFDropOff
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	w.Mobjs.Spawn(mob)

	// Destination straddles the shared line, so the check phase sees both
	// the ledge floor and the pit floor.
	var ctx MoveContext
	ok := TryMove(w, mob, 140, 64, &ctx)
	assert.False(t, ok, "AvoidDropoffs must refuse a move across a >StepHeight dropoff")
	assert.False(t, ctx.FellDown)
}

func TestTryMove_AllowDropoffSetsFellDown(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(-40)

	mob := newTestMobj(64, 64, 0)
	mob.Flags &^= MFDropOff
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	w.Mobjs.Spawn(mob)

	var ctx MoveContext
	ctx.AllowDropoff = true
	ok := TryMove(w, mob, 140, 64, &ctx)
	assert.True(t, ok, "an explicitly allowed dropoff must go through")
	assert.True(t, ctx.FellDown, "the caller has to learn the mobj went over the edge")
}

func TestTryMove_LineBlockingFlagStopsWalkers(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)
	for _, l := range w.Geometry.Lines {
		if l.TwoSided() {
			l.Flags |= LineBlocking
		}
	}

	mob := newTestMobj(64, 64, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	w.Mobjs.Spawn(mob)

	var ctx MoveContext
	ok := TryMove(w, mob, 140, 64, &ctx)
	assert.False(t, ok, "a blocking-flagged line stops a non-missile even when its opening is huge")
	assert.NotNil(t, ctx.BlockingLine)
}

// buildCorridorWorld lays out three rooms in a row with two special
// two-sided lines close enough together that one move can cross both.
func buildCorridorWorld() (*World, []*Line) {
	a := newSector(0, 0, 256)
	b := newSector(1, 0, 256)
	c := newSector(2, 0, 256)

	v0a := newVertex(0, 0, 0)
	v0b := newVertex(1, 0, 128)
	v1a := newVertex(2, 112, 0)
	v1b := newVertex(3, 112, 128)
	v2a := newVertex(4, 120, 0)
	v2b := newVertex(5, 120, 128)
	v3a := newVertex(6, 256, 0)
	v3b := newVertex(7, 256, 128)

	shared1 := newTwoSidedLine(0, v1a, v1b, a, b)
	shared1.SpecialID = 5
	shared2 := newTwoSidedLine(1, v2a, v2b, b, c)
	shared2.SpecialID = 6

	lines := []*Line{
		newOneSidedLine(2, v0a, v0b, a),
		newOneSidedLine(3, v0b, v1b, a),
		newOneSidedLine(4, v0a, v1a, a),
		shared1,
		newOneSidedLine(5, v1b, v2b, b),
		newOneSidedLine(6, v1a, v2a, b),
		shared2,
		newOneSidedLine(7, v2b, v3b, c),
		newOneSidedLine(8, v2a, v3a, c),
		newOneSidedLine(9, v3a, v3b, c),
	}

	vertices := []*Vertex{v0a, v0b, v1a, v1b, v2a, v2b, v3a, v3b}
	sectors := []*Sector{a, b, c}
	sides := []*Side{}
	for _, l := range lines {
		sides = append(sides, l.FrontSide)
		if l.BackSide != nil {
			sides = append(sides, l.BackSide)
		}
	}

	geom := NewWorldGeometryStore(vertices, lines, sides, sectors, nil)
	w := NewWorld(geom, nil, DefaultConfig(), nil)
	return w, []*Line{shared1, shared2}
}

func TestTryMove_SpecialCrossingsFireNewestFirst(t *testing.T) {
	w, shared := buildCorridorWorld()
	rules := &recordingRules{}
	w.Rules = rules

	mob := newTestMobj(56, 64, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	w.Mobjs.Spawn(mob)

	var ctx MoveContext
	ok := TryMove(w, mob, 126, 64, &ctx)
	require.True(t, ok)

	require.Len(t, rules.activated, 2, "both special lines were crossed in one move")
	assert.Equal(t, shared[1], rules.activated[0].line, "the last line crossed fires first")
	assert.Equal(t, shared[0], rules.activated[1].line)
	assert.Equal(t, ActivationCross, rules.activated[0].act)
}

func TestTryMove_GrazingSpecialLineDoesNotActivate(t *testing.T) {
	w, _ := buildCorridorWorld()
	rules := &recordingRules{}
	w.Rules = rules

	mob := newTestMobj(90, 64, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	w.Mobjs.Spawn(mob)

	// The destination box overlaps the first special line, but the mobj
	// center stays on the same side of it: no crossing, no activation.
	var ctx MoveContext
	ok := TryMove(w, mob, 100, 64, &ctx)
	require.True(t, ok)
	assert.Empty(t, rules.activated)
}

func TestTryMove_BlockedByOneSidedLine(t *testing.T) {
	w, a, _ := buildTwoRoomWorld(0)
	mob := newTestMobj(32, 32, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	require.Equal(t, a, mob.Subsector.Sector)
	w.Mobjs.Spawn(mob)

	var ctx MoveContext
	ok := TryMove(w, mob, -5, 32, &ctx)
	assert.False(t, ok)
	assert.NotNil(t, ctx.BlockingLine)
}

func TestTryMove_NoClipIgnoresGeometry(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(200) // far too tall a step to climb normally
	mob := newTestMobj(64, 64, 0)
	mob.Flags |= MFNoClip
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	w.Mobjs.Spawn(mob)

	var ctx MoveContext
	ok := TryMove(w, mob, 192, 64, &ctx)
	assert.True(t, ok, "MFNoClip must bypass floor/ceiling/dropoff checks")
}

func TestCheckPosition_BlockedByMobj(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)
	a := newTestMobj(64, 64, 0)
	a.Subsector = w.Geometry.SubsectorAt(a.X, a.Y)
	w.Mobjs.Spawn(a)

	b := newTestMobj(70, 70, 0)
	b.Subsector = w.Geometry.SubsectorAt(b.X, b.Y)

	var ctx MoveContext
	ok := CheckPosition(w, b, 70, 70, &ctx)
	assert.False(t, ok, "overlapping solid mobjs must block")
	assert.Equal(t, a, ctx.BlockingMobj)
}
