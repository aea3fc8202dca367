package worldcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathTraverse_VisitsLineThenMobjInDistanceOrder(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)

	mob := newTestMobj(192, 64, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	w.Mobjs.Spawn(mob)

	var hits []TraverseHit
	vc := w.Geometry.NextValidCount()
	PathTraverse(w.Geometry, 64, 64, 220, 64, TraversePathLines|TraversePathMobjs, vc, func(h TraverseHit) bool {
		hits = append(hits, h)
		return true
	})

	require.Len(t, hits, 2)
	assert.NotNil(t, hits[0].Line)
	assert.Nil(t, hits[0].Mobj)
	assert.NotNil(t, hits[1].Mobj)
	assert.Less(t, hits[0].Fraction, hits[1].Fraction)
}

func TestPathTraverse_PopulatesOpeningForTwoSidedLineHit(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)

	var opening *OpeningCache
	vc := w.Geometry.NextValidCount()
	PathTraverse(w.Geometry, 64, 64, 192, 64, TraversePathLines, vc, func(h TraverseHit) bool {
		if h.Line != nil {
			opening = h.Opening
		}
		return true
	})

	require.NotNil(t, opening)
	assert.Equal(t, 256.0, opening.Top)
	assert.Equal(t, 0.0, opening.Bottom)
	assert.Equal(t, 256.0, opening.Range)
}

func TestPathTraverse_VisitReturningFalseStopsEarly(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)

	mob := newTestMobj(192, 64, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	w.Mobjs.Spawn(mob)

	var calls int
	vc := w.Geometry.NextValidCount()
	PathTraverse(w.Geometry, 64, 64, 220, 64, TraversePathLines|TraversePathMobjs, vc, func(h TraverseHit) bool {
		calls++
		return false
	})

	assert.Equal(t, 1, calls, "stopping at the first hit must not visit the second")
}

func TestPathTraverse_ZeroLengthSegmentVisitsNothing(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)

	called := false
	vc := w.Geometry.NextValidCount()
	PathTraverse(w.Geometry, 64, 64, 64, 64, TraversePathLines|TraversePathMobjs, vc, func(h TraverseHit) bool {
		called = true
		return true
	})

	assert.False(t, called)
}
