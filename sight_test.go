package worldcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckSight_ClearWithinOneRoom(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)
	from := newTestMobj(20, 64, 0)
	from.Subsector = w.Geometry.SubsectorAt(from.X, from.Y)
	to := newTestMobj(100, 64, 0)
	to.Subsector = w.Geometry.SubsectorAt(to.X, to.Y)

	result := CheckSight(w.Geometry, from, 41, to, 41)
	assert.Equal(t, SightClear, result)
}

func TestCheckSight_BlockedThroughSolidWall(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)
	// from just inside room A near its top wall, to a point just beyond
	// that one-sided wall: the sight line must cross solid geometry.
	from := newTestMobj(64, 120, 0)
	from.Subsector = w.Geometry.SubsectorAt(from.X, from.Y)
	to := newTestMobj(64, 140, 0)
	to.Subsector = w.Geometry.SubsectorAt(to.X, to.Y)

	result := CheckSight(w.Geometry, from, 41, to, 41)
	assert.NotEqual(t, SightClear, result)
}

func TestRejectMatrix_SetAndQuery(t *testing.T) {
	r := NewRejectMatrix(4)
	assert.False(t, r.Blocked(1, 2))
	r.SetBlocked(1, 2)
	assert.True(t, r.Blocked(1, 2))
	assert.True(t, r.Blocked(2, 1), "reject is symmetric")
	assert.False(t, r.Blocked(0, 3))
}
