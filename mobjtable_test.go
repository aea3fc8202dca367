package worldcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMobjTable_SpawnLinksIntoSectorList(t *testing.T) {
	w, a, _ := buildTwoRoomWorld(0)
	mob := newTestMobj(64, 64, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	require.Equal(t, a, mob.Subsector.Sector)

	w.Mobjs.Spawn(mob)

	found := false
	w.Mobjs.SectorIterator(a, func(m *Mobj) bool {
		if m == mob {
			found = true
		}
		return true
	})
	assert.True(t, found)
}

func TestMobjTable_RemoveIsDeferred(t *testing.T) {
	w, a, _ := buildTwoRoomWorld(0)
	mob := newTestMobj(64, 64, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	w.Mobjs.Spawn(mob)

	w.Mobjs.Remove(mob)

	stillThere := false
	w.Mobjs.SectorIterator(a, func(m *Mobj) bool {
		if m == mob {
			stillThere = true
		}
		return true
	})
	assert.True(t, stillThere, "removal must not take effect until DrainRemovals")

	removed := w.Mobjs.DrainRemovals()
	assert.Equal(t, []*Mobj{mob}, removed)

	stillThere = false
	w.Mobjs.SectorIterator(a, func(m *Mobj) bool {
		if m == mob {
			stillThere = true
		}
		return true
	})
	assert.False(t, stillThere)
}

func TestMobjTable_BoxIteratorFindsOverlapping(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)
	mob := newTestMobj(64, 64, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	w.Mobjs.Spawn(mob)

	count := 0
	w.Mobjs.BoxIterator(AABB{MinX: 0, MinY: 0, MaxX: 128, MaxY: 128}, func(m *Mobj) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count)

	count = 0
	w.Mobjs.BoxIterator(AABB{MinX: 129, MinY: 0, MaxX: 256, MaxY: 128}, func(m *Mobj) bool {
		count++
		return true
	})
	assert.Equal(t, 0, count)
}
