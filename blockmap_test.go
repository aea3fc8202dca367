package worldcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockmap_LinesInBoxDeduplicatesViaValidCount(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)
	vc := w.Geometry.NextValidCount()

	var seen []*Line
	w.Geometry.Blockmap.LinesInBox(AABB{MinX: 0, MinY: 0, MaxX: 256, MaxY: 128}, vc, func(l *Line) bool {
		seen = append(seen, l)
		return true
	})

	ids := map[int]bool{}
	for _, l := range seen {
		assert.False(t, ids[l.ID], "each line must be visited exactly once per validCount")
		ids[l.ID] = true
	}
	assert.NotEmpty(t, seen)
}

func TestBlockmap_MobjLinkUnlink(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)
	mob := newTestMobj(64, 64, 0)
	mob.Subsector = w.Geometry.SubsectorAt(mob.X, mob.Y)
	w.Mobjs.Spawn(mob)

	count := 0
	w.Geometry.Blockmap.MobjsInBox(AABB{MinX: 0, MinY: 0, MaxX: 128, MaxY: 128}, func(*Mobj) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count)

	w.Mobjs.Unlink(mob)
	count = 0
	w.Geometry.Blockmap.MobjsInBox(AABB{MinX: 0, MinY: 0, MaxX: 128, MaxY: 128}, func(*Mobj) bool {
		count++
		return true
	})
	assert.Equal(t, 0, count)
}
