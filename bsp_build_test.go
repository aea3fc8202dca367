package worldcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBSP_SubsectorAtResolvesBothRooms(t *testing.T) {
	w, a, b := buildTwoRoomWorld(0)

	subA := w.Geometry.SubsectorAt(30, 64)
	require.NotNil(t, subA)
	assert.Equal(t, a, subA.Sector)

	subB := w.Geometry.SubsectorAt(200, 64)
	require.NotNil(t, subB)
	assert.Equal(t, b, subB.Sector)
}

func TestBuildBSP_EveryLeafHasASector(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)
	for _, sub := range w.Geometry.Subsectors {
		assert.NotNil(t, sub.Sector)
	}
}
