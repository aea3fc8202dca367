package worldcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGeometry_LineDirectionLengthAndSlope(t *testing.T) {
	v0 := newVertex(0, 0, 0)
	v1 := newVertex(1, 3, 4)
	s := newSector(0, 0, 128)
	l := newOneSidedLine(0, v0, v1, s)

	BuildGeometry([]*Vertex{v0, v1}, []*Line{l}, []*Sector{s})

	assert.InDelta(t, 5, l.Length, 1e-9)
	assert.Equal(t, SlopePositive, l.SlopeType)
}

func TestBuildGeometry_SectorBoundsEnclosesItsLines(t *testing.T) {
	w, a, _ := buildTwoRoomWorld(0)
	_ = w
	assert.Equal(t, 0.0, a.Bounds.MinX)
	assert.Equal(t, 0.0, a.Bounds.MinY)
	assert.Equal(t, 128.0, a.Bounds.MaxX)
	assert.Equal(t, 128.0, a.Bounds.MaxY)
}

func TestComputeOpening_PanicsOnOneSidedLineInDebug(t *testing.T) {
	v0 := newVertex(0, 0, 0)
	v1 := newVertex(1, 0, 10)
	s := newSector(0, 0, 128)
	l := newOneSidedLine(0, v0, v1, s)

	Debug = true
	defer func() { Debug = false }()

	require.Panics(t, func() { ComputeOpening(l) })
}

func TestComputeOpening_RangeMatchesNarrowestGap(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(16)
	var shared *Line
	for _, l := range w.Geometry.Lines {
		if l.TwoSided() {
			shared = l
		}
	}
	require.NotNil(t, shared)

	op := ComputeOpening(shared)
	assert.Equal(t, 16.0, op.Bottom)
	assert.Equal(t, 256.0, op.Top)
	assert.Equal(t, 240.0, op.Range)
}
