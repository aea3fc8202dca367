package worldcore

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

func mustVec2(x, y float32) mgl32.Vec2 { return mgl32.Vec2{x, y} }

// newVertex is a test convenience constructor; production code builds
// vertices from parsed map data instead.
func newVertex(id int, x, y float64) *Vertex {
	return &Vertex{ID: id, X: x, Y: y}
}

func newSector(id int, floorZ, ceilZ float64) *Sector {
	return &Sector{
		ID: id,
		Planes: []Plane{
			{Index: 0, Z: floorZ},
			{Index: 1, Z: ceilZ},
		},
		LightLevel: 255,
	}
}

// newTwoSidedLine connects front and back sectors with a line that
// blocks nothing by itself, letting ComputeOpening do the work.
func newTwoSidedLine(id int, from, to *Vertex, front, back *Sector) *Line {
	l := &Line{
		ID:    id,
		From:  from,
		To:    to,
		Flags: LineTwoSided,
	}
	l.FrontSide = &Side{ID: id * 2, Sector: front}
	l.BackSide = &Side{ID: id*2 + 1, Sector: back}
	front.Lines = append(front.Lines, l)
	back.Lines = append(back.Lines, l)
	return l
}

func newOneSidedLine(id int, from, to *Vertex, front *Sector) *Line {
	l := &Line{ID: id, From: from, To: to}
	l.FrontSide = &Side{ID: id * 2, Sector: front}
	front.Lines = append(front.Lines, l)
	return l
}

// buildTwoRoomWorld builds two 128x128 rooms sharing one wall, the
// shared wall pierced by a two-sided opening for the full wall length.
// Room A sits at floor 0, Room B at floor stepFloor, both with a high
// ceiling, so TryMove's step-up behavior can be exercised by choosing
// stepFloor.
func buildTwoRoomWorld(stepFloor float64) (*World, *Sector, *Sector) {
	a := newSector(0, 0, 256)
	b := newSector(1, stepFloor, 256)

	v00 := newVertex(0, 0, 0)
	v01 := newVertex(1, 0, 128)
	v10 := newVertex(2, 128, 0)
	v11 := newVertex(3, 128, 128)
	v20 := newVertex(4, 256, 0)
	v21 := newVertex(5, 256, 128)

	shared := newTwoSidedLine(0, v10, v11, a, b)

	lines := []*Line{
		newOneSidedLine(1, v00, v01, a),
		newOneSidedLine(2, v01, v11, a),
		newOneSidedLine(3, v00, v10, a),
		shared,
		newOneSidedLine(4, v11, v21, b),
		newOneSidedLine(5, v21, v20, b),
		newOneSidedLine(6, v20, v10, b),
	}

	vertices := []*Vertex{v00, v01, v10, v11, v20, v21}
	sectors := []*Sector{a, b}
	sides := []*Side{}
	for _, l := range lines {
		sides = append(sides, l.FrontSide)
		if l.BackSide != nil {
			sides = append(sides, l.BackSide)
		}
	}

	geom := NewWorldGeometryStore(vertices, lines, sides, sectors, nil)
	BuildRejectMatrix(geom)
	w := NewWorld(geom, nil, DefaultConfig(), nil)
	return w, a, b
}

func newTestMobj(x, y, z float64) *Mobj {
	return &Mobj{
		ID:     uuid.New(),
		X:      x,
		Y:      y,
		Z:      z,
		Radius: 16,
		Height: 56,
		Flags:  MFSolid | MFShootable,
	}
}
