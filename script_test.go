package worldcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScriptHost struct {
	known   map[int]bool
	started []int
}

func (h *fakeScriptHost) HasScript(number int) bool { return h.known[number] }
func (h *fakeScriptHost) StartScript(number int, args [4]int, activator *Mobj, line *Line, side int) bool {
	h.started = append(h.started, number)
	return true
}

func TestUsePuzzleItem_StartsScriptOnMatchingLine(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)

	var wall *Line
	for _, l := range w.Geometry.Lines {
		if l.ID == 2 {
			wall = l
		}
	}
	require.NotNil(t, wall)
	wall.SpecialID = puzzleItemLineSpecial
	wall.Args = [5]int{7, 200, 1, 2, 3}

	host := &fakeScriptHost{known: map[int]bool{200: true}}
	user := newTestMobj(20, 64, 41)

	angle := AngleTo(user.X, user.Y, user.X, 300)
	used := UsePuzzleItem(w, host, user, 7, user.X, user.Y, user.Z, angle, 512)

	assert.True(t, used)
	assert.Equal(t, []int{200}, host.started)
}

func TestUsePuzzleItem_WrongItemTypeNeverStartsScript(t *testing.T) {
	w, _, _ := buildTwoRoomWorld(0)

	var wall *Line
	for _, l := range w.Geometry.Lines {
		if l.ID == 2 {
			wall = l
		}
	}
	require.NotNil(t, wall)
	wall.SpecialID = puzzleItemLineSpecial
	wall.Args = [5]int{7, 200, 0, 0, 0}

	host := &fakeScriptHost{known: map[int]bool{200: true}}
	user := newTestMobj(20, 64, 41)

	angle := AngleTo(user.X, user.Y, user.X, 300)
	used := UsePuzzleItem(w, host, user, 9, user.X, user.Y, user.Z, angle, 512)

	assert.False(t, used)
	assert.Empty(t, host.started)
}
