package worldcore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBamSinCos_CardinalDirections(t *testing.T) {
	cases := []struct {
		angle    BAMAngle
		sin, cos float64
	}{
		{0, 0, 1},
		{1 << 30, 1, 0},  // 90 degrees
		{1 << 31, 0, -1}, // 180 degrees
	}

	for _, c := range cases {
		sin, cos := bamSinCos(c.angle)
		assert.InDelta(t, c.sin, sin, 0.01)
		assert.InDelta(t, c.cos, cos, 0.01)
	}
}

func TestAngleTo_MatchesAtan2(t *testing.T) {
	a := AngleTo(0, 0, 10, 10)
	sin, cos := bamSinCos(a)
	assert.InDelta(t, math.Sqrt2/2, sin, 0.01)
	assert.InDelta(t, math.Sqrt2/2, cos, 0.01)
}

func TestBAMAngle_DiffWrapsAround(t *testing.T) {
	a := BAMAngle(0)
	b := BAMAngle(1 << 31)
	assert.Equal(t, int32(math.MinInt32), a.Diff(b))
}
