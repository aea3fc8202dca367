package worldcore

import "math"

// bamSinCos returns (sin, cos) for a BAMAngle via a table lookup, the
// classic finesine/finecosine approach, so repeated calls at tick rate
// don't pay for math.Sincos. The table is built once at package init
// from the real trig functions; lookups quantize the angle to
// bamTableBits bits, so results are exact only at table steps.
const bamTableBits = 13
const bamTableSize = 1 << bamTableBits

var bamSinTable [bamTableSize]float64

func init() {
	for i := 0; i < bamTableSize; i++ {
		theta := float64(i) / float64(bamTableSize) * 2 * math.Pi
		bamSinTable[i] = math.Sin(theta)
	}
}

func bamSinCos(a BAMAngle) (sin, cos float64) {
	idx := uint32(a) >> (32 - bamTableBits)
	sin = bamSinTable[idx]
	cosIdx := (idx + bamTableSize/4) & (bamTableSize - 1)
	cos = bamSinTable[cosIdx]
	return sin, cos
}

// AngleTo returns the BAMAngle from (x0,y0) facing (x1,y1).
func AngleTo(x0, y0, x1, y1 float64) BAMAngle {
	theta := math.Atan2(y1-y0, x1-x0)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return BAMAngle(uint32(theta / (2 * math.Pi) * float64(1<<32)))
}

// Diff returns the signed shortest angular difference b-a, in [-2^31,2^31).
func (a BAMAngle) Diff(b BAMAngle) int32 {
	return int32(b - a)
}
