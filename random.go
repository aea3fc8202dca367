package worldcore

// RandomTable is the single 256-entry lookup table the whole core draws
// from. Determinism for demos and netplay depends on every random draw
// coming from this one table advanced by a single cursor, independent of
// map layout, hash iteration order, or goroutine scheduling (there is
// only ever one tick goroutine; see Engine.Tick).
//
// The table itself is a fixed 256-byte sequence: not statistically
// strong, chosen because demo formats and derived behaviors in this
// lineage bake in an exact sequence. A stronger PRNG would change
// gameplay sequences and break replayability, so math/rand is
// deliberately not used here.
type RandomTable struct {
	cursor uint8
}

func NewRandomTable() *RandomTable {
	return &RandomTable{}
}

// Index reports the current cursor position, for save/demo serialization.
func (r *RandomTable) Index() uint8 { return r.cursor }

// SetIndex restores a cursor position loaded from a save or demo header.
func (r *RandomTable) SetIndex(i uint8) { r.cursor = i }

// Random returns a value in [0,255] and advances the cursor.
func (r *RandomTable) Random() int {
	v := randomTableData[r.cursor]
	r.cursor++
	return int(v)
}

// SubRandom returns Random()-Random(), a value in [-255,255], and
// advances the cursor twice.
// Hitscan spread and slide-friction jitter computations classically use
// this signed form rather than Random(); both draws share the same
// cursor and table.
func (r *RandomTable) SubRandom() int {
	return r.Random() - r.Random()
}

var randomTableData = [256]uint8{
	246, 134, 229, 18, 59, 85, 170, 179, 79, 204, 181, 206, 143, 141,
	159, 224, 3, 97, 119, 36, 75, 55, 16, 165, 99, 228, 130, 61,
	196, 91, 246, 253, 199, 7, 184, 190, 60, 30, 219, 182, 127, 253,
	12, 151, 173, 131, 242, 99, 45, 198, 8, 233, 217, 4, 180, 226,
	76, 84, 169, 82, 189, 202, 253, 174, 70, 94, 196, 114, 149, 181,
	157, 17, 171, 227, 248, 61, 176, 136, 210, 40, 43, 119, 151, 18,
	28, 201, 175, 46, 157, 253, 191, 222, 234, 207, 228, 228, 223, 82,
	107, 222, 202, 206, 22, 16, 183, 64, 168, 157, 172, 115, 20, 65,
	238, 241, 227, 140, 66, 197, 113, 70, 253, 252, 211, 85, 67, 175,
	65, 124, 220, 170, 116, 162, 39, 87, 253, 243, 93, 209, 253, 232,
	84, 241, 178, 17, 203, 51, 6, 186, 88, 165, 187, 179, 13, 221,
	69, 242, 106, 105, 106, 46, 71, 241, 152, 250, 171, 253, 198, 152,
	129, 12, 117, 95, 86, 223, 53, 229, 199, 152, 161, 197, 116, 238,
	13, 137, 74, 233, 1, 252, 120, 39, 107, 239, 7, 150, 172, 4,
	153, 51, 166, 53, 84, 150, 239, 60, 180, 84, 193, 142, 103, 46,
	241, 141, 124, 40, 89, 219, 62, 68, 146, 243, 112, 147, 28, 108,
	190, 37, 109, 212, 103, 163, 240, 3, 160, 112, 156, 150, 212, 82,
	236, 1, 223, 200, 153, 208, 171, 176, 59, 179, 174, 93, 34, 176,
	1, 123, 214, 125,
}
