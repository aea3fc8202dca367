package worldcore

// MoveContext is the explicit workspace TryMove's check phase fills in
// and the commit phase reads back, replacing the classic engine's global
// tmfloorz/tmceilingz/tmdropoffz/tmfloorline/... scratch variables.
// Keeping it as a value the caller owns, rather than package-level
// state, lets a caller run a what-if CheckPosition without committing
// it. Probes still share the map's validCount and can fire thing
// collision side effects, so they belong on the one tick goroutine.
type MoveContext struct {
	Mobj *Mobj

	X, Y float64

	FloorZ, CeilingZ, DropoffZ float64
	FloorPlane, CeilingPlane   *Plane

	// SpecialLines collects every special line crossed during the check
	// phase, for the commit phase to fire via GameRules.CrossSpecialLine.
	SpecialLines []specialLineCrossing

	// TouchingSectors collects every sector the destination radius
	// overlaps, for ChangeSector's multi-sector floor/ceiling rule.
	TouchingSectors []*Sector

	// BlockingLine/BlockingMobj record what stopped the move, if
	// anything, for the caller's slide/bounce decision.
	BlockingLine *Line
	BlockingMobj *Mobj

	// OnMobj records a mobj the destination would rest on top of.
	OnMobj *Mobj

	// AllowDropoff is a caller-set input: permit the move even when the
	// destination hangs over a ledge deeper than StepHeight. reset
	// preserves it so a caller can set it once before TryMove.
	AllowDropoff bool

	// FellDown reports that the committed move dropped the mobj over a
	// ledge deeper than StepHeight (only possible with AllowDropoff).
	FellDown bool
}

type specialLineCrossing struct {
	line *Line
	side int
}

// reset clears the context for a fresh CheckPosition call against mob,
// keeping the struct's backing slices around instead of reallocating
// every tick.
func (c *MoveContext) reset(mob *Mobj, x, y float64) {
	c.Mobj = mob
	c.X, c.Y = x, y
	c.FloorZ = -1e30
	c.CeilingZ = 1e30
	c.DropoffZ = 1e30
	c.FloorPlane, c.CeilingPlane = nil, nil
	c.SpecialLines = c.SpecialLines[:0]
	c.TouchingSectors = c.TouchingSectors[:0]
	c.BlockingLine = nil
	c.BlockingMobj = nil
	c.OnMobj = nil
	c.FellDown = false
}
