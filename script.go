package worldcore

// puzzleItemLineSpecial is the conventional SpecialID a puzzle-item-use
// line carries: Args[0] is the puzzle item type the line checks the
// user against, Args[1] is the ACS script number to start, and
// Args[2:5] are that script's first three arguments.
const puzzleItemLineSpecial = 129

// UsePuzzleItem fires the nearest puzzle-item-use line within distance
// along angle whose Args[0] matches itemType, starting its script
// through host. Puzzle items are an ACS entry point distinct from
// UseLines' CrossSpecialLine activation, so a match never goes through
// GameRules at all — only ScriptHost. Reports whether a matching line
// was found and its script actually started.
func UsePuzzleItem(w *World, host ScriptHost, user *Mobj, itemType int, x, y, z float64, angle BAMAngle, distance float64) bool {
	if host == nil {
		return false
	}
	sin, cos := bamSinCos(angle)
	x1, y1 := x+cos*distance, y+sin*distance

	used := false
	vc := w.nextValidCount()
	PathTraverse(w.Geometry, x, y, x1, y1, TraversePathLines, vc, func(hit TraverseHit) bool {
		l := hit.Line
		if l.SpecialID != puzzleItemLineSpecial || l.Args[0] != itemType {
			// Not our line: keep walking through anything passable,
			// stop at the first solid wall the same way UseLines does.
			return l.TwoSided() && l.Flags&LineBlockEverything == 0
		}

		script := l.Args[1]
		if !host.HasScript(script) {
			w.Log.Warnf("puzzle line %d names unknown script %d", l.ID, script)
			return false
		}
		side := 0
		if boxOnLineSideSigned(x, y, l) < 0 {
			side = 1
		}
		var args [4]int
		copy(args[:3], l.Args[2:5])
		used = host.StartScript(script, args, user, l, side)
		return false
	})
	return used
}
