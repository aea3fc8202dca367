package worldcore

// Activation enumerates the reasons a special line can fire, passed to
// GameRules.CrossSpecialLine.
type Activation int

const (
	ActivationCross Activation = iota
	ActivationImpact
	ActivationUse
	ActivationPush
	ActivationMonsterCross
	ActivationProjectileCross
)

func (a Activation) String() string {
	switch a {
	case ActivationCross:
		return "cross"
	case ActivationImpact:
		return "impact"
	case ActivationUse:
		return "use"
	case ActivationPush:
		return "push"
	case ActivationMonsterCross:
		return "mcross"
	case ActivationProjectileCross:
		return "pcross"
	default:
		return "unknown"
	}
}

// GameRules is the boundary to the game rules plugin. The core never
// implements gameplay semantics itself; it calls out through this
// interface at well-defined moments: line crossing, pickup touch,
// damage, spawn/remove/state-change, terrain lookup.
type GameRules interface {
	CrossSpecialLine(line *Line, mob *Mobj, side int, activation Activation)
	TouchSpecial(pickup, picker *Mobj)
	DamageMob(target, inflictor, source *Mobj, amount int, stomp bool) int
	SpawnMob(typ MobjType, x, y, z float64, angle BAMAngle, flags MobjFlags) *Mobj
	RemoveMob(mob *Mobj)
	ChangeMobState(mob *Mobj, stateID int)
	GetMobjFloorTerrain(mob *Mobj) Terrain
}

// Terrain is an opaque terrain identifier returned by GameRules; the
// core only ever threads it through to the caller (TryMove's commit
// phase updating a floor-clip effect), never interprets it.
type Terrain int

// ScriptHost is the boundary to the ACS script interpreter. Only the
// entry-point contract is in scope; the interpreter's internals are
// external. UsePuzzleItem (script.go) is the core's one caller.
type ScriptHost interface {
	HasScript(number int) bool
	StartScript(number int, args [4]int, activator *Mobj, line *Line, side int) bool
}

// ThinkerScheduler is the boundary to the scheduler/thinker system: the
// core asks it to visit live thinkers of a kind, e.g. for RadiusAttack's
// "every mobj in range" sweep, which uses it to reach MFNoBlockmap mobjs
// that its blockmap query cannot see.
type ThinkerScheduler interface {
	IterateThinkers(kind int, callback func(thinker any) bool)
}

// ThinkerKindMobj is the conventional kind argument for "every regular
// mobj thinker", the only kind the core itself ever asks a
// ThinkerScheduler to iterate.
const ThinkerKindMobj = 0
