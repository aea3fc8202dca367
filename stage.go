package worldcore

// Stage names one step of the per-tick pipeline: thinking, moving,
// propagating sector changes, running scripts and cleaning up deferred
// removals. There are no render stages — this is a headless simulation
// core.
type Stage int

const (
	StageThink Stage = iota
	StageMove
	StageSectorChange
	StageScript
	StageCleanup
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageThink:
		return "Think"
	case StageMove:
		return "Move"
	case StageSectorChange:
		return "SectorChange"
	case StageScript:
		return "Script"
	case StageCleanup:
		return "Cleanup"
	default:
		return "Unknown"
	}
}

// System is one unit of per-tick work registered to a Stage.
type System func(e *Engine, cmd *Commands)

// Module installs one or more systems into an Engine at build time.
// There is no reflection-based argument injection: every System takes
// the concrete Engine and Commands types directly, because this domain
// has exactly one kind of entity and one world to operate on, not an
// open set of component types a generic system signature would need to
// resolve.
type Module interface {
	Install(e *Engine, cmd *Commands)
}
