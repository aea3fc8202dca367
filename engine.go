package worldcore

// Engine owns one World for the lifetime of a map and runs its tick
// pipeline: a concrete, non-reflective App/Module/Stage machine — same
// vocabulary (Module.Install, staged systems, deferred Commands), but
// every system is a plain func(*Engine, *Commands) instead of a
// reflection-resolved signature, since worldcore has no open set of
// component types to resolve arguments against.
type Engine struct {
	World *World

	Scripts  ScriptHost
	Thinkers ThinkerScheduler

	logger Logger
	rand   *RandomTable

	systems [stageCount][]System

	tick uint64
}

// NewEngine builds an Engine around an already-constructed World. The
// caller is expected to have run NewWorldGeometryStore and
// BuildRejectMatrix (or supplied a precomputed reject lump) beforehand;
// Engine itself has no map-loading responsibility — load-time geometry
// construction stays separate from tick-time simulation.
func NewEngine(world *World, logger Logger) *Engine {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Engine{
		World:  world,
		logger: logger,
		rand:   world.Rand,
	}
}

func (e *Engine) Logger() Logger { return e.logger }

// Use installs a Module's systems. Modules must be installed once,
// before the first Tick.
func (e *Engine) Use(m Module) {
	cmd := newCommands(e)
	m.Install(e, cmd)
}

// AddSystem registers fn to run during stage, in registration order.
func (e *Engine) AddSystem(stage Stage, fn System) {
	e.systems[stage] = append(e.systems[stage], fn)
}

// Tick advances the simulation by one frame: runs every stage's systems
// in order, flushing queued spawns between stages and draining deferred
// removals at the end. There is exactly one goroutine calling Tick for
// the lifetime of the Engine; nothing in worldcore is safe to call
// concurrently with it.
func (e *Engine) Tick() {
	cmd := newCommands(e)

	for stage := Stage(0); stage < stageCount; stage++ {
		for _, sys := range e.systems[stage] {
			sys(e, cmd)
		}
		cmd.flushSpawns()
	}

	cmd.flushRemoves()
	e.World.Mobjs.DrainRemovals()

	e.tick++
}

// TickCount reports how many ticks have elapsed since the Engine was
// created, for save-game and demo header bookkeeping.
func (e *Engine) TickCount() uint64 { return e.tick }
