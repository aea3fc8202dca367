package worldcore

// Commands queues mutations that must not happen mid-traversal: mobj
// spawn and removal, applied at well-defined points in the tick instead
// of immediately. There is no AddComponent/RemoveComponent here because
// Mobj is a concrete struct, not an archetype row.
type Commands struct {
	engine *Engine

	pendingSpawns  []*Mobj
	pendingRemoves []*Mobj
}

func newCommands(e *Engine) *Commands {
	return &Commands{engine: e}
}

// SpawnMobj queues a fully constructed mobj for linking at the next
// flush point, so a Think-stage system can create new mobjs without
// mutating the blockmap mid-iteration.
func (c *Commands) SpawnMobj(m *Mobj) {
	c.pendingSpawns = append(c.pendingSpawns, m)
}

// RemoveMobj queues m for removal at the end of the tick, after every
// stage has run.
func (c *Commands) RemoveMobj(m *Mobj) {
	c.pendingRemoves = append(c.pendingRemoves, m)
}

// flushSpawns links every mobj queued since the last flush. Called
// between stages, never mid-stage, so no system ever observes a
// half-linked mobj.
func (c *Commands) flushSpawns() {
	if len(c.pendingSpawns) == 0 {
		return
	}
	for _, m := range c.pendingSpawns {
		if m.Subsector == nil {
			m.Subsector = c.engine.World.Geometry.SubsectorAt(m.X, m.Y)
		}
		c.engine.World.Mobjs.Spawn(m)
	}
	c.pendingSpawns = c.pendingSpawns[:0]
}

func (c *Commands) flushRemoves() {
	for _, m := range c.pendingRemoves {
		c.engine.World.Mobjs.Remove(m)
	}
	c.pendingRemoves = c.pendingRemoves[:0]
}
