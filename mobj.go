package worldcore

import "github.com/google/uuid"

// MobjType identifies a spawn definition. worldcore treats it as an
// opaque key into the embedding game's type table (see
// GameRules.SpawnMob); the core never switches on it.
type MobjType int

// MobjFlags are the movement/collision-relevant bits. Rendering and
// AI-only flags are out of scope and live in the embedding application's
// own flag word instead of here.
type MobjFlags uint32

const (
	MFSolid MobjFlags = 1 << iota
	MFShootable
	MFNoBlockmap
	MFNoSector
	MFNoGravity
	MFDropOff      // may step off a ledge taller than StepHeight
	MFFloat        // floats; not subject to normal gravity clamp to floor
	MFMissile      // projectile: skips mobj-mobj blocking of its shooter
	MFCorpse       // special-cased in the step-up test
	MFSpawnCeiling // spawns hanging from the ceiling plane
	MFTeleport
	MFPickup
	MFNoClip
	MFPassMobj // other mobjs may stand on top instead of being blocked
	MFSkullFly
	MFCountKill
	MFRip        // missile rips through shootable targets instead of stopping
	MFPushable   // can be shoved by a solid mover that isn't MFCannotPush
	MFCannotPush // never imparts momentum to a pushable mobj it bumps into
	MFNoBlood    // crush/damage death skips the blood-spray spawn
	MFDropped    // a dropped item: ChangeSector removes it if a plane crushes it
	MFCamera     // a non-participant viewpoint: skipped by ChangeSector and CheckSight
)

// Has reports whether all bits of mask are set.
func (f MobjFlags) Has(mask MobjFlags) bool { return f&mask == mask }

// maxMobjRadius bounds how fat any mobj is allowed to be, the classic
// MAXRADIUS assumption blockmap queries widen their search box by.
const maxMobjRadius = 32.0

// Mobj is a map-object: the only "entity" the core model has. There is
// no generic component store — every field a moving, colliding,
// damageable thing needs is concrete, because there is exactly one kind
// of entity in this domain.
type Mobj struct {
	ID uuid.UUID

	Type  MobjType
	Flags MobjFlags

	X, Y, Z          float64
	MomX, MomY, MomZ float64
	Angle            BAMAngle

	Radius, Height float64

	Subsector        *Subsector
	FloorZ, CeilingZ float64
	// DropoffZ is the lowest adjacent floor TryMove's check phase found,
	// persisted here so a later query (AI ledge-avoidance) can read it
	// without re-running CheckPosition.
	DropoffZ                 float64
	FloorTerrain             Terrain
	FloorPlane, CeilingPlane *Plane

	Health         int
	DamageOverride int // DamageSentinel means "use type default"

	// Target, Tracer and LastEnemy are reference slots the game rules
	// plugin drives (a missile's shooter, a homing missile's lock, the
	// last thing that hurt this mobj); worldcore only ever compares
	// Target against another mobj's Type for the infighting rule in
	// checkThing, never interprets Tracer or LastEnemy itself.
	Target, Tracer, LastEnemy *Mobj

	// Player is an opaque reference to the owning player's state, nil for
	// non-player mobjs. Mirrors the Side.ShadowData/Sector.Reverb pattern:
	// worldcore threads it through but only ever tests it for nilness
	// (the "mover is a picker" gate in checkThing).
	Player any

	ThinkerID uint64
	State     int

	OnMobj *Mobj // the mobj this one is currently resting on top of, if any

	// sectorNext/sectorPrev and blockNext/blockPrev are the intrusive
	// linked-list pointers Link/Unlink maintain. They are unexported:
	// callers must go through MobjTable, never splice these by hand.
	sectorNext, sectorPrev *Mobj
	blockCell              int
	blockNext, blockPrev   *Mobj

	// touchingSectors is the list of every sector this mobj's radius
	// currently overlaps, not just the one it's centered in — what
	// TouchingMobjsIterator walks to find every mobj a moving plane
	// touches.
	touchingSectors []*Sector

	validCount int

	removePending bool
}

// Bounds returns the mobj's current horizontal AABB.
func (m *Mobj) Bounds() AABB {
	return AABB{
		MinX: m.X - m.Radius, MinY: m.Y - m.Radius,
		MaxX: m.X + m.Radius, MaxY: m.Y + m.Radius,
	}
}

// Sector returns the sector the mobj's Subsector belongs to, or nil if
// the mobj is not currently linked. There is no implicit re-link on
// read.
func (m *Mobj) Sector() *Sector {
	if m.Subsector == nil {
		return nil
	}
	return m.Subsector.Sector
}
