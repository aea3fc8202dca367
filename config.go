package worldcore

// Config collects the console-variable-backed knobs the core reads at
// boot. worldcore has no CVAR widget layer of its own — the embedding
// application is expected to populate a Config as a plain resource
// literal and pass it to NewWorld.
type Config struct {
	// NetGravity: -1 means "use the map's default gravity"; otherwise a
	// per-tick acceleration expressed as hundredths of a map unit.
	NetGravity int

	// AvoidDropoffs makes AI-controlled mobjs refuse to walk off ledges.
	AvoidDropoffs bool

	// AllowMonsterFloatOverBlocking lets float-capable monsters stand on
	// top of solid mobjs instead of being blocked by them.
	AllowMonsterFloatOverBlocking bool

	// MoveCheckZ enforces vertical non-overlap during horizontal move
	// tests (CheckThing's stand-on-pass-through rule).
	MoveCheckZ bool

	// NoAutoAim disables AimLineAttack's target acquisition for players
	// who prefer a pure freelook slope.
	NoAutoAim bool

	// PlrViewHeight is the eye height used by hitscan/sight when the
	// shooter or looker is a player.
	PlrViewHeight float64

	// NetNoMaxZRadiusAttack excludes the Z axis from RadiusAttack's
	// distance computation when true.
	NetNoMaxZRadiusAttack bool

	// PushableMomentumLimitedToPusher caps the momentum TryMove imparts
	// to a pushed mobj to the pusher's own momentum.
	PushableMomentumLimitedToPusher bool

	// StaffPowerDamageToGhosts is a Heretic-specific rule toggle. The
	// core never reads it; the ghost-damage decision is made inside
	// GameRules.DamageMob, which can consult the same Config.
	StaffPowerDamageToGhosts bool

	// MonsterInfighting lets a missile hurt a target of its own species;
	// off by default, matching the vanilla rule that same-species splash
	// never infights unless the embedder turns this on.
	MonsterInfighting bool
}

// DefaultConfig returns the configuration vanilla gameplay expects.
func DefaultConfig() Config {
	return Config{
		NetGravity:    -1,
		PlrViewHeight: 41,
	}
}

// StepHeight is the maximum vertical difference a mobj may traverse in
// one move without explicit climbing.
const StepHeight = 24.0

// DamageSentinel is the historical "use the type's definition damage"
// marker. Never left live on a spawned mobj — SpawnMob resolves it
// immediately.
const DamageSentinel = 1<<31 - 1

// GibsStateSentinel is the stateID ChangeSector passes to
// GameRules.ChangeMobState when a crushed corpse should flatten to its
// gibs state; resolving it to the type's actual gibs state is a
// GameRules concern, the same way SpawnMob resolves DamageSentinel.
const GibsStateSentinel = -1

// PuffMobjType and BloodMobjType are sentinel MobjType values the core
// passes to GameRules.SpawnMob for its own hitscan and crush effect
// spawns; resolving them to the embedding game's actual puff and blood
// definitions is a GameRules concern, the same way DamageSentinel is
// resolved by SpawnMob/DamageMob rather than by the core itself.
const (
	PuffMobjType  MobjType = -1
	BloodMobjType MobjType = -2
)
