// Package entity defines the simulation entity model: the base state shared
// by every object on the playing field and the variant kinds (ships,
// asteroids, debris, projectiles, supply ship, mines).
package entity

import "github.com/semissileman/spacehunter/internal/core"

// ID uniquely identifies an entity within a session.
// IDs are never reused; 0 is the invalid ID.
type ID uint64

// None is the zero ID, meaning "no entity".
const None ID = 0

// Kind discriminates entity variants.
type Kind int

const (
	KindShip       Kind = iota // The player ship
	KindEnemy                  // Hostile ship
	KindAsteroid               // Large passive rock, splits when destroyed
	KindDebris                 // Fragment of a split asteroid or wreck
	KindProjectile             // Weapon round in flight
	KindSupplyShip             // Friendly supply ship (docking target)
	KindMine                   // Proximity-triggered stationary weapon
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindEnemy:
		return "enemy"
	case KindAsteroid:
		return "asteroid"
	case KindDebris:
		return "debris"
	case KindProjectile:
		return "projectile"
	case KindSupplyShip:
		return "supplyship"
	case KindMine:
		return "mine"
	default:
		return "unknown"
	}
}

// Faction determines hostility between entities.
type Faction int

const (
	FactionNeutral Faction = iota // Asteroids, debris
	FactionPlayer                 // Player ship, player projectiles, supply ship
	FactionHostile                // Enemies and their projectiles
)

// Projectile holds the payload carried by projectile and mine entities.
type Projectile struct {
	SourceID ID      // Entity that fired the round (never hit by it)
	Weapon   string  // Weapon name, for snapshots and HUD
	Damage   float64 // Damage applied on hit

	// Homing behavior (sidewinder)
	Homing       bool
	TurnForce    float64 // Max steering force per tick
	AcquireDelay int     // Ticks before target acquisition starts
	Age          int     // Ticks since launch
	TargetID     ID      // Currently tracked target, None if unacquired

	// Mine behavior
	TriggerRadius float64 // Detonation distance; 0 for ordinary rounds
}

// Entity is the base simulation object. All fields are plain values so a
// snapshot of the entity set is a deep copy away.
type Entity struct {
	ID      ID
	Kind    Kind
	Faction Faction

	Pos core.Vec2
	Vel core.Vec2
	// Thrust is the acceleration applied during the next integration step.
	// Controllers (player input, AI, homing) set it each tick; it does not
	// persist across ticks.
	Thrust core.Vec2

	Rot      float64 // Orientation in degrees; independent of velocity
	VelR     float64 // Rotational velocity in degrees per tick
	YawAccel float64 // Rotational acceleration for the next step

	MaxSpeed float64 // Speed limit; 0 means unlimited
	MaxYaw   float64 // Rotational speed limit; 0 means unlimited

	Mass   float64
	Radius float64

	Health    float64
	MaxHealth float64

	// ContactDamage is inflicted on whatever this entity collides with.
	// For junk it is a kinetic rating fixed at spawn time.
	ContactDamage float64

	Alive bool

	// OutOfPlayTicks counts consecutive ticks spent beyond the in-play
	// range. Entities despawn softly after a grace period.
	OutOfPlayTicks int

	Proj *Projectile // Non-nil only for projectiles and mines
}

// ApplyDamage reduces health, clamping at zero. When health reaches zero the
// entity is marked dead; the session removes dead entities at end of tick.
func (e *Entity) ApplyDamage(amount float64) {
	if !e.Alive || amount <= 0 {
		return
	}
	e.Health -= amount
	if e.Health <= 0 {
		e.Health = 0
		e.Alive = false
	}
}

// Kill marks the entity dead regardless of health.
func (e *Entity) Kill() {
	e.Health = 0
	e.Alive = false
}

// Hostile reports whether the two entities belong to opposing factions.
// Neutral entities are hostile to nobody but collide with everybody.
func (e *Entity) Hostile(other *Entity) bool {
	if e.Faction == FactionNeutral || other.Faction == FactionNeutral {
		return false
	}
	return e.Faction != other.Faction
}

// KineticRating computes the nominal collision damage of a moving body,
// proportional to its size and the square of its speed.
func KineticRating(radius float64, vel core.Vec2) float64 {
	return radius * vel.LengthSquared() / 4
}

// Clone returns a deep copy of the entity.
func (e *Entity) Clone() *Entity {
	clone := *e
	if e.Proj != nil {
		proj := *e.Proj
		clone.Proj = &proj
	}
	return &clone
}
