// Package weapon implements the per-bay weapon state machines, the weapon
// characteristics table, projectile spawning and armoury trading.
package weapon

import (
	"github.com/semissileman/spacehunter/internal/core"
	"github.com/semissileman/spacehunter/internal/entity"
)

// Kind identifies a weapon class.
type Kind int

const (
	Empty Kind = iota
	Laser
	UltraLaser
	Gatling
	Missile
	Sidewinder
	Mine
)

// String returns the weapon's display name.
func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Laser:
		return "Laser"
	case UltraLaser:
		return "UltraLaser"
	case Gatling:
		return "Gatling"
	case Missile:
		return "Missile"
	case Sidewinder:
		return "Sidewinder"
	case Mine:
		return "Mine"
	default:
		return "Unknown"
	}
}

// KindByName returns the kind for a display name, or Empty if unknown.
// Used when restoring snapshots.
func KindByName(name string) Kind {
	for k := Empty; k <= Mine; k++ {
		if k.String() == name {
			return k
		}
	}
	return Empty
}

// Spec describes the fixed characteristics of a weapon class.
type Spec struct {
	Cost     int // Purchase price in score points
	AmmoCost int // Price per round in score points
	Notes    string

	Damage    float64
	Capacity  int // Rounds per bay
	Replenish int // Rounds auto-restored per replenish interval; 0 = none
	Rate      int // Rounds per minute; 1 = single shot
	MaxHeat   int // Heat limit before forced cooldown; 0 = never overheats

	MuzzleSpeed float64
	Radius      float64 // Round collision radius
	Homing      bool
	TurnForce   float64 // Homing steering force per tick
	Trigger     float64 // Mine trigger radius; 0 for ordinary rounds
}

// specs is the weapon characteristics table.
var specs = map[Kind]Spec{
	Empty: {},
	Laser: {
		Cost: 1000, AmmoCost: 30,
		Notes:  "Very high velocity. High rate of fire, but can over-heat on long bursts. Automatically recharges in background.",
		Damage: 10, Capacity: 100, Replenish: 5, Rate: 600, MaxHeat: 30,
		MuzzleSpeed: 30, Radius: 3,
	},
	UltraLaser: {
		Cost: 4000, AmmoCost: 60,
		Notes:  "Double the damage of a normal laser. Takes slightly longer to recharge.",
		Damage: 20, Capacity: 100, Replenish: 4, Rate: 600, MaxHeat: 40,
		MuzzleSpeed: 30, Radius: 3,
	},
	Gatling: {
		Cost: 5000, AmmoCost: 50,
		Notes:  "Very high rate of fire, but will over-heat on long bursts. Watch your ammo level!",
		Damage: 30, Capacity: 300, Replenish: 0, Rate: 1500, MaxHeat: 50,
		MuzzleSpeed: 15, Radius: 3,
	},
	Missile: {
		Cost: 10000, AmmoCost: 1500,
		Notes:  "Not guided - line of sight only.",
		Damage: 100, Capacity: 80, Replenish: 2, Rate: 1,
		MuzzleSpeed: 20, Radius: 6,
	},
	Sidewinder: {
		Cost: 5000, AmmoCost: 50,
		Notes:  "Will automatically find and track the closest enemy targets.",
		Damage: 100, Capacity: 100, Replenish: 0, Rate: 1,
		MuzzleSpeed: 3, Radius: 10, Homing: true, TurnForce: 0.3,
	},
	Mine: {
		Cost: 15000, AmmoCost: 2000,
		Notes:  "Kill your velocity before laying to avoid drift.",
		Damage: 100, Capacity: 5, Replenish: 0, Rate: 1,
		Radius: 6, Trigger: 60,
	},
}

// SpecFor returns the characteristics of a weapon class.
func SpecFor(k Kind) Spec {
	return specs[k]
}

// Tradeable lists the weapon classes available in the armoury,
// in catalogue order.
func Tradeable() []Kind {
	return []Kind{Empty, Laser, UltraLaser, Gatling, Missile, Sidewinder, Mine}
}

// homingSpeed is the max speed a guided round can steer itself up to.
const homingSpeed = 30

// acquireDelayTicks is the guided-round target acquisition delay as a
// fraction of a second (300ms in the stock tuning).
func acquireDelayTicks(tickRate int) int {
	return tickRate * 3 / 10
}

// Spawn creates the projectile entity for one fired round. The round starts
// at the owner's position, travelling along the owner's heading at muzzle
// speed on top of nothing (lasers) or the owner's own velocity (mines drift
// with their layer).
func (k Kind) Spawn(owner *entity.Entity, tickRate int) *entity.Entity {
	spec := specs[k]

	e := &entity.Entity{
		Kind:      entity.KindProjectile,
		Faction:   owner.Faction,
		Pos:       owner.Pos,
		Rot:       owner.Rot,
		Radius:    spec.Radius,
		Mass:      1,
		Health:    1,
		MaxHealth: 1,
		Alive:     true,
		Proj: &entity.Projectile{
			SourceID: owner.ID,
			Weapon:   k.String(),
			Damage:   spec.Damage,
		},
	}

	switch k {
	case Mine:
		e.Kind = entity.KindMine
		e.Vel = owner.Vel // Drifts with the layer until velocity is killed
		e.Proj.TriggerRadius = spec.Trigger
	case Sidewinder:
		e.Vel = core.Heading(owner.Rot).Scale(spec.MuzzleSpeed)
		e.MaxSpeed = homingSpeed
		e.Proj.Homing = true
		e.Proj.TurnForce = spec.TurnForce
		e.Proj.AcquireDelay = acquireDelayTicks(tickRate)
	default:
		e.Vel = core.Heading(owner.Rot).Scale(spec.MuzzleSpeed)
		e.MaxSpeed = spec.MuzzleSpeed
	}

	return e
}
