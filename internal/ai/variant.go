package ai

import "github.com/semissileman/spacehunter/internal/weapon"

// Variant distinguishes hostile classes. Variants share the same entity and
// controller contract and differ only by parameter table entries.
type Variant int

const (
	VariantScout   Variant = iota // Fast, skittish, lightly armed
	VariantFighter                // The standard hostile
	VariantBrawler                // Slow, heavily armed, presses the attack
)

// String returns the variant's display name.
func (v Variant) String() string {
	switch v {
	case VariantScout:
		return "scout"
	case VariantFighter:
		return "fighter"
	case VariantBrawler:
		return "brawler"
	default:
		return "unknown"
	}
}

// VariantByName returns the variant for a display name (snapshot restore).
func VariantByName(name string) Variant {
	for v := VariantScout; v <= VariantBrawler; v++ {
		if v.String() == name {
			return v
		}
	}
	return VariantFighter
}

// VariantSpec is the per-class parameter table entry.
type VariantSpec struct {
	Health   float64
	Radius   float64
	MaxSpeed float64
	MaxYaw   float64
	Bounty   int // Score for destroying this class
	Params   Params
	Loadout  []weapon.Kind
}

var variants = map[Variant]VariantSpec{
	VariantScout: {
		Health: 60, Radius: 16, MaxSpeed: 4, MaxYaw: 6, Bounty: 600,
		Params:  Params{Aggression: 0.3, Agility: 0.8, RadarRange: 350, AttackRange: 120},
		Loadout: []weapon.Kind{weapon.Laser},
	},
	VariantFighter: {
		Health: 100, Radius: 20, MaxSpeed: 3, MaxYaw: 5, Bounty: 1000,
		Params:  Params{Aggression: 0.6, Agility: 0.6, RadarRange: 300, AttackRange: 150},
		Loadout: []weapon.Kind{weapon.Laser, weapon.Gatling},
	},
	VariantBrawler: {
		Health: 160, Radius: 24, MaxSpeed: 2.2, MaxYaw: 3, Bounty: 1800,
		Params:  Params{Aggression: 0.9, Agility: 0.4, RadarRange: 280, AttackRange: 180},
		Loadout: []weapon.Kind{weapon.Gatling, weapon.Sidewinder},
	},
}

// SpecFor returns the parameter table entry for a variant.
func SpecFor(v Variant) VariantSpec {
	return variants[v]
}
