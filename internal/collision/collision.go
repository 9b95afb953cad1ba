// Package collision implements broad-phase and narrow-phase collision
// detection over the entity set, and resolution: damage application,
// asteroid splitting and destruction marking.
package collision

import (
	"github.com/semissileman/spacehunter/internal/core"
	"github.com/semissileman/spacehunter/internal/entity"
	"github.com/semissileman/spacehunter/internal/physics"
)

// Params tunes the collision response.
type Params struct {
	// KineticScale converts mass x relative-speed^2 into damage points.
	KineticScale float64

	// SplitRadius is the minimum asteroid radius that produces debris when
	// the asteroid is destroyed. Smaller rocks just disappear.
	SplitRadius float64

	// DebrisInherit is the fraction of the parent velocity debris keeps.
	DebrisInherit float64

	// DebrisSpread is the max random perturbation added to debris velocity
	// on each axis.
	DebrisSpread float64
}

// DefaultParams returns the stock collision response tuning.
func DefaultParams() Params {
	return Params{
		KineticScale:  0.02,
		SplitRadius:   12,
		DebrisInherit: 0.5,
		DebrisSpread:  3,
	}
}

// Pair is a detected overlap between two live entities.
type Pair struct {
	A, B *entity.Entity
}

// EventKind labels what happened during resolution.
type EventKind int

const (
	EventDamage    EventKind = iota // Target took damage and survived
	EventDestroyed                  // Target was destroyed this tick
	EventSplit                      // An asteroid split into debris
)

// Event reports one resolution outcome. The session uses events for
// scoring, so destroyed-this-tick entities contribute points exactly once.
type Event struct {
	Kind          EventKind
	Target        entity.ID
	TargetKind    entity.Kind
	Source        entity.ID // Projectile or colliding body
	SourceFaction entity.Faction
	Amount        float64 // Damage dealt, or debris count for EventSplit
}

// Engine runs detection and resolution. It owns a reusable spatial grid
// sized to the playing field.
type Engine struct {
	grid   *physics.SpatialGrid
	params Params
}

// NewEngine creates a collision engine for the given field. cellSize must
// be at least twice the largest entity radius (including mine trigger
// radii) so the 3x3 neighborhood query finds every overlap.
func NewEngine(runtime core.RuntimeConfig, cellSize float64, params Params) *Engine {
	// The grid covers one field-width margin on every side so entities
	// drifting past the edge keep colliding until they despawn.
	grid := physics.NewSpatialGrid(
		-runtime.WorldW, -runtime.WorldH,
		runtime.WorldW*3, runtime.WorldH*3,
		cellSize,
	)
	return &Engine{grid: grid, params: params}
}

// Detect returns all colliding pairs among the given entities.
// Broad phase is the spatial grid; narrow phase is a circle overlap test.
// Dead entities never appear in a pair.
func (ng *Engine) Detect(entities []*entity.Entity) []Pair {
	ng.grid.Clear()
	for i, e := range entities {
		if !e.Alive {
			continue
		}
		ng.grid.Insert(e.Pos.X, e.Pos.Y, i)
	}

	var pairs []Pair
	for i, a := range entities {
		if !a.Alive {
			continue
		}
		ng.grid.QueryAround(a.Pos.X, a.Pos.Y, func(j int) bool {
			if j <= i {
				return false // Each pair once
			}
			b := entities[j]
			if !b.Alive || !shouldCollide(a, b) {
				return false
			}
			if overlap(a, b) {
				pairs = append(pairs, Pair{A: a, B: b})
			}
			return false
		})
	}
	return pairs
}

// shouldCollide applies the faction and kind rules:
// projectiles never hit their own source or their own faction, rounds pass
// through each other, and the supply ship never crushes the player.
func shouldCollide(a, b *entity.Entity) bool {
	if a.Proj != nil && b.Proj != nil {
		return false
	}
	if a.Proj != nil && !projectileHits(a, b) {
		return false
	}
	if b.Proj != nil && !projectileHits(b, a) {
		return false
	}
	if isDockingPair(a, b) {
		return false
	}
	return true
}

func projectileHits(p, target *entity.Entity) bool {
	if p.Proj.SourceID == target.ID {
		return false
	}
	// No friendly fire: rounds only hit neutral junk and opposing ships.
	if target.Faction != entity.FactionNeutral && target.Faction == p.Faction {
		return false
	}
	return true
}

func isDockingPair(a, b *entity.Entity) bool {
	return (a.Kind == entity.KindSupplyShip && b.Kind == entity.KindShip) ||
		(b.Kind == entity.KindSupplyShip && a.Kind == entity.KindShip)
}

// overlap is the narrow-phase circle test. Mines use their trigger radius
// against hostiles so they detonate at standoff distance.
func overlap(a, b *entity.Entity) bool {
	ra, rb := a.Radius, b.Radius
	if a.Kind == entity.KindMine && a.Hostile(b) && a.Proj != nil && a.Proj.TriggerRadius > ra {
		ra = a.Proj.TriggerRadius
	}
	if b.Kind == entity.KindMine && b.Hostile(a) && b.Proj != nil && b.Proj.TriggerRadius > rb {
		rb = b.Proj.TriggerRadius
	}
	minDist := ra + rb
	return a.Pos.DistanceSquared(b.Pos) < minDist*minDist
}

// Resolve applies damage for each detected pair. Entities destroyed earlier
// in the same tick are skipped, so a destroyed entity never participates in
// further collisions within the tick it died. Newly spawned debris is
// handed to the spawn callback (the session assigns IDs and ownership).
func (ng *Engine) Resolve(pairs []Pair, rng *core.RNG, spawn func(*entity.Entity)) []Event {
	var events []Event
	for _, pair := range pairs {
		a, b := pair.A, pair.B
		if !a.Alive || !b.Alive {
			continue
		}

		switch {
		case a.Proj != nil:
			events = append(events, ng.resolveHit(a, b, rng, spawn)...)
		case b.Proj != nil:
			events = append(events, ng.resolveHit(b, a, rng, spawn)...)
		default:
			events = append(events, ng.resolveImpact(a, b, rng, spawn)...)
		}
	}
	return events
}

// resolveHit applies a weapon round (or mine detonation) to its target.
// The round is always spent.
func (ng *Engine) resolveHit(p, target *entity.Entity, rng *core.RNG, spawn func(*entity.Entity)) []Event {
	dmg := p.Proj.Damage
	target.ApplyDamage(dmg)
	p.Kill()

	events := []Event{{
		Kind:          EventDamage,
		Target:        target.ID,
		TargetKind:    target.Kind,
		Source:        p.ID,
		SourceFaction: p.Faction,
		Amount:        dmg,
	}}
	return append(events, ng.finish(target, p.ID, p.Faction, rng, spawn)...)
}

// resolveImpact handles a body-on-body collision. Both members take damage
// proportional to the other's mass times the squared relative speed, with
// the precomputed contact rating as a floor.
func (ng *Engine) resolveImpact(a, b *entity.Entity, rng *core.RNG, spawn func(*entity.Entity)) []Event {
	relSq := a.Vel.Sub(b.Vel).LengthSquared()

	dmgToA := ng.params.KineticScale * b.Mass * relSq
	if b.ContactDamage > dmgToA {
		dmgToA = b.ContactDamage
	}
	dmgToB := ng.params.KineticScale * a.Mass * relSq
	if a.ContactDamage > dmgToB {
		dmgToB = a.ContactDamage
	}

	a.ApplyDamage(dmgToA)
	b.ApplyDamage(dmgToB)

	events := []Event{
		{Kind: EventDamage, Target: a.ID, TargetKind: a.Kind, Source: b.ID, SourceFaction: b.Faction, Amount: dmgToA},
		{Kind: EventDamage, Target: b.ID, TargetKind: b.Kind, Source: a.ID, SourceFaction: a.Faction, Amount: dmgToB},
	}
	events = append(events, ng.finish(a, b.ID, b.Faction, rng, spawn)...)
	return append(events, ng.finish(b, a.ID, a.Faction, rng, spawn)...)
}

// finish emits destruction events and splits destroyed asteroids.
func (ng *Engine) finish(target *entity.Entity, source entity.ID, srcFaction entity.Faction, rng *core.RNG, spawn func(*entity.Entity)) []Event {
	if target.Alive {
		return nil
	}

	events := []Event{{
		Kind:          EventDestroyed,
		Target:        target.ID,
		TargetKind:    target.Kind,
		Source:        source,
		SourceFaction: srcFaction,
	}}

	if target.Kind == entity.KindAsteroid && target.Radius > ng.params.SplitRadius {
		n := ng.Split(target, rng, spawn)
		events = append(events, Event{
			Kind:       EventSplit,
			Target:     target.ID,
			TargetKind: target.Kind,
			Amount:     float64(n),
		})
	}
	return events
}

// Split breaks an asteroid into 2-3 debris fragments with divergent
// velocities: a fraction of the parent velocity plus a seeded random
// perturbation. Returns the number of fragments spawned.
func (ng *Engine) Split(parent *entity.Entity, rng *core.RNG, spawn func(*entity.Entity)) int {
	n := rng.IntRange(2, 4)
	for i := 0; i < n; i++ {
		radius := rng.Range(parent.Radius/4, parent.Radius/2)
		vel := parent.Vel.Scale(ng.params.DebrisInherit).Add(core.Vec2{
			X: rng.Range(-ng.params.DebrisSpread, ng.params.DebrisSpread),
			Y: rng.Range(-ng.params.DebrisSpread, ng.params.DebrisSpread),
		})
		deb := &entity.Entity{
			Kind:          entity.KindDebris,
			Faction:       entity.FactionNeutral,
			Pos:           parent.Pos,
			Vel:           vel,
			VelR:          rng.Range(-15, 15),
			Mass:          radius * radius,
			Radius:        radius,
			Health:        radius,
			MaxHealth:     radius,
			ContactDamage: entity.KineticRating(radius, vel),
			Alive:         true,
		}
		spawn(deb)
	}
	return n
}
