package weapon

import (
	"math"

	"github.com/semissileman/spacehunter/internal/core"
	"github.com/semissileman/spacehunter/internal/entity"
)

// homingApproachRadius is the distance at which a guided round starts
// easing off instead of overshooting its target.
const homingApproachRadius = 5

// SteerHoming updates one guided round for the current tick: after the
// acquisition delay it locks the nearest hostile and sets thrust to steer
// toward it within the round's turn-force limit. Retargets every tick, so a
// destroyed target is simply replaced by the next nearest. Call before
// integration.
func SteerHoming(p *entity.Entity, candidates []*entity.Entity) {
	if p.Proj == nil || !p.Proj.Homing {
		return
	}

	p.Proj.Age++
	if p.Proj.Age < p.Proj.AcquireDelay {
		return // Still clearing the launch rail
	}

	target := nearestHostile(p, candidates)
	if target == nil {
		p.Proj.TargetID = entity.None
		return
	}
	p.Proj.TargetID = target.ID

	// Seek steering: desired velocity toward the target at full speed,
	// eased inside the approach radius, with the correction force capped.
	toTarget := target.Pos.Sub(p.Pos)
	dist := toTarget.Length()
	if dist == 0 {
		return
	}

	desired := toTarget.Scale(1 / dist) // Normalized
	if dist < homingApproachRadius {
		desired = desired.Scale(dist / homingApproachRadius * p.MaxSpeed)
	} else {
		desired = desired.Scale(p.MaxSpeed)
	}

	steer := desired.Sub(p.Vel).ClampLength(p.Proj.TurnForce)
	p.Thrust = steer

	// Point the round along its velocity for the HUD.
	p.Rot = core.NormalizeDeg(-math.Atan2(p.Vel.X, -p.Vel.Y) * 180 / math.Pi)
}

// nearestHostile returns the closest live entity hostile to the round.
func nearestHostile(p *entity.Entity, candidates []*entity.Entity) *entity.Entity {
	var best *entity.Entity
	bestDist := math.Inf(1)
	for _, c := range candidates {
		if !c.Alive || !p.Hostile(c) {
			continue
		}
		if c.Proj != nil {
			continue // Rounds do not chase other rounds
		}
		d := p.Pos.DistanceSquared(c.Pos)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}
