// Package ai implements per-enemy behavior: a state machine driving
// steering (seek, flee, wander) and burst fire against the player.
package ai

import (
	"math"

	"github.com/semissileman/spacehunter/internal/core"
	"github.com/semissileman/spacehunter/internal/entity"
	"github.com/semissileman/spacehunter/internal/weapon"
)

// State is the behavior state machine position.
type State int

const (
	StatePatrol  State = iota // Wandering, player not yet on radar
	StateTrack                // Player on radar, closing in
	StateAttack               // In weapon range, firing bursts
	StateRetreat              // Recently hit, breaking off
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case StatePatrol:
		return "patrol"
	case StateTrack:
		return "track"
	case StateAttack:
		return "attack"
	case StateRetreat:
		return "retreat"
	default:
		return "unknown"
	}
}

// Steering tuning shared by every enemy (original automaton dynamics).
const (
	seekForce        = 0.1
	fleeForce        = 0.1
	approachRadius   = 50
	wanderRingRadius = 200
	wanderRingDist   = 100
	wanderMaxTurn    = 180
	retreatBaseTicks = 180 // Base retreat duration at zero aggression
)

// Params are the behavior knobs for one enemy. Aggression shortens retreats
// and stretches the attack envelope; agility scales steering authority.
type Params struct {
	Aggression  float64 // 0..1
	Agility     float64 // 0..1
	RadarRange  float64 // Player detection distance
	AttackRange float64 // Base weapon engagement distance
}

// EffectiveAttackRange is the attack threshold scaled by aggression:
// a more aggressive enemy opens fire from further out.
func (p Params) EffectiveAttackRange() float64 {
	return p.AttackRange * (1 + p.Aggression)
}

// RetreatDuration is the retreat tick count scaled by aggression:
// a more aggressive enemy returns to the fight sooner.
func (p Params) RetreatDuration() int {
	d := int(retreatBaseTicks * (1.2 - p.Aggression))
	if d < 30 {
		d = 30
	}
	return d
}

// Controller drives one enemy entity. It references the entity by ID; the
// session owns the entity itself.
type Controller struct {
	EntityID entity.ID
	State    State
	Params   Params

	Bays     []weapon.Bay
	Selected int

	RetreatUntil uint64

	// Wander state
	WanderVec      core.Vec2
	LastWanderTick uint64

	// Burst fire state
	Shooting   bool
	BurstUntil uint64
	NextBurst  uint64
}

// NewController creates a controller in patrol state with the given loadout.
func NewController(id entity.ID, params Params, loadout []weapon.Kind) *Controller {
	bays := make([]weapon.Bay, len(loadout))
	for i, k := range loadout {
		bays[i] = weapon.NewBay(i, k)
	}
	return &Controller{
		EntityID: id,
		State:    StatePatrol,
		Params:   params,
		Bays:     bays,
	}
}

// OnHit moves the enemy into retreat. Called by the session when the enemy
// takes weapon damage and survives.
func (c *Controller) OnHit(tick uint64) {
	c.State = StateRetreat
	c.Shooting = false
	c.RetreatUntil = tick + uint64(c.Params.RetreatDuration())
}

// Decide runs one tick of the state machine: updates the state from the
// distance to the player, sets the enemy's thrust through the steering
// behaviors and reports whether the enemy wants to fire this tick.
func (c *Controller) Decide(self, player *entity.Entity, tick uint64, tickRate int, rng *core.RNG) bool {
	if player == nil || !player.Alive {
		c.State = StatePatrol
		c.Shooting = false
		c.steerWander(self, tick, rng)
		return false
	}

	dist := self.Pos.Distance(player.Pos)
	attackRange := c.Params.EffectiveAttackRange()

	switch c.State {
	case StatePatrol:
		if dist < c.Params.RadarRange {
			c.State = StateTrack
		}
	case StateTrack:
		if dist < attackRange {
			c.State = StateAttack
		} else if dist > c.Params.RadarRange*1.5 {
			c.State = StatePatrol
		}
	case StateAttack:
		if dist > attackRange*1.5 {
			c.State = StateTrack
			c.Shooting = false
		}
	case StateRetreat:
		if tick >= c.RetreatUntil {
			// Retreat is temporary: re-evaluate and rejoin the fight.
			if dist < attackRange {
				c.State = StateAttack
			} else {
				c.State = StateTrack
			}
		}
	}

	switch c.State {
	case StatePatrol:
		c.steerWander(self, tick, rng)
		c.faceTravel(self)
		return false
	case StateTrack:
		c.steerSeek(self, player.Pos)
		c.faceTravel(self)
		return false
	case StateAttack:
		c.steerSeek(self, player.Pos)
		facePoint(self, player.Pos)
		return c.updateBurst(tick, tickRate, rng)
	case StateRetreat:
		c.steerFlee(self, player.Pos)
		c.faceTravel(self)
		return false
	}
	return false
}

// SelectedBay returns the bay the enemy is currently firing from.
func (c *Controller) SelectedBay() *weapon.Bay {
	if len(c.Bays) == 0 {
		return nil
	}
	if c.Selected < 0 || c.Selected >= len(c.Bays) {
		c.Selected = 0
	}
	return &c.Bays[c.Selected]
}

// Maintain advances bay cooling and replenishment.
func (c *Controller) Maintain(tick uint64, tickRate int) {
	for i := range c.Bays {
		c.Bays[i].Maintain(tick, tickRate)
	}
}

// updateBurst implements randomized burst fire: rest for a few seconds,
// pick a bay, then hold the trigger for a fraction of a second.
func (c *Controller) updateBurst(tick uint64, tickRate int, rng *core.RNG) bool {
	if c.Shooting {
		if tick >= c.BurstUntil {
			c.Shooting = false
			c.NextBurst = tick + uint64(rng.IntRange(2*tickRate, 5*tickRate))
			return false
		}
		return true
	}

	if tick >= c.NextBurst {
		c.Shooting = true
		c.Selected = rng.Intn(len(c.Bays))
		c.BurstUntil = tick + uint64(rng.IntRange(tickRate/20, tickRate/2))
		return true
	}
	return false
}

// steerSeek accelerates toward a target position, easing off inside the
// approach radius so the enemy does not constantly overshoot.
func (c *Controller) steerSeek(self *entity.Entity, target core.Vec2) {
	toTarget := target.Sub(self.Pos)
	dist := toTarget.Length()
	if dist == 0 {
		return
	}

	desired := toTarget.Scale(1 / dist).Scale(self.MaxSpeed)
	if dist < approachRadius {
		desired = desired.Scale(dist / approachRadius)
	}
	self.Thrust = desired.Sub(self.Vel).ClampLength(seekForce * (0.5 + c.Params.Agility))
}

// steerFlee accelerates directly away from a position.
func (c *Controller) steerFlee(self *entity.Entity, threat core.Vec2) {
	away := self.Pos.Sub(threat)
	if away.Length() == 0 {
		away = core.Vec2{X: 1}
	}
	desired := away.Normalize().Scale(self.MaxSpeed)
	self.Thrust = desired.Sub(self.Vel).ClampLength(fleeForce * (0.5 + c.Params.Agility))
}

// steerWander seeks a point on a ring projected ahead of the enemy,
// re-randomized on an interval, which produces a meandering patrol course.
func (c *Controller) steerWander(self *entity.Entity, tick uint64, rng *core.RNG) {
	if tick-c.LastWanderTick > 6 || c.WanderVec == (core.Vec2{}) {
		c.LastWanderTick = tick
		c.WanderVec = core.Vec2{X: wanderRingRadius}.Rotate(rng.Range(-wanderMaxTurn, wanderMaxTurn))
	}

	future := self.Pos
	if self.Vel.Length() > 0 {
		future = self.Pos.Add(self.Vel.Normalize().Scale(wanderRingDist))
	}
	c.steerSeek(self, future.Add(c.WanderVec))
}

// faceTravel points the hull along the direction of travel.
func (c *Controller) faceTravel(self *entity.Entity) {
	if self.Vel.Length() > 0.01 {
		facePoint(self, self.Pos.Add(self.Vel))
	}
}

// facePoint snaps the hull rotation toward a world position.
func facePoint(self *entity.Entity, target core.Vec2) {
	dir := target.Sub(self.Pos)
	if dir.Length() == 0 {
		return
	}
	u := dir.Normalize()
	self.Rot = core.NormalizeDeg(math.Atan2(-u.X, -u.Y) * 180 / math.Pi)
}
