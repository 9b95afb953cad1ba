// Package physics provides inertial integration and broad-phase collision
// support for the simulation core.
package physics

import (
	"github.com/semissileman/spacehunter/internal/core"
	"github.com/semissileman/spacehunter/internal/entity"
)

// Params holds the field-wide physics tuning.
type Params struct {
	// VelDamping is the strength of inertial damping for velocity, applied
	// only on ticks with no thrust. The decay is exponential
	// (vel /= 1 + d/100) so speed approaches zero but never reaches it in
	// a finite number of ticks: ships drift until countered.
	VelDamping float64

	// YawDamping is the equivalent damping for rotational velocity.
	YawDamping float64
}

// DefaultParams returns the stock damping strengths.
func DefaultParams() Params {
	return Params{VelDamping: 1, YawDamping: 5}
}

// Integrate advances one entity by a single step of dt ticks.
//
// Velocity changes only through the entity's thrust (set by its controller
// this tick) and damping. Rotation is integrated independently of velocity,
// so a ship can face any direction while drifting. Thrust and yaw
// acceleration are consumed: they do not persist to the next tick.
func Integrate(e *entity.Entity, dt float64, p Params) {
	e.Vel = e.Vel.Add(e.Thrust.Scale(dt))
	if e.MaxSpeed > 0 {
		e.Vel = e.Vel.ClampLength(e.MaxSpeed)
	}

	e.VelR += e.YawAccel * dt
	if e.MaxYaw > 0 {
		e.VelR = core.ClampF(e.VelR, -e.MaxYaw, e.MaxYaw)
	}

	e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	e.Rot = core.NormalizeDeg(e.Rot + e.VelR*dt)

	// Inertial damping engages only in the absence of an acceleration force.
	if e.Thrust == (core.Vec2{}) && p.VelDamping > 0 {
		e.Vel = e.Vel.Scale(1 / (1 + p.VelDamping/100))
	}
	if e.YawAccel == 0 && p.YawDamping > 0 {
		e.VelR /= 1 + p.YawDamping/100
	}

	e.Thrust = core.Vec2{}
	e.YawAccel = 0
}
