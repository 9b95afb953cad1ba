// Package session owns the authoritative game state: the entity set, the
// player, enemy controllers and the fixed-order tick loop. The presentation
// layer drives Tick and reads views; nothing in here blocks or runs in the
// background.
package session

import (
	"errors"

	"github.com/semissileman/spacehunter/internal/ai"
	"github.com/semissileman/spacehunter/internal/collision"
	"github.com/semissileman/spacehunter/internal/config"
	"github.com/semissileman/spacehunter/internal/core"
	"github.com/semissileman/spacehunter/internal/entity"
	"github.com/semissileman/spacehunter/internal/physics"
	"github.com/semissileman/spacehunter/internal/weapon"
)

// ErrNotDocked is returned by armoury operations attempted in open space.
var ErrNotDocked = errors.New("session: not docked with supply ship")

// PlayerState is the player's non-entity state. The ship entity carries
// position, velocity and shield (its health); this carries everything else.
type PlayerState struct {
	Lives    int
	Score    int
	Bays     []weapon.Bay
	Selected int
	// DockedWith is a non-owning reference to the supply ship entity,
	// entity.None when undocked.
	DockedWith entity.ID
}

// WeaponsHot reports whether a live weapon is selected. Docking requires
// weapons cold.
func (p *PlayerState) WeaponsHot() bool {
	return p.Bays[p.Selected].Kind != weapon.Empty
}

// FireOutcome reports the result of this tick's fire request, if any.
type FireOutcome struct {
	Attempted bool
	Result    weapon.FireResult
}

// TickResult is returned by Tick. Events carry per-collision detail for the
// presentation layer (explosions, sounds); the rest summarizes the tick.
type TickResult struct {
	Tick     uint64
	Fire     FireOutcome
	Events   []collision.Event
	GameOver bool
}

// supplyMode tracks what the supply ship is currently doing.
type supplyMode int

const (
	supplyParked  supplyMode = iota // Holding position off-field
	supplyEnRoute                   // Summoned, closing on the player
	supplyParking                   // Returning to a parking position
)

// Session is the single source of truth for one game. It owns all entities
// exclusively; a fresh session is created with New and advanced with Tick.
type Session struct {
	cfg     config.GameConfig
	runtime core.RuntimeConfig

	rng      *core.RNG
	phys     physics.Params
	collider *collision.Engine

	tick     uint64
	paused   bool
	gameOver bool
	level    int

	nextID   entity.ID
	entities []*entity.Entity

	playerID entity.ID
	player   PlayerState

	// respawnAt is the tick at which the hidden, respawning player ship
	// re-enters play; 0 when the ship is active.
	respawnAt uint64

	// controllers is ordered by creation so enemy decisions consume the
	// RNG in a stable order (map iteration would break determinism).
	controllers []*ai.Controller
	variants    map[entity.ID]ai.Variant

	supplyID     entity.ID
	supplyState  supplyMode
	supplyTarget core.Vec2

	nextAsteroidStorm uint64
	nextEnemyStorm    uint64
}

// New creates a fresh-game session.
func New(cfg config.GameConfig, runtime core.RuntimeConfig) *Session {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	if runtime.WorldW <= 0 || runtime.WorldH <= 0 {
		runtime.WorldW = cfg.World.Width
		runtime.WorldH = cfg.World.Height
	}

	s := &Session{
		cfg:      cfg,
		runtime:  runtime,
		rng:      core.NewRNG(runtime.Seed),
		phys:     physics.Params{VelDamping: cfg.Physics.VelDamping, YawDamping: cfg.Physics.YawDamping},
		variants: map[entity.ID]ai.Variant{},
	}
	s.collider = collision.NewEngine(runtime, s.collisionCellSize(), collision.Params{
		KineticScale:  0.02,
		SplitRadius:   cfg.Asteroids.SplitRadius,
		DebrisInherit: cfg.Asteroids.DebrisInherit,
		DebrisSpread:  cfg.Asteroids.DebrisSpread,
	})

	s.spawnPlayer()
	s.spawnSupplyShip()
	s.scheduleAsteroidStorm()
	s.scheduleEnemyStorm()
	return s
}

// collisionCellSize picks a grid cell comfortably larger than any entity
// interaction distance, including mine trigger radii.
func (s *Session) collisionCellSize() float64 {
	size := 2 * s.cfg.Asteroids.MaxRadius
	if t := 2 * weapon.SpecFor(weapon.Mine).Trigger; t > size {
		size = t
	}
	if size < 64 {
		size = 64
	}
	return size
}

// allocID returns a fresh entity ID. IDs are never reused.
func (s *Session) allocID() entity.ID {
	s.nextID++
	return s.nextID
}

// add assigns an ID and takes ownership of an entity.
func (s *Session) add(e *entity.Entity) *entity.Entity {
	if e.ID == entity.None {
		e.ID = s.allocID()
	}
	s.entities = append(s.entities, e)
	return e
}

// find returns the live entity with the given ID, or nil.
func (s *Session) find(id entity.ID) *entity.Entity {
	for _, e := range s.entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// playerEntity returns the player ship, or nil after final destruction.
func (s *Session) playerEntity() *entity.Entity {
	return s.find(s.playerID)
}

// playerHidden reports whether the ship is off-field awaiting respawn.
func (s *Session) playerHidden() bool {
	return s.respawnAt != 0
}

// SetPaused pauses or resumes the simulation. Ticks are no-ops while paused.
func (s *Session) SetPaused(p bool) {
	s.paused = p
}

// Paused reports whether the simulation is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// GameOver reports whether the player is out of lives.
func (s *Session) GameOver() bool {
	return s.gameOver
}

// Tick advances the simulation by one fixed step. Subsystems run in a fixed
// order: physics, collision, weapons, AI, then bookkeeping. Collision
// resolution precedes score updates so entities destroyed this tick score
// exactly once.
func (s *Session) Tick(in core.Input) TickResult {
	if s.paused || s.gameOver {
		return TickResult{Tick: s.tick, GameOver: s.gameOver}
	}
	s.tick++

	s.applyPlayerInput(in)

	// Physics
	for _, e := range s.entities {
		if e.Alive {
			physics.Integrate(e, 1, s.phys)
		}
	}
	s.confinePlayer()
	s.trackOutOfPlay()

	// Collision
	events := s.runCollisions()
	s.applyEvents(events)
	s.checkPlayerShield()

	// Weapons
	fire := s.runWeapons(in)

	// AI and friendly automata
	s.runAI()
	s.moveSupplyShip()

	// Bookkeeping: remove the dead, respawn, storms, level progression.
	s.removeDead()
	s.finishRespawn()
	s.runStorms()
	s.updateLevel()

	return TickResult{
		Tick:     s.tick,
		Fire:     fire,
		Events:   events,
		GameOver: s.gameOver,
	}
}

// applyPlayerInput maps the input frame onto the player ship and handles
// weapon selection and docking commands.
func (s *Session) applyPlayerInput(in core.Input) {
	if in.CycleWeapon && s.player.DockedWith == entity.None {
		s.player.Selected = (s.player.Selected + 1) % len(s.player.Bays)
	}
	if in.SelectBay >= 0 && in.SelectBay < len(s.player.Bays) && s.player.DockedWith == entity.None {
		s.player.Selected = in.SelectBay
	}

	if in.SummonSupply {
		s.summonSupply()
	}
	if in.Dock {
		s.tryDock()
	}
	if in.Undock {
		s.undock()
	}

	p := s.playerEntity()
	if p == nil || !p.Alive || s.playerHidden() {
		return
	}

	if s.player.DockedWith != entity.None {
		// Docking clamps hold the ship in place.
		p.Vel = core.Vec2{}
		p.VelR = 0
		return
	}

	heading := core.Heading(p.Rot)
	side := heading.Rotate(90)
	accel := s.cfg.Player.MaxAccel
	p.Thrust = heading.Scale(in.Thrust * accel).Add(side.Scale(in.Sideways * accel))
	p.YawAccel = in.Yaw * s.cfg.Player.YawAccel
}

// confinePlayer keeps the ship inside the visible field, killing the
// velocity component that pushed it into the border.
func (s *Session) confinePlayer() {
	p := s.playerEntity()
	if p == nil || s.playerHidden() {
		return
	}
	r := p.Radius
	if p.Pos.X < r {
		p.Pos.X = r
		p.Vel.X = 0
	}
	if p.Pos.X > s.runtime.WorldW-r {
		p.Pos.X = s.runtime.WorldW - r
		p.Vel.X = 0
	}
	if p.Pos.Y < r {
		p.Pos.Y = r
		p.Vel.Y = 0
	}
	if p.Pos.Y > s.runtime.WorldH-r {
		p.Pos.Y = s.runtime.WorldH - r
		p.Vel.Y = 0
	}
}

// trackOutOfPlay counts ticks spent beyond the in-play range and softly
// despawns entities whose grace period ran out. Being out of bounds is not
// an error; the supply ship and the player are exempt.
func (s *Session) trackOutOfPlay() {
	half := core.Vec2{X: s.runtime.WorldW / 2, Y: s.runtime.WorldH / 2}
	limitX := s.runtime.WorldW * s.cfg.World.InPlayRange
	limitY := s.runtime.WorldH * s.cfg.World.InPlayRange

	for _, e := range s.entities {
		if !e.Alive || e.Kind == entity.KindShip || e.Kind == entity.KindSupplyShip {
			continue
		}
		off := e.Pos.Sub(half)
		if off.X < -limitX || off.X > limitX || off.Y < -limitY || off.Y > limitY {
			e.OutOfPlayTicks++
			if e.OutOfPlayTicks > s.cfg.World.DespawnGraceTicks {
				e.Kill()
			}
		} else {
			e.OutOfPlayTicks = 0
		}
	}
}

// runCollisions detects and resolves this tick's collisions. Newly split
// debris joins the entity set immediately but, being spawned after
// detection, cannot collide until the next tick.
func (s *Session) runCollisions() []collision.Event {
	collidable := s.entities
	if s.playerHidden() {
		collidable = make([]*entity.Entity, 0, len(s.entities))
		for _, e := range s.entities {
			if e.ID != s.playerID {
				collidable = append(collidable, e)
			}
		}
	}

	pairs := s.collider.Detect(collidable)
	return s.collider.Resolve(pairs, s.rng, func(deb *entity.Entity) {
		s.add(deb)
	})
}

// applyEvents converts collision events into score and AI reactions.
func (s *Session) applyEvents(events []collision.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case collision.EventDamage:
			if ev.SourceFaction == entity.FactionPlayer && ev.Target != s.playerID {
				s.player.Score += int(ev.Amount)
			}
			// Surviving enemies break off when hit.
			if ev.TargetKind == entity.KindEnemy {
				if c := s.controllerFor(ev.Target); c != nil {
					if e := s.find(ev.Target); e != nil && e.Alive {
						c.OnHit(s.tick)
					}
				}
			}
		case collision.EventDestroyed:
			if ev.TargetKind == entity.KindEnemy && ev.SourceFaction == entity.FactionPlayer {
				s.player.Score += ai.SpecFor(s.variants[ev.Target]).Bounty
			}
		}
	}
}

// checkPlayerShield handles shield depletion: lose a life and respawn after
// a hidden delay, or end the game.
func (s *Session) checkPlayerShield() {
	p := s.playerEntity()
	if p == nil || p.Alive || s.playerHidden() {
		return
	}

	s.player.Lives--
	if s.player.Lives <= 0 {
		s.player.Lives = 0
		s.gameOver = true
		return
	}

	// Hide the ship off-field while respawning.
	p.Alive = true
	p.Health = s.cfg.Player.MaxShield
	p.Pos = core.Vec2{X: s.runtime.WorldW / 2, Y: s.runtime.WorldH + 200}
	p.Vel = core.Vec2{}
	p.VelR = 0
	p.Rot = 0
	s.respawnAt = s.tick + uint64(s.cfg.Player.RespawnDelayTicks)
	s.undock()
}

// finishRespawn returns the hidden ship to its start position once the
// respawn delay has elapsed.
func (s *Session) finishRespawn() {
	if !s.playerHidden() || s.tick < s.respawnAt {
		return
	}
	s.respawnAt = 0
	if p := s.playerEntity(); p != nil {
		p.Pos = core.Vec2{X: s.runtime.WorldW / 2, Y: s.runtime.WorldH - p.Radius*2}
		p.Vel = core.Vec2{}
		p.Rot = 0
	}
}

// runWeapons advances every bay's background state, fires the player's
// selected bay on request and steers guided rounds.
func (s *Session) runWeapons(in core.Input) FireOutcome {
	for i := range s.player.Bays {
		s.player.Bays[i].Maintain(s.tick, s.runtime.TickRate)
	}
	for _, c := range s.controllers {
		c.Maintain(s.tick, s.runtime.TickRate)
	}

	var fire FireOutcome
	if in.Fire && !s.playerHidden() && s.player.DockedWith == entity.None {
		fire = s.playerFire()
	}

	// Guided rounds retarget every tick; the steering thrust takes effect
	// at the next physics step.
	for _, e := range s.entities {
		if e.Alive && e.Proj != nil && e.Proj.Homing {
			weapon.SteerHoming(e, s.entities)
		}
	}
	return fire
}

// playerFire fires the selected bay, spawning the round on success.
func (s *Session) playerFire() FireOutcome {
	p := s.playerEntity()
	if p == nil || !p.Alive {
		return FireOutcome{}
	}

	bay := &s.player.Bays[s.player.Selected]
	result := bay.Fire(s.tick, s.runtime.TickRate)
	if result == weapon.Fired {
		s.add(bay.Kind.Spawn(p, s.runtime.TickRate))
	}
	return FireOutcome{Attempted: true, Result: result}
}

// runAI lets every enemy controller steer its ship and fire.
func (s *Session) runAI() {
	var player *entity.Entity
	if !s.playerHidden() {
		player = s.playerEntity()
	}

	for _, c := range s.controllers {
		self := s.find(c.EntityID)
		if self == nil || !self.Alive {
			continue
		}
		wantFire := c.Decide(self, player, s.tick, s.runtime.TickRate, s.rng)
		if !wantFire || !s.cfg.Enemies.Shooting {
			continue
		}
		bay := c.SelectedBay()
		if bay == nil {
			continue
		}
		if bay.Fire(s.tick, s.runtime.TickRate) == weapon.Fired {
			s.add(bay.Kind.Spawn(self, s.runtime.TickRate))
		}
	}
}

// controllerFor returns the controller owning the given enemy entity.
func (s *Session) controllerFor(id entity.ID) *ai.Controller {
	for _, c := range s.controllers {
		if c.EntityID == id {
			return c
		}
	}
	return nil
}

// removeDead drops destroyed entities and their controllers at end of tick,
// so the set is never mutated mid-iteration.
func (s *Session) removeDead() {
	alive := s.entities[:0]
	for _, e := range s.entities {
		if e.Alive {
			alive = append(alive, e)
		}
	}
	// Zero the tail so dropped entities do not linger in the backing array.
	for i := len(alive); i < len(s.entities); i++ {
		s.entities[i] = nil
	}
	s.entities = alive

	keep := s.controllers[:0]
	for _, c := range s.controllers {
		if e := s.find(c.EntityID); e != nil {
			keep = append(keep, c)
		} else {
			delete(s.variants, c.EntityID)
		}
	}
	for i := len(keep); i < len(s.controllers); i++ {
		s.controllers[i] = nil
	}
	s.controllers = keep

	// A destroyed supply ship releases a docked player.
	if s.player.DockedWith != entity.None && s.find(s.player.DockedWith) == nil {
		s.player.DockedWith = entity.None
		s.supplyState = supplyParked
	}
}

// updateLevel walks the level matrix against the current score and adjusts
// the level.
func (s *Session) updateLevel() {
	for _, lv := range s.cfg.Levels {
		if s.player.Score >= lv.Score && lv.Level > s.level {
			s.level = lv.Level
		}
	}
}

// Level returns the current game level.
func (s *Session) Level() int {
	return s.level
}

// TickCount returns the elapsed simulation ticks.
func (s *Session) TickCount() uint64 {
	return s.tick
}

// Player returns a copy of the player's non-entity state.
func (s *Session) Player() PlayerState {
	p := s.player
	p.Bays = append([]weapon.Bay(nil), s.player.Bays...)
	return p
}

// View returns a deep copy of the live entity set, safe to hand to the
// presentation layer between ticks.
func (s *Session) View() []entity.Entity {
	view := make([]entity.Entity, 0, len(s.entities))
	for _, e := range s.entities {
		if !e.Alive {
			continue
		}
		c := e.Clone()
		view = append(view, *c)
	}
	return view
}
