package session

import (
	"github.com/semissileman/spacehunter/internal/ai"
	"github.com/semissileman/spacehunter/internal/core"
	"github.com/semissileman/spacehunter/internal/entity"
	"github.com/semissileman/spacehunter/internal/weapon"
)

// spawnPlayer creates the player ship at the bottom center of the field with
// the starting loadout: an empty slot selected and one loaded laser.
func (s *Session) spawnPlayer() {
	pc := s.cfg.Player
	e := s.add(&entity.Entity{
		Kind:      entity.KindShip,
		Faction:   entity.FactionPlayer,
		Pos:       core.Vec2{X: s.runtime.WorldW / 2, Y: s.runtime.WorldH - pc.Radius*2},
		MaxSpeed:  pc.MaxSpeed,
		MaxYaw:    pc.MaxYaw,
		Mass:      pc.Mass,
		Radius:    pc.Radius,
		Health:    pc.MaxShield,
		MaxHealth: pc.MaxShield,
		Alive:     true,
	})
	s.playerID = e.ID

	bays := make([]weapon.Bay, weapon.MaxBays)
	for i := range bays {
		bays[i] = weapon.NewBay(i, weapon.Empty)
	}
	bays[1] = weapon.NewBay(1, weapon.Laser)
	s.player = PlayerState{
		Lives:    pc.Lives,
		Bays:     bays,
		Selected: 0,
	}
}

// spawnSupplyShip parks the supply ship on the off-field ring.
func (s *Session) spawnSupplyShip() {
	pos := s.parkingSpot()
	e := s.add(&entity.Entity{
		Kind:      entity.KindSupplyShip,
		Faction:   entity.FactionPlayer,
		Pos:       pos,
		MaxSpeed:  s.cfg.Docking.SupplySpeed,
		Mass:      500,
		Radius:    30,
		Health:    500,
		MaxHealth: 500,
		Alive:     true,
	})
	s.supplyID = e.ID
	s.supplyState = supplyParked
	s.supplyTarget = pos
}

// parkingSpot picks a random point on a ring well outside the visible field.
func (s *Session) parkingSpot() core.Vec2 {
	center := core.Vec2{X: s.runtime.WorldW / 2, Y: s.runtime.WorldH / 2}
	dist := s.runtime.WorldW + 500
	return center.Add(core.FromPolar(dist, s.rng.Range(0, 360)))
}

// scheduleAsteroidStorm picks the tick of the next asteroid storm.
func (s *Session) scheduleAsteroidStorm() {
	ac := s.cfg.Asteroids
	s.nextAsteroidStorm = s.tick + uint64(s.rng.IntRange(ac.StormMinTicks, ac.StormMaxTicks))
}

// scheduleEnemyStorm picks the tick of the next enemy storm.
func (s *Session) scheduleEnemyStorm() {
	ec := s.cfg.Enemies
	s.nextEnemyStorm = s.tick + uint64(s.rng.IntRange(ec.StormMinTicks, ec.StormMaxTicks))
}

// runStorms spawns due asteroid and enemy storms and reschedules them.
func (s *Session) runStorms() {
	if s.cfg.Asteroids.Enabled && s.tick >= s.nextAsteroidStorm {
		for i := 0; i < s.cfg.Asteroids.StormSize; i++ {
			s.spawnAsteroid()
		}
		s.scheduleAsteroidStorm()
	}
	if s.cfg.Enemies.Enabled && s.tick >= s.nextEnemyStorm {
		for i := 0; i < s.swarmSize(); i++ {
			s.spawnEnemy(s.randomVariant())
		}
		s.scheduleEnemyStorm()
	}
}

// swarmSize returns the enemy storm size for the current level.
func (s *Session) swarmSize() int {
	size := 1
	for _, lv := range s.cfg.Levels {
		if lv.Level == s.level {
			size = lv.EnemySwarm
		}
	}
	return size
}

// spawnAsteroid drops one asteroid above the field drifting downward. Its
// health and contact rating scale with size and speed, so a large fast rock
// is as dangerous as it looks.
func (s *Session) spawnAsteroid() {
	ac := s.cfg.Asteroids
	radius := s.rng.Range(ac.MinRadius, ac.MaxRadius)
	pos := core.Vec2{
		X: s.rng.Range(0, s.runtime.WorldW),
		Y: -s.rng.Range(radius, s.runtime.WorldH/2),
	}
	vel := core.Vec2{
		X: s.rng.Range(-ac.MaxSpeed/4, ac.MaxSpeed/4),
		Y: s.rng.Range(ac.MaxSpeed/4, ac.MaxSpeed),
	}
	s.add(&entity.Entity{
		Kind:          entity.KindAsteroid,
		Faction:       entity.FactionNeutral,
		Pos:           pos,
		Vel:           vel,
		VelR:          s.rng.Range(-2, 2),
		Mass:          radius * radius,
		Radius:        radius,
		Health:        radius,
		MaxHealth:     radius,
		ContactDamage: entity.KineticRating(radius, vel),
		Alive:         true,
	})
}

// spawnEnemy places one enemy of the given variant on the off-field ring and
// registers its controller.
func (s *Session) spawnEnemy(v ai.Variant) {
	spec := ai.SpecFor(v)
	e := s.add(&entity.Entity{
		Kind:      entity.KindEnemy,
		Faction:   entity.FactionHostile,
		Pos:       s.parkingSpot(),
		MaxSpeed:  spec.MaxSpeed,
		MaxYaw:    spec.MaxYaw,
		Mass:      spec.Radius * spec.Radius,
		Radius:    spec.Radius,
		Health:    spec.Health,
		MaxHealth: spec.Health,
		Alive:     true,
	})
	s.controllers = append(s.controllers, ai.NewController(e.ID, spec.Params, spec.Loadout))
	s.variants[e.ID] = v
}

// randomVariant picks an enemy variant, weighted toward the lighter classes.
func (s *Session) randomVariant() ai.Variant {
	switch s.rng.Intn(10) {
	case 0, 1, 2, 3:
		return ai.VariantScout
	case 4, 5, 6, 7:
		return ai.VariantFighter
	default:
		return ai.VariantBrawler
	}
}

// summonSupply sends the supply ship toward the player.
func (s *Session) summonSupply() {
	if s.player.DockedWith != entity.None {
		return
	}
	s.supplyState = supplyEnRoute
}

// tryDock docks the player with the supply ship when it is close enough and
// the selected bay is empty. A hot selected weapon blocks docking.
func (s *Session) tryDock() {
	if s.player.DockedWith != entity.None || s.playerHidden() {
		return
	}
	if s.player.WeaponsHot() {
		return
	}
	p := s.playerEntity()
	sup := s.find(s.supplyID)
	if p == nil || sup == nil {
		return
	}
	if p.Pos.Distance(sup.Pos) > s.cfg.Docking.Proximity {
		return
	}
	s.player.DockedWith = s.supplyID
	s.supplyState = supplyParked
	sup.Vel = core.Vec2{}
}

// undock releases the player and sends the supply ship back to parking.
func (s *Session) undock() {
	if s.player.DockedWith == entity.None {
		return
	}
	s.player.DockedWith = entity.None
	s.supplyState = supplyParking
	s.supplyTarget = s.parkingSpot()
}

// moveSupplyShip drives the supply ship toward its current goal at cruise
// speed: the player when summoned, the parking spot after undocking.
func (s *Session) moveSupplyShip() {
	sup := s.find(s.supplyID)
	if sup == nil {
		return
	}

	var goal core.Vec2
	switch s.supplyState {
	case supplyEnRoute:
		p := s.playerEntity()
		if p == nil || s.playerHidden() {
			sup.Vel = core.Vec2{}
			return
		}
		goal = p.Pos
	case supplyParking:
		goal = s.supplyTarget
	default:
		sup.Vel = core.Vec2{}
		return
	}

	to := goal.Sub(sup.Pos)
	stop := s.cfg.Docking.Proximity / 2
	if to.Length() <= stop {
		sup.Vel = core.Vec2{}
		if s.supplyState == supplyParking {
			s.supplyState = supplyParked
		}
		return
	}
	sup.Vel = to.Normalize().Scale(s.cfg.Docking.SupplySpeed)
}

// BuyWeapon installs a weapon into the given bay while docked. The weapon
// arrives unloaded; ammunition is bought separately.
func (s *Session) BuyWeapon(slot int, kind weapon.Kind) error {
	if s.player.DockedWith == entity.None {
		return ErrNotDocked
	}
	remaining, err := weapon.PurchaseWeapon(s.player.Bays, slot, kind, s.player.Score)
	if err != nil {
		return err
	}
	s.player.Score = remaining
	return nil
}

// BuyAmmo loads rounds into the given bay while docked, spending score. It
// returns the number of rounds actually loaded, which may be fewer than
// requested when the magazine or the budget runs short.
func (s *Session) BuyAmmo(slot, rounds int) (int, error) {
	if s.player.DockedWith == entity.None {
		return 0, ErrNotDocked
	}
	remaining, loaded, err := weapon.PurchaseAmmo(s.player.Bays, slot, rounds, s.player.Score)
	if err != nil {
		return 0, err
	}
	s.player.Score = remaining
	return loaded, nil
}
