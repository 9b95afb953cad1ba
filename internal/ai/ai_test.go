package ai

import (
	"testing"

	"github.com/semissileman/spacehunter/internal/core"
	"github.com/semissileman/spacehunter/internal/entity"
	"github.com/semissileman/spacehunter/internal/weapon"
)

const tickRate = 60

func fighterController(id entity.ID) *Controller {
	spec := SpecFor(VariantFighter)
	return NewController(id, spec.Params, spec.Loadout)
}

func fighterEntity(id entity.ID, x, y float64) *entity.Entity {
	spec := SpecFor(VariantFighter)
	return &entity.Entity{
		ID: id, Kind: entity.KindEnemy, Faction: entity.FactionHostile,
		Pos: core.Vec2{X: x, Y: y}, MaxSpeed: spec.MaxSpeed, MaxYaw: spec.MaxYaw,
		Radius: spec.Radius, Health: spec.Health, MaxHealth: spec.Health, Alive: true,
	}
}

func playerEntity(x, y float64) *entity.Entity {
	return &entity.Entity{
		ID: 1, Kind: entity.KindShip, Faction: entity.FactionPlayer,
		Pos: core.Vec2{X: x, Y: y}, Health: 100, MaxHealth: 100, Alive: true,
	}
}

func TestPatrolToTrackOnRadarContact(t *testing.T) {
	c := fighterController(2)
	self := fighterEntity(2, 0, 0)
	rng := core.NewRNG(1)

	// Player far beyond radar range: stays on patrol.
	far := playerEntity(5000, 0)
	c.Decide(self, far, 1, tickRate, rng)
	if c.State != StatePatrol {
		t.Fatalf("state with distant player: %v", c.State)
	}

	// Player inside radar range: starts tracking.
	near := playerEntity(250, 0)
	c.Decide(self, near, 2, tickRate, rng)
	if c.State != StateTrack {
		t.Fatalf("state with player on radar: %v", c.State)
	}
}

func TestTrackToAttackInWeaponRange(t *testing.T) {
	c := fighterController(2)
	c.State = StateTrack
	self := fighterEntity(2, 0, 0)
	player := playerEntity(100, 0) // Inside effective attack range

	c.Decide(self, player, 1, tickRate, core.NewRNG(1))
	if c.State != StateAttack {
		t.Fatalf("state in weapon range: %v", c.State)
	}
}

func TestTrackingSteersTowardPlayer(t *testing.T) {
	c := fighterController(2)
	c.State = StateTrack
	self := fighterEntity(2, 0, 0)
	player := playerEntity(260, 0)

	c.Decide(self, player, 1, tickRate, core.NewRNG(1))
	if self.Thrust.X <= 0 {
		t.Errorf("tracking thrust does not point at player: %v", self.Thrust)
	}
}

func TestOnHitEntersRetreatAndRecovers(t *testing.T) {
	c := fighterController(2)
	c.State = StateAttack
	self := fighterEntity(2, 0, 0)
	player := playerEntity(100, 0)

	c.OnHit(100)
	if c.State != StateRetreat {
		t.Fatalf("state after hit: %v", c.State)
	}

	// While retreating, thrust points away from the player.
	c.Decide(self, player, 101, tickRate, core.NewRNG(1))
	if c.State != StateRetreat {
		t.Fatalf("retreat ended immediately: %v", c.State)
	}
	if self.Thrust.X >= 0 {
		t.Errorf("retreat thrust does not point away: %v", self.Thrust)
	}

	// After the retreat duration, re-evaluates and re-engages: the player
	// is still in weapon range, so straight back to attack.
	after := c.RetreatUntil
	c.Decide(self, player, after, tickRate, core.NewRNG(1))
	if c.State != StateAttack {
		t.Errorf("state after retreat near player: %v", c.State)
	}
}

func TestRetreatReentersTrackWhenPlayerFar(t *testing.T) {
	c := fighterController(2)
	self := fighterEntity(2, 0, 0)
	c.OnHit(100)

	player := playerEntity(280, 0) // On radar, outside weapon range
	c.Decide(self, player, c.RetreatUntil, tickRate, core.NewRNG(1))
	if c.State != StateTrack {
		t.Errorf("state after retreat with distant player: %v", c.State)
	}
}

func TestAggressionShortensRetreat(t *testing.T) {
	timid := Params{Aggression: 0.1}
	fierce := Params{Aggression: 0.9}
	if fierce.RetreatDuration() >= timid.RetreatDuration() {
		t.Errorf("aggressive retreat %d not shorter than timid %d",
			fierce.RetreatDuration(), timid.RetreatDuration())
	}
}

func TestAggressionExtendsAttackRange(t *testing.T) {
	timid := Params{Aggression: 0.1, AttackRange: 150}
	fierce := Params{Aggression: 0.9, AttackRange: 150}
	if fierce.EffectiveAttackRange() <= timid.EffectiveAttackRange() {
		t.Error("aggression should extend the attack envelope")
	}
}

func TestAttackFiresInBursts(t *testing.T) {
	c := fighterController(2)
	c.State = StateAttack
	self := fighterEntity(2, 0, 0)
	player := playerEntity(100, 0)
	rng := core.NewRNG(7)

	fires := 0
	transitions := 0
	wasFiring := false
	for tick := uint64(1); tick < uint64(20*tickRate); tick++ {
		want := c.Decide(self, player, tick, tickRate, rng)
		if want {
			fires++
		}
		if want != wasFiring {
			transitions++
			wasFiring = want
		}
	}

	if fires == 0 {
		t.Fatal("enemy never fired while attacking")
	}
	// Burst fire alternates between shooting and resting.
	if transitions < 4 {
		t.Errorf("expected multiple burst cycles, saw %d transitions", transitions)
	}
	if fires >= 20*tickRate/2 {
		t.Errorf("enemy fired on %d of %d ticks; bursts should be sparse", fires, 20*tickRate)
	}
}

func TestAttackFacesPlayer(t *testing.T) {
	c := fighterController(2)
	c.State = StateAttack
	self := fighterEntity(2, 0, 0)
	player := playerEntity(100, 0) // Due east

	c.Decide(self, player, 1, tickRate, core.NewRNG(1))

	// Heading(rot) should point toward +X.
	h := core.Heading(self.Rot)
	if h.X < 0.99 {
		t.Errorf("enemy not facing player: rot=%v heading=%v", self.Rot, h)
	}
}

func TestDeadPlayerResetsToPatrol(t *testing.T) {
	c := fighterController(2)
	c.State = StateAttack
	c.Shooting = true
	self := fighterEntity(2, 0, 0)
	dead := playerEntity(100, 0)
	dead.Kill()

	want := c.Decide(self, dead, 1, tickRate, core.NewRNG(1))
	if want {
		t.Error("fired at a dead player")
	}
	if c.State != StatePatrol {
		t.Errorf("state with dead player: %v", c.State)
	}
}

func TestControllerLoadout(t *testing.T) {
	c := fighterController(2)
	if len(c.Bays) != 2 {
		t.Fatalf("fighter loadout: %d bays", len(c.Bays))
	}
	if c.Bays[0].Kind != weapon.Laser || c.Bays[1].Kind != weapon.Gatling {
		t.Errorf("fighter weapons: %v, %v", c.Bays[0].Kind, c.Bays[1].Kind)
	}
	if c.Bays[0].Ammo != weapon.SpecFor(weapon.Laser).Capacity {
		t.Error("enemy bays should start fully loaded")
	}
}

func TestVariantByNameRoundTrip(t *testing.T) {
	for v := VariantScout; v <= VariantBrawler; v++ {
		if got := VariantByName(v.String()); got != v {
			t.Errorf("VariantByName(%q) = %v", v.String(), got)
		}
	}
}
