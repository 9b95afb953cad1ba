package weapon

import (
	"errors"
	"testing"

	"github.com/semissileman/spacehunter/internal/core"
	"github.com/semissileman/spacehunter/internal/entity"
)

const tickRate = 60

func TestEmptyBayCannotFire(t *testing.T) {
	b := NewBay(0, Empty)
	if got := b.Fire(1, tickRate); got != RejectedEmptySlot {
		t.Errorf("empty slot fire: got %v", got)
	}
}

func TestFireConsumesAmmoAndHeats(t *testing.T) {
	b := NewBay(0, Laser)
	startAmmo := b.Ammo

	if got := b.Fire(10, tickRate); got != Fired {
		t.Fatalf("fire rejected: %v", got)
	}
	if b.Ammo != startAmmo-1 {
		t.Errorf("ammo after firing: %d, want %d", b.Ammo, startAmmo-1)
	}
	if b.Heat != 1 {
		t.Errorf("heat after firing: %d, want 1", b.Heat)
	}
	if b.State != BayFiring {
		t.Errorf("state after firing: %v", b.State)
	}
}

func TestRateOfFireSpacing(t *testing.T) {
	b := NewBay(0, Laser) // 600 rpm at 60 tps = every 6 ticks

	if got := b.Fire(100, tickRate); got != Fired {
		t.Fatalf("first shot rejected: %v", got)
	}
	if got := b.Fire(102, tickRate); got != RejectedRate {
		t.Errorf("shot inside interval: got %v, want RejectedRate", got)
	}
	if got := b.Fire(106, tickRate); got != Fired {
		t.Errorf("shot after interval rejected: %v", got)
	}
}

func TestAmmoNeverGoesBelowZero(t *testing.T) {
	b := NewBay(0, Mine) // Capacity 5, single shot
	tick := uint64(1)
	fired := 0
	for i := 0; i < 20; i++ {
		if b.Fire(tick, tickRate) == Fired {
			fired++
		}
		tick += uint64(tickRate) // Respect the single-shot interval
	}

	if fired != 5 {
		t.Errorf("fired %d mines from a 5-round magazine", fired)
	}
	if b.Ammo != 0 {
		t.Errorf("ammo after emptying: %d", b.Ammo)
	}
	if got := b.Fire(tick, tickRate); got != RejectedNoAmmo {
		t.Errorf("fire with empty magazine: got %v", got)
	}
}

func TestOverheatLockoutAndRecovery(t *testing.T) {
	b := NewBay(0, Laser)
	spec := SpecFor(Laser)
	interval := uint64(60*tickRate) / uint64(spec.Rate)

	// Fire continuously until heat reaches the limit.
	tick := uint64(1)
	for b.State != BayCooldown {
		if got := b.Fire(tick, tickRate); got != Fired {
			t.Fatalf("fire rejected before overheat at heat %d: %v", b.Heat, got)
		}
		tick += interval
	}
	if b.Heat < spec.MaxHeat {
		t.Fatalf("cooldown entered below max heat: %d < %d", b.Heat, spec.MaxHeat)
	}

	// Locked out while hot.
	if got := b.Fire(tick, tickRate); got != RejectedOverheated {
		t.Errorf("fire while overheated: got %v", got)
	}

	// Run maintenance until the bay unlocks; must happen strictly below
	// the reset threshold, so an overheated weapon stays down for a while.
	for i := 0; i < 100*tickRate && b.State == BayCooldown; i++ {
		tick++
		b.Maintain(tick, tickRate)
		if b.State == BayIdle && b.Heat >= spec.MaxHeat/2 {
			t.Fatalf("unlocked at heat %d, reset threshold is %d", b.Heat, spec.MaxHeat/2)
		}
	}
	if b.State == BayCooldown {
		t.Fatal("bay never recovered from overheat")
	}
	if got := b.Fire(tick+uint64(tickRate), tickRate); got != Fired {
		t.Errorf("fire after recovery: got %v", got)
	}
}

func TestAutoReplenish(t *testing.T) {
	b := NewBay(0, Laser)
	b.Ammo = 0

	// One replenish interval restores spec.Replenish rounds.
	var tick uint64
	for tick = 1; tick <= uint64(replenishIntervalSec*tickRate); tick++ {
		b.Maintain(tick, tickRate)
	}
	if b.Ammo != SpecFor(Laser).Replenish {
		t.Errorf("ammo after one replenish interval: %d, want %d", b.Ammo, SpecFor(Laser).Replenish)
	}

	// Replenishment clamps at capacity.
	b.Ammo = SpecFor(Laser).Capacity
	for i := 0; i < replenishIntervalSec*tickRate+1; i++ {
		tick++
		b.Maintain(tick, tickRate)
	}
	if b.Ammo > SpecFor(Laser).Capacity {
		t.Errorf("replenish exceeded capacity: %d", b.Ammo)
	}
}

func TestGatlingDoesNotReplenish(t *testing.T) {
	b := NewBay(0, Gatling)
	b.Ammo = 0
	for tick := uint64(1); tick < uint64(20*tickRate); tick++ {
		b.Maintain(tick, tickRate)
	}
	if b.Ammo != 0 {
		t.Errorf("gatling replenished %d rounds", b.Ammo)
	}
}

func TestHeatDecay(t *testing.T) {
	b := NewBay(0, Laser)
	b.Heat = 25

	for tick := uint64(1); tick <= uint64(coolIntervalSec*tickRate); tick++ {
		b.Maintain(tick, tickRate)
	}
	if b.Heat != 25-coolRate {
		t.Errorf("heat after one cool interval: %d, want %d", b.Heat, 25-coolRate)
	}

	// Heat never goes negative.
	b.Heat = 3
	for tick := uint64(1000); tick < uint64(1000+10*coolIntervalSec*tickRate); tick++ {
		b.Maintain(tick, tickRate)
	}
	if b.Heat < 0 {
		t.Errorf("negative heat: %d", b.Heat)
	}
}

func TestSpawnBallistic(t *testing.T) {
	owner := &entity.Entity{
		ID: 7, Faction: entity.FactionPlayer,
		Pos: core.Vec2{X: 100, Y: 100}, Rot: 0, Alive: true,
	}
	p := Laser.Spawn(owner, tickRate)

	if p.Kind != entity.KindProjectile {
		t.Errorf("kind: %v", p.Kind)
	}
	if p.Proj.SourceID != 7 {
		t.Errorf("source: %v", p.Proj.SourceID)
	}
	if p.Proj.Damage != 10 {
		t.Errorf("damage: %v", p.Proj.Damage)
	}
	// Rotation 0 fires straight up.
	if p.Vel.Y >= 0 || p.Vel.X != 0 {
		t.Errorf("muzzle velocity: %v", p.Vel)
	}
	if p.Vel.Length() != SpecFor(Laser).MuzzleSpeed {
		t.Errorf("muzzle speed: %v", p.Vel.Length())
	}
}

func TestSpawnMineInheritsVelocity(t *testing.T) {
	owner := &entity.Entity{
		ID: 7, Faction: entity.FactionPlayer,
		Vel: core.Vec2{X: 2, Y: -1}, Alive: true,
	}
	m := Mine.Spawn(owner, tickRate)

	if m.Kind != entity.KindMine {
		t.Errorf("kind: %v", m.Kind)
	}
	if m.Vel != owner.Vel {
		t.Errorf("mine velocity %v, want layer velocity %v", m.Vel, owner.Vel)
	}
	if m.Proj.TriggerRadius != SpecFor(Mine).Trigger {
		t.Errorf("trigger radius: %v", m.Proj.TriggerRadius)
	}
}

func TestHomingSteersTowardNearestHostile(t *testing.T) {
	owner := &entity.Entity{ID: 1, Faction: entity.FactionPlayer, Alive: true}
	p := Sidewinder.Spawn(owner, tickRate)
	p.ID = 2
	p.Proj.AcquireDelay = 0 // Skip the acquisition delay for the test

	near := &entity.Entity{
		ID: 3, Kind: entity.KindEnemy, Faction: entity.FactionHostile,
		Pos: core.Vec2{X: 50, Y: 0}, Alive: true,
	}
	far := &entity.Entity{
		ID: 4, Kind: entity.KindEnemy, Faction: entity.FactionHostile,
		Pos: core.Vec2{X: 500, Y: 0}, Alive: true,
	}

	SteerHoming(p, []*entity.Entity{far, near})

	if p.Proj.TargetID != 3 {
		t.Errorf("locked target %v, want nearest (3)", p.Proj.TargetID)
	}
	if p.Thrust.X <= 0 {
		t.Errorf("thrust does not point toward target: %v", p.Thrust)
	}
	if p.Thrust.Length() > p.Proj.TurnForce+1e-9 {
		t.Errorf("steering force exceeds turn limit: %v", p.Thrust.Length())
	}
}

func TestHomingRespectsAcquireDelay(t *testing.T) {
	owner := &entity.Entity{ID: 1, Faction: entity.FactionPlayer, Alive: true}
	p := Sidewinder.Spawn(owner, tickRate)
	target := &entity.Entity{
		ID: 3, Kind: entity.KindEnemy, Faction: entity.FactionHostile,
		Pos: core.Vec2{X: 50, Y: 0}, Alive: true,
	}

	SteerHoming(p, []*entity.Entity{target})
	if p.Proj.TargetID != entity.None || p.Thrust != (core.Vec2{}) {
		t.Error("round acquired a target before the delay elapsed")
	}

	for i := 0; i < p.Proj.AcquireDelay+1; i++ {
		SteerHoming(p, []*entity.Entity{target})
	}
	if p.Proj.TargetID != 3 {
		t.Error("round never acquired its target after the delay")
	}
}

func TestPurchaseWeapon(t *testing.T) {
	bays := make([]Bay, 2)
	for i := range bays {
		bays[i] = NewBay(i, Empty)
	}

	remaining, err := PurchaseWeapon(bays, 1, Laser, 5000)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if remaining != 5000-SpecFor(Laser).Cost {
		t.Errorf("remaining score: %d", remaining)
	}
	if bays[1].Kind != Laser || bays[1].Ammo != 0 {
		t.Errorf("bay after purchase: %+v (weapons arrive unloaded)", bays[1])
	}
}

func TestPurchaseWeaponInsufficientFunds(t *testing.T) {
	bays := []Bay{NewBay(0, Empty)}
	_, err := PurchaseWeapon(bays, 0, Mine, 100)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	if bays[0].Kind != Empty {
		t.Error("failed purchase modified the bay")
	}
}

func TestPurchaseWeaponBadSlot(t *testing.T) {
	bays := []Bay{NewBay(0, Empty)}
	if _, err := PurchaseWeapon(bays, 5, Laser, 99999); !errors.Is(err, ErrBadSlot) {
		t.Errorf("expected ErrBadSlot, got %v", err)
	}
}

func TestPurchaseAmmo(t *testing.T) {
	bays := []Bay{{Slot: 0, Kind: Laser, Ammo: 90}}

	// Only 10 rounds of space; charged for what fits.
	remaining, loaded, err := PurchaseAmmo(bays, 0, 50, 10000)
	if err != nil {
		t.Fatalf("ammo purchase failed: %v", err)
	}
	if loaded != 10 {
		t.Errorf("loaded %d rounds, want 10", loaded)
	}
	if remaining != 10000-10*SpecFor(Laser).AmmoCost {
		t.Errorf("remaining score: %d", remaining)
	}
	if bays[0].Ammo != SpecFor(Laser).Capacity {
		t.Errorf("ammo: %d", bays[0].Ammo)
	}

	// Full bay: a further purchase is a free no-op.
	before := remaining
	remaining, loaded, err = PurchaseAmmo(bays, 0, 50, remaining)
	if err != nil || loaded != 0 || remaining != before {
		t.Errorf("full-bay purchase: loaded=%d remaining=%d err=%v", loaded, remaining, err)
	}
}

func TestPurchaseAmmoPartialBudget(t *testing.T) {
	bays := []Bay{{Slot: 0, Kind: Laser, Ammo: 0}}

	// 100 points buys 3 laser rounds at 30 each.
	remaining, loaded, err := PurchaseAmmo(bays, 0, 50, 100)
	if err != nil {
		t.Fatalf("partial purchase failed: %v", err)
	}
	if loaded != 3 || remaining != 10 {
		t.Errorf("loaded=%d remaining=%d, want 3 and 10", loaded, remaining)
	}
}

func TestKindByNameRoundTrip(t *testing.T) {
	for _, k := range Tradeable() {
		if got := KindByName(k.String()); got != k {
			t.Errorf("KindByName(%q) = %v", k.String(), got)
		}
	}
	if KindByName("Phaser") != Empty {
		t.Error("unknown names must map to Empty")
	}
}
