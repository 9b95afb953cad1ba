package collision

import (
	"testing"

	"github.com/semissileman/spacehunter/internal/core"
	"github.com/semissileman/spacehunter/internal/entity"
)

func testEngine() *Engine {
	runtime := core.RuntimeConfig{WorldW: 800, WorldH: 600, TickRate: 60, Seed: 1}
	return NewEngine(runtime, 100, DefaultParams())
}

func ship(id entity.ID, x, y float64) *entity.Entity {
	return &entity.Entity{
		ID: id, Kind: entity.KindShip, Faction: entity.FactionPlayer,
		Pos: core.Vec2{X: x, Y: y}, Radius: 20, Mass: 100,
		Health: 100, MaxHealth: 100, Alive: true,
	}
}

func enemy(id entity.ID, x, y float64) *entity.Entity {
	return &entity.Entity{
		ID: id, Kind: entity.KindEnemy, Faction: entity.FactionHostile,
		Pos: core.Vec2{X: x, Y: y}, Radius: 20, Mass: 100,
		Health: 100, MaxHealth: 100, Alive: true,
	}
}

func asteroid(id entity.ID, x, y, radius float64, vel core.Vec2) *entity.Entity {
	return &entity.Entity{
		ID: id, Kind: entity.KindAsteroid, Faction: entity.FactionNeutral,
		Pos: core.Vec2{X: x, Y: y}, Vel: vel, Radius: radius, Mass: radius * radius,
		Health: radius, MaxHealth: radius,
		ContactDamage: entity.KineticRating(radius, vel), Alive: true,
	}
}

func projectile(id, source entity.ID, faction entity.Faction, x, y, damage float64) *entity.Entity {
	return &entity.Entity{
		ID: id, Kind: entity.KindProjectile, Faction: faction,
		Pos: core.Vec2{X: x, Y: y}, Radius: 3, Mass: 1,
		Health: 1, MaxHealth: 1, Alive: true,
		Proj: &entity.Projectile{SourceID: source, Damage: damage},
	}
}

func TestDetectOverlappingPair(t *testing.T) {
	ng := testEngine()
	a := ship(1, 100, 100)
	b := enemy(2, 110, 100) // Radii 20+20, distance 10: overlap
	c := enemy(3, 500, 500) // Far away

	pairs := ng.Detect([]*entity.Entity{a, b, c})
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].A.ID != 1 || pairs[0].B.ID != 2 {
		t.Errorf("wrong pair: %v-%v", pairs[0].A.ID, pairs[0].B.ID)
	}
}

func TestDetectSkipsDeadEntities(t *testing.T) {
	ng := testEngine()
	a := ship(1, 100, 100)
	b := enemy(2, 110, 100)
	b.Kill()

	if pairs := ng.Detect([]*entity.Entity{a, b}); len(pairs) != 0 {
		t.Errorf("dead entity produced pairs: %d", len(pairs))
	}
}

func TestProjectileNeverHitsSource(t *testing.T) {
	ng := testEngine()
	src := ship(1, 100, 100)
	p := projectile(2, 1, entity.FactionPlayer, 100, 100, 10)

	if pairs := ng.Detect([]*entity.Entity{src, p}); len(pairs) != 0 {
		t.Errorf("projectile collided with its source: %d pairs", len(pairs))
	}
}

func TestNoFriendlyFire(t *testing.T) {
	ng := testEngine()
	e1 := enemy(1, 100, 100)
	p := projectile(2, 3, entity.FactionHostile, 100, 100, 10) // Fired by another enemy

	if pairs := ng.Detect([]*entity.Entity{e1, p}); len(pairs) != 0 {
		t.Errorf("friendly fire detected: %d pairs", len(pairs))
	}
}

func TestProjectilesPassThroughEachOther(t *testing.T) {
	ng := testEngine()
	p1 := projectile(1, 10, entity.FactionPlayer, 100, 100, 10)
	p2 := projectile(2, 11, entity.FactionHostile, 100, 100, 10)

	if pairs := ng.Detect([]*entity.Entity{p1, p2}); len(pairs) != 0 {
		t.Errorf("rounds collided with each other: %d pairs", len(pairs))
	}
}

func TestSupplyShipDoesNotCrushPlayer(t *testing.T) {
	ng := testEngine()
	player := ship(1, 100, 100)
	supply := &entity.Entity{
		ID: 2, Kind: entity.KindSupplyShip, Faction: entity.FactionPlayer,
		Pos: core.Vec2{X: 105, Y: 100}, Radius: 30, Mass: 500,
		Health: 1000, MaxHealth: 1000, Alive: true,
	}

	if pairs := ng.Detect([]*entity.Entity{player, supply}); len(pairs) != 0 {
		t.Errorf("supply ship collided with player: %d pairs", len(pairs))
	}
}

func TestResolveProjectileHit(t *testing.T) {
	ng := testEngine()
	target := enemy(1, 100, 100)
	p := projectile(2, 10, entity.FactionPlayer, 100, 100, 10)

	pairs := ng.Detect([]*entity.Entity{target, p})
	events := ng.Resolve(pairs, core.NewRNG(1), func(*entity.Entity) {
		t.Fatal("nothing should spawn from a simple hit")
	})

	if target.Health != 90 {
		t.Errorf("enemy health after laser hit: %v, want 90", target.Health)
	}
	if target.Health <= 0 || !target.Alive {
		t.Error("enemy should survive a single laser hit")
	}
	if p.Alive {
		t.Error("round must be spent on impact")
	}

	foundDamage := false
	for _, ev := range events {
		if ev.Kind == EventDamage && ev.Target == 1 && ev.Amount == 10 {
			foundDamage = true
		}
	}
	if !foundDamage {
		t.Error("missing damage event for the hit")
	}
}

func TestDestroyedEntitySkipsFurtherCollisions(t *testing.T) {
	ng := testEngine()
	target := enemy(1, 100, 100)
	target.Health = 5
	p1 := projectile(2, 10, entity.FactionPlayer, 100, 100, 10)
	p2 := projectile(3, 10, entity.FactionPlayer, 102, 100, 10)

	pairs := ng.Detect([]*entity.Entity{target, p1, p2})
	if len(pairs) != 2 {
		t.Fatalf("expected both rounds overlapping, got %d pairs", len(pairs))
	}

	events := ng.Resolve(pairs, core.NewRNG(1), func(*entity.Entity) {})

	destroyed := 0
	for _, ev := range events {
		if ev.Kind == EventDestroyed && ev.Target == 1 {
			destroyed++
		}
	}
	if destroyed != 1 {
		t.Errorf("entity destroyed %d times, want exactly once", destroyed)
	}
	// The second round survives: its target was already gone.
	if !p2.Alive && !p1.Alive {
		t.Error("both rounds spent on a single kill")
	}
}

func TestAsteroidSplitDeterministic(t *testing.T) {
	run := func() []core.Vec2 {
		ng := testEngine()
		ast := asteroid(1, 100, 100, 30, core.Vec2{X: 2, Y: 1})
		p := projectile(2, 10, entity.FactionPlayer, 100, 100, 100)

		var debris []core.Vec2
		pairs := ng.Detect([]*entity.Entity{ast, p})
		ng.Resolve(pairs, core.NewRNG(42), func(e *entity.Entity) {
			debris = append(debris, e.Vel)
		})
		return debris
	}

	first := run()
	second := run()

	if len(first) < 2 || len(first) > 3 {
		t.Fatalf("split produced %d fragments, want 2-3", len(first))
	}
	if len(first) != len(second) {
		t.Fatalf("split count differs between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("fragment %d velocity differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestSmallAsteroidDoesNotSplit(t *testing.T) {
	ng := testEngine()
	ast := asteroid(1, 100, 100, 8, core.Vec2{}) // Below SplitRadius
	p := projectile(2, 10, entity.FactionPlayer, 100, 100, 100)

	spawned := 0
	pairs := ng.Detect([]*entity.Entity{ast, p})
	ng.Resolve(pairs, core.NewRNG(1), func(*entity.Entity) { spawned++ })

	if spawned != 0 {
		t.Errorf("small asteroid split into %d fragments", spawned)
	}
}

func TestImpactDamagesBothAndClampsHealth(t *testing.T) {
	ng := testEngine()
	a := ship(1, 100, 100)
	a.Vel = core.Vec2{X: 5, Y: 0}
	rock := asteroid(2, 115, 100, 10, core.Vec2{X: -5, Y: 0})

	pairs := ng.Detect([]*entity.Entity{a, rock})
	if len(pairs) != 1 {
		t.Fatalf("expected impact pair, got %d", len(pairs))
	}
	ng.Resolve(pairs, core.NewRNG(1), func(*entity.Entity) {})

	if a.Health >= 100 {
		t.Error("ship took no impact damage")
	}
	if a.Health < 0 || rock.Health < 0 {
		t.Errorf("negative health after impact: ship=%v rock=%v", a.Health, rock.Health)
	}
}

func TestMineTriggerRadius(t *testing.T) {
	ng := testEngine()
	mine := &entity.Entity{
		ID: 1, Kind: entity.KindMine, Faction: entity.FactionPlayer,
		Pos: core.Vec2{X: 100, Y: 100}, Radius: 6, Mass: 5,
		Health: 1, MaxHealth: 1, Alive: true,
		Proj: &entity.Projectile{SourceID: 10, Damage: 100, TriggerRadius: 60},
	}
	hostile := enemy(2, 150, 100) // Inside trigger radius, outside body radius

	pairs := ng.Detect([]*entity.Entity{mine, hostile})
	if len(pairs) != 1 {
		t.Fatalf("mine did not trigger at standoff distance: %d pairs", len(pairs))
	}

	ng.Resolve(pairs, core.NewRNG(1), func(*entity.Entity) {})
	if hostile.Health != 0 {
		t.Errorf("mine detonation dealt %v, want full 100", 100-hostile.Health)
	}
	if mine.Alive {
		t.Error("mine must be spent on detonation")
	}
}

func TestMineIgnoresNeutralJunk(t *testing.T) {
	ng := testEngine()
	mine := &entity.Entity{
		ID: 1, Kind: entity.KindMine, Faction: entity.FactionPlayer,
		Pos: core.Vec2{X: 100, Y: 100}, Radius: 6, Mass: 5,
		Health: 1, MaxHealth: 1, Alive: true,
		Proj: &entity.Projectile{SourceID: 10, Damage: 100, TriggerRadius: 60},
	}
	rock := asteroid(2, 150, 100, 10, core.Vec2{})

	// Junk only sets the mine off on contact, not at trigger range.
	if pairs := ng.Detect([]*entity.Entity{mine, rock}); len(pairs) != 0 {
		t.Errorf("mine triggered on neutral junk at standoff range: %d pairs", len(pairs))
	}
}
