package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/semissileman/spacehunter/internal/ai"
	"github.com/semissileman/spacehunter/internal/core"
	"github.com/semissileman/spacehunter/internal/entity"
	"github.com/semissileman/spacehunter/internal/weapon"
)

// SnapshotVersion is the current save format version. Loads reject any
// other version.
const SnapshotVersion = 1

// CorruptSaveError reports an unreadable or inconsistent save. After
// returning it the session is reset to a fresh game.
type CorruptSaveError struct {
	Reason string
	Err    error
}

func (e *CorruptSaveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt save: %s: %v", e.Reason, e.Err)
	}
	return "corrupt save: " + e.Reason
}

func (e *CorruptSaveError) Unwrap() error {
	return e.Err
}

// baySnapshot serializes one weapon bay.
type baySnapshot struct {
	Slot              int    `json:"slot"`
	Kind              string `json:"kind"`
	Ammo              int    `json:"ammo"`
	Heat              int    `json:"heat"`
	State             int    `json:"state"`
	LastFireTick      uint64 `json:"last_fire_tick"`
	LastCoolTick      uint64 `json:"last_cool_tick"`
	LastReplenishTick uint64 `json:"last_replenish_tick"`
}

// projSnapshot serializes the projectile payload of a round or mine.
type projSnapshot struct {
	SourceID      uint64  `json:"source_id"`
	Weapon        string  `json:"weapon"`
	Damage        float64 `json:"damage"`
	Homing        bool    `json:"homing,omitempty"`
	TurnForce     float64 `json:"turn_force,omitempty"`
	AcquireDelay  int     `json:"acquire_delay,omitempty"`
	Age           int     `json:"age,omitempty"`
	TargetID      uint64  `json:"target_id,omitempty"`
	TriggerRadius float64 `json:"trigger_radius,omitempty"`
}

// entitySnapshot serializes one entity with primitive fields only.
type entitySnapshot struct {
	ID      uint64 `json:"id"`
	Kind    string `json:"kind"`
	Faction int    `json:"faction"`

	PosX float64 `json:"pos_x"`
	PosY float64 `json:"pos_y"`
	VelX float64 `json:"vel_x"`
	VelY float64 `json:"vel_y"`
	Rot  float64 `json:"rot"`
	VelR float64 `json:"vel_r"`

	// Pending steering laid down after the physics step; it is consumed by
	// the next tick's integration, so a save taken between ticks must
	// carry it.
	ThrustX  float64 `json:"thrust_x,omitempty"`
	ThrustY  float64 `json:"thrust_y,omitempty"`
	YawAccel float64 `json:"yaw_accel,omitempty"`

	MaxSpeed       float64 `json:"max_speed"`
	MaxYaw         float64 `json:"max_yaw"`
	Mass           float64 `json:"mass"`
	Radius         float64 `json:"radius"`
	Health         float64 `json:"health"`
	MaxHealth      float64 `json:"max_health"`
	ContactDamage  float64 `json:"contact_damage"`
	OutOfPlayTicks int     `json:"out_of_play_ticks,omitempty"`

	Proj *projSnapshot `json:"proj,omitempty"`
}

// controllerSnapshot serializes one enemy controller.
type controllerSnapshot struct {
	EntityID       uint64        `json:"entity_id"`
	Variant        string        `json:"variant"`
	State          int           `json:"state"`
	Selected       int           `json:"selected"`
	RetreatUntil   uint64        `json:"retreat_until"`
	WanderX        float64       `json:"wander_x"`
	WanderY        float64       `json:"wander_y"`
	LastWanderTick uint64        `json:"last_wander_tick"`
	Shooting       bool          `json:"shooting"`
	BurstUntil     uint64        `json:"burst_until"`
	NextBurst      uint64        `json:"next_burst"`
	Bays           []baySnapshot `json:"bays"`
}

// playerSnapshot serializes the player's non-entity state.
type playerSnapshot struct {
	Lives      int           `json:"lives"`
	Score      int           `json:"score"`
	Selected   int           `json:"selected"`
	DockedWith uint64        `json:"docked_with"`
	RespawnAt  uint64        `json:"respawn_at"`
	Bays       []baySnapshot `json:"bays"`
}

// Snapshot is the complete serializable state of a session. Restoring it
// into a session created with the same config and runtime settings resumes
// the exact simulation, RNG stream included.
type Snapshot struct {
	Version  int    `json:"version"`
	Tick     uint64 `json:"tick"`
	Level    int    `json:"level"`
	Paused   bool   `json:"paused"`
	GameOver bool   `json:"game_over"`

	Seed     int64  `json:"seed"`
	RNGState uint64 `json:"rng_state"`
	NextID   uint64 `json:"next_id"`

	PlayerID uint64         `json:"player_id"`
	SupplyID uint64         `json:"supply_id"`
	Player   playerSnapshot `json:"player"`

	SupplyState   int     `json:"supply_state"`
	SupplyTargetX float64 `json:"supply_target_x"`
	SupplyTargetY float64 `json:"supply_target_y"`

	NextAsteroidStorm uint64 `json:"next_asteroid_storm"`
	NextEnemyStorm    uint64 `json:"next_enemy_storm"`

	Entities    []entitySnapshot     `json:"entities"`
	Controllers []controllerSnapshot `json:"controllers"`
}

func snapBays(bays []weapon.Bay) []baySnapshot {
	out := make([]baySnapshot, len(bays))
	for i, b := range bays {
		out[i] = baySnapshot{
			Slot:              b.Slot,
			Kind:              b.Kind.String(),
			Ammo:              b.Ammo,
			Heat:              b.Heat,
			State:             int(b.State),
			LastFireTick:      b.LastFireTick,
			LastCoolTick:      b.LastCoolTick,
			LastReplenishTick: b.LastReplenishTick,
		}
	}
	return out
}

func restoreBays(snaps []baySnapshot) []weapon.Bay {
	out := make([]weapon.Bay, len(snaps))
	for i, b := range snaps {
		out[i] = weapon.Bay{
			Slot:              b.Slot,
			Kind:              weapon.KindByName(b.Kind),
			Ammo:              b.Ammo,
			Heat:              b.Heat,
			State:             weapon.BayState(b.State),
			LastFireTick:      b.LastFireTick,
			LastCoolTick:      b.LastCoolTick,
			LastReplenishTick: b.LastReplenishTick,
		}
	}
	return out
}

// Snapshot captures the full session state.
func (s *Session) Snapshot() *Snapshot {
	snap := &Snapshot{
		Version:  SnapshotVersion,
		Tick:     s.tick,
		Level:    s.level,
		Paused:   s.paused,
		GameOver: s.gameOver,

		Seed:     s.runtime.Seed,
		RNGState: s.rng.State(),
		NextID:   uint64(s.nextID),

		PlayerID: uint64(s.playerID),
		SupplyID: uint64(s.supplyID),
		Player: playerSnapshot{
			Lives:      s.player.Lives,
			Score:      s.player.Score,
			Selected:   s.player.Selected,
			DockedWith: uint64(s.player.DockedWith),
			RespawnAt:  s.respawnAt,
			Bays:       snapBays(s.player.Bays),
		},

		SupplyState:   int(s.supplyState),
		SupplyTargetX: s.supplyTarget.X,
		SupplyTargetY: s.supplyTarget.Y,

		NextAsteroidStorm: s.nextAsteroidStorm,
		NextEnemyStorm:    s.nextEnemyStorm,
	}

	for _, e := range s.entities {
		if !e.Alive {
			continue
		}
		es := entitySnapshot{
			ID:             uint64(e.ID),
			Kind:           e.Kind.String(),
			Faction:        int(e.Faction),
			PosX:           e.Pos.X,
			PosY:           e.Pos.Y,
			VelX:           e.Vel.X,
			VelY:           e.Vel.Y,
			Rot:            e.Rot,
			VelR:           e.VelR,
			ThrustX:        e.Thrust.X,
			ThrustY:        e.Thrust.Y,
			YawAccel:       e.YawAccel,
			MaxSpeed:       e.MaxSpeed,
			MaxYaw:         e.MaxYaw,
			Mass:           e.Mass,
			Radius:         e.Radius,
			Health:         e.Health,
			MaxHealth:      e.MaxHealth,
			ContactDamage:  e.ContactDamage,
			OutOfPlayTicks: e.OutOfPlayTicks,
		}
		if e.Proj != nil {
			es.Proj = &projSnapshot{
				SourceID:      uint64(e.Proj.SourceID),
				Weapon:        e.Proj.Weapon,
				Damage:        e.Proj.Damage,
				Homing:        e.Proj.Homing,
				TurnForce:     e.Proj.TurnForce,
				AcquireDelay:  e.Proj.AcquireDelay,
				Age:           e.Proj.Age,
				TargetID:      uint64(e.Proj.TargetID),
				TriggerRadius: e.Proj.TriggerRadius,
			}
		}
		snap.Entities = append(snap.Entities, es)
	}

	for _, c := range s.controllers {
		snap.Controllers = append(snap.Controllers, controllerSnapshot{
			EntityID:       uint64(c.EntityID),
			Variant:        s.variants[c.EntityID].String(),
			State:          int(c.State),
			Selected:       c.Selected,
			RetreatUntil:   c.RetreatUntil,
			WanderX:        c.WanderVec.X,
			WanderY:        c.WanderVec.Y,
			LastWanderTick: c.LastWanderTick,
			Shooting:       c.Shooting,
			BurstUntil:     c.BurstUntil,
			NextBurst:      c.NextBurst,
			Bays:           snapBays(c.Bays),
		})
	}
	return snap
}

// Save serializes the session as versioned JSON.
func (s *Session) Save() ([]byte, error) {
	return json.MarshalIndent(s.Snapshot(), "", "  ")
}

// kindByName reverses entity.Kind.String.
func kindByName(name string) (entity.Kind, bool) {
	for k := entity.KindShip; k <= entity.KindMine; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Restore replaces the session state with the snapshot's. If the snapshot
// is inconsistent the session is reset to a fresh game and a
// CorruptSaveError is returned.
func (s *Session) Restore(snap *Snapshot) error {
	if err := s.restore(snap); err != nil {
		fresh := New(s.cfg, s.runtime)
		*s = *fresh
		return err
	}
	return nil
}

func (s *Session) restore(snap *Snapshot) error {
	if snap.Version != SnapshotVersion {
		return &CorruptSaveError{Reason: fmt.Sprintf("unsupported version %d", snap.Version)}
	}
	if snap.PlayerID == 0 {
		return &CorruptSaveError{Reason: "missing player"}
	}
	if len(snap.Player.Bays) == 0 || snap.Player.Selected < 0 || snap.Player.Selected >= len(snap.Player.Bays) {
		return &CorruptSaveError{Reason: "invalid player bays"}
	}

	entities := make([]*entity.Entity, 0, len(snap.Entities))
	var playerFound bool
	for _, es := range snap.Entities {
		kind, ok := kindByName(es.Kind)
		if !ok {
			return &CorruptSaveError{Reason: "unknown entity kind " + es.Kind}
		}
		if es.Health < 0 || es.Radius <= 0 {
			return &CorruptSaveError{Reason: fmt.Sprintf("entity %d has invalid vitals", es.ID)}
		}
		if es.ID == 0 || es.ID > snap.NextID {
			return &CorruptSaveError{Reason: fmt.Sprintf("entity id %d out of range", es.ID)}
		}
		e := &entity.Entity{
			ID:             entity.ID(es.ID),
			Kind:           kind,
			Faction:        entity.Faction(es.Faction),
			Pos:            core.Vec2{X: es.PosX, Y: es.PosY},
			Vel:            core.Vec2{X: es.VelX, Y: es.VelY},
			Rot:            es.Rot,
			VelR:           es.VelR,
			Thrust:         core.Vec2{X: es.ThrustX, Y: es.ThrustY},
			YawAccel:       es.YawAccel,
			MaxSpeed:       es.MaxSpeed,
			MaxYaw:         es.MaxYaw,
			Mass:           es.Mass,
			Radius:         es.Radius,
			Health:         es.Health,
			MaxHealth:      es.MaxHealth,
			ContactDamage:  es.ContactDamage,
			OutOfPlayTicks: es.OutOfPlayTicks,
			Alive:          true,
		}
		if es.Proj != nil {
			e.Proj = &entity.Projectile{
				SourceID:      entity.ID(es.Proj.SourceID),
				Weapon:        es.Proj.Weapon,
				Damage:        es.Proj.Damage,
				Homing:        es.Proj.Homing,
				TurnForce:     es.Proj.TurnForce,
				AcquireDelay:  es.Proj.AcquireDelay,
				Age:           es.Proj.Age,
				TargetID:      entity.ID(es.Proj.TargetID),
				TriggerRadius: es.Proj.TriggerRadius,
			}
		}
		if es.ID == snap.PlayerID {
			playerFound = true
		}
		entities = append(entities, e)
	}
	if !playerFound && !snap.GameOver {
		return &CorruptSaveError{Reason: "player entity not in entity set"}
	}

	controllers := make([]*ai.Controller, 0, len(snap.Controllers))
	variants := make(map[entity.ID]ai.Variant, len(snap.Controllers))
	for _, cs := range snap.Controllers {
		id := entity.ID(cs.EntityID)
		found := false
		for _, e := range entities {
			if e.ID == id && e.Kind == entity.KindEnemy {
				found = true
				break
			}
		}
		if !found {
			return &CorruptSaveError{Reason: fmt.Sprintf("controller for missing enemy %d", cs.EntityID)}
		}
		v := ai.VariantByName(cs.Variant)
		c := ai.NewController(id, ai.SpecFor(v).Params, nil)
		c.State = ai.State(cs.State)
		c.Selected = cs.Selected
		c.RetreatUntil = cs.RetreatUntil
		c.WanderVec = core.Vec2{X: cs.WanderX, Y: cs.WanderY}
		c.LastWanderTick = cs.LastWanderTick
		c.Shooting = cs.Shooting
		c.BurstUntil = cs.BurstUntil
		c.NextBurst = cs.NextBurst
		c.Bays = restoreBays(cs.Bays)
		controllers = append(controllers, c)
		variants[id] = v
	}

	s.tick = snap.Tick
	s.level = snap.Level
	s.paused = snap.Paused
	s.gameOver = snap.GameOver
	s.rng.Restore(snap.RNGState)
	s.nextID = entity.ID(snap.NextID)
	s.entities = entities
	s.playerID = entity.ID(snap.PlayerID)
	s.supplyID = entity.ID(snap.SupplyID)
	s.player = PlayerState{
		Lives:      snap.Player.Lives,
		Score:      snap.Player.Score,
		Selected:   snap.Player.Selected,
		DockedWith: entity.ID(snap.Player.DockedWith),
		Bays:       restoreBays(snap.Player.Bays),
	}
	s.respawnAt = snap.Player.RespawnAt
	s.supplyState = supplyMode(snap.SupplyState)
	s.supplyTarget = core.Vec2{X: snap.SupplyTargetX, Y: snap.SupplyTargetY}
	s.nextAsteroidStorm = snap.NextAsteroidStorm
	s.nextEnemyStorm = snap.NextEnemyStorm
	s.controllers = controllers
	s.variants = variants
	return nil
}

// Load restores the session from Save output. A decode failure or an
// inconsistent snapshot resets the session to a fresh game and returns a
// CorruptSaveError.
func (s *Session) Load(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		fresh := New(s.cfg, s.runtime)
		*s = *fresh
		return &CorruptSaveError{Reason: "undecodable save data", Err: err}
	}
	return s.Restore(&snap)
}

// SaveToFile atomically writes a save file: the snapshot lands in a temp
// file first and replaces the target only on success, so a crash mid-write
// never clobbers the previous save.
func (s *Session) SaveToFile(path string) error {
	data, err := s.Save()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadFromFile restores the session from a save file written by SaveToFile.
func (s *Session) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}
		return &CorruptSaveError{Reason: "unreadable save file", Err: err}
	}
	return s.Load(data)
}
