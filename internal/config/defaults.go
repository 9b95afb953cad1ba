package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the hardcoded default configuration, used as
// the last-resort fallback if the embedded YAML fails to parse.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		World: WorldConfig{
			Width:             800,
			Height:            600,
			InPlayRange:       3,
			DespawnGraceTicks: 120,
		},
		Physics: PhysicsConfig{
			VelDamping: 1,
			YawDamping: 5,
		},
		Player: PlayerConfig{
			Lives:             3,
			MaxShield:         100,
			MaxSpeed:          10,
			MaxYaw:            3,
			MaxAccel:          0.4,
			YawAccel:          0.15,
			Radius:            20,
			Mass:              100,
			RespawnDelayTicks: 120,
		},
		Asteroids: AsteroidsConfig{
			Enabled:       true,
			MaxSpeed:      6,
			MinRadius:     8,
			MaxRadius:     32,
			StormSize:     10,
			StormMinTicks: 600,
			StormMaxTicks: 3000,
			SplitRadius:   12,
			DebrisInherit: 0.5,
			DebrisSpread:  3,
		},
		Enemies: EnemiesConfig{
			Enabled:       true,
			Shooting:      true,
			StormMinTicks: 600,
			StormMaxTicks: 3000,
		},
		Docking: DockingConfig{
			Proximity:   60,
			SupplySpeed: 3,
		},
		Levels: []LevelConfig{
			{Level: 0, Score: 0, EnemySwarm: 1},
			{Level: 1, Score: 20000, EnemySwarm: 3},
			{Level: 2, Score: 40000, EnemySwarm: 5},
			{Level: 3, Score: 60000, EnemySwarm: 5},
			{Level: 4, Score: 80000, EnemySwarm: 8},
			{Level: 5, Score: 1000000, EnemySwarm: 10},
		},
	}
}
