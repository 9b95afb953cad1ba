// Package config provides YAML-based game configuration loading for the
// spacehunter simulation core.
package config

// GameConfig contains all tunable simulation parameters.
type GameConfig struct {
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Asteroids AsteroidsConfig `yaml:"asteroids"`
	Enemies   EnemiesConfig   `yaml:"enemies"`
	Docking   DockingConfig   `yaml:"docking"`
	Levels    []LevelConfig   `yaml:"levels"`
}

// WorldConfig defines the playing field.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// InPlayRange is the multiple of the field extent beyond which an
	// entity counts as out of play.
	InPlayRange float64 `yaml:"in_play_range"`
	// DespawnGraceTicks is how long an entity may stay out of play before
	// it is softly despawned.
	DespawnGraceTicks int `yaml:"despawn_grace_ticks"`
}

// PhysicsConfig defines inertial behavior.
type PhysicsConfig struct {
	VelDamping float64 `yaml:"vel_damping"` // Percent per tick
	YawDamping float64 `yaml:"yaw_damping"`
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Lives     int     `yaml:"lives"`
	MaxShield float64 `yaml:"max_shield"`
	MaxSpeed  float64 `yaml:"max_speed"`
	MaxYaw    float64 `yaml:"max_yaw"`
	MaxAccel  float64 `yaml:"max_accel"`
	YawAccel  float64 `yaml:"yaw_accel"`
	Radius    float64 `yaml:"radius"`
	Mass      float64 `yaml:"mass"`

	// RespawnDelayTicks is the hidden period after losing a life.
	RespawnDelayTicks int `yaml:"respawn_delay_ticks"`
}

// AsteroidsConfig defines asteroid storms and splitting.
type AsteroidsConfig struct {
	Enabled       bool    `yaml:"enabled"`
	MaxSpeed      float64 `yaml:"max_speed"`
	MinRadius     float64 `yaml:"min_radius"`
	MaxRadius     float64 `yaml:"max_radius"`
	StormSize     int     `yaml:"storm_size"`
	StormMinTicks int     `yaml:"storm_min_ticks"`
	StormMaxTicks int     `yaml:"storm_max_ticks"`
	SplitRadius   float64 `yaml:"split_radius"`
	DebrisInherit float64 `yaml:"debris_inherit"`
	DebrisSpread  float64 `yaml:"debris_spread"`
}

// EnemiesConfig defines hostile storms.
type EnemiesConfig struct {
	Enabled       bool `yaml:"enabled"`
	Shooting      bool `yaml:"shooting"`
	StormMinTicks int  `yaml:"storm_min_ticks"`
	StormMaxTicks int  `yaml:"storm_max_ticks"`
}

// DockingConfig defines supply ship behavior.
type DockingConfig struct {
	// Proximity is the max distance between player and supply ship for a
	// docking attempt to succeed.
	Proximity float64 `yaml:"proximity"`
	// SupplySpeed is the supply ship cruise speed when summoned.
	SupplySpeed float64 `yaml:"supply_speed"`
}

// LevelConfig defines one entry of the level progression matrix.
type LevelConfig struct {
	Level      int `yaml:"level"`
	Score      int `yaml:"score"`       // Score threshold to reach this level
	EnemySwarm int `yaml:"enemy_swarm"` // Enemies per storm at this level
}
