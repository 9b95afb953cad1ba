package core

// RuntimeConfig contains configuration passed to the session at creation.
// The presentation layer supplies field dimensions; the seed makes the
// whole simulation reproducible.
type RuntimeConfig struct {
	WorldW   float64 // Playing field width in world units
	WorldH   float64 // Playing field height in world units
	TickRate int     // Simulation ticks per second (default 60)
	Seed     int64   // RNG seed for deterministic gameplay
}

// DefaultRuntimeConfig returns a RuntimeConfig with sensible defaults.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		WorldW:   800,
		WorldH:   600,
		TickRate: 60,
		Seed:     0, // 0 means use current time in the caller
	}
}
