package core

// RNG is a deterministic pseudo-random number generator (xorshift64).
// Its state is a single uint64 so snapshots can capture and restore it,
// which keeps saved games replayable.
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = 88172645463325252 // Default seed
	}
	return &RNG{state: uint64(seed)}
}

// Next returns the next random uint64.
func (r *RNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a random float64 in [0, 1).
func (r *RNG) Float() float64 {
	return float64(r.Next()&0x7FFFFFFFFFFFFFFF) / float64(0x8000000000000000)
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// IntRange returns a random int in [lo, hi).
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo)
}

// Range returns a random float64 in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.Float()*(hi-lo)
}

// State returns the current generator state for snapshotting.
func (r *RNG) State() uint64 {
	return r.state
}

// Restore sets the generator state from a snapshot.
func (r *RNG) Restore(state uint64) {
	if state == 0 {
		state = 88172645463325252
	}
	r.state = state
}
