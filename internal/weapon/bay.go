package weapon

// BayState is the firing state machine position of one weapon bay.
type BayState int

const (
	BayIdle     BayState = iota
	BayFiring            // A round left the bay this tick
	BayCooldown          // Overheated; locked until heat drops below reset
)

// String returns a short name for the state.
func (s BayState) String() string {
	switch s {
	case BayIdle:
		return "idle"
	case BayFiring:
		return "firing"
	case BayCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// FireResult reports the outcome of a fire request. Rejections are ordinary
// results surfaced to the presentation layer, not errors.
type FireResult int

const (
	Fired FireResult = iota
	RejectedEmptySlot
	RejectedNoAmmo
	RejectedOverheated
	RejectedRate // Rate-of-fire interval not yet elapsed
)

// String returns a short name for the result.
func (r FireResult) String() string {
	switch r {
	case Fired:
		return "fired"
	case RejectedEmptySlot:
		return "empty slot"
	case RejectedNoAmmo:
		return "out of ammunition"
	case RejectedOverheated:
		return "weapon overheated"
	case RejectedRate:
		return "rate limited"
	default:
		return "unknown"
	}
}

// Maintenance intervals in seconds (original tuning: 3s cool checks, 5s
// ammo replenishment).
const (
	coolIntervalSec      = 3
	coolRate             = 10
	replenishIntervalSec = 5
)

// Bay is one weapon mounting slot. Fields are exported plain values so
// session snapshots can serialize bays directly.
type Bay struct {
	Slot  int
	Kind  Kind
	Ammo  int
	Heat  int
	State BayState

	LastFireTick      uint64
	LastCoolTick      uint64
	LastReplenishTick uint64
}

// NewBay returns a bay loaded with a full magazine of the given class.
func NewBay(slot int, kind Kind) Bay {
	return Bay{Slot: slot, Kind: kind, Ammo: SpecFor(kind).Capacity}
}

// fireIntervalTicks converts rounds-per-minute into a minimum tick spacing.
// Single-shot weapons (rate 1) are limited to one round per second.
func fireIntervalTicks(rate, tickRate int) uint64 {
	if rate <= 1 {
		return uint64(tickRate)
	}
	iv := uint64(60*tickRate) / uint64(rate)
	if iv < 1 {
		iv = 1
	}
	return iv
}

// CanFire checks whether a fire request would succeed at the given tick.
func (b *Bay) CanFire(tick uint64, tickRate int) FireResult {
	if b.Kind == Empty {
		return RejectedEmptySlot
	}
	if b.State == BayCooldown {
		return RejectedOverheated
	}
	if b.Ammo <= 0 {
		return RejectedNoAmmo
	}
	if b.LastFireTick != 0 && tick-b.LastFireTick < fireIntervalTicks(SpecFor(b.Kind).Rate, tickRate) {
		return RejectedRate
	}
	return Fired
}

// Fire attempts to fire the bay at the given tick. On success it decrements
// ammo, accumulates heat and may push the bay into forced cooldown for the
// following ticks. The caller spawns the projectile when Fired is returned.
func (b *Bay) Fire(tick uint64, tickRate int) FireResult {
	if r := b.CanFire(tick, tickRate); r != Fired {
		return r
	}

	spec := SpecFor(b.Kind)
	b.Ammo--
	b.Heat++
	b.LastFireTick = tick
	b.State = BayFiring

	if spec.MaxHeat > 0 && b.Heat >= spec.MaxHeat {
		b.State = BayCooldown
	}
	return Fired
}

// Maintain advances the bay's background processes for one tick: heat decay,
// ammo auto-replenishment and cooldown release. Call once per tick for every
// bay, firing or not.
func (b *Bay) Maintain(tick uint64, tickRate int) {
	if b.Kind == Empty {
		return
	}
	spec := SpecFor(b.Kind)

	if b.State == BayFiring {
		b.State = BayIdle
		if spec.MaxHeat > 0 && b.Heat >= spec.MaxHeat {
			b.State = BayCooldown
		}
	}

	// Heat decays on a fixed interval when the bay is not firing.
	coolEvery := uint64(coolIntervalSec * tickRate)
	if tick-b.LastCoolTick >= coolEvery {
		b.LastCoolTick = tick
		b.Heat -= coolRate
		if b.Heat < 0 {
			b.Heat = 0
		}
	}

	// An overheated bay unlocks once heat drops below the reset threshold.
	if b.State == BayCooldown && spec.MaxHeat > 0 && b.Heat < spec.MaxHeat/2 {
		b.State = BayIdle
	}

	// Background ammunition recharge for self-replenishing weapons.
	if spec.Replenish > 0 {
		replenishEvery := uint64(replenishIntervalSec * tickRate)
		if tick-b.LastReplenishTick >= replenishEvery {
			b.LastReplenishTick = tick
			b.Ammo += spec.Replenish
			if b.Ammo > spec.Capacity {
				b.Ammo = spec.Capacity
			}
		}
	}
}
