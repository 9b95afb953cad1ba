package core

// Input represents the normalized player input for a single simulation tick.
// The presentation layer maps physical devices (keyboard, joystick) to this
// frame; the core never sees raw key or axis events.
type Input struct {
	// Thrust is the longitudinal acceleration command in [-1, 1].
	// Positive values accelerate forward along the ship's heading.
	Thrust float64

	// Sideways is the lateral acceleration command in [-1, 1].
	Sideways float64

	// Yaw is the rotational acceleration command in [-1, 1].
	// Positive values rotate clockwise.
	Yaw float64

	// Fire requests a shot from the selected weapon bay.
	Fire bool

	// CycleWeapon selects the next weapon bay.
	CycleWeapon bool

	// SelectBay selects a specific bay by index; -1 means no change.
	SelectBay int

	// SummonSupply calls the supply ship toward the player.
	SummonSupply bool

	// Dock attempts to dock with the supply ship.
	Dock bool

	// Undock releases the docking clamps and parks the supply ship.
	Undock bool
}

// NewInput returns an empty input frame.
func NewInput() Input {
	return Input{SelectBay: -1}
}
