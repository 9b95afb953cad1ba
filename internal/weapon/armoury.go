package weapon

import (
	"errors"
	"fmt"

	"github.com/semissileman/spacehunter/internal/core"
)

// MaxBays is the number of weapon mounting slots on the player ship.
const MaxBays = 5

// Trading error conditions. The session checks docking before calling in;
// these cover the transaction itself.
var (
	ErrBadSlot           = errors.New("armoury: no such weapon bay")
	ErrInsufficientFunds = errors.New("armoury: insufficient score points")
	ErrUnknownWeapon     = errors.New("armoury: weapon not in catalogue")
)

// PurchaseWeapon installs a weapon class into the given bay, paying its
// cost out of score. The new weapon arrives unloaded; ammunition is bought
// separately. Installing Empty strips the bay for free. Returns the
// remaining score.
func PurchaseWeapon(bays []Bay, slot int, kind Kind, score int) (int, error) {
	if slot < 0 || slot >= len(bays) {
		return score, ErrBadSlot
	}
	if _, ok := specs[kind]; !ok {
		return score, ErrUnknownWeapon
	}

	cost := SpecFor(kind).Cost
	if cost > score {
		return score, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, cost, score)
	}

	bays[slot] = Bay{Slot: slot, Kind: kind}
	return score - cost, nil
}

// PurchaseAmmo buys rounds for the bay's installed weapon at the per-round
// price, up to capacity. Charges only for rounds actually loaded. Returns
// the remaining score and the number of rounds loaded.
func PurchaseAmmo(bays []Bay, slot int, rounds int, score int) (remaining, loaded int, err error) {
	if slot < 0 || slot >= len(bays) {
		return score, 0, ErrBadSlot
	}
	b := &bays[slot]
	if b.Kind == Empty {
		return score, 0, ErrUnknownWeapon
	}

	spec := SpecFor(b.Kind)
	rounds = core.Clamp(rounds, 0, spec.Capacity-b.Ammo)
	if rounds == 0 {
		return score, 0, nil
	}

	cost := rounds * spec.AmmoCost
	if cost > score {
		// Load as many rounds as the budget allows.
		rounds = score / spec.AmmoCost
		cost = rounds * spec.AmmoCost
		if rounds <= 0 {
			return score, 0, fmt.Errorf("%w: a %s round costs %d, have %d",
				ErrInsufficientFunds, b.Kind, spec.AmmoCost, score)
		}
	}

	b.Ammo += rounds
	return score - cost, rounds, nil
}
