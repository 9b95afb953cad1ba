package session

import (
	"math"

	"github.com/semissileman/spacehunter/internal/core"
	"github.com/semissileman/spacehunter/internal/entity"
)

// minBlipRadius filters radar clutter: entities smaller than this do not
// paint a contact.
const minBlipRadius = 3

// Contact is one radar blip relative to the player ship.
type Contact struct {
	ID       entity.ID
	Kind     entity.Kind
	Pos      core.Vec2 // Absolute world position
	Bearing  float64   // Degrees, 0 dead ahead of the ship
	Distance float64
	Closing  float64   // Approach speed, negative when the contact opens
	Hostile  bool
}

// RadarSummary is a per-tick radar sweep around the player.
type RadarSummary struct {
	Range    float64
	Contacts []Contact
	// HostileAlert is set when any hostile ship or round is inside range.
	HostileAlert bool
}

// Radar sweeps a circle of rangeFactor times the field width around the
// player and reports every contact inside it, nearest first.
func (s *Session) Radar(rangeFactor float64) RadarSummary {
	sweep := RadarSummary{Range: rangeFactor * s.runtime.WorldW}
	p := s.playerEntity()
	if p == nil || s.playerHidden() {
		return sweep
	}

	for _, e := range s.entities {
		if !e.Alive || e.ID == s.playerID || e.Radius < minBlipRadius {
			continue
		}
		d := p.Pos.Distance(e.Pos)
		if d > sweep.Range {
			continue
		}
		hostile := e.Hostile(p)
		if hostile {
			sweep.HostileAlert = true
		}
		sweep.Contacts = append(sweep.Contacts, Contact{
			ID:       e.ID,
			Kind:     e.Kind,
			Pos:      e.Pos,
			Bearing:  bearing(p, e.Pos),
			Distance: d,
			Closing:  closingSpeed(p, e, d),
			Hostile:  hostile,
		})
	}

	// Nearest first, insertion sort keeps it allocation free.
	for i := 1; i < len(sweep.Contacts); i++ {
		for j := i; j > 0 && sweep.Contacts[j].Distance < sweep.Contacts[j-1].Distance; j-- {
			sweep.Contacts[j], sweep.Contacts[j-1] = sweep.Contacts[j-1], sweep.Contacts[j]
		}
	}
	return sweep
}

// closingSpeed projects the relative velocity onto the line of sight. The
// result is the rate at which the contact closes on the ship.
func closingSpeed(ship, target *entity.Entity, dist float64) float64 {
	if dist == 0 {
		return 0
	}
	lineOfSight := target.Pos.Sub(ship.Pos).Scale(1 / dist)
	return lineOfSight.Dot(ship.Vel.Sub(target.Vel))
}

// bearing returns the angle from the ship's nose to the target, normalized
// to [0, 360).
func bearing(ship *entity.Entity, target core.Vec2) float64 {
	u := target.Sub(ship.Pos)
	world := math.Atan2(-u.X, -u.Y) * 180 / math.Pi
	return core.NormalizeDeg(world - ship.Rot)
}

// HUDState is everything a head-up display needs for one frame.
type HUDState struct {
	Tick      uint64
	Score     int
	Lives     int
	Level     int
	Shield    float64
	MaxShield float64

	SelectedBay int
	Weapon      string
	Ammo        int
	Heat        int
	BayState    string

	Docked     bool
	Respawning bool
	Paused     bool
	GameOver   bool

	Entities int
}

// HUD assembles the current frame's head-up display state.
func (s *Session) HUD() HUDState {
	bay := s.player.Bays[s.player.Selected]
	hud := HUDState{
		Tick:        s.tick,
		Score:       s.player.Score,
		Lives:       s.player.Lives,
		Level:       s.level,
		MaxShield:   s.cfg.Player.MaxShield,
		SelectedBay: s.player.Selected,
		Weapon:      bay.Kind.String(),
		Ammo:        bay.Ammo,
		Heat:        bay.Heat,
		BayState:    bay.State.String(),
		Docked:      s.player.DockedWith != entity.None,
		Respawning:  s.playerHidden(),
		Paused:      s.paused,
		GameOver:    s.gameOver,
		Entities:    len(s.entities),
	}
	if p := s.playerEntity(); p != nil {
		hud.Shield = p.Health
	}
	return hud
}
