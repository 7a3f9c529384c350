// Package anticheat implements the periodic per-session trigger scan
// (spec.md §4.7), grounded on
// original_source/.../GameManagers/AntiCheat/Triggers/*.cpp for the
// concrete trigger set and on
// internal/gameserver/movement_validator.go's validator-returns-error
// idiom, generalized here to trigger-returns-(fired,explanation).
package anticheat

import (
	"github.com/TLeonardUK/ds3os-sub000/internal/config"
	"github.com/TLeonardUK/ds3os-sub000/internal/playerstate"
)

// Trigger is one independent anti-cheat check, evaluated at most once per
// session (spec.md §4.7 "A trigger fires at most once per session").
type Trigger interface {
	// Name identifies the trigger for TriggeredThisSession bookkeeping
	// and warning/logging text.
	Name() string

	// Weight returns this trigger's configured penalty contribution.
	Weight(cfg config.AntiCheatConfig) float64

	// Scan inspects the player's current state and reports whether the
	// trigger fires, plus a human-readable explanation when it does.
	Scan(p *playerstate.PlayerState) (fired bool, explanation string)
}
