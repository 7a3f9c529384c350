package anticheat

import (
	"fmt"
	"unicode/utf8"

	"github.com/TLeonardUK/ds3os-sub000/internal/config"
	"github.com/TLeonardUK/ds3os-sub000/internal/playerstate"
)

// maxSoulLevel bounds a sane character level (AntiCheatTrigger_ImpossibleStats.cpp
// k_max_soul_level — DS3's level cap on an unmodified save).
const maxSoulLevel = 802

// maxWeaponLevel bounds a sane weapon upgrade level (+10 / +5 infused, the
// highest a legitimate DS3 save can reach).
const maxWeaponLevel = 10

// minNameLength and maxNameLength mirror AntiCheatTrigger_InvalidName.h's
// k_min_name_length / k_max_name_length.
const (
	minNameLength = 1
	maxNameLength = 16
)

// ImpossibleStatsTrigger fires when the uploaded status carries a soul or
// weapon level outside what an unmodified client can legitimately reach
// (AntiCheatTrigger_ImpossibleStats.cpp).
type ImpossibleStatsTrigger struct{}

func (ImpossibleStatsTrigger) Name() string { return "Impossible Stats" }

func (ImpossibleStatsTrigger) Weight(cfg config.AntiCheatConfig) float64 {
	return cfg.ScoreImpossibleStats
}

func (ImpossibleStatsTrigger) Scan(p *playerstate.PlayerState) (bool, string) {
	if p.SoulLevel <= 0 || p.SoulLevel > maxSoulLevel {
		return true, fmt.Sprintf("soul level %d outside sane bounds (1..%d)", p.SoulLevel, maxSoulLevel)
	}
	if p.MaxWeaponLevel < 0 || p.MaxWeaponLevel > maxWeaponLevel {
		return true, fmt.Sprintf("weapon level %d outside sane bounds (0..%d)", p.MaxWeaponLevel, maxWeaponLevel)
	}
	return false, ""
}

// InvalidNameTrigger fires when the uploaded character name's length is
// outside the client's own input bounds (AntiCheatTrigger_InvalidName.cpp).
type InvalidNameTrigger struct{}

func (InvalidNameTrigger) Name() string { return "Invalid Name" }

func (InvalidNameTrigger) Weight(cfg config.AntiCheatConfig) float64 {
	return cfg.ScoreInvalidName
}

func (InvalidNameTrigger) Scan(p *playerstate.PlayerState) (bool, string) {
	length := utf8.RuneCountInString(p.CharacterName)
	if length < minNameLength || length > maxNameLength {
		return true, fmt.Sprintf("name %q has invalid length %d", p.CharacterName, length)
	}
	return false, ""
}

// ClientFlaggedTrigger fires when the client's own in-client detection
// system has flagged itself in the uploaded status
// (AntiCheatTrigger_ClientFlagged.cpp, flag 0x1770). This is an
// observed-not-derived signal: DESIGN.md Open Question decision 2.
type ClientFlaggedTrigger struct{}

func (ClientFlaggedTrigger) Name() string { return "Client Flagged" }

func (ClientFlaggedTrigger) Weight(cfg config.AntiCheatConfig) float64 {
	return cfg.ScoreClientFlagged
}

func (ClientFlaggedTrigger) Scan(p *playerstate.PlayerState) (bool, string) {
	if p.Flagged() {
		return true, "client self-reported its own anti-cheat flag"
	}
	return false, ""
}

// DefaultTriggers returns the trigger set supplemented from
// original_source/ (SPEC_FULL §5 item 1).
func DefaultTriggers() []Trigger {
	return []Trigger{
		ImpossibleStatsTrigger{},
		InvalidNameTrigger{},
		ClientFlaggedTrigger{},
	}
}
