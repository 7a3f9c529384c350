// Package matching implements the can_match predicate (spec.md §4.5) that
// every matchmaking handler (signs, invasions, visits, quick matches)
// consults to decide whether two players may be paired for an
// interaction. It is pure arithmetic over small, already-validated
// numeric inputs, grounded on the range checks in
// internal/gameserver/movement_validator.go and the party level-range gate
// in internal/game/party/manager.go.
package matching

import "github.com/TLeonardUK/ds3os-sub000/internal/config"

// VisitorPool is the covenant/pool a player belongs to for coop matching
// (spec.md §3 PlayerState).
type VisitorPool int

const (
	VisitorPoolNone VisitorPool = iota
	VisitorPoolCoop
	VisitorPoolWatchdog
	VisitorPoolAldrich
	VisitorPoolBlue
	VisitorPoolChurch
)

// Candidate is the subset of PlayerState fields the matching predicate
// needs, independent of any particular game variant's full schema.
type Candidate struct {
	SoulLevel   int32
	WeaponLevel int32
	IsInvadable bool
	VisitorPool VisitorPool
}

// CanMatch implements spec.md §4.5's generic predicate: soul-level range
// (tightened by a percentage cap), weapon-level range (when enabled), and
// the password bypass. Kind-specific gates (invadability, pool equality,
// feature toggles) are layered on top by CanInvade/CanVisit/CanSummon.
func CanMatch(caller, target Candidate, passwordPresent bool, table config.MatchingTable, weaponMatchingEnabled bool) bool {
	if table.IgnoreWhenPassword && passwordPresent {
		return true
	}

	if weaponMatchingEnabled {
		diff := caller.WeaponLevel - target.WeaponLevel
		if diff < 0 {
			diff = -diff
		}
		if diff > table.WeaponRange {
			return false
		}
	}

	return soulLevelInRange(caller.SoulLevel, target.SoulLevel, table)
}

// soulLevelInRange checks the fixed soul_range_up/down window, further
// tightened (never loosened) by the ±soul_pct% cap — both bounds must
// hold simultaneously.
func soulLevelInRange(callerSoul, targetSoul int32, table config.MatchingTable) bool {
	lower := callerSoul - table.SoulRangeDown
	upper := callerSoul + table.SoulRangeUp

	pctSpan := int32(float64(callerSoul) * table.SoulPct)
	pctLower := callerSoul - pctSpan
	pctUpper := callerSoul + pctSpan

	if pctLower > lower {
		lower = pctLower
	}
	if pctUpper < upper {
		upper = pctUpper
	}

	return targetSoul >= lower && targetSoul <= upper
}

// SignType distinguishes a coop (white) summon sign from a PvP (red) one,
// since CanSummon gates each color behind a different feature toggle.
type SignType int

const (
	SignTypeWhiteSoapstone SignType = iota
	SignTypeRedSoapstone
)

// CanSummon gates CanMatch with the summon-sign feature toggle, chosen by
// the sign's color (DS3_SignManager.cpp's CanMatchWith: "SignType ==
// SignType_RedSoapstone ? Config.DisableInvasions : Config.DisableCoop").
func CanSummon(caller, target Candidate, passwordPresent bool, table config.MatchingTable, toggles config.FeatureToggles, signType SignType) bool {
	disabled := toggles.DisableCoop
	if signType == SignTypeRedSoapstone {
		disabled = toggles.DisableInvasions
	}
	if disabled {
		return false
	}
	return CanMatch(caller, target, passwordPresent, table, !toggles.DisableWeaponLevelMatching)
}

// CanInvade additionally requires the target be invadable and invasions
// not be globally disabled.
func CanInvade(caller, target Candidate, passwordPresent bool, table config.MatchingTable, toggles config.FeatureToggles) bool {
	if toggles.DisableInvasions {
		return false
	}
	if !target.IsInvadable {
		return false
	}
	return CanMatch(caller, target, passwordPresent, table, !toggles.DisableWeaponLevelMatching)
}

// CanVisit additionally requires both players share the same, non-none
// visitor pool and coop not be globally disabled.
func CanVisit(caller, target Candidate, passwordPresent bool, table config.MatchingTable, toggles config.FeatureToggles) bool {
	if toggles.DisableCoop {
		return false
	}
	if caller.VisitorPool == VisitorPoolNone || caller.VisitorPool != target.VisitorPool {
		return false
	}
	return CanMatch(caller, target, passwordPresent, table, !toggles.DisableWeaponLevelMatching)
}
