package matching

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TLeonardUK/ds3os-sub000/internal/config"
)

func summonTable() config.MatchingTable {
	return config.MatchingTable{SoulRangeUp: 10, SoulRangeDown: 10, SoulPct: 1.0, WeaponRange: 1}
}

func TestCanMatchWithinSoulAndWeaponRange(t *testing.T) {
	caller := Candidate{SoulLevel: 50, WeaponLevel: 5}
	target := Candidate{SoulLevel: 55, WeaponLevel: 6}
	require.True(t, CanMatch(caller, target, false, summonTable(), true))
}

func TestCanMatchRejectsOutOfSoulRange(t *testing.T) {
	caller := Candidate{SoulLevel: 50, WeaponLevel: 5}
	target := Candidate{SoulLevel: 100, WeaponLevel: 5}
	require.False(t, CanMatch(caller, target, false, summonTable(), true))
}

func TestCanMatchRejectsOutOfWeaponRange(t *testing.T) {
	caller := Candidate{SoulLevel: 50, WeaponLevel: 1}
	target := Candidate{SoulLevel: 50, WeaponLevel: 10}
	require.False(t, CanMatch(caller, target, false, summonTable(), true))
}

func TestCanMatchIgnoresWeaponRangeWhenDisabled(t *testing.T) {
	caller := Candidate{SoulLevel: 50, WeaponLevel: 1}
	target := Candidate{SoulLevel: 50, WeaponLevel: 10}
	require.True(t, CanMatch(caller, target, false, summonTable(), false))
}

func TestCanMatchBypassesWithPasswordWhenConfigured(t *testing.T) {
	table := summonTable()
	table.IgnoreWhenPassword = true
	caller := Candidate{SoulLevel: 1, WeaponLevel: 1}
	target := Candidate{SoulLevel: 999, WeaponLevel: 999}
	require.True(t, CanMatch(caller, target, true, table, true))
}

func TestSoulPctTightensFixedRange(t *testing.T) {
	table := config.MatchingTable{SoulRangeUp: 1000, SoulRangeDown: 1000, SoulPct: 0.1, WeaponRange: 100}
	caller := Candidate{SoulLevel: 50, WeaponLevel: 0}

	withinPct := Candidate{SoulLevel: 54, WeaponLevel: 0} // within ±10%
	require.True(t, CanMatch(caller, withinPct, false, table, true))

	beyondPct := Candidate{SoulLevel: 80, WeaponLevel: 0} // within fixed range but beyond ±10%
	require.False(t, CanMatch(caller, beyondPct, false, table, true))
}

func TestCanInvadeRequiresInvadableAndToggle(t *testing.T) {
	table := summonTable()
	toggles := config.FeatureToggles{}
	caller := Candidate{SoulLevel: 50, WeaponLevel: 5}

	invadable := Candidate{SoulLevel: 50, WeaponLevel: 5, IsInvadable: true}
	require.True(t, CanInvade(caller, invadable, false, table, toggles))

	notInvadable := Candidate{SoulLevel: 50, WeaponLevel: 5, IsInvadable: false}
	require.False(t, CanInvade(caller, notInvadable, false, table, toggles))

	toggles.DisableInvasions = true
	require.False(t, CanInvade(caller, invadable, false, table, toggles))
}

func TestCanVisitRequiresMatchingNonNonePool(t *testing.T) {
	table := summonTable()
	toggles := config.FeatureToggles{}
	caller := Candidate{SoulLevel: 50, WeaponLevel: 5, VisitorPool: VisitorPoolCoop}

	samePool := Candidate{SoulLevel: 50, WeaponLevel: 5, VisitorPool: VisitorPoolCoop}
	require.True(t, CanVisit(caller, samePool, false, table, toggles))

	differentPool := Candidate{SoulLevel: 50, WeaponLevel: 5, VisitorPool: VisitorPoolWatchdog}
	require.False(t, CanVisit(caller, differentPool, false, table, toggles))

	nonePool := Candidate{SoulLevel: 50, WeaponLevel: 5, VisitorPool: VisitorPoolNone}
	callerNone := caller
	callerNone.VisitorPool = VisitorPoolNone
	require.False(t, CanVisit(callerNone, nonePool, false, table, toggles))

	toggles.DisableCoop = true
	require.False(t, CanVisit(caller, samePool, false, table, toggles))
}
