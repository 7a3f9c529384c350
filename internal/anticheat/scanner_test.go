package anticheat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TLeonardUK/ds3os-sub000/internal/config"
	"github.com/TLeonardUK/ds3os-sub000/internal/playerstate"
)

func testConfig() config.AntiCheatConfig {
	return config.AntiCheatConfig{
		WarnThreshold:        1.0,
		BanThreshold:         5.0,
		AutoBan:              true,
		ScoreImpossibleStats: 3.0,
		ScoreInvalidName:     2.0,
		ScoreClientFlagged:   4.0,
	}
}

func completePlayer(t *testing.T) *playerstate.PlayerState {
	t.Helper()
	p := playerstate.New("steam:1", 1)
	p.ApplyObservations(playerstate.Observations{CharacterName: "Ashen One", SoulLevel: 50, MaxWeaponLevel: 5})
	return p
}

func TestScanSkipsIncompleteStatus(t *testing.T) {
	p := playerstate.New("steam:1", 1)
	scanner := NewScanner(testConfig(), DefaultTriggers()...)
	result := scanner.Scan(time.Now(), p)
	require.Empty(t, result.Fired)
}

func TestScanFiresImpossibleStatsOnce(t *testing.T) {
	p := completePlayer(t)
	p.SoulLevel = 99999
	scanner := NewScanner(testConfig(), DefaultTriggers()...)

	first := scanner.Scan(time.Now(), p)
	require.Len(t, first.Fired, 1)

	second := scanner.Scan(time.Now(), p)
	require.Empty(t, second.Fired, "a trigger must not refire once marked this session")
}

func TestScanShouldWarnAboveWarnThreshold(t *testing.T) {
	p := completePlayer(t)
	p.CharacterName = ""
	scanner := NewScanner(testConfig(), InvalidNameTrigger{})

	result := scanner.Scan(time.Now(), p)
	require.True(t, result.ShouldWarn)
	require.False(t, result.ShouldBan)
}

func TestScanShouldBanAboveBanThreshold(t *testing.T) {
	p := completePlayer(t)
	p.SoulLevel = 99999
	p.CharacterName = ""
	now := time.Now()

	scanner := NewScanner(testConfig(), ImpossibleStatsTrigger{}, InvalidNameTrigger{}, ClientFlaggedTrigger{})
	first := scanner.Scan(now, p)
	require.True(t, first.ShouldBan, "3.0+2.0=5.0 should cross the ban threshold")
}

func TestWarnCooldownSuppressesRepeatedWarnings(t *testing.T) {
	p := completePlayer(t)
	p.CharacterName = ""
	now := time.Now()
	scanner := NewScanner(testConfig(), InvalidNameTrigger{})

	first := scanner.Scan(now, p)
	require.True(t, first.ShouldWarn)

	p.AntiCheat.TriggeredThisSession = map[string]struct{}{}
	second := scanner.Scan(now.Add(time.Second), p)
	require.False(t, second.ShouldWarn, "cooldown should suppress a second warning so soon")
}
