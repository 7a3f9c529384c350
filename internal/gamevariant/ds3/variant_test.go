package ds3

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant"
)

func TestVariantRegistryResolvesKnownOpcodes(t *testing.T) {
	v := New()
	opcode, ok := v.Registry().OpcodeFor(&RequestCreateSign{})
	require.True(t, ok)
	require.Equal(t, opRequestCreateSign, opcode)

	opcode, ok = v.Registry().OpcodeFor(&RequestUpdateSign{})
	require.True(t, ok)
	require.Equal(t, opRequestUpdateSign, opcode)
}

func TestVariantMatchingTableKeys(t *testing.T) {
	v := New()
	require.Equal(t, "summon", v.MatchingTableKey(gamevariant.InteractionSummon))
	require.Equal(t, "invasion", v.MatchingTableKey(gamevariant.InteractionInvasion))
	require.Equal(t, "visitor", v.MatchingTableKey(gamevariant.InteractionVisitor))
	require.Equal(t, "undead_match", v.MatchingTableKey(gamevariant.InteractionUndeadMatch))
}

func TestVariantRankingModeIsMax(t *testing.T) {
	v := New()
	require.Equal(t, gamevariant.RankingModeMax, v.RankingMode())
}

func TestExtractObservationsParsesStatusBlob(t *testing.T) {
	blob := statusBlob{
		CharacterName:  "Ashen One",
		AreaID:         1010,
		IsInvadable:    true,
		SoulLevel:      50,
		WeaponLevel:    5,
		VisitorPool:    1,
		LitBonfires:    []uint32{1, 2, 3},
		AntiCheatFlags: anticheatFlagClientFlagged,
	}
	v := New()
	obs, err := v.ExtractObservations(blob.marshal())
	require.NoError(t, err)
	require.Equal(t, "Ashen One", obs.CharacterName)
	require.EqualValues(t, 1010, obs.CurrentAreaID)
	require.True(t, obs.IsInvadable)
	require.EqualValues(t, 50, obs.SoulLevel)
	require.EqualValues(t, 5, obs.MaxWeaponLevel)
	require.Equal(t, []uint32{1, 2, 3}, obs.LitBonfires)
	require.True(t, obs.AntiCheatFlagged)
}

func TestExtractObservationsNotFlaggedWithoutBit(t *testing.T) {
	blob := statusBlob{AntiCheatFlags: 0x1}
	v := New()
	obs, err := v.ExtractObservations(blob.marshal())
	require.NoError(t, err)
	require.False(t, obs.AntiCheatFlagged)
}
