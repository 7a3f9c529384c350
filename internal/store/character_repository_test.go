package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindCharacterMissingReturnsNilNil(t *testing.T) {
	resetTables(t)
	rec, err := testStore.FindCharacter(context.Background(), 999)
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestCreateOrUpdateCharacterUpserts(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	playerID, err := testStore.FindOrCreatePlayer(ctx, "steam:char-owner")
	require.NoError(t, err)

	require.NoError(t, testStore.CreateOrUpdateCharacter(ctx, CharacterRecord{
		CharacterID: 42,
		PlayerID:    playerID,
		Name:        "Ashen One",
	}))

	rec, err := testStore.FindCharacter(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "Ashen One", rec.Name)
	require.Equal(t, playerID, rec.PlayerID)

	require.NoError(t, testStore.CreateOrUpdateCharacter(ctx, CharacterRecord{
		CharacterID: 42,
		PlayerID:    playerID,
		Name:        "Unkindled",
	}))

	rec, err = testStore.FindCharacter(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, "Unkindled", rec.Name)
}

func TestUpdateQuickmatchRank(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	playerID, err := testStore.FindOrCreatePlayer(ctx, "steam:ranked")
	require.NoError(t, err)
	require.NoError(t, testStore.CreateOrUpdateCharacter(ctx, CharacterRecord{
		CharacterID: 7,
		PlayerID:    playerID,
		Name:        "Champion",
	}))

	require.NoError(t, testStore.UpdateQuickmatchRank(ctx, 7, QuickMatchDuel, 3, 150))
	require.NoError(t, testStore.UpdateQuickmatchRank(ctx, 7, QuickMatchBrawl, 1, 40))

	rec, err := testStore.FindCharacter(ctx, 7)
	require.NoError(t, err)
	require.EqualValues(t, 3, rec.QuickmatchDuelRank)
	require.EqualValues(t, 150, rec.QuickmatchDuelXP)
	require.EqualValues(t, 1, rec.QuickmatchBrawlRank)
	require.EqualValues(t, 40, rec.QuickmatchBrawlXP)
}

func TestCreateOrUpdateCharacterPersistsData(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	playerID, err := testStore.FindOrCreatePlayer(ctx, "steam:data-owner")
	require.NoError(t, err)

	require.NoError(t, testStore.CreateOrUpdateCharacter(ctx, CharacterRecord{
		CharacterID: 99,
		PlayerID:    playerID,
		Name:        "Fire Keeper",
		Data:        []byte{0x01, 0x02, 0x03},
	}))

	rec, err := testStore.FindCharacter(ctx, 99)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, rec.Data)
}
