package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func seedRankedCharacter(t *testing.T, ctx context.Context, characterID uint32, steamID string, score int64) uint32 {
	t.Helper()
	playerID, err := testStore.FindOrCreatePlayer(ctx, steamID)
	require.NoError(t, err)
	require.NoError(t, testStore.CreateOrUpdateCharacter(ctx, CharacterRecord{
		CharacterID: characterID,
		PlayerID:    playerID,
		Name:        steamID,
	}))
	require.NoError(t, testStore.RegisterScore(ctx, 1, RankingEntry{
		PlayerID:    playerID,
		CharacterID: characterID,
		Score:       score,
	}))
	return playerID
}

func TestRegisterScoreUpsertsToLatestValue(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	seedRankedCharacter(t, ctx, 1, "steam:a", 100)

	entry, ok, err := testStore.GetCharacterRanking(ctx, 1, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(100), entry.Score)

	seedRankedCharacter(t, ctx, 1, "steam:a", 250)

	entry, ok, err = testStore.GetCharacterRanking(ctx, 1, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(250), entry.Score)
}

func TestGetCharacterRankingMissingReturnsFalse(t *testing.T) {
	resetTables(t)
	_, ok, err := testStore.GetCharacterRanking(context.Background(), 1, 999)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGetRankingsOrdersByScoreDescending(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	seedRankedCharacter(t, ctx, 1, "steam:low", 10)
	seedRankedCharacter(t, ctx, 2, "steam:high", 99)
	seedRankedCharacter(t, ctx, 3, "steam:mid", 50)

	page, err := testStore.GetRankings(ctx, 1, 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 3)
	require.Equal(t, uint32(2), page[0].CharacterID)
	require.Equal(t, uint32(3), page[1].CharacterID)
	require.Equal(t, uint32(1), page[2].CharacterID)
	require.EqualValues(t, 1, page[0].Rank)
}

func TestGetRankingCount(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	seedRankedCharacter(t, ctx, 1, "steam:one", 10)
	seedRankedCharacter(t, ctx, 2, "steam:two", 20)

	count, err := testStore.GetRankingCount(ctx, 1)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestGetRankingsPaginates(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	for i := uint32(1); i <= 5; i++ {
		seedRankedCharacter(t, ctx, i, "steam:page", int64(i)*10)
	}

	page, err := testStore.GetRankings(ctx, 1, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
}
