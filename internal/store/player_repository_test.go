package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindOrCreatePlayerIsIdempotent(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	first, err := testStore.FindOrCreatePlayer(ctx, "steam:1")
	require.NoError(t, err)
	require.NotZero(t, first)

	second, err := testStore.FindOrCreatePlayer(ctx, "steam:1")
	require.NoError(t, err)
	require.Equal(t, first, second)

	other, err := testStore.FindOrCreatePlayer(ctx, "steam:2")
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func TestBanPlayerAndIsBanned(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	_, err := testStore.FindOrCreatePlayer(ctx, "steam:banned")
	require.NoError(t, err)

	banned, err := testStore.IsBanned(ctx, "steam:banned")
	require.NoError(t, err)
	require.False(t, banned)

	require.NoError(t, testStore.BanPlayer(ctx, "steam:banned"))

	banned, err = testStore.IsBanned(ctx, "steam:banned")
	require.NoError(t, err)
	require.True(t, banned)
}

func TestIsBannedUnknownSteamIDIsFalse(t *testing.T) {
	resetTables(t)
	banned, err := testStore.IsBanned(context.Background(), "steam:unknown")
	require.NoError(t, err)
	require.False(t, banned)
}

func TestAntiCheatPenaltyAccumulates(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	_, err := testStore.FindOrCreatePlayer(ctx, "steam:cheater")
	require.NoError(t, err)

	penalty, err := testStore.GetAntiCheatPenalty(ctx, "steam:cheater")
	require.NoError(t, err)
	require.Zero(t, penalty)

	require.NoError(t, testStore.AddAntiCheatPenalty(ctx, "steam:cheater", 1.5))
	require.NoError(t, testStore.AddAntiCheatPenalty(ctx, "steam:cheater", 2.5))

	penalty, err = testStore.GetAntiCheatPenalty(ctx, "steam:cheater")
	require.NoError(t, err)
	require.Equal(t, 4.0, penalty)
}

func TestAddStatisticAccumulatesPerPlayer(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	playerID, err := testStore.FindOrCreatePlayer(ctx, "steam:stats")
	require.NoError(t, err)

	require.NoError(t, testStore.AddStatistic(ctx, playerID, "deaths", 1))
	require.NoError(t, testStore.AddStatistic(ctx, playerID, "deaths", 2))
	require.NoError(t, testStore.AddStatistic(ctx, playerID, "kills", 5))

	var deaths, kills int64
	require.NoError(t, testStore.Pool().QueryRow(ctx,
		"SELECT value FROM player_statistics WHERE player_id = $1 AND key = 'deaths'", playerID).Scan(&deaths))
	require.NoError(t, testStore.Pool().QueryRow(ctx,
		"SELECT value FROM player_statistics WHERE player_id = $1 AND key = 'kills'", playerID).Scan(&kills))
	require.Equal(t, int64(3), deaths)
	require.Equal(t, int64(5), kills)
}

func TestAddGlobalStatisticAccumulates(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	require.NoError(t, testStore.AddGlobalStatistic(ctx, "invasions", 1))
	require.NoError(t, testStore.AddGlobalStatistic(ctx, "invasions", 4))

	var value int64
	require.NoError(t, testStore.Pool().QueryRow(ctx,
		"SELECT value FROM global_statistics WHERE key = 'invasions'").Scan(&value))
	require.Equal(t, int64(5), value)
}
