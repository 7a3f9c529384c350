package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBloodMessageCreateFindTrim(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	playerID, err := testStore.FindOrCreatePlayer(ctx, "steam:messenger")
	require.NoError(t, err)

	var ids []uint32
	for i := 0; i < 5; i++ {
		id, err := testStore.CreateBloodMessage(ctx, BlobRecord{
			AreaID:   10,
			PlayerID: playerID,
			Payload:  []byte{byte(i)},
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	found, err := testStore.FindBloodMessages(ctx, 10, 100)
	require.NoError(t, err)
	require.Len(t, found, 5)
	// newest-first
	require.Equal(t, ids[4], found[0].ID)

	require.NoError(t, testStore.TrimBloodMessages(ctx, 10, 2))

	found, err = testStore.FindBloodMessages(ctx, 10, 100)
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.Equal(t, ids[4], found[0].ID)
	require.Equal(t, ids[3], found[1].ID)
}

func TestBloodstainScopedByArea(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	playerID, err := testStore.FindOrCreatePlayer(ctx, "steam:stainer")
	require.NoError(t, err)

	_, err = testStore.CreateBloodstain(ctx, BlobRecord{AreaID: 1, PlayerID: playerID, Payload: []byte("a")})
	require.NoError(t, err)
	_, err = testStore.CreateBloodstain(ctx, BlobRecord{AreaID: 2, PlayerID: playerID, Payload: []byte("b")})
	require.NoError(t, err)

	found, err := testStore.FindBloodstains(ctx, 1, 100)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, []byte("a"), found[0].Payload)
}

func TestGhostCreateFindTrim(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	playerID, err := testStore.FindOrCreatePlayer(ctx, "steam:ghost")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := testStore.CreateGhost(ctx, BlobRecord{AreaID: 5, PlayerID: playerID, Payload: []byte{byte(i)}})
		require.NoError(t, err)
	}

	require.NoError(t, testStore.TrimGhosts(ctx, 5, 1))

	found, err := testStore.FindGhosts(ctx, 5, 100)
	require.NoError(t, err)
	require.Len(t, found, 1)
}
