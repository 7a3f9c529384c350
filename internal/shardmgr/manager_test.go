package shardmgr

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TLeonardUK/ds3os-sub000/internal/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return &Manager{
		log: slog.Default(),
		cfg: config.ManagerConfig{
			DefaultShard: config.ShardConfig{
				ShardID:              "default",
				AdvertiseHost:        "game.example.com",
				GamePort:             50000,
				ServerTimeoutSeconds: 600,
			},
			DynamicPortRangeStart: 51000,
			DynamicPortRangeEnd:   51002,
		},
		dynamic:  make(map[string]*dynamicShard),
		nextPort: 51000,
	}
}

func TestAllocatePortLockedSkipsTakenPorts(t *testing.T) {
	m := newTestManager(t)
	m.dynamic["a"] = &dynamicShard{shard: &Shard{cfg: config.ShardConfig{GamePort: 51000}}}

	port, err := m.allocatePortLocked()
	require.NoError(t, err)
	require.Equal(t, 51001, port)
}

func TestAllocatePortLockedExhaustsRange(t *testing.T) {
	m := newTestManager(t)
	m.dynamic["a"] = &dynamicShard{shard: &Shard{cfg: config.ShardConfig{GamePort: 51000}}}
	m.dynamic["b"] = &dynamicShard{shard: &Shard{cfg: config.ShardConfig{GamePort: 51001}}}
	m.dynamic["c"] = &dynamicShard{shard: &Shard{cfg: config.ShardConfig{GamePort: 51002}}}
	m.nextPort = 51000

	_, err := m.allocatePortLocked()
	require.Error(t, err)
}

func TestAllocatePortLockedAdvancesNextPort(t *testing.T) {
	m := newTestManager(t)

	first, err := m.allocatePortLocked()
	require.NoError(t, err)
	require.Equal(t, 51000, first)

	second, err := m.allocatePortLocked()
	require.NoError(t, err)
	require.Equal(t, 51001, second)
}

func TestSweepIdleShardsEvictsStaleKeepalive(t *testing.T) {
	m := newTestManager(t)
	m.cfg.DefaultShard.ServerTimeoutSeconds = 1

	staleDir := t.TempDir()
	keepaliveFile := filepath.Join(staleDir, ".keepalive")
	require.NoError(t, os.WriteFile(keepaliveFile, nil, 0o644))
	stale := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(keepaliveFile, stale, stale))

	var cancelled bool
	m.dynamic["stale"] = &dynamicShard{
		shard:  &Shard{cfg: config.ShardConfig{ShardID: "stale"}},
		cancel: func() { cancelled = true },
		dir:    staleDir,
	}

	m.sweepIdleShards()

	require.True(t, cancelled)
	require.NotContains(t, m.dynamic, "stale")
	require.NoDirExists(t, staleDir)
}

func TestSweepIdleShardsKeepsFreshKeepalive(t *testing.T) {
	m := newTestManager(t)
	m.cfg.DefaultShard.ServerTimeoutSeconds = 600

	freshDir := t.TempDir()
	keepaliveFile := filepath.Join(freshDir, ".keepalive")
	require.NoError(t, os.WriteFile(keepaliveFile, nil, 0o644))

	m.dynamic["fresh"] = &dynamicShard{
		shard: &Shard{cfg: config.ShardConfig{ShardID: "fresh"}},
		cancel: func() {
			t.Fatal("fresh shard must not be evicted")
		},
		dir: freshDir,
	}

	m.sweepIdleShards()

	require.Contains(t, m.dynamic, "fresh")
	require.DirExists(t, freshDir)
}

func TestSweepIdleShardsTreatsMissingKeepaliveAsIdle(t *testing.T) {
	m := newTestManager(t)
	m.cfg.DefaultShard.ServerTimeoutSeconds = 600

	dir := t.TempDir()
	var cancelled bool
	m.dynamic["nokeepalive"] = &dynamicShard{
		shard:  &Shard{cfg: config.ShardConfig{ShardID: "nokeepalive"}},
		cancel: func() { cancelled = true },
		dir:    dir,
	}

	m.sweepIdleShards()

	require.True(t, cancelled, "a shard with no .keepalive file at all must be treated as idle")
}

func TestShardSetIncludesDefaultAndDynamicShards(t *testing.T) {
	m := newTestManager(t)
	m.dynamic["d1"] = &dynamicShard{shard: &Shard{cfg: config.ShardConfig{
		ShardID:       "d1",
		AdvertiseHost: "game.example.com",
		GamePort:      51000,
	}}}

	entries := m.shardSet()

	require.Len(t, entries, 2)
	ids := []string{entries[0].ShardID, entries[1].ShardID}
	require.ElementsMatch(t, []string{"default", "d1"}, ids)
	for _, e := range entries {
		require.NotEmpty(t, e.Timestamp)
	}
}

func TestEvictionLoopStopsOnContextCancel(t *testing.T) {
	m := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.evictionLoop(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
