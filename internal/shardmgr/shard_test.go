package shardmgr

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TLeonardUK/ds3os-sub000/internal/session"
)

func TestTouchKeepaliveCreatesFileWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".keepalive")
	s := &Shard{keepaliveFile: path}

	s.touchKeepalive(time.Now())

	require.FileExists(t, path)
}

func TestTouchKeepaliveUpdatesMtime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".keepalive")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	s := &Shard{keepaliveFile: path}
	now := time.Now()
	s.touchKeepalive(now)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.WithinDuration(t, now, info.ModTime(), time.Second)
}

func TestTouchKeepaliveNoopWithoutConfiguredPath(t *testing.T) {
	s := &Shard{}
	// Must not panic when no state dir was configured.
	s.touchKeepalive(time.Now())
}

func TestIssueTicketMakesTokenConsumable(t *testing.T) {
	s := &Shard{tickets: session.NewTicketTable()}
	now := time.Now()
	key := [16]byte{1, 2, 3}

	s.IssueTicket(now, 0xDEADBEEF, key)

	ticket, ok := s.tickets.Consume(now, 0xDEADBEEF)
	require.True(t, ok)
	require.Equal(t, key, ticket.SymmetricKey)

	_, ok = s.tickets.Consume(now, 0xDEADBEEF)
	require.False(t, ok, "a ticket must not be consumable twice")
}
