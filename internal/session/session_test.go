package session

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/packet"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/reliable"
	"github.com/TLeonardUK/ds3os-sub000/internal/playerstate"
)

func newTestSession(t *testing.T, now time.Time) *ClientSession {
	t.Helper()
	cipher, err := packet.NewSessionCipher(make([]byte, 16))
	require.NoError(t, err)

	rs := reliable.NewStream(cipher, now)
	stream := message.NewStream(rs, message.NewRegistry())
	player := playerstate.New("steam:1", 1)
	addr := netip.MustParseAddrPort("127.0.0.1:12345")

	return New(addr, stream, player, now)
}

func TestNewSessionIsActiveAndNotIdle(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)

	require.False(t, s.Disconnecting())
	require.False(t, s.Idle(now))
}

func TestTouchResetsIdleClock(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)

	later := now.Add(90 * time.Second)
	require.True(t, s.Idle(later))

	s.Touch(later)
	require.False(t, s.Idle(later))
}

func TestBeginDisconnectIsIdempotent(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)

	s.BeginDisconnect(now)
	first := s.DisconnectAt

	s.BeginDisconnect(now.Add(time.Second))
	require.Equal(t, first, s.DisconnectAt, "a second BeginDisconnect must not move the timestamp")
}

func TestActiveSignsAddAndRemove(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)

	s.AddSign(1000)
	s.AddSign(1001)
	require.Equal(t, []uint32{1000, 1001}, s.ActiveSigns)

	s.RemoveSign(1000)
	require.Equal(t, []uint32{1001}, s.ActiveSigns)
}

func TestTableMarkTimedOutBeginsDisconnectOnlyForIdleSessions(t *testing.T) {
	now := time.Now()
	table := NewTable()

	fresh := newTestSession(t, now)
	fresh.RemoteAddr = netip.MustParseAddrPort("127.0.0.1:1")
	table.Add(fresh)

	stale := newTestSession(t, now)
	stale.RemoteAddr = netip.MustParseAddrPort("127.0.0.1:2")
	table.Add(stale)

	later := now.Add(90 * time.Second)
	fresh.Touch(later)

	table.MarkTimedOut(later)

	require.False(t, fresh.Disconnecting())
	require.True(t, stale.Disconnecting())
}

func TestTableReapClosedOnlyRemovesClosedDisconnectingSessions(t *testing.T) {
	now := time.Now()
	table := NewTable()

	s := newTestSession(t, now)
	table.Add(s)
	require.Equal(t, 1, table.Count())

	lost := table.ReapClosed(func(*ClientSession) bool { return false })
	require.Empty(t, lost)
	require.Equal(t, 1, table.Count())

	s.BeginDisconnect(now)
	lost = table.ReapClosed(func(*ClientSession) bool { return true })
	require.Len(t, lost, 1)
	require.Equal(t, 0, table.Count())

	_, ok := table.Get(s.RemoteAddr)
	require.False(t, ok)
}
