package session

import (
	"net/netip"
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/constants"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/packet"
	"github.com/TLeonardUK/ds3os-sub000/internal/playerstate"
)

// lifecycleState mirrors the session-level phase, distinct from the
// underlying reliable.Stream's own state: a session can be Active while
// its stream is still Established, then moves to Disconnecting once the
// stream starts closing, per spec.md §4.4 "Disconnect choreography".
type lifecycleState int

const (
	lifecycleActive lifecycleState = iota
	lifecycleDisconnecting
)

// ClientSession is one connected player's game-service connection
// (spec.md §3 ClientSession). It is owned exclusively by its shard's
// single event loop; nothing here is safe for concurrent use, unlike the
// mutex/atomic-heavy grounding file this is adapted from.
type ClientSession struct {
	RemoteAddr netip.AddrPort
	Stream     *message.Stream
	Player     *playerstate.PlayerState

	// Cipher authenticates/decrypts every datagram from RemoteAddr, derived
	// from the AuthTicket consumed at handshake (spec.md §4.1, §4.4). It
	// lives alongside Stream rather than inside it, since the packet-layer
	// cipher and the message-layer framing are deliberately independent
	// seams (spec.md §4.1 vs §4.3).
	Cipher *packet.SessionCipher

	ConnectionStart time.Time
	LastMessageAt   time.Time

	BannedFlag   bool
	DisconnectAt *time.Time

	// ActiveSigns holds the ids of SummonSign records this session owns
	// in the shard's live-cache pool (spec.md §3 "Every SummonSign ...
	// reachable from exactly one ClientSession's active_signs"). The
	// SummonSign records themselves live in the sign handler's cache;
	// this package only tracks ownership so on_lost_player cleanup knows
	// what to remove.
	ActiveSigns []uint32

	lifecycle lifecycleState
}

// New creates an Active ClientSession immediately after a successful
// AuthTicket consumption (spec.md §4.4).
func New(remoteAddr netip.AddrPort, stream *message.Stream, player *playerstate.PlayerState, now time.Time) *ClientSession {
	return &ClientSession{
		RemoteAddr:      remoteAddr,
		Stream:          stream,
		Player:          player,
		ConnectionStart: now,
		LastMessageAt:   now,
		lifecycle:       lifecycleActive,
	}
}

// Touch records that a message was received from this session, resetting
// the idle-timeout clock (spec.md §4.4 per-tick work item 3).
func (c *ClientSession) Touch(now time.Time) {
	c.LastMessageAt = now
}

// Idle reports whether this session has exceeded SessionIdleTimeout since
// its last inbound message.
func (c *ClientSession) Idle(now time.Time) bool {
	return now.Sub(c.LastMessageAt) > constants.SessionIdleTimeout
}

// BeginDisconnect marks the session Disconnecting. It is idempotent: a
// session already disconnecting from an idle timeout is not re-marked by
// a subsequent ban, for example.
func (c *ClientSession) BeginDisconnect(now time.Time) {
	c.ScheduleDisconnect(now, 0)
}

// ScheduleDisconnect is BeginDisconnect with a grace period before the
// actual stream close, e.g. the ≈2s window a ban announcement gets to
// reach the client before the connection drops (spec.md §4.5 boot
// handler, §7 "BannedAtLogin"). Idempotent like BeginDisconnect.
func (c *ClientSession) ScheduleDisconnect(now time.Time, delay time.Duration) {
	if c.lifecycle == lifecycleDisconnecting {
		return
	}
	c.lifecycle = lifecycleDisconnecting
	at := now.Add(delay)
	c.DisconnectAt = &at
}

// Disconnecting reports whether the session has begun its shutdown
// choreography (spec.md §4.4).
func (c *ClientSession) Disconnecting() bool {
	return c.lifecycle == lifecycleDisconnecting
}

// AddSign records a SummonSign id as owned by this session.
func (c *ClientSession) AddSign(id uint32) {
	c.ActiveSigns = append(c.ActiveSigns, id)
}

// RemoveSign drops a SummonSign id from this session's ownership list,
// e.g. once it expires or is consumed.
func (c *ClientSession) RemoveSign(id uint32) {
	for i, existing := range c.ActiveSigns {
		if existing == id {
			c.ActiveSigns = append(c.ActiveSigns[:i], c.ActiveSigns[i+1:]...)
			return
		}
	}
}

// Table owns every live ClientSession for one shard, keyed by remote
// address (spec.md §3 "Exactly one ClientSession per live (token,
// remote_addr) pair"). Grounded on internal/gameserver/clients.go's
// registry-of-clients idiom, stripped of its mutex since a shard's
// sessions are only ever touched by that shard's single event loop.
type Table struct {
	byAddr map[netip.AddrPort]*ClientSession

	// byPlayerID mirrors the teacher's ClientManager.objectIDIndex: an
	// O(1) reverse index so a handler can push a message to an arbitrary
	// other online player by player_id (e.g. a sign summon, a blood
	// message evaluation, a break-in) without scanning every session.
	// Populated once a session's Player is assigned (AssignPlayer) and
	// cleared on removal (ReapClosed).
	byPlayerID map[uint32]*ClientSession
}

// NewTable returns an empty session Table.
func NewTable() *Table {
	return &Table{
		byAddr:     make(map[netip.AddrPort]*ClientSession),
		byPlayerID: make(map[uint32]*ClientSession),
	}
}

// Add registers a freshly created session.
func (t *Table) Add(s *ClientSession) {
	t.byAddr[s.RemoteAddr] = s
	if s.Player != nil {
		t.byPlayerID[s.Player.PlayerID] = s
	}
}

// Get looks up the session for a remote address, if any.
func (t *Table) Get(addr netip.AddrPort) (*ClientSession, bool) {
	s, ok := t.byAddr[addr]
	return s, ok
}

// FindByPlayerID looks up the session currently owned by the given
// player_id, if that player is online on this shard. Grounded on
// internal/gameserver/clients.go's GetClientByObjectID.
func (t *Table) FindByPlayerID(playerID uint32) (*ClientSession, bool) {
	s, ok := t.byPlayerID[playerID]
	return s, ok
}

// AssignPlayer records s's identity in the player_id index. Boot handlers
// call this once RequestWaitForUserLogin has resolved the player, since a
// session is added to the Table before its Player is known.
func (t *Table) AssignPlayer(s *ClientSession) {
	if s.Player != nil {
		t.byPlayerID[s.Player.PlayerID] = s
	}
}

// All returns every currently tracked session, active or disconnecting.
func (t *Table) All() []*ClientSession {
	out := make([]*ClientSession, 0, len(t.byAddr))
	for _, s := range t.byAddr {
		out = append(out, s)
	}
	return out
}

// Count returns the number of live sessions.
func (t *Table) Count() int {
	return len(t.byAddr)
}

// MarkTimedOut walks every session and begins disconnect choreography for
// any whose stream has gone idle (spec.md §4.4 per-tick work item 3).
// Sessions already disconnecting are skipped.
func (t *Table) MarkTimedOut(now time.Time) {
	for _, s := range t.byAddr {
		if s.Disconnecting() {
			continue
		}
		if s.Idle(now) {
			s.BeginDisconnect(now)
		}
	}
}

// ReapClosed moves every Disconnecting session whose stream has fully
// closed out of the live table and returns them so the caller can run
// on_lost_player cleanup exactly once per session (spec.md §4.4
// "Disconnect choreography"). Sessions still mid-close (stream not yet
// Closed) are left in place for a future tick.
func (t *Table) ReapClosed(isClosed func(*ClientSession) bool) []*ClientSession {
	var lost []*ClientSession
	for addr, s := range t.byAddr {
		if !s.Disconnecting() {
			continue
		}
		if !isClosed(s) {
			continue
		}
		delete(t.byAddr, addr)
		if s.Player != nil {
			delete(t.byPlayerID, s.Player.PlayerID)
		}
		lost = append(lost, s)
	}
	return lost
}
