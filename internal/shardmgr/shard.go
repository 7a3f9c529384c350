// Package shardmgr hosts the per-shard cooperative event loop (spec.md
// §4.4, §5): one goroutine per shard owns a UDP socket, every
// ClientSession, and the ordered handler chain, and drives the six-item
// per-tick work list. Grounded on internal/gameserver/server.go's
// accept-loop-plus-per-connection-state idiom, adapted from TCP's
// one-goroutine-per-connection to UDP's one-goroutine-per-shard since
// spec.md §5 requires "a single cooperative event loop per shard".
package shardmgr

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/TLeonardUK/ds3os-sub000/internal/anticheat"
	"github.com/TLeonardUK/ds3os-sub000/internal/config"
	"github.com/TLeonardUK/ds3os-sub000/internal/constants"
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers/bloodmessage"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers/bloodstain"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers/boot"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers/breakin"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers/ghost"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers/logging"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers/misc"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers/playerdata"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers/quickmatch"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers/ranking"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers/sign"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers/visitor"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/packet"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/reliable"
	"github.com/TLeonardUK/ds3os-sub000/internal/session"
	"github.com/TLeonardUK/ds3os-sub000/internal/store"
	"github.com/TLeonardUK/ds3os-sub000/internal/webhook"
)

// maxConcurrentPrimeFetches bounds how many areas a Shard primes from the
// durable store concurrently at startup, so a shard configured with a
// long PrimeAreaIDs list doesn't open hundreds of simultaneous store
// round-trips (SPEC_FULL.md §3 DOMAIN STACK: golang.org/x/sync/semaphore
// for "bounded concurrent store calls during cache priming").
const maxConcurrentPrimeFetches = 8

// Shard is one game-service endpoint: one UDP socket, one player
// population, one durable-store connection. A shard owns no goroutines of
// its own beyond the one Run's caller provides; everything inside is
// single-threaded cooperative state, matching spec.md §5's "single
// cooperative event loop per shard, whether backed by one goroutine or an
// explicit poll loop".
type Shard struct {
	ID  string
	cfg config.ShardConfig

	variant gamevariant.Variant
	store   store.Store
	conn    net.PacketConn

	sessions *session.Table
	tickets  *session.TicketTable
	scanner  *anticheat.Scanner
	notifier *webhook.Notifier

	// handlerChain is tried in spec.md §4.5's declared order for every
	// inbound request/push envelope; the first Handled/Errored result
	// wins, Unhandled falls through to the next entry.
	handlerChain []handlers.Handler

	// Direct references to the handlers whose on_lost_player/expiry
	// surface isn't part of the generic handlers.Handler interface
	// (spec.md §4.4 "Disconnect choreography", per-tick work item 4).
	signHandler       *sign.Handler
	visitorHandler    *visitor.Handler
	breakinHandler    *breakin.Handler
	quickmatchHandler *quickmatch.Handler

	lastAntiCheatScan time.Time

	keepaliveFile string

	log *slog.Logger
}

// New constructs a Shard bound to its UDP port and wires every handler
// package against the shared store/sessions/config, but does not yet
// prime caches or start serving; call Prime then Run.
func New(cfg config.ShardConfig, variant gamevariant.Variant, st store.Store, notifier *webhook.Notifier) (*Shard, error) {
	addr := fmt.Sprintf("%s:%d", cfg.BindAddress, cfg.GamePort)
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("shard %s: binding %s: %w", cfg.ShardID, addr, err)
	}

	sessions := session.NewTable()

	ghostHandler := ghost.New(st, cfg)
	signHandler := sign.New(sessions, variant, cfg)
	visitorHandler := visitor.New(sessions, variant, cfg)
	breakinHandler := breakin.New(sessions, variant, cfg)
	quickmatchHandler := quickmatch.New(st, sessions, cfg)

	s := &Shard{
		ID:       cfg.ShardID,
		cfg:      cfg,
		variant:  variant,
		store:    st,
		conn:     conn,
		sessions: sessions,
		tickets:  session.NewTicketTable(),
		scanner:  anticheat.NewScanner(cfg.AntiCheat, anticheat.DefaultTriggers()...),
		notifier: notifier,

		signHandler:       signHandler,
		visitorHandler:    visitorHandler,
		breakinHandler:    breakinHandler,
		quickmatchHandler: quickmatchHandler,

		keepaliveFile: filepath.Join(cfg.StateDir, ".keepalive"),

		log: slog.With("shard", cfg.ShardID),
	}

	// Order matches spec.md §4.5's handler list; boot must run first since
	// it resolves RequestWaitForUserLogin (the message that assigns
	// sess.Player), and logging/misc run last since they never gate on a
	// player identity.
	s.handlerChain = []handlers.Handler{
		boot.New(st, sessions, cfg),
		playerdata.New(st, variant),
		bloodmessage.New(st, sessions, cfg),
		bloodstain.New(st, ghostHandler, cfg),
		ghostHandler,
		signHandler,
		breakinHandler,
		visitorHandler,
		quickmatchHandler,
		ranking.New(st, variant),
		misc.New(st, sessions),
		logging.New(st, notifier),
	}

	return s, nil
}

// IssueTicket hands a freshly minted AuthTicket to the caller (normally
// the login front-end, out-of-band) so a client's first game-service
// datagram can be authenticated (spec.md §4.4, §6).
func (s *Shard) IssueTicket(now time.Time, token uint64, key [16]byte) {
	s.tickets.Issue(now, token, key)
}

// Addr returns the shard's bound UDP address, used for advertisement
// (spec.md §4.8).
func (s *Shard) Addr() net.Addr {
	return s.conn.LocalAddr()
}

// Prime loads the live-cache pools from the durable store before the
// first tick (spec.md §4.6), fetching at most maxConcurrentPrimeFetches
// areas concurrently per artifact kind.
func (s *Shard) Prime(ctx context.Context) error {
	type primer interface {
		Prime(ctx context.Context, areaIDs []uint32, countPerArea int) error
	}

	kinds := map[string]primer{}
	for _, h := range s.handlerChain {
		switch v := h.(type) {
		case *bloodmessage.Handler:
			kinds["bloodmessage"] = v
		case *bloodstain.Handler:
			kinds["bloodstain"] = v
		case *ghost.Handler:
			kinds["ghost"] = v
		}
	}

	sem := semaphore.NewWeighted(maxConcurrentPrimeFetches)
	for name, p := range kinds {
		poolCfg := s.cfg.Pools[name]
		if len(s.cfg.PrimeAreaIDs) == 0 || poolCfg.PrimeCountPerArea <= 0 {
			continue
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		err := p.Prime(ctx, s.cfg.PrimeAreaIDs, poolCfg.PrimeCountPerArea)
		sem.Release(1)
		if err != nil {
			return fmt.Errorf("priming %s cache: %w", name, err)
		}
	}
	return nil
}

// Run drives the shard's receive/tick loop until ctx is cancelled.
// Grounded on internal/gameserver/server.go's Serve, replacing its
// accept-a-TCP-connection loop with "read one UDP datagram, route it to
// the owning session (or attempt a handshake), tick on a fixed interval".
func (s *Shard) Run(ctx context.Context) error {
	defer s.conn.Close()

	ticker := time.NewTicker(constants.TickInterval)
	defer ticker.Stop()

	buf := make([]byte, constants.MaxDatagramSize)
	deadline := constants.TickInterval

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.conn.SetReadDeadline(time.Now().Add(deadline))
		n, remote, err := s.conn.ReadFrom(buf)
		now := time.Now()
		if err == nil {
			s.handleDatagram(now, remote, append([]byte(nil), buf[:n]...))
		} else if ne, ok := err.(net.Error); !ok || !ne.Timeout() {
			return fmt.Errorf("shard %s: reading socket: %w", s.ID, err)
		}

		select {
		case <-ticker.C:
			s.tick(ctx, now)
		default:
		}
	}
}

// handleDatagram routes one received datagram to its session, performing
// the handshake if remote has none yet (spec.md §4.4, §6).
func (s *Shard) handleDatagram(now time.Time, remote net.Addr, datagram []byte) {
	addrPort, err := addrToAddrPort(remote)
	if err != nil {
		return
	}

	sess, ok := s.sessions.Get(addrPort)
	if !ok {
		sess, datagram = s.handshake(now, addrPort, datagram)
		if sess == nil {
			return
		}
		if len(datagram) == 0 {
			return
		}
	}

	p, err := packet.Decode(sess.Cipher, datagram)
	if err != nil {
		return // unauthenticated/malformed datagram from a known address; drop (spec.md §7)
	}

	sess.Touch(now)
	sess.Stream.Deliver(now, p)
	s.touchKeepalive(now)
}

// handshake consumes the cleartext AuthTicket token carried in the first
// 8 bytes of a datagram from an unrecognized address, derives the
// session's cipher from the ticket's symmetric key, and constructs the
// new ClientSession (spec.md §4.4, §6 scenario 1). Returns the new
// session and any trailing bytes still needing decode, or (nil, nil) if
// the datagram didn't carry a valid, unconsumed ticket.
func (s *Shard) handshake(now time.Time, addr netip.AddrPort, datagram []byte) (*session.ClientSession, []byte) {
	token, ok := session.ParseToken(datagram)
	if !ok {
		return nil, nil
	}
	ticket, ok := s.tickets.Consume(now, token)
	if !ok {
		return nil, nil
	}

	cipher, err := packet.NewSessionCipher(ticket.SymmetricKey[:])
	if err != nil {
		s.log.Error("deriving session cipher", "error", err)
		return nil, nil
	}

	rs := reliable.NewStream(cipher, now)
	ms := message.NewStream(rs, s.variant.Registry())

	sess := session.New(addr, ms, nil, now)
	sess.Cipher = cipher
	s.sessions.Add(sess)

	return sess, datagram[8:]
}

// tick runs the six-item per-tick work list (spec.md §4.4 "Per-tick
// work"): (1) poll every stream and dispatch newly delivered envelopes,
// (2) flush outbound datagrams, (3) mark idle sessions for disconnect,
// (4) expire stale quick-match registrations, (5) run the anti-cheat
// scan on its own cadence, (6) expire stale, never-consumed AuthTickets.
func (s *Shard) tick(ctx context.Context, now time.Time) {
	for _, sess := range s.sessions.All() {
		s.pollSession(ctx, now, sess)
		s.flushOutbound(sess)
	}

	s.sessions.MarkTimedOut(now)

	for _, lost := range s.sessions.ReapClosed(func(sess *session.ClientSession) bool {
		return sess.Stream.State() == reliable.StateClosed
	}) {
		s.onLostPlayer(ctx, lost)
	}

	s.quickmatchHandler.ExpireStale(now, constants.QuickMatchStaleTimeout)

	if now.Sub(s.lastAntiCheatScan) >= constants.AntiCheatScanInterval {
		s.lastAntiCheatScan = now
		for _, sess := range s.sessions.All() {
			s.runAntiCheatScan(ctx, now, sess)
		}
	}

	s.tickets.ExpireStale(now)
}

// pollSession drives sess's message.Stream and dispatches every envelope
// it yielded through the handler chain in order (spec.md §4.3, §4.5).
func (s *Shard) pollSession(ctx context.Context, now time.Time, sess *session.ClientSession) {
	sess.Stream.Poll(now)

	for _, env := range sess.Stream.Recv() {
		s.dispatch(ctx, now, sess, env)
	}
}

func (s *Shard) dispatch(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope) {
	for _, h := range s.handlerChain {
		switch h.Handle(ctx, now, sess, env) {
		case handlers.Handled:
			return
		case handlers.Errored:
			s.log.Warn("handler errored, closing session", "opcode", env.Opcode, "remote", sess.RemoteAddr)
			sess.BeginDisconnect(now)
			return
		case handlers.Unhandled:
			continue
		}
	}
	s.log.Warn("unhandled opcode", "opcode", env.Opcode, "remote", sess.RemoteAddr)
}

// flushOutbound writes every datagram sess's reliable stream has queued,
// and if the stream has scheduled its own close, arms it once the grace
// period (if any) has elapsed.
func (s *Shard) flushOutbound(sess *session.ClientSession) {
	for _, datagram := range sess.Stream.Outbound() {
		s.conn.WriteTo(datagram, netAddrFor(sess.RemoteAddr))
	}
	if sess.Disconnecting() && sess.DisconnectAt != nil && !time.Now().Before(*sess.DisconnectAt) {
		sess.Stream.Close(time.Now())
	}
}

// onLostPlayer runs the disconnect-choreography cleanup spec.md §4.4
// describes: every artifact a session owned in another handler's
// live-cache pool is released so it doesn't outlive its owner.
func (s *Shard) onLostPlayer(ctx context.Context, sess *session.ClientSession) {
	now := time.Now()
	s.signHandler.RemoveOwned(now, sess.ActiveSigns)

	if sess.Player == nil {
		return
	}
	playerID := sess.Player.PlayerID
	s.visitorHandler.OnLostPlayer(now, playerID)
	s.breakinHandler.OnLostPlayer(playerID)
	s.quickmatchHandler.OnLostPlayer(playerID)
}

// runAntiCheatScan evaluates sess's anti-cheat triggers, persists any new
// penalty, and, on a ban verdict, marks the session for disconnect after
// the boot handler's next announce-list poll delivers the ban message
// (spec.md §4.7, §4.5 boot handler, §7 "BannedAtLogin").
func (s *Shard) runAntiCheatScan(ctx context.Context, now time.Time, sess *session.ClientSession) {
	if sess.Player == nil {
		return
	}

	before := sess.Player.AntiCheat.Penalty
	result := s.scanner.Scan(now, sess.Player)
	delta := sess.Player.AntiCheat.Penalty - before

	if delta > 0 {
		if err := s.store.AddAntiCheatPenalty(ctx, sess.Player.SteamID, delta); err != nil {
			s.log.Error("persisting anti-cheat penalty", "error", err, "steam_id", sess.Player.SteamID)
		}
	}

	if len(result.Fired) == 0 {
		return
	}

	origin := webhook.Origin{
		PlayerID:      sess.Player.PlayerID,
		SteamID:       sess.Player.SteamID,
		CharacterName: sess.Player.CharacterName,
	}
	s.notifier.Notify(now, origin, webhook.NoticeAntiCheat,
		fmt.Sprintf("anti-cheat trigger fired for player %d", sess.Player.PlayerID), nil, "")

	if result.ShouldBan {
		if err := s.store.BanPlayer(ctx, sess.Player.SteamID); err != nil {
			s.log.Error("banning player", "error", err, "steam_id", sess.Player.SteamID)
			return
		}
		sess.BannedFlag = true
	}
}

// touchKeepalive updates the shard's .keepalive file mtime on every
// handled message, so a shard manager can tell a dynamic shard apart from
// one that's gone idle (spec.md §4.8, §6).
func (s *Shard) touchKeepalive(now time.Time) {
	if s.keepaliveFile == "" {
		return
	}
	if err := os.Chtimes(s.keepaliveFile, now, now); err != nil {
		f, createErr := os.Create(s.keepaliveFile)
		if createErr == nil {
			f.Close()
		}
	}
}
