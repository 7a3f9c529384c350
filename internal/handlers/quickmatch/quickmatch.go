// Package quickmatch implements the quick-match (undead match) handler
// (spec.md §4.5 "Quick-match handler (undead matches)"). Grounded on
// DS3_QuickMatchManager.cpp's Handle_Request{RegisterQuickMatch,
// UpdateQuickMatch,UnregisterQuickMatch,SearchQuickMatch,JoinQuickMatch,
// AcceptQuickMatch,RejectQuickMatch,SendQuickMatchStart,
// SendQuickMatchResult}.
//
// Unlike the blood-message/bloodstain/ghost/sign handlers, the match
// registry here is a flat in-package map keyed by host player_id
// (spec.md §4.5 "Registry of live Match records keyed by host") rather
// than an internal/cache.Pool: entries aren't area-scoped artifacts that
// need random/recent sampling, just exact lookup-by-host plus a linear
// scan for search.
package quickmatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/config"
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant/ds3"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers"
	"github.com/TLeonardUK/ds3os-sub000/internal/matching"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/session"
	"github.com/TLeonardUK/ds3os-sub000/internal/store"
)

// entry is one registered host, waiting to be matched.
type entry struct {
	HostID      uint32
	AreaID      uint32
	Mode        store.QuickMatchMode
	SoulLevel   int32
	WeaponLevel int32

	// LastSeen is refreshed on register/update, and read by ExpireStale to
	// implement spec.md §4.4 per-tick work item 4's "undead-match expiry"
	// for hosts that stopped sending keepalives without an explicit
	// UnregisterQuickMatch or clean disconnect.
	LastSeen time.Time
}

// modeFromWire maps the wire's raw MatchingMode integer onto
// store.QuickMatchMode; any value other than 1 is treated as duel,
// matching store.QuickMatchDuel's zero value.
func modeFromWire(raw uint32) store.QuickMatchMode {
	if raw == 1 {
		return store.QuickMatchBrawl
	}
	return store.QuickMatchDuel
}

// Handler implements handlers.Handler for the quick-match opcode family.
type Handler struct {
	store    store.Store
	sessions *session.Table
	cfg      config.ShardConfig

	registry map[uint32]*entry // keyed by host player_id

	// pendingJoin tracks, per host, which (guest, character) pair is
	// awaiting an accept/reject, mirroring breakin/visitor's
	// pending-relay maps.
	pendingJoin map[uint32]pendingJoin
}

// pendingJoin is a join request awaiting the host's accept/reject.
type pendingJoin struct {
	GuestPlayerID uint32
	CharacterID   uint32
}

// New builds a quick-match Handler.
func New(st store.Store, sessions *session.Table, cfg config.ShardConfig) *Handler {
	return &Handler{
		store:       st,
		sessions:    sessions,
		cfg:         cfg,
		registry:    make(map[uint32]*entry),
		pendingJoin: make(map[uint32]pendingJoin),
	}
}

func (h *Handler) Handle(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope) handlers.Result {
	switch req := env.Message.(type) {
	case *ds3.RequestRegisterQuickMatch:
		return h.handleRegister(now, sess, env, req)
	case *ds3.RequestUpdateQuickMatch:
		return h.handleUpdate(now, sess, env, req)
	case *ds3.RequestUnregisterQuickMatch:
		return h.handleUnregister(now, sess, env, req)
	case *ds3.RequestSearchQuickMatch:
		return h.handleSearch(now, sess, env, req)
	case *ds3.RequestJoinQuickMatch:
		return h.handleJoin(now, sess, env, req)
	case *ds3.RequestAcceptQuickMatch:
		return h.handleAccept(now, sess, env, req)
	case *ds3.RequestRejectQuickMatch:
		return h.handleReject(now, sess, env, req)
	case *ds3.RequestSendQuickMatchStart:
		return h.handleStart(now, sess, env, req)
	case *ds3.RequestSendQuickMatchResult:
		return h.handleResult(ctx, now, sess, env, req)
	default:
		return handlers.Unhandled
	}
}

// handleRegister enters the caller into the registry as a host. No
// response type exists for RequestRegisterQuickMatch.
func (h *Handler) handleRegister(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestRegisterQuickMatch) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	hostID := sess.Player.PlayerID
	mode := modeFromWire(req.MatchingMode)
	h.registry[hostID] = &entry{HostID: hostID, AreaID: req.AreaID, Mode: mode, SoulLevel: req.SoulLevel, WeaponLevel: req.WeaponLevel, LastSeen: now}
	return handlers.Handled
}

// handleUpdate is a keepalive refresh of the caller's own registry
// entry. No response type exists.
func (h *Handler) handleUpdate(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestUpdateQuickMatch) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	if e, ok := h.registry[sess.Player.PlayerID]; ok {
		e.SoulLevel = req.SoulLevel
		e.WeaponLevel = req.WeaponLevel
		e.LastSeen = now
	}
	return handlers.Handled
}

// ExpireStale removes every registry entry whose host hasn't
// registered/updated within maxAge, implementing the per-tick "undead-match
// expiry" spec.md §4.4 names. Called from the shard loop on every tick.
func (h *Handler) ExpireStale(now time.Time, maxAge time.Duration) {
	for hostID, e := range h.registry {
		if now.Sub(e.LastSeen) > maxAge {
			h.removeHost(hostID)
		}
	}
}

// handleUnregister removes the caller's registry entry. No response
// type exists.
func (h *Handler) handleUnregister(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestUnregisterQuickMatch) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	h.removeHost(sess.Player.PlayerID)
	return handlers.Handled
}

func (h *Handler) removeHost(hostID uint32) {
	delete(h.registry, hostID)
	delete(h.pendingJoin, hostID)
}

// OnLostPlayer drops playerID's registered match and any pending join
// against it, matching spec.md §4.5 "UnregisterQuickMatch or host
// disconnect removes". Called by the shard loop's disconnect
// choreography (spec.md §4.4).
func (h *Handler) OnLostPlayer(playerID uint32) {
	h.removeHost(playerID)
}

// handleSearch filters the registry by mode, area, and the undead-match
// matching table (spec.md §4.5 "if empty, return a single sentinel entry
// (client requires nonempty response)"). On a miss it returns
// Found=false with CandidatePlayerID left at zero, which doubles as the
// sentinel the spec calls for — the recovered SearchQuickMatchResponse
// shape has no separate sentinel-id field to distinguish "no candidate"
// from "candidate 0", but Found already carries that distinction.
func (h *Handler) handleSearch(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestSearchQuickMatch) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	table := h.cfg.MatchingTables["undead_match"]
	mode := modeFromWire(req.MatchingMode)
	caller := matching.Candidate{SoulLevel: sess.Player.SoulLevel, WeaponLevel: sess.Player.MaxWeaponLevel}

	resp := &ds3.SearchQuickMatchResponse{}
	for _, e := range h.registry {
		if e.HostID == sess.Player.PlayerID || e.Mode != mode || e.AreaID != req.AreaID {
			continue
		}
		target := matching.Candidate{SoulLevel: e.SoulLevel, WeaponLevel: e.WeaponLevel}
		if matching.CanMatch(caller, target, false, table, !h.cfg.Features.DisableWeaponLevelMatching) {
			resp.Found = true
			resp.CandidatePlayerID = e.HostID
			break
		}
	}

	if err := sess.Stream.SendResponse(now, env.Index, resp); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

// handleJoin pushes a join request to the host, carrying the guest's
// chosen character along (DS3_QuickMatchManager.cpp's
// Handle_RequestJoinQuickMatch propagates Request->character_id() into
// PushRequestJoinQuickMatch's join_character_id). No response type
// exists for RequestJoinQuickMatch; if the host is not online the guest
// is sent PushRequestRejectQuickMatch instead.
func (h *Handler) handleJoin(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestJoinQuickMatch) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	guestID := sess.Player.PlayerID
	host, online := h.sessions.FindByPlayerID(req.HostPlayerID)
	if !online {
		if err := sess.Stream.Send(now, &ds3.PushRequestRejectQuickMatch{HostPlayerID: req.HostPlayerID}); err != nil {
			return handlers.Errored
		}
		return handlers.Handled
	}
	h.pendingJoin[req.HostPlayerID] = pendingJoin{GuestPlayerID: guestID, CharacterID: req.CharacterID}
	if err := host.Stream.Send(now, &ds3.PushRequestJoinQuickMatch{GuestPlayerID: guestID, CharacterID: req.CharacterID}); err != nil {
		slog.Warn("quickmatch: failed to push join to host", "player_id", req.HostPlayerID, "error", err)
	}
	return handlers.Handled
}

// handleAccept relays acceptance implicitly: there is no
// PushRequestAcceptQuickMatch type in the recovered protocol, so
// acceptance is communicated to the guest only indirectly, by the
// absence of a reject push and by the host's subsequent
// SendQuickMatchStart. This handler's job is limited to clearing the
// pending-join bookkeeping once the host has acted.
func (h *Handler) handleAccept(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestAcceptQuickMatch) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	hostID := sess.Player.PlayerID
	if pending, ok := h.pendingJoin[hostID]; ok && pending.GuestPlayerID == req.GuestPlayerID {
		delete(h.pendingJoin, hostID)
	}
	return handlers.Handled
}

func (h *Handler) handleReject(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestRejectQuickMatch) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	hostID := sess.Player.PlayerID
	if pending, ok := h.pendingJoin[hostID]; !ok || pending.GuestPlayerID != req.GuestPlayerID {
		return handlers.Handled
	}
	delete(h.pendingJoin, hostID)

	if guest, online := h.sessions.FindByPlayerID(req.GuestPlayerID); online {
		if err := guest.Stream.Send(now, &ds3.PushRequestRejectQuickMatch{HostPlayerID: hostID}); err != nil {
			slog.Warn("quickmatch: failed to push reject to guest", "player_id", req.GuestPlayerID, "error", err)
		}
	}
	return handlers.Handled
}

// handleStart removes the match from the registry (spec.md §4.5
// "SendQuickMatchStart: remove the match from the registry").
func (h *Handler) handleStart(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestSendQuickMatchStart) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	callerID := sess.Player.PlayerID
	h.removeHost(callerID)
	h.removeHost(req.OpponentPlayerID)

	if opponent, online := h.sessions.FindByPlayerID(req.OpponentPlayerID); online {
		if err := opponent.Stream.Send(now, &ds3.RequestSendQuickMatchStart{OpponentPlayerID: callerID}); err != nil {
			slog.Warn("quickmatch: failed to relay match start", "player_id", req.OpponentPlayerID, "error", err)
		}
	}
	return handlers.Handled
}

// handleResult reads the character's current rank/xp for the mode from
// the store, adds WinXP, DrawXP, LoseXP or 0 for a disconnect
// (DS3_QuickMatchManager.cpp:520-527's Request->mode()/Request->result()
// switch), carries the xp into the next rank via rankForXP, and persists
// both. The reply carries only the new rank: SendQuickMatchResultResponse
// has no xp field.
func (h *Handler) handleResult(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestSendQuickMatchResult) handlers.Result {
	if sess.Player == nil || sess.Player.CharacterID == 0 {
		return handlers.Errored
	}
	mode := modeFromWire(req.Mode)

	rec, err := h.store.FindCharacter(ctx, sess.Player.CharacterID)
	if err != nil {
		slog.Error("quickmatch: loading character failed", "character_id", sess.Player.CharacterID, "error", err)
		return handlers.Errored
	}
	if rec == nil {
		return handlers.Errored
	}

	rank, xp := rec.QuickmatchDuelRank, rec.QuickmatchDuelXP
	if mode == store.QuickMatchBrawl {
		rank, xp = rec.QuickmatchBrawlRank, rec.QuickmatchBrawlXP
	}

	var gain uint32
	switch req.Result {
	case ds3.QuickMatchResultWin:
		gain = h.cfg.QuickMatch.WinXP
	case ds3.QuickMatchResultDraw:
		gain = h.cfg.QuickMatch.DrawXP
	case ds3.QuickMatchResultLose:
		gain = h.cfg.QuickMatch.LoseXP
	case ds3.QuickMatchResultDisconnect:
		gain = 0
	}
	xp += gain
	rank, xp = rankForXP(xp, h.cfg.QuickMatch.XPTable, rank)

	if err := h.store.UpdateQuickmatchRank(ctx, sess.Player.CharacterID, mode, rank, xp); err != nil {
		slog.Error("quickmatch: persisting rank failed", "character_id", sess.Player.CharacterID, "error", err)
		return handlers.Errored
	}

	if err := sess.Stream.SendResponse(now, env.Index, &ds3.SendQuickMatchResultResponse{NewRank: rank}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

// rankForXP applies xp to a character holding rank floor: whenever xp
// reaches the Threshold of the next rank's row, the character moves up to
// that rank and the threshold is subtracted, so the remainder carries
// over. It returns the new rank and remaining xp; the rank never drops
// below floor. Rows are walked in table order (ascending rank). With the
// default table, rank 0 and xp 120 give rank 1 and xp 20.
func rankForXP(xp uint32, table []config.XPTableEntry, floor uint32) (uint32, uint32) {
	rank := floor
	for _, row := range table {
		if row.Rank == rank+1 && xp >= row.Threshold {
			xp -= row.Threshold
			rank = row.Rank
		}
	}
	return rank, xp
}

var _ handlers.Handler = (*Handler)(nil)
