// Package visitor implements the visitor (coop covenant) handler
// (spec.md §4.5 "Visitor handler"): same shape as break-in, keyed by
// visitor pool rather than the invasion table. Grounded on
// DS3_VisitorManager.cpp's Handle_Request{GetVisitorList,Visit,
// RejectVisit}.
package visitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/config"
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant"
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant/ds3"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers"
	"github.com/TLeonardUK/ds3os-sub000/internal/matching"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/session"
)

// maxTargets caps GetVisitorListResponse's size, mirroring breakin's cap.
const maxTargets = 20

// Handler implements handlers.Handler for the visitor-summon opcodes.
type Handler struct {
	sessions *session.Table
	variant  gamevariant.Variant
	cfg      config.ShardConfig

	// pendingVisitor tracks, per host player id, who is currently
	// visiting them, so RejectVisit can relay and so a later session
	// teardown knows which host to notify via PushRequestRemoveVisitor.
	pendingVisitor map[uint32]uint32
}

// New builds a visitor Handler.
func New(sessions *session.Table, variant gamevariant.Variant, cfg config.ShardConfig) *Handler {
	return &Handler{sessions: sessions, variant: variant, cfg: cfg, pendingVisitor: make(map[uint32]uint32)}
}

func (h *Handler) Handle(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope) handlers.Result {
	switch req := env.Message.(type) {
	case *ds3.RequestGetVisitorList:
		return h.handleGetList(now, sess, env, req)
	case *ds3.RequestVisit:
		return h.handleVisit(now, sess, env, req)
	case *ds3.RequestRejectVisit:
		return h.handleReject(now, sess, env, req)
	default:
		return handlers.Unhandled
	}
}

func (h *Handler) handleGetList(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestGetVisitorList) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	table := gamevariant.MatchingTableFor(h.variant, gamevariant.InteractionVisitor, h.cfg.MatchingTables)
	caller := matching.Candidate{
		SoulLevel:   req.SoulLevel,
		WeaponLevel: req.WeaponLevel,
		VisitorPool: matching.VisitorPool(req.VisitorPool),
	}

	resp := &ds3.GetVisitorListResponse{}
	for _, other := range h.sessions.All() {
		if len(resp.PlayerIDs) >= maxTargets {
			break
		}
		if other == sess || other.Player == nil || !other.Player.HasCompleteStatus() {
			continue
		}
		if other.Player.CurrentAreaID != req.AreaID {
			continue
		}
		target := other.Player.Candidate()
		if matching.CanVisit(caller, target, false, table, h.cfg.Features) {
			resp.PlayerIDs = append(resp.PlayerIDs, other.Player.PlayerID)
		}
	}
	if err := sess.Stream.SendResponse(now, env.Index, resp); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

// handleVisit notifies the target host of the incoming visitor. No
// response type exists for RequestVisit; as in break-in, an offline
// target is reported to the caller with PushRequestRejectVisit.
func (h *Handler) handleVisit(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestVisit) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	visitorID := sess.Player.PlayerID

	target, online := h.sessions.FindByPlayerID(req.TargetPlayerID)
	if !online {
		if err := sess.Stream.Send(now, &ds3.PushRequestRejectVisit{TargetPlayerID: req.TargetPlayerID}); err != nil {
			return handlers.Errored
		}
		return handlers.Handled
	}

	h.pendingVisitor[req.TargetPlayerID] = visitorID
	if err := target.Stream.Send(now, &ds3.PushRequestVisit{VisitorPlayerID: visitorID}); err != nil {
		slog.Warn("visitor: failed to push visit to target", "player_id", req.TargetPlayerID, "error", err)
	}
	return handlers.Handled
}

func (h *Handler) handleReject(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestRejectVisit) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	hostID := sess.Player.PlayerID
	if pending, ok := h.pendingVisitor[hostID]; !ok || pending != req.VisitorPlayerID {
		return handlers.Handled
	}
	delete(h.pendingVisitor, hostID)

	if visitorSess, online := h.sessions.FindByPlayerID(req.VisitorPlayerID); online {
		if err := visitorSess.Stream.Send(now, &ds3.PushRequestRejectVisit{TargetPlayerID: hostID}); err != nil {
			slog.Warn("visitor: failed to push reject to visitor", "player_id", req.VisitorPlayerID, "error", err)
		}
	}
	return handlers.Handled
}

// EndVisit notifies hostID that visitorID's visit has concluded (spec.md
// §4.5 "the accept path ends with a server-initiated
// PushRequestRemoveVisitor"). The recovered protocol has no explicit
// accept message — a visit that isn't rejected simply runs until the
// visitor's own session ends — so this is called from on_lost_player
// cleanup when a session with a pending outbound visit disconnects,
// rather than from a dedicated accept handler.
func (h *Handler) EndVisit(now time.Time, hostID, visitorID uint32) {
	if pending, ok := h.pendingVisitor[hostID]; !ok || pending != visitorID {
		return
	}
	delete(h.pendingVisitor, hostID)
	if host, online := h.sessions.FindByPlayerID(hostID); online {
		if err := host.Stream.Send(now, &ds3.PushRequestRemoveVisitor{VisitorPlayerID: visitorID}); err != nil {
			slog.Warn("visitor: failed to push remove-visitor to host", "player_id", hostID, "error", err)
		}
	}
}

// OnLostPlayer ends every visit playerID is a party to, whichever side it
// disconnected on: as the visitor (scans pendingVisitor for its id) or as
// the host (drops the entry directly, since the host leaving makes the
// in-flight visit moot). Called by the shard loop's disconnect
// choreography (spec.md §4.4).
func (h *Handler) OnLostPlayer(now time.Time, playerID uint32) {
	delete(h.pendingVisitor, playerID)
	for hostID, visitorID := range h.pendingVisitor {
		if visitorID == playerID {
			h.EndVisit(now, hostID, visitorID)
		}
	}
}

var _ handlers.Handler = (*Handler)(nil)
