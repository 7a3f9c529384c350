// Package breakin implements the break-in (invasion) handler (spec.md
// §4.5 "Break-in (invasion) handler"). Grounded on
// DS3_BreakInManager.cpp's Handle_Request{GetBreakInTargetList,
// BreakInTarget,RejectBreakInTarget}.
package breakin

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

// maxTargets caps GetBreakInTargetListResponse's size (spec.md §4.5
// "a capped list"); no dedicated config field names this, so it is a
// fixed constant like the teacher's own magic-number caps.
const maxTargets = 20

// Handler implements handlers.Handler for the invasion-initiation
// opcodes. It holds no live-cache pool: eligibility is recomputed from
// session.Table on every request rather than cached.
type Handler struct {
	sessions *session.Table
	variant  gamevariant.Variant
	cfg      config.ShardConfig

	// pendingInvader tracks, per target player id, who is currently
	// trying to break in to them, so RejectBreakInTarget knows who to
	// relay the rejection to.
	pendingInvader map[uint32]uint32
}

// New builds a break-in Handler.
func New(sessions *session.Table, variant gamevariant.Variant, cfg config.ShardConfig) *Handler {
	return &Handler{sessions: sessions, variant: variant, cfg: cfg, pendingInvader: make(map[uint32]uint32)}
}

func (h *Handler) Handle(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope) handlers.Result {
	switch req := env.Message.(type) {
	case *ds3.RequestGetBreakInTargetList:
		return h.handleGetList(now, sess, env, req)
	case *ds3.RequestBreakInTarget:
		return h.handleBreakIn(now, sess, env, req)
	case *ds3.RequestRejectBreakInTarget:
		return h.handleReject(now, sess, env, req)
	default:
		return handlers.Unhandled
	}
}

// handleGetList filters eligible targets down to the caller's own area:
// RequestGetBreakInTargetList carries a single AreaID rather than a
// recently-played list, so the spec's "optionally filter by caller's
// recently-played areas" collapses to "same area as the request" here.
func (h *Handler) handleGetList(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestGetBreakInTargetList) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	table := gamevariant.MatchingTableFor(h.variant, gamevariant.InteractionInvasion, h.cfg.MatchingTables)
	caller := matching.Candidate{SoulLevel: req.SoulLevel, WeaponLevel: req.WeaponLevel}

	resp := &ds3.GetBreakInTargetListResponse{}
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
		if matching.CanInvade(caller, target, false, table, h.cfg.Features) {
			resp.PlayerIDs = append(resp.PlayerIDs, other.Player.PlayerID)
		}
	}
	if err := sess.Stream.SendResponse(now, env.Index, resp); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

// handleBreakIn implements spec.md §4.5 "if target present, push
// PushRequestBreakInTarget ...; otherwise push
// PushRequestRejectBreakInTarget to caller". RequestBreakInTarget has no
// response type of its own, so a missing target is reported solely via
// the reject push rather than an additional ack.
func (h *Handler) handleBreakIn(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestBreakInTarget) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	invaderID := sess.Player.PlayerID

	target, online := h.sessions.FindByPlayerID(req.TargetPlayerID)
	if !online {
		if err := sess.Stream.Send(now, &ds3.PushRequestRejectBreakInTarget{TargetPlayerID: req.TargetPlayerID}); err != nil {
			return handlers.Errored
		}
		return handlers.Handled
	}

	h.pendingInvader[req.TargetPlayerID] = invaderID
	if err := target.Stream.Send(now, &ds3.PushRequestBreakInTarget{InvaderPlayerID: invaderID}); err != nil {
		slog.Warn("breakin: failed to push break-in to target", "player_id", req.TargetPlayerID, "error", err)
	}
	return handlers.Handled
}

// handleReject relays a decline back to the pending invader (spec.md
// §4.5 "relay rejection to the initiator"). RequestRejectBreakInTarget
// has no response type.
func (h *Handler) handleReject(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestRejectBreakInTarget) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	targetID := sess.Player.PlayerID
	if pending, ok := h.pendingInvader[targetID]; !ok || pending != req.InvaderPlayerID {
		return handlers.Handled
	}
	delete(h.pendingInvader, targetID)

	if invader, online := h.sessions.FindByPlayerID(req.InvaderPlayerID); online {
		if err := invader.Stream.Send(now, &ds3.PushRequestRejectBreakInTarget{TargetPlayerID: targetID}); err != nil {
			slog.Warn("breakin: failed to push reject to invader", "player_id", req.InvaderPlayerID, "error", err)
		}
	}
	return handlers.Handled
}

// OnLostPlayer drops any pending break-in playerID is party to, as either
// the invader or the target, so a later Reject/accept never relays to a
// session that no longer exists. Called by the shard loop's disconnect
// choreography (spec.md §4.4).
func (h *Handler) OnLostPlayer(playerID uint32) {
	delete(h.pendingInvader, playerID)
	for targetID, invaderID := range h.pendingInvader {
		if invaderID == playerID {
			delete(h.pendingInvader, targetID)
		}
	}
}

var _ handlers.Handler = (*Handler)(nil)
