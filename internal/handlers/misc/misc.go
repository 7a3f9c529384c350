// Package misc implements the covenant-bell and player-to-player relay
// opcodes (spec.md §4.5 "Misc handler"). Grounded on
// DS3_MiscManager.cpp's Handle_Request{NotifyRingBell,
// SendMessageToPlayers}.
package misc

import (
	"context"
	"log/slog"
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/constants"
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant/ds3"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/session"
	"github.com/TLeonardUK/ds3os-sub000/internal/store"
)

// bellListeningAreas is the bell's valid listening zones (spec.md §4.5
// "a hard-coded set"), grounded on DS3_MiscManager.cpp's own hard-coded
// std::unordered_set<DS3_OnlineAreaId> of the Archdragon Peak cluster
// where the great belfry's bell can be heard. The recovered source does
// not carry the DS3_OnlineAreaId enum's numeric values, so these are
// named placeholders standing in for that cluster rather than the
// original's exact constants.
var bellListeningAreas = map[uint32]struct{}{
	archdragonPeakStart:               {},
	archdragonPeak:                    {},
	archdragonPeakAncientWyvern:       {},
	archdragonPeakDragonkinMausoleum:  {},
	archdragonPeakNamelessKingBonfire: {},
	archdragonPeakSecondWyvern:        {},
	archdragonPeakGreatBelfry:         {},
	archdragonPeakMausoleumLift:       {},
}

const (
	archdragonPeakStart uint32 = 1_040_000 + iota
	archdragonPeak
	archdragonPeakAncientWyvern
	archdragonPeakDragonkinMausoleum
	archdragonPeakNamelessKingBonfire
	archdragonPeakSecondWyvern
	archdragonPeakGreatBelfry
	archdragonPeakMausoleumLift
)

// Handler implements handlers.Handler for NotifyRingBell and
// SendMessageToPlayers.
type Handler struct {
	store    store.Store
	sessions *session.Table
}

// New builds a misc Handler.
func New(st store.Store, sessions *session.Table) *Handler {
	return &Handler{store: st, sessions: sessions}
}

func (h *Handler) Handle(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope) handlers.Result {
	switch req := env.Message.(type) {
	case *ds3.RequestNotifyRingBell:
		return h.handleRingBell(ctx, now, sess, env, req)
	case *ds3.RequestSendMessageToPlayers:
		return h.handleSendMessage(now, sess, env, req)
	default:
		return handlers.Unhandled
	}
}

// handleRingBell fans the ring out to every session currently in one of
// the bell's listening zones, then folds a global and per-player
// statistic (DS3_MiscManager.cpp "Bell/TotalBellRings").
func (h *Handler) handleRingBell(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestNotifyRingBell) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	ringerID := sess.Player.PlayerID

	for _, other := range h.sessions.All() {
		if other == sess || other.Player == nil {
			continue
		}
		if _, listening := bellListeningAreas[other.Player.CurrentAreaID]; !listening {
			continue
		}
		push := &ds3.PushRequestNotifyRingBell{RingerPlayerID: ringerID, AreaID: req.AreaID, Data: req.Data}
		if err := other.Stream.Send(now, push); err != nil {
			slog.Warn("misc: failed to push bell ring", "player_id", other.Player.PlayerID, "error", err)
		}
	}

	const statKey = "Bell/TotalBellRings"
	if err := h.store.AddGlobalStatistic(ctx, statKey, 1); err != nil {
		slog.Error("misc: recording global bell statistic failed", "error", err)
	}
	if err := h.store.AddStatistic(ctx, ringerID, statKey, 1); err != nil {
		slog.Error("misc: recording player bell statistic failed", "player_id", ringerID, "error", err)
	}

	if err := sess.Stream.SendResponse(now, env.Index, &ds3.RequestNotifyRingBellResponse{}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

// handleSendMessage relays a short text message to up to
// constants.MaxSendMessageToPlayersRecipients other players (spec.md
// §4.5 "bounding the recipient count (≤ 6)"; §8 scenario 6). A
// recipient count over the cap is rejected outright — the sanitizer
// declines to process the request at all rather than truncating it, per
// DS3_MiscManager.cpp's own ShouldProcessRequest short-circuit.
func (h *Handler) handleSendMessage(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestSendMessageToPlayers) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	senderID := sess.Player.PlayerID

	if len(req.RecipientPlayerIDs) > constants.MaxSendMessageToPlayersRecipients {
		slog.Warn("misc: rejected oversized recipient list", "player_id", senderID, "count", len(req.RecipientPlayerIDs))
		if err := sess.Stream.SendResponse(now, env.Index, &ds3.RequestSendMessageToPlayersResponse{}); err != nil {
			return handlers.Errored
		}
		return handlers.Handled
	}

	push := &ds3.PushRequestSendMessageToPlayers{SenderPlayerID: senderID, Text: req.Text}
	for _, recipientID := range req.RecipientPlayerIDs {
		target, online := h.sessions.FindByPlayerID(recipientID)
		if !online {
			slog.Warn("misc: message recipient not online", "player_id", recipientID)
			continue
		}
		if err := target.Stream.Send(now, push); err != nil {
			slog.Warn("misc: failed to relay message", "player_id", recipientID, "error", err)
		}
	}

	if err := sess.Stream.SendResponse(now, env.Index, &ds3.RequestSendMessageToPlayersResponse{}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

var _ handlers.Handler = (*Handler)(nil)
