// Package playerdata implements the player-data handler (spec.md §4.5
// "Player-data handler"): merging the client's rolling status blob and
// persisting the opaque per-character blob. Grounded on
// DS3_PlayerDataManager.cpp's Handle_RequestUpdatePlayerStatus/
// Handle_RequestUpdatePlayerCharacter and on the teacher's
// handleMoveToLocation (internal/gameserver/handler.go) for the
// parse-merge-notify shape applied to a rolling position/status update.
package playerdata

import (
	"context"
	"log/slog"
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant"
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant/ds3"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/session"
	"github.com/TLeonardUK/ds3os-sub000/internal/store"
)

// Handler implements handlers.Handler for RequestUpdatePlayerStatus and
// RequestUpdatePlayerCharacter.
type Handler struct {
	store   store.Store
	variant gamevariant.Variant
}

// New builds a player-data Handler.
func New(st store.Store, variant gamevariant.Variant) *Handler {
	return &Handler{store: st, variant: variant}
}

func (h *Handler) Handle(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope) handlers.Result {
	switch req := env.Message.(type) {
	case *ds3.RequestUpdatePlayerStatus:
		return h.handleUpdateStatus(ctx, now, sess, env, req)
	case *ds3.RequestUpdatePlayerCharacter:
		return h.handleUpdateCharacter(ctx, now, sess, env, req)
	default:
		return handlers.Unhandled
	}
}

func (h *Handler) handleUpdateStatus(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestUpdatePlayerStatus) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}

	obs, err := h.variant.ExtractObservations(req.Status)
	if err != nil {
		slog.Warn("playerdata: malformed status blob", "player_id", sess.Player.PlayerID, "error", err)
		return handlers.Errored
	}

	priorName := sess.Player.CharacterName
	sess.Player.RawStatus = req.Status
	newlyLit := sess.Player.ApplyObservations(obs)

	if obs.CharacterName != "" && obs.CharacterName != priorName {
		slog.Info("playerdata: character renamed", "player_id", sess.Player.PlayerID, "name", obs.CharacterName)
	}
	for _, bonfireID := range newlyLit {
		slog.Info("playerdata: bonfire lit", "player_id", sess.Player.PlayerID, "bonfire_id", bonfireID)
	}

	if err := sess.Stream.SendResponse(now, env.Index, &ds3.RequestUpdatePlayerStatusResponse{}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

func (h *Handler) handleUpdateCharacter(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestUpdatePlayerCharacter) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}

	rec := store.CharacterRecord{
		CharacterID: req.CharacterID,
		PlayerID:    sess.Player.PlayerID,
		Name:        sess.Player.CharacterName,
		Data:        req.Data,
	}

	if err := h.store.CreateOrUpdateCharacter(ctx, rec); err != nil {
		slog.Error("playerdata: persisting character failed", "character_id", req.CharacterID, "error", err)
		return handlers.Errored
	}

	sess.Player.CharacterID = req.CharacterID

	if err := sess.Stream.SendResponse(now, env.Index, &ds3.RequestUpdatePlayerCharacterResponse{}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

var _ handlers.Handler = (*Handler)(nil)
