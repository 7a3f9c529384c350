// Package boot implements the boot handler (spec.md §4.5 "Boot handler"):
// login completion and the announcement/ban/warn banner a client polls
// for right after. Grounded on DS3_BootManager.cpp's Handle_RequestWaitForUserLogin
// and Handle_RequestGetAnnounceMessageList, and on the teacher's
// handleAuthLogin (internal/gameserver/handler.go) for the
// validate-then-register-then-reply shape.
package boot

import (
	"context"
	"log/slog"
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/config"
	"github.com/TLeonardUK/ds3os-sub000/internal/constants"
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant/ds3"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/playerstate"
	"github.com/TLeonardUK/ds3os-sub000/internal/session"
	"github.com/TLeonardUK/ds3os-sub000/internal/store"
)

// Handler implements handlers.Handler for RequestWaitForUserLogin and
// RequestGetAnnounceMessageList.
type Handler struct {
	store    store.Store
	sessions *session.Table
	cfg      config.ShardConfig
}

// New builds a boot Handler. sessions is the shard's live session table,
// so a resolved player_id can be added to its reverse index
// (session.Table.AssignPlayer) once login completes.
func New(st store.Store, sessions *session.Table, cfg config.ShardConfig) *Handler {
	return &Handler{store: st, sessions: sessions, cfg: cfg}
}

func (h *Handler) Handle(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope) handlers.Result {
	switch req := env.Message.(type) {
	case *ds3.RequestWaitForUserLogin:
		return h.handleWaitForUserLogin(ctx, now, sess, env, req)
	case *ds3.RequestGetAnnounceMessageList:
		return h.handleGetAnnounceMessageList(ctx, now, sess, env, req)
	default:
		return handlers.Unhandled
	}
}

func (h *Handler) handleWaitForUserLogin(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestWaitForUserLogin) handlers.Result {
	playerID, err := h.store.FindOrCreatePlayer(ctx, req.SteamID)
	if err != nil {
		slog.Error("boot: find_or_create_player failed", "steam_id", req.SteamID, "error", err)
		return handlers.Errored
	}

	banned, err := h.store.IsBanned(ctx, req.SteamID)
	if err != nil {
		slog.Error("boot: is_banned lookup failed", "steam_id", req.SteamID, "error", err)
		return handlers.Errored
	}

	penalty, err := h.store.GetAntiCheatPenalty(ctx, req.SteamID)
	if err != nil {
		slog.Error("boot: anti-cheat penalty lookup failed", "steam_id", req.SteamID, "error", err)
		return handlers.Errored
	}

	sess.Player = playerstate.New(req.SteamID, playerID)
	sess.Player.AntiCheat.Penalty = penalty
	sess.Player.AntiCheat.LoadedFromStore = true
	sess.BannedFlag = banned
	h.sessions.AssignPlayer(sess)

	slog.Info("player logged in", "steam_id", req.SteamID, "player_id", playerID, "banned", banned)

	resp := &ds3.RequestWaitForUserLoginResponse{PlayerID: playerID, Banned: banned}
	if err := sess.Stream.SendResponse(now, env.Index, resp); err != nil {
		slog.Warn("boot: failed to send login response", "player_id", playerID, "error", err)
		return handlers.Errored
	}

	if err := sess.Stream.Send(now, &ds3.PlayerInfoUploadConfigPush{
		UploadIntervalSeconds: uint32(h.cfg.UploadIntervalSeconds),
	}); err != nil {
		slog.Warn("boot: failed to push upload config", "player_id", playerID, "error", err)
	}

	return handlers.Handled
}

func (h *Handler) handleGetAnnounceMessageList(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestGetAnnounceMessageList) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}

	if sess.BannedFlag {
		if err := sess.Stream.SendResponse(now, env.Index, &ds3.AnnounceMessageListResponse{
			Notices: []string{h.cfg.BanAnnouncement},
		}); err != nil {
			return handlers.Errored
		}
		sess.ScheduleDisconnect(now, constants.BanAnnounceDisconnectDelay)
		return handlers.Handled
	}

	if sess.Player.AntiCheat.Penalty > h.cfg.AntiCheat.WarnThreshold {
		if err := sess.Stream.SendResponse(now, env.Index, &ds3.AnnounceMessageListResponse{
			Notices: []string{h.cfg.WarnAnnouncement},
		}); err != nil {
			return handlers.Errored
		}
		return handlers.Handled
	}

	if err := sess.Stream.SendResponse(now, env.Index, &ds3.AnnounceMessageListResponse{
		Notices: h.cfg.Announcements,
		Changes: h.cfg.Changelog,
	}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

var _ handlers.Handler = (*Handler)(nil)
