// Package ranking implements the leaderboard handler (spec.md §4.5
// "Ranking handler"). Grounded on DS3_RankingManager.cpp's
// Handle_Request{RegisterRankingData,GetRankingData,
// GetCharacterRankingData,CountRankingData}.
//
// The store's RegisterScore persists whatever value it is given; how a
// new submission combines with a character's existing score (keep the
// larger vs. accumulate) is decided here, driven by the active
// gamevariant.Variant's RankingMode (spec.md §9, SPEC_FULL §5 item 2).
package ranking

import (
	"context"
	"log/slog"
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant"
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant/ds3"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/sanitize"
	"github.com/TLeonardUK/ds3os-sub000/internal/session"
	"github.com/TLeonardUK/ds3os-sub000/internal/store"
)

// Handler implements handlers.Handler for the ranking opcode family.
type Handler struct {
	store   store.Store
	variant gamevariant.Variant
}

// New builds a ranking Handler.
func New(st store.Store, variant gamevariant.Variant) *Handler {
	return &Handler{store: st, variant: variant}
}

func (h *Handler) Handle(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope) handlers.Result {
	switch req := env.Message.(type) {
	case *ds3.RequestRegisterRankingData:
		return h.handleRegister(ctx, now, sess, env, req)
	case *ds3.RequestGetRankingData:
		return h.handleGetPage(ctx, now, sess, env, req)
	case *ds3.RequestGetCharacterRankingData:
		return h.handleGetCharacter(ctx, now, sess, env, req)
	case *ds3.RequestCountRankingData:
		return h.handleCount(ctx, now, sess, env, req)
	default:
		return handlers.Unhandled
	}
}

// handleRegister combines req.Score with the character's existing score
// per the variant's RankingMode, then persists the combined value.
func (h *Handler) handleRegister(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestRegisterRankingData) handlers.Result {
	if sess.Player == nil || sess.Player.CharacterID == 0 {
		return handlers.Errored
	}
	if err := sanitize.ValidateEntryList(req.Data); err != nil {
		slog.Warn("ranking: rejected malformed payload", "player_id", sess.Player.PlayerID, "error", err)
		if err := sess.Stream.SendResponse(now, env.Index, &ds3.RegisterRankingDataResponse{}); err != nil {
			return handlers.Errored
		}
		return handlers.Handled
	}

	score := req.Score
	existing, found, err := h.store.GetCharacterRanking(ctx, req.BoardID, sess.Player.CharacterID)
	if err != nil {
		slog.Error("ranking: loading existing score failed", "error", err)
		return handlers.Errored
	}
	if found {
		switch h.variant.RankingMode() {
		case gamevariant.RankingModeAccumulate:
			score += existing.Score
		default:
			if existing.Score > score {
				score = existing.Score
			}
		}
	}

	err = h.store.RegisterScore(ctx, req.BoardID, store.RankingEntry{
		PlayerID:    sess.Player.PlayerID,
		CharacterID: sess.Player.CharacterID,
		Score:       score,
	})
	if err != nil {
		slog.Error("ranking: persisting score failed", "error", err)
		return handlers.Errored
	}

	if err := sess.Stream.SendResponse(now, env.Index, &ds3.RegisterRankingDataResponse{}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

func (h *Handler) handleGetPage(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestGetRankingData) handlers.Result {
	rows, err := h.store.GetRankings(ctx, req.BoardID, req.PageStart, req.PageSize)
	if err != nil {
		slog.Error("ranking: loading page failed", "error", err)
		return handlers.Errored
	}
	resp := &ds3.GetRankingDataResponse{}
	for _, row := range rows {
		resp.PlayerIDs = append(resp.PlayerIDs, row.PlayerID)
		resp.Scores = append(resp.Scores, row.Score)
		resp.Ranks = append(resp.Ranks, row.Rank)
	}
	if err := sess.Stream.SendResponse(now, env.Index, resp); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

func (h *Handler) handleGetCharacter(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestGetCharacterRankingData) handlers.Result {
	entry, found, err := h.store.GetCharacterRanking(ctx, req.BoardID, req.CharacterID)
	if err != nil {
		slog.Error("ranking: loading character ranking failed", "error", err)
		return handlers.Errored
	}
	resp := &ds3.GetCharacterRankingDataResponse{Found: found}
	if found {
		resp.Score = entry.Score
		resp.Rank = entry.Rank
	}
	if err := sess.Stream.SendResponse(now, env.Index, resp); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

func (h *Handler) handleCount(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestCountRankingData) handlers.Result {
	count, err := h.store.GetRankingCount(ctx, req.BoardID)
	if err != nil {
		slog.Error("ranking: loading count failed", "error", err)
		return handlers.Errored
	}
	if err := sess.Stream.SendResponse(now, env.Index, &ds3.CountRankingDataResponse{Count: count}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

var _ handlers.Handler = (*Handler)(nil)
