// Package ghost implements the ghost handler (spec.md §4.5 "Ghost
// handler"): the same bounded per-area live-cache pattern as blood
// messages and bloodstains, holding a single opaque replay blob per
// entry. Grounded on DS3_BloodstainManager.cpp's
// Handle_RequestCreateBloodstain (the sibling manager file for this
// opcode group, since no dedicated DS3_GhostDataManager.cpp was
// recovered — see messages.go's doc comment on RequestCreateGhostData).
package ghost

import (
	"context"
	"log/slog"
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/cache"
	"github.com/TLeonardUK/ds3os-sub000/internal/config"
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant/ds3"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/sanitize"
	"github.com/TLeonardUK/ds3os-sub000/internal/session"
	"github.com/TLeonardUK/ds3os-sub000/internal/store"
)

type record struct {
	ID       uint32
	AreaID   uint32
	CellID   uint32
	PlayerID uint32
	Payload  []byte
}

// Handler implements handlers.Handler for RequestCreateGhostData and
// RequestGetGhostDataList, and exposes Find for the bloodstain handler's
// RequestGetDeadingGhost (live cache only; see Find).
type Handler struct {
	store store.Store
	pool  *cache.Pool[record]
	byID  map[uint32]cache.AreaKey
}

// New builds a ghost Handler, sized per cfg.Pools["ghost"].
func New(st store.Store, cfg config.ShardConfig) *Handler {
	capacity := cfg.Pools["ghost"].MaxEntriesPerArea
	return &Handler{store: st, pool: cache.New[record](capacity), byID: make(map[uint32]cache.AreaKey)}
}

// Prime loads the most recent rows per area from the durable store into
// the live cache at shard startup (spec.md §4.6).
func (h *Handler) Prime(ctx context.Context, areaIDs []uint32, countPerArea int) error {
	for _, areaID := range areaIDs {
		rows, err := h.store.FindGhosts(ctx, areaID, countPerArea)
		if err != nil {
			return err
		}
		for _, row := range rows {
			area := cache.AreaKey{AreaID: row.AreaID, CellID: row.CellID}
			h.pool.Add(area, row.ID, record{ID: row.ID, AreaID: row.AreaID, CellID: row.CellID, PlayerID: row.PlayerID, Payload: row.Payload})
			h.byID[row.ID] = area
		}
	}
	return nil
}

func (h *Handler) Handle(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope) handlers.Result {
	switch req := env.Message.(type) {
	case *ds3.RequestCreateGhostData:
		return h.handleCreate(ctx, now, sess, env, req)
	case *ds3.RequestGetGhostDataList:
		return h.handleGetList(ctx, now, sess, env, req)
	default:
		return handlers.Unhandled
	}
}

func (h *Handler) handleCreate(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestCreateGhostData) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	if err := sanitize.ValidateEntryList(req.Payload); err != nil {
		slog.Warn("ghost: rejected malformed payload", "player_id", sess.Player.PlayerID, "error", err)
		if err := sess.Stream.SendResponse(now, env.Index, &ds3.CreateGhostDataResponse{}); err != nil {
			return handlers.Errored
		}
		return handlers.Handled
	}

	id, err := h.store.CreateGhost(ctx, store.BlobRecord{AreaID: req.AreaID, CellID: req.CellID, PlayerID: sess.Player.PlayerID, Payload: req.Payload})
	if err != nil {
		slog.Error("ghost: persisting failed", "error", err)
		return handlers.Errored
	}
	area := cache.AreaKey{AreaID: req.AreaID, CellID: req.CellID}
	h.pool.Add(area, id, record{ID: id, AreaID: req.AreaID, CellID: req.CellID, PlayerID: sess.Player.PlayerID, Payload: req.Payload})
	h.byID[id] = area

	if err := sess.Stream.SendResponse(now, env.Index, &ds3.CreateGhostDataResponse{GhostID: id}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

func (h *Handler) handleGetList(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestGetGhostDataList) handlers.Result {
	resp := &ds3.GetGhostDataListResponse{}
	for _, areaID := range req.AreaIDs {
		for _, r := range h.pool.RandomSet(cache.AreaKey{AreaID: areaID}, int(req.MaxPerArea), nil) {
			resp.GhostIDs = append(resp.GhostIDs, r.ID)
			resp.Payloads = append(resp.Payloads, r.Payload)
		}
	}
	if err := sess.Stream.SendResponse(now, env.Index, resp); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

// Find returns the payload for id from the live cache only. The durable
// store is not consulted: a ghost that is not cached on this shard (never
// primed, or evicted) is reported as not-found. The caller (the bloodstain
// handler) only knows the id, not its area, and the Store interface has
// no lookup of a ghost by id alone.
func (h *Handler) Find(id uint32) ([]byte, bool) {
	area, ok := h.byID[id]
	if !ok {
		return nil, false
	}
	r, ok := h.pool.Find(area, id)
	if !ok {
		return nil, false
	}
	return r.Payload, true
}

var _ handlers.Handler = (*Handler)(nil)
