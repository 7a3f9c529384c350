// Package bloodmessage implements the blood-message handler (spec.md §4.5
// "Blood-message handler"): a bounded per-area live cache backed by the
// durable store. Grounded on DS3_BloodMessageManager.cpp's
// Handle_Request{Reentry,ReCreateBloodMessageList,GetBloodMessageList,
// GetBloodMessageEvaluation,EvaluateBloodMessage,RemoveBloodMessage}, and
// on the teacher's internal/cache idiom for the live-cache half.
package bloodmessage

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

// record is one cached blood message; it mirrors spec.md §3 BloodMessage
// (id, area_id, cell_id, player_id, data, rating_good, rating_poor).
type record struct {
	ID       uint32
	AreaID   uint32
	CellID   uint32
	PlayerID uint32
	Payload  []byte
	Good     uint32
	Poor     uint32
}

// Handler implements handlers.Handler for the RequestXxxBloodMessage
// family of opcodes.
type Handler struct {
	store    store.Store
	sessions *session.Table
	pool     *cache.Pool[record]

	// byID tracks which AreaKey bucket holds a given message id, since a
	// client references messages by id alone (evaluate/remove/get
	// evaluation) while the pool itself is keyed by area. Entries are
	// never proactively removed on pool eviction; a stale entry simply
	// fails the subsequent pool.Find and is treated as "not cached",
	// which is the correct outcome either way.
	byID map[uint32]cache.AreaKey
}

// New builds a blood-message Handler, sized per cfg.Pools["bloodmessage"].
func New(st store.Store, sessions *session.Table, cfg config.ShardConfig) *Handler {
	capacity := cfg.Pools["bloodmessage"].MaxEntriesPerArea
	return &Handler{store: st, sessions: sessions, pool: cache.New[record](capacity), byID: make(map[uint32]cache.AreaKey)}
}

func (h *Handler) remember(area cache.AreaKey, id uint32) {
	h.byID[id] = area
}

// Prime loads the most recent rows per area from the durable store into
// the live cache at shard startup (spec.md §4.6 "primed ... by reading the
// most recent prime_count_per_area rows per area").
func (h *Handler) Prime(ctx context.Context, areaIDs []uint32, countPerArea int) error {
	for _, areaID := range areaIDs {
		rows, err := h.store.FindBloodMessages(ctx, areaID, countPerArea)
		if err != nil {
			return err
		}
		for _, row := range rows {
			area := cache.AreaKey{AreaID: row.AreaID, CellID: row.CellID}
			h.pool.Add(area, row.ID, record{
				ID: row.ID, AreaID: row.AreaID, CellID: row.CellID,
				PlayerID: row.PlayerID, Payload: row.Payload,
				Good: row.RatingGood, Poor: row.RatingPoor,
			})
			h.remember(area, row.ID)
		}
	}
	return nil
}

func (h *Handler) Handle(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope) handlers.Result {
	switch req := env.Message.(type) {
	case *ds3.RequestCreateBloodMessage:
		return h.handleCreate(ctx, now, sess, env, req)
	case *ds3.RequestReentryBloodMessage:
		return h.handleReentry(ctx, now, sess, env, req)
	case *ds3.RequestReCreateBloodMessageList:
		return h.handleRecreateList(ctx, now, sess, env, req)
	case *ds3.RequestGetBloodMessageList:
		return h.handleGetList(ctx, now, sess, env, req)
	case *ds3.RequestGetBloodMessageEvaluation:
		return h.handleGetEvaluation(ctx, now, sess, env, req)
	case *ds3.RequestEvaluateBloodMessage:
		return h.handleEvaluate(ctx, now, sess, env, req)
	case *ds3.RequestRemoveBloodMessage:
		return h.handleRemove(ctx, now, sess, env, req)
	default:
		return handlers.Unhandled
	}
}

func (h *Handler) handleCreate(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestCreateBloodMessage) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	if err := sanitize.ValidateEntryList(req.Payload); err != nil {
		slog.Warn("bloodmessage: rejected malformed payload", "player_id", sess.Player.PlayerID, "error", err)
		if err := sess.Stream.SendResponse(now, env.Index, &ds3.CreateBloodMessageResponse{}); err != nil {
			return handlers.Errored
		}
		return handlers.Handled
	}

	id, err := h.store.CreateBloodMessage(ctx, store.BlobRecord{
		AreaID: req.AreaID, CellID: req.CellID, PlayerID: sess.Player.PlayerID, Payload: req.Payload,
	})
	if err != nil {
		slog.Error("bloodmessage: persisting failed", "error", err)
		return handlers.Errored
	}

	area := cache.AreaKey{AreaID: req.AreaID, CellID: req.CellID}
	h.pool.Add(area, id, record{
		ID: id, AreaID: req.AreaID, CellID: req.CellID, PlayerID: sess.Player.PlayerID, Payload: req.Payload,
	})
	h.remember(area, id)

	if err := sess.Stream.SendResponse(now, env.Index, &ds3.CreateBloodMessageResponse{MessageID: id}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

// handleReentry ensures a live-cache copy exists for each previously-seen
// id; ids not currently cached come back as recreate_message_ids (spec.md
// §4.5 "ensure live-cache copy"). The live cache is primed from the store
// at startup and every store write also inserts into the cache, so
// "not cached" and "not in store" coincide in practice; a row trimmed from
// the store only after its cache entry was evicted is the one case this
// treats as recreate-worthy even though the store may still briefly hold
// it, which is harmless since recreation just re-persists under a new id.
func (h *Handler) handleReentry(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestReentryBloodMessage) handlers.Result {
	var recreate []uint32
	for _, id := range req.MessageIDs {
		if h.containsID(id) {
			continue
		}
		recreate = append(recreate, id)
	}
	if err := sess.Stream.SendResponse(now, env.Index, &ds3.ReentryBloodMessageResponse{RecreateMessageIDs: recreate}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

func (h *Handler) containsID(id uint32) bool {
	area, ok := h.byID[id]
	if !ok {
		return false
	}
	return h.pool.Contains(area, id)
}

func (h *Handler) handleRecreateList(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestReCreateBloodMessageList) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	n := len(req.Payloads)
	ids := make([]uint32, 0, n)
	for i := 0; i < n; i++ {
		var areaID, cellID uint32
		if i < len(req.AreaIDs) {
			areaID = req.AreaIDs[i]
		}
		if i < len(req.CellIDs) {
			cellID = req.CellIDs[i]
		}
		payload := req.Payloads[i]
		if err := sanitize.ValidateEntryList(payload); err != nil {
			slog.Warn("bloodmessage: rejected malformed recreate entry", "player_id", sess.Player.PlayerID, "error", err)
			ids = append(ids, 0)
			continue
		}
		id, err := h.store.CreateBloodMessage(ctx, store.BlobRecord{
			AreaID: areaID, CellID: cellID, PlayerID: sess.Player.PlayerID, Payload: payload,
		})
		if err != nil {
			slog.Error("bloodmessage: recreate persist failed", "error", err)
			return handlers.Errored
		}
		area := cache.AreaKey{AreaID: areaID, CellID: cellID}
		h.pool.Add(area, id, record{
			ID: id, AreaID: areaID, CellID: cellID, PlayerID: sess.Player.PlayerID, Payload: payload,
		})
		h.remember(area, id)
		ids = append(ids, id)
	}
	if err := sess.Stream.SendResponse(now, env.Index, &ds3.ReCreateBloodMessageListResponse{MessageIDs: ids}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

func (h *Handler) handleGetList(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestGetBloodMessageList) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	excludeSelf := func(r record) bool { return r.PlayerID != sess.Player.PlayerID }

	resp := &ds3.GetBloodMessageListResponse{}
	for _, areaID := range req.AreaIDs {
		sampled := h.pool.RandomSet(cache.AreaKey{AreaID: areaID}, int(req.MaxPerArea), excludeSelf)
		for _, r := range sampled {
			resp.MessageIDs = append(resp.MessageIDs, r.ID)
			resp.PlayerIDs = append(resp.PlayerIDs, r.PlayerID)
			resp.Payloads = append(resp.Payloads, r.Payload)
		}
	}
	if err := sess.Stream.SendResponse(now, env.Index, resp); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

func (h *Handler) handleGetEvaluation(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestGetBloodMessageEvaluation) handlers.Result {
	resp := &ds3.GetBloodMessageEvaluationResponse{}
	for _, id := range req.MessageIDs {
		r, ok := h.findByID(id)
		resp.MessageIDs = append(resp.MessageIDs, id)
		if ok {
			resp.Good = append(resp.Good, r.Good)
			resp.Poor = append(resp.Poor, r.Poor)
		} else {
			resp.Good = append(resp.Good, 0)
			resp.Poor = append(resp.Poor, 0)
		}
	}
	if err := sess.Stream.SendResponse(now, env.Index, resp); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

func (h *Handler) findByID(id uint32) (record, bool) {
	area, ok := h.byID[id]
	if !ok {
		return record{}, false
	}
	return h.pool.Find(area, id)
}

// handleEvaluate rates a message good or poor; authors may never evaluate
// their own message (spec.md §8 invariant 5) — violating this closes the
// session, per spec.md §4.5 "reject if caller is the author (close
// session)".
func (h *Handler) handleEvaluate(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestEvaluateBloodMessage) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	r, ok := h.findByID(req.MessageID)
	if !ok {
		return handlers.Errored
	}
	if r.PlayerID == sess.Player.PlayerID {
		slog.Warn("bloodmessage: author attempted to evaluate own message", "player_id", sess.Player.PlayerID, "message_id", req.MessageID)
		return handlers.Errored
	}

	if req.WasPoor {
		r.Poor++
	} else {
		r.Good++
	}
	h.pool.Add(cache.AreaKey{AreaID: r.AreaID, CellID: r.CellID}, r.ID, r)

	if err := h.store.UpdateBloodMessageRating(ctx, r.ID, r.Good, r.Poor); err != nil {
		slog.Error("bloodmessage: persisting rating failed", "message_id", r.ID, "error", err)
		return handlers.Errored
	}

	if err := sess.Stream.SendResponse(now, env.Index, &ds3.RequestEvaluateBloodMessageResponse{}); err != nil {
		return handlers.Errored
	}

	if author, online := h.sessions.FindByPlayerID(r.PlayerID); online {
		if err := author.Stream.Send(now, &ds3.PushRequestEvaluateBloodMessage{MessageID: r.ID, WasPoor: req.WasPoor}); err != nil {
			slog.Warn("bloodmessage: failed to push evaluation to author", "player_id", r.PlayerID, "error", err)
		}
	}
	return handlers.Handled
}

// handleRemove withdraws a message; only the author's removal takes
// effect, per spec.md §4.5 "only effective if caller is the author" — a
// non-author's attempt is acknowledged but ignored rather than closing the
// session, since removal is not one of the invariants §8 calls out as
// session-ending.
func (h *Handler) handleRemove(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestRemoveBloodMessage) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	if r, ok := h.findByID(req.MessageID); ok && r.PlayerID == sess.Player.PlayerID {
		h.pool.Remove(cache.AreaKey{AreaID: r.AreaID, CellID: r.CellID}, r.ID)
		if err := h.store.DeleteBloodMessage(ctx, r.ID); err != nil {
			slog.Error("bloodmessage: deleting from store failed", "message_id", r.ID, "error", err)
			return handlers.Errored
		}
	}
	if err := sess.Stream.SendResponse(now, env.Index, &ds3.RequestRemoveBloodMessageResponse{}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

var _ handlers.Handler = (*Handler)(nil)
