// Package sign implements the sign handler (spec.md §4.5 "Sign handler
// (summoning — the central matchmaking path)"), the central matchmaking
// path: summon signs live in-memory only (spec.md §3 "SummonSign (live
// only)") and never touch the durable store. Grounded on
// DS3_SignManager.cpp's Handle_Request{CreateSign,GetSignList,SummonSign,
// RejectSign,RemoveSign,UpdateSign,GetRightMatchingArea} and on
// internal/cache.Pool's area-bucket sampling.
package sign

import (
	"context"
	"log/slog"
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/cache"
	"github.com/TLeonardUK/ds3os-sub000/internal/config"
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant"
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant/ds3"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers"
	"github.com/TLeonardUK/ds3os-sub000/internal/matching"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/sanitize"
	"github.com/TLeonardUK/ds3os-sub000/internal/session"
)

// record is a live SummonSign (spec.md §3). Stored as a pointer in the
// pool so SummonSign/RejectSign/GetSignList can mutate being_summoned_by
// and aware_player_ids in place rather than having to re-Add a modified
// copy back into the bucket.
type record struct {
	ID          uint32
	AreaID      uint32
	CellID      uint32
	PlayerID    uint32
	Type        ds3.SignType
	SoulLevel   int32
	WeaponLevel int32
	Password    string
	Payload     []byte

	BeingSummonedBy *uint32
	AwarePlayerIDs  map[uint32]struct{}
}

// signTypeFor maps the wire's SignType onto matching.SignType, the
// variant-agnostic discriminator CanSummon gates on.
func signTypeFor(t ds3.SignType) matching.SignType {
	if t == ds3.SignTypeRedSoapstone {
		return matching.SignTypeRedSoapstone
	}
	return matching.SignTypeWhiteSoapstone
}

// Handler implements handlers.Handler for the RequestXxxSign family plus
// RequestGetRightMatchingArea (grouped with signs in messages.go despite
// the opcode's blood-message-adjacent position there).
type Handler struct {
	sessions *session.Table
	variant  gamevariant.Variant
	cfg      config.ShardConfig

	pool   *cache.Pool[*record]
	byID   map[uint32]cache.AreaKey
	nextID uint32
}

// New builds a sign Handler. Signs have no dedicated pool config entry
// (they are never persisted, so prime_count_per_area is meaningless for
// them); the per-area cache cap is four times MaxSignsPerGetSignList, since
// nothing in spec.md §4.6 names a separate one.
func New(sessions *session.Table, variant gamevariant.Variant, cfg config.ShardConfig) *Handler {
	capacity := cfg.MaxSignsPerGetSignList * 4
	return &Handler{
		sessions: sessions,
		variant:  variant,
		cfg:      cfg,
		pool:     cache.New[*record](capacity),
		byID:     make(map[uint32]cache.AreaKey),
	}
}

func (h *Handler) Handle(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope) handlers.Result {
	switch req := env.Message.(type) {
	case *ds3.RequestCreateSign:
		return h.handleCreate(now, sess, env, req)
	case *ds3.RequestGetSignList:
		return h.handleGetList(now, sess, env, req)
	case *ds3.RequestSummonSign:
		return h.handleSummon(now, sess, env, req)
	case *ds3.RequestRejectSign:
		return h.handleReject(now, sess, env, req)
	case *ds3.RequestRemoveSign:
		return h.handleRemove(now, sess, env, req)
	case *ds3.RequestUpdateSign:
		return h.handleUpdate(now, sess, env, req)
	case *ds3.RequestGetRightMatchingArea:
		return h.handleGetRightMatchingArea(now, sess, env, req)
	default:
		return handlers.Unhandled
	}
}

func (h *Handler) handleCreate(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestCreateSign) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	if err := sanitize.ValidateEntryList(req.Payload); err != nil {
		slog.Warn("sign: rejected malformed player_struct", "player_id", sess.Player.PlayerID, "error", err)
		if err := sess.Stream.SendResponse(now, env.Index, &ds3.CreateSignResponse{}); err != nil {
			return handlers.Errored
		}
		return handlers.Handled
	}

	h.nextID++
	id := h.nextID
	r := &record{
		ID: id, AreaID: req.AreaID, CellID: req.CellID, PlayerID: sess.Player.PlayerID, Type: req.Type,
		SoulLevel: req.SoulLevel, WeaponLevel: req.WeaponLevel, Password: req.Password, Payload: req.Payload,
		AwarePlayerIDs: make(map[uint32]struct{}),
	}
	area := cache.AreaKey{AreaID: req.AreaID, CellID: req.CellID}
	h.pool.Add(area, id, r)
	h.byID[id] = area
	sess.AddSign(id)

	if err := sess.Stream.SendResponse(now, env.Index, &ds3.CreateSignResponse{SignID: id}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

// handleGetList samples up to MaxSignsPerGetSignList signs per requested
// area, newest first (spec.md §4.5 "recency-biased ... newest first"),
// filtered by can_match under the summon table. A sign whose Password is
// set is only visible to a caller supplying the matching password — the
// recovered RequestGetSignList carries no already_have id list, so every
// returned sign is a full record; the spec's minimal-record path for
// already-aware signs has no wire representation to carry it and is
// collapsed into always-full here.
func (h *Handler) handleGetList(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestGetSignList) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	table := gamevariant.MatchingTableFor(h.variant, gamevariant.InteractionSummon, h.cfg.MatchingTables)
	caller := matching.Candidate{SoulLevel: req.SoulLevel, WeaponLevel: req.WeaponLevel}

	resp := &ds3.SignListResponse{}
	for _, areaID := range req.AreaIDs {
		filter := func(r *record) bool {
			if r.PlayerID == sess.Player.PlayerID {
				return false
			}
			if r.Password != "" && r.Password != req.Password {
				return false
			}
			target := matching.Candidate{SoulLevel: r.SoulLevel, WeaponLevel: r.WeaponLevel}
			return matching.CanSummon(caller, target, req.Password != "", table, h.cfg.Features, signTypeFor(r.Type))
		}
		for _, r := range h.pool.RecentSet(cache.AreaKey{AreaID: areaID}, h.cfg.MaxSignsPerGetSignList, filter) {
			r.AwarePlayerIDs[sess.Player.PlayerID] = struct{}{}
			resp.SignIDs = append(resp.SignIDs, r.ID)
			resp.Payloads = append(resp.Payloads, r.Payload)
		}
	}
	if err := sess.Stream.SendResponse(now, env.Index, resp); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

func (h *Handler) find(id uint32) (*record, bool) {
	area, ok := h.byID[id]
	if !ok {
		return nil, false
	}
	return h.pool.Find(area, id)
}

// handleSummon implements spec.md §4.5's SummonSign: "reject ... if sign
// is gone or already being summoned; otherwise set being_summoned_by and
// push PushRequestSummonSign to the sign's owner." On the reject path
// (sign gone or already pending) DS3_SignManager.cpp's
// Handle_RequestSummonSign pushes PushRequestRejectSign back to the
// caller themselves, in addition to acking via
// RequestSummonSignResponse.Accepted.
func (h *Handler) handleSummon(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestSummonSign) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	r, ok := h.find(req.SignID)
	accepted := false
	if ok && r.BeingSummonedBy == nil {
		summoner := sess.Player.PlayerID
		r.BeingSummonedBy = &summoner
		accepted = true
		if owner, online := h.sessions.FindByPlayerID(r.PlayerID); online {
			if err := owner.Stream.Send(now, &ds3.PushRequestSummonSign{SignID: r.ID, BeingSummonedBy: summoner}); err != nil {
				slog.Warn("sign: failed to push summon to owner", "player_id", r.PlayerID, "error", err)
			}
		}
	}
	if err := sess.Stream.SendResponse(now, env.Index, &ds3.RequestSummonSignResponse{Accepted: accepted}); err != nil {
		return handlers.Errored
	}
	if !accepted {
		if err := sess.Stream.Send(now, &ds3.PushRequestRejectSign{Rejected: true, SignID: req.SignID}); err != nil {
			slog.Warn("sign: failed to push summon rejection to caller", "player_id", sess.Player.PlayerID, "error", err)
		}
	}
	return handlers.Handled
}

// handleReject implements spec.md §4.5 RejectSign: "sign owner rejects;
// push PushRequestRejectSign to the pending summoner and clear
// being_summoned_by" (DS3_SignManager.cpp's Handle_RequestRejectSign).
func (h *Handler) handleReject(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestRejectSign) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	r, ok := h.find(req.SignID)
	if !ok || r.PlayerID != sess.Player.PlayerID {
		if err := sess.Stream.SendResponse(now, env.Index, &ds3.RequestRejectSignResponse{}); err != nil {
			return handlers.Errored
		}
		return handlers.Handled
	}
	if r.BeingSummonedBy == nil || *r.BeingSummonedBy != req.SummonerID {
		if err := sess.Stream.SendResponse(now, env.Index, &ds3.RequestRejectSignResponse{}); err != nil {
			return handlers.Errored
		}
		return handlers.Handled
	}
	r.BeingSummonedBy = nil
	if summoner, online := h.sessions.FindByPlayerID(req.SummonerID); online {
		if err := summoner.Stream.Send(now, &ds3.PushRequestRejectSign{Rejected: true, SignID: r.ID}); err != nil {
			slog.Warn("sign: failed to push reject to summoner", "player_id", req.SummonerID, "error", err)
		}
	}
	if err := sess.Stream.SendResponse(now, env.Index, &ds3.RequestRejectSignResponse{}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

// handleRemove implements spec.md §4.5 RemoveSign: owner-only, pushes
// PushRequestRemoveSign to every aware player, then acks
// (DS3_SignManager.cpp's Handle_RequestRemoveSign: "empty response, not
// sure what purpose this serves really other than saying
// message-recieved. Client doesn't work without it though.").
func (h *Handler) handleRemove(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestRemoveSign) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	r, ok := h.find(req.SignID)
	if ok && r.PlayerID == sess.Player.PlayerID {
		h.removeSign(now, r)
		sess.RemoveSign(req.SignID)
	}
	if err := sess.Stream.SendResponse(now, env.Index, &ds3.RequestRemoveSignResponse{}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

func (h *Handler) removeSign(now time.Time, r *record) {
	area := cache.AreaKey{AreaID: r.AreaID, CellID: r.CellID}
	h.pool.Remove(area, r.ID)
	delete(h.byID, r.ID)
	for playerID := range r.AwarePlayerIDs {
		aware, online := h.sessions.FindByPlayerID(playerID)
		if !online {
			continue
		}
		if err := aware.Stream.Send(now, &ds3.PushRequestRemoveSign{SignID: r.ID}); err != nil {
			slog.Warn("sign: failed to push removal to aware player", "player_id", playerID, "error", err)
		}
	}
}

// RemoveOwned tears down every sign owned by a session that has
// disconnected (spec.md §3 "destroying the session removes and notifies
// aware peers"); called from on_lost_player cleanup.
func (h *Handler) RemoveOwned(now time.Time, signIDs []uint32) {
	for _, id := range signIDs {
		if r, ok := h.find(id); ok {
			h.removeSign(now, r)
		}
	}
}

// handleUpdate is a keepalive: spec.md §4.5 "no state change required
// (signs live until explicitly removed or their owner disconnects)". Acks
// with an empty response (DS3_SignManager.cpp's Handle_RequestUpdateSign
// sends one unconditionally; the client requires it).
func (h *Handler) handleUpdate(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestUpdateSign) handlers.Result {
	if err := sess.Stream.SendResponse(now, env.Index, &ds3.RequestUpdateSignResponse{}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

// handleGetRightMatchingArea buckets every other online session by
// current_area_id under whichever of {summon, invasion} the caller
// matches, then returns the single highest-population area (ties broken
// by lowest area id) — the recovered GetRightMatchingAreaResponse carries
// one MatchingAreaID rather than a per-area population table, so the
// "normalized into 0..5" step from spec.md §4.5 is folded into picking
// the best area rather than reported back to the client.
func (h *Handler) handleGetRightMatchingArea(now time.Time, sess *session.ClientSession, env message.Envelope, req *ds3.RequestGetRightMatchingArea) handlers.Result {
	if sess.Player == nil {
		return handlers.Errored
	}
	caller := sess.Player.Candidate()
	summonTable := gamevariant.MatchingTableFor(h.variant, gamevariant.InteractionSummon, h.cfg.MatchingTables)
	invasionTable := gamevariant.MatchingTableFor(h.variant, gamevariant.InteractionInvasion, h.cfg.MatchingTables)

	populations := make(map[uint32]int)
	for _, other := range h.sessions.All() {
		if other == sess || other.Player == nil || !other.Player.HasCompleteStatus() {
			continue
		}
		target := other.Player.Candidate()
		if matching.CanMatch(caller, target, false, summonTable, !h.cfg.Features.DisableWeaponLevelMatching) ||
			matching.CanMatch(caller, target, false, invasionTable, !h.cfg.Features.DisableWeaponLevelMatching) {
			populations[other.Player.CurrentAreaID]++
		}
	}

	var best uint32
	bestCount := -1
	for areaID, count := range populations {
		if count > bestCount || (count == bestCount && areaID < best) {
			best, bestCount = areaID, count
		}
	}

	if err := sess.Stream.SendResponse(now, env.Index, &ds3.GetRightMatchingAreaResponse{MatchingAreaID: best}); err != nil {
		return handlers.Errored
	}
	return handlers.Handled
}

var _ handlers.Handler = (*Handler)(nil)
