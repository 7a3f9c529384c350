// Package logging implements the telemetry handler (spec.md §4.5
// "Logging handler"). Grounded on DS3_LoggingManager.cpp's family of
// Handle_RequestNotify* opcodes, all of which reduce in the recovered
// protocol to a single generic RequestLogMessage{Category, Subkey,
// Delta} carrying whatever StringFormat("%s/%s", ...) key the original
// built per event (e.g. "Item/TotalUsed/Id=%u", "Player/TotalDeaths",
// "Enemies/TotalKilled").
package logging

import (
	"context"
	"fmt"
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant/ds3"
	"github.com/TLeonardUK/ds3os-sub000/internal/handlers"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/session"
	"github.com/TLeonardUK/ds3os-sub000/internal/store"
	"github.com/TLeonardUK/ds3os-sub000/internal/webhook"
)

// bossKilledCategory/bossDiedCategory/pvpKillCategory are the Category
// values that, in addition to being folded into a statistic like any
// other telemetry event, also raise an outbound webhook notice
// (DS3_LoggingManager.cpp's Handle_RequestNotifyKillBoss/
// Handle_RequestNotifyDie gate their Discord notice on boss_died and a
// valid killer_player_id respectively; the Subkey here carries what used
// to be the boss name or killer description). The original's richer
// per-event fields (fight duration, in-coop, killer's own stats) have no
// wire representation left after the Category/Subkey/Delta collapse, so
// the notice text is reduced to the category/subkey pair.
const (
	bossKilledCategory = "Boss/Killed"
	bossDiedCategory    = "Boss/Died"
	pvpKillCategory     = "PvP/Killed"
)

// Handler implements handlers.Handler for RequestLogMessage.
type Handler struct {
	store    store.Store
	notifier *webhook.Notifier
}

// New builds a logging Handler. notifier may be nil or configured with
// an empty URL; webhook.Notifier.Notify treats both as a no-op.
func New(st store.Store, notifier *webhook.Notifier) *Handler {
	return &Handler{store: st, notifier: notifier}
}

func (h *Handler) Handle(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope) handlers.Result {
	req, ok := env.Message.(*ds3.RequestLogMessage)
	if !ok {
		return handlers.Unhandled
	}
	if sess.Player == nil {
		return handlers.Errored
	}

	key := req.Category
	if req.Subkey != "" {
		key = req.Category + "/" + req.Subkey
	}
	if err := h.store.AddGlobalStatistic(ctx, key, req.Delta); err != nil {
		return handlers.Errored
	}
	if err := h.store.AddStatistic(ctx, sess.Player.PlayerID, key, req.Delta); err != nil {
		return handlers.Errored
	}

	h.maybeNotify(now, sess, req)

	// RequestLogMessage has no response semantics (spec.md §4.5 "No
	// response semantics").
	return handlers.Handled
}

func (h *Handler) maybeNotify(now time.Time, sess *session.ClientSession, req *ds3.RequestLogMessage) {
	var kind webhook.NoticeType
	var text string
	switch req.Category {
	case bossKilledCategory:
		kind, text = webhook.NoticeKilledBoss, fmt.Sprintf("Killed '%s'.", req.Subkey)
	case bossDiedCategory:
		kind, text = webhook.NoticeDiedToBoss, fmt.Sprintf("Died to '%s'.", req.Subkey)
	case pvpKillCategory:
		kind, text = webhook.NoticePvPKill, "Was killed by another player."
	default:
		return
	}

	origin := webhook.Origin{PlayerID: sess.Player.PlayerID, SteamID: sess.Player.SteamID, CharacterName: sess.Player.CharacterName}
	fields := []webhook.Field{
		{Name: "Soul Level", Value: fmt.Sprintf("%d", sess.Player.SoulLevel)},
		{Name: "Weapon Level", Value: fmt.Sprintf("%d", sess.Player.MaxWeaponLevel)},
	}
	h.notifier.Notify(now, origin, kind, text, fields, "")
}

var _ handlers.Handler = (*Handler)(nil)
