// Package handlers defines the shared handler contract spec.md §4.5
// describes: "(session, decoded_message) -> Unhandled | Handled | Error;
// Error closes the session." Grounded on the dispatch shape of
// internal/gameserver/handler.go's HandlePacket (opcode switch ->
// per-opcode handleX(ctx, client, data, buf) (int, bool, error)), adapted
// here to the message.Envelope/Registry dispatch surface instead of a raw
// byte buffer: each of the twelve concrete handler packages
// (boot, playerdata, bloodmessage, bloodstain, ghost, sign, breakin,
// visitor, quickmatch, ranking, misc, logging) implements Handler for one
// DS3_*Manager.cpp's worth of opcodes.
package handlers

import (
	"context"
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/session"
)

// Result is the outcome of one Handler.Handle call (spec.md §4.5, §7).
type Result int

const (
	// Unhandled means this handler does not own env's opcode; the shard
	// loop tries the next registered handler, or logs+keeps-open if none
	// claim it (spec.md §4.3 "HandlerUnhandled").
	Unhandled Result = iota
	// Handled means the message was processed (a response/push may have
	// been queued on the session's Stream); the session stays open.
	Handled
	// Errored means processing failed in a way that requires closing the
	// session (spec.md §4.5 "Error closes the session").
	Errored
)

// Handler processes inbound message.Envelope values for the opcodes it
// owns. Implementations hold whatever collaborators they need (store,
// cache pools, gamevariant.Variant, config) as unexported fields set by
// their package's New constructor.
type Handler interface {
	Handle(ctx context.Context, now time.Time, sess *session.ClientSession, env message.Envelope) Result
}
