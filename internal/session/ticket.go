// Package session implements the AuthTicket hand-off table and the
// per-client ClientSession lifecycle (spec.md §4.4), grounded on
// internal/login/session_manager.go's sync.Map-keyed table with a
// CleanExpired(ttl) sweep.
package session

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/constants"
)

// Ticket is a short-lived token the login front-end hands to both the
// client and the game service out-of-band (spec.md §3 AuthTicket).
type Ticket struct {
	Token        uint64
	SymmetricKey [16]byte
	IssuedAt     time.Time
}

func (t Ticket) expired(now time.Time) bool {
	return now.Sub(t.IssuedAt) > constants.AuthTicketTTL
}

// TicketTable holds tickets issued by the login service, keyed by token,
// awaiting consumption by the first game-service datagram.
type TicketTable struct {
	mu      sync.Mutex
	tickets map[uint64]Ticket
}

// NewTicketTable returns an empty TicketTable.
func NewTicketTable() *TicketTable {
	return &TicketTable{tickets: make(map[uint64]Ticket)}
}

// Issue records a newly handed-off ticket.
func (t *TicketTable) Issue(now time.Time, token uint64, key [16]byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tickets[token] = Ticket{Token: token, SymmetricKey: key, IssuedAt: now}
}

// Consume looks up token as parsed from the first 8 bytes of a
// game-service datagram (little-endian, spec.md §6) and removes it if
// found and unexpired, single-use per spec.md §3.
func (t *TicketTable) Consume(now time.Time, token uint64) (Ticket, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ticket, ok := t.tickets[token]
	if !ok {
		return Ticket{}, false
	}
	delete(t.tickets, token)
	if ticket.expired(now) {
		return Ticket{}, false
	}
	return ticket, true
}

// ExpireStale drops any ticket older than constants.AuthTicketTTL that was
// never consumed (spec.md §4.4 per-tick work item 6).
func (t *TicketTable) ExpireStale(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for token, ticket := range t.tickets {
		if ticket.expired(now) {
			delete(t.tickets, token)
		}
	}
}

// ParseToken reads the candidate AuthTicket token from the first 8 bytes
// of a datagram, little-endian (spec.md §6).
func ParseToken(datagram []byte) (uint64, bool) {
	if len(datagram) < 8 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(datagram[:8]), true
}
