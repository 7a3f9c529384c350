package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTicketIssueAndConsumeOnce(t *testing.T) {
	table := NewTicketTable()
	now := time.Now()
	key := [16]byte{1, 2, 3}

	table.Issue(now, 42, key)

	ticket, ok := table.Consume(now.Add(time.Second), 42)
	require.True(t, ok)
	require.Equal(t, uint64(42), ticket.Token)
	require.Equal(t, key, ticket.SymmetricKey)

	_, ok = table.Consume(now.Add(time.Second), 42)
	require.False(t, ok, "ticket must be single-use")
}

func TestTicketConsumeRejectsUnknownToken(t *testing.T) {
	table := NewTicketTable()
	_, ok := table.Consume(time.Now(), 999)
	require.False(t, ok)
}

func TestTicketConsumeRejectsExpired(t *testing.T) {
	table := NewTicketTable()
	issuedAt := time.Now()
	table.Issue(issuedAt, 7, [16]byte{})

	_, ok := table.Consume(issuedAt.Add(31*time.Second), 7)
	require.False(t, ok, "ticket older than AuthTicketTTL must be rejected")
}

func TestExpireStaleDropsOnlyExpiredTickets(t *testing.T) {
	table := NewTicketTable()
	now := time.Now()
	table.Issue(now.Add(-40*time.Second), 1, [16]byte{})
	table.Issue(now, 2, [16]byte{})

	table.ExpireStale(now)

	_, ok := table.Consume(now, 1)
	require.False(t, ok, "stale ticket should have been expired")

	_, ok = table.Consume(now, 2)
	require.True(t, ok, "fresh ticket should survive ExpireStale")
}

func TestParseToken(t *testing.T) {
	datagram := []byte{0xEF, 0xBE, 0xAD, 0xDE, 0, 0, 0, 0, 0x99}
	token, ok := ParseToken(datagram)
	require.True(t, ok)
	require.Equal(t, uint64(0xDEADBEEF), token)
}

func TestParseTokenRejectsShortDatagram(t *testing.T) {
	_, ok := ParseToken([]byte{1, 2, 3})
	require.False(t, ok)
}
