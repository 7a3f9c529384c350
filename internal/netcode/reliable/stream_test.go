package reliable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TLeonardUK/ds3os-sub000/internal/constants"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/packet"
)

func newTestCipher(t *testing.T) *packet.SessionCipher {
	t.Helper()
	sc, err := packet.NewSessionCipher([]byte("0123456789abcdef"))
	require.NoError(t, err)
	return sc
}

// handshake drives s from Listening through Established using a
// synthetic peer SYN and ACK, returning the clock used.
func handshake(t *testing.T, s *Stream) time.Time {
	t.Helper()
	now := time.Now()

	s.Deliver(now, packet.Packet{Header: packet.Header{Type: packet.TypeSYN, Seq: 100}})
	require.Equal(t, StateSynRecv, s.State())

	outbound := s.Outbound()
	require.Len(t, outbound, 1)
	synAck, err := packet.Decode(s.cipher, outbound[0])
	require.NoError(t, err)
	require.Equal(t, packet.TypeSYNACK, synAck.Header.Type)
	require.Equal(t, uint32(100), synAck.Header.Ack)

	s.Deliver(now, packet.Packet{Header: packet.Header{Type: packet.TypeACK, Seq: 101, Ack: synAck.Header.Seq}})
	require.Equal(t, StateEstablished, s.State())
	return now
}

func TestHandshakeReachesEstablished(t *testing.T) {
	s := NewStream(newTestCipher(t), time.Now())
	handshake(t, s)
}

func TestSendBelowFragmentThresholdIsSingleDAT(t *testing.T) {
	s := NewStream(newTestCipher(t), time.Now())
	now := handshake(t, s)

	payload := make([]byte, constants.MaxFragmentMessageLength-1)
	require.NoError(t, s.Send(now, payload))

	out := s.Outbound()
	require.Len(t, out, 1)
	p, err := packet.Decode(s.cipher, out[0])
	require.NoError(t, err)
	require.Equal(t, packet.TypeDAT, p.Header.Type)
}

func TestSendAtFragmentThresholdIsFragmented(t *testing.T) {
	s := NewStream(newTestCipher(t), time.Now())
	now := handshake(t, s)

	payload := make([]byte, constants.MaxFragmentMessageLength+1)
	require.NoError(t, s.Send(now, payload))

	out := s.Outbound()
	require.Len(t, out, 2)

	first, err := packet.Decode(s.cipher, out[0])
	require.NoError(t, err)
	require.Equal(t, packet.TypeDATFRAG, first.Header.Type)
	require.False(t, first.Header.FragFinal)

	last, err := packet.Decode(s.cipher, out[1])
	require.NoError(t, err)
	require.Equal(t, packet.TypeDATFRAG, last.Header.Type)
	require.True(t, last.Header.FragFinal)
}

func TestReassemblyDeliversWholeMessage(t *testing.T) {
	server := NewStream(newTestCipher(t), time.Now())
	now := handshake(t, server)

	payload := make([]byte, constants.MaxFragmentMessageLength*2+10)
	for i := range payload {
		payload[i] = byte(i)
	}

	// Drive a second stream as the "sender" side purely to produce valid
	// fragment packets to feed into server.Deliver, reusing Send's framing.
	sender := NewStream(server.cipher, now)
	sender.state = StateEstablished
	sender.sendSeq = server.expectSeq // align to the sequence space server.expectSeq already tracks
	require.NoError(t, sender.Send(now, payload))
	frags := sender.Outbound()
	require.Len(t, frags, 3)

	for _, raw := range frags {
		p, err := packet.Decode(server.cipher, raw)
		require.NoError(t, err)
		server.Deliver(now, p)
	}

	delivered := server.Delivered()
	require.Len(t, delivered, 1)
	require.Equal(t, payload, delivered[0])
}

func TestOutOfOrderDeliveryWaitsForGap(t *testing.T) {
	server := NewStream(newTestCipher(t), time.Now())
	now := handshake(t, server)

	p0 := packet.Packet{Header: packet.Header{Type: packet.TypeDAT, Seq: server.expectSeq}, Payload: []byte("a")}
	p1 := packet.Packet{Header: packet.Header{Type: packet.TypeDAT, Seq: server.expectSeq + 1}, Payload: []byte("b")}

	// Deliver p1 first: should buffer, not deliver.
	server.Deliver(now, p1)
	require.Empty(t, server.Delivered())

	// Deliver p0: fills the gap, both should flush in order.
	server.Deliver(now, p0)
	delivered := server.Delivered()
	require.Equal(t, [][]byte{[]byte("a"), []byte("b")}, delivered)
}

func TestDuplicateRetransmitNotRedelivered(t *testing.T) {
	server := NewStream(newTestCipher(t), time.Now())
	now := handshake(t, server)

	seq := server.expectSeq
	p := packet.Packet{Header: packet.Header{Type: packet.TypeDAT, Seq: seq}, Payload: []byte("once")}

	server.Deliver(now, p)
	require.Len(t, server.Delivered(), 1)

	// Redeliver the same packet (simulating a retransmit the peer sent
	// because our ACK was lost).
	server.Deliver(now, p)
	require.Empty(t, server.Delivered())
}

func TestSendQueueFullAborts(t *testing.T) {
	server := NewStream(newTestCipher(t), time.Now())
	now := handshake(t, server)

	huge := make([]byte, constants.MaxSendQueueSize+1)
	err := server.Send(now, huge)
	require.ErrorIs(t, err, ErrQueueFull)
}

func TestSendBeforeEstablishedFails(t *testing.T) {
	s := NewStream(newTestCipher(t), time.Now())
	err := s.Send(time.Now(), []byte("too soon"))
	require.ErrorIs(t, err, ErrStreamClosed)
}

func TestInactivityTimeoutClosesStream(t *testing.T) {
	s := NewStream(newTestCipher(t), time.Now())
	now := handshake(t, s)

	later := now.Add(constants.ClientTimeout + time.Second)
	s.Poll(later)
	require.Equal(t, StateClosing, s.State())
}

func TestCloseSendsRSTAndIsIdempotent(t *testing.T) {
	s := NewStream(newTestCipher(t), time.Now())
	now := handshake(t, s)

	s.Close(now)
	require.Equal(t, StateClosing, s.State())
	out := s.Outbound()
	require.Len(t, out, 1)
	p, err := packet.Decode(s.cipher, out[0])
	require.NoError(t, err)
	require.Equal(t, packet.TypeRST, p.Header.Type)

	s.Close(now) // idempotent: no second RST
	require.Empty(t, s.Outbound())
}

func TestAckRemovesPendingSend(t *testing.T) {
	s := NewStream(newTestCipher(t), time.Now())
	now := handshake(t, s)

	require.NoError(t, s.Send(now, []byte("payload")))
	require.Len(t, s.pending, 1)
	sentSeq := s.pending[0].seq

	s.Deliver(now, packet.Packet{Header: packet.Header{Type: packet.TypeACK, Seq: 999, Ack: sentSeq}})
	require.Empty(t, s.pending)
}

func TestRetransmitAfterBackoffThenGivesUp(t *testing.T) {
	s := NewStream(newTestCipher(t), time.Now())
	now := handshake(t, s)

	require.NoError(t, s.Send(now, []byte("x")))
	s.Outbound() // drain initial send

	cursor := now
	for i := 0; i < constants.MaxRetransmits+1; i++ {
		cursor = cursor.Add(10 * time.Second)
		s.Poll(cursor)
	}
	require.Equal(t, StateClosing, s.State())
}
