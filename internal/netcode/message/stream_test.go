package message

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/packet"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/reliable"
)

// newEstablishedReliableStream drives a fresh reliable.Stream through a
// synthetic handshake (SYN seq=1, ACK seq=2) so the next inbound data
// sequence the peer may use is always 2.
func newEstablishedReliableStream(t *testing.T) (*reliable.Stream, *packet.SessionCipher, time.Time) {
	t.Helper()
	cipher, err := packet.NewSessionCipher([]byte("0123456789abcdef"))
	require.NoError(t, err)

	now := time.Now()
	rs := reliable.NewStream(cipher, now)

	rs.Deliver(now, packet.Packet{Header: packet.Header{Type: packet.TypeSYN, Seq: 1}})
	out := rs.Outbound()
	require.Len(t, out, 1)
	synAck, err := packet.Decode(cipher, out[0])
	require.NoError(t, err)

	rs.Deliver(now, packet.Packet{Header: packet.Header{Type: packet.TypeACK, Seq: 2, Ack: synAck.Header.Seq}})
	require.Equal(t, reliable.StateEstablished, rs.State())
	return rs, cipher, now
}

// decodeOutbound drains and decodes the reliable stream's queued datagrams
// back into message frames, skipping any pure-control packets with no
// payload (bare ACKs).
func decodeOutbound(t *testing.T, rs *reliable.Stream, cipher *packet.SessionCipher) []Envelope {
	t.Helper()
	var envelopes []Envelope
	for _, raw := range rs.Outbound() {
		p, err := packet.Decode(cipher, raw)
		require.NoError(t, err)
		if len(p.Payload) == 0 {
			continue
		}
		hdr, body, err := Decode(p.Payload)
		require.NoError(t, err)
		envelopes = append(envelopes, Envelope{Opcode: hdr.MsgType, Index: hdr.MsgIndex, Raw: body})
	}
	return envelopes
}

// deliverFrame wraps a message frame in a DAT packet and delivers it to rs,
// simulating the peer's side of the reliable stream. Sequence numbers
// after the handshake in newEstablishedReliableStream start at 2.
func deliverFrame(rs *reliable.Stream, now time.Time, seq uint32, frame []byte) {
	rs.Deliver(now, packet.Packet{Header: packet.Header{Type: packet.TypeDAT, Seq: seq}, Payload: frame})
}

func TestSendFramesRegisteredMessage(t *testing.T) {
	rs, cipher, now := newEstablishedReliableStream(t)
	ms := NewStream(rs, testRegistry())

	require.NoError(t, ms.Send(now, &testPush{Text: "hello"}))

	envs := decodeOutbound(t, rs, cipher)
	require.Len(t, envs, 1)
	require.Equal(t, uint32(200), envs[0].Opcode)
	require.Equal(t, "hello", string(envs[0].Raw))
}

func TestSendUnregisteredTypeFails(t *testing.T) {
	rs, _, now := newEstablishedReliableStream(t)
	ms := NewStream(rs, testRegistry())

	err := ms.Send(now, failMarshal{})
	require.ErrorIs(t, err, ErrNotRegistered)
}

func TestRecvDeliversRegisteredRequest(t *testing.T) {
	rs, _, now := newEstablishedReliableStream(t)
	ms := NewStream(rs, testRegistry())

	frame, err := Encode(200, 0, []byte("push payload"))
	require.NoError(t, err)
	deliverFrame(rs, now, 2, frame)

	ms.Poll(now)
	envs := ms.Recv()
	require.Len(t, envs, 1)
	require.Equal(t, uint32(200), envs[0].Opcode)
	require.IsType(t, &testPush{}, envs[0].Message)
	require.Equal(t, "push payload", envs[0].Message.(*testPush).Text)
}

func TestRecvSkipsUnhandledOpcode(t *testing.T) {
	rs, _, now := newEstablishedReliableStream(t)
	ms := NewStream(rs, testRegistry())

	var unhandled []uint32
	ms.OnUnhandled = func(opcode uint32) { unhandled = append(unhandled, opcode) }

	frame, err := Encode(9999, 0, []byte("???"))
	require.NoError(t, err)
	deliverFrame(rs, now, 2, frame)

	ms.Poll(now)
	require.Empty(t, ms.Recv())
	require.Equal(t, []uint32{9999}, unhandled)
}

func TestSendWithResponseResolvesOnMatchingReply(t *testing.T) {
	rs, cipher, now := newEstablishedReliableStream(t)
	ms := NewStream(rs, testRegistry())

	future, err := ms.SendWithResponse(now, &testRequest{Text: "ping"}, time.Second)
	require.NoError(t, err)

	envs := decodeOutbound(t, rs, cipher)
	require.Len(t, envs, 1)
	require.Equal(t, uint32(100), envs[0].Opcode)

	replyFrame, err := Encode(100, envs[0].Index, []byte("pong"))
	require.NoError(t, err)
	deliverFrame(rs, now, 2, replyFrame)

	ms.Poll(now)

	select {
	case <-future.Done():
	default:
		t.Fatal("future did not resolve")
	}
	env, err := future.Result()
	require.NoError(t, err)
	require.True(t, env.IsResponse)
	require.Equal(t, "pong", env.Message.(*testResponse).Text)
}

func TestSendWithResponseTimesOut(t *testing.T) {
	rs, _, now := newEstablishedReliableStream(t)
	ms := NewStream(rs, testRegistry())

	future, err := ms.SendWithResponse(now, &testRequest{Text: "ping"}, 5*time.Second)
	require.NoError(t, err)

	ms.Poll(now.Add(10 * time.Second))

	<-future.Done()
	_, err = future.Result()
	require.ErrorIs(t, err, ErrTimeout)
}
