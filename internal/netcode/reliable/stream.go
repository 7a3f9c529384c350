package reliable

import (
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/TLeonardUK/ds3os-sub000/internal/constants"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/packet"
)

// pendingSend is one unacknowledged outbound packet awaiting either an
// ACK or a retransmit timeout.
type pendingSend struct {
	seq       uint32
	typ       packet.Type
	fragFinal bool
	payload   []byte
	attempts  int
	nextDue   time.Time
	backoffGen *backoff.ExponentialBackOff
}

// reassembly accumulates DAT-FRAG payloads until the final fragment
// arrives, in order (spec.md §4.2 Fragmentation).
type reassembly struct {
	chunks [][]byte
}

// Stream is one reliable-UDP connection's state. It owns no goroutine;
// the shard event loop calls Deliver() for inbound datagrams and Poll()
// once per tick.
type Stream struct {
	cipher *packet.SessionCipher

	state State

	sendSeq   uint32 // next sequence number to assign to an outbound packet
	expectSeq uint32 // next inbound sequence number expected in order

	pending      []*pendingSend // FIFO order, oldest first
	pendingBytes int

	recvBuffer map[uint32]packet.Packet // out-of-order inbound packets, keyed by seq
	reassemble reassembly

	lastInboundAt time.Time

	pendingAck     bool   // an inbound DAT/DAT-FRAG arrived and needs acking
	pendingAckSeq  uint32 // latest contiguous inbound seq to report as Ack

	synAckSeq uint32 // sequence number of our SYN-ACK, to recognize its ACK

	outbound  [][]byte // encoded datagrams ready for the transport to send
	delivered [][]byte // in-order reassembled application payloads ready for the message stream
}

// NewStream creates a reliable stream in the Listening state, waiting for
// the peer's SYN (spec.md §4.2).
func NewStream(cipher *packet.SessionCipher, now time.Time) *Stream {
	return &Stream{
		cipher:        cipher,
		state:         StateListening,
		recvBuffer:    make(map[uint32]packet.Packet),
		lastInboundAt: now,
	}
}

// State returns the stream's current lifecycle state.
func (s *Stream) State() State {
	return s.state
}

// Deliver feeds one decoded inbound packet.Packet into the state machine.
// The caller is responsible for codec decryption (and silently dropping
// packets that fail authentication, per spec.md §7) before calling this.
func (s *Stream) Deliver(now time.Time, p packet.Packet) {
	if s.state == StateClosed {
		return
	}
	s.lastInboundAt = now

	switch p.Header.Type {
	case packet.TypeSYN:
		s.handleSYN(now, p)
	case packet.TypeSYNACK:
		// Only meaningful if this Stream plays the connecting role;
		// the shard's game-service listener always plays the accepting
		// role, so this case is inert but handled for symmetry/testing.
	case packet.TypeACK:
		s.acknowledge(p.Header.Ack)
		if s.state == StateSynRecv && p.Header.Ack == s.synAckSeq {
			s.state = StateEstablished
		}
	case packet.TypeDAT, packet.TypeDATFRAG:
		s.handleData(now, p)
	case packet.TypeDATACK, packet.TypeDATFRAGACK:
		s.acknowledge(p.Header.Ack)
		s.handleData(now, p)
	case packet.TypeHBT:
		// liveness only; lastInboundAt already updated above.
	case packet.TypeRST:
		s.pending = nil
		s.pendingBytes = 0
		s.state = StateClosing
	}
}

func (s *Stream) handleSYN(now time.Time, p packet.Packet) {
	if s.state != StateListening {
		return
	}
	s.expectSeq = p.Header.Seq + 1
	s.synAckSeq = s.nextSendSeq()
	s.enqueueControl(now, packet.TypeSYNACK, s.synAckSeq, p.Header.Seq)
	s.state = StateSynRecv
}

// handleData processes a DAT/DAT-FRAG/DAT-ACK/DAT-FRAG-ACK payload, doing
// in-order delivery with a small out-of-order buffer and duplicate
// suppression (spec.md §4.2).
func (s *Stream) handleData(now time.Time, p packet.Packet) {
	seq := p.Header.Seq

	switch {
	case seq < s.expectSeq:
		// Duplicate retransmit: ack it again, but never redeliver.
		s.scheduleAck(seq)
		return
	case seq == s.expectSeq:
		s.acceptInOrder(p)
		s.expectSeq++
		s.drainBuffered()
	default:
		if len(s.recvBuffer) < constants.ReceiveWindowSize {
			s.recvBuffer[seq] = p
		}
		// Gap not yet filled; nothing delivered, no individual ack for
		// out-of-order packets beyond what scheduleAck below reports.
	}

	s.scheduleAck(s.expectSeq - 1)
}

func (s *Stream) drainBuffered() {
	for {
		next, ok := s.recvBuffer[s.expectSeq]
		if !ok {
			return
		}
		delete(s.recvBuffer, s.expectSeq)
		s.acceptInOrder(next)
		s.expectSeq++
	}
}

// acceptInOrder delivers (or reassembles) one in-order data packet.
func (s *Stream) acceptInOrder(p packet.Packet) {
	if !p.Header.Type.isFragment() {
		if len(p.Payload) > 0 {
			s.delivered = append(s.delivered, p.Payload)
		}
		return
	}

	s.reassemble.chunks = append(s.reassemble.chunks, p.Payload)
	if !p.Header.FragFinal {
		return
	}

	total := 0
	for _, c := range s.reassemble.chunks {
		total += len(c)
	}
	whole := make([]byte, 0, total)
	for _, c := range s.reassemble.chunks {
		whole = append(whole, c...)
	}
	s.reassemble.chunks = nil
	s.delivered = append(s.delivered, whole)
}

func (s *Stream) scheduleAck(ack uint32) {
	s.pendingAck = true
	s.pendingAckSeq = ack
}

// acknowledge removes every pending send with seq <= ack (cumulative ACK,
// spec.md §4.2 "ACK policy").
func (s *Stream) acknowledge(ack uint32) {
	if len(s.pending) == 0 {
		return
	}
	kept := s.pending[:0]
	for _, ps := range s.pending {
		if ps.seq <= ack {
			s.pendingBytes -= len(ps.payload)
			continue
		}
		kept = append(kept, ps)
	}
	s.pending = kept
}

// Delivered drains and returns the in-order application payloads received
// since the last call.
func (s *Stream) Delivered() [][]byte {
	out := s.delivered
	s.delivered = nil
	return out
}

// Send queues payload for reliable delivery, fragmenting it if it exceeds
// constants.MaxFragmentMessageLength (spec.md §4.2). Returns
// ErrStreamClosed if the stream is not Established, or ErrQueueFull if
// the unacknowledged queue would exceed constants.MaxSendQueueSize.
func (s *Stream) Send(now time.Time, payload []byte) error {
	if s.state != StateEstablished {
		return ErrStreamClosed
	}
	if s.pendingBytes+len(payload) > constants.MaxSendQueueSize {
		return ErrQueueFull
	}

	if len(payload) <= constants.MaxFragmentMessageLength {
		s.enqueueData(now, packet.TypeDAT, payload, false)
		return nil
	}

	for offset := 0; offset < len(payload); offset += constants.MaxFragmentMessageLength {
		end := min(offset+constants.MaxFragmentMessageLength, len(payload))
		final := end == len(payload)
		s.enqueueData(now, packet.TypeDATFRAG, payload[offset:end], final)
	}
	return nil
}

func (s *Stream) enqueueData(now time.Time, typ packet.Type, payload []byte, fragFinal bool) {
	seq := s.nextSendSeq()
	ps := &pendingSend{
		seq:        seq,
		typ:        typ,
		fragFinal:  fragFinal,
		payload:    payload,
		nextDue:    now,
		backoffGen: newRetransmitBackoff(),
	}
	s.pending = append(s.pending, ps)
	s.pendingBytes += len(payload)
	s.emit(s.encode(ps.asHeader(s.ackToPiggyback()), payload))
}

func (ps *pendingSend) asHeader(ack uint32) packet.Header {
	h := packet.Header{Type: ps.typ, Seq: ps.seq, FragFinal: ps.fragFinal}
	if ack != noAck {
		h.Type = piggybackType(ps.typ)
		h.Ack = ack
	}
	return h
}

const noAck = ^uint32(0)

func piggybackType(t packet.Type) packet.Type {
	if t == packet.TypeDATFRAG {
		return packet.TypeDATFRAGACK
	}
	return packet.TypeDATACK
}

// ackToPiggyback returns the latest inbound seq to report if one is
// pending, else noAck.
func (s *Stream) ackToPiggyback() uint32 {
	if !s.pendingAck {
		return noAck
	}
	s.pendingAck = false
	return s.pendingAckSeq
}

func (s *Stream) enqueueControl(now time.Time, typ packet.Type, seq, ack uint32) {
	h := packet.Header{Type: typ, Seq: seq, Ack: ack}
	s.emit(s.encode(h, nil))
}

func (s *Stream) encode(h packet.Header, payload []byte) []byte {
	datagram, err := packet.Encode(s.cipher, packet.Packet{Header: h, Payload: payload})
	if err != nil {
		// Only possible cause is an oversized payload, which Send already
		// bounds via fragmentation; treat as a programmer error made
		// visible rather than silently dropped.
		panic(err)
	}
	return datagram
}

func (s *Stream) emit(datagram []byte) {
	s.outbound = append(s.outbound, datagram)
}

// Outbound drains and returns encoded datagrams ready to hand to the UDP
// transport.
func (s *Stream) Outbound() [][]byte {
	out := s.outbound
	s.outbound = nil
	return out
}

func (s *Stream) nextSendSeq() uint32 {
	seq := s.sendSeq
	s.sendSeq++
	return seq
}

func newRetransmitBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.Multiplier = 2
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 0 // attempts are capped by constants.MaxRetransmits instead
	b.Reset()
	return b
}

// Poll runs one tick of timer-driven work: flushing a bare ACK if one is
// owed with no outbound data to piggyback on, retransmitting timed-out
// sends, and enforcing the client timeout (spec.md §4.2, §4.4).
func (s *Stream) Poll(now time.Time) {
	if s.state == StateClosed {
		return
	}

	if s.pendingAck {
		ack := s.ackToPiggyback()
		s.enqueueControl(now, packet.TypeACK, s.nextSendSeq(), ack)
	}

	s.retransmitTimedOut(now)

	// A stream that entered Closing before this tick finishes closing once
	// nothing is left pending; one that times out on this tick stays
	// Closing until the next Poll.
	if s.state == StateClosing && len(s.pending) == 0 {
		s.state = StateClosed
		return
	}

	if now.Sub(s.lastInboundAt) > constants.ClientTimeout {
		s.state = StateClosing
	}
}

func (s *Stream) retransmitTimedOut(now time.Time) {
	for _, ps := range s.pending {
		if now.Before(ps.nextDue) {
			continue
		}
		if ps.attempts >= constants.MaxRetransmits {
			s.state = StateClosing
			continue
		}
		ps.attempts++
		ps.nextDue = now.Add(ps.backoffGen.NextBackOff())
		s.emit(s.encode(ps.asHeader(s.ackToPiggyback()), ps.payload))
	}
}

// Close requests an orderly shutdown: pending acknowledged writes have
// already completed, unacknowledged writes are abandoned, and a best
// effort RST is sent (spec.md §4.2 Cancellation). Idempotent.
func (s *Stream) Close(now time.Time) {
	if s.state == StateClosed || s.state == StateClosing {
		return
	}
	s.pending = nil
	s.pendingBytes = 0
	s.enqueueControl(now, packet.TypeRST, s.nextSendSeq(), 0)
	s.state = StateClosing
}
