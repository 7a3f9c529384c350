// Package message implements the message stream (spec.md §4.3): typed
// request/response/push framing atop a reliable.Stream, dispatched through
// a per-game-variant opcode Registry.
package message

import (
	"fmt"
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/packet"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/reliable"
)

// Envelope is one decoded inbound message handed to a handler via Recv, or
// resolved to a SendWithResponse future.
type Envelope struct {
	Opcode     uint32
	Index      uint32
	IsResponse bool

	// Message is the registry-constructed, unmarshaled Body, or nil if
	// the opcode had no registered constructor for this direction.
	Message Body

	// Raw is the decompressed, still proto-encoded body, always
	// populated even when Message is nil.
	Raw []byte
}

type pendingRequest struct {
	deadline time.Time
	future   *Future
}

// Future is returned by SendWithResponse and resolves once a matching
// response arrives or the deadline passes.
type Future struct {
	done chan struct{}
	env  Envelope
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(env Envelope, err error) {
	f.env, f.err = env, err
	close(f.done)
}

// Done returns a channel that closes once the future resolves, for use in
// a select alongside a context's Done channel.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result returns the resolved envelope and error. Only meaningful after
// Done() has closed.
func (f *Future) Result() (Envelope, error) {
	return f.env, f.err
}

// Stream pairs a reliable.Stream with an opcode Registry to provide the
// send/send_with_response/recv dispatch surface spec.md §4.3 describes.
// Like reliable.Stream it owns no goroutine: PollAndRecv must be called
// once per shard tick.
type Stream struct {
	reliable *reliable.Stream
	registry *Registry

	nextIndex uint32
	pending   map[uint32]*pendingRequest
	inbox     []Envelope

	// OnUnhandled, if set, is called for every inbound request opcode
	// with no registered handler (logged, connection kept per spec.md
	// §4.3 and the HandlerUnhandled row of §7).
	OnUnhandled func(opcode uint32)
}

// NewStream wraps an established reliable.Stream with message dispatch.
func NewStream(rs *reliable.Stream, registry *Registry) *Stream {
	return &Stream{
		reliable: rs,
		registry: registry,
		pending:  make(map[uint32]*pendingRequest),
	}
}

// Deliver feeds one decoded inbound transport packet into the underlying
// reliable.Stream. The shard loop calls this for every datagram it reads
// for this stream's session, before the next Poll.
func (s *Stream) Deliver(now time.Time, p packet.Packet) {
	s.reliable.Deliver(now, p)
}

// Outbound drains encoded datagrams the underlying reliable.Stream has
// queued for the transport to send, mirroring reliable.Stream.Outbound.
func (s *Stream) Outbound() [][]byte {
	return s.reliable.Outbound()
}

// State returns the underlying reliable.Stream's lifecycle state, so the
// shard loop's disconnect choreography knows when a Closing session has
// fully reached Closed (spec.md §4.4).
func (s *Stream) State() reliable.State {
	return s.reliable.State()
}

// Close requests an orderly shutdown of the underlying reliable.Stream.
func (s *Stream) Close(now time.Time) {
	s.reliable.Close(now)
}

// Send frames and queues msg as a fresh request or push message. Returns
// ErrNotRegistered if msg's type has no proto->opcode mapping, or whatever
// reliable.Stream.Send returns (ErrQueueFull, ErrStreamClosed).
func (s *Stream) Send(now time.Time, msg Body) error {
	_, err := s.send(now, msg, s.nextMsgIndex())
	return err
}

// SendResponse frames msg as the response to requestIndex, copying its
// index so the peer's SendWithResponse future (if any) resolves.
func (s *Stream) SendResponse(now time.Time, requestIndex uint32, msg Body) error {
	_, err := s.send(now, msg, requestIndex)
	return err
}

// SendWithResponse sends msg as a request and returns a Future that
// resolves when a reply carrying the same msg_index is received, or to
// ErrTimeout if timeout elapses first (checked by expirePending, called
// from Poll).
func (s *Stream) SendWithResponse(now time.Time, msg Body, timeout time.Duration) (*Future, error) {
	index := s.nextMsgIndex()
	if _, err := s.send(now, msg, index); err != nil {
		return nil, err
	}

	f := newFuture()
	s.pending[index] = &pendingRequest{deadline: now.Add(timeout), future: f}
	return f, nil
}

func (s *Stream) send(now time.Time, msg Body, index uint32) (uint32, error) {
	opcode, ok := s.registry.OpcodeFor(msg)
	if !ok {
		return 0, fmt.Errorf("%w: %T", ErrNotRegistered, msg)
	}
	body, err := msg.Marshal()
	if err != nil {
		return 0, err
	}
	frame, err := Encode(opcode, index, body)
	if err != nil {
		return 0, err
	}
	if err := s.reliable.Send(now, frame); err != nil {
		return 0, err
	}
	return index, nil
}

func (s *Stream) nextMsgIndex() uint32 {
	i := s.nextIndex
	s.nextIndex++
	return i
}

// Recv drains and returns inbound request/push envelopes queued since the
// last call. Envelopes resolved as responses to a SendWithResponse future
// are never returned here.
func (s *Stream) Recv() []Envelope {
	out := s.inbox
	s.inbox = nil
	return out
}

// Poll drives the underlying reliable.Stream, decodes newly delivered
// frames, resolves any SendWithResponse futures they complete, expires
// timed-out ones, and queues the rest for Recv. Call once per shard tick.
func (s *Stream) Poll(now time.Time) {
	s.reliable.Poll(now)
	s.expirePending(now)

	for _, raw := range s.reliable.Delivered() {
		s.dispatch(raw)
	}
}

func (s *Stream) dispatch(raw []byte) {
	hdr, body, err := Decode(raw)
	if err != nil {
		return // malformed frame from an authenticated peer; drop silently
	}

	if pr, ok := s.pending[hdr.MsgIndex]; ok {
		delete(s.pending, hdr.MsgIndex)
		env := s.buildEnvelope(hdr, body, true)
		pr.future.resolve(env, nil)
		return
	}

	if !s.registry.HasRequestHandler(hdr.MsgType) {
		if s.OnUnhandled != nil {
			s.OnUnhandled(hdr.MsgType)
		}
		return
	}

	s.inbox = append(s.inbox, s.buildEnvelope(hdr, body, false))
}

func (s *Stream) buildEnvelope(hdr Header, body []byte, isResponse bool) Envelope {
	env := Envelope{Opcode: hdr.MsgType, Index: hdr.MsgIndex, IsResponse: isResponse, Raw: body}
	if msg, ok := s.registry.Construct(hdr.MsgType, isResponse); ok {
		if err := msg.Unmarshal(body); err == nil {
			env.Message = msg
		}
	}
	return env
}

func (s *Stream) expirePending(now time.Time) {
	for index, pr := range s.pending {
		if now.Before(pr.deadline) {
			continue
		}
		delete(s.pending, index)
		pr.future.resolve(Envelope{}, ErrTimeout)
	}
}
