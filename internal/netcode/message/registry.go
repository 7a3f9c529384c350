package message

import "reflect"

// Body is implemented by every request, response, and push message type a
// game variant registers. Marshal/Unmarshal carry the protobuf-encoded
// payload that Encode/Decode compress and frame.
type Body interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// Constructor allocates a zero-value Body ready for Unmarshal.
type Constructor func() Body

// Entry is one row of a game variant's declarative opcode table
// (spec.md §4.3 Opcode registry).
type Entry struct {
	Opcode uint32

	// Request is a sample instance of the request/push type carried by
	// this opcode, used only to record its proto->opcode mapping.
	Request     Body
	RequestCtor Constructor

	// Response and ResponseCtor are nil for opcodes that never carry a
	// response (pure pushes).
	Response     Body
	ResponseCtor Constructor

	// ExpectsResponse marks request opcodes the sender should wait on
	// via SendWithResponse; false for fire-and-forget pushes.
	ExpectsResponse bool
}

type constructKey struct {
	opcode     uint32
	isResponse bool
}

// Registry holds the three relations spec.md §4.3 calls for, built once at
// shard init from a game variant's declarative table and never mutated
// afterward.
type Registry struct {
	opcodeOf        map[reflect.Type]uint32
	construct       map[constructKey]Constructor
	expectsResponse map[uint32]bool
}

// NewRegistry builds a Registry from a variant's declarative table. Later
// entries with the same opcode overwrite earlier ones.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{
		opcodeOf:        make(map[reflect.Type]uint32),
		construct:       make(map[constructKey]Constructor),
		expectsResponse: make(map[uint32]bool),
	}
	for _, e := range entries {
		r.register(e)
	}
	return r
}

func (r *Registry) register(e Entry) {
	if e.Request != nil && e.RequestCtor != nil {
		r.opcodeOf[reflect.TypeOf(e.Request)] = e.Opcode
		r.construct[constructKey{e.Opcode, false}] = e.RequestCtor
	}
	if e.Response != nil && e.ResponseCtor != nil {
		r.opcodeOf[reflect.TypeOf(e.Response)] = e.Opcode
		r.construct[constructKey{e.Opcode, true}] = e.ResponseCtor
	}
	r.expectsResponse[e.Opcode] = e.ExpectsResponse
}

// OpcodeFor resolves a message value's proto->opcode mapping.
func (r *Registry) OpcodeFor(msg Body) (uint32, bool) {
	opcode, ok := r.opcodeOf[reflect.TypeOf(msg)]
	return opcode, ok
}

// Construct allocates the registered Body for (opcode, isResponse), or
// (nil, false) if nothing is registered for that pair.
func (r *Registry) Construct(opcode uint32, isResponse bool) (Body, bool) {
	ctor, ok := r.construct[constructKey{opcode, isResponse}]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// ExpectsResponse reports whether opcode was registered with
// ExpectsResponse: true. Unknown opcodes report false.
func (r *Registry) ExpectsResponse(opcode uint32) bool {
	return r.expectsResponse[opcode]
}

// HasRequestHandler reports whether opcode has a registered request-side
// constructor, i.e. this shard knows how to decode an inbound message of
// this opcode (spec.md §4.3 "Request opcodes without a registered handler
// are logged and the client is not disconnected").
func (r *Registry) HasRequestHandler(opcode uint32) bool {
	_, ok := r.construct[constructKey{opcode, false}]
	return ok
}
