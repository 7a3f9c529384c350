package message

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// testRequest/testResponse are minimal Body implementations used only by
// this package's tests; real game variants register generated protobuf
// types instead.
type testRequest struct {
	Text string
}

func (m *testRequest) Marshal() ([]byte, error) { return []byte(m.Text), nil }
func (m *testRequest) Unmarshal(b []byte) error {
	m.Text = string(b)
	return nil
}

type testResponse struct {
	Text string
}

func (m *testResponse) Marshal() ([]byte, error) { return []byte(m.Text), nil }
func (m *testResponse) Unmarshal(b []byte) error {
	m.Text = string(b)
	return nil
}

type testPush struct {
	Text string
}

func (m *testPush) Marshal() ([]byte, error) { return []byte(m.Text), nil }
func (m *testPush) Unmarshal(b []byte) error {
	m.Text = string(b)
	return nil
}

// failMarshal always errors, for exercising Send's error path.
type failMarshal struct{}

var errMarshal = errors.New("marshal failed")

func (failMarshal) Marshal() ([]byte, error) { return nil, errMarshal }
func (failMarshal) Unmarshal([]byte) error   { return nil }

func testRegistry() *Registry {
	return NewRegistry(
		Entry{
			Opcode:          100,
			Request:         &testRequest{},
			RequestCtor:     func() Body { return &testRequest{} },
			Response:        &testResponse{},
			ResponseCtor:    func() Body { return &testResponse{} },
			ExpectsResponse: true,
		},
		Entry{
			Opcode:      200,
			Request:     &testPush{},
			RequestCtor: func() Body { return &testPush{} },
		},
	)
}

func TestOpcodeForResolvesRegisteredTypes(t *testing.T) {
	r := testRegistry()

	opcode, ok := r.OpcodeFor(&testRequest{})
	require.True(t, ok)
	require.Equal(t, uint32(100), opcode)

	opcode, ok = r.OpcodeFor(&testResponse{})
	require.True(t, ok)
	require.Equal(t, uint32(100), opcode)

	_, ok = r.OpcodeFor(&testPush{})
	require.True(t, ok)
}

func TestOpcodeForUnregisteredTypeFails(t *testing.T) {
	r := testRegistry()
	_, ok := r.OpcodeFor(failMarshal{})
	require.False(t, ok)
}

func TestConstructRequestAndResponse(t *testing.T) {
	r := testRegistry()

	req, ok := r.Construct(100, false)
	require.True(t, ok)
	require.IsType(t, &testRequest{}, req)

	resp, ok := r.Construct(100, true)
	require.True(t, ok)
	require.IsType(t, &testResponse{}, resp)

	_, ok = r.Construct(999, false)
	require.False(t, ok)
}

func TestExpectsResponseAndHasRequestHandler(t *testing.T) {
	r := testRegistry()

	require.True(t, r.ExpectsResponse(100))
	require.False(t, r.ExpectsResponse(200))
	require.False(t, r.ExpectsResponse(999))

	require.True(t, r.HasRequestHandler(100))
	require.True(t, r.HasRequestHandler(200))
	require.False(t, r.HasRequestHandler(999))
}
