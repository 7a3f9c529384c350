package message

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	body := []byte("hello opcode world, this is the protobuf-encoded payload")
	frame, err := Encode(42, 7, body)
	require.NoError(t, err)

	hdr, got, err := Decode(frame)
	require.NoError(t, err)
	require.Equal(t, uint32(42), hdr.MsgType)
	require.Equal(t, uint32(7), hdr.MsgIndex)
	require.Equal(t, uint32(len(frame)), hdr.HeaderSize)
	require.Equal(t, body, got)
}

func TestEncodeDecodeEmptyBody(t *testing.T) {
	frame, err := Encode(1, 0, nil)
	require.NoError(t, err)

	hdr, got, err := Decode(frame)
	require.NoError(t, err)
	require.Equal(t, uint32(1), hdr.MsgType)
	require.Empty(t, got)
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	_, _, err := Decode([]byte{0x01, 0x02, 0x03})
	require.ErrorIs(t, err, ErrMalformedFrame)
}

func TestDecodeRejectsLengthMismatch(t *testing.T) {
	frame, err := Encode(1, 0, []byte("data"))
	require.NoError(t, err)

	_, _, err = Decode(append(frame, 0xFF))
	require.ErrorIs(t, err, ErrMalformedFrame)
}

func TestCompressionShrinksRepetitiveBody(t *testing.T) {
	repetitive := make([]byte, 4096)
	frame, err := Encode(1, 0, repetitive)
	require.NoError(t, err)
	require.Less(t, len(frame), len(repetitive))
}
