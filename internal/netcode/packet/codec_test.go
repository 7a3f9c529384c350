package packet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	sc, err := NewSessionCipher(testKey())
	require.NoError(t, err)

	cases := []Packet{
		{Header: Header{Type: TypeSYN, Seq: 1}},
		{Header: Header{Type: TypeSYNACK, Seq: 1, Ack: 1}},
		{Header: Header{Type: TypeACK, Seq: 2, Ack: 5}},
		{Header: Header{Type: TypeDAT, Seq: 5}, Payload: []byte("hello world")},
		{Header: Header{Type: TypeDATACK, Seq: 6, Ack: 5}, Payload: []byte("piggyback")},
		{Header: Header{Type: TypeDATFRAG, Seq: 7, FragFinal: false}, Payload: []byte("frag one")},
		{Header: Header{Type: TypeDATFRAGACK, Seq: 8, Ack: 7, FragFinal: true}, Payload: []byte("frag last")},
		{Header: Header{Type: TypeHBT, Seq: 9}},
		{Header: Header{Type: TypeRST, Seq: 10}},
	}

	for _, want := range cases {
		t.Run(want.Header.Type.String(), func(t *testing.T) {
			datagram, err := Encode(sc, want)
			require.NoError(t, err)
			require.LessOrEqual(t, len(datagram), 2048)

			got, err := Decode(sc, datagram)
			require.NoError(t, err)
			require.Equal(t, want.Header, got.Header)
			if len(want.Payload) == 0 {
				require.Empty(t, got.Payload)
			} else {
				require.Equal(t, want.Payload, got.Payload)
			}
		})
	}
}

func TestDecodeRejectsTamperedHeader(t *testing.T) {
	sc, err := NewSessionCipher(testKey())
	require.NoError(t, err)

	datagram, err := Encode(sc, Packet{Header: Header{Type: TypeDAT, Seq: 1}, Payload: []byte("x")})
	require.NoError(t, err)

	// Flip the sequence field; the AEAD tag was computed over the
	// original header as associated data, so this must fail auth.
	tampered := append([]byte(nil), datagram...)
	tampered[4] ^= 0xFF

	_, err = Decode(sc, tampered)
	require.ErrorIs(t, err, ErrAuthFailure)
}

func TestDecodeRejectsWrongKey(t *testing.T) {
	sc1, err := NewSessionCipher(testKey())
	require.NoError(t, err)
	other := append([]byte(nil), testKey()...)
	other[0] ^= 0xFF
	sc2, err := NewSessionCipher(other)
	require.NoError(t, err)

	datagram, err := Encode(sc1, Packet{Header: Header{Type: TypeDAT, Seq: 1}, Payload: []byte("secret")})
	require.NoError(t, err)

	_, err = Decode(sc2, datagram)
	require.ErrorIs(t, err, ErrAuthFailure)
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	sc, err := NewSessionCipher(testKey())
	require.NoError(t, err)

	_, err = Decode(sc, []byte{0x01, 0x02})
	require.ErrorIs(t, err, ErrMalformedFrame)
}

func TestEncodeRejectsOversizedDatagram(t *testing.T) {
	sc, err := NewSessionCipher(testKey())
	require.NoError(t, err)

	huge := make([]byte, 4096)
	_, err = Encode(sc, Packet{Header: Header{Type: TypeDAT, Seq: 1}, Payload: huge})
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestNewSessionCipherRejectsBadKeySize(t *testing.T) {
	_, err := NewSessionCipher([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestNonceVariesWithSequence(t *testing.T) {
	sc, err := NewSessionCipher(testKey())
	require.NoError(t, err)

	n1 := sc.nonceFor(1)
	n2 := sc.nonceFor(2)
	require.NotEqual(t, n1, n2)
}
