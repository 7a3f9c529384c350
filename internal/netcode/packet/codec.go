package packet

import "github.com/TLeonardUK/ds3os-sub000/internal/constants"

// Packet is the decoded logical form of one UDP datagram (spec.md §4.1):
// a header (type, sequence, optional ack, optional fragment-final flag)
// plus an application payload. Payload is empty for types that carry no
// body (SYN, ACK, RST, HBT).
type Packet struct {
	Header  Header
	Payload []byte
}

// Encode authenticates and encrypts p with sc and returns the on-wire
// datagram. The header travels in cleartext but is bound into the AEAD
// tag as associated data.
func Encode(sc *SessionCipher, p Packet) ([]byte, error) {
	datagram := p.Header.appendTo(make([]byte, 0, p.Header.encodedSize()+len(p.Payload)+sc.Overhead()))
	headerLen := len(datagram)
	datagram = sc.Seal(datagram, p.Payload, datagram[:headerLen], p.Header.Seq)

	if len(datagram) > constants.MaxDatagramSize {
		return nil, ErrTooLarge
	}
	return datagram, nil
}

// Decode authenticates and decrypts a received datagram with sc. A
// datagram whose AEAD tag does not verify returns ErrAuthFailure and
// must be silently dropped by the caller (spec.md §4.1, §7).
func Decode(sc *SessionCipher, datagram []byte) (Packet, error) {
	if len(datagram) > constants.MaxDatagramSize {
		return Packet{}, ErrTooLarge
	}

	h, n, err := parseHeader(datagram)
	if err != nil {
		return Packet{}, err
	}

	headerBytes := datagram[:n]
	ciphertext := datagram[n:]

	plaintext, err := sc.Open(nil, ciphertext, headerBytes, h.Seq)
	if err != nil {
		return Packet{}, err
	}

	return Packet{Header: h, Payload: plaintext}, nil
}
