package packet

import "encoding/binary"

// Type is the packet's flag byte (spec.md §4.1).
type Type byte

const (
	TypeSYN Type = iota + 1
	TypeSYNACK
	TypeACK
	TypeDAT
	TypeDATACK
	TypeDATFRAG
	TypeDATFRAGACK
	TypeHBT
	TypeRST
)

func (t Type) String() string {
	switch t {
	case TypeSYN:
		return "SYN"
	case TypeSYNACK:
		return "SYN-ACK"
	case TypeACK:
		return "ACK"
	case TypeDAT:
		return "DAT"
	case TypeDATACK:
		return "DAT-ACK"
	case TypeDATFRAG:
		return "DAT-FRAG"
	case TypeDATFRAGACK:
		return "DAT-FRAG-ACK"
	case TypeHBT:
		return "HBT"
	case TypeRST:
		return "RST"
	default:
		return "UNKNOWN"
	}
}

// carriesAck reports whether the wire header for t includes the 4-byte
// acknowledged-index field (spec.md §4.1).
func (t Type) carriesAck() bool {
	switch t {
	case TypeSYNACK, TypeACK, TypeDATACK, TypeDATFRAGACK:
		return true
	default:
		return false
	}
}

// isFragment reports whether t is one of the fragmentation-carrying types.
func (t Type) isFragment() bool {
	return t == TypeDATFRAG || t == TypeDATFRAGACK
}

// headerFixedSize is the flag byte plus the 4-byte sequence index that
// every packet type carries.
const headerFixedSize = 1 + 4

// fragFlagFinal marks the last fragment of a fragmented message
// (spec.md §4.2 "the last fragment is marked final").
const (
	fragFlagMore  byte = 0
	fragFlagFinal byte = 1
)

// Header is the plaintext, unencrypted portion of a packet: flag byte,
// big-endian sequence index, and (for ACK-carrying types) a big-endian
// acknowledged index. For fragment types a one-byte final-flag follows.
// It is authenticated (but not encrypted) as AEAD associated data so a
// man-in-the-middle cannot flip a type or sequence field undetected.
type Header struct {
	Type      Type
	Seq       uint32
	Ack       uint32 // valid only when Type.carriesAck()
	FragFinal bool   // valid only when Type.isFragment()
}

// encodedSize returns the on-wire size of the header.
func (h Header) encodedSize() int {
	n := headerFixedSize
	if h.Type.carriesAck() {
		n += 4
	}
	if h.Type.isFragment() {
		n += 1
	}
	return n
}

// appendTo appends the header's wire encoding to dst and returns the
// extended slice.
func (h Header) appendTo(dst []byte) []byte {
	var flagSeq [headerFixedSize]byte
	flagSeq[0] = byte(h.Type)
	binary.BigEndian.PutUint32(flagSeq[1:], h.Seq)
	dst = append(dst, flagSeq[:]...)

	if h.Type.carriesAck() {
		var ack [4]byte
		binary.BigEndian.PutUint32(ack[:], h.Ack)
		dst = append(dst, ack[:]...)
	}
	if h.Type.isFragment() {
		if h.FragFinal {
			dst = append(dst, fragFlagFinal)
		} else {
			dst = append(dst, fragFlagMore)
		}
	}
	return dst
}

// parseHeader decodes a Header from the front of buf, returning the
// header and the number of bytes it consumed.
func parseHeader(buf []byte) (Header, int, error) {
	if len(buf) < headerFixedSize {
		return Header{}, 0, ErrMalformedFrame
	}

	h := Header{
		Type: Type(buf[0]),
		Seq:  binary.BigEndian.Uint32(buf[1:5]),
	}
	n := headerFixedSize

	if h.Type.carriesAck() {
		if len(buf) < n+4 {
			return Header{}, 0, ErrMalformedFrame
		}
		h.Ack = binary.BigEndian.Uint32(buf[n : n+4])
		n += 4
	}
	if h.Type.isFragment() {
		if len(buf) < n+1 {
			return Header{}, 0, ErrMalformedFrame
		}
		h.FragFinal = buf[n] == fragFlagFinal
		n++
	}

	return h, n, nil
}
