package message

import "encoding/binary"

// HeaderSize is the fixed, unencrypted frame header length (spec.md §4.3).
const HeaderSize = 12

// Header is the 12-byte message frame header: big-endian header_size and
// msg_type, little-endian msg_index.
type Header struct {
	// HeaderSize is the total encoded frame length (header + compressed
	// body), filled in by Encode and checked by Decode against the
	// actual datagram length.
	HeaderSize uint32
	MsgType    uint32 // opcode
	MsgIndex   uint32 // request/response correlation sequence
}

func (h Header) appendTo(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, h.HeaderSize)
	dst = binary.BigEndian.AppendUint32(dst, h.MsgType)
	dst = binary.LittleEndian.AppendUint32(dst, h.MsgIndex)
	return dst
}

func parseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrMalformedFrame
	}
	return Header{
		HeaderSize: binary.BigEndian.Uint32(buf[0:4]),
		MsgType:    binary.BigEndian.Uint32(buf[4:8]),
		MsgIndex:   binary.LittleEndian.Uint32(buf[8:12]),
	}, nil
}
