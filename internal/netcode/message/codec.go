package message

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
)

// Encode builds one message frame: header followed by the DEFLATE-compressed
// body (spec.md §4.3 Encoding). body is the already protobuf-encoded
// payload; Encode does not know about proto types.
func Encode(opcode, index uint32, body []byte) ([]byte, error) {
	compressed, err := compressBody(body)
	if err != nil {
		return nil, err
	}

	h := Header{MsgType: opcode, MsgIndex: index}
	h.HeaderSize = uint32(HeaderSize + len(compressed))

	out := h.appendTo(make([]byte, 0, h.HeaderSize))
	out = append(out, compressed...)
	return out, nil
}

// Decode parses one message frame and inflates its body. raw must be
// exactly one reliable-stream delivered payload (the reliable stream
// already handles reassembly and framing at the datagram level).
func Decode(raw []byte) (Header, []byte, error) {
	h, err := parseHeader(raw)
	if err != nil {
		return Header{}, nil, err
	}
	if int(h.HeaderSize) != len(raw) {
		return Header{}, nil, ErrMalformedFrame
	}

	body, err := decompressBody(raw[HeaderSize:])
	if err != nil {
		return Header{}, nil, ErrMalformedFrame
	}
	return h, body, nil
}

func compressBody(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressBody(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	return io.ReadAll(r)
}
