package ds3

import (
	"encoding/binary"
	"fmt"
)

// wireWriter and wireReader give each message.Body a small self-describing
// binary encoding (length-prefixed strings/blobs, big-endian integers),
// in place of the generated-protobuf marshaling the original client
// speaks. See DESIGN.md for why: no protoc pipeline is available to this
// build.
type wireWriter struct {
	buf []byte
}

func (w *wireWriter) uint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *wireWriter) int32(v int32) {
	w.uint32(uint32(v))
}

func (w *wireWriter) uint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *wireWriter) int64(v int64) {
	w.uint64(uint64(v))
}

func (w *wireWriter) stringSlice(v []string) {
	w.uint32(uint32(len(v)))
	for _, e := range v {
		w.string(e)
	}
}

func (w *wireWriter) bool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

func (w *wireWriter) bytes(v []byte) {
	w.uint32(uint32(len(v)))
	w.buf = append(w.buf, v...)
}

func (w *wireWriter) string(v string) {
	w.bytes([]byte(v))
}

func (w *wireWriter) uint32Slice(v []uint32) {
	w.uint32(uint32(len(v)))
	for _, e := range v {
		w.uint32(e)
	}
}

func (w *wireWriter) bytesSlice(v [][]byte) {
	w.uint32(uint32(len(v)))
	for _, e := range v {
		w.bytes(e)
	}
}

type wireReader struct {
	buf []byte
	pos int
}

var errWireTruncated = fmt.Errorf("ds3: truncated message body")

func (r *wireReader) uint32() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, errWireTruncated
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *wireReader) int32() (int32, error) {
	v, err := r.uint32()
	return int32(v), err
}

func (r *wireReader) uint64() (uint64, error) {
	if r.pos+8 > len(r.buf) {
		return 0, errWireTruncated
	}
	v := binary.BigEndian.Uint64(r.buf[r.pos : r.pos+8])
	r.pos += 8
	return v, nil
}

func (r *wireReader) int64() (int64, error) {
	v, err := r.uint64()
	return int64(v), err
}

func (r *wireReader) stringSlice() ([]string, error) {
	n, err := r.uint32()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := uint32(0); i < n; i++ {
		s, err := r.string()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *wireReader) boolean() (bool, error) {
	if r.pos+1 > len(r.buf) {
		return false, errWireTruncated
	}
	v := r.buf[r.pos] != 0
	r.pos++
	return v, nil
}

func (r *wireReader) bytes() ([]byte, error) {
	n, err := r.uint32()
	if err != nil {
		return nil, err
	}
	if r.pos+int(n) > len(r.buf) {
		return nil, errWireTruncated
	}
	v := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return v, nil
}

func (r *wireReader) string() (string, error) {
	b, err := r.bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *wireReader) uint32Slice() ([]uint32, error) {
	n, err := r.uint32()
	if err != nil {
		return nil, err
	}
	out := make([]uint32, 0, n)
	for i := uint32(0); i < n; i++ {
		v, err := r.uint32()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *wireReader) bytesSlice() ([][]byte, error) {
	n, err := r.uint32()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, n)
	for i := uint32(0); i < n; i++ {
		v, err := r.bytes()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
