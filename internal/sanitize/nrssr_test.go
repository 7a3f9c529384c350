package sanitize

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TLeonardUK/ds3os-sub000/internal/constants"
)

// buildValidNRSSR constructs a well-formed NRSSR blob with one property per
// entry in propTypes (1=int32, 2/3=int64, 4=wstring) and the given host
// name, matching the layout DS3_NRSSRSanitizer.h validates.
func buildValidNRSSR(t *testing.T, propTypes []byte, hostname string) []byte {
	t.Helper()

	var buf []byte
	sig := make([]byte, 4)
	binary.LittleEndian.PutUint32(sig, 0x5652584E)
	buf = append(buf, sig...)
	ver := make([]byte, 2)
	binary.LittleEndian.PutUint16(ver, 0x8405)
	buf = append(buf, ver...)
	buf = append(buf, byte(len(propTypes)))

	for _, pt := range propTypes {
		buf = append(buf, 0, 0, 0, 0) // id/unknown
		buf = append(buf, pt, 0)      // type + padding
		switch pt {
		case 1:
			buf = append(buf, 0, 0, 0, 0)
		case 2, 3:
			buf = append(buf, 0, 0, 0, 0, 0, 0, 0, 0)
		case 4:
			buf = append(buf, wstring(t, "v")...)
		}
	}

	buf = append(buf, wstring(t, hostname)...)
	buf = append(buf, make([]byte, 8)...) // host online id
	sizeField := make([]byte, 2)
	binary.BigEndian.PutUint16(sizeField, 8)
	buf = append(buf, sizeField...)
	buf = append(buf, make([]byte, 8)...) // session data

	return buf
}

// wstring encodes s as a null-terminated little-endian UTF-16 string. Only
// ASCII test fixtures are used, so one uint16 per byte is sufficient.
func wstring(t *testing.T, s string) []byte {
	t.Helper()
	out := make([]byte, 0, 2*(len(s)+1))
	for _, r := range s {
		var u [2]byte
		binary.LittleEndian.PutUint16(u[:], uint16(r))
		out = append(out, u[:]...)
	}
	out = append(out, 0, 0)
	return out
}

func TestValidateNRSSRAcceptsWellFormedRecord(t *testing.T) {
	data := buildValidNRSSR(t, []byte{1, 2, 4}, "myhost")
	require.NoError(t, ValidateNRSSR(data))
}

func TestValidateNRSSRRejectsBadSignature(t *testing.T) {
	data := buildValidNRSSR(t, nil, "myhost")
	data[0] ^= 0xFF
	require.ErrorIs(t, ValidateNRSSR(data), ErrNRSSRSignatureMismatch)
}

func TestValidateNRSSRRejectsInvalidPropertyType(t *testing.T) {
	data := buildValidNRSSR(t, []byte{1}, "myhost")
	data[7+4] = 99 // overwrite the property's type byte
	require.ErrorIs(t, ValidateNRSSR(data), ErrNRSSRPropertyInvalidType)
}

func TestValidateNRSSRRejectsTruncated4ByteProperty(t *testing.T) {
	data := buildValidNRSSR(t, []byte{1}, "myhost")
	data = data[:7+6+2] // keep only 2 of the int32 property's 4 payload bytes
	require.Error(t, ValidateNRSSR(data))
}

func TestValidateNRSSRRejectsOversizedPropertyString(t *testing.T) {
	long := make([]byte, constants.NRSSRMaxPropertyStringLen+10)
	for i := range long {
		long[i] = 'a'
	}
	data := buildValidNRSSRWithLongProperty(t, string(long), "host")
	require.ErrorIs(t, ValidateNRSSR(data), ErrNRSSRPropertyStringOverflow)
}

func TestValidateNRSSRRejectsAbnormalSessionSize(t *testing.T) {
	data := buildValidNRSSR(t, nil, "myhost")
	data[len(data)-8-2+1] = 7 // corrupt the low byte of the session-size field
	require.ErrorIs(t, ValidateNRSSR(data), ErrNRSSRSessionSizeAbnormal)
}

// buildValidNRSSRWithLongProperty is like buildValidNRSSR but its single
// property is a wstring of exactly propValue (no truncation from the
// helper's normal ASCII wstring encoder, since propValue already is one).
func buildValidNRSSRWithLongProperty(t *testing.T, propValue, hostname string) []byte {
	t.Helper()

	var buf []byte
	sig := make([]byte, 4)
	binary.LittleEndian.PutUint32(sig, 0x5652584E)
	buf = append(buf, sig...)
	ver := make([]byte, 2)
	binary.LittleEndian.PutUint16(ver, 0x8405)
	buf = append(buf, ver...)
	buf = append(buf, 1)

	buf = append(buf, 0, 0, 0, 0, 4, 0)
	buf = append(buf, wstring(t, propValue)...)

	buf = append(buf, wstring(t, hostname)...)
	buf = append(buf, make([]byte, 8)...)
	sizeField := make([]byte, 2)
	binary.BigEndian.PutUint16(sizeField, 8)
	buf = append(buf, sizeField...)
	buf = append(buf, make([]byte, 8)...)

	return buf
}
