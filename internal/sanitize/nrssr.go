// Package sanitize validates the size-delimited entry lists and embedded
// NetworkReliableSessionSearchResult (NRSSR) records the client uploads in
// several opaque blobs (spec.md §4.10). This guards against the same
// out-of-bounds-read and remote-code-execution class of bug the original
// game client shipped with (publicly tracked as CVE-2022-24126): every
// size field is checked against the bytes actually remaining before it is
// trusted.
package sanitize

import (
	"encoding/binary"

	"github.com/TLeonardUK/ds3os-sub000/internal/constants"
)

const (
	nrssrPropertyHeaderSize = 6 // 4-byte id/unknown + 1-byte type + 1-byte padding
	nrssrPropertyTypeInt32  = 1
	nrssrPropertyTypeInt64A = 2
	nrssrPropertyTypeInt64B = 3
	nrssrPropertyTypeWStr   = 4

	nrssrSessionDataSizeFieldLen = 2
	nrssrHostOnlineIDSize        = 8
	nrssrSessionDataSize         = 8
)

// looksLikeNRSSR reports whether data begins with the NRSSR signature and
// version the game client stamps on session-search-result records.
func looksLikeNRSSR(data []byte) bool {
	if len(data) < 6 {
		return false
	}
	sig := binary.LittleEndian.Uint32(data[0:4])
	ver := binary.LittleEndian.Uint16(data[4:6])
	return sig == constants.NRSSRSignature && uint32(ver) == constants.NRSSRVersion
}

// ValidateNRSSR parses and fully validates one embedded NRSSR record
// (spec.md §4.10 item 2).
func ValidateNRSSR(data []byte) error {
	if !looksLikeNRSSR(data) {
		return ErrNRSSRSignatureMismatch
	}
	if len(data) < 7 {
		return ErrNRSSRPropertyMetaInsufficient
	}

	propertyCount := int(data[6])
	pos := 7

	for i := 0; i < propertyCount; i++ {
		if len(data)-pos < nrssrPropertyHeaderSize {
			return ErrNRSSRPropertyMetaInsufficient
		}
		propType := data[pos+4]
		pos += nrssrPropertyHeaderSize

		switch propType {
		case nrssrPropertyTypeInt32:
			if len(data)-pos < 4 {
				return ErrNRSSRProperty4ByteInsuffient
			}
			pos += 4
		case nrssrPropertyTypeInt64A, nrssrPropertyTypeInt64B:
			if len(data)-pos < 8 {
				return ErrNRSSRProperty8ByteInsuffient
			}
			pos += 8
		case nrssrPropertyTypeWStr:
			n, ok := consumeWString(data, pos, constants.NRSSRMaxPropertyStringLen)
			if !ok {
				return ErrNRSSRPropertyStringOverflow
			}
			pos += n
		default:
			return ErrNRSSRPropertyInvalidType
		}
	}

	n, ok := consumeWString(data, pos, constants.NRSSRMaxHostNameLen)
	if !ok {
		return ErrNRSSRNameStringOverflow
	}
	pos += n

	if len(data)-pos != nrssrSessionDataSizeFieldLen+nrssrHostOnlineIDSize+nrssrSessionDataSize {
		return ErrNRSSRRemainingSizeMismatch
	}

	sizeField := binary.BigEndian.Uint16(data[pos+nrssrHostOnlineIDSize : pos+nrssrHostOnlineIDSize+2])
	if sizeField != constants.NRSSRSessionSize {
		return ErrNRSSRSessionSizeAbnormal
	}
	return nil
}

// consumeWString scans a null-terminated UTF-16 string starting at pos,
// returning the number of bytes it (including its terminator) occupies.
// ok is false if the string is unterminated within the remaining buffer or
// exceeds maxChars code units.
func consumeWString(data []byte, pos, maxChars int) (int, bool) {
	available := (len(data) - pos) / 2
	length := 0
	for length < available {
		u := binary.LittleEndian.Uint16(data[pos+2*length : pos+2*length+2])
		if u == 0 {
			break
		}
		length++
	}
	if length >= available || length >= maxChars {
		return 0, false
	}
	return 2 * (length + 1), true
}
