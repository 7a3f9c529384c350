package sanitize

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func appendEntry(dst []byte, tag uint32, payload []byte) []byte {
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], tag)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(payload)))
	dst = append(dst, hdr[:]...)
	dst = append(dst, payload...)
	return dst
}

func TestValidateEntryListAcceptsWellFormedEntries(t *testing.T) {
	var data []byte
	data = appendEntry(data, 1, []byte("hello"))
	data = appendEntry(data, 2, nil)
	data = appendEntry(data, 3, []byte("world!!"))

	require.NoError(t, ValidateEntryList(data))
}

func TestValidateEntryListEmptyIsValid(t *testing.T) {
	require.NoError(t, ValidateEntryList(nil))
}

func TestValidateEntryListRejectsOverrun(t *testing.T) {
	var data []byte
	data = appendEntry(data, 1, []byte("short"))
	data[4] = 0xFF // inflate the declared size past the buffer
	require.ErrorIs(t, ValidateEntryList(data), ErrEntrySizeMismatch)
}

func TestValidateEntryListRejectsTrailingGarbage(t *testing.T) {
	var data []byte
	data = appendEntry(data, 1, []byte("ok"))
	data = append(data, 0x01, 0x02, 0x03) // fewer than 8 trailing bytes: not a new entry, not consumed

	require.ErrorIs(t, ValidateEntryList(data), ErrEntrySizeMismatch)
}

func TestValidateEntryListValidatesEmbeddedNRSSR(t *testing.T) {
	nrssr := buildValidNRSSR(t, nil, "HOSTNAME")
	var data []byte
	data = appendEntry(data, 1, nrssr)

	require.NoError(t, ValidateEntryList(data))
}

func TestValidateEntryListRejectsInvalidEmbeddedNRSSR(t *testing.T) {
	nrssr := buildValidNRSSR(t, nil, "HOSTNAME")
	nrssr[6] = 200 // claim 200 properties with no data behind them

	var data []byte
	data = appendEntry(data, 1, nrssr)

	err := ValidateEntryList(data)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEntrySizeMismatch)
}
