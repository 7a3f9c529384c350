package sanitize

import "encoding/binary"

const entryHeaderSize = 8 // 4-byte tag + 4-byte size

// ValidateEntryList validates that data is a well-formed concatenation of
// (4-byte tag, 4-byte size, size bytes) entries with no over/underrun, and
// recursively validates any entry whose payload looks like an NRSSR record
// (spec.md §4.10 item 1-2). It is the gate every opaque client-supplied
// blob (player_struct, data, ghost_data, relayed message) must pass before
// being cached, relayed, or persisted.
func ValidateEntryList(data []byte) error {
	pos := 0
	for pos+entryHeaderSize <= len(data) {
		size := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
		entryStart := pos + entryHeaderSize
		entryEnd := entryStart + int(size)
		if size > uint32(len(data)) || entryEnd > len(data) || entryEnd < entryStart {
			return ErrEntrySizeMismatch
		}

		entry := data[entryStart:entryEnd]
		if looksLikeNRSSR(entry) {
			if err := ValidateNRSSR(entry); err != nil {
				return err
			}
		}
		pos = entryEnd
	}

	if pos != len(data) {
		return ErrEntrySizeMismatch
	}
	return nil
}
