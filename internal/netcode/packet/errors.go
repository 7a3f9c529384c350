package packet

import (
	"crypto/sha256"
	"errors"
	"hash"
)

// Error kinds for the packet codec (spec.md §4.1, §7).
var (
	// ErrMalformedFrame is returned when a datagram is too short or its
	// header fields are internally inconsistent.
	ErrMalformedFrame = errors.New("packet: malformed frame")

	// ErrAuthFailure is returned when the AEAD tag fails to verify.
	ErrAuthFailure = errors.New("packet: authentication failure")

	// ErrTooLarge is returned when an encoded datagram would exceed
	// constants.MaxDatagramSize.
	ErrTooLarge = errors.New("packet: datagram too large")
)

func newSHA256() hash.Hash {
	return sha256.New()
}
