// Package packet implements the reliable-UDP wire codec (spec.md §4.1):
// per-packet AEAD encryption keyed by the session's AuthTicket symmetric
// key, and the fixed header layout the reliable stream builds on.
package packet

import (
	"crypto/cipher"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// KeySize is the length of the symmetric key handed off by the
// credential/handshake service inside an AuthTicket (spec.md §3).
const KeySize = 16

// SessionCipher encrypts and authenticates packet payloads for one
// session. The nonce for each packet is derived from the packet's
// sequence index plus a fixed per-session salt, so packets never reuse a
// nonce under the same key (spec.md §4.1).
//
// The 16-byte AuthTicket key is stretched to a 32-byte ChaCha20-Poly1305
// key and a 12-byte nonce salt via HKDF, so the wire cipher gets full-
// strength AEAD security from a short handed-off key.
type SessionCipher struct {
	aead cipher.AEAD
	salt [chacha20poly1305.NonceSize]byte
}

// NewSessionCipher derives a SessionCipher from the 16-byte AuthTicket key.
func NewSessionCipher(key []byte) (*SessionCipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("session cipher: key must be %d bytes, got %d", KeySize, len(key))
	}

	expanded := make([]byte, chacha20poly1305.KeySize+chacha20poly1305.NonceSize)
	kdf := hkdf.New(newSHA256, key, nil, []byte("ds3os-sub000/packet-cipher"))
	if _, err := io.ReadFull(kdf, expanded); err != nil {
		return nil, fmt.Errorf("session cipher: deriving key material: %w", err)
	}

	aead, err := chacha20poly1305.New(expanded[:chacha20poly1305.KeySize])
	if err != nil {
		return nil, fmt.Errorf("session cipher: constructing AEAD: %w", err)
	}

	sc := &SessionCipher{aead: aead}
	copy(sc.salt[:], expanded[chacha20poly1305.KeySize:])
	return sc, nil
}

// nonceFor derives the per-packet nonce: the sequence index XORed into
// the low 4 bytes of the session salt. Two packets from the same session
// never share a sequence index (spec.md §4.2 strictly increasing send_seq),
// so nonces never repeat under this key.
func (sc *SessionCipher) nonceFor(seq uint32) [chacha20poly1305.NonceSize]byte {
	nonce := sc.salt
	nonce[0] ^= byte(seq >> 24)
	nonce[1] ^= byte(seq >> 16)
	nonce[2] ^= byte(seq >> 8)
	nonce[3] ^= byte(seq)
	return nonce
}

// Seal encrypts plaintext and authenticates it together with the plaintext
// header bytes (aad), appending ciphertext||tag to dst. seq is the
// packet's sequence index. Binding the header as associated data means a
// tampered type/seq/ack field fails authentication even though those
// fields travel unencrypted.
func (sc *SessionCipher) Seal(dst, plaintext, aad []byte, seq uint32) []byte {
	nonce := sc.nonceFor(seq)
	return sc.aead.Seal(dst, nonce[:], plaintext, aad)
}

// Open authenticates ciphertext (which must include the trailing tag)
// together with aad, and decrypts it, returning the plaintext appended to
// dst. Returns ErrAuthFailure if the tag does not verify.
func (sc *SessionCipher) Open(dst, ciphertext, aad []byte, seq uint32) ([]byte, error) {
	nonce := sc.nonceFor(seq)
	out, err := sc.aead.Open(dst, nonce[:], ciphertext, aad)
	if err != nil {
		return nil, ErrAuthFailure
	}
	return out, nil
}

// Overhead is the number of bytes Seal appends beyond the plaintext
// (the Poly1305 authentication tag).
func (sc *SessionCipher) Overhead() int {
	return sc.aead.Overhead()
}
