package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"tangle/internal/crypto"
	"tangle/internal/domain"
	"tangle/internal/protocol/ratchet"
)

// ErrInvalidMAC is returned when a message fails authentication.
var ErrInvalidMAC = errors.New("session: message authentication failed")

// seal encrypts plaintext with the message keys' cipher key and IV, then
// appends an HMAC-SHA-256 tag over ad, the encoded header and the ciphertext.
func seal(mk ratchet.MessageKeys, h domain.Header, ad, plaintext []byte) ([]byte, error) {
	ct := crypto.EncryptCBC(mk.CipherKey, mk.IV, plaintext)
	tag := crypto.HMACSHA256(mk.MACKey[:], macInput(h, ad, ct))
	return append(ct, tag[:]...), nil
}

// open verifies the tag in constant time and decrypts.
func open(mk ratchet.MessageKeys, h domain.Header, ad, sealed []byte) ([]byte, error) {
	if len(sealed) < sha256.Size {
		return nil, ErrInvalidMAC
	}
	ct := sealed[:len(sealed)-sha256.Size]
	tag := sealed[len(sealed)-sha256.Size:]

	want := crypto.HMACSHA256(mk.MACKey[:], macInput(h, ad, ct))
	if !hmac.Equal(tag, want[:]) {
		return nil, ErrInvalidMAC
	}
	return crypto.DecryptCBC(mk.CipherKey, mk.IV, ct)
}

func macInput(h domain.Header, ad, ct []byte) []byte {
	out := make([]byte, 0, len(ad)+len(h.RatchetKey)+8+len(ct))
	out = append(out, ad...)
	out = append(out, h.RatchetKey[:]...)
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], h.PN)
	out = append(out, b[:]...)
	binary.BigEndian.PutUint32(b[:], h.N)
	out = append(out, b[:]...)
	return append(out, ct...)
}
