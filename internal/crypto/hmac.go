package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
)

// HMACSHA256 computes HMAC-SHA-256 of msg under key.
func HMACSHA256(key, msg []byte) (out [32]byte) {
	h := hmac.New(sha256.New, key)
	h.Write(msg)
	copy(out[:], h.Sum(nil))
	return out
}
