package crypto

import (
	"crypto/sha256"

	"github.com/mr-tron/base58"
)

// Fingerprint returns a short display fingerprint of a public key:
// base58 over the first 10 bytes of its SHA-256 digest.
func Fingerprint(pub []byte) string {
	sum := sha256.Sum256(pub)
	return base58.Encode(sum[:10])
}
