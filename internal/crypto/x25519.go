package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/curve25519"

	"tangle/internal/domain"
)

// ErrKeyAgreement is returned when an X25519 agreement cannot be computed,
// typically because the peer supplied malformed key material. Retrying with
// the same input cannot succeed.
var ErrKeyAgreement = errors.New("x25519 key agreement failed")

// GenerateX25519 returns a fresh Curve25519 key pair.
// The private key is clamped per RFC 7748.
func GenerateX25519() (domain.KeyPair, error) {
	var priv domain.X25519Private
	if _, err := rand.Read(priv[:]); err != nil {
		return domain.KeyPair{}, fmt.Errorf("x25519 keygen: %w", err)
	}
	clamp(&priv)
	pb, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("x25519 keygen: %w", err)
	}
	var pub domain.X25519Public
	copy(pub[:], pb)
	return domain.KeyPair{Private: priv, Public: pub}, nil
}

// DH computes the X25519 agreement between our private key and their
// public key, yielding a 32-byte shared secret.
func DH(priv domain.X25519Private, pub domain.X25519Public) (out [32]byte, err error) {
	secret, err := curve25519.X25519(priv.Slice(), pub.Slice())
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrKeyAgreement, err)
	}
	copy(out[:], secret)
	return out, nil
}

func clamp(k *domain.X25519Private) {
	kb := k[:]
	kb[0] &= 248
	kb[31] &= 127
	kb[31] |= 64
}
