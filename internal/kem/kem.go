package kem

import (
	"errors"
	"fmt"

	circlkem "github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/kyber/kyber1024"
	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
)

// Serialized forms of KEM values as they appear in pre-key bundles and
// handshake messages.
type (
	PublicKey    []byte
	SecretKey    []byte
	Ciphertext   []byte
	SharedSecret []byte
)

// KeyPair couples a KEM public key with the secret key it was generated with.
type KeyPair struct {
	Public PublicKey
	Secret SecretKey
}

// Algorithm selects a KEM profile. Each profile fixes the byte lengths of
// public keys, secret keys, ciphertexts and shared secrets.
type Algorithm uint8

const (
	Kyber1024 Algorithm = iota + 1
	MLKEM1024
)

func (a Algorithm) String() string {
	switch a {
	case Kyber1024:
		return "kyber1024"
	case MLKEM1024:
		return "mlkem1024"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// ParseAlgorithm maps a profile name to its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "kyber1024":
		return Kyber1024, nil
	case "mlkem1024":
		return MLKEM1024, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

var (
	ErrUnknownAlgorithm  = errors.New("unknown KEM algorithm")
	ErrInvalidPublicKey  = errors.New("invalid KEM public key")
	ErrInvalidSecretKey  = errors.New("invalid KEM secret key")
	ErrInvalidCiphertext = errors.New("invalid KEM ciphertext")
)

// Provider exposes one KEM profile as a generate/encapsulate/decapsulate
// capability. It holds no mutable state; its only side effect is randomness
// consumption, so a single Provider is safe for concurrent use.
type Provider struct {
	alg    Algorithm
	scheme circlkem.Scheme
}

// New returns the Provider for alg.
func New(alg Algorithm) (*Provider, error) {
	switch alg {
	case Kyber1024:
		return &Provider{alg: alg, scheme: kyber1024.Scheme()}, nil
	case MLKEM1024:
		return &Provider{alg: alg, scheme: mlkem1024.Scheme()}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, uint8(alg))
	}
}

func (p *Provider) Algorithm() Algorithm { return p.alg }

// Profile lengths, in bytes.
func (p *Provider) PublicKeySize() int    { return p.scheme.PublicKeySize() }
func (p *Provider) SecretKeySize() int    { return p.scheme.PrivateKeySize() }
func (p *Provider) CiphertextSize() int   { return p.scheme.CiphertextSize() }
func (p *Provider) SharedSecretSize() int { return p.scheme.SharedKeySize() }

// Generate samples a fresh key pair. An entropy-source failure here is not a
// recoverable protocol condition.
func (p *Provider) Generate() (KeyPair, error) {
	pk, sk, err := p.scheme.GenerateKeyPair()
	if err != nil {
		return KeyPair{}, fmt.Errorf("kem keygen (%s): %w", p.alg, err)
	}
	pub, err := pk.MarshalBinary()
	if err != nil {
		return KeyPair{}, fmt.Errorf("kem keygen (%s): %w", p.alg, err)
	}
	sec, err := sk.MarshalBinary()
	if err != nil {
		return KeyPair{}, fmt.Errorf("kem keygen (%s): %w", p.alg, err)
	}
	return KeyPair{Public: pub, Secret: sec}, nil
}

// Encapsulate derives a fresh shared secret bound to pub and the ciphertext
// that transports it.
func (p *Provider) Encapsulate(pub PublicKey) (SharedSecret, Ciphertext, error) {
	if len(pub) != p.scheme.PublicKeySize() {
		return nil, nil, fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidPublicKey, len(pub), p.scheme.PublicKeySize())
	}
	pk, err := p.scheme.UnmarshalBinaryPublicKey(pub)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	ct, ss, err := p.scheme.Encapsulate(pk)
	if err != nil {
		return nil, nil, fmt.Errorf("kem encapsulate (%s): %w", p.alg, err)
	}
	return ss, ct, nil
}

// Decapsulate recovers the shared secret from ct under sec. A well-formed
// ciphertext that was not produced against sec's public key still yields a
// fixed-length pseudorandom secret (implicit rejection); only inputs of the
// wrong length fail.
func (p *Provider) Decapsulate(sec SecretKey, ct Ciphertext) (SharedSecret, error) {
	if len(sec) != p.scheme.PrivateKeySize() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidSecretKey, len(sec), p.scheme.PrivateKeySize())
	}
	if len(ct) != p.scheme.CiphertextSize() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidCiphertext, len(ct), p.scheme.CiphertextSize())
	}
	sk, err := p.scheme.UnmarshalBinaryPrivateKey(sec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecretKey, err)
	}
	ss, err := p.scheme.Decapsulate(sk, ct)
	if err != nil {
		return nil, fmt.Errorf("kem decapsulate (%s): %w", p.alg, err)
	}
	return ss, nil
}
