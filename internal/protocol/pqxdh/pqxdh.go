package pqxdh

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"tangle/internal/crypto"
	"tangle/internal/domain"
	"tangle/internal/kem"
	"tangle/internal/protocol/ratchet"
	"tangle/internal/util/memzero"
)

// Handshake labels. The post-quantum label is used whenever a KEM secret is
// mixed into the transcript; both sides must agree or derivation diverges.
const (
	labelClassical   = "WhisperText"
	labelPostQuantum = "WhisperText_X25519_SHA-256_CRYSTALS-KYBER-1024"
)

var (
	// ErrMissingKEMKeyPair is returned when a responder parameter set
	// carries a peer KEM ciphertext but no key pair to open it with.
	ErrMissingKEMKeyPair = errors.New("pqxdh: KEM ciphertext supplied without a KEM pre-key pair")

	// ErrMissingKEMProvider is returned when KEM material is present in
	// the parameters but no provider was supplied.
	ErrMissingKEMProvider = errors.New("pqxdh: KEM material present but no provider configured")
)

// Bundle is the public handshake material a responder publishes: identity
// and signing keys, a signed pre-key with its signature, a ratchet key, and
// optionally a one-time pre-key and a KEM pre-key.
type Bundle struct {
	IdentityKey     domain.X25519Public
	SigningKey      domain.Ed25519Public
	SignedPreKey    domain.X25519Public
	SignedPreKeySig []byte
	RatchetKey      domain.X25519Public

	OneTimePreKey *domain.X25519Public
	KEMAlgorithm  kem.Algorithm // zero when no KEM pre-key is offered
	KEMPreKey     kem.PublicKey
}

// VerifySignedPreKey checks the bundle's pre-key signature.
func VerifySignedPreKey(signingKey domain.Ed25519Public, signedPreKey domain.X25519Public, sig []byte) bool {
	return crypto.VerifyEd25519(signingKey, signedPreKey.Slice(), sig)
}

// InitiatorSecrets combines the initiator's DH agreements (plus one
// encapsulation when the peer offered a KEM pre-key) into the first
// (root key, chain key) pair. The returned ciphertext must travel to the
// responder with the first message; it is nil for a classical handshake.
//
// provider may be nil when the parameter set carries no KEM pre-key.
func InitiatorSecrets(provider *kem.Provider, alice *ratchet.AliceParameters) (ratchet.RootKey, ratchet.ChainKey, kem.Ciphertext, error) {
	var zero ratchet.RootKey

	secrets := newTranscript()
	defer func() { memzero.Zero(secrets) }()

	dh1, err := crypto.DH(alice.OurIdentityKeyPair().Private, alice.TheirSignedPreKey())
	if err != nil {
		return zero, ratchet.ChainKey{}, nil, err
	}
	dh2, err := crypto.DH(alice.OurBaseKeyPair().Private, alice.TheirIdentityKey())
	if err != nil {
		return zero, ratchet.ChainKey{}, nil, err
	}
	dh3, err := crypto.DH(alice.OurBaseKeyPair().Private, alice.TheirSignedPreKey())
	if err != nil {
		return zero, ratchet.ChainKey{}, nil, err
	}
	secrets = append(secrets, dh1[:]...)
	secrets = append(secrets, dh2[:]...)
	secrets = append(secrets, dh3[:]...)

	if opk := alice.TheirOneTimePreKey(); opk != nil {
		dh4, err := crypto.DH(alice.OurBaseKeyPair().Private, *opk)
		if err != nil {
			return zero, ratchet.ChainKey{}, nil, err
		}
		secrets = append(secrets, dh4[:]...)
	}

	label := labelClassical
	var ciphertext kem.Ciphertext
	if pk := alice.TheirKEMPreKey(); pk != nil {
		if provider == nil {
			return zero, ratchet.ChainKey{}, nil, ErrMissingKEMProvider
		}
		ss, ct, err := provider.Encapsulate(pk)
		if err != nil {
			return zero, ratchet.ChainKey{}, nil, fmt.Errorf("pqxdh: %w", err)
		}
		secrets = append(secrets, ss...)
		memzero.Zero(ss)
		ciphertext = ct
		label = labelPostQuantum
	}

	root, chain := deriveInitial(secrets, label)
	return root, chain, ciphertext, nil
}

// ResponderSecrets mirrors InitiatorSecrets on the responder side, feeding
// the symmetric DH set and the KEM decapsulation result into the same
// derivation.
func ResponderSecrets(provider *kem.Provider, bob *ratchet.BobParameters) (ratchet.RootKey, ratchet.ChainKey, error) {
	var zero ratchet.RootKey

	secrets := newTranscript()
	defer func() { memzero.Zero(secrets) }()

	dh1, err := crypto.DH(bob.OurSignedPreKeyPair().Private, bob.TheirIdentityKey())
	if err != nil {
		return zero, ratchet.ChainKey{}, err
	}
	dh2, err := crypto.DH(bob.OurIdentityKeyPair().Private, bob.TheirBaseKey())
	if err != nil {
		return zero, ratchet.ChainKey{}, err
	}
	dh3, err := crypto.DH(bob.OurSignedPreKeyPair().Private, bob.TheirBaseKey())
	if err != nil {
		return zero, ratchet.ChainKey{}, err
	}
	secrets = append(secrets, dh1[:]...)
	secrets = append(secrets, dh2[:]...)
	secrets = append(secrets, dh3[:]...)

	if opk := bob.OurOneTimePreKey(); opk != nil {
		dh4, err := crypto.DH(opk.Private, bob.TheirBaseKey())
		if err != nil {
			return zero, ratchet.ChainKey{}, err
		}
		secrets = append(secrets, dh4[:]...)
	}

	label := labelClassical
	if ct := bob.TheirKEMCiphertext(); ct != nil {
		pair := bob.OurKEMPreKeyPair()
		if pair == nil {
			return zero, ratchet.ChainKey{}, ErrMissingKEMKeyPair
		}
		if provider == nil {
			return zero, ratchet.ChainKey{}, ErrMissingKEMProvider
		}
		ss, err := provider.Decapsulate(pair.Secret, ct)
		if err != nil {
			return zero, ratchet.ChainKey{}, fmt.Errorf("pqxdh: %w", err)
		}
		secrets = append(secrets, ss...)
		memzero.Zero(ss)
		label = labelPostQuantum
	}

	root, chain := deriveInitial(secrets, label)
	return root, chain, nil
}

// newTranscript starts the secret transcript with the discontinuity prefix
// that keeps the derivation domain-separated from plain agreements.
func newTranscript() []byte {
	prefix := make([]byte, 32, 32+5*32+64)
	for i := range prefix {
		prefix[i] = 0xFF
	}
	return prefix
}

func deriveInitial(secrets []byte, label string) (ratchet.RootKey, ratchet.ChainKey) {
	var derived [64]byte
	r := hkdf.New(sha256.New, secrets, nil, []byte(label))
	if _, err := io.ReadFull(r, derived[:]); err != nil {
		// Fixed 64-byte output; failure means a broken build.
		panic(fmt.Sprintf("pqxdh: hkdf expand failed: %v", err))
	}

	var rk, ck [32]byte
	copy(rk[:], derived[0:32])
	copy(ck[:], derived[32:64])
	memzero.Zero(derived[:])
	return ratchet.NewRootKey(rk), ratchet.NewChainKey(ck, 0)
}
