package ratchet

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"tangle/internal/crypto"
	"tangle/internal/domain"
	"tangle/internal/util/memzero"
)

// HMAC inputs for the two symmetric-ratchet derivations.
const (
	messageKeySeed = 0x01
	chainKeySeed   = 0x02
)

// Derivation labels. These are wire-visible protocol constants; changing
// either breaks interoperability with conformant peers.
var (
	infoMessageKeys = []byte("WhisperMessageKeys")
	infoRatchet     = []byte("WhisperRatchet")
)

// MessageKeys is the single-use symmetric material protecting one message.
// Counter records the chain-key index the keys were derived at; it is
// metadata only and never enters the KDF.
type MessageKeys struct {
	CipherKey [32]byte
	MACKey    [32]byte
	IV        [16]byte
	Counter   uint32
}

// DeriveMessageKeys expands inputKeyMaterial into cipher key, MAC key and IV
// via one HKDF-SHA-256 extract-and-expand with no salt.
func DeriveMessageKeys(inputKeyMaterial []byte, counter uint32) MessageKeys {
	var okm [80]byte
	readFull(hkdf.New(sha256.New, inputKeyMaterial, nil, infoMessageKeys), okm[:])

	mk := MessageKeys{Counter: counter}
	copy(mk.CipherKey[:], okm[0:32])
	copy(mk.MACKey[:], okm[32:64])
	copy(mk.IV[:], okm[64:80])
	memzero.Zero(okm[:])
	return mk
}

// ChainKey is one position of the symmetric ratchet: 32 bytes of secret plus
// the index of that position. Values are immutable; Next returns the
// successor and leaves the receiver usable for MessageKeys at its own index.
type ChainKey struct {
	key   [32]byte
	index uint32
}

// NewChainKey wraps raw chain-key material at the given index.
func NewChainKey(key [32]byte, index uint32) ChainKey {
	return ChainKey{key: key, index: index}
}

// Key returns the chain-key secret.
func (c ChainKey) Key() [32]byte { return c.key }

// Index returns the chain position.
func (c ChainKey) Index() uint32 { return c.index }

// Next advances the symmetric ratchet one step.
func (c ChainKey) Next() ChainKey {
	return ChainKey{
		key:   crypto.HMACSHA256(c.key[:], []byte{chainKeySeed}),
		index: c.index + 1,
	}
}

// MessageKeys derives the message keys for this chain position. Call it
// before advancing past the position with Next; the core keeps no history.
func (c ChainKey) MessageKeys() MessageKeys {
	seed := crypto.HMACSHA256(c.key[:], []byte{messageKeySeed})
	mk := DeriveMessageKeys(seed[:], c.index)
	memzero.Zero32(&seed)
	return mk
}

// RootKey is the asymmetric-ratchet state. It is never used to encrypt
// anything directly; its only operation is CreateChain, which consumes it.
type RootKey struct {
	key      [32]byte
	consumed bool
}

// NewRootKey wraps raw root-key material.
func NewRootKey(key [32]byte) RootKey {
	return RootKey{key: key}
}

// Key returns the root-key secret. It panics if the value was already
// consumed by CreateChain.
func (r *RootKey) Key() [32]byte {
	if r.consumed {
		panic("ratchet: root key read after CreateChain")
	}
	return r.key
}

// CreateChain advances the asymmetric ratchet: it mixes the X25519 agreement
// between theirRatchetKey and ourRatchetKey into the root via HKDF (old root
// as salt) and returns the successor root plus a chain key at index 0.
//
// The receiver is consumed: its memory is wiped and any later use panics, so
// a stale root key cannot be ratcheted twice.
func (r *RootKey) CreateChain(theirRatchetKey domain.X25519Public, ourRatchetKey domain.X25519Private) (RootKey, ChainKey, error) {
	if r.consumed {
		panic("ratchet: root key used after CreateChain")
	}
	shared, err := crypto.DH(ourRatchetKey, theirRatchetKey)
	if err != nil {
		return RootKey{}, ChainKey{}, err
	}

	var derived [64]byte
	readFull(hkdf.New(sha256.New, shared[:], r.key[:], infoRatchet), derived[:])
	memzero.Zero32(&shared)

	var root RootKey
	var chain ChainKey
	copy(root.key[:], derived[0:32])
	copy(chain.key[:], derived[32:64])
	memzero.Zero(derived[:])

	memzero.Zero32(&r.key)
	r.consumed = true
	return root, chain, nil
}

// readFull drains an HKDF reader into out. The requested lengths are fixed
// protocol constants well under the HKDF output limit, so a short read means
// a broken build and aborts instead of propagating.
func readFull(r io.Reader, out []byte) {
	if _, err := io.ReadFull(r, out); err != nil {
		panic(fmt.Sprintf("ratchet: hkdf expand of %d bytes failed: %v", len(out), err))
	}
}
