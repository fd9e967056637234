package ratchet

import (
	"tangle/internal/domain"
	"tangle/internal/kem"
)

// AliceParameters assembles the initiator's contribution to the handshake.
// The mandatory fields are fixed at construction; the peer's one-time
// pre-key and KEM pre-key may be supplied afterwards through the documented
// setters, either mutating in place (SetX) or returning an updated copy
// (WithX). Nothing else changes after construction.
type AliceParameters struct {
	ourIdentityKeyPair domain.KeyPair
	ourBaseKeyPair     domain.KeyPair

	theirIdentityKey   domain.X25519Public
	theirSignedPreKey  domain.X25519Public
	theirRatchetKey    domain.X25519Public
	theirOneTimePreKey *domain.X25519Public
	theirKEMPreKey     kem.PublicKey
}

// NewAliceParameters builds the mandatory initiator field set.
func NewAliceParameters(
	ourIdentityKeyPair, ourBaseKeyPair domain.KeyPair,
	theirIdentityKey, theirSignedPreKey, theirRatchetKey domain.X25519Public,
) *AliceParameters {
	return &AliceParameters{
		ourIdentityKeyPair: ourIdentityKeyPair,
		ourBaseKeyPair:     ourBaseKeyPair,
		theirIdentityKey:   theirIdentityKey,
		theirSignedPreKey:  theirSignedPreKey,
		theirRatchetKey:    theirRatchetKey,
	}
}

// SetTheirOneTimePreKey records the peer's one-time pre-key.
func (p *AliceParameters) SetTheirOneTimePreKey(pub domain.X25519Public) {
	p.theirOneTimePreKey = &pub
}

// WithTheirOneTimePreKey returns a copy with the peer's one-time pre-key set.
func (p AliceParameters) WithTheirOneTimePreKey(pub domain.X25519Public) *AliceParameters {
	p.SetTheirOneTimePreKey(pub)
	return &p
}

// SetTheirKEMPreKey records the peer's KEM pre-key public value.
func (p *AliceParameters) SetTheirKEMPreKey(pub kem.PublicKey) {
	p.theirKEMPreKey = pub
}

// WithTheirKEMPreKey returns a copy with the peer's KEM pre-key set.
func (p AliceParameters) WithTheirKEMPreKey(pub kem.PublicKey) *AliceParameters {
	p.SetTheirKEMPreKey(pub)
	return &p
}

func (p *AliceParameters) OurIdentityKeyPair() domain.KeyPair { return p.ourIdentityKeyPair }
func (p *AliceParameters) OurBaseKeyPair() domain.KeyPair     { return p.ourBaseKeyPair }

func (p *AliceParameters) TheirIdentityKey() domain.X25519Public  { return p.theirIdentityKey }
func (p *AliceParameters) TheirSignedPreKey() domain.X25519Public { return p.theirSignedPreKey }
func (p *AliceParameters) TheirRatchetKey() domain.X25519Public   { return p.theirRatchetKey }

// TheirOneTimePreKey returns the peer's one-time pre-key, or nil when absent.
func (p *AliceParameters) TheirOneTimePreKey() *domain.X25519Public { return p.theirOneTimePreKey }

// TheirKEMPreKey returns the peer's KEM pre-key, or nil when absent.
func (p *AliceParameters) TheirKEMPreKey() kem.PublicKey { return p.theirKEMPreKey }

// BobParameters assembles the responder's contribution. All fields,
// optionals included, are fixed at construction and read-only thereafter.
// The peer's KEM ciphertext is transient handshake data held by reference;
// no consistency check against ourKEMPreKeyPair happens here; that belongs
// to the handshake routine consuming the set.
type BobParameters struct {
	ourIdentityKeyPair  domain.KeyPair
	ourSignedPreKeyPair domain.KeyPair
	ourOneTimePreKey    *domain.KeyPair
	ourRatchetKeyPair   domain.KeyPair
	ourKEMPreKeyPair    *kem.KeyPair

	theirIdentityKey   domain.X25519Public
	theirBaseKey       domain.X25519Public
	theirKEMCiphertext kem.Ciphertext
}

// NewBobParameters builds the responder field set. ourOneTimePreKey,
// ourKEMPreKeyPair and theirKEMCiphertext may be nil.
func NewBobParameters(
	ourIdentityKeyPair, ourSignedPreKeyPair, ourRatchetKeyPair domain.KeyPair,
	ourOneTimePreKey *domain.KeyPair,
	ourKEMPreKeyPair *kem.KeyPair,
	theirIdentityKey, theirBaseKey domain.X25519Public,
	theirKEMCiphertext kem.Ciphertext,
) *BobParameters {
	return &BobParameters{
		ourIdentityKeyPair:  ourIdentityKeyPair,
		ourSignedPreKeyPair: ourSignedPreKeyPair,
		ourOneTimePreKey:    ourOneTimePreKey,
		ourRatchetKeyPair:   ourRatchetKeyPair,
		ourKEMPreKeyPair:    ourKEMPreKeyPair,
		theirIdentityKey:    theirIdentityKey,
		theirBaseKey:        theirBaseKey,
		theirKEMCiphertext:  theirKEMCiphertext,
	}
}

func (p *BobParameters) OurIdentityKeyPair() domain.KeyPair  { return p.ourIdentityKeyPair }
func (p *BobParameters) OurSignedPreKeyPair() domain.KeyPair { return p.ourSignedPreKeyPair }
func (p *BobParameters) OurRatchetKeyPair() domain.KeyPair   { return p.ourRatchetKeyPair }

// OurOneTimePreKey returns our one-time pre-key pair, or nil when absent.
func (p *BobParameters) OurOneTimePreKey() *domain.KeyPair { return p.ourOneTimePreKey }

// OurKEMPreKeyPair returns our KEM pre-key pair, or nil when absent.
func (p *BobParameters) OurKEMPreKeyPair() *kem.KeyPair { return p.ourKEMPreKeyPair }

func (p *BobParameters) TheirIdentityKey() domain.X25519Public { return p.theirIdentityKey }
func (p *BobParameters) TheirBaseKey() domain.X25519Public     { return p.theirBaseKey }

// TheirKEMCiphertext returns the peer's KEM ciphertext, or nil when absent.
func (p *BobParameters) TheirKEMCiphertext() kem.Ciphertext { return p.theirKEMCiphertext }
