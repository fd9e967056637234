package domain

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

func (p X25519Public) Slice() []byte { return p[:] }

// X25519Private is a Curve25519 private key.
type X25519Private [32]byte

func (k X25519Private) Slice() []byte { return k[:] }

// Ed25519Public is a signing public key.
type Ed25519Public [32]byte

func (p Ed25519Public) Slice() []byte { return p[:] }

// Ed25519Private is a signing private key (ed25519.PrivateKey layout).
type Ed25519Private [64]byte

func (k Ed25519Private) Slice() []byte { return k[:] }

// KeyPair couples an X25519 private key with its public counterpart.
type KeyPair struct {
	Private X25519Private
	Public  X25519Public
}

// Identity holds a party's long-term key material: an X25519 pair for
// key agreement and an Ed25519 pair for signing pre-keys.
type Identity struct {
	XPub   X25519Public
	XPriv  X25519Private
	EdPub  Ed25519Public
	EdPriv Ed25519Private
}

// DHPair returns the identity's agreement keys as a KeyPair.
func (id Identity) DHPair() KeyPair {
	return KeyPair{Private: id.XPriv, Public: id.XPub}
}

// Header accompanies each ratchet ciphertext.
type Header struct {
	RatchetKey X25519Public // sender's current ratchet public key
	PN         uint32       // message count of the previous sending chain
	N          uint32       // index within the current sending chain
}
