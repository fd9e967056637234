// Package pqxdh implements the handshake that bootstraps a ratchet session:
// an X3DH-style set of X25519 agreements plus, when the responder published
// a KEM pre-key, one post-quantum encapsulation. The concatenated transcript
// (prefixed with 32 bytes of 0xFF for domain separation) is fed through
// HKDF-SHA-256 to yield the first root key and chain key on both sides.
//
// # Flows
//
// Initiator:
//  1. Verify the responder's signed pre-key signature.
//  2. Build AliceParameters from the bundle (optionally adding the one-time
//     and KEM pre-keys via the setters).
//  3. InitiatorSecrets: DH(IKa,SPKb), DH(EKa,IKb), DH(EKa,SPKb)
//     [, DH(EKa,OPKb)] [, Encaps(PQPKb)] → root key, chain key, ciphertext.
//
// Responder:
//  1. Build BobParameters from our stored pairs and the first-message
//     material (initiator identity and base keys, KEM ciphertext).
//  2. ResponderSecrets computes the mirrored agreements and decapsulates the
//     ciphertext, reproducing the identical root and chain keys.
//
// Consistency between a received ciphertext and our KEM pair is checked
// here, not at parameter construction: a ciphertext without a pair to open
// it is ErrMissingKEMKeyPair.
package pqxdh
