// Package ratchet implements the two-level key evolution at the core of the
// protocol: a root key advanced by fresh X25519 exchanges and, between
// exchanges, a chain key advanced once per message. Each chain position
// yields single-use message keys (cipher key, MAC key, IV) through one HKDF
// expansion.
//
// Every operation is a pure computation over value types; nothing here
// blocks, retries or locks. A RootKey is consumed by CreateChain: the used
// value is wiped and panics on reuse, so a superseded root can never be
// ratcheted again. The surrounding session must serialise ratchet
// advancement per conversation; distinct sessions are independent.
//
// The package also carries the Alice/Bob parameter sets fed to the PQXDH
// handshake. Derivation labels and byte splits are bit-exact with deployed
// peers: 0x01/0x02 HMAC seeds for the symmetric steps, an 80-byte
// message-key expansion split 32/32/16, and a 64-byte root step split 32/32.
package ratchet
