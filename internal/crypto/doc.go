// Package crypto exposes the primitives consumed by the protocol packages.
//
// Contents
//
//   - X25519 key generation, clamping and Diffie–Hellman (GenerateX25519, DH)
//   - Ed25519 key generation, signing and verification (GenerateEd25519,
//     SignEd25519, VerifyEd25519)
//   - HMAC-SHA-256 for ratchet seed derivations (HMACSHA256)
//   - AES-256-CBC with PKCS#7 padding for message protection
//     (EncryptCBC, DecryptCBC)
//   - Short public-key fingerprints for display (Fingerprint)
//
// # Notes
//
// All key material uses the fixed-size array types from internal/domain to
// avoid accidental reallocation. DH failures surface as ErrKeyAgreement and
// are never retried; identical invalid input cannot succeed on retry.
package crypto
