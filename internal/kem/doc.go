// Package kem wraps the CIRCL key-encapsulation schemes behind a small
// profile-parameterized capability: generate, encapsulate, decapsulate.
//
// Two profiles are exposed: Kyber1024 (round-3 CRYSTALS-Kyber, as deployed
// by existing peers) and MLKEM1024 (FIPS 203). Both provide the
// implicit-rejection property: decapsulating a ciphertext with the wrong
// secret key returns a pseudorandom secret rather than an error, so a caller
// cannot distinguish a mismatched pairing from a legitimate one by this call
// alone. Additional profiles only need a circl scheme mapping in New.
package kem
