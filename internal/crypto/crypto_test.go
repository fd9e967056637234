package crypto_test

import (
	"bytes"
	"errors"
	"testing"

	"tangle/internal/crypto"
	"tangle/internal/domain"
)

func TestDHCommutes(t *testing.T) {
	a, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	b, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}

	ab, err := crypto.DH(a.Private, b.Public)
	if err != nil {
		t.Fatalf("DH: %v", err)
	}
	ba, err := crypto.DH(b.Private, a.Public)
	if err != nil {
		t.Fatalf("DH: %v", err)
	}
	if ab != ba {
		t.Fatal("shared secrets differ")
	}
}

func TestDHRejectsLowOrderPoint(t *testing.T) {
	a, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	// All-zero public key is a low-order point; X25519 must refuse it.
	if _, err := crypto.DH(a.Private, domain.X25519Public{}); !errors.Is(err, crypto.ErrKeyAgreement) {
		t.Fatalf("got %v, want ErrKeyAgreement", err)
	}
}

func TestCBCRoundTrip(t *testing.T) {
	var key [32]byte
	var iv [16]byte
	for i := range key {
		key[i] = byte(i)
	}
	for i := range iv {
		iv[i] = byte(0xf0 + i)
	}

	for _, pt := range [][]byte{
		nil,
		[]byte("x"),
		[]byte("exactly sixteen!"), // one full block
		bytes.Repeat([]byte("block"), 100),
	} {
		ct := crypto.EncryptCBC(key, iv, pt)
		if len(ct)%16 != 0 {
			t.Fatalf("ciphertext length %d not block-aligned", len(ct))
		}
		got, err := crypto.DecryptCBC(key, iv, ct)
		if err != nil {
			t.Fatalf("DecryptCBC: %v", err)
		}
		if !bytes.Equal(got, pt) {
			t.Fatalf("round trip mismatch for %d-byte plaintext", len(pt))
		}
	}
}

func TestCBCRejectsPartialBlocks(t *testing.T) {
	var key [32]byte
	var iv [16]byte
	if _, err := crypto.DecryptCBC(key, iv, []byte("short")); !errors.Is(err, crypto.ErrBadCiphertext) {
		t.Fatalf("got %v, want ErrBadCiphertext", err)
	}
	if _, err := crypto.DecryptCBC(key, iv, nil); !errors.Is(err, crypto.ErrBadCiphertext) {
		t.Fatalf("got %v, want ErrBadCiphertext", err)
	}
}

func TestEd25519SignVerify(t *testing.T) {
	priv, pub, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	msg := []byte("signed pre-key bytes")
	sig := crypto.SignEd25519(priv, msg)
	if !crypto.VerifyEd25519(pub, msg, sig) {
		t.Fatal("signature did not verify")
	}
	if crypto.VerifyEd25519(pub, []byte("other"), sig) {
		t.Fatal("signature verified for wrong message")
	}
}

func TestFingerprintStable(t *testing.T) {
	pub := bytes.Repeat([]byte{0xab}, 32)
	fp1 := crypto.Fingerprint(pub)
	fp2 := crypto.Fingerprint(pub)
	if fp1 != fp2 || fp1 == "" {
		t.Fatalf("unstable fingerprint: %q vs %q", fp1, fp2)
	}
	if fp1 == crypto.Fingerprint(bytes.Repeat([]byte{0xac}, 32)) {
		t.Fatal("distinct keys share a fingerprint")
	}
}
