package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
)

var (
	// ErrBadCiphertext is returned for ciphertext that is empty or not a
	// whole number of AES blocks.
	ErrBadCiphertext = errors.New("ciphertext is not a whole number of blocks")

	// ErrBadPadding is returned when the PKCS#7 padding does not verify
	// after decryption.
	ErrBadPadding = errors.New("invalid message padding")
)

// EncryptCBC encrypts plaintext with AES-256-CBC under key and iv,
// applying PKCS#7 padding. The key size fixes the cipher, so construction
// cannot fail.
func EncryptCBC(key [32]byte, iv [16]byte, plaintext []byte) []byte {
	block, _ := aes.NewCipher(key[:])
	padded := pkcs7Pad(plaintext, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(out, padded)
	return out
}

// DecryptCBC reverses EncryptCBC and strips the padding.
func DecryptCBC(key [32]byte, iv [16]byte, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrBadCiphertext
	}
	block, _ := aes.NewCipher(key[:])
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv[:]).CryptBlocks(out, ciphertext)
	return pkcs7Unpad(out, aes.BlockSize)
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	padded := make([]byte, len(b)+n)
	copy(padded, b)
	for i := len(b); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 {
		return nil, ErrBadPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, ErrBadPadding
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, ErrBadPadding
		}
	}
	return b[:len(b)-n], nil
}
