package ratchet

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tangle/internal/crypto"
)

func mustKey32(t *testing.T, h string) (out [32]byte) {
	t.Helper()
	b, err := hex.DecodeString(h)
	require.NoError(t, err)
	require.Len(t, b, 32)
	copy(out[:], b)
	return out
}

// Known-answer vector for interoperability with deployed peers.
func TestChainKeyKnownAnswer(t *testing.T) {
	seed := mustKey32(t, "8ab72d6f4cc5ac0d387eaf463378ddb28edd07385b1cb01250c715982e7ad48f")
	wantCipherKey := mustKey32(t, "bf51e9d75e0e31031051f82a2491ffc084fa298b7793bd9db620056febf45217")
	wantMACKey := mustKey32(t, "c6c77d6a73a354337a56435e34607dfe48e3ace14e77314dc6abc172e7a7030b")
	wantNextKey := mustKey32(t, "28e8f8fee54b801eef7c5cfb2f17f32c10b45d8888daf98e6cf8e24f88835e8f")

	chain := NewChainKey(seed, 0)
	mk := chain.MessageKeys()
	assert.Equal(t, wantCipherKey, mk.CipherKey)
	assert.Equal(t, wantMACKey, mk.MACKey)
	assert.Equal(t, uint32(0), mk.Counter)

	next := chain.Next()
	assert.Equal(t, wantNextKey, next.Key())
	assert.Equal(t, uint32(1), next.Index())
}

func TestChainKeyDeterminism(t *testing.T) {
	seed := mustKey32(t, "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")

	a := NewChainKey(seed, 7)
	b := NewChainKey(seed, 7)
	assert.Equal(t, a.MessageKeys(), b.MessageKeys())
	assert.Equal(t, a.Next(), b.Next())

	// The receiver stays usable after both derivations.
	assert.Equal(t, seed, a.Key())
	assert.Equal(t, uint32(7), a.Index())
}

func TestChainKeyMonotonicity(t *testing.T) {
	seed := mustKey32(t, "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff")

	chain := NewChainKey(seed, 0)
	for i := 0; i < 10; i++ {
		require.Equal(t, uint32(i), chain.Index())
		require.Equal(t, chain.Index(), chain.MessageKeys().Counter)
		next := chain.Next()
		require.Equal(t, chain.Index()+1, next.Index())
		require.NotEqual(t, chain.Key(), next.Key())
		chain = next
	}
}

func TestDeriveMessageKeysCounterIsMetadataOnly(t *testing.T) {
	ikm := []byte("input key material under test...")

	a := DeriveMessageKeys(ikm, 0)
	b := DeriveMessageKeys(ikm, 41)
	assert.Equal(t, a.CipherKey, b.CipherKey)
	assert.Equal(t, a.MACKey, b.MACKey)
	assert.Equal(t, a.IV, b.IV)
	assert.Equal(t, uint32(41), b.Counter)
}

func TestRootKeyCreateChainDiverges(t *testing.T) {
	seed := mustKey32(t, "fefefefefefefefefefefefefefefefefefefefefefefefefefefefefefefefe")
	ours, err := crypto.GenerateX25519()
	require.NoError(t, err)
	peerA, err := crypto.GenerateX25519()
	require.NoError(t, err)
	peerB, err := crypto.GenerateX25519()
	require.NoError(t, err)

	rootA := NewRootKey(seed)
	rootB := NewRootKey(seed)

	newRootA, chainA, err := rootA.CreateChain(peerA.Public, ours.Private)
	require.NoError(t, err)
	newRootB, chainB, err := rootB.CreateChain(peerB.Public, ours.Private)
	require.NoError(t, err)

	assert.NotEqual(t, newRootA.Key(), newRootB.Key())
	assert.NotEqual(t, chainA.Key(), chainB.Key())
	assert.Equal(t, uint32(0), chainA.Index())
	assert.Equal(t, uint32(0), chainB.Index())
}

func TestRootKeyBothSidesAgree(t *testing.T) {
	seed := mustKey32(t, "4242424242424242424242424242424242424242424242424242424242424242")
	alice, err := crypto.GenerateX25519()
	require.NoError(t, err)
	bob, err := crypto.GenerateX25519()
	require.NoError(t, err)

	aliceRoot := NewRootKey(seed)
	bobRoot := NewRootKey(seed)

	newAliceRoot, aliceChain, err := aliceRoot.CreateChain(bob.Public, alice.Private)
	require.NoError(t, err)
	newBobRoot, bobChain, err := bobRoot.CreateChain(alice.Public, bob.Private)
	require.NoError(t, err)

	assert.Equal(t, newAliceRoot.Key(), newBobRoot.Key())
	assert.Equal(t, aliceChain.Key(), bobChain.Key())
}

func TestRootKeyConsumedFailsLoudly(t *testing.T) {
	seed := mustKey32(t, "1111111111111111111111111111111111111111111111111111111111111111")
	ours, err := crypto.GenerateX25519()
	require.NoError(t, err)
	peer, err := crypto.GenerateX25519()
	require.NoError(t, err)

	root := NewRootKey(seed)
	_, _, err = root.CreateChain(peer.Public, ours.Private)
	require.NoError(t, err)

	assert.Panics(t, func() { root.Key() })
	assert.Panics(t, func() { _, _, _ = root.CreateChain(peer.Public, ours.Private) })
}
