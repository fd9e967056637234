package pqxdh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tangle/internal/crypto"
	"tangle/internal/domain"
	"tangle/internal/kem"
	"tangle/internal/protocol/ratchet"
)

type party struct {
	identity  domain.KeyPair
	signedPre domain.KeyPair
	ratchet   domain.KeyPair
	oneTime   domain.KeyPair
}

func makeParty(t *testing.T) party {
	t.Helper()
	gen := func() domain.KeyPair {
		p, err := crypto.GenerateX25519()
		require.NoError(t, err)
		return p
	}
	return party{identity: gen(), signedPre: gen(), ratchet: gen(), oneTime: gen()}
}

func makeAliceBase(t *testing.T) domain.KeyPair {
	t.Helper()
	p, err := crypto.GenerateX25519()
	require.NoError(t, err)
	return p
}

func TestHandshakeClassicalNoOneTime(t *testing.T) {
	alice := makeParty(t)
	bob := makeParty(t)
	base := makeAliceBase(t)

	aliceParams := ratchet.NewAliceParameters(
		alice.identity, base,
		bob.identity.Public, bob.signedPre.Public, bob.ratchet.Public,
	)
	aliceRoot, aliceChain, ct, err := InitiatorSecrets(nil, aliceParams)
	require.NoError(t, err)
	assert.Nil(t, ct)

	bobParams := ratchet.NewBobParameters(
		bob.identity, bob.signedPre, bob.ratchet,
		nil, nil,
		alice.identity.Public, base.Public,
		nil,
	)
	bobRoot, bobChain, err := ResponderSecrets(nil, bobParams)
	require.NoError(t, err)

	assert.Equal(t, aliceRoot.Key(), bobRoot.Key())
	assert.Equal(t, aliceChain.Key(), bobChain.Key())
	assert.Equal(t, uint32(0), aliceChain.Index())
}

func TestHandshakeWithOneTimePreKey(t *testing.T) {
	alice := makeParty(t)
	bob := makeParty(t)
	base := makeAliceBase(t)

	aliceParams := ratchet.NewAliceParameters(
		alice.identity, base,
		bob.identity.Public, bob.signedPre.Public, bob.ratchet.Public,
	).WithTheirOneTimePreKey(bob.oneTime.Public)
	aliceRoot, aliceChain, _, err := InitiatorSecrets(nil, aliceParams)
	require.NoError(t, err)

	bobParams := ratchet.NewBobParameters(
		bob.identity, bob.signedPre, bob.ratchet,
		&bob.oneTime, nil,
		alice.identity.Public, base.Public,
		nil,
	)
	bobRoot, bobChain, err := ResponderSecrets(nil, bobParams)
	require.NoError(t, err)

	assert.Equal(t, aliceRoot.Key(), bobRoot.Key())
	assert.Equal(t, aliceChain.Key(), bobChain.Key())
}

func TestHandshakePostQuantum(t *testing.T) {
	for _, alg := range []kem.Algorithm{kem.Kyber1024, kem.MLKEM1024} {
		t.Run(alg.String(), func(t *testing.T) {
			provider, err := kem.New(alg)
			require.NoError(t, err)
			kemPair, err := provider.Generate()
			require.NoError(t, err)

			alice := makeParty(t)
			bob := makeParty(t)
			base := makeAliceBase(t)

			aliceParams := ratchet.NewAliceParameters(
				alice.identity, base,
				bob.identity.Public, bob.signedPre.Public, bob.ratchet.Public,
			).WithTheirOneTimePreKey(bob.oneTime.Public).
				WithTheirKEMPreKey(kemPair.Public)
			aliceRoot, aliceChain, ct, err := InitiatorSecrets(provider, aliceParams)
			require.NoError(t, err)
			require.Len(t, []byte(ct), provider.CiphertextSize())

			bobParams := ratchet.NewBobParameters(
				bob.identity, bob.signedPre, bob.ratchet,
				&bob.oneTime, &kemPair,
				alice.identity.Public, base.Public,
				ct,
			)
			bobRoot, bobChain, err := ResponderSecrets(provider, bobParams)
			require.NoError(t, err)

			assert.Equal(t, aliceRoot.Key(), bobRoot.Key())
			assert.Equal(t, aliceChain.Key(), bobChain.Key())
		})
	}
}

func TestHandshakeKEMChangesDerivation(t *testing.T) {
	provider, err := kem.New(kem.Kyber1024)
	require.NoError(t, err)
	kemPair, err := provider.Generate()
	require.NoError(t, err)

	alice := makeParty(t)
	bob := makeParty(t)
	base := makeAliceBase(t)

	classical := ratchet.NewAliceParameters(
		alice.identity, base,
		bob.identity.Public, bob.signedPre.Public, bob.ratchet.Public,
	)
	pq := classical.WithTheirKEMPreKey(kemPair.Public)

	classicalRoot, _, _, err := InitiatorSecrets(nil, classical)
	require.NoError(t, err)
	pqRoot, _, _, err := InitiatorSecrets(provider, pq)
	require.NoError(t, err)

	assert.NotEqual(t, classicalRoot.Key(), pqRoot.Key())
}

func TestResponderCiphertextWithoutKeyPair(t *testing.T) {
	provider, err := kem.New(kem.Kyber1024)
	require.NoError(t, err)
	kemPair, err := provider.Generate()
	require.NoError(t, err)
	_, ct, err := provider.Encapsulate(kemPair.Public)
	require.NoError(t, err)

	bob := makeParty(t)
	alice := makeParty(t)
	base := makeAliceBase(t)

	bobParams := ratchet.NewBobParameters(
		bob.identity, bob.signedPre, bob.ratchet,
		nil, nil, // no KEM pair although a ciphertext arrived
		alice.identity.Public, base.Public,
		ct,
	)
	_, _, err = ResponderSecrets(provider, bobParams)
	assert.ErrorIs(t, err, ErrMissingKEMKeyPair)
}

func TestVerifySignedPreKey(t *testing.T) {
	edPriv, edPub, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	spk, err := crypto.GenerateX25519()
	require.NoError(t, err)

	sig := crypto.SignEd25519(edPriv, spk.Public.Slice())
	assert.True(t, VerifySignedPreKey(edPub, spk.Public, sig))

	sig[0] ^= 0x01
	assert.False(t, VerifySignedPreKey(edPub, spk.Public, sig))
}
