package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tangle/internal/crypto"
	"tangle/internal/domain"
	"tangle/internal/kem"
	"tangle/internal/protocol/pqxdh"
	"tangle/internal/protocol/ratchet"
	"tangle/internal/protocol/session"
)

// simulateCmd runs a complete two-party exchange in process: the responder
// publishes a bundle, the initiator performs the handshake, and the two
// sessions trade ratcheted messages.
func simulateCmd() *cobra.Command {
	var (
		messages  int
		classical bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a two-party handshake and message exchange in process",
		RunE: func(cmd *cobra.Command, args []string) error {
			var provider *kem.Provider
			if !classical {
				p, err := kemProvider()
				if err != nil {
					return err
				}
				provider = p
			}
			return runSimulation(provider, messages)
		},
	}

	cmd.Flags().IntVar(&messages, "messages", 10, "number of round trips to exchange")
	cmd.Flags().BoolVar(&classical, "classical", false, "skip the post-quantum KEM step")
	return cmd
}

func runSimulation(provider *kem.Provider, messages int) error {
	// Responder identity and published bundle.
	bobIdentity, err := makeIdentity()
	if err != nil {
		return err
	}
	bobSignedPre, err := crypto.GenerateX25519()
	if err != nil {
		return err
	}
	bobRatchet, err := crypto.GenerateX25519()
	if err != nil {
		return err
	}
	bobOneTime, err := crypto.GenerateX25519()
	if err != nil {
		return err
	}

	bundle := pqxdh.Bundle{
		IdentityKey:     bobIdentity.XPub,
		SigningKey:      bobIdentity.EdPub,
		SignedPreKey:    bobSignedPre.Public,
		SignedPreKeySig: crypto.SignEd25519(bobIdentity.EdPriv, bobSignedPre.Public.Slice()),
		RatchetKey:      bobRatchet.Public,
		OneTimePreKey:   &bobOneTime.Public,
	}

	var bobKEMPair kem.KeyPair
	if provider != nil {
		bobKEMPair, err = provider.Generate()
		if err != nil {
			return err
		}
		bundle.KEMAlgorithm = provider.Algorithm()
		bundle.KEMPreKey = bobKEMPair.Public
		fmt.Printf("kem profile:        %s\n", provider.Algorithm())
	} else {
		fmt.Println("kem profile:        none (classical handshake)")
	}

	// Initiator verifies the bundle and assembles parameters.
	if !pqxdh.VerifySignedPreKey(bundle.SigningKey, bundle.SignedPreKey, bundle.SignedPreKeySig) {
		return fmt.Errorf("signed pre-key signature rejected")
	}

	aliceIdentity, err := makeIdentity()
	if err != nil {
		return err
	}
	aliceBase, err := crypto.GenerateX25519()
	if err != nil {
		return err
	}

	aliceParams := ratchet.NewAliceParameters(
		aliceIdentity.DHPair(), aliceBase,
		bundle.IdentityKey, bundle.SignedPreKey, bundle.RatchetKey,
	)
	if bundle.OneTimePreKey != nil {
		aliceParams.SetTheirOneTimePreKey(*bundle.OneTimePreKey)
	}
	if bundle.KEMPreKey != nil {
		aliceParams.SetTheirKEMPreKey(bundle.KEMPreKey)
	}

	aliceRoot, aliceChain, kemCT, err := pqxdh.InitiatorSecrets(provider, aliceParams)
	if err != nil {
		return err
	}

	// Responder recomputes from the first-message material.
	var kemPair *kem.KeyPair
	if provider != nil {
		kemPair = &bobKEMPair
	}
	bobParams := ratchet.NewBobParameters(
		bobIdentity.DHPair(), bobSignedPre, bobRatchet,
		&bobOneTime, kemPair,
		aliceIdentity.XPub, aliceBase.Public,
		kemCT,
	)
	bobRoot, bobChain, err := pqxdh.ResponderSecrets(provider, bobParams)
	if err != nil {
		return err
	}

	aliceRK, bobRK := aliceRoot.Key(), bobRoot.Key()
	fmt.Printf("alice root key:     %s\n", crypto.Fingerprint(aliceRK[:]))
	fmt.Printf("bob root key:       %s\n", crypto.Fingerprint(bobRK[:]))
	if aliceRK != bobRK {
		return fmt.Errorf("handshake diverged: root keys differ")
	}

	alice, err := session.NewInitiator(aliceRoot, aliceChain, bundle.RatchetKey)
	if err != nil {
		return err
	}
	bob := session.NewResponder(bobRoot, bobChain, bobRatchet)

	for i := 0; i < messages; i++ {
		if err := deliver(alice, bob, fmt.Sprintf("ping %d", i)); err != nil {
			return fmt.Errorf("round %d: %w", i, err)
		}
		if err := deliver(bob, alice, fmt.Sprintf("pong %d", i)); err != nil {
			return fmt.Errorf("round %d: %w", i, err)
		}
	}
	fmt.Printf("exchanged:          %d round trips, chains in sync\n", messages)
	return nil
}

func deliver(from, to *session.State, msg string) error {
	h, ct, err := from.Encrypt(nil, []byte(msg))
	if err != nil {
		return err
	}
	pt, err := to.Decrypt(nil, h, ct)
	if err != nil {
		return err
	}
	if string(pt) != msg {
		return fmt.Errorf("plaintext mismatch: got %q, want %q", pt, msg)
	}
	return nil
}

func makeIdentity() (domain.Identity, error) {
	pair, err := crypto.GenerateX25519()
	if err != nil {
		return domain.Identity{}, err
	}
	edPriv, edPub, err := crypto.GenerateEd25519()
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{
		XPub:   pair.Public,
		XPriv:  pair.Private,
		EdPub:  edPub,
		EdPriv: edPriv,
	}, nil
}
