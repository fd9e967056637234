package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tangle/internal/crypto"
)

func kemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kem",
		Short: "Inspect and exercise the KEM profiles",
	}
	cmd.AddCommand(kemInfoCmd(), kemKeygenCmd())
	return cmd
}

func kemInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the selected KEM profile's byte lengths",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := kemProvider()
			if err != nil {
				return err
			}
			fmt.Printf("profile:       %s\n", p.Algorithm())
			fmt.Printf("public key:    %d bytes\n", p.PublicKeySize())
			fmt.Printf("secret key:    %d bytes\n", p.SecretKeySize())
			fmt.Printf("ciphertext:    %d bytes\n", p.CiphertextSize())
			fmt.Printf("shared secret: %d bytes\n", p.SharedSecretSize())
			return nil
		},
	}
}

func kemKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a KEM pre-key pair and verify a round trip",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := kemProvider()
			if err != nil {
				return err
			}
			pair, err := p.Generate()
			if err != nil {
				return err
			}
			ss, ct, err := p.Encapsulate(pair.Public)
			if err != nil {
				return err
			}
			got, err := p.Decapsulate(pair.Secret, ct)
			if err != nil {
				return err
			}

			fmt.Printf("profile:     %s\n", p.Algorithm())
			fmt.Printf("fingerprint: %s\n", crypto.Fingerprint(pair.Public))
			if string(ss) == string(got) {
				fmt.Println("round trip:  ok")
			} else {
				return fmt.Errorf("round trip failed: shared secrets differ")
			}
			return nil
		},
	}
}
