package commands

import (
	"github.com/spf13/cobra"

	"tangle/internal/kem"
)

var kemProfile string

func Execute() error {
	root := &cobra.Command{
		Use:           "tangle",
		Short:         "Post-quantum double-ratchet key agreement engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&kemProfile, "kem", "kyber1024",
		"KEM profile (kyber1024 or mlkem1024)")

	root.AddCommand(simulateCmd(), kemCmd())
	return root.Execute()
}

// kemProvider builds the provider selected by --kem.
func kemProvider() (*kem.Provider, error) {
	alg, err := kem.ParseAlgorithm(kemProfile)
	if err != nil {
		return nil, err
	}
	return kem.New(alg)
}
