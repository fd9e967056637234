package main

import (
	"os"

	"tangle/cmd/tangle/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
