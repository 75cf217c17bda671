package main

import (
	"os"

	"github.com/relkit/relkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
