package main

import (
	"os"

	"txdash/internal/cli"
)

func main() {
	if err := cli.NewQueryCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
