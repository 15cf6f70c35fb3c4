package main

import (
	"os"

	"github.com/msomdec/kennel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
