package main

import (
	"os"

	"github.com/project-kessel/filterkit/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
