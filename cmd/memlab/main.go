package main

import (
	"os"

	"github.com/go-drift/memlab/cmd/memlab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
