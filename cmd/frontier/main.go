package main

import (
	"os"

	"github.com/wonny/frontier/cmd/frontier/commands"
)

// main is the entry point for the frontier CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
