// Package main is the entry point for the notedown CLI tool.
package main

import (
	"os"

	"github.com/darryllawson/notedown/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
