// Package main is the entry point for the matchlake CLI binary.
package main

import (
	"os"

	"matchlake/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
