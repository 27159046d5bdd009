// Package main is the entry point for the pentti maze solver CLI.
//
// Usage:
//
//	pentti [flags] <command> [args]
//
// Commands:
//
//	solve   - Solve one maze file and draw the path
//	batch   - Solve many maze files concurrently and print a summary
//	cache   - Inspect or clear the result cache
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/pentti/cmd/pentti/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
