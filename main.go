// Package main is the entry point for the wireview traffic inspector.
package main

import (
	"fmt"
	"os"

	"github.com/wireview/wireview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
