// Package main is the entry point for the formbuilder CLI.
package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-formbuilder/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
