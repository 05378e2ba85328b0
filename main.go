// Package main is the entry point for the fitness advisor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fit-advisor/internal/cli"
)

func main() {
	app := cli.New()
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
