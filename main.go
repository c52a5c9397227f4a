// Package main is the entry point for the Vigil emergency-response
// monitoring system.
package main

import (
	"fmt"
	"os"

	"vigil/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
