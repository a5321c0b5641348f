// This is the main entry point for the docset CLI, a small inspection tool
// for persisted document-set blobs.
// Build with: go build -o bin/docset ./cmd/docset
// Usage: docset <command> [options]
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
