// Package main provides the CLI entrypoint for equals-verifier.
//
// The verifier itself runs inside `go test` through the verifier package.
// This command inspects its inputs:
//   - the //verify: directives found in Go packages
//   - the effective settings read from a file and the environment
//   - the names of the warnings that can be suppressed
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
