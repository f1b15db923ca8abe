// Package main is the single-binary entrypoint for ninth.
// ninth is a local-first habit and identity tracker — one binary, one file of state.
package main

import "github.com/mounacademy/ninth/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
