// Package main provides arbtrace, a tool for watching arbshrink trees shrink
// sample values.
//
// Usage:
//
//	arbtrace kinds
//	arbtrace trace --kind rgb --hex 0aff0c070707
//	arbtrace repl --kind words --seed 42
//	arbtrace regressions testdata/arbshrink-regressions.json --kind header
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/calvinalkan/arbshrink/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env, sigCh)

	os.Exit(exitCode)
}
