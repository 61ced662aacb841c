// Command ticalc drives the graphing-calculator computational core from
// the command line: tokenize/parse diagnostics, one-shot expression or
// program execution, and a line-oriented REPL.
package main

import (
	"os"

	"github.com/cwbudde/go-ticore/cmd/ticalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
