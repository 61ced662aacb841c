package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ticalc",
	Short: "Graphing-calculator expression and program core",
	Long: `ticalc drives the calculator's computational core from the command line.

It tokenizes and parses calculator expressions and programs, evaluates
them against a fresh State, and exposes the same lexer/parser/evaluator/
program-interpreter pipeline the core library implements, for scripting
and debugging without embedding the library in a Go program.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
