package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/go-ticore/internal/eval"
	"github.com/cwbudde/go-ticore/internal/parser"
	"github.com/cwbudde/go-ticore/internal/state"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Line-oriented read-eval-print loop over stdin",
	Long: `Reads one expression per line from stdin, evaluates each against a
single persistent State (so Ans, variables, and function slots carry
between lines), and prints the result or error.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	st := state.New()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		node, err := parser.Parse(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		v, err := eval.Eval(node, st)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		st.SetAns(v)
		st.RecordHistory(line, v.String())
		fmt.Println(v.String())
	}
	return scanner.Err()
}
