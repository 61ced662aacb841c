package cmd

import (
	"fmt"

	"github.com/cwbudde/go-ticore/internal/eval"
	"github.com/cwbudde/go-ticore/internal/parser"
	"github.com/cwbudde/go-ticore/internal/program"
	"github.com/cwbudde/go-ticore/internal/state"
	"github.com/spf13/cobra"
)

var (
	runExpr   string
	asProgram bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Evaluate an expression or execute a stored program",
	Long: `Evaluate a single expression (the default) or, with --program, run a
stored program's full statement list against a fresh State, printing
its Disp/Output/Pause text to the console.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runExpr, "eval", "e", "", "evaluate inline text instead of reading from file")
	runCmd.Flags().BoolVarP(&asProgram, "program", "p", false, "treat the input as a stored program rather than a single expression")
}

func runRun(_ *cobra.Command, args []string) error {
	input, err := readInput(runExpr, args)
	if err != nil {
		return err
	}

	st := state.New()

	if asProgram {
		prog, err := program.ParseProgram(input)
		if err != nil {
			return fmt.Errorf("parse program: %w", err)
		}
		interp := program.NewInterpreter(st, newStdIO())
		if err := interp.Run(prog); err != nil {
			return fmt.Errorf("run: %w", err)
		}
		return nil
	}

	node, err := parser.Parse(input)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	v, err := eval.Eval(node, st)
	if err != nil {
		return fmt.Errorf("eval: %w", err)
	}
	st.SetAns(v)
	st.RecordHistory(input, v.String())
	fmt.Println(v.String())
	return nil
}
