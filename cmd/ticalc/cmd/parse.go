package cmd

import (
	"fmt"

	"github.com/cwbudde/go-ticore/internal/parser"
	"github.com/spf13/cobra"
)

var parseExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an expression and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseExpr, "eval", "e", "", "parse inline text instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	input, err := readInput(parseExpr, args)
	if err != nil {
		return err
	}

	node, err := parser.Parse(input)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	fmt.Println(node.String())
	return nil
}
