package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-ticore/internal/lexer"
	"github.com/spf13/cobra"
)

var tokenizeExpr string

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize an expression and print the token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().StringVarP(&tokenizeExpr, "eval", "e", "", "tokenize inline text instead of reading from file")
}

func runTokenize(_ *cobra.Command, args []string) error {
	input, err := readInput(tokenizeExpr, args)
	if err != nil {
		return err
	}

	toks, err := lexer.Tokenize(input)
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}
	for _, t := range toks {
		fmt.Println(t.String())
	}
	return nil
}

func readInput(inlineFlag string, args []string) (string, error) {
	if inlineFlag != "" {
		return inlineFlag, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), nil
	}
	return "", fmt.Errorf("either provide a file path or use -e for inline text")
}
