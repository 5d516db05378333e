// Command goarith evaluates arithmetic expressions.
//
// Without arguments it starts an interactive read loop: each line is parsed
// and evaluated independently, and an empty line exits. The eval and batch
// subcommands evaluate expressions from arguments or a file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandrolain/goarith/pkg/parser"
)

var (
	configFile string
	showTree   bool
	showTokens bool
	noColor    bool
	logLevel   string
	wasmModule string
	jobs       int
	maxDepth   int
)

// errInvalidExpression is returned when at least one expression had
// diagnostics. They have already been printed.
var errInvalidExpression = errors.New("invalid expression")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "goarith",
	Short: "Evaluate arithmetic expressions",
	Long: `goarith evaluates integer arithmetic with + - * / and parentheses.

Without a subcommand it reads one expression per line from stdin,
printing the result or the diagnostics for each. An empty line exits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close(cmd.Context())
		return a.repl(cmd.Context(), os.Stdin, cmd.OutOrStdout())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalidExpression) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&showTree, "tree", false, "Print the syntax tree of each expression")
	rootCmd.PersistentFlags().BoolVar(&showTokens, "tokens", false, "Print the tokens of each expression")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored diagnostics")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&wasmModule, "wasm", "", "Evaluate through a goarith WASI module")
	rootCmd.PersistentFlags().IntVar(&jobs, "jobs", 0, "Concurrent evaluations in batch mode (0 = number of CPUs)")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", parser.DefaultMaxDepth, "Maximum parenthesis nesting (0 = unlimited)")

	rootCmd.AddCommand(evalCmd, batchCmd, versionCmd)
}
