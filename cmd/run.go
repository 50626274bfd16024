package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/krylisp/krylisp/lisp"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run lisp code",
	Long:  `Run lisp code provided supplied via the command line or a file.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		exprs, err := runReadExpressions(args)
		if err != nil {
			return err
		}
		in, err := newInterpreter(config)
		if err != nil {
			return err
		}
		return runExpressions(in, cmd.OutOrStdout(), exprs)
	},
}

func runReadExpressions(args []string) ([]string, error) {
	exprs := make([]string, len(args))
	if runExpression {
		copy(exprs, args)
		return exprs, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		exprs[i] = string(b)
	}
	return exprs, nil
}

func runExpressions(in *lisp.Interpreter, w io.Writer, exprs []string) error {
	for _, source := range exprs {
		forms, err := in.Runtime.Reader.ReadForms(source)
		if err != nil {
			return err
		}
		for _, form := range forms {
			v, err := in.Eval(form)
			if err != nil {
				var lerr *lisp.Error
				if in.Runtime.Debug() && errors.As(err, &lerr) {
					lerr.Stack.DebugPrint(in.Runtime.Stderr)
				}
				return err
			}
			if runPrint {
				fmt.Fprintln(w, v)
			}
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
