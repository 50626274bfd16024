package cmd

import (
	"github.com/krylisp/krylisp/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive repl",
	Long:  `Start a read-eval-print loop.  Type #quit or press Ctrl-D to leave.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd)
	},
}

func runRepl(cmd *cobra.Command) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	in, err := newInterpreter(config)
	if err != nil {
		return err
	}
	return repl.RunRepl(in,
		repl.WithPrompt(config.Prompt),
		repl.WithHistory(config.HistoryFile, config.HistoryLimit),
	)
}

func init() {
	rootCmd.AddCommand(replCmd)
}
