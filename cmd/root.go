package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/krylisp/krylisp/lisp"
	"github.com/krylisp/krylisp/parser"
	"github.com/spf13/cobra"
)

var (
	configPath     string
	debugFlag      bool
	maxStackHeight int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "krylisp",
	Short: "A small lisp interpreter",
	Long: `krylisp evaluates lisp code interactively or from files.

Without a subcommand an interactive repl is started.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Configuration file (default $HOME/.config/krylisp/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"Trace evaluation to stderr")
	rootCmd.PersistentFlags().IntVar(&maxStackHeight, "max-stack", 0,
		"Maximum number of nested function calls (default from config)")
}

// loadConfig reads the configuration file and applies command line flags on
// top of it.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("debug") {
		config.Debug = debugFlag
	}
	if cmd.Flags().Changed("max-stack") {
		config.MaxStackHeight = maxStackHeight
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return config, nil
}

// newInterpreter builds an interpreter from config and evaluates its
// preloaded files.
func newInterpreter(config *Config) (*lisp.Interpreter, error) {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	in, err := lisp.NewInterpreter(
		lisp.WithReader(parser.NewReader()),
		lisp.WithLogger(logger),
		lisp.WithMaximumStackHeight(config.MaxStackHeight),
	)
	if err != nil {
		return nil, err
	}
	in.Runtime.Level = level
	in.Runtime.SetDebug(config.Debug)
	for _, path := range config.Preload {
		_, err := in.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("preload %s: %w", path, err)
		}
		logger.Debug("preloaded", "path", path)
	}
	return in, nil
}
