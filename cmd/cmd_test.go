package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/krylisp/krylisp/lisp"
	"github.com/krylisp/krylisp/repl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.yaml", `
prompt: "> "
debug: true
max_stack_height: 50
preload:
  - prelude.lisp
`)
	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "> ", config.Prompt)
	assert.True(t, config.Debug)
	assert.Equal(t, 50, config.MaxStackHeight)
	assert.Equal(t, repl.DefaultHistoryLimit, config.HistoryLimit)
	assert.Equal(t, []string{"prelude.lisp"}, config.Preload)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yaml", "promt: typo\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "neg.yaml", "history_limit: -1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "nostack.yaml", "max_stack_height: 0\n"))
	assert.ErrorContains(t, err, "max_stack_height must be positive")

	config, err := LoadConfig(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, lisp.DefaultMaxHeight, config.MaxStackHeight)
}

func TestLoadConfigFlags(t *testing.T) {
	configPath = writeFile(t, "config.yaml", "max_stack_height: 50\n")
	defer func() {
		configPath = ""
		maxStackHeight = 0
		rootCmd.PersistentFlags().Lookup("max-stack").Changed = false
	}()

	config, err := loadConfig(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, 50, config.MaxStackHeight)

	require.NoError(t, rootCmd.ParseFlags([]string{"--max-stack", "0"}))
	_, err = loadConfig(rootCmd)
	assert.ErrorContains(t, err, "max_stack_height must be positive")

	require.NoError(t, rootCmd.ParseFlags([]string{"--max-stack", "200"}))
	config, err = loadConfig(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, 200, config.MaxStackHeight)
}

func TestNewInterpreterPreload(t *testing.T) {
	prelude := writeFile(t, "prelude.lisp", "(defun double (x)\n  (* 2 x))\n")
	config := DefaultConfig()
	config.Preload = []string{prelude}
	in, err := newInterpreter(config)
	require.NoError(t, err)

	var out bytes.Buffer
	runPrint = true
	defer func() { runPrint = false }()
	err = runExpressions(in, &out, []string{"(double 21) 'done"})
	require.NoError(t, err)
	assert.Equal(t, "42\nDONE\n", out.String())

	err = runExpressions(in, &out, []string{"(car 1)"})
	assert.True(t, lisp.HasKind(err, lisp.TypingError))
}
