// Package lisptest runs table driven and file based tests of the lisp
// language.
package lisptest

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/krylisp/krylisp/lisp"
	"github.com/krylisp/krylisp/parser"
)

// Runner is a test runner.
type Runner struct {
	// Configs are applied to every interpreter after the defaults, which
	// install a parser.Reader, discard output and ignore quit.
	Configs []lisp.Config
}

// NewInterpreter returns an isolated interpreter for a single test.
func (r *Runner) NewInterpreter() (*lisp.Interpreter, error) {
	configs := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(io.Discard),
		lisp.WithStderr(io.Discard),
		lisp.WithExit(func(int) {}),
		lisp.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return lisp.NewInterpreter(append(configs, r.Configs...)...)
}

// RunTestFile loads the lisp source file at path in a fresh interpreter.  The
// test fails if any form in the file fails to evaluate.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}
	t.Run(filepath.Base(path), func(t *testing.T) {
		in, err := r.NewInterpreter()
		if err != nil {
			t.Fatal(err)
		}
		_, err = in.Env.Load(filepath.Base(path), bytes.NewReader(source))
		if err != nil {
			t.Error(err.Error())
			if lerr, ok := err.(*lisp.Error); ok && lerr.Stack != nil {
				var buf bytes.Buffer
				lerr.Stack.DebugPrint(&buf)
				t.Error(buf.String())
			}
		}
	})
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by one interpreter.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed value, or the error message
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated interpreters.
func RunTestSuite(t *testing.T, tests TestSuite) {
	(&Runner{}).RunTestSuite(t, tests)
}

// RunTestSuite runs each TestSequence in tests on isolated interpreters.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		in, err := r.NewInterpreter()
		if err != nil {
			t.Fatalf("test %d %q: %v", i, test.Name, err)
		}
		for j, expr := range test.TestSequence {
			v, err := parser.ParseOne(expr.Expr)
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			var result string
			val, err := in.Eval(v)
			if err != nil {
				result = err.Error()
			} else {
				result = val.String()
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}
