package lisp

import (
	"io"
	"log/slog"
)

// Config is a function that configures an Interpreter or its runtime.
type Config func(in *Interpreter) error

// WithEnv returns a Config that makes the interpreter evaluate in the
// pre-populated global environment env.
func WithEnv(env *LEnv) Config {
	return func(in *Interpreter) error {
		root := env.Global()
		root.Runtime = in.Runtime
		in.Env = root
		return nil
	}
}

// WithGensymCounter returns a Config that seeds the gensym counter.  The
// first generated symbol will use n+1.
func WithGensymCounter(n uint64) Config {
	return func(in *Interpreter) error {
		in.Runtime.gensym = n
		return nil
	}
}

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from nesting more than n function and macro applications.
func WithMaximumStackHeight(n int) Config {
	return func(in *Interpreter) error {
		in.Runtime.Stack.MaxHeight = n
		return nil
	}
}

// WithReader returns a Config that makes environments use r to parse source
// text.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(in *Interpreter) error {
		in.Runtime.Reader = r
		return nil
	}
}

// WithStdout returns a Config that makes print and time write to w instead
// of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(in *Interpreter) error {
		in.Runtime.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes environments write diagnostic output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(in *Interpreter) error {
		in.Runtime.Stderr = w
		return nil
	}
}

// WithLogger returns a Config that replaces the runtime logger.  The debug
// flag still gates evaluation traces but level filtering is left to the
// logger's handler.
func WithLogger(logger *slog.Logger) Config {
	return func(in *Interpreter) error {
		in.Runtime.Logger = logger
		return nil
	}
}

// WithExit returns a Config that replaces the function called by quit and
// exit.
func WithExit(fn func(code int)) Config {
	return func(in *Interpreter) error {
		in.Runtime.Exit = fn
		return nil
	}
}

// WithDebug returns a Config that sets the initial debug flag.
func WithDebug(on bool) Config {
	return func(in *Interpreter) error {
		in.Runtime.SetDebug(on)
		return nil
	}
}
