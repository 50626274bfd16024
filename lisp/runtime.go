package lisp

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Runtime is the state shared by every LEnv descending from one root
// environment.
type Runtime struct {
	Stack  *CallStack
	Reader Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	// Level controls the records emitted by the default Logger.  Toggling
	// the debug flag moves it between slog.LevelInfo and slog.LevelDebug.
	Level *slog.LevelVar
	// Exit terminates the host process.  It is called by quit and exit.
	Exit func(code int)

	debug  bool
	gensym uint64
}

// NewRuntime returns a Runtime writing to os.Stdout and os.Stderr.
func NewRuntime() *Runtime {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	return &Runtime{
		Stack:  &CallStack{MaxHeight: DefaultMaxHeight},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
		Level:  level,
		Exit:   os.Exit,
	}
}

// Debug returns true if evaluation tracing is enabled.
func (r *Runtime) Debug() bool {
	return r.debug
}

// SetDebug enables or disables evaluation tracing.
func (r *Runtime) SetDebug(on bool) {
	r.debug = on
	if r.Level == nil {
		return
	}
	if on {
		r.Level.Set(slog.LevelDebug)
	} else {
		r.Level.Set(slog.LevelInfo)
	}
}

// Gensym returns a new symbol whose name is unique within r.
func (r *Runtime) Gensym() *LVal {
	n := atomic.AddUint64(&r.gensym, 1)
	return Symbol(fmt.Sprintf("%s%012d", GensymPrefix, n))
}

// GensymCounter returns the last value issued by Gensym.
func (r *Runtime) GensymCounter() uint64 {
	return atomic.LoadUint64(&r.gensym)
}

func (r *Runtime) trace(msg string, args ...any) {
	if !r.debug || r.Logger == nil {
		return
	}
	r.Logger.Debug(msg, args...)
}
