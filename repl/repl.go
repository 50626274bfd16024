package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/krylisp/krylisp/lisp"
	"github.com/krylisp/krylisp/parser"
)

// DefaultPrompt is the primary prompt of the repl.
const DefaultPrompt = "(krylisp)  "

// DefaultHistoryLimit is the number of lines kept in the history file.
const DefaultHistoryLimit = 20000

// QuitCommand ends the repl.
const QuitCommand = "#quit"

// Option customizes a repl.
type Option func(r *Repl)

// WithPrompt sets the primary prompt.
func WithPrompt(prompt string) Option {
	return func(r *Repl) {
		r.prompt = prompt
	}
}

// WithHistory persists line history in path, keeping at most limit lines.
func WithHistory(path string, limit int) Option {
	return func(r *Repl) {
		r.historyFile = path
		r.historyLimit = limit
	}
}

// WithStdin makes the repl read lines from stdin instead of the terminal.
func WithStdin(stdin io.ReadCloser) Option {
	return func(r *Repl) {
		r.stdin = stdin
	}
}

// WithOutput makes the repl write results to stdout and errors to stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Repl) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithLogger sets the logger that records evaluation errors.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repl) {
		r.logger = logger
	}
}

// Repl reads forms from a line editor, evaluates them and prints the
// results.
type Repl struct {
	in           *lisp.Interpreter
	prompt       string
	historyFile  string
	historyLimit int
	stdin        io.ReadCloser
	stdout       io.Writer
	stderr       io.Writer
	logger       *slog.Logger

	buf strings.Builder
}

// New returns a Repl evaluating in the interpreter in.  If in has no Reader
// one is installed.
func New(in *lisp.Interpreter, opts ...Option) *Repl {
	r := &Repl{
		in:           in,
		prompt:       DefaultPrompt,
		historyLimit: DefaultHistoryLimit,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		logger:       in.Runtime.Logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if in.Runtime.Reader == nil {
		in.Runtime.Reader = parser.NewReader()
	}
	return r
}

// RunRepl runs a simple repl until end of input or QuitCommand.
func RunRepl(in *lisp.Interpreter, opts ...Option) error {
	return New(in, opts...).Run()
}

// Run starts the read-eval-print loop.
func (r *Repl) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.prompt,
		HistoryFile:     r.historyFile,
		HistoryLimit:    r.historyLimit,
		InterruptPrompt: "^C",
		Stdin:           r.stdin,
		Stdout:          r.stdout,
		Stderr:          r.stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintf(r.stdout, "Welcome to krylisp\nType %s to leave.\n", QuitCommand)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			r.buf.Reset()
			rl.SetPrompt(r.prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		prompt, quit := r.Feed(line)
		if quit {
			return nil
		}
		rl.SetPrompt(prompt)
	}
}

// Feed adds a line of input.  When the accumulated input holds complete
// forms they are evaluated and their values printed.  Feed returns the
// prompt for the next line and whether the user asked to quit.
func (r *Repl) Feed(line string) (prompt string, quit bool) {
	if r.buf.Len() == 0 && strings.EqualFold(strings.TrimSpace(line), QuitCommand) {
		return r.prompt, true
	}
	if r.buf.Len() > 0 {
		r.buf.WriteByte('\n')
	}
	r.buf.WriteString(line)
	text := r.buf.String()
	if strings.TrimSpace(text) == "" {
		r.buf.Reset()
		return r.prompt, false
	}

	forms, err := r.in.Runtime.Reader.ReadForms(text)
	if lisp.IsIncomplete(err) {
		return r.continuationPrompt(), false
	}
	r.buf.Reset()
	if err != nil {
		r.report(err)
		return r.prompt, false
	}
	for _, form := range forms {
		v, err := r.in.Eval(form)
		if err != nil {
			r.report(err)
			break
		}
		fmt.Fprintln(r.stdout, v)
	}
	return r.prompt, false
}

// Pending returns true if the repl holds an incomplete form.
func (r *Repl) Pending() bool {
	return r.buf.Len() > 0
}

func (r *Repl) continuationPrompt() string {
	return strings.Repeat(" ", len(r.prompt)) // prompt had better be ascii...
}

func (r *Repl) report(err error) {
	r.logger.Error("evaluation failed", "error", err)
	fmt.Fprintln(r.stderr, err)
	var lerr *lisp.Error
	if r.in.Runtime.Debug() && errors.As(err, &lerr) && lerr.Stack.Height() > 0 {
		lerr.Stack.DebugPrint(r.stderr)
	}
}
