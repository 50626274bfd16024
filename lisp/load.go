package lisp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

func (env *LEnv) reader() (Reader, error) {
	if env.Runtime.Reader == nil {
		return nil, env.errorf(EvalError, "no reader for the current environment")
	}
	return env.Runtime.Reader, nil
}

// LoadString reads every form in source and evaluates them in sequence in
// env.  LoadString returns the value of the last form, or nil.
func (env *LEnv) LoadString(source string) (*LVal, error) {
	r, err := env.reader()
	if err != nil {
		return nil, err
	}
	forms, err := r.ReadForms(source)
	if err != nil {
		return nil, err
	}
	val := Nil()
	for _, form := range forms {
		val, err = env.Eval(form)
		if err != nil {
			return nil, err
		}
	}
	return val, nil
}

// LoadFile opens the file at path and evaluates its contents with Load.
func (env *LEnv) LoadFile(path string) (*LVal, error) {
	f, err := os.Open(path)
	if err != nil {
		return Nil(), env.wrapError(IOError, err, "%s", path)
	}
	defer f.Close()
	return env.Load(path, f)
}

// Load reads source text from r line by line and evaluates each complete
// form as soon as the accumulated text contains one.  When reading fails Load
// returns the value of the last form evaluated together with an IOError.
// Text remaining at the end of input which does not form a complete
// expression is an IncompleteError.
func (env *LEnv) Load(name string, r io.Reader) (*LVal, error) {
	reader, err := env.reader()
	if err != nil {
		return nil, err
	}
	env.Runtime.trace("load", "name", name, "env", env.ID)
	var (
		buf     strings.Builder
		partial error
		last    = Nil()
		lines   = bufio.NewReader(r)
	)
	for {
		line, rerr := lines.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return last, env.wrapError(IOError, rerr, "%s", name)
		}
		buf.WriteString(line)
		if strings.TrimSpace(buf.String()) != "" && line != "" {
			forms, err := reader.ReadForms(buf.String())
			switch {
			case IsIncomplete(err):
				partial = err
			case err != nil:
				return nil, err
			default:
				partial = nil
				buf.Reset()
				for _, form := range forms {
					last, err = env.Eval(form)
					if err != nil {
						return nil, err
					}
				}
			}
		}
		if rerr != nil {
			break
		}
	}
	if partial != nil {
		return nil, partial
	}
	return last, nil
}

// (load path)
func opLoad(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "LOAD", args, 1)
	if err != nil {
		return nil, err
	}
	path, err := env.Eval(args.Head())
	if err != nil {
		return nil, err
	}
	if path.Type != LString {
		return nil, env.errorf(TypingError, "LOAD: path is not a string: %v", path)
	}
	val, err := env.LoadFile(path.Str)
	if HasKind(err, IOError) {
		fmt.Fprintf(env.Runtime.Stderr, "Error reading %s: %v\n", path.Str, err)
		env.Runtime.Logger.Error("load failed", "path", path.Str, "error", err)
		if val == nil {
			val = Nil()
		}
		return val, nil
	}
	return val, err
}
