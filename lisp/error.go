package lisp

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrorKind classifies an Error.
type ErrorKind int

// Possible ErrorKind values
const (
	CantHappenError ErrorKind = iota
	BindingError
	TypingError
	DivByZeroError
	ArityError
	EvalError
	SyntaxError
	IncompleteError
	StackError
	IOError
)

var errorKindStrings = []string{
	CantHappenError: "can't happen",
	BindingError:    "binding error",
	TypingError:     "typing error",
	DivByZeroError:  "division by zero",
	ArityError:      "arity error",
	EvalError:       "eval error",
	SyntaxError:     "syntax error",
	IncompleteError: "incomplete input",
	StackError:      "stack exhausted",
	IOError:         "i/o error",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindStrings) {
		return errorKindStrings[CantHappenError]
	}
	return errorKindStrings[k]
}

// Error is the error type returned by evaluation.  Symbol is set on binding
// errors.  Stack is a snapshot of the call stack when the error was created,
// if one was available.
type Error struct {
	Kind   ErrorKind
	Msg    string
	Symbol string
	Stack  *CallStack
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var buf bytes.Buffer
	buf.WriteString(e.Kind.String())
	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
	}
	if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	return buf.String()
}

// Unwrap returns the error that caused e, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf returns an Error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, v ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, v...),
	}
}

// WrapError returns an Error of the given kind caused by err.
func WrapError(kind ErrorKind, err error, format string, v ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, v...),
		Err:  err,
	}
}

// HasKind returns true if any Error in the chain of err has the given kind.
func HasKind(err error, kind ErrorKind) bool {
	for err != nil {
		var lerr *Error
		if !errors.As(err, &lerr) {
			return false
		}
		if lerr.Kind == kind {
			return true
		}
		err = lerr.Err
	}
	return false
}

// IsIncomplete returns true if err signals a partial form from a Reader.
func IsIncomplete(err error) bool {
	return HasKind(err, IncompleteError)
}

func (env *LEnv) errorf(kind ErrorKind, format string, v ...interface{}) *Error {
	lerr := Errorf(kind, format, v...)
	lerr.Stack = env.stack().Copy()
	return lerr
}

func (env *LEnv) wrapError(kind ErrorKind, err error, format string, v ...interface{}) *Error {
	lerr := WrapError(kind, err, format, v...)
	lerr.Stack = env.stack().Copy()
	return lerr
}
