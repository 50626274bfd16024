package lisp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	lerr := Errorf(ArityError, "%s: %d arguments expected", "IF", 3)
	assert.Equal(t, "arity error: IF: 3 arguments expected", lerr.Error())

	testerr := errors.New("test error message")
	wrapped := WrapError(IOError, testerr, "prelude.lisp")
	assert.Equal(t, "i/o error: prelude.lisp: test error message", wrapped.Error())
	assert.True(t, errors.Is(wrapped, testerr))
	assert.True(t, HasKind(wrapped, IOError))
	assert.False(t, HasKind(wrapped, EvalError))

	outer := WrapError(EvalError, Errorf(BindingError, "unbound"), "undefined function F")
	assert.True(t, HasKind(outer, EvalError))
	assert.True(t, HasKind(outer, BindingError))

	goerr := fmt.Errorf("context: %w", Errorf(IncompleteError, "unclosed"))
	assert.True(t, IsIncomplete(goerr))
	assert.False(t, HasKind(nil, IncompleteError))

	assert.Equal(t, "can't happen", ErrorKind(99).String())
}

func TestRuntimeErrors(t *testing.T) {
	env := NewEnv(nil)
	_, err := env.Eval(List(Symbol("/"), Int(32), Int(0)))
	assert.True(t, HasKind(err, DivByZeroError))

	_, err = env.Eval(List(Symbol("mod"), Int(1), Float(0)))
	assert.True(t, HasKind(err, DivByZeroError))

	_, err = env.Eval(List(Symbol("sqrt"), Int(-1)))
	assert.True(t, HasKind(err, TypingError))

	_, err = env.Eval(&LVal{Type: LInvalid})
	assert.True(t, HasKind(err, CantHappenError))
}
