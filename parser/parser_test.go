package parser

import (
	"testing"

	"github.com/krylisp/krylisp/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOne(t *testing.T) {
	tests := []struct {
		source string
		result string
		typ    lisp.LValType
	}{
		{"42", "42", lisp.LInt},
		{"-7", "-7", lisp.LInt},
		{"3.25", "3.25", lisp.LFloat},
		{"1.5e3", "1500.0", lisp.LFloat},
		{`"hello world"`, `"hello world"`, lisp.LString},
		{"foo", "FOO", lisp.LSymbol},
		{":key", ":KEY", lisp.LSymbol},
		{"&rest", "&REST", lisp.LSymbol},
		{"1+", "1+", lisp.LSymbol},
		{"-", "-", lisp.LSymbol},
		{"()", "()", lisp.LNil},
		{"(+ 1 2)", "(+ 1 2)", lisp.LCons},
		{"(a (b c) d)", "(A (B C) D)", lisp.LCons},
		{"'x", "(QUOTE X)", lisp.LCons},
		{"'(1 2)", "(QUOTE (1 2))", lisp.LCons},
		{"`(a ,b ,@c)", "(BACKQUOTE (A (COMMA B) (COMMA-AT C)))", lisp.LCons},
		{"  ; comment only\n(a ; trailing\n b)", "(A B)", lisp.LCons},
		{"", "()", lisp.LNil},
	}
	for i, test := range tests {
		v, err := ParseOne(test.source)
		if !assert.NoError(t, err, "test %d: %q", i, test.source) {
			continue
		}
		assert.Equal(t, test.result, v.String(), "test %d: %q", i, test.source)
		assert.Equal(t, test.typ, v.Type, "test %d: %q", i, test.source)
	}
}

func TestParseAll(t *testing.T) {
	forms, err := ParseAll("(defun id (x) x)\n(id 3) ; call\n'done")
	require.NoError(t, err)
	require.Len(t, forms, 3)
	assert.Equal(t, "(DEFUN ID (X) X)", forms[0].String())
	assert.Equal(t, "(ID 3)", forms[1].String())
	assert.Equal(t, "(QUOTE DONE)", forms[2].String())

	_, err = ParseOne("1 2")
	assert.True(t, lisp.HasKind(err, lisp.SyntaxError))
}

func TestIncomplete(t *testing.T) {
	for _, source := range []string{
		"(",
		"(defun f (x)\n  (+ x 1)",
		`"abc`,
		`(print "a)`,
		"'",
		"(a `",
	} {
		_, err := ParseAll(source)
		assert.True(t, lisp.IsIncomplete(err), "%q: %v", source, err)
	}
}

func TestSyntaxError(t *testing.T) {
	_, err := ParseAll("(a b))")
	require.Error(t, err)
	assert.True(t, lisp.HasKind(err, lisp.SyntaxError))
	assert.Contains(t, err.Error(), "(a b))\n     ^")

	_, err = ParseAll("(list 1\n  [2])")
	require.Error(t, err)
	assert.True(t, lisp.HasKind(err, lisp.SyntaxError))
	assert.Contains(t, err.Error(), "line 2, column 3")
	assert.Contains(t, err.Error(), "  [2])\n  ^")
}

func TestReader(t *testing.T) {
	var r lisp.Reader = NewReader()
	forms, err := r.ReadForms("(a) (b)")
	require.NoError(t, err)
	assert.Len(t, forms, 2)
}
