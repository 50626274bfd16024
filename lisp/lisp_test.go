package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNil(t *testing.T) {
	assert.True(t, Nil().IsNil())
	assert.True(t, Symbol("nil").IsNil())
	assert.True(t, (&LVal{Type: LCons}).IsNil())
	var v *LVal
	assert.True(t, v.IsNil())

	assert.False(t, Int(0).IsNil())
	assert.False(t, String("").IsNil())
	assert.False(t, Symbol("t").IsNil())
	assert.False(t, List(Nil()).IsNil())
}

func TestPredicates(t *testing.T) {
	assert.True(t, Nil().IsList())
	assert.True(t, Symbol("NIL").IsList())
	assert.True(t, List(Int(1)).IsList())
	assert.False(t, Int(1).IsList())

	assert.True(t, Int(1).IsAtom())
	assert.True(t, String("x").IsAtom())
	assert.True(t, Nil().IsAtom())
	assert.False(t, List(Int(1)).IsAtom())

	assert.True(t, Symbol(":key").IsKeyword())
	assert.False(t, Symbol("key").IsKeyword())
	assert.True(t, Symbol("abc").IsSymbol("ABC"))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Symbol("abc"), Symbol("ABC")))
	assert.True(t, Equal(Int(1), Float(1.0)))
	assert.True(t, Equal(Nil(), Symbol("nil")))
	assert.True(t, Equal(String("a"), String("a")))
	assert.False(t, Equal(String("a"), Symbol("a")))
	assert.False(t, Equal(Int(1), Int(2)))

	lis := List(Int(1))
	assert.True(t, Equal(lis, lis))
	assert.False(t, Equal(lis, List(Int(1))))
}

func TestString(t *testing.T) {
	tests := []struct {
		v   *LVal
		str string
	}{
		{Nil(), "()"},
		{&LVal{Type: LCons}, "()"},
		{Symbol("foo"), "FOO"},
		{Int(-12), "-12"},
		{Float(2), "2.0"},
		{Float(0.25), "0.25"},
		{Float(1e21), "1e+21"},
		{String("a\"b"), `"a\"b"`},
		{List(Int(1), List(Symbol("a")), Nil()), "(1 (A) ())"},
		{Cons(Int(1), Int(2)), "(1 . 2)"},
		{Cons(Int(1), Cons(Int(2), Int(3))), "(1 2 . 3)"},
	}
	for i, test := range tests {
		assert.Equal(t, test.str, test.v.String(), "test %d", i)
	}
}

func TestListHelpers(t *testing.T) {
	lis := List(Int(1), Int(2), Int(3))
	assert.Equal(t, 3, lis.Len())
	assert.Equal(t, int64(2), lis.Cadr().Int)
	assert.Equal(t, int64(3), lis.Nth(2).Int)
	assert.True(t, lis.Nth(3).IsNil())
	assert.Len(t, lis.Slice(), 3)
	assert.Equal(t, 0, Nil().Len())
	assert.Empty(t, Nil().Slice())

	dotted := Cons(Int(1), Int(2))
	assert.Equal(t, 2, dotted.Len())
	assert.Len(t, dotted.Slice(), 2)
	assert.True(t, Int(1).Head().IsNil())
	assert.True(t, Int(1).Tail().IsNil())
}
