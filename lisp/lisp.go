package lisp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LNil
	LSymbol
	LInt
	LFloat
	LString
	LCons
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LNil:     "nil",
	LSymbol:  "symbol",
	LInt:     "int",
	LFloat:   "float",
	LString:  "string",
	LCons:    "cons",
}

func (t LValType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LVal is a lisp value.  Functions and macros are not a separate type.  They
// are ordinary lists headed by the symbol LAMBDA or MACRO.
type LVal struct {
	Type  LValType
	Int   int64
	Float float64
	Str   string

	// Pair slots, used when Type is LCons.  A pair with both slots unset is
	// an empty list.
	CAR *LVal
	CDR *LVal

	// Env is the environment captured by a closure.  It is only set on the
	// head pair of a lambda list.
	Env *LEnv
}

// Nil returns an LVal representing nil, an empty list, an absent value.
func Nil() *LVal {
	return &LVal{Type: LNil}
}

// Symbol returns an LVal resprenting the symbol s.  Symbol names are case
// insensitive and stored in upper case.
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  strings.ToUpper(s),
	}
}

// Int returns an LVal representing the integer x.
func Int(x int64) *LVal {
	return &LVal{
		Type: LInt,
		Int:  x,
	}
}

// Float returns an LVal representing the number x.
func Float(x float64) *LVal {
	return &LVal{
		Type:  LFloat,
		Float: x,
	}
}

// String returns an LVal representing the string str.
func String(str string) *LVal {
	return &LVal{
		Type: LString,
		Str:  str,
	}
}

// Bool returns T when ok is true and nil otherwise.
func Bool(ok bool) *LVal {
	if ok {
		return Symbol(TrueSymbol)
	}
	return Nil()
}

// Cons returns a new pair with the given head and tail.
func Cons(head, tail *LVal) *LVal {
	return &LVal{
		Type: LCons,
		CAR:  head,
		CDR:  tail,
	}
}

// List returns a proper list containing v.
func List(v ...*LVal) *LVal {
	lis := Nil()
	for i := len(v) - 1; i >= 0; i-- {
		lis = Cons(v[i], lis)
	}
	return lis
}

// IsNil returns true if v is the empty list.  The type LNil, the symbol NIL
// and a pair without head and tail are all the empty list.
func (v *LVal) IsNil() bool {
	if v == nil {
		return true
	}
	switch v.Type {
	case LNil:
		return true
	case LSymbol:
		return v.Str == NilSymbol
	case LCons:
		return v.CAR == nil && v.CDR == nil
	default:
		return false
	}
}

// IsList returns true if v is nil or a pair.
func (v *LVal) IsList() bool {
	if v.IsNil() {
		return true
	}
	return v.Type == LCons
}

// IsAtom returns true if v is not a non-empty pair.
func (v *LVal) IsAtom() bool {
	if v.IsNil() {
		return true
	}
	return v.Type != LCons
}

// IsNumeric returns true if v is an int or a float.
func (v *LVal) IsNumeric() bool {
	return v != nil && (v.Type == LInt || v.Type == LFloat)
}

// IsKeyword returns true if v is a symbol starting with a colon.
func (v *LVal) IsKeyword() bool {
	return v != nil && v.Type == LSymbol && strings.HasPrefix(v.Str, ":")
}

// IsSymbol returns true if v is the symbol with the given name.
func (v *LVal) IsSymbol(name string) bool {
	return v != nil && v.Type == LSymbol && v.Str == strings.ToUpper(name)
}

// Head returns the first element of the list v.  Head returns nil when v is
// not a pair.
func (v *LVal) Head() *LVal {
	if v == nil || v.Type != LCons || v.CAR == nil {
		return Nil()
	}
	return v.CAR
}

// Tail returns the list v without its first element.
func (v *LVal) Tail() *LVal {
	if v == nil || v.Type != LCons || v.CDR == nil {
		return Nil()
	}
	return v.CDR
}

// Len returns the number of elements in the list v.  An improper tail counts
// as one element.
func (v *LVal) Len() int {
	n := 0
	for ; !v.IsNil(); v = v.Tail() {
		n++
		if v.Type != LCons {
			break
		}
	}
	return n
}

// Nth returns the i-th element of list v, or nil if v is too short.
func (v *LVal) Nth(i int) *LVal {
	for ; i > 0 && !v.IsNil(); i-- {
		v = v.Tail()
	}
	return v.Head()
}

// Cadr returns the second element of list v.
func (v *LVal) Cadr() *LVal {
	return v.Nth(1)
}

// Slice returns the elements of the list v.  An improper tail is returned as
// the final element.
func (v *LVal) Slice() []*LVal {
	var cells []*LVal
	for ; !v.IsNil(); v = v.Tail() {
		if v.Type != LCons {
			cells = append(cells, v)
			break
		}
		cells = append(cells, v.Head())
	}
	return cells
}

// Equal reports whether a and b are the same value.  Atoms are compared by
// value and numbers by numeric value.  Pairs are only equal to themselves.
func Equal(a, b *LVal) bool {
	if a.IsNil() || b.IsNil() {
		return a.IsNil() && b.IsNil()
	}
	if a.IsNumeric() && b.IsNumeric() {
		if a.Type == LInt && b.Type == LInt {
			return a.Int == b.Int
		}
		return toFloat(a) == toFloat(b)
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LSymbol, LString:
		return a.Str == b.Str
	case LCons:
		return a == b
	default:
		return false
	}
}

func (v *LVal) String() string {
	if v == nil {
		return "()"
	}
	switch v.Type {
	case LNil:
		return "()"
	case LSymbol:
		return v.Str
	case LInt:
		return strconv.FormatInt(v.Int, 10)
	case LFloat:
		return formatFloat(v.Float)
	case LString:
		return strconv.Quote(v.Str)
	case LCons:
		if v.IsNil() {
			return "()"
		}
		return exprString(v)
	default:
		return fmt.Sprintf("%#v", v)
	}
}

func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}

func exprString(v *LVal) string {
	var buf bytes.Buffer
	buf.WriteString("(")
	for i := 0; !v.IsNil(); i++ {
		if i > 0 {
			buf.WriteString(" ")
		}
		if v.Type != LCons {
			buf.WriteString(". ")
			buf.WriteString(v.String())
			break
		}
		buf.WriteString(v.Head().String())
		v = v.Tail()
	}
	buf.WriteString(")")
	return buf.String()
}
