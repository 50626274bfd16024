package lisp

import (
	"math"
)

func toFloat(v *LVal) float64 {
	if v.Type == LInt {
		return float64(v.Int)
	}
	return v.Float
}

// evalNumbers evaluates each form in args and checks that the results are
// numbers.
func evalNumbers(env *LEnv, name string, args *LVal) ([]*LVal, error) {
	forms := args.Slice()
	nums := make([]*LVal, len(forms))
	for i, form := range forms {
		v, err := env.Eval(form)
		if err != nil {
			return nil, err
		}
		if !v.IsNumeric() {
			return nil, env.errorf(TypingError, "%s: argument is not a number: %v", name, v)
		}
		nums[i] = v
	}
	return nums, nil
}

// Integer operations which overflow int64 produce a float, the same way the
// reader treats an integer literal which is too large.

func numAdd(a, b *LVal) *LVal {
	if a.Type == LInt && b.Type == LInt {
		if sum, ok := addInt(a.Int, b.Int); ok {
			return Int(sum)
		}
	}
	return Float(toFloat(a) + toFloat(b))
}

func numSub(a, b *LVal) *LVal {
	if a.Type == LInt && b.Type == LInt {
		if b.Int != math.MinInt64 {
			if diff, ok := addInt(a.Int, -b.Int); ok {
				return Int(diff)
			}
		} else if a.Int < 0 {
			return Int(a.Int - b.Int)
		}
	}
	return Float(toFloat(a) - toFloat(b))
}

func numMul(a, b *LVal) *LVal {
	if a.Type == LInt && b.Type == LInt {
		if prod, ok := mulInt(a.Int, b.Int); ok {
			return Int(prod)
		}
	}
	return Float(toFloat(a) * toFloat(b))
}

// numDiv divides a by b.  Integer division which is exact produces an integer.
func numDiv(env *LEnv, a, b *LVal) (*LVal, error) {
	if isZero(b) {
		return nil, env.errorf(DivByZeroError, "/: division by zero: %v / %v", a, b)
	}
	if a.Type == LInt && b.Type == LInt && a.Int%b.Int == 0 && !(a.Int == math.MinInt64 && b.Int == -1) {
		return Int(a.Int / b.Int), nil
	}
	return Float(toFloat(a) / toFloat(b)), nil
}

func addInt(a, b int64) (int64, bool) {
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		return 0, false
	}
	return sum, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	prod := a * b
	if prod/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return prod, true
}

func isZero(v *LVal) bool {
	if v.Type == LInt {
		return v.Int == 0
	}
	return v.Float == 0
}

func opAdd(env *LEnv, args *LVal) (*LVal, error) {
	nums, err := evalNumbers(env, "+", args)
	if err != nil {
		return nil, err
	}
	sum := Int(0)
	for _, x := range nums {
		sum = numAdd(sum, x)
	}
	return sum, nil
}

func opSub(env *LEnv, args *LVal) (*LVal, error) {
	err := checkMinArity(env, "-", args, 1)
	if err != nil {
		return nil, err
	}
	nums, err := evalNumbers(env, "-", args)
	if err != nil {
		return nil, err
	}
	diff := nums[0]
	for _, x := range nums[1:] {
		diff = numSub(diff, x)
	}
	return diff, nil
}

func opMul(env *LEnv, args *LVal) (*LVal, error) {
	nums, err := evalNumbers(env, "*", args)
	if err != nil {
		return nil, err
	}
	prod := Int(1)
	for _, x := range nums {
		prod = numMul(prod, x)
	}
	return prod, nil
}

func opDiv(env *LEnv, args *LVal) (*LVal, error) {
	err := checkMinArity(env, "/", args, 1)
	if err != nil {
		return nil, err
	}
	nums, err := evalNumbers(env, "/", args)
	if err != nil {
		return nil, err
	}
	quo := nums[0]
	for _, x := range nums[1:] {
		quo, err = numDiv(env, quo, x)
		if err != nil {
			return nil, err
		}
	}
	return quo, nil
}

// opMod computes a floored modulus.  The result has the sign of the divisor.
func opMod(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "MOD", args, 2)
	if err != nil {
		return nil, err
	}
	nums, err := evalNumbers(env, "MOD", args)
	if err != nil {
		return nil, err
	}
	a, b := nums[0], nums[1]
	if isZero(b) {
		return nil, env.errorf(DivByZeroError, "MOD: division by zero: %v mod %v", a, b)
	}
	if a.Type == LInt && b.Type == LInt {
		m := a.Int % b.Int
		if m != 0 && (m < 0) != (b.Int < 0) {
			m += b.Int
		}
		return Int(m), nil
	}
	x, y := toFloat(a), toFloat(b)
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return Float(m), nil
}

func opSqrt(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "SQRT", args, 1)
	if err != nil {
		return nil, err
	}
	nums, err := evalNumbers(env, "SQRT", args)
	if err != nil {
		return nil, err
	}
	x := toFloat(nums[0])
	if x < 0 {
		return nil, env.errorf(TypingError, "SQRT: argument is negative: %v", nums[0])
	}
	return Float(math.Sqrt(x)), nil
}

func opPow(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "**", args, 2)
	if err != nil {
		return nil, err
	}
	nums, err := evalNumbers(env, "**", args)
	if err != nil {
		return nil, err
	}
	base, exp := nums[0], nums[1]
	if base.Type == LInt && exp.Type == LInt && exp.Int >= 0 {
		if n, ok := intPow(base.Int, exp.Int); ok {
			return Int(n), nil
		}
	}
	return Float(math.Pow(toFloat(base), toFloat(exp))), nil
}

// intPow computes base**exp by squaring.  It returns false if the result
// does not fit in an int64.
func intPow(base, exp int64) (int64, bool) {
	result := int64(1)
	var ok bool
	for exp > 0 {
		if exp&1 == 1 {
			result, ok = mulInt(result, base)
			if !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			base, ok = mulInt(base, base)
			if !ok {
				return 0, false
			}
		}
	}
	return result, true
}

type numPredicate func(env *LEnv, name string, a, b *LVal) (bool, error)

func numLess(env *LEnv, name string, a, b *LVal) (bool, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return false, env.errorf(TypingError, "%s: argument is not a number: %v %v", name, a, b)
	}
	if a.Type == LInt && b.Type == LInt {
		return a.Int < b.Int, nil
	}
	return toFloat(a) < toFloat(b), nil
}

func numGreater(env *LEnv, name string, a, b *LVal) (bool, error) {
	return numLess(env, name, b, a)
}

func numEqual(env *LEnv, name string, a, b *LVal) (bool, error) {
	return Equal(a, b), nil
}

// opCompare evaluates a chained comparison.  Operands are evaluated left to
// right, each at most once, and evaluation stops at the first pair for which
// pred fails.
func opCompare(env *LEnv, name string, args *LVal, pred numPredicate) (*LVal, error) {
	forms := args.Slice()
	if len(forms) == 0 {
		return Bool(true), nil
	}
	prev, err := env.Eval(forms[0])
	if err != nil {
		return nil, err
	}
	for _, form := range forms[1:] {
		next, err := env.Eval(form)
		if err != nil {
			return nil, err
		}
		ok, err := pred(env, name, prev, next)
		if err != nil {
			return nil, err
		}
		if !ok {
			return Nil(), nil
		}
		prev = next
	}
	return Bool(true), nil
}
