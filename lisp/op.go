package lisp

import (
	"fmt"
	"time"
)

func opEq(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "EQ", args, 2)
	if err != nil {
		return nil, err
	}
	vals, err := env.evalArgs(args)
	if err != nil {
		return nil, err
	}
	return Bool(Equal(vals.Head(), vals.Cadr())), nil
}

// (if test-form then-form else-form)
func opIf(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "IF", args, 3)
	if err != nil {
		return nil, err
	}
	test, err := env.Eval(args.Head())
	if err != nil {
		return nil, err
	}
	if test.IsNil() {
		return env.Eval(args.Nth(2))
	}
	return env.Eval(args.Nth(1))
}

func opAnd(env *LEnv, args *LVal) (*LVal, error) {
	val := Nil()
	for _, form := range args.Slice() {
		var err error
		val, err = env.Eval(form)
		if err != nil {
			return nil, err
		}
		if val.IsNil() {
			return Nil(), nil
		}
	}
	return val, nil
}

func opOr(env *LEnv, args *LVal) (*LVal, error) {
	for _, form := range args.Slice() {
		val, err := env.Eval(form)
		if err != nil {
			return nil, err
		}
		if !val.IsNil() {
			return val, nil
		}
	}
	return Nil(), nil
}

func opNot(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "NOT", args, 1)
	if err != nil {
		return nil, err
	}
	val, err := env.Eval(args.Head())
	if err != nil {
		return nil, err
	}
	return Bool(val.IsNil()), nil
}

func opQuote(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, QuoteSymbol, args, 1)
	if err != nil {
		return nil, err
	}
	return args.Head(), nil
}

func opCons(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "CONS", args, 2)
	if err != nil {
		return nil, err
	}
	vals, err := env.evalArgs(args)
	if err != nil {
		return nil, err
	}
	return Cons(vals.Head(), vals.Cadr()), nil
}

func evalList(env *LEnv, name string, args *LVal) (*LVal, error) {
	err := checkArity(env, name, args, 1)
	if err != nil {
		return nil, err
	}
	lis, err := env.Eval(args.Head())
	if err != nil {
		return nil, err
	}
	if !lis.IsList() {
		return nil, env.errorf(TypingError, "%s: argument is not a list: %v", name, lis)
	}
	return lis, nil
}

func opCar(env *LEnv, args *LVal) (*LVal, error) {
	lis, err := evalList(env, "CAR", args)
	if err != nil {
		return nil, err
	}
	return lis.Head(), nil
}

func opCdr(env *LEnv, args *LVal) (*LVal, error) {
	lis, err := evalList(env, "CDR", args)
	if err != nil {
		return nil, err
	}
	return lis.Tail(), nil
}

func evalPredicate(env *LEnv, name string, args *LVal, pred func(*LVal) bool) (*LVal, error) {
	err := checkArity(env, name, args, 1)
	if err != nil {
		return nil, err
	}
	val, err := env.Eval(args.Head())
	if err != nil {
		return nil, err
	}
	return Bool(pred(val)), nil
}

func opListp(env *LEnv, args *LVal) (*LVal, error) {
	return evalPredicate(env, "LISTP", args, (*LVal).IsList)
}

func opNull(env *LEnv, args *LVal) (*LVal, error) {
	return evalPredicate(env, "NULL", args, (*LVal).IsNil)
}

func opAtom(env *LEnv, args *LVal) (*LVal, error) {
	return evalPredicate(env, "ATOM", args, (*LVal).IsAtom)
}

func opList(env *LEnv, args *LVal) (*LVal, error) {
	return env.evalArgs(args)
}

// (lambda formals body...)
func opLambda(env *LEnv, args *LVal) (*LVal, error) {
	err := checkMinArity(env, LambdaSymbol, args, 1)
	if err != nil {
		return nil, err
	}
	if !args.Head().IsList() {
		return nil, env.errorf(TypingError, "%s: formal arguments are not a list: %v", LambdaSymbol, args.Head())
	}
	return newCallable(LambdaSymbol, args, env), nil
}

// newCallable returns a fresh head pair (head . rest).  The tail is shared
// with the defining form.
func newCallable(head string, rest *LVal, env *LEnv) *LVal {
	fun := Cons(Symbol(head), rest)
	fun.Env = env
	return fun
}

// (defun name formals body...)
func opDefun(env *LEnv, args *LVal) (*LVal, error) {
	name, err := checkDefinition(env, "DEFUN", args)
	if err != nil {
		return nil, err
	}
	fun := newCallable(LambdaSymbol, args.Tail(), env)
	err = env.DefineGlobal(name, fun)
	if err != nil {
		return nil, err
	}
	env.Runtime.trace("function defined", "name", name.Str, "formals", args.Cadr())
	return name, nil
}

func checkDefinition(env *LEnv, form string, args *LVal) (*LVal, error) {
	err := checkMinArity(env, form, args, 3)
	if err != nil {
		return nil, err
	}
	name := args.Head()
	if name.Type != LSymbol || name.IsNil() {
		return nil, env.errorf(TypingError, "%s: name is not a symbol: %v", form, name)
	}
	if !args.Cadr().IsList() {
		return nil, env.errorf(TypingError, "%s: formal arguments are not a list: %v", form, args.Cadr())
	}
	return name, nil
}

// (let ((sym val)...) body...)
func opLet(env *LEnv, args *LVal) (*LVal, error) {
	err := checkMinArity(env, "LET", args, 1)
	if err != nil {
		return nil, err
	}
	bindlist := args.Head()
	if !bindlist.IsList() {
		return nil, env.errorf(TypingError, "LET: first argument is not a list: %v", bindlist)
	}
	binds := bindlist.Slice()
	syms := make([]*LVal, len(binds))
	vals := make([]*LVal, len(binds))
	for i, bind := range binds {
		switch {
		case bind.Type == LSymbol:
			syms[i], vals[i] = bind, Nil()
		case bind.Type == LCons && !bind.IsNil():
			if bind.Len() > 2 {
				return nil, env.errorf(TypingError, "LET: binding is not a pair: %v", bind)
			}
			syms[i] = bind.Head()
			vals[i], err = env.Eval(bind.Cadr())
			if err != nil {
				return nil, err
			}
		default:
			return nil, env.errorf(TypingError, "LET: invalid binding: %v", bind)
		}
	}
	letenv := NewEnv(env)
	for i := range syms {
		err := letenv.Define(syms[i], vals[i])
		if err != nil {
			return nil, err
		}
	}
	env.Runtime.trace("let frame", "env", letenv.ID, "bindings", letenv.Symbols())
	return letenv.evalBody(args.Tail(), false)
}

// (setq sym val ...)
func opSetq(env *LEnv, args *LVal) (*LVal, error) {
	forms := args.Slice()
	if len(forms)%2 != 0 {
		return nil, env.errorf(ArityError, "SETQ: odd number of arguments (got %d)", len(forms))
	}
	val := Nil()
	for i := 0; i < len(forms); i += 2 {
		sym := forms[i]
		if isConstant(sym) {
			return nil, env.errorf(TypingError, "SETQ: cannot assign to constant %v", sym)
		}
		var err error
		val, err = env.Eval(forms[i+1])
		if err != nil {
			return nil, err
		}
		err = env.Assign(sym, val)
		if err != nil {
			return nil, err
		}
	}
	return val, nil
}

func isConstant(sym *LVal) bool {
	return sym.IsNil() || sym.IsSymbol(TrueSymbol) || sym.IsKeyword()
}

// (apply fn arglist)
func opApply(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "APPLY", args, 2)
	if err != nil {
		return nil, err
	}
	arglist, err := env.Eval(args.Cadr())
	if err != nil {
		return nil, err
	}
	if !arglist.IsList() {
		return nil, env.errorf(TypingError, "APPLY: argument list is not a list: %v", arglist)
	}
	if arglist.IsNil() {
		arglist = Nil()
	}
	return env.Eval(Cons(args.Head(), arglist))
}

type doVar struct {
	sym    *LVal
	init   *LVal
	update *LVal
}

// (do ((var init [update])...) (end-test [result...]) body...)
func opDo(env *LEnv, args *LVal) (*LVal, error) {
	err := checkMinArity(env, "DO", args, 2)
	if err != nil {
		return nil, err
	}
	vars, err := parseDoVars(env, args.Head())
	if err != nil {
		return nil, err
	}
	end := args.Cadr()
	if end.IsAtom() {
		return nil, env.errorf(TypingError, "DO: end clause is not a list: %v", end)
	}

	loopenv := NewEnv(env)
	for _, v := range vars {
		val, err := env.Eval(v.init)
		if err != nil {
			return nil, err
		}
		err = loopenv.Define(v.sym, val)
		if err != nil {
			return nil, err
		}
	}
	body := args.Tail().Tail()
	for {
		done, err := loopenv.Eval(end.Head())
		if err != nil {
			return nil, err
		}
		if !done.IsNil() {
			break
		}
		_, err = loopenv.evalBody(body, false)
		if err != nil {
			return nil, err
		}
		next := make([]*LVal, len(vars))
		for i, v := range vars {
			if v.update == nil {
				continue
			}
			next[i], err = loopenv.Eval(v.update)
			if err != nil {
				return nil, err
			}
		}
		for i, v := range vars {
			if next[i] != nil {
				loopenv.Scope[v.sym.Str] = next[i]
			}
		}
	}
	return loopenv.evalBody(end.Tail(), false)
}

func parseDoVars(env *LEnv, clauses *LVal) ([]doVar, error) {
	if !clauses.IsList() {
		return nil, env.errorf(TypingError, "DO: variable list is not a list: %v", clauses)
	}
	var vars []doVar
	for _, clause := range clauses.Slice() {
		if clause.Type == LSymbol && !clause.IsNil() {
			vars = append(vars, doVar{sym: clause, init: Nil()})
			continue
		}
		n := clause.Len()
		if clause.Type != LCons || n < 1 || n > 3 || clause.Head().Type != LSymbol {
			return nil, env.errorf(TypingError, "DO: invalid variable clause: %v", clause)
		}
		v := doVar{sym: clause.Head(), init: clause.Cadr()}
		if n == 3 {
			v.update = clause.Nth(2)
		}
		vars = append(vars, v)
	}
	return vars, nil
}

func opEval(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "EVAL", args, 1)
	if err != nil {
		return nil, err
	}
	form, err := env.Eval(args.Head())
	if err != nil {
		return nil, err
	}
	return env.Eval(form)
}

func opGensym(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "GENSYM", args, 0)
	if err != nil {
		return nil, err
	}
	return env.Runtime.Gensym(), nil
}

func opPrint(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "PRINT", args, 1)
	if err != nil {
		return nil, err
	}
	val, err := env.Eval(args.Head())
	if err != nil {
		return nil, err
	}
	_, err = fmt.Fprintln(env.Runtime.Stdout, val)
	if err != nil {
		return nil, env.wrapError(IOError, err, "PRINT")
	}
	return val, nil
}

func opTime(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "TIME", args, 1)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	val, err := env.Eval(args.Head())
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(env.Runtime.Stdout, "Evaluating %v took %v.\n", args.Head(), time.Since(start))
	return val, nil
}

func opQuit(env *LEnv, args *LVal) (*LVal, error) {
	env.Runtime.Logger.Debug("exit requested", "stack", env.Runtime.Stack.Height())
	env.Runtime.Exit(0)
	return Nil(), nil
}

func opDbg(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "DBG", args, 1)
	if err != nil {
		return nil, err
	}
	flag, err := env.Eval(args.Head())
	if err != nil {
		return nil, err
	}
	on := !flag.IsNil()
	env.Runtime.SetDebug(on)
	env.Runtime.Logger.Info("debug tracing", "enabled", on)
	return Bool(on), nil
}

// (return [value])
func opReturn(env *LEnv, args *LVal) (*LVal, error) {
	switch args.Len() {
	case 0:
		return Nil(), nil
	case 1:
		return env.Eval(args.Head())
	default:
		return nil, env.errorf(ArityError, "RETURN: at most 1 argument expected (got %d)", args.Len())
	}
}
