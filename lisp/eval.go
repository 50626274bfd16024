package lisp

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.
func (env *LEnv) Eval(v *LVal) (*LVal, error) {
	if v == nil {
		return Nil(), nil
	}
	switch v.Type {
	case LNil:
		return Nil(), nil
	case LSymbol:
		return env.evalSymbol(v)
	case LInt, LFloat, LString:
		return v, nil
	case LCons:
		return env.EvalSExpr(v)
	default:
		return nil, env.errorf(CantHappenError, "unexpected value type: %v", v.Type)
	}
}

func (env *LEnv) evalSymbol(sym *LVal) (*LVal, error) {
	switch {
	case sym.IsKeyword():
		return sym, nil
	case sym.Str == NilSymbol:
		return Nil(), nil
	case sym.Str == TrueSymbol:
		return sym, nil
	}
	return env.Lookup(sym)
}

// EvalSExpr evaluates the list s as a special form, a function call or a
// macro call.
func (env *LEnv) EvalSExpr(s *LVal) (*LVal, error) {
	if s.IsNil() {
		return Nil(), nil
	}
	if s.Type != LCons {
		return nil, env.errorf(CantHappenError, "list is neither nil nor a lisp list: %v", s)
	}
	env.Runtime.trace("eval list", "expr", s, "env", env.ID, "depth", env.depth)

	head := s.Head()
	if head.Type == LSymbol {
		if form, ok := LookupSpecialForm(head.Str); ok {
			return env.evalSpecial(form, s.Tail())
		}
	}
	f, err := env.Eval(head)
	if err != nil {
		if head.Type == LSymbol && HasKind(err, BindingError) {
			return nil, env.wrapError(EvalError, err, "undefined function %s", head.Str)
		}
		return nil, err
	}

	name := functionName(head)
	switch {
	case IsLambda(f):
		args, err := env.evalArgs(s.Tail())
		if err != nil {
			return nil, err
		}
		return env.call(name, f, args)
	case IsMacro(f):
		return env.callMacro(name, f, s.Tail())
	default:
		return nil, env.errorf(EvalError, "%s is not a function or macro: %v", name, f)
	}
}

func functionName(head *LVal) string {
	if head.Type == LSymbol {
		return head.Str
	}
	return "<anonymous>"
}

// IsLambda returns true if v is a list whose first element is LAMBDA.
func IsLambda(v *LVal) bool {
	return !v.IsNil() && v.Type == LCons && v.Head().IsSymbol(LambdaSymbol)
}

// IsMacro returns true if v is a list whose first element is MACRO.
func IsMacro(v *LVal) bool {
	return !v.IsNil() && v.Type == LCons && v.Head().IsSymbol(MacroSymbol)
}

func (env *LEnv) evalArgs(forms *LVal) (*LVal, error) {
	cells := forms.Slice()
	vals := make([]*LVal, len(cells))
	for i, c := range cells {
		v, err := env.Eval(c)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return List(vals...), nil
}

// Call invokes the lambda list fun with the list of evaluated arguments args.
func (env *LEnv) Call(fun *LVal, args *LVal) (*LVal, error) {
	if !IsLambda(fun) {
		return nil, env.errorf(EvalError, "not a function: %v", fun)
	}
	return env.call("<anonymous>", fun, args)
}

func (env *LEnv) call(name string, fun *LVal, args *LVal) (*LVal, error) {
	// Closures evaluate in the scope where they were created.  Lambda lists
	// which were built as data have no scope and use the caller's.
	parent := fun.Env
	if parent == nil {
		parent = env
	}
	frame := NewEnv(parent)
	err := env.Runtime.Stack.Push(CallFrame{Name: name, EnvID: frame.ID})
	if err != nil {
		return nil, err
	}
	defer env.Runtime.Stack.Pop()

	err = bindFormals(frame, name, fun.Cadr(), args, false)
	if err != nil {
		return nil, err
	}
	env.Runtime.trace("function call", "function", name, "env", frame.ID, "bindings", frame.Symbols())
	return frame.evalBody(fun.Tail().Tail(), true)
}

// bindFormals binds formals positionally to the elements of args in frame.
// The formal following VarArgSymbol (or BodyArgSymbol for macros) is bound to
// the unconsumed tail of args.
func bindFormals(frame *LEnv, name string, formals *LVal, args *LVal, macro bool) error {
	if !formals.IsList() {
		return frame.errorf(TypingError, "%s: formal arguments are not a list: %v", name, formals)
	}
	nformals := 0
	for f := formals; !f.IsNil(); f = f.Tail() {
		if f.Type != LCons {
			return frame.errorf(TypingError, "%s: improper list of formal arguments: %v", name, formals)
		}
		sym := f.Head()
		if isVarArgSymbol(sym, macro) {
			if f.Tail().IsNil() {
				return frame.errorf(TypingError, "%s: formal argument list ends with %s", name, sym.Str)
			}
			return frame.Define(f.Cadr(), args)
		}
		if args.IsNil() {
			return frame.errorf(ArityError, "%s: too few arguments (got %d)", name, nformals)
		}
		err := frame.Define(sym, args.Head())
		if err != nil {
			return err
		}
		args = args.Tail()
		nformals++
	}
	return nil
}

func isVarArgSymbol(sym *LVal, macro bool) bool {
	if sym.IsSymbol(VarArgSymbol) {
		return true
	}
	return macro && sym.IsSymbol(BodyArgSymbol)
}

// evalBody evaluates the forms in body in sequence and returns the value of
// the last one.  When early is true a top-level return form ends the
// sequence.  Return forms nested deeper in the body do not.
func (env *LEnv) evalBody(body *LVal, early bool) (*LVal, error) {
	val := Nil()
	for _, expr := range body.Slice() {
		var err error
		val, err = env.Eval(expr)
		if err != nil {
			return nil, err
		}
		if early && isReturnForm(expr) {
			break
		}
	}
	return val, nil
}

func isReturnForm(expr *LVal) bool {
	return !expr.IsNil() && expr.Type == LCons && expr.Head().IsSymbol(ReturnSymbol)
}
