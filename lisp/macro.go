package lisp

// (defmacro name formals body...)
func opDefmacro(env *LEnv, args *LVal) (*LVal, error) {
	name, err := checkDefinition(env, "DEFMACRO", args)
	if err != nil {
		return nil, err
	}
	// Macros expand in the environment of their call site so no scope is
	// captured.
	mac := newCallable(MacroSymbol, args.Tail(), nil)
	err = env.DefineGlobal(name, mac)
	if err != nil {
		return nil, err
	}
	return name, nil
}

// callMacro expands the macro mac with the unevaluated argument forms and
// evaluates the expansion in env.  The macro's call frame remains on the
// stack while its expansion is evaluated.
func (env *LEnv) callMacro(name string, mac *LVal, forms *LVal) (*LVal, error) {
	err := env.Runtime.Stack.Push(CallFrame{Name: name, Macro: true, EnvID: env.ID})
	if err != nil {
		return nil, err
	}
	defer env.Runtime.Stack.Pop()

	expansion, err := env.expandMacro(name, mac, forms)
	if err != nil {
		return nil, err
	}
	return env.Eval(expansion)
}

// expandMacro binds the formals of mac to forms in a child frame of env and
// expands each form of the macro body.  A body with a single form produces
// that form's expansion, a longer body produces a list of expansions.
func (env *LEnv) expandMacro(name string, mac *LVal, forms *LVal) (*LVal, error) {
	frame := NewEnv(env)
	err := bindFormals(frame, name, mac.Cadr(), forms, true)
	if err != nil {
		return nil, err
	}
	body := mac.Tail().Tail().Slice()
	expansions := make([]*LVal, len(body))
	for i, form := range body {
		expansions[i], err = frame.evalMacroExpr(form)
		if err != nil {
			return nil, err
		}
	}
	var expansion *LVal
	switch len(expansions) {
	case 0:
		expansion = Nil()
	case 1:
		expansion = expansions[0]
	default:
		expansion = List(expansions...)
	}
	env.Runtime.trace("macro expansion", "macro", name, "args", forms, "expansion", expansion)
	return expansion, nil
}

func (env *LEnv) evalMacroExpr(form *LVal) (*LVal, error) {
	if form.Type == LCons && !form.IsNil() {
		switch {
		case form.Head().IsSymbol(BackquoteSymbol):
			return opBackquote(env, form.Tail())
		case form.Head().IsSymbol(QuoteSymbol):
			return opQuote(env, form.Tail())
		}
	}
	return env.Eval(form)
}

// (macroexpand form)
func opMacroexpand(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, "MACROEXPAND", args, 1)
	if err != nil {
		return nil, err
	}
	form, err := env.Eval(args.Head())
	if err != nil {
		return nil, err
	}
	if form.IsAtom() {
		return form, nil
	}
	head := form.Head()
	if head.Type != LSymbol || head.IsNil() || !env.Bound(head) {
		return form, nil
	}
	if _, special := LookupSpecialForm(head.Str); special {
		return form, nil
	}
	mac, err := env.Lookup(head)
	if err != nil {
		return nil, err
	}
	if !IsMacro(mac) {
		return form, nil
	}
	err = env.Runtime.Stack.Push(CallFrame{Name: head.Str, Macro: true, EnvID: env.ID})
	if err != nil {
		return nil, err
	}
	defer env.Runtime.Stack.Pop()
	return env.expandMacro(head.Str, mac, form.Tail())
}

// (backquote template)
func opBackquote(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArity(env, BackquoteSymbol, args, 1)
	if err != nil {
		return nil, err
	}
	return env.quasiquote(args.Head())
}

// quasiquote processes a backquote template.  Atoms are returned unchanged.
// A template which is itself an unquote is evaluated, a splice is an error
// because there is no surrounding list.
func (env *LEnv) quasiquote(tmpl *LVal) (*LVal, error) {
	switch {
	case tmpl.IsNil():
		return Nil(), nil
	case tmpl.Type == LCons:
		switch {
		case tmpl.Head().IsSymbol(CommaSymbol):
			return env.unquote(tmpl)
		case tmpl.Head().IsSymbol(CommaAtSymbol):
			return nil, env.errorf(TypingError, "%s: splice outside of a list: %v", CommaAtSymbol, tmpl)
		}
		return env.backquoteList(tmpl)
	case tmpl.Type == LSymbol, tmpl.Type == LInt, tmpl.Type == LFloat, tmpl.Type == LString:
		return tmpl, nil
	default:
		return nil, env.errorf(CantHappenError, "%s: unexpected value type: %v", BackquoteSymbol, tmpl.Type)
	}
}

// backquoteList builds a new list from the template lis, filling comma holes
// and splicing comma-at holes.  Nested lists are processed recursively,
// including nested backquote forms.
func (env *LEnv) backquoteList(lis *LVal) (*LVal, error) {
	var result []*LVal
	for _, elem := range lis.Slice() {
		if elem.IsAtom() {
			result = append(result, elem)
			continue
		}
		switch head := elem.Head(); {
		case head.IsSymbol(CommaSymbol):
			v, err := env.unquote(elem)
			if err != nil {
				return nil, err
			}
			result = append(result, v)
		case head.IsSymbol(CommaAtSymbol):
			vs, err := env.unquoteSplice(elem)
			if err != nil {
				return nil, err
			}
			result = append(result, vs...)
		default:
			v, err := env.backquoteList(elem)
			if err != nil {
				return nil, err
			}
			result = append(result, v)
		}
	}
	return List(result...), nil
}

// (comma x)
func (env *LEnv) unquote(form *LVal) (*LVal, error) {
	err := checkArity(env, CommaSymbol, form.Tail(), 1)
	if err != nil {
		return nil, err
	}
	return env.Eval(form.Cadr())
}

// (comma-at x)
func (env *LEnv) unquoteSplice(form *LVal) ([]*LVal, error) {
	err := checkArity(env, CommaAtSymbol, form.Tail(), 1)
	if err != nil {
		return nil, err
	}
	x := form.Cadr()
	var val *LVal
	switch {
	case x.Type == LSymbol:
		val, err = env.evalSymbol(x)
	case x.Type == LCons:
		val, err = env.EvalSExpr(x)
	default:
		val, err = env.Eval(x)
	}
	if err != nil {
		return nil, err
	}
	switch {
	case val.IsNil():
		return nil, nil
	case val.IsAtom():
		if val.Type == LSymbol && !val.IsKeyword() && env.Bound(val) {
			resolved, err := env.Lookup(val)
			if err != nil {
				return nil, err
			}
			return []*LVal{resolved}, nil
		}
		return []*LVal{val}, nil
	default:
		return val.Slice(), nil
	}
}
