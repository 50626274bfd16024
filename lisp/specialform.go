package lisp

// SpecialForm identifies an operator whose arguments are not uniformly
// evaluated.  Special forms are dispatched by name before any variable
// lookup, so they cannot be shadowed.
type SpecialForm uint

// The special forms.
const (
	FormInvalid SpecialForm = iota
	FormAdd
	FormSub
	FormMul
	FormDiv
	FormMod
	FormSqrt
	FormPow
	FormLT
	FormGT
	FormNumEq
	FormEq
	FormIf
	FormAnd
	FormOr
	FormNot
	FormQuote
	FormBackquote
	FormCons
	FormCar
	FormCdr
	FormListp
	FormNull
	FormAtom
	FormList
	FormLambda
	FormDefun
	FormDefmacro
	FormLet
	FormSetq
	FormApply
	FormDo
	FormEval
	FormGensym
	FormPrint
	FormTime
	FormQuit
	FormExit
	FormDbg
	FormLoad
	FormReturn
	FormMacroexpand
	numSpecialForms
)

var specialFormNames = []string{
	FormInvalid:     "INVALID",
	FormAdd:         "+",
	FormSub:         "-",
	FormMul:         "*",
	FormDiv:         "/",
	FormMod:         "MOD",
	FormSqrt:        "SQRT",
	FormPow:         "**",
	FormLT:          "<",
	FormGT:          ">",
	FormNumEq:       "=",
	FormEq:          "EQ",
	FormIf:          "IF",
	FormAnd:         "AND",
	FormOr:          "OR",
	FormNot:         "NOT",
	FormQuote:       QuoteSymbol,
	FormBackquote:   BackquoteSymbol,
	FormCons:        "CONS",
	FormCar:         "CAR",
	FormCdr:         "CDR",
	FormListp:       "LISTP",
	FormNull:        "NULL",
	FormAtom:        "ATOM",
	FormList:        "LIST",
	FormLambda:      LambdaSymbol,
	FormDefun:       "DEFUN",
	FormDefmacro:    "DEFMACRO",
	FormLet:         "LET",
	FormSetq:        "SETQ",
	FormApply:       "APPLY",
	FormDo:          "DO",
	FormEval:        "EVAL",
	FormGensym:      "GENSYM",
	FormPrint:       "PRINT",
	FormTime:        "TIME",
	FormQuit:        "QUIT",
	FormExit:        "EXIT",
	FormDbg:         "DBG",
	FormLoad:        "LOAD",
	FormReturn:      ReturnSymbol,
	FormMacroexpand: "MACROEXPAND",
}

var specialForms = make(map[string]SpecialForm, numSpecialForms)

func init() {
	for f := FormInvalid + 1; f < numSpecialForms; f++ {
		specialForms[specialFormNames[f]] = f
	}
}

func (f SpecialForm) String() string {
	if f >= numSpecialForms {
		return specialFormNames[FormInvalid]
	}
	return specialFormNames[f]
}

// LookupSpecialForm returns the special form named by the symbol name.
func LookupSpecialForm(name string) (SpecialForm, bool) {
	f, ok := specialForms[name]
	return f, ok
}

// SpecialForms returns the names of all special forms.
func SpecialForms() []string {
	names := make([]string, 0, numSpecialForms-1)
	for f := FormInvalid + 1; f < numSpecialForms; f++ {
		names = append(names, specialFormNames[f])
	}
	return names
}

func (env *LEnv) evalSpecial(form SpecialForm, args *LVal) (*LVal, error) {
	switch form {
	case FormAdd:
		return opAdd(env, args)
	case FormSub:
		return opSub(env, args)
	case FormMul:
		return opMul(env, args)
	case FormDiv:
		return opDiv(env, args)
	case FormMod:
		return opMod(env, args)
	case FormSqrt:
		return opSqrt(env, args)
	case FormPow:
		return opPow(env, args)
	case FormLT:
		return opCompare(env, "<", args, numLess)
	case FormGT:
		return opCompare(env, ">", args, numGreater)
	case FormNumEq:
		return opCompare(env, "=", args, numEqual)
	case FormEq:
		return opEq(env, args)
	case FormIf:
		return opIf(env, args)
	case FormAnd:
		return opAnd(env, args)
	case FormOr:
		return opOr(env, args)
	case FormNot:
		return opNot(env, args)
	case FormQuote:
		return opQuote(env, args)
	case FormBackquote:
		return opBackquote(env, args)
	case FormCons:
		return opCons(env, args)
	case FormCar:
		return opCar(env, args)
	case FormCdr:
		return opCdr(env, args)
	case FormListp:
		return opListp(env, args)
	case FormNull:
		return opNull(env, args)
	case FormAtom:
		return opAtom(env, args)
	case FormList:
		return opList(env, args)
	case FormLambda:
		return opLambda(env, args)
	case FormDefun:
		return opDefun(env, args)
	case FormDefmacro:
		return opDefmacro(env, args)
	case FormLet:
		return opLet(env, args)
	case FormSetq:
		return opSetq(env, args)
	case FormApply:
		return opApply(env, args)
	case FormDo:
		return opDo(env, args)
	case FormEval:
		return opEval(env, args)
	case FormGensym:
		return opGensym(env, args)
	case FormPrint:
		return opPrint(env, args)
	case FormTime:
		return opTime(env, args)
	case FormQuit, FormExit:
		return opQuit(env, args)
	case FormDbg:
		return opDbg(env, args)
	case FormLoad:
		return opLoad(env, args)
	case FormReturn:
		return opReturn(env, args)
	case FormMacroexpand:
		return opMacroexpand(env, args)
	default:
		return nil, env.errorf(CantHappenError, "unhandled special form: %v", form)
	}
}

func checkArity(env *LEnv, name string, args *LVal, n int) error {
	if nargs := args.Len(); nargs != n {
		return env.errorf(ArityError, "%s: %d arguments expected (got %d)", name, n, nargs)
	}
	return nil
}

func checkMinArity(env *LEnv, name string, args *LVal, n int) error {
	if nargs := args.Len(); nargs < n {
		return env.errorf(ArityError, "%s: at least %d arguments expected (got %d)", name, n, nargs)
	}
	return nil
}
