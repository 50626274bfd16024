package lisp

// VarArgSymbol is the symbol that indicates a variadic function argument in a
// function's list of formal arguments.
const VarArgSymbol = "&REST"

// BodyArgSymbol is accepted in place of VarArgSymbol in macro formals.
const BodyArgSymbol = "&BODY"

// Symbols with a fixed meaning to the evaluator.
const (
	NilSymbol       = "NIL"
	TrueSymbol      = "T"
	LambdaSymbol    = "LAMBDA"
	MacroSymbol     = "MACRO"
	QuoteSymbol     = "QUOTE"
	BackquoteSymbol = "BACKQUOTE"
	CommaSymbol     = "COMMA"
	CommaAtSymbol   = "COMMA-AT"
	ReturnSymbol    = "RETURN"
)

// GensymPrefix starts the name of every symbol created by gensym.
const GensymPrefix = "#:"
