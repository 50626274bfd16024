// Package parser provides a lisp reader.
//
//	form     := <list> | <prefixed> | <string> | <atom>
//	list     := '(' <form>* ')'
//	prefixed := ( "'" | '`' | ',@' | ',' ) <form>
//	string   := '"' <strcontent> '"'
//	atom     := /[A-Za-z0-9!$:%&\/=+\-_*<>|?#.]+/
//	comment  := ';' <any characters up to newline>
//
// An atom matching /-?[0-9]+/ is an integer and an atom matching
// /-?[0-9]+\.[0-9]+([eE]-?[0-9]+)?/ is a float.  Any other atom is a symbol.
// The prefixes read as (QUOTE x), (BACKQUOTE x), (COMMA-AT x) and (COMMA x).
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/krylisp/krylisp/lisp"
	parsec "github.com/prataprc/goparsec"
)

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeList
	nodeQuote
	nodeBackquote
	nodeComma
	nodeCommaAt
)

var nodeTypeStrings = []string{
	nodeInvalid:   "INVALID",
	nodeTerm:      "TERM",
	nodeList:      "LIST",
	nodeQuote:     "QUOTE",
	nodeBackquote: "BACKQUOTE",
	nodeComma:     "COMMA",
	nodeCommaAt:   "COMMA-AT",
}

var prefixSymbols = map[nodeType]string{
	nodeQuote:     lisp.QuoteSymbol,
	nodeBackquote: lisp.BackquoteSymbol,
	nodeComma:     lisp.CommaSymbol,
	nodeCommaAt:   lisp.CommaAtSymbol,
}

const atomChars = `A-Za-z0-9!$:%&/=+\-_*<>|?#.`

var (
	intPattern   = regexp.MustCompile(`^-?[0-9]+$`)
	floatPattern = regexp.MustCompile(`^-?[0-9]+\.[0-9]+(?:[eE]-?[0-9]+)?$`)
	atomPattern  = regexp.MustCompile(`^[` + atomChars + `]$`)
)

var formParser = newParsecParser()

// Reader implements lisp.Reader.
type Reader struct{}

// NewReader returns a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

var _ lisp.Reader = (*Reader)(nil)

// ReadForms implements lisp.Reader.
func (r *Reader) ReadForms(text string) ([]*lisp.LVal, error) {
	return ParseAll(text)
}

// ParseOne parses exactly one form from text.  Text containing only
// whitespace and comments parses as nil.
func ParseOne(text string) (*lisp.LVal, error) {
	forms, err := ParseAll(text)
	if err != nil {
		return nil, err
	}
	switch len(forms) {
	case 0:
		return lisp.Nil(), nil
	case 1:
		return forms[0], nil
	default:
		return nil, lisp.Errorf(lisp.SyntaxError, "expected one form (got %d)", len(forms))
	}
}

// ParseAll parses every top-level form in text.  Text which ends in the
// middle of a form results in an IncompleteError.
func ParseAll(text string) ([]*lisp.LVal, error) {
	err := checkBalance(text)
	if err != nil {
		return nil, err
	}
	var forms []*lisp.LVal
	s := parsec.NewScanner([]byte(text))
	root, s := formParser(s)
	for root != nil {
		if v := getLVal(root); v != nil {
			forms = append(forms, v)
		}
		root, s = formParser(s)
	}
	cursor := s.GetCursor()
	if strings.TrimSpace(text[cursor:]) != "" {
		if pos := findIllegal(text); pos >= 0 {
			cursor = pos
		}
		return nil, syntaxError(text, cursor)
	}
	return forms, nil
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	quote := parsec.Atom("'", "QUOTE")
	backquote := parsec.Atom("`", "BACKQUOTE")
	commaAt := parsec.Atom(",@", "COMMAAT")
	comma := parsec.Atom(",", "COMMA")
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	atom := parsec.Token(`[`+atomChars+`]+`, "ATOM")
	term := parsec.OrdChoice(astNode(nodeTerm), // terminal token
		parsec.String(),
		atom,
	)
	var expr, datum parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	list := parsec.And(astNode(nodeList), openP, exprList, closeP)
	prefixed := parsec.OrdChoice(nil,
		parsec.And(astNode(nodeQuote), quote, &datum),
		parsec.And(astNode(nodeBackquote), backquote, &datum),
		parsec.And(astNode(nodeCommaAt), commaAt, &datum), // before comma
		parsec.And(astNode(nodeComma), comma, &datum),
	)
	datum = parsec.OrdChoice(nil, term, list, prefixed)
	expr = parsec.OrdChoice(nil, comment, datum)
	return expr
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch typ {
	case nodeTerm:
		switch term := nodes[0].(type) {
		case string:
			return lisp.String(unquoteString(term))
		case *parsec.Terminal:
			if term.Name == "ATOM" {
				return atomLVal(term.Value)
			}
			return lisp.String(unquoteString(term.Value))
		}
		panic(fmt.Sprintf("unexpected terminal node: %T", nodes[0]))
	case nodeList:
		// We don't want terminal parsec nodes '(' and ')' or comments
		var cells []*lisp.LVal
		for _, c := range nodes {
			if v, ok := c.(*lisp.LVal); ok {
				cells = append(cells, v)
			}
		}
		return lisp.List(cells...)
	case nodeQuote, nodeBackquote, nodeComma, nodeCommaAt:
		// The prefix terminal is followed by exactly one form
		return lisp.List(lisp.Symbol(prefixSymbols[typ]), nodes[len(nodes)-1].(*lisp.LVal))
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func atomLVal(text string) *lisp.LVal {
	switch {
	case intPattern.MatchString(text):
		x, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return lisp.Int(x)
		}
		// out of range integers degrade to floats
		f, _ := strconv.ParseFloat(text, 64)
		return lisp.Float(f)
	case floatPattern.MatchString(text):
		f, _ := strconv.ParseFloat(text, 64)
		return lisp.Float(f)
	default:
		return lisp.Symbol(text)
	}
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, nodes)
	}
}

func getLVal(root parsec.ParsecNode) *lisp.LVal {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		return nil
	}
	lval, ok := nodes[0].(*lisp.LVal)
	if !ok {
		// we can be here if there is only a comment
		return nil
	}
	return lval
}

func unquoteString(s string) string {
	u, err := strconv.Unquote(s)
	if err == nil {
		return u
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
