package parser

import (
	"strings"
	"unicode"

	"github.com/krylisp/krylisp/lisp"
)

// checkBalance scans text for unbalanced parentheses and strings.  Text
// which ends inside a list, inside a string or after a quote prefix is
// incomplete.  A close parenthesis without a matching open parenthesis is a
// syntax error.
func checkBalance(text string) error {
	depth := 0
	pending := false // a prefix which has not yet been followed by a form
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == ';':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case c == '"':
			end := stringEnd(text, i)
			if end < 0 {
				return lisp.Errorf(lisp.IncompleteError, "unterminated string")
			}
			i = end
			pending = false
		case c == '(':
			depth++
			pending = false
		case c == ')':
			if depth == 0 {
				return syntaxError(text, i)
			}
			if pending {
				return syntaxError(text, i)
			}
			depth--
		case c == '\'' || c == '`' || c == ',':
			pending = true
		case c == '@' && i > 0 && text[i-1] == ',':
		case unicode.IsSpace(rune(c)):
		default:
			pending = false
		}
	}
	switch {
	case depth > 0:
		return lisp.Errorf(lisp.IncompleteError, "%d unclosed parentheses", depth)
	case pending:
		return lisp.Errorf(lisp.IncompleteError, "quote prefix without a form")
	}
	return nil
}

// stringEnd returns the offset of the double quote which terminates the
// string starting at text[start], or -1 if the string is unterminated.
func stringEnd(text string, start int) int {
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// findIllegal returns the offset of the first character in text which cannot
// begin or continue any token, or -1.
func findIllegal(text string) int {
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == ';':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case c == '"':
			end := stringEnd(text, i)
			if end < 0 {
				return -1
			}
			i = end
		case strings.IndexByte("()'`,@", c) >= 0:
			if c == '@' && (i == 0 || text[i-1] != ',') {
				return i
			}
		case unicode.IsSpace(rune(c)):
		case !atomPattern.MatchString(text[i : i+1]):
			return i
		}
	}
	return -1
}

// syntaxError returns a SyntaxError which shows the line of text containing
// offset with a caret under the offending column.
func syntaxError(text string, offset int) error {
	if offset > len(text) {
		offset = len(text)
	}
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	lineEnd := strings.IndexByte(text[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text)
	} else {
		lineEnd += offset
	}
	lineno := strings.Count(text[:offset], "\n") + 1
	col := offset - lineStart
	return lisp.Errorf(lisp.SyntaxError, "line %d, column %d\n%s\n%s^",
		lineno, col+1, text[lineStart:lineEnd], strings.Repeat(" ", col))
}
