package lisp

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// ReadForms parses text and returns the sequence of top-level forms it
	// contains.  If text ends with a partial form ReadForms returns an
	// IncompleteError.  Malformed text is a SyntaxError.
	ReadForms(text string) ([]*LVal, error)
}
