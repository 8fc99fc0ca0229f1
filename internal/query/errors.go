package query

import (
	"errors"
	"fmt"
)

// ParseCode classifies why a query line could not be parsed.
type ParseCode int

const (
	// EmptyString means the line was empty or only whitespace.
	EmptyString ParseCode = iota
	// KeyValuePair means the tokens after the keyword do not form key/value pairs.
	KeyValuePair
	// IncompleteWrap means a quoted span was never closed.
	IncompleteWrap
	// InvalidOperator means an operator prefix is not one of = < > <= >=.
	InvalidOperator
)

func (c ParseCode) String() string {
	switch c {
	case EmptyString:
		return "EMPTY_STRING"
	case KeyValuePair:
		return "KEY_VALUE_PAIR"
	case IncompleteWrap:
		return "INCOMPLETE_WRAP"
	case InvalidOperator:
		return "INVALID_OPERATOR"
	default:
		return fmt.Sprintf("ParseCode(%d)", int(c))
	}
}

// ParseError is returned by Lex and Parse.
type ParseError struct {
	Code ParseCode
	Pos  int    // byte offset in the input where the problem was detected
	Text string // offending text, if any
}

func (e *ParseError) Error() string {
	switch e.Code {
	case EmptyString:
		return "empty input"
	case KeyValuePair:
		return "keys and values must come in pairs after the keyword"
	case IncompleteWrap:
		return fmt.Sprintf("unclosed quote opened at pos %d", e.Pos)
	case InvalidOperator:
		return fmt.Sprintf("invalid operator %q at pos %d", e.Text, e.Pos)
	default:
		return e.Code.String()
	}
}

// Is reports whether target is a *ParseError with the same code, so callers
// can match against the sentinel values below with errors.Is.
func (e *ParseError) Is(target error) bool {
	var t *ParseError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrEmptyString     = &ParseError{Code: EmptyString}
	ErrKeyValuePair    = &ParseError{Code: KeyValuePair}
	ErrIncompleteWrap  = &ParseError{Code: IncompleteWrap}
	ErrInvalidOperator = &ParseError{Code: InvalidOperator}
)

// ErrUnknownView is returned by Build for a keyword that names no view.
var ErrUnknownView = errors.New("unknown view")
