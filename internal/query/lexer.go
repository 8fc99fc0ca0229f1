// Package query parses wine review query lines and builds view queries from them.
package query

import (
	"strings"
	"unicode"
)

// Operator is a comparison operator attached to a predicate value.
type Operator string

const (
	OpEq Operator = "="
	OpLt Operator = "<"
	OpGt Operator = ">"
	OpLe Operator = "<="
	OpGe Operator = ">="
)

// Valid reports whether o is one of the supported comparison operators.
func (o Operator) Valid() bool {
	switch o {
	case OpEq, OpLt, OpGt, OpLe, OpGe:
		return true
	}
	return false
}

// Token is a single word of a query line. Op is empty for plain tokens and
// set for values written with an operator prefix, as in points>=90.
type Token struct {
	Value string
	Op    Operator
	Pos   int
}

// IsPlain reports whether the token carries no operator prefix.
func (t Token) IsPlain() bool {
	return t.Op == ""
}

func (t Token) String() string {
	if t.IsPlain() {
		return t.Value
	}
	return string(t.Op) + t.Value
}

// Lexer splits a query line into tokens.
//
// It has two states: default, and inside a quoted span opened by ' or ".
// Only the character that opened a span closes it. Whitespace separates
// tokens in the default state and is content inside a span. A run of
// operator characters (= < > !) outside a span is collected as the operator
// prefix of the next token; one written straight after a key ends the key.
// Once a token has its prefix, further operator characters are content.
type Lexer struct {
	input string

	quote    rune // 0 in the default state
	quotePos int

	buf      strings.Builder
	started  bool
	startPos int

	op    string
	opPos int

	tokens []Token
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Lex tokenizes input. It fails with EMPTY_STRING for blank input,
// INVALID_OPERATOR for an operator prefix outside = < > <= >=, and
// INCOMPLETE_WRAP when input ends inside a quoted span.
func Lex(input string) ([]Token, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &ParseError{Code: EmptyString}
	}
	return NewLexer(input).Tokens()
}

// Tokens scans the whole input and returns the tokens in order.
func (l *Lexer) Tokens() ([]Token, error) {
	for pos, ch := range l.input {
		if l.quote != 0 {
			if ch == l.quote {
				l.quote = 0
				continue
			}
			l.buf.WriteRune(ch)
			continue
		}

		switch {
		case isQuote(ch):
			l.begin(pos)
			l.quote = ch
			l.quotePos = pos
		case isOperatorChar(ch) && (!l.started || l.op == ""):
			// An operator ends a key written against its value, as in points>=90.
			if l.started {
				if err := l.flush(); err != nil {
					return nil, err
				}
			}
			if l.op == "" {
				l.opPos = pos
			}
			l.op += string(ch)
		case unicode.IsSpace(ch):
			if err := l.flush(); err != nil {
				return nil, err
			}
		default:
			l.begin(pos)
			l.buf.WriteRune(ch)
		}
	}

	if l.quote != 0 {
		return nil, &ParseError{Code: IncompleteWrap, Pos: l.quotePos, Text: string(l.quote)}
	}
	if err := l.flush(); err != nil {
		return nil, err
	}
	if l.op != "" {
		// Operator with nothing left to apply it to.
		return nil, &ParseError{Code: KeyValuePair, Pos: l.opPos, Text: l.op}
	}
	return l.tokens, nil
}

func (l *Lexer) begin(pos int) {
	if !l.started {
		l.started = true
		l.startPos = pos
	}
}

// flush ends the current token at a separator. An operator prefix with no
// value yet stays pending so that "points >= 90" reads like "points >=90".
func (l *Lexer) flush() error {
	if l.op != "" && !Operator(l.op).Valid() {
		return &ParseError{Code: InvalidOperator, Pos: l.opPos, Text: l.op}
	}
	if !l.started {
		return nil
	}

	value := l.buf.String()
	l.buf.Reset()
	l.started = false
	if value == "" {
		// An empty quoted span produces no token.
		return nil
	}

	tok := Token{Value: value, Pos: l.startPos}
	if l.op != "" {
		tok.Op = Operator(l.op)
		tok.Pos = l.opPos
		l.op = ""
	}
	l.tokens = append(l.tokens, tok)
	return nil
}

func isQuote(ch rune) bool {
	return ch == '\'' || ch == '"'
}

func isOperatorChar(ch rune) bool {
	return ch == '=' || ch == '<' || ch == '>' || ch == '!'
}
