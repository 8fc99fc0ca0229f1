package query

import (
	"sort"
	"strings"
)

// Predicate restricts one column to values matching Op and Value.
type Predicate struct {
	Op    Operator
	Value string
}

func (p Predicate) String() string {
	return string(p.Op) + p.Value
}

// ParsedQuery is the structured form of a query line. The keyword is kept
// apart from the predicates so it can never collide with a column name.
type ParsedQuery struct {
	Keyword    string
	Predicates map[string]Predicate
}

// Columns returns the predicate columns in sorted order.
func (q *ParsedQuery) Columns() []string {
	cols := make([]string, 0, len(q.Predicates))
	for col := range q.Predicates {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

func (q *ParsedQuery) String() string {
	var sb strings.Builder
	sb.WriteString(q.Keyword)
	for _, col := range q.Columns() {
		sb.WriteString(" ")
		sb.WriteString(col)
		sb.WriteString(q.Predicates[col].String())
	}
	return sb.String()
}

// Parse tokenizes line and pairs the tokens into a keyword and predicates.
//
// The first token is the keyword; the rest alternate key, value. Keys and
// the keyword must be plain tokens. A value without an operator prefix
// compares with =. When a key repeats, the later value wins.
func Parse(line string) (*ParsedQuery, error) {
	tokens, err := Lex(line)
	if err != nil {
		return nil, err
	}
	return Assemble(tokens)
}

// Assemble builds a ParsedQuery from already lexed tokens.
func Assemble(tokens []Token) (*ParsedQuery, error) {
	if len(tokens) == 0 {
		return nil, &ParseError{Code: EmptyString}
	}
	if len(tokens)%2 == 0 {
		return nil, &ParseError{Code: KeyValuePair, Pos: tokens[len(tokens)-1].Pos, Text: tokens[len(tokens)-1].Value}
	}

	keyword := tokens[0]
	if !keyword.IsPlain() {
		return nil, &ParseError{Code: KeyValuePair, Pos: keyword.Pos, Text: keyword.String()}
	}

	q := &ParsedQuery{
		Keyword:    keyword.Value,
		Predicates: make(map[string]Predicate, (len(tokens)-1)/2),
	}
	for i := 1; i+1 < len(tokens); i += 2 {
		key, value := tokens[i], tokens[i+1]
		if !key.IsPlain() {
			return nil, &ParseError{Code: KeyValuePair, Pos: key.Pos, Text: key.String()}
		}
		op := value.Op
		if op == "" {
			op = OpEq
		}
		q.Predicates[key.Value] = Predicate{Op: op, Value: value.Value}
	}

	return q, nil
}
