package query

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		keyword    string
		predicates map[string]Predicate
	}{
		{
			name:       "keyword only",
			input:      "wine",
			keyword:    "wine",
			predicates: map[string]Predicate{},
		},
		{
			name:    "quoted multi-word value",
			input:   "review province 'Las Vegas'",
			keyword: "review",
			predicates: map[string]Predicate{
				"province": {Op: OpEq, Value: "Las Vegas"},
			},
		},
		{
			name:    "embedded single quote",
			input:   `review title "It's James"`,
			keyword: "review",
			predicates: map[string]Predicate{
				"title": {Op: OpEq, Value: "It's James"},
			},
		},
		{
			name:    "several predicates with surrounding whitespace",
			input:   ` review title "Martha's Best Wine" province 'Las Vegas' reviewer Mike `,
			keyword: "review",
			predicates: map[string]Predicate{
				"title":    {Op: OpEq, Value: "Martha's Best Wine"},
				"province": {Op: OpEq, Value: "Las Vegas"},
				"reviewer": {Op: OpEq, Value: "Mike"},
			},
		},
		{
			name:    "operators",
			input:   "review points>=90 price <30 variety =Merlot",
			keyword: "review",
			predicates: map[string]Predicate{
				"points":  {Op: OpGe, Value: "90"},
				"price":   {Op: OpLt, Value: "30"},
				"variety": {Op: OpEq, Value: "Merlot"},
			},
		},
		{
			name:    "duplicate key keeps last value",
			input:   "wine country Italy country France",
			keyword: "wine",
			predicates: map[string]Predicate{
				"country": {Op: OpEq, Value: "France"},
			},
		},
		{
			name:       "unknown keyword is not rejected here",
			input:      "cheese",
			keyword:    "cheese",
			predicates: map[string]Predicate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Keyword != tt.keyword {
				t.Errorf("expected keyword %q, got %q", tt.keyword, q.Keyword)
			}
			if len(q.Predicates) != len(tt.predicates) {
				t.Fatalf("expected %d predicates, got %d: %v", len(tt.predicates), len(q.Predicates), q.Predicates)
			}
			for col, want := range tt.predicates {
				got, ok := q.Predicates[col]
				if !ok {
					t.Errorf("missing predicate %q", col)
					continue
				}
				if got != want {
					t.Errorf("predicate %q: expected %v, got %v", col, want, got)
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmptyString},
		{"blank", "   ", ErrEmptyString},
		{"missing value", "review wine", ErrKeyValuePair},
		{"three pairs short one", "review a 1 b", ErrKeyValuePair},
		{"quoted value still counts", `review province "Las Vegas" title`, ErrKeyValuePair},
		{"operator on keyword", "=wine country Italy", ErrKeyValuePair},
		{"operator on key", "wine >country Italy", ErrKeyValuePair},
		{"empty quoted value drops token", "wine country ''", ErrKeyValuePair},
		{"unclosed quote", `review "wine`, ErrIncompleteWrap},
		{"invalid operator", "wine price !=5", ErrInvalidOperator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParsedQueryString(t *testing.T) {
	q, err := Parse("review winery Trimbach points >=90")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := q.String(); got != "review points>=90 winery=Trimbach" {
		t.Errorf("unexpected String(): %q", got)
	}
}

func TestParseErrorIs(t *testing.T) {
	err := &ParseError{Code: IncompleteWrap, Pos: 7}
	if !errors.Is(err, ErrIncompleteWrap) {
		t.Errorf("expected errors.Is to match on code")
	}
	if errors.Is(err, ErrKeyValuePair) {
		t.Errorf("expected different codes not to match")
	}
	if errors.Is(err, ErrUnknownView) {
		t.Errorf("expected non-parse errors not to match")
	}
}
