package query

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aidanlsb/winereview/internal/model"
)

func mustParse(t *testing.T, line string) *ParsedQuery {
	t.Helper()
	q, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse(%q): %v", line, err)
	}
	return q
}

func TestBuildViews(t *testing.T) {
	tests := []struct {
		line string
		view model.Kind
	}{
		{"wine", model.KindWine},
		{"review", model.KindReview},
		{"reviewer", model.KindReviewer},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			d, err := Build(mustParse(t, tt.line), 1, 10)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.View != tt.view {
				t.Errorf("expected view %q, got %q", tt.view, d.View)
			}
			if len(d.Filters) != 0 {
				t.Errorf("expected no filters, got %v", d.Filters)
			}
		})
	}
}

func TestBuildUnknownView(t *testing.T) {
	for _, keyword := range []string{"cheese", "Wine"} {
		_, err := Build(&ParsedQuery{Keyword: keyword}, 1, 10)
		if !errors.Is(err, ErrUnknownView) {
			t.Errorf("%s: expected ErrUnknownView, got %v", keyword, err)
		}
	}
}

func TestBuildFilters(t *testing.T) {
	d, err := Build(mustParse(t, "review variety 'Red Blend' points>=89 country Italy"), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Filter{
		{Column: "country", Op: OpEq, Value: "Italy"},
		{Column: "points", Op: OpGe, Value: "89"},
		{Column: "variety", Op: OpEq, Value: "Red Blend"},
	}
	if !reflect.DeepEqual(d.Filters, want) {
		t.Errorf("expected filters %v, got %v", want, d.Filters)
	}
}

func TestBuildDefaultsMissingOperator(t *testing.T) {
	q := &ParsedQuery{
		Keyword:    "wine",
		Predicates: map[string]Predicate{"country": {Value: "Chile"}},
	}
	d, err := Build(q, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Filters[0].Op != OpEq {
		t.Errorf("expected = operator, got %q", d.Filters[0].Op)
	}
}

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantLimit  int
		wantOffset int
	}{
		{"first page", 1, 10, 10, 0},
		{"second page", 2, 10, 10, 10},
		{"fifth page of 3", 5, 3, 3, 12},
		{"zero page", 0, 10, 10, 0},
		{"negative page", -4, 10, 10, 0},
		{"zero page size uses default", 3, 0, DefaultPageSize, 2 * DefaultPageSize},
		{"negative page size uses default", 1, -1, DefaultPageSize, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Build(mustParse(t, "wine"), tt.page, tt.pageSize)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Limit != tt.wantLimit || d.Offset != tt.wantOffset {
				t.Errorf("expected limit=%d offset=%d, got limit=%d offset=%d",
					tt.wantLimit, tt.wantOffset, d.Limit, d.Offset)
			}
		})
	}
}
