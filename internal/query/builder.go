package query

import (
	"fmt"

	"github.com/aidanlsb/winereview/internal/model"
)

// DefaultPageSize is the number of rows per page when none is configured.
const DefaultPageSize = 10

// Filter is one conjunct of a query's WHERE clause.
type Filter struct {
	Column string
	Op     Operator
	Value  string
}

// Descriptor is a storage-agnostic description of a paginated view query.
// The store translates it to SQL.
type Descriptor struct {
	View    model.Kind
	Filters []Filter // AND-ed together, ordered by column
	Limit   int
	Offset  int
}

// Build turns a parsed query into a Descriptor for the given 1-based page.
// Pages below 1 are treated as page 1. A non-positive pageSize falls back to
// DefaultPageSize. Column names are not checked here; an unknown column
// fails when the store runs the query.
func Build(q *ParsedQuery, page, pageSize int) (*Descriptor, error) {
	view, ok := model.ParseKind(q.Keyword)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, q.Keyword)
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	d := &Descriptor{
		View:   view,
		Limit:  pageSize,
		Offset: Offset(page, pageSize),
	}
	for _, col := range q.Columns() {
		p := q.Predicates[col]
		op := p.Op
		if op == "" {
			op = OpEq
		}
		d.Filters = append(d.Filters, Filter{Column: col, Op: op, Value: p.Value})
	}

	return d, nil
}

// Offset returns the number of rows to skip to reach page.
func Offset(page, pageSize int) int {
	if page < 1 {
		return 0
	}
	return pageSize * (page - 1)
}
