package dbfield

import (
	"fmt"
	"strings"
)

// SearchFilter turns a submitted search value into a where clause.
// Empty values add nothing.
type SearchFilter interface {
	Apply(q *Query, d Dialect, value string)
}

// ExactMatchFilter matches column = value.
type ExactMatchFilter struct {
	Column string
}

func (T *ExactMatchFilter) Apply(q *Query, d Dialect, value string) {
	applyCompare(q, d, T.Column, "=", value)
}

// PartialMatchFilter matches values containing the search term.
type PartialMatchFilter struct {
	Column string
}

func (T *PartialMatchFilter) Apply(q *Query, d Dialect, value string) {
	if value == "" {
		return
	}
	q.AddWhere(fmt.Sprintf("%s LIKE %s", d.QuoteIdent(T.Column), d.QuoteString("%"+value+"%")))
}

// GreaterThanFilter matches column > value.
type GreaterThanFilter struct {
	Column string
}

func (T *GreaterThanFilter) Apply(q *Query, d Dialect, value string) {
	applyCompare(q, d, T.Column, ">", value)
}

// LessThanFilter matches column < value.
type LessThanFilter struct {
	Column string
}

func (T *LessThanFilter) Apply(q *Query, d Dialect, value string) {
	applyCompare(q, d, T.Column, "<", value)
}

func applyCompare(q *Query, d Dialect, column, op, value string) {
	if value == "" {
		return
	}
	q.AddWhere(fmt.Sprintf("%s %s %s", d.QuoteIdent(column), op, d.QuoteString(value)))
}

// SearchFilterByName builds a filter from a short name: exact, partial,
// gt or lt.
func SearchFilterByName(name, column string) (SearchFilter, error) {
	switch strings.ToLower(name) {
	case "exact", "exactmatch":
		return &ExactMatchFilter{Column: column}, nil
	case "partial", "partialmatch":
		return &PartialMatchFilter{Column: column}, nil
	case "gt", "greaterthan":
		return &GreaterThanFilter{Column: column}, nil
	case "lt", "lessthan":
		return &LessThanFilter{Column: column}, nil
	default:
		return nil, fmt.Errorf("SearchFilterByName: unknown filter %q", name)
	}
}
