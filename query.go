package dbfield

import (
	"fmt"
	"strings"
)

// Query is a minimal SELECT builder. Search filters append to Where,
// fields may append to Select.
type Query struct {
	Dialect Dialect
	From    string
	Select  []string
	Where   []string // joined with "and"
	OrderBy []string
	Limit   int
	Offset  int
}

// NewQuery selects every column of table.
func NewQuery(d Dialect, table string) *Query {
	return &Query{
		Dialect: d,
		From:    table,
		Select:  []string{d.QuoteIdent(table) + ".*"},
	}
}

func (T *Query) AddWhere(clause string) {
	T.Where = append(T.Where, clause)
}

func (T *Query) String() string {
	var builder strings.Builder
	builder.WriteString("select ")
	builder.WriteString(strings.Join(T.Select, ", "))
	builder.WriteString(" from ")
	builder.WriteString(T.Dialect.QuoteIdent(T.From))
	if len(T.Where) > 0 {
		builder.WriteString(" where ")
		builder.WriteString(strings.Join(T.Where, " and "))
	}
	if len(T.OrderBy) > 0 {
		builder.WriteString(" order by ")
		builder.WriteString(strings.Join(T.OrderBy, ", "))
	}
	if T.Limit > 0 {
		switch T.Dialect {
		case DbDialectSQLite, DbDialectPostgres:
			builder.WriteString(fmt.Sprintf(" limit %d offset %d", T.Limit, T.Offset))
		case DbDialectMySQL:
			builder.WriteString(fmt.Sprintf(" limit %d, %d", T.Offset, T.Limit))
		case DbDialectMSSQL:
			if len(T.OrderBy) == 0 {
				builder.WriteString(" order by (select null)")
			}
			builder.WriteString(fmt.Sprintf(" offset %d rows fetch next %d rows only", T.Offset, T.Limit))
		}
	}
	return builder.String()
}
