package dbfield

import (
	"fmt"
	"sort"
	"strings"
)

// Manipulation commands.
const (
	ManipulationInsert = "insert"
	ManipulationUpdate = "update"
)

// IDColumn is the primary key every managed table carries.
const IDColumn = "ID"

// Manipulation collects SQL literals per column for one INSERT or UPDATE.
type Manipulation struct {
	Table   string
	Command string
	ID      int64 // row to update, ignored on insert
	Dialect Dialect
	Fields  map[string]string
}

func NewManipulation(d Dialect, table, command string) *Manipulation {
	return &Manipulation{
		Table:   table,
		Command: command,
		Dialect: d,
		Fields:  make(map[string]string),
	}
}

// Columns returns the written column names, sorted.
func (T *Manipulation) Columns() []string {
	res := make([]string, 0, len(T.Fields))
	for k := range T.Fields {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// SQL renders the statement. Columns are emitted in sorted order.
func (T *Manipulation) SQL() (string, error) {
	if T.Table == "" {
		return "", fmt.Errorf("Manipulation.SQL: table name is empty")
	}
	var sb strings.Builder
	switch T.Command {
	case ManipulationInsert:
		return T.insertSQL(""), nil
	case ManipulationUpdate:
		if len(T.Fields) == 0 {
			return "", fmt.Errorf("Manipulation.SQL: no fields to write for table %s", T.Table)
		}
		if T.ID <= 0 {
			return "", fmt.Errorf("Manipulation.SQL: update of %s needs a positive ID, got %d", T.Table, T.ID)
		}
		cols := T.Columns()
		sets := make([]string, len(cols))
		for i, c := range cols {
			sets[i] = fmt.Sprintf("%s = %s", T.Dialect.QuoteIdent(c), T.Fields[c])
		}
		sb.WriteString("update ")
		sb.WriteString(T.Dialect.QuoteIdent(T.Table))
		sb.WriteString(" set ")
		sb.WriteString(strings.Join(sets, ", "))
		sb.WriteString(fmt.Sprintf(" where %s = %d", T.Dialect.QuoteIdent(IDColumn), T.ID))
	default:
		return "", fmt.Errorf("Manipulation.SQL: unknown command %q", T.Command)
	}
	return sb.String(), nil
}

// insertSQL renders the INSERT. output, when set, is placed between the
// column list and VALUES (MSSQL "output inserted.[ID]"). Without columns
// every column takes its default.
func (T *Manipulation) insertSQL(output string) string {
	cols := T.Columns()
	names := make([]string, len(cols))
	values := make([]string, len(cols))
	for i, c := range cols {
		names[i] = T.Dialect.QuoteIdent(c)
		values[i] = T.Fields[c]
	}
	var sb strings.Builder
	sb.WriteString("insert into ")
	sb.WriteString(T.Dialect.QuoteIdent(T.Table))
	if len(cols) == 0 {
		if T.Dialect == DbDialectMySQL {
			sb.WriteString(" () values ()")
			return sb.String()
		}
		if output != "" {
			sb.WriteString(" ")
			sb.WriteString(output)
		}
		sb.WriteString(" default values")
		return sb.String()
	}
	sb.WriteString(" (")
	sb.WriteString(strings.Join(names, ", "))
	sb.WriteString(")")
	if output != "" {
		sb.WriteString(" ")
		sb.WriteString(output)
	}
	sb.WriteString(" values (")
	sb.WriteString(strings.Join(values, ", "))
	sb.WriteString(")")
	return sb.String()
}
