package dbfield

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrRecordNotFound is returned by LoadRecord when no row has the ID.
var ErrRecordNotFound = errors.New("dbfield: record not found")

// Table is a named, ordered set of fields sharing one SQL table.
type Table struct {
	Name   string
	Fields []IDBField
}

// NewTable binds fields to name. Field names must be unique (case-insensitive).
func NewTable(name string, fields ...IDBField) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("Table.NewTable: table name is empty")
	}
	res := &Table{Name: name}
	for _, f := range fields {
		if err := res.Add(f); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Add appends f and binds it to the table.
func (T *Table) Add(f IDBField) error {
	if f.Name() == "" {
		return &NamelessFieldError{Op: "Table.Add", Kind: f.Kind()}
	}
	if err := T.checkName(f.Name()); err != nil {
		return err
	}
	f.SetTable(T.Name)
	T.Fields = append(T.Fields, f)
	return nil
}

func (T *Table) checkName(name string) error {
	if strings.EqualFold(name, IDColumn) {
		return fmt.Errorf("Table.Add: field %s is reserved in table %s", name, T.Name)
	}
	for _, v := range T.Fields {
		if strings.EqualFold(v.Name(), name) {
			return fmt.Errorf("Table.Add: field %s already exists in table %s", name, T.Name)
		}
	}
	return nil
}

// Field returns the field with the specified name, or nil.
func (T *Table) Field(name string) IDBField {
	for _, v := range T.Fields {
		if strings.EqualFold(v.Name(), name) {
			return v
		}
	}
	return nil
}

// RequireTable makes every field's column exist.
func (T *Table) RequireTable(ctx context.Context, s SchemaRequirer) error {
	for _, f := range T.Fields {
		if err := f.RequireField(ctx, s); err != nil {
			return fmt.Errorf("Table.RequireTable: %w", err)
		}
	}
	return nil
}

// Manipulation writes the current field values into a new manipulation.
// Inserts leave out fields without a value so column defaults apply;
// updates write every field.
func (T *Table) Manipulation(d Dialect, command string, id int64) (*Manipulation, error) {
	m := NewManipulation(d, T.Name, command)
	m.ID = id
	for _, f := range T.Fields {
		if command == ManipulationInsert && !f.HasValue() {
			continue
		}
		if err := f.WriteToManipulation(m); err != nil {
			return nil, fmt.Errorf("Table.Manipulation: %w", err)
		}
	}
	return m, nil
}

// Save inserts when id is 0 and updates otherwise. It returns the row ID.
// Updating a missing row returns ErrRecordNotFound.
func (T *Table) Save(ctx context.Context, conn *Connection, id int64) (int64, error) {
	cmd := ManipulationUpdate
	if id == 0 {
		cmd = ManipulationInsert
	}
	m, err := T.Manipulation(conn.Dialect(), cmd, id)
	if err != nil {
		return 0, fmt.Errorf("Table.Save: %w", err)
	}
	newID, err := conn.WriteManipulation(ctx, m)
	if err != nil {
		return 0, fmt.Errorf("Table.Save: %w", err)
	}
	return newID, nil
}

// Query selects the table's columns. Fields may extend it.
func (T *Table) Query(d Dialect) *Query {
	q := NewQuery(d, T.Name)
	q.Select = make([]string, 0, len(T.Fields)+1)
	q.Select = append(q.Select, d.QuoteIdent(IDColumn))
	for _, f := range T.Fields {
		q.Select = append(q.Select, d.QuoteIdent(f.Name()))
	}
	for _, f := range T.Fields {
		f.AddToQuery(q)
	}
	return q
}

// LoadRecord reads row id into the fields and returns it as a MapRecord.
func (T *Table) LoadRecord(ctx context.Context, conn *Connection, id int64) (MapRecord, error) {
	d := conn.Dialect()
	q := T.Query(d)
	q.AddWhere(fmt.Sprintf("%s = $1", d.QuoteIdent(IDColumn)))

	var loadedID int64
	dest := make([]any, 0, len(T.Fields)+1)
	dest = append(dest, &loadedID)
	for _, f := range T.Fields {
		dest = append(dest, f)
	}
	err := conn.QueryRow(ctx, q.String(), id).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("Table.LoadRecord: %w: %s.%s = %d", ErrRecordNotFound, T.Name, IDColumn, id)
	}
	if err != nil {
		return nil, fmt.Errorf("Table.LoadRecord: failed to load %s %d: %w", T.Name, id, err)
	}

	res := MapRecord{IDColumn: loadedID}
	if err = SaveFields(res, T.Fields...); err != nil {
		return nil, fmt.Errorf("Table.LoadRecord: %w", err)
	}
	return res, nil
}

// ScaffoldForm returns an edit form descriptor per field.
func (T *Table) ScaffoldForm(resolver WidgetResolver) []*FormField {
	res := make([]*FormField, 0, len(T.Fields))
	for _, f := range T.Fields {
		ff := f.ScaffoldFormField("")
		if f.HasValue() {
			ff.Value = f.RawValue()
		}
		applyResolver(ff, f, resolver)
		res = append(res, ff)
	}
	return res
}

// ScaffoldSearchForm returns a search form descriptor per field.
func (T *Table) ScaffoldSearchForm(resolver WidgetResolver) []*FormField {
	res := make([]*FormField, 0, len(T.Fields))
	for _, f := range T.Fields {
		ff := f.ScaffoldSearchField("")
		applyResolver(ff, f, resolver)
		res = append(res, ff)
	}
	return res
}

// SearchQuery applies each field's default search filter to the submitted
// values. Unknown names are ignored.
func (T *Table) SearchQuery(d Dialect, values map[string]string) *Query {
	q := T.Query(d)
	for _, f := range T.Fields {
		v, ok := values[f.Name()]
		if !ok {
			continue
		}
		f.DefaultSearchFilter().Apply(q, d, v)
	}
	return q
}

// Search runs SearchQuery and returns matching rows ordered by ID.
// limit <= 0 means no limit.
func (T *Table) Search(ctx context.Context, conn *Connection, values map[string]string, limit int) ([]MapRecord, error) {
	d := conn.Dialect()
	q := T.SearchQuery(d, values)
	q.OrderBy = []string{d.QuoteIdent(IDColumn)}
	q.Limit = limit

	rows, err := conn.Query(ctx, q.String())
	if err != nil {
		return nil, fmt.Errorf("Table.Search: failed to execute query '%s': %w", q.String(), err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]MapRecord, 0)
	var id int64
	dest := make([]any, 0, len(T.Fields)+1)
	dest = append(dest, &id)
	for _, f := range T.Fields {
		dest = append(dest, f)
	}
	for rows.Next() {
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("Table.Search: failed to scan row: %w", err)
		}
		rec := MapRecord{IDColumn: id}
		if err = SaveFields(rec, T.Fields...); err != nil {
			return nil, fmt.Errorf("Table.Search: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
