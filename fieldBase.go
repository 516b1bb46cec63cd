package dbfield

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
)

// IDBField is one column value: it owns the value, knows the column it maps
// to, and renders the value for SQL, templates and scaffolded forms.
type IDBField interface {
	sql.Scanner
	driver.Valuer

	Name() string
	TableName() string
	SetTable(tableName string)
	Kind() Kind

	// SetValue replaces the value. nil clears it. record gives access to
	// sibling values of the row being loaded; built-in types ignore it.
	SetValue(v any, record Record) error
	RawValue() any
	HasValue() bool
	Clear()

	// NullValue is the literal written for a field without a value.
	NullValue() string
	// SqlStringValue renders the value as a SQL literal. Without a value it
	// renders the type's null literal.
	SqlStringValue(d Dialect) (string, error)
	WriteToManipulation(m *Manipulation) error
	AddToQuery(q *Query)
	SaveInto(r Record) error

	AsString() string
	Nice() string
	ForTemplate() string
	RAW() string
	HTML() string
	XML() string
	ATT() string
	HTMLATT() string
	URLATT() string
	RAWURLATT() string
	JS() string

	ScaffoldFormField(title string) *FormField
	ScaffoldSearchField(title string) *FormField
	DefaultSearchFilter() SearchFilter

	ColumnSpec() ColumnSpec
	RequireField(ctx context.Context, s SchemaRequirer) error

	Debug() string
}

// dbFieldBase carries what every field type shares. self points at the
// embedding concrete type so shared methods reach its overrides.
type dbFieldBase struct {
	self      IDBField
	name      string
	tableName string
	valid     bool
}

func (T *dbFieldBase) init(self IDBField, name string) {
	T.self = self
	T.name = name
}

func (T *dbFieldBase) Name() string {
	return T.name
}

func (T *dbFieldBase) TableName() string {
	return T.tableName
}

func (T *dbFieldBase) SetTable(tableName string) {
	T.tableName = tableName
}

// HasValue reports whether a value was set. Zero values count as set.
func (T *dbFieldBase) HasValue() bool {
	return T.valid
}

// SetVal is kept as an alias of SetValue.
func (T *dbFieldBase) SetVal(v any, record Record) error {
	return T.self.SetValue(v, record)
}

func (T *dbFieldBase) NullValue() string {
	return "NULL"
}

func (T *dbFieldBase) WriteToManipulation(m *Manipulation) error {
	if T.name == "" {
		return &NamelessFieldError{Op: "WriteToManipulation", Kind: T.self.Kind()}
	}
	if m.Fields == nil {
		m.Fields = make(map[string]string)
	}
	sv, err := T.self.SqlStringValue(m.Dialect)
	if err != nil {
		return fmt.Errorf("%s.WriteToManipulation: failed to get SQL value for field %s: %w", T.self.Kind(), T.name, err)
	}
	m.Fields[T.name] = sv
	return nil
}

// AddToQuery is a hook for types that need extra select fragments.
func (T *dbFieldBase) AddToQuery(q *Query) {}

func (T *dbFieldBase) SaveInto(r Record) error {
	if T.name == "" {
		return &NamelessFieldError{Op: "SaveInto", Kind: T.self.Kind()}
	}
	r.Set(T.name, T.self.RawValue())
	return nil
}

func (T *dbFieldBase) ForTemplate() string {
	return T.self.AsString()
}

func (T *dbFieldBase) RAW() string {
	return T.self.AsString()
}

func (T *dbFieldBase) HTML() string {
	return Raw2XML(T.self.AsString())
}

func (T *dbFieldBase) XML() string {
	return Raw2XML(T.self.AsString())
}

func (T *dbFieldBase) ATT() string {
	return Raw2Att(T.self.AsString())
}

func (T *dbFieldBase) HTMLATT() string {
	return Raw2HTMLAtt(T.self.AsString())
}

func (T *dbFieldBase) URLATT() string {
	return URLEncode(T.self.AsString())
}

func (T *dbFieldBase) RAWURLATT() string {
	return RawURLEncode(T.self.AsString())
}

func (T *dbFieldBase) JS() string {
	return Raw2JS(T.self.AsString())
}

func (T *dbFieldBase) Nice() string {
	return T.self.AsString()
}

func (T *dbFieldBase) ScaffoldFormField(title string) *FormField {
	return NewTextField(T.name, title)
}

func (T *dbFieldBase) ScaffoldSearchField(title string) *FormField {
	return T.self.ScaffoldFormField(title)
}

func (T *dbFieldBase) DefaultSearchFilter() SearchFilter {
	return &ExactMatchFilter{Column: T.name}
}

func (T *dbFieldBase) RequireField(ctx context.Context, s SchemaRequirer) error {
	if T.name == "" {
		return &NamelessFieldError{Op: "RequireField", Kind: T.self.Kind()}
	}
	if err := s.RequireField(ctx, T.tableName, T.name, T.self.ColumnSpec()); err != nil {
		return fmt.Errorf("%s.RequireField: failed to require column %s.%s: %w", T.self.Kind(), T.tableName, T.name, err)
	}
	return nil
}

func (T *dbFieldBase) Debug() string {
	return fmt.Sprintf("<ul>\n\t<li><b>Name:</b>%s</li>\n\t<li><b>Table:</b>%s</li>\n\t<li><b>Value:</b>%s</li>\n</ul>",
		Raw2XML(T.name), Raw2XML(T.tableName), Raw2XML(T.self.AsString()))
}

// scanNull clears the field when the scanned column is NULL.
func (T *dbFieldBase) scanNull(v any) bool {
	if v == nil {
		T.self.Clear()
		return true
	}
	return false
}
