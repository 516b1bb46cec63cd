package dbfield

import (
	"database/sql/driver"
	"fmt"
)

// FieldBoolean is a tinyint(1)-style flag. Like the other fields it is
// owned by one goroutine at a time.
type FieldBoolean struct {
	dbFieldBase
	v          bool
	defaultVal bool
}

func NewBoolean(name string, defaultVal ...bool) *FieldBoolean {
	res := &FieldBoolean{}
	res.init(res, name)
	if len(defaultVal) > 0 {
		res.defaultVal = defaultVal[0]
	}
	return res
}

func (T *FieldBoolean) Kind() Kind {
	return KindBoolean
}

func (T *FieldBoolean) Set(newValue bool) {
	T.v = newValue
	T.valid = true
}

func (T *FieldBoolean) Get() bool {
	return T.v
}

func (T *FieldBoolean) SetDefault(v any) error {
	b, err := asBool(v)
	if err != nil {
		return newValueError(T, v, err)
	}
	T.defaultVal = b
	return nil
}

func (T *FieldBoolean) SetValue(v any, record Record) error {
	if v == nil {
		T.Clear()
		return nil
	}
	b, err := asBool(v)
	if err != nil {
		return newValueError(T, v, err)
	}
	T.Set(b)
	return nil
}

func (T *FieldBoolean) RawValue() any {
	if !T.valid {
		return nil
	}
	return T.v
}

func (T *FieldBoolean) Clear() {
	T.v = false
	T.valid = false
}

func (T *FieldBoolean) NullValue() string {
	return "0"
}

func (T *FieldBoolean) SqlStringValue(d Dialect) (string, error) {
	v := T.Get()
	switch d {
	case DbDialectPostgres, DbDialectSQLite:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case DbDialectMSSQL, DbDialectMySQL:
		if v {
			return "1", nil
		}
		return "0", nil
	default:
		return "", fmt.Errorf("Boolean.SqlStringValue: %w: %d for field %s", ErrUnsupportedDialect, d, T.name)
	}
}

func (T *FieldBoolean) AsString() string {
	if !T.HasValue() {
		return ""
	}
	if T.Get() {
		return "1"
	}
	return "0"
}

func (T *FieldBoolean) Nice() string {
	if !T.HasValue() {
		return ""
	}
	if T.Get() {
		return "Yes"
	}
	return "No"
}

func (T *FieldBoolean) ScaffoldFormField(title string) *FormField {
	return NewCheckboxField(T.name, title)
}

// ScaffoldSearchField offers "any" as well as yes and no.
func (T *FieldBoolean) ScaffoldSearchField(title string) *FormField {
	ff := NewDropdownField(T.name, title)
	ff.Options = []FormFieldOption{
		{Value: "", Title: "(Any)"},
		{Value: "1", Title: "Yes"},
		{Value: "0", Title: "No"},
	}
	return ff
}

func (T *FieldBoolean) ColumnSpec() ColumnSpec {
	return ColumnSpec{
		Type: "boolean",
		Parts: ColumnParts{
			Datatype:  "tinyint",
			Precision: 1,
			Null:      NotNull,
			Default:   T.defaultVal,
		},
	}
}

func (T *FieldBoolean) Scan(v any) error {
	if T.scanNull(v) {
		return nil
	}
	b, err := asBool(v)
	if err != nil {
		return fmt.Errorf("Boolean.Scan: unsupported value for field %s: %w", T.name, err)
	}
	T.Set(b)
	return nil
}

func (T *FieldBoolean) Value() (driver.Value, error) {
	if !T.HasValue() {
		return nil, nil
	}
	return T.Get(), nil
}
