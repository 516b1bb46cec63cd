package dbfield

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

const defaultVarcharSize = 50

// FieldVarchar is a variable length string column value.
type FieldVarchar struct {
	dbFieldBase
	v    string
	size int
}

func NewVarchar(name string, size ...int) *FieldVarchar {
	res := &FieldVarchar{size: defaultVarcharSize}
	res.init(res, name)
	if len(size) > 0 && size[0] > 0 {
		res.size = size[0]
	}
	return res
}

func (T *FieldVarchar) Kind() Kind {
	return KindVarchar
}

func (T *FieldVarchar) Set(newValue string) {
	T.v = newValue
	T.valid = true
}

func (T *FieldVarchar) Get() string {
	return T.v
}

func (T *FieldVarchar) Size() int {
	return T.size
}

func (T *FieldVarchar) SetSize(size int) {
	if size > 0 {
		T.size = size
	}
}

func (T *FieldVarchar) SetValue(v any, record Record) error {
	switch vt := v.(type) {
	case nil:
		T.Clear()
	case string:
		T.Set(vt)
	case []byte:
		T.Set(string(vt))
	case fmt.Stringer:
		T.Set(vt.String())
	case bool:
		T.Set(strconv.FormatBool(vt))
	case float32, float64:
		f, _ := asFloat64(vt)
		T.Set(strconv.FormatFloat(f, 'f', -1, 64))
	default:
		n, err := asInt64(v)
		if err != nil {
			return newValueError(T.self, v, err)
		}
		T.Set(strconv.FormatInt(n, 10))
	}
	return nil
}

func (T *FieldVarchar) RawValue() any {
	if !T.valid {
		return nil
	}
	return T.v
}

func (T *FieldVarchar) Clear() {
	T.v = ""
	T.valid = false
}

func (T *FieldVarchar) SqlStringValue(d Dialect) (string, error) {
	if !T.valid {
		return T.NullValue(), nil
	}
	return d.QuoteString(T.v), nil
}

func (T *FieldVarchar) AsString() string {
	return T.v
}

func (T *FieldVarchar) ScaffoldFormField(title string) *FormField {
	ff := NewTextField(T.name, title)
	ff.MaxLength = T.size
	return ff
}

func (T *FieldVarchar) DefaultSearchFilter() SearchFilter {
	return &PartialMatchFilter{Column: T.name}
}

func (T *FieldVarchar) ColumnSpec() ColumnSpec {
	return ColumnSpec{
		Type: "varchar",
		Parts: ColumnParts{
			Datatype:  "varchar",
			Precision: T.size,
			Null:      NullAllowed,
		},
	}
}

func (T *FieldVarchar) Scan(v any) error {
	if T.scanNull(v) {
		return nil
	}
	switch vt := v.(type) {
	case string:
		T.Set(vt)
	case []uint8:
		T.Set(string(vt))
	default:
		return fmt.Errorf("Varchar.Scan: expected string or []uint8 for field %s, got %T", T.name, v)
	}
	return nil
}

func (T *FieldVarchar) Value() (driver.Value, error) {
	if !T.valid {
		return nil, nil
	}
	return T.v, nil
}
