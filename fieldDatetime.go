package dbfield

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Accepted input layouts, tried in order.
var datetimeLayouts = []string{
	time.DateTime,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// FieldDatetime stores date + time value, without timezone.
type FieldDatetime struct {
	dbFieldBase
	v time.Time
}

func NewDatetime(name string) *FieldDatetime {
	res := &FieldDatetime{}
	res.init(res, name)
	return res
}

func (T *FieldDatetime) Kind() Kind {
	return KindDatetime
}

func (T *FieldDatetime) Set(newValue time.Time) {
	T.v = newValue
	T.valid = true
}

func (T *FieldDatetime) Get() time.Time {
	return T.v
}

func (T *FieldDatetime) SetValue(v any, record Record) error {
	switch vt := v.(type) {
	case nil:
		T.Clear()
	case time.Time:
		T.Set(vt)
	case *time.Time:
		if vt == nil {
			T.Clear()
			return nil
		}
		T.Set(*vt)
	case string:
		return T.setString(vt)
	case []byte:
		return T.setString(string(vt))
	default:
		return newValueError(T, v, fmt.Errorf("unsupported type %T", v))
	}
	return nil
}

func (T *FieldDatetime) setString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		T.Clear()
		return nil
	}
	t, err := parseDatetime(s)
	if err != nil {
		return newValueError(T, s, err)
	}
	T.Set(t)
	return nil
}

func parseDatetime(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func (T *FieldDatetime) RawValue() any {
	if !T.valid {
		return nil
	}
	return T.v
}

func (T *FieldDatetime) Clear() {
	T.v = time.Time{}
	T.valid = false
}

func (T *FieldDatetime) SqlStringValue(d Dialect) (string, error) {
	if !T.valid {
		return T.NullValue(), nil
	}
	return d.QuoteString(T.v.Format(time.DateTime)), nil
}

func (T *FieldDatetime) AsString() string {
	if !T.valid {
		return ""
	}
	return T.v.Format(time.DateTime)
}

func (T *FieldDatetime) ScaffoldFormField(title string) *FormField {
	return NewDatetimeField(T.name, title)
}

func (T *FieldDatetime) ColumnSpec() ColumnSpec {
	return ColumnSpec{
		Type: "datetime",
		Parts: ColumnParts{
			Datatype: "datetime",
			Null:     NullAllowed,
		},
	}
}

func (T *FieldDatetime) Scan(v any) error {
	if T.scanNull(v) {
		return nil
	}
	switch vtyped := v.(type) {
	case time.Time:
		T.Set(vtyped)
	case string:
		t, err := parseDatetime(vtyped)
		if err != nil {
			return fmt.Errorf("Datetime.Scan: failed to parse time for field %s: %w", T.name, err)
		}
		T.Set(t)
	case []uint8:
		t, err := parseDatetime(string(vtyped))
		if err != nil {
			return fmt.Errorf("Datetime.Scan: failed to parse time from []uint8 for field %s: %w", T.name, err)
		}
		T.Set(t)
	default:
		return fmt.Errorf("Datetime.Scan: expected time.Time or []uint8 for field %s, got %T", T.name, v)
	}
	return nil
}

func (T *FieldDatetime) Value() (driver.Value, error) {
	if !T.valid {
		return nil, nil
	}
	return T.v, nil
}
