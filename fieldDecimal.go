package dbfield

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldDecimal is a fixed point decimal(precision, scale) column value.
type FieldDecimal struct {
	dbFieldBase
	v          float64
	defaultVal float64
	precision  int
	scale      int
}

// NewDecimal creates a Decimal field. Precision and scale default to 9 and 2.
func NewDecimal(name string, precisionScale ...int) *FieldDecimal {
	res := &FieldDecimal{precision: 9, scale: 2}
	res.init(res, name)
	if len(precisionScale) > 0 && precisionScale[0] > 0 {
		res.precision = precisionScale[0]
	}
	if len(precisionScale) > 1 && precisionScale[1] >= 0 {
		res.scale = precisionScale[1]
	}
	return res
}

func (T *FieldDecimal) Kind() Kind {
	return KindDecimal
}

func (T *FieldDecimal) Set(newValue float64) {
	T.v = newValue
	T.valid = true
}

func (T *FieldDecimal) Get() float64 {
	return T.v
}

func (T *FieldDecimal) Precision() int {
	return T.precision
}

func (T *FieldDecimal) Scale() int {
	return T.scale
}

func (T *FieldDecimal) SetPrecision(precision, scale int) {
	if precision > 0 {
		T.precision = precision
	}
	if scale >= 0 {
		T.scale = scale
	}
}

func (T *FieldDecimal) SetDefault(v any) error {
	f, err := asFloat64(v)
	if err != nil {
		return newValueError(T, v, err)
	}
	T.defaultVal = f
	return nil
}

func (T *FieldDecimal) mask() string {
	return fmt.Sprintf("%%.%df", T.scale)
}

func (T *FieldDecimal) SetValue(v any, record Record) error {
	if v == nil {
		T.Clear()
		return nil
	}
	f, err := asFloat64(v)
	if err != nil {
		return newValueError(T, v, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return newValueError(T, v, fmt.Errorf("value is not finite"))
	}
	T.Set(f)
	return nil
}

func (T *FieldDecimal) RawValue() any {
	if !T.valid {
		return nil
	}
	return T.v
}

func (T *FieldDecimal) Clear() {
	T.v = 0
	T.valid = false
}

func (T *FieldDecimal) NullValue() string {
	return "0"
}

func (T *FieldDecimal) SqlStringValue(d Dialect) (string, error) {
	if !T.valid {
		return T.NullValue(), nil
	}
	return fmt.Sprintf(T.mask(), T.v), nil
}

func (T *FieldDecimal) AsString() string {
	if !T.valid {
		return ""
	}
	return strconv.FormatFloat(T.v, 'f', -1, 64)
}

// Nice rounds to the column scale and groups thousands.
func (T *FieldDecimal) Nice() string {
	if !T.valid {
		return ""
	}
	return nicePrinter.Sprintf(T.mask(), T.v)
}

func (T *FieldDecimal) ScaffoldFormField(title string) *FormField {
	ff := NewNumericField(T.name, title)
	ff.Config = map[string]any{"scale": T.scale}
	return ff
}

func (T *FieldDecimal) ColumnSpec() ColumnSpec {
	return ColumnSpec{
		Type: "decimal",
		Parts: ColumnParts{
			Datatype:  "decimal",
			Precision: T.precision,
			Scale:     T.scale,
			Null:      NotNull,
			Default:   T.defaultVal,
		},
	}
}

func (T *FieldDecimal) Scan(v any) error {
	if T.scanNull(v) {
		return nil
	}
	switch vtyped := v.(type) {
	case float64:
		T.Set(vtyped)
	case string:
		vt, err := strconv.ParseFloat(strings.TrimSpace(vtyped), 64)
		if err != nil {
			return fmt.Errorf("Decimal.Scan: cannot parse string '%s' as float64 for field %s", vtyped, T.name)
		}
		T.Set(vt)
	case []uint8:
		vt, err := strconv.ParseFloat(string(vtyped), 64)
		if err != nil {
			return fmt.Errorf("Decimal.Scan: cannot parse []uint8 '%s' as float64 for field %s", string(vtyped), T.name)
		}
		T.Set(vt)
	case int64:
		T.Set(float64(vtyped))
	default:
		return fmt.Errorf("Decimal.Scan: unsupported type %T for field %s", v, T.name)
	}
	return nil
}

func (T *FieldDecimal) Value() (driver.Value, error) {
	if !T.valid {
		return nil, nil
	}
	return T.v, nil
}
