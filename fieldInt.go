package dbfield

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var nicePrinter = message.NewPrinter(language.English)

// FieldInt is a 32-bit integer column value.
type FieldInt struct {
	dbFieldBase
	v          int64
	defaultVal int64
	bits       int
}

// NewInt creates an Int field. Only Go integer defaults are kept.
func NewInt(name string, defaultVal ...any) *FieldInt {
	res := &FieldInt{bits: 32}
	res.init(res, name)
	if len(defaultVal) > 0 {
		res.defaultVal = intDefault(defaultVal[0])
	}
	return res
}

func (T *FieldInt) Kind() Kind {
	return KindInt
}

func (T *FieldInt) Set(newValue int64) {
	T.v = newValue
	T.valid = true
}

func (T *FieldInt) Get() int64 {
	return T.v
}

func (T *FieldInt) Default() int64 {
	return T.defaultVal
}

func (T *FieldInt) SetDefault(v any) error {
	T.defaultVal = intDefault(v)
	return nil
}

func (T *FieldInt) SetValue(v any, record Record) error {
	if v == nil {
		T.Clear()
		return nil
	}
	n, err := asInt64(v)
	if err != nil {
		return newValueError(T.self, v, err)
	}
	if T.bits == 32 && (n > math.MaxInt32 || n < math.MinInt32) {
		return newValueError(T.self, v, fmt.Errorf("value %d overflows int32", n))
	}
	T.Set(n)
	return nil
}

func (T *FieldInt) RawValue() any {
	if !T.valid {
		return nil
	}
	return T.v
}

func (T *FieldInt) Clear() {
	T.v = 0
	T.valid = false
}

// NullValue is "0": integer columns are declared not null.
func (T *FieldInt) NullValue() string {
	return "0"
}

func (T *FieldInt) SqlStringValue(d Dialect) (string, error) {
	if !T.valid {
		return T.NullValue(), nil
	}
	return strconv.FormatInt(T.v, 10), nil
}

func (T *FieldInt) AsString() string {
	if !T.valid {
		return ""
	}
	return strconv.FormatInt(T.v, 10)
}

func (T *FieldInt) Nice() string {
	if !T.valid {
		return ""
	}
	return nicePrinter.Sprintf("%d", T.v)
}

func (T *FieldInt) ScaffoldFormField(title string) *FormField {
	return NewNumericField(T.name, title)
}

func (T *FieldInt) ColumnSpec() ColumnSpec {
	return ColumnSpec{
		Type: "int",
		Parts: ColumnParts{
			Datatype:  "int",
			Precision: intPrecision,
			Null:      NotNull,
			Default:   T.defaultVal,
		},
	}
}

func (T *FieldInt) Scan(v any) error {
	if T.scanNull(v) {
		return nil
	}
	n, err := asInt64(v)
	if err != nil {
		return fmt.Errorf("%s.Scan: unsupported value for field %s: %w", T.self.Kind(), T.name, err)
	}
	T.Set(n)
	return nil
}

func (T *FieldInt) Value() (driver.Value, error) {
	if !T.valid {
		return nil, nil
	}
	return T.v, nil
}
