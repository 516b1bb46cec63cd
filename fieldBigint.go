package dbfield

// FieldBigint is a 64-bit integer column value. It behaves like FieldInt
// but declares a bigint(20) column.
type FieldBigint struct {
	FieldInt
	arrayValue string
}

// NewBigint creates a Bigint field. A default that is not a Go integer
// becomes 0.
func NewBigint(name string, defaultVal ...any) *FieldBigint {
	res := &FieldBigint{}
	res.bits = 64
	res.init(res, name)
	if len(defaultVal) > 0 {
		res.defaultVal = intDefault(defaultVal[0])
	}
	return res
}

func (T *FieldBigint) Kind() Kind {
	return KindBigint
}

// SetArrayValue sets the array marker carried in the column spec.
func (T *FieldBigint) SetArrayValue(v string) {
	T.arrayValue = v
}

func (T *FieldBigint) ColumnSpec() ColumnSpec {
	return ColumnSpec{
		Type: "bigint",
		Parts: ColumnParts{
			Datatype:   "bigint",
			Precision:  bigintPrecision,
			Null:       NotNull,
			Default:    T.defaultVal,
			ArrayValue: T.arrayValue,
		},
	}
}
