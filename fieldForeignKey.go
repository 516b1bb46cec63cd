package dbfield

import (
	"strings"
)

// FieldForeignKey holds the ID of a row in Target. 0 means "no row".
// The column matches the bigint ID it points at.
type FieldForeignKey struct {
	FieldInt
	target string
}

func NewForeignKey(name string, target ...string) *FieldForeignKey {
	res := &FieldForeignKey{}
	res.bits = 64
	res.init(res, name)
	if len(target) > 0 {
		res.target = target[0]
	} else {
		res.target = strings.TrimSuffix(name, "ID")
	}
	return res
}

func (T *FieldForeignKey) Kind() Kind {
	return KindForeignKey
}

func (T *FieldForeignKey) Target() string {
	return T.target
}

func (T *FieldForeignKey) SetTarget(table string) {
	T.target = table
}

func (T *FieldForeignKey) ScaffoldFormField(title string) *FormField {
	if title == "" {
		title = strings.TrimSuffix(T.name, "ID")
	}
	ff := NewDropdownField(T.name, title)
	ff.Config = map[string]any{"source": T.target}
	return ff
}

func (T *FieldForeignKey) ColumnSpec() ColumnSpec {
	return ColumnSpec{
		Type: "bigint",
		Parts: ColumnParts{
			Datatype:  "bigint",
			Precision: bigintPrecision,
			Null:      NotNull,
			Default:   int64(0),
		},
	}
}
