package dbfield

import (
	"fmt"
)

// FieldDef declares one field in configuration files.
type FieldDef struct {
	Name      string `yaml:"name" json:"name"`
	Type      string `yaml:"type" json:"type"`
	Default   any    `yaml:"default,omitempty" json:"default,omitempty"`
	Size      int    `yaml:"size,omitempty" json:"size,omitempty"`           // Varchar
	Precision int    `yaml:"precision,omitempty" json:"precision,omitempty"` // Decimal
	Scale     int    `yaml:"scale,omitempty" json:"scale,omitempty"`         // Decimal
	Target    string `yaml:"target,omitempty" json:"target,omitempty"`       // ForeignKey
	Array     string `yaml:"array,omitempty" json:"array,omitempty"`         // Bigint
}

// TableDef declares a table in configuration files.
type TableDef struct {
	Name   string     `yaml:"name" json:"name"`
	Fields []FieldDef `yaml:"fields" json:"fields"`
}

// Build creates the field through the type registry and applies options.
func (T FieldDef) Build() (IDBField, error) {
	f, err := Create(T.Type, nil, T.Name)
	if err != nil {
		return nil, fmt.Errorf("FieldDef.Build: field %s: %w", T.Name, err)
	}
	if T.Default != nil {
		if ds, ok := f.(interface{ SetDefault(any) error }); ok {
			if err := ds.SetDefault(T.Default); err != nil {
				return nil, fmt.Errorf("FieldDef.Build: default of field %s: %w", T.Name, err)
			}
		}
	}
	switch ft := f.(type) {
	case *FieldVarchar:
		ft.SetSize(T.Size)
	case *FieldDecimal:
		scale := T.Scale
		if T.Precision == 0 && scale == 0 {
			scale = -1
		}
		ft.SetPrecision(T.Precision, scale)
	case *FieldForeignKey:
		if T.Target != "" {
			ft.SetTarget(T.Target)
		}
	case *FieldBigint:
		ft.SetArrayValue(T.Array)
	}
	return f, nil
}

// Build creates the table with all declared fields.
func (T TableDef) Build() (*Table, error) {
	fields := make([]IDBField, 0, len(T.Fields))
	for _, fd := range T.Fields {
		f, err := fd.Build()
		if err != nil {
			return nil, fmt.Errorf("TableDef.Build: table %s: %w", T.Name, err)
		}
		fields = append(fields, f)
	}
	return NewTable(T.Name, fields...)
}
