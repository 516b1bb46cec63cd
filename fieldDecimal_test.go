package dbfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockFieldDecimal() *FieldDecimal {
	f := NewDecimal("NumericField", 10, 2)
	f.Set(7.62)
	return f
}

func TestFieldDecimal_Scan(t *testing.T) {
	type args struct {
		v any
	}
	tests := []struct {
		name    string
		T       *FieldDecimal
		args    args
		wantErr bool
		wantV   float64
		valid   bool
	}{
		{name: "valid float64", T: mockFieldDecimal(), args: args{v: 123.456}, wantErr: false, wantV: 123.456, valid: true},
		{name: "invalid string", T: mockFieldDecimal(), args: args{v: "not a float"}, wantErr: true, wantV: 7.62, valid: true},
		{name: "valid string", T: mockFieldDecimal(), args: args{v: "123.123"}, wantErr: false, wantV: 123.123, valid: true},
		{name: "invalid type (bool)", T: mockFieldDecimal(), args: args{v: true}, wantErr: true, wantV: 7.62, valid: true},
		{name: "nil value", T: mockFieldDecimal(), args: args{v: nil}, wantErr: false, wantV: 0, valid: false},
		{name: "zero value", T: mockFieldDecimal(), args: args{v: 0.0}, wantErr: false, wantV: 0.0, valid: true},
		{name: "[]uint8 valid value", T: mockFieldDecimal(), args: args{v: []uint8("123.45")}, wantErr: false, wantV: 123.45, valid: true},
		{name: "[]uint8 invalid value", T: mockFieldDecimal(), args: args{v: []uint8("not a float")}, wantErr: true, wantV: 7.62, valid: true},
		{name: "int64", T: mockFieldDecimal(), args: args{v: int64(12345)}, wantErr: false, wantV: 12345.0, valid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.T.Scan(tt.args.v)
			if (err != nil) != tt.wantErr {
				t.Errorf("FieldDecimal.Scan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.T.Get() != tt.wantV {
				t.Errorf("FieldDecimal.Scan() v = %v, want %v", tt.T.Get(), tt.wantV)
			}
			if tt.T.HasValue() != tt.valid {
				t.Errorf("FieldDecimal.Scan() valid = %v, want %v", tt.T.HasValue(), tt.valid)
			}
		})
	}
}

func TestFieldDecimal_SqlStringValue(t *testing.T) {
	f := mockFieldDecimal()
	f.Set(1234.567)
	got, err := f.SqlStringValue(DbDialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, "1234.57", got)
	assert.Equal(t, "1,234.57", f.Nice())
	assert.Equal(t, "1234.567", f.AsString())

	f.Clear()
	got, err = f.SqlStringValue(DbDialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, "0", got)
}

func TestFieldDecimal_SetValue(t *testing.T) {
	f := NewDecimal("Price")
	assert.Equal(t, 9, f.Precision())
	assert.Equal(t, 2, f.Scale())

	require.NoError(t, f.SetValue("19.99", nil))
	assert.Equal(t, 19.99, f.Get())
	require.NoError(t, f.SetValue(3, nil))
	assert.Equal(t, 3.0, f.Get())
	assert.True(t, IsValueError(f.SetValue("abc", nil)))

	ddl, err := f.ColumnSpec().DDL(DbDialectMySQL)
	require.NoError(t, err)
	assert.Equal(t, "decimal(9,2) not null default 0", ddl)
}
