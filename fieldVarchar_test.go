package dbfield

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringerValue struct{}

func (stringerValue) String() string { return "from stringer" }

func TestFieldVarchar_SetValue(t *testing.T) {
	type line struct {
		name   string
		value  any
		expStr string
		expErr bool
	}
	testCases := []line{
		{name: "string", value: "testValue", expStr: "testValue"},
		{name: "bytes", value: []byte("bytes"), expStr: "bytes"},
		{name: "stringer", value: stringerValue{}, expStr: "from stringer"},
		{name: "int", value: 123, expStr: "123"},
		{name: "float", value: 1.25, expStr: "1.25"},
		{name: "bool", value: true, expStr: "true"},
		{name: "map", value: map[string]int{}, expErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewVarchar("testField")
			err := f.SetValue(tc.value, nil)
			if (err != nil) != tc.expErr {
				t.Errorf("expected error: %v, got: %v", tc.expErr, err)
			}
			if f.Get() != tc.expStr {
				t.Errorf("expected: %s, got: %s", tc.expStr, f.Get())
			}
		})
	}
}

func TestFieldVarchar_SqlStringValue(t *testing.T) {
	f := NewVarchar("testField")
	type line struct {
		value  string
		expStr string
	}
	testCases := []line{
		{value: "testValue", expStr: "'testValue'"},
		{value: "'123", expStr: "'''123'"},
		{value: "", expStr: "''"},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			f.Set(tc.value)
			expStr, err := f.SqlStringValue(DbDialectSQLite)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if expStr != tc.expStr {
				t.Errorf("expected: %s, got: %s", tc.expStr, expStr)
			}
		})
	}
	f.Clear()
	s, _ := f.SqlStringValue(DbDialectSQLite)
	assert.Equal(t, "NULL", s)
}

func TestFieldVarchar_ColumnSpec(t *testing.T) {
	f := NewVarchar("Title")
	assert.Equal(t, 50, f.Size())
	f.SetSize(120)
	tests := map[Dialect]string{
		DbDialectPostgres: "varchar(120)",
		DbDialectMSSQL:    "nvarchar(120)",
		DbDialectMySQL:    "varchar(120) character set utf8mb4",
		DbDialectSQLite:   "varchar(120)",
	}
	for d, exp := range tests {
		got, err := f.ColumnSpec().DDL(d)
		require.NoError(t, err)
		assert.Equal(t, exp, got, d.String())
	}
}

func TestFieldBoolean(t *testing.T) {
	f := NewBoolean("Published", true)
	assert.Equal(t, "", f.Nice())
	for in, want := range map[any]bool{"yes": true, "0": false, 1: true, "on": true, false: false} {
		require.NoError(t, f.SetValue(in, nil))
		assert.Equal(t, want, f.Get(), "%v", in)
	}
	assert.True(t, IsValueError(f.SetValue("maybe", nil)))

	f.Set(true)
	assert.Equal(t, "Yes", f.Nice())
	assert.Equal(t, "1", f.AsString())
	f.Set(false)
	assert.Equal(t, "No", f.Nice())

	ddl, err := f.ColumnSpec().DDL(DbDialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, "boolean not null default true", ddl)
	ddl, err = f.ColumnSpec().DDL(DbDialectMSSQL)
	require.NoError(t, err)
	assert.Equal(t, "bit not null default 1", ddl)
}

func TestFieldBooleanPresence(t *testing.T) {
	f := NewBoolean("Published")
	assert.False(t, f.HasValue())
	assert.Nil(t, f.RawValue())

	f.Set(false)
	assert.True(t, f.HasValue())
	assert.Equal(t, false, f.RawValue())
	v, err := f.Value()
	require.NoError(t, err)
	assert.Equal(t, false, v)

	require.NoError(t, f.Scan(int64(1)))
	assert.Equal(t, true, f.RawValue())

	require.NoError(t, f.Scan(nil))
	assert.False(t, f.HasValue())
	assert.Nil(t, f.RawValue())
	assert.False(t, f.Get())
}

func TestFieldDatetime(t *testing.T) {
	f := NewDatetime("PostedAt")
	want := time.Date(2024, time.March, 1, 10, 20, 30, 0, time.UTC)
	for _, in := range []any{"2024-03-01 10:20:30", "2024-03-01T10:20:30Z", []byte("2024-03-01T10:20:30"), want, &want} {
		require.NoError(t, f.SetValue(in, nil))
		assert.True(t, want.Equal(f.Get()), "%v", in)
	}
	assert.Equal(t, "2024-03-01 10:20:30", f.AsString())
	assert.Equal(t, "2024-03-01 10:20:30", f.Nice())

	s, err := f.SqlStringValue(DbDialectMySQL)
	require.NoError(t, err)
	assert.Equal(t, "'2024-03-01 10:20:30'", s)

	require.NoError(t, f.SetValue("", nil))
	assert.False(t, f.HasValue())
	s, _ = f.SqlStringValue(DbDialectMySQL)
	assert.Equal(t, "NULL", s)

	assert.True(t, IsValueError(f.SetValue("yesterday", nil)))
	assert.True(t, IsValueError(f.SetValue(5, nil)))

	require.NoError(t, f.Scan([]uint8("2024-03-01 10:20:30")))
	assert.True(t, want.Equal(f.Get()))

	ddl, err := f.ColumnSpec().DDL(DbDialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, "timestamp without time zone", ddl)
}
