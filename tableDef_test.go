package dbfield

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const articlesYaml = `
name: Articles
fields:
  - name: Title
    type: varchar
    size: 100
  - name: Subtitle
    type: Varchar
  - name: Views
    type: Bigint
    default: 10
  - name: Published
    type: Boolean
  - name: Price
    type: Decimal
    precision: 9
    scale: 2
  - name: PostedAt
    type: Datetime
  - name: AuthorID
    type: ForeignKey
    target: Authors
`

func mockArticlesDef(t *testing.T) TableDef {
	t.Helper()
	var def TableDef
	require.NoError(t, yaml.Unmarshal([]byte(articlesYaml), &def))
	return def
}

func TestTableDefBuild(t *testing.T) {
	table, err := mockArticlesDef(t).Build()
	require.NoError(t, err)

	want := mockTableArticles(t)
	require.Len(t, table.Fields, len(want.Fields))
	for i, f := range table.Fields {
		assert.Equal(t, want.Fields[i].Name(), f.Name())
		assert.Equal(t, want.Fields[i].Kind(), f.Kind())
		assert.Equal(t, want.Fields[i].ColumnSpec(), f.ColumnSpec(), f.Name())
		assert.Equal(t, "Articles", f.TableName())
	}
	assert.Equal(t, "Authors", table.Field("AuthorID").(*FieldForeignKey).Target())
}

func TestFieldDefBuild(t *testing.T) {
	f, err := FieldDef{Name: "Amount", Type: "decimal", Precision: 12, Scale: 3, Default: "1.5"}.Build()
	require.NoError(t, err)
	d := f.(*FieldDecimal)
	assert.Equal(t, 12, d.Precision())
	assert.Equal(t, 3, d.Scale())
	assert.Equal(t, 1.5, d.ColumnSpec().Parts.Default)

	f, err = FieldDef{Name: "Amount", Type: "Decimal"}.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, f.(*FieldDecimal).Scale())

	f, err = FieldDef{Name: "Tags", Type: "Bigint", Array: "1"}.Build()
	require.NoError(t, err)
	ddl, err := f.ColumnSpec().DDL(DbDialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, "bigint[] not null default 0", ddl)

	f, err = FieldDef{Name: "Active", Type: "Boolean", Default: "yes"}.Build()
	require.NoError(t, err)
	assert.Equal(t, true, f.ColumnSpec().Parts.Default)

	_, err = FieldDef{Name: "Active", Type: "Boolean", Default: "maybe"}.Build()
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = FieldDef{Name: "Shape", Type: "Polygon"}.Build()
	assert.ErrorIs(t, err, ErrUnknownFieldType)
}

func TestTableDefErrors(t *testing.T) {
	_, err := TableDef{Name: "T", Fields: []FieldDef{{Name: "A", Type: "Int"}, {Name: "a", Type: "Varchar"}}}.Build()
	assert.Error(t, err)

	_, err = TableDef{Name: "T", Fields: []FieldDef{{Name: "", Type: "Int"}}}.Build()
	assert.ErrorIs(t, err, ErrNamelessField)
}

func TestTableDefJSON(t *testing.T) {
	var def TableDef
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Tags","fields":[{"name":"Label","type":"Varchar","size":30}]}`), &def))
	table, err := def.Build()
	require.NoError(t, err)
	assert.Equal(t, 30, table.Field("Label").(*FieldVarchar).Size())
}
