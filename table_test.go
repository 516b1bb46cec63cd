package dbfield

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	table := mockTableArticles(t)
	assert.Len(t, table.Fields, 7)
	assert.Equal(t, "Articles", table.Field("views").TableName())
	assert.Nil(t, table.Field("Missing"))

	assert.Error(t, table.Add(NewInt("Views")), "duplicate")
	assert.Error(t, table.Add(NewInt("id")), "reserved")
	assert.ErrorIs(t, table.Add(NewInt("")), ErrNamelessField)

	_, err := NewTable("")
	assert.Error(t, err)
}

func TestTableSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	conn, _ := mockSyncedArticles(t)

	table := mockTableArticles(t)
	mockFillArticle(t, table, "Hello <world>", 42)
	id, err := table.Save(ctx, conn, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	loaded := mockTableArticles(t)
	rec, err := loaded.LoadRecord(ctx, conn, id)
	require.NoError(t, err)

	assert.Equal(t, id, rec[IDColumn])
	assert.Equal(t, "Hello <world>", rec["Title"])
	assert.Nil(t, rec["Subtitle"])
	assert.False(t, loaded.Field("Subtitle").HasValue())
	assert.Equal(t, int64(42), rec["Views"])
	assert.Equal(t, true, rec["Published"])
	assert.Equal(t, 12.5, rec["Price"])
	assert.Equal(t, int64(3), rec["AuthorID"])

	posted := loaded.Field("PostedAt").(*FieldDatetime).Get()
	assert.True(t, posted.Equal(time.Date(2024, time.March, 1, 10, 20, 30, 0, time.UTC)), posted.String())
	assert.Equal(t, "Hello &lt;world&gt;", loaded.Field("Title").HTML())
	assert.Equal(t, "12.50", loaded.Field("Price").Nice())

	loaded.Field("Title").(*FieldVarchar).Set("Bye")
	require.NoError(t, loaded.Field("Subtitle").SetValue("sub", nil))
	updatedID, err := loaded.Save(ctx, conn, id)
	require.NoError(t, err)
	assert.Equal(t, id, updatedID)

	rec, err = mockTableArticles(t).LoadRecord(ctx, conn, id)
	require.NoError(t, err)
	assert.Equal(t, "Bye", rec["Title"])
	assert.Equal(t, "sub", rec["Subtitle"])
}

func TestTableInsertUsesColumnDefaults(t *testing.T) {
	ctx := context.Background()
	conn, _ := mockSyncedArticles(t)

	table := mockTableArticles(t)
	table.Field("Title").(*FieldVarchar).Set("Only title")
	id, err := table.Save(ctx, conn, 0)
	require.NoError(t, err)

	rec, err := mockTableArticles(t).LoadRecord(ctx, conn, id)
	require.NoError(t, err)
	assert.Equal(t, "Only title", rec["Title"])
	assert.Equal(t, int64(10), rec["Views"])
	assert.Equal(t, false, rec["Published"])
	assert.Equal(t, 0.0, rec["Price"])
	assert.Equal(t, int64(0), rec["AuthorID"])
	assert.Nil(t, rec["Subtitle"])
	assert.Nil(t, rec["PostedAt"])

	id2, err := mockTableArticles(t).Save(ctx, conn, 0)
	require.NoError(t, err, "insert with every column defaulted")
	assert.Equal(t, id+1, id2)
}

func TestTableManipulationColumns(t *testing.T) {
	table := mockTableArticles(t)
	table.Field("Title").(*FieldVarchar).Set("Hi")

	m, err := table.Manipulation(DbDialectPostgres, ManipulationInsert, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Title"}, m.Columns())

	m, err = table.Manipulation(DbDialectPostgres, ManipulationUpdate, 1)
	require.NoError(t, err)
	assert.Len(t, m.Columns(), len(table.Fields))
	assert.Equal(t, "NULL", m.Fields["Subtitle"])
}

func TestTableUpdateMissing(t *testing.T) {
	ctx := context.Background()
	conn, _ := mockSyncedArticles(t)

	table := mockTableArticles(t)
	mockFillArticle(t, table, "ghost", 1)
	_, err := table.Save(ctx, conn, 999)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestTableLoadMissing(t *testing.T) {
	conn, _ := mockSyncedArticles(t)
	_, err := mockTableArticles(t).LoadRecord(context.Background(), conn, 999)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestTableSearch(t *testing.T) {
	ctx := context.Background()
	conn, _ := mockSyncedArticles(t)

	table := mockTableArticles(t)
	for i, title := range []string{"Go tips", "SQL tricks", "More Go"} {
		mockFillArticle(t, table, title, int64(i+1))
		_, err := table.Save(ctx, conn, 0)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		values map[string]string
		limit  int
		titles []string
	}{
		{name: "all", values: nil, titles: []string{"Go tips", "SQL tricks", "More Go"}},
		{name: "partial title", values: map[string]string{"Title": "Go"}, titles: []string{"Go tips", "More Go"}},
		{name: "exact views", values: map[string]string{"Views": "2"}, titles: []string{"SQL tricks"}},
		{name: "empty value ignored", values: map[string]string{"Views": ""}, titles: []string{"Go tips", "SQL tricks", "More Go"}},
		{name: "limit", values: nil, limit: 2, titles: []string{"Go tips", "SQL tricks"}},
		{name: "no match", values: map[string]string{"Title": "Rust"}, titles: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := mockTableArticles(t).Search(ctx, conn, tt.values, tt.limit)
			require.NoError(t, err)
			titles := make([]string, 0, len(rows))
			for _, r := range rows {
				titles = append(titles, r["Title"].(string))
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}

func TestTableSearchQuery(t *testing.T) {
	q := mockTableArticles(t).SearchQuery(DbDialectPostgres, map[string]string{
		"Title":   "it's",
		"Views":   "5",
		"Unknown": "x",
	})
	assert.Equal(t, `select "ID", "Title", "Subtitle", "Views", "Published", "Price", "PostedAt", "AuthorID" from "Articles" where "Title" LIKE '%it''s%' and "Views" = '5'`, q.String())
}

type stubResolver map[string]string

func (T stubResolver) ResolveWidget(kind, column string, length int) (string, map[string]any) {
	w, ok := T[column]
	if !ok {
		return "", nil
	}
	return w, map[string]any{"kind": kind, "length": length}
}

func TestTableScaffoldForm(t *testing.T) {
	table := mockTableArticles(t)
	table.Field("Title").(*FieldVarchar).Set("Hello")

	form := table.ScaffoldForm(stubResolver{"Title": "rich-text", "AuthorID": "lookup"})
	require.Len(t, form, 7)

	title := form[0]
	assert.Equal(t, FormFieldText, title.Type)
	assert.Equal(t, "Title", title.Title)
	assert.Equal(t, "Hello", title.Value)
	assert.Equal(t, 100, title.MaxLength)
	assert.Equal(t, "rich-text", title.Widget)
	assert.Equal(t, map[string]any{"kind": "Varchar", "length": 100}, title.Config)

	assert.Nil(t, form[1].Value)
	assert.Equal(t, "text-input", form[1].Widget)
	assert.Equal(t, FormFieldNumeric, form[2].Type)
	assert.Equal(t, FormFieldCheckbox, form[3].Type)
	assert.Equal(t, FormFieldDatetime, form[5].Type)

	author := form[6]
	assert.Equal(t, FormFieldDropdown, author.Type)
	assert.Equal(t, "Author", author.Title)
	assert.Equal(t, "lookup", author.Widget)
	assert.Equal(t, "Authors", author.Config["source"])
	assert.Equal(t, "ForeignKey", author.Config["kind"])

	search := table.ScaffoldSearchForm(nil)
	require.Len(t, search, 7)
	assert.Equal(t, FormFieldDropdown, search[3].Type)
	assert.Len(t, search[3].Options, 3)
	assert.Nil(t, search[0].Value)
}
