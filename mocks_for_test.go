package dbfield

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	_ "modernc.org/sqlite"
)

// mockConnection opens a fresh SQLite database file in a temp dir.
func mockConnection(t *testing.T) *Connection {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "tests.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	conn := NewConnection(DbDialectSQLite, db)
	conn.Logger = zaptest.NewLogger(t).Sugar()
	return conn
}

func mockTableArticles(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable("Articles",
		NewVarchar("Title", 100),
		NewVarchar("Subtitle"),
		NewBigint("Views", 10),
		NewBoolean("Published"),
		NewDecimal("Price", 9, 2),
		NewDatetime("PostedAt"),
		NewForeignKey("AuthorID", "Authors"),
	)
	require.NoError(t, err)
	return table
}

// mockSyncedArticles creates the Articles table in a fresh database.
func mockSyncedArticles(t *testing.T) (*Connection, *SchemaManager) {
	t.Helper()
	conn := mockConnection(t)
	sm := NewSchemaManager(conn, zaptest.NewLogger(t).Sugar())
	require.NoError(t, mockTableArticles(t).RequireTable(context.Background(), sm))
	return conn, sm
}

func mockFillArticle(t *testing.T, table *Table, title string, views int64) {
	t.Helper()
	table.Field("Title").(*FieldVarchar).Set(title)
	table.Field("Views").(*FieldBigint).Set(views)
	table.Field("Published").(*FieldBoolean).Set(true)
	table.Field("Price").(*FieldDecimal).Set(12.5)
	table.Field("PostedAt").(*FieldDatetime).Set(time.Date(2024, time.March, 1, 10, 20, 30, 0, time.UTC))
	table.Field("AuthorID").(*FieldForeignKey).Set(3)
}
