package dbfield

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareSql(t *testing.T) {
	args := make([]any, 10)
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{DbDialectPostgres, "a = $1 and b = $10"},
		{DbDialectMySQL, "a = ? and b = ?"},
		{DbDialectSQLite, "a = ? and b = ?"},
		{DbDialectMSSQL, "a = @p1 and b = @p10"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect.String(), func(t *testing.T) {
			conn := NewConnection(tt.dialect, nil)
			assert.Equal(t, tt.want, conn.PrepareSql("a = $1 and b = $10", args...))
		})
	}
}

func TestWriteManipulation_Postgres(t *testing.T) {
	ctx := context.Background()
	conn, mock := mockSqlConnection(t, DbDialectPostgres)

	mock.ExpectQuery(`insert into "Articles" ("Title") values ('Hi') returning "ID"`).
		WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(5)))
	mock.ExpectExec(`update "Articles" set "Title" = 'Hi' where "ID" = 5`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	m := NewManipulation(DbDialectPostgres, "Articles", ManipulationInsert)
	m.Fields["Title"] = "'Hi'"
	id, err := conn.WriteManipulation(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	m.Command = ManipulationUpdate
	m.ID = id
	id, err = conn.WriteManipulation(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteManipulation_UpdateMissingRow(t *testing.T) {
	ctx := context.Background()
	conn, mock := mockSqlConnection(t, DbDialectPostgres)

	mock.ExpectExec(`update "Articles" set "Title" = 'Hi' where "ID" = 9`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`select count(*) from "Articles" where "ID" = $1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	m := NewManipulation(DbDialectPostgres, "Articles", ManipulationUpdate)
	m.ID = 9
	m.Fields["Title"] = "'Hi'"
	_, err := conn.WriteManipulation(ctx, m)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteManipulation_UpdateUnchangedRowMySQL(t *testing.T) {
	ctx := context.Background()
	conn, mock := mockSqlConnection(t, DbDialectMySQL)

	mock.ExpectExec("update `Articles` set `Title` = 'Hi' where `ID` = 9").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("select count(*) from `Articles` where `ID` = ?").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	m := NewManipulation(DbDialectMySQL, "Articles", ManipulationUpdate)
	m.ID = 9
	m.Fields["Title"] = "'Hi'"
	id, err := conn.WriteManipulation(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteManipulation_MSSQL(t *testing.T) {
	conn, mock := mockSqlConnection(t, DbDialectMSSQL)
	mock.ExpectQuery("insert into [Articles] ([Title]) output inserted.[ID] values ('Hi')").
		WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(9)))

	m := NewManipulation(DbDialectMSSQL, "Articles", ManipulationInsert)
	m.Fields["Title"] = "'Hi'"
	id, err := conn.WriteManipulation(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteManipulation_DialectMismatch(t *testing.T) {
	conn, mock := mockSqlConnection(t, DbDialectMySQL)
	m := NewManipulation(DbDialectPostgres, "Articles", ManipulationInsert)
	m.Fields["Title"] = "'Hi'"
	_, err := conn.WriteManipulation(context.Background(), m)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNestedTransactions(t *testing.T) {
	ctx := context.Background()
	conn, _ := mockSyncedArticles(t)

	tx1, err := conn.BeginTran(ctx)
	require.NoError(t, err)
	tx2, err := conn.BeginTran(ctx)
	require.NoError(t, err)
	assert.Same(t, tx1, tx2)

	table := mockTableArticles(t)
	mockFillArticle(t, table, "inside", 1)
	_, err = table.Save(ctx, conn, 0)
	require.NoError(t, err)

	require.NoError(t, conn.CommitTran(tx2))
	require.NoError(t, conn.RollbackTran(tx1))
	assert.Error(t, conn.CommitTran(tx1))

	rows, err := table.Search(ctx, conn, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, rows)

	tx, err := conn.BeginTran(ctx)
	require.NoError(t, err)
	_, err = table.Save(ctx, conn, 0)
	require.NoError(t, err)
	require.NoError(t, conn.CommitTran(tx))

	rows, err = table.Search(ctx, conn, nil, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()
	_, err := Open(ctx, "sqlite", "")
	assert.Error(t, err)
	_, err = Open(ctx, "oracle", "dsn")
	assert.ErrorIs(t, err, ErrUnsupportedDialect)

	conn, err := Open(ctx, "sqlite3", "file:"+t.TempDir()+"/open.db")
	require.NoError(t, err)
	assert.Equal(t, DbDialectSQLite, conn.Dialect())
	assert.NoError(t, conn.Close())
}
