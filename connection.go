package dbfield

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Connection wraps a *sql.DB with the dialect it speaks. SQLite gets a
// single shared transaction that nests, other dialects use plain ones.
type Connection struct {
	dialect       Dialect
	db            *sql.DB
	schemaName    string
	activeTx      *sql.Tx
	nestedTxLevel int
	txLock        sync.Mutex

	Logger *zap.SugaredLogger
}

// Open opens and pings a database. driverName is any name DialectFromDriver
// accepts.
func Open(ctx context.Context, driverName, dsn string) (*Connection, error) {
	if dsn == "" {
		return nil, fmt.Errorf("Connection.Open: dsn is empty")
	}
	d, err := DialectFromDriver(driverName)
	if err != nil {
		return nil, fmt.Errorf("Connection.Open: %w", err)
	}
	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("Connection.Open: failed to open DB: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("Connection.Open: failed to ping DB: %w", err)
	}
	res := NewConnection(d, db)
	if d == DbDialectMySQL {
		res.schemaName, err = mysqlSchemaName(dsn)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("Connection.Open: %w", err)
		}
	}
	return res, nil
}

// NewConnection wraps an already opened database.
func NewConnection(d Dialect, db *sql.DB) *Connection {
	return &Connection{
		dialect: d,
		db:      db,
		Logger:  zap.NewNop().Sugar(),
	}
}

func (T *Connection) Dialect() Dialect {
	return T.dialect
}

func (T *Connection) DB() *sql.DB {
	return T.db
}

// SchemaName is the MySQL database name taken from the DSN, if any.
func (T *Connection) SchemaName() string {
	return T.schemaName
}

func (T *Connection) Close() error {
	return T.db.Close()
}

// BeginTran begins a database transaction or increases the nested transaction level if already in a transaction.
func (T *Connection) BeginTran(ctx context.Context) (*sql.Tx, error) {
	if T.dialect != DbDialectSQLite {
		return T.db.BeginTx(ctx, nil)
	}
	T.txLock.Lock()
	defer T.txLock.Unlock()

	if T.nestedTxLevel == 0 {
		newTx, err := T.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("Connection.BeginTran: failed to begin transaction: %w", err)
		}
		T.activeTx = newTx
	}
	T.nestedTxLevel++
	return T.activeTx, nil
}

// CommitTran decreases transaction level and commits the transaction if it was the last one.
func (T *Connection) CommitTran(tx *sql.Tx) error {
	if T.dialect != DbDialectSQLite {
		return tx.Commit()
	}
	T.txLock.Lock()
	defer T.txLock.Unlock()

	if T.nestedTxLevel == 0 {
		return fmt.Errorf("Connection.CommitTran: no active transaction to commit")
	}
	T.nestedTxLevel--
	if T.nestedTxLevel == 0 {
		err := T.activeTx.Commit()
		if err != nil {
			_ = T.activeTx.Rollback()
		}
		T.activeTx = nil
		return err
	}
	return nil
}

// RollbackTran rolls back a database transaction and zeroes the transaction level.
func (T *Connection) RollbackTran(tx *sql.Tx) error {
	if T.dialect != DbDialectSQLite {
		return tx.Rollback()
	}
	T.txLock.Lock()
	defer T.txLock.Unlock()

	if T.nestedTxLevel == 0 {
		return fmt.Errorf("Connection.RollbackTran: no active transaction to rollback")
	}
	err := T.activeTx.Rollback()
	T.activeTx = nil
	T.nestedTxLevel = 0
	return err
}

// PrepareSql rewrites Postgres-style parameters ($1, $2, ...) for the dialect:
// "?" for MySQL and SQLite, "@pN" for MSSQL.
func (T *Connection) PrepareSql(query string, args ...any) string {
	result := query
	// highest first so $1 does not eat into $10
	for i := len(args); i >= 1; i-- {
		ph := fmt.Sprintf("$%d", i)
		switch T.dialect {
		case DbDialectMySQL, DbDialectSQLite:
			result = strings.ReplaceAll(result, ph, "?")
		case DbDialectMSSQL:
			result = strings.ReplaceAll(result, ph, fmt.Sprintf("@p%d", i))
		}
	}
	return result
}

func (T *Connection) currentTx() *sql.Tx {
	if T.dialect != DbDialectSQLite {
		return nil
	}
	T.txLock.Lock()
	defer T.txLock.Unlock()

	if T.nestedTxLevel > 0 {
		return T.activeTx
	}
	return nil
}

// Query always accepts parameters in Postgres style and runs inside the
// active SQLite transaction when there is one.
func (T *Connection) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	query2 := T.PrepareSql(query, args...)
	if tx := T.currentTx(); tx != nil {
		return tx.QueryContext(ctx, query2, args...)
	}
	return T.db.QueryContext(ctx, query2, args...)
}

func (T *Connection) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	query2 := T.PrepareSql(query, args...)
	if tx := T.currentTx(); tx != nil {
		return tx.QueryRowContext(ctx, query2, args...)
	}
	return T.db.QueryRowContext(ctx, query2, args...)
}

// Exec executes a query without returning any rows.
func (T *Connection) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	query2 := T.PrepareSql(query, args...)
	if tx := T.currentTx(); tx != nil {
		return tx.ExecContext(ctx, query2, args...)
	}
	return T.db.ExecContext(ctx, query2, args...)
}

// WriteManipulation executes m and returns the row ID: the new one for an
// insert, m.ID for an update. Updating a missing row returns ErrRecordNotFound.
func (T *Connection) WriteManipulation(ctx context.Context, m *Manipulation) (int64, error) {
	if m.Dialect != T.dialect {
		return 0, fmt.Errorf("Connection.WriteManipulation: manipulation dialect %s does not match connection dialect %s", m.Dialect, T.dialect)
	}
	query, err := m.SQL()
	if err != nil {
		return 0, fmt.Errorf("Connection.WriteManipulation: %w", err)
	}
	T.Logger.Debugw("write manipulation", "table", m.Table, "command", m.Command, "sql", query)

	if m.Command == ManipulationUpdate {
		res, err := T.Exec(ctx, query)
		if err != nil {
			return 0, fmt.Errorf("Connection.WriteManipulation: failed to update %s: %w", m.Table, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("Connection.WriteManipulation: failed to get affected rows of %s: %w", m.Table, err)
		}
		if affected == 0 {
			// MySQL counts changed rows, not matched ones
			exists, err := T.rowExists(ctx, m.Table, m.ID)
			if err != nil {
				return 0, fmt.Errorf("Connection.WriteManipulation: %w", err)
			}
			if !exists {
				return 0, fmt.Errorf("Connection.WriteManipulation: %w: %s.%s = %d", ErrRecordNotFound, m.Table, IDColumn, m.ID)
			}
		}
		return m.ID, nil
	}

	var id int64
	switch T.dialect {
	case DbDialectPostgres:
		err = T.QueryRow(ctx, query+" returning "+T.dialect.QuoteIdent(IDColumn)).Scan(&id)
	case DbDialectMSSQL:
		err = T.QueryRow(ctx, m.insertSQL("output inserted."+T.dialect.QuoteIdent(IDColumn))).Scan(&id)
	default:
		var res sql.Result
		res, err = T.Exec(ctx, query)
		if err == nil {
			id, err = res.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("Connection.WriteManipulation: failed to insert into %s: %w", m.Table, err)
	}
	return id, nil
}

func (T *Connection) rowExists(ctx context.Context, table string, id int64) (bool, error) {
	query := fmt.Sprintf("select count(*) from %s where %s = $1", T.dialect.QuoteIdent(table), T.dialect.QuoteIdent(IDColumn))
	var n int64
	if err := T.QueryRow(ctx, query, id).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check %s %d: %w", table, id, err)
	}
	return n > 0, nil
}
