package dbfield

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// ColumnParts is the dialect neutral column description a field requires.
type ColumnParts struct {
	Datatype   string
	Precision  int
	Scale      int
	Null       string // NullAllowed or NotNull, empty means NullAllowed
	Default    any    // nil means no default clause
	ArrayValue string
}

// ColumnSpec names the column type and its parts.
type ColumnSpec struct {
	Type  string
	Parts ColumnParts
}

// SchemaRequirer makes sure a column exists.
type SchemaRequirer interface {
	RequireField(ctx context.Context, table, column string, spec ColumnSpec) error
}

// DDL renders the column definition (type, null mode, default) for d.
func (T ColumnSpec) DDL(d Dialect) (string, error) {
	colType, err := T.sqlColumnType(d)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(colType)
	if T.Parts.ArrayValue != "" && d == DbDialectPostgres {
		sb.WriteString("[]")
	}
	if T.Parts.Null == NotNull {
		sb.WriteString(" not null")
	}
	if T.Parts.Default != nil {
		def, err := T.defaultLiteral(d)
		if err != nil {
			return "", err
		}
		sb.WriteString(" default ")
		sb.WriteString(def)
	}
	return sb.String(), nil
}

func (T ColumnSpec) sqlColumnType(d Dialect) (string, error) {
	switch d {
	case DbDialectPostgres:
		return T.sqlColumnTypePostgres(), nil
	case DbDialectMSSQL:
		return T.sqlColumnTypeMSSQL(), nil
	case DbDialectMySQL:
		return T.sqlColumnTypeMySQL(), nil
	case DbDialectSQLite:
		return T.sqlColumnTypeSQLite(), nil
	default:
		return "", fmt.Errorf("ColumnSpec.DDL: %w: %d", ErrUnsupportedDialect, d)
	}
}

func (T ColumnSpec) varcharSize() int {
	if T.Parts.Precision > 0 {
		return T.Parts.Precision
	}
	return 255
}

func (T ColumnSpec) decimal() string {
	return fmt.Sprintf("decimal(%d,%d)", T.Parts.Precision, T.Parts.Scale)
}

// generic renders Datatype(precision[,scale]) for types this package does not know.
func (T ColumnSpec) generic() string {
	switch {
	case T.Parts.Precision > 0 && T.Parts.Scale > 0:
		return fmt.Sprintf("%s(%d,%d)", T.Parts.Datatype, T.Parts.Precision, T.Parts.Scale)
	case T.Parts.Precision > 0:
		return fmt.Sprintf("%s(%d)", T.Parts.Datatype, T.Parts.Precision)
	default:
		return T.Parts.Datatype
	}
}

func (T ColumnSpec) sqlColumnTypePostgres() string {
	switch T.Type {
	case "varchar":
		return fmt.Sprintf("varchar(%d)", T.varcharSize())
	case "int":
		return "integer"
	case "bigint":
		return "bigint"
	case "boolean":
		return "boolean"
	case "decimal":
		return T.decimal()
	case "datetime":
		return "timestamp without time zone"
	default:
		return T.generic()
	}
}

func (T ColumnSpec) sqlColumnTypeMSSQL() string {
	switch T.Type {
	case "varchar":
		return fmt.Sprintf("nvarchar(%d)", T.varcharSize())
	case "int":
		return "int"
	case "bigint":
		return "bigint"
	case "boolean":
		return "bit"
	case "decimal":
		return T.decimal()
	case "datetime":
		return "datetime"
	default:
		return T.generic()
	}
}

func (T ColumnSpec) sqlColumnTypeMySQL() string {
	switch T.Type {
	case "varchar":
		return fmt.Sprintf("varchar(%d) character set utf8mb4", T.varcharSize())
	case "int":
		return fmt.Sprintf("int(%d)", intPrecision)
	case "bigint":
		return fmt.Sprintf("bigint(%d)", bigintPrecision)
	case "boolean":
		return "tinyint(1)"
	case "decimal":
		return T.decimal()
	case "datetime":
		return "datetime"
	default:
		return T.generic()
	}
}

func (T ColumnSpec) sqlColumnTypeSQLite() string {
	switch T.Type {
	case "varchar":
		return fmt.Sprintf("varchar(%d)", T.varcharSize())
	case "int":
		return "integer"
	case "bigint":
		return "bigint"
	case "boolean":
		return "boolean"
	case "decimal":
		return T.decimal()
	case "datetime":
		return "datetime"
	default:
		return T.generic()
	}
}

func (T ColumnSpec) defaultLiteral(d Dialect) (string, error) {
	switch v := T.Parts.Default.(type) {
	case bool:
		if d == DbDialectPostgres {
			return strconv.FormatBool(v), nil
		}
		if v {
			return "1", nil
		}
		return "0", nil
	case string:
		return d.QuoteString(v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		n, err := asInt64(v)
		if err != nil {
			return "", fmt.Errorf("ColumnSpec.DDL: unsupported default %v: %w", v, err)
		}
		return strconv.FormatInt(n, 10), nil
	}
}

// SchemaManager creates tables and adds missing columns over a Connection.
// Known columns are cached per table.
type SchemaManager struct {
	conn    *Connection
	columns *expirable.LRU[string, map[string]bool]
	lock    sync.Mutex

	Logger *zap.SugaredLogger
}

// NewSchemaManager uses logger, or a no-op logger when it is nil.
func NewSchemaManager(conn *Connection, logger *zap.SugaredLogger) *SchemaManager {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SchemaManager{
		conn:    conn,
		columns: expirable.NewLRU[string, map[string]bool](256, nil, time.Minute*10),
		Logger:  logger,
	}
}

// Invalidate drops cached columns of table.
func (T *SchemaManager) Invalidate(table string) {
	T.columns.Remove(strings.ToLower(table))
}

// RequireTable creates table with its ID primary key if it does not exist.
func (T *SchemaManager) RequireTable(ctx context.Context, table string) error {
	T.lock.Lock()
	defer T.lock.Unlock()

	_, err := T.requireTable(ctx, table)
	return err
}

func (T *SchemaManager) requireTable(ctx context.Context, table string) (map[string]bool, error) {
	cols, err := T.existingColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(cols) > 0 {
		return cols, nil
	}
	if _, err = T.conn.Exec(ctx, T.createTableSql(table)); err != nil {
		return nil, fmt.Errorf("SchemaManager.RequireTable: failed to create table %s: %w", table, err)
	}
	T.Logger.Infow("table created", "table", table, "dialect", T.conn.Dialect().String())
	cols = map[string]bool{strings.ToLower(IDColumn): true}
	T.columns.Add(strings.ToLower(table), cols)
	return cols, nil
}

// RequireField creates table if needed and adds column when it is missing.
// Existing columns are left as they are.
func (T *SchemaManager) RequireField(ctx context.Context, table, column string, spec ColumnSpec) error {
	if table == "" || column == "" {
		return fmt.Errorf("SchemaManager.RequireField: table and column names are required")
	}
	d := T.conn.Dialect()
	ddl, err := spec.DDL(d)
	if err != nil {
		return fmt.Errorf("SchemaManager.RequireField: %w", err)
	}

	T.lock.Lock()
	defer T.lock.Unlock()

	cols, err := T.requireTable(ctx, table)
	if err != nil {
		return fmt.Errorf("SchemaManager.RequireField: %w", err)
	}
	if cols[strings.ToLower(column)] {
		return nil
	}

	addKeyword := "add column"
	if d == DbDialectMSSQL {
		addKeyword = "add"
	}
	query := fmt.Sprintf("alter table %s %s %s %s", d.QuoteIdent(table), addKeyword, d.QuoteIdent(column), ddl)
	if _, err = T.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("SchemaManager.RequireField: failed to add column %s.%s: %w", table, column, err)
	}
	T.Logger.Infow("column added", "table", table, "column", column, "ddl", ddl)

	updated := make(map[string]bool, len(cols)+1)
	for k := range cols {
		updated[k] = true
	}
	updated[strings.ToLower(column)] = true
	T.columns.Add(strings.ToLower(table), updated)
	return nil
}

func (T *SchemaManager) createTableSql(table string) string {
	d := T.conn.Dialect()
	tn := d.QuoteIdent(table)
	id := d.QuoteIdent(IDColumn)
	switch d {
	case DbDialectPostgres:
		return fmt.Sprintf("create table if not exists %s (%s bigserial primary key)", tn, id)
	case DbDialectMSSQL:
		return fmt.Sprintf("if not exists (select * from sysobjects where name=%s and xtype='U') create table %s (%s bigint identity(1,1) primary key)", d.QuoteString(table), tn, id)
	case DbDialectMySQL:
		return fmt.Sprintf("create table if not exists %s (%s bigint not null auto_increment primary key)", tn, id)
	default:
		return fmt.Sprintf("create table if not exists %s (%s integer primary key autoincrement)", tn, id)
	}
}

// existingColumns returns lower-cased column names of table, empty when the
// table does not exist.
func (T *SchemaManager) existingColumns(ctx context.Context, table string) (map[string]bool, error) {
	key := strings.ToLower(table)
	if cols, ok := T.columns.Get(key); ok {
		return cols, nil
	}

	var cols map[string]bool
	var err error
	switch T.conn.Dialect() {
	case DbDialectPostgres:
		cols, err = T.queryColumnNames(ctx, "select column_name from information_schema.columns where table_schema = current_schema() and table_name = $1", table)
	case DbDialectMSSQL:
		cols, err = T.queryColumnNames(ctx, "select name from syscolumns where id = object_id($1)", table)
	case DbDialectMySQL:
		if schema := T.conn.SchemaName(); schema != "" {
			cols, err = T.queryColumnNames(ctx, "select column_name from information_schema.columns where table_schema = $1 and table_name = $2", schema, table)
		} else {
			cols, err = T.queryColumnNames(ctx, "select column_name from information_schema.columns where table_schema = database() and table_name = $1", table)
		}
	case DbDialectSQLite:
		cols, err = T.sqliteColumnNames(ctx, table)
	default:
		return nil, fmt.Errorf("SchemaManager.existingColumns: %w: %d", ErrUnsupportedDialect, T.conn.Dialect())
	}
	if err != nil {
		return nil, fmt.Errorf("SchemaManager.existingColumns: failed to read columns of %s: %w", table, err)
	}
	if len(cols) > 0 {
		T.columns.Add(key, cols)
	}
	return cols, nil
}

func (T *SchemaManager) queryColumnNames(ctx context.Context, query string, args ...any) (map[string]bool, error) {
	rows, err := T.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()
	res := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		res[strings.ToLower(name)] = true
	}
	return res, rows.Err()
}

func (T *SchemaManager) sqliteColumnNames(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := T.conn.Query(ctx, fmt.Sprintf("PRAGMA table_info(%s)", T.conn.Dialect().QuoteIdent(table)))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()
	res := make(map[string]bool)
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue any
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return nil, err
		}
		res[strings.ToLower(name)] = true
	}
	return res, rows.Err()
}
