package dbfield

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// Dialect identifies the SQL flavour used for escaping and DDL.
type Dialect int

// Database dialect constants for supported database types.
const (
	DbDialectPostgres Dialect = 100
	DbDialectMSSQL    Dialect = 200
	DbDialectMySQL    Dialect = 300
	DbDialectSQLite   Dialect = 400
)

// DialectFromDriver maps a database/sql driver name to a Dialect.
func DialectFromDriver(driverName string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driverName)) {
	case "postgres", "pgx":
		return DbDialectPostgres, nil
	case "mssql", "sqlserver":
		return DbDialectMSSQL, nil
	case "mysql":
		return DbDialectMySQL, nil
	case "sqlite", "sqlite3":
		return DbDialectSQLite, nil
	default:
		return 0, fmt.Errorf("DialectFromDriver: %w: %s", ErrUnsupportedDialect, driverName)
	}
}

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case DbDialectPostgres:
		return "postgres"
	case DbDialectMSSQL:
		return "sqlserver"
	case DbDialectMySQL:
		return "mysql"
	case DbDialectSQLite:
		return "sqlite"
	default:
		return ""
	}
}

func (d Dialect) String() string {
	if n := d.DriverName(); n != "" {
		return n
	}
	return fmt.Sprintf("dialect(%d)", int(d))
}

// QuoteString renders s as a SQL string literal for the dialect.
func (d Dialect) QuoteString(s string) string {
	switch d {
	case DbDialectPostgres:
		return pq.QuoteLiteral(s)
	case DbDialectMySQL:
		return "'" + escapeMySQL(s) + "'"
	default:
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
}

// QuoteIdent renders name as a quoted identifier for the dialect.
func (d Dialect) QuoteIdent(name string) string {
	switch d {
	case DbDialectPostgres:
		return pq.QuoteIdentifier(name)
	case DbDialectMySQL:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	case DbDialectMSSQL:
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	default:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

// escapeMySQL escapes backslashes first, then single quotes.
func escapeMySQL(s string) string {
	if !strings.ContainsAny(s, `'\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}

// mysqlSchemaName extracts the database name from a MySQL DSN.
func mysqlSchemaName(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("mysqlSchemaName: failed to parse DSN: %w", err)
	}
	return cfg.DBName, nil
}

// Kind tags the built-in field types.
type Kind int

// Supported field kinds.
const (
	KindVarchar    Kind = 100
	KindInt        Kind = 200
	KindBigint     Kind = 210
	KindForeignKey Kind = 220
	KindBoolean    Kind = 300
	KindDecimal    Kind = 500
	KindDatetime   Kind = 600
)

var kindNames = map[Kind]string{
	KindVarchar:    "Varchar",
	KindInt:        "Int",
	KindBigint:     "Bigint",
	KindForeignKey: "ForeignKey",
	KindBoolean:    "Boolean",
	KindDecimal:    "Decimal",
	KindDatetime:   "Datetime",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Column null modes used in ColumnParts.Null.
const (
	NullAllowed = "null"
	NotNull     = "not null"
)

const (
	intPrecision    = 11
	bigintPrecision = 20
)
