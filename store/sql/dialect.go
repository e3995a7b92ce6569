package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Dialect maps a database/sql driver name to its bun dialect.
func Dialect(driver string) (schema.Dialect, error) {
	switch strings.TrimSpace(strings.ToLower(driver)) {
	case DriverPostgres:
		return pgdialect.New(), nil
	case DriverSQLite:
		return sqlitedialect.New(), nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
}

// OpenDB opens a bun database over the named driver. Both drivers are
// linked in, so callers only supply a DSN.
func OpenDB(driver string, dsn string) (*bun.DB, error) {
	dialect, err := Dialect(driver)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open(strings.TrimSpace(strings.ToLower(driver)), dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s database: %w", driver, err)
	}
	return bun.NewDB(sqlDB, dialect), nil
}
